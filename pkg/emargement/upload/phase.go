package upload

import (
	"context"
	"errors"

	"github.com/looplab/fsm"
)

// Phase is the stage of the current upload cycle.
type Phase string

const (
	// PhaseIdle waits for a drop. A preview from an earlier cycle may still be shown.
	PhaseIdle Phase = "idle"
	// PhaseLoading has a read in flight.
	PhaseLoading Phase = "loading"
	// PhasePreviewReady shows a freshly extracted roster and its success notification.
	PhasePreviewReady Phase = "preview_ready"
	// PhaseFailed shows the error notification of a rejected drop or failed read.
	PhaseFailed Phase = "failed"
)

// Phase graph events.
const (
	eventDrop   = "drop"   // a file was accepted and a read started
	eventReject = "reject" // a drop was refused before reading
	eventLoad   = "load"   // the latest read produced a roster
	eventFail   = "fail"   // the latest read failed
	eventSettle = "settle" // the cycle's notification was closed
)

var phaseEvents = fsm.Events{
	{Name: eventDrop, Src: []string{string(PhaseIdle), string(PhaseLoading), string(PhasePreviewReady), string(PhaseFailed)}, Dst: string(PhaseLoading)},
	{Name: eventReject, Src: []string{string(PhaseIdle), string(PhasePreviewReady), string(PhaseFailed)}, Dst: string(PhaseFailed)},
	{Name: eventLoad, Src: []string{string(PhaseLoading)}, Dst: string(PhasePreviewReady)},
	{Name: eventFail, Src: []string{string(PhaseLoading)}, Dst: string(PhaseFailed)},
	{Name: eventSettle, Src: []string{string(PhasePreviewReady), string(PhaseFailed)}, Dst: string(PhaseIdle)},
}

// advance applies event to p. It reports false when the phase graph has no
// such transition from p.
func advance(p Phase, event string) (Phase, bool) {
	m := fsm.NewFSM(string(p), phaseEvents, nil)
	if !m.Can(event) {
		return p, false
	}
	if err := m.Event(context.Background(), event); err != nil {
		// loading -> loading is a legal self transition.
		var noTransition fsm.NoTransitionError
		if !errors.As(err, &noTransition) {
			return p, false
		}
	}
	return Phase(m.Current()), true
}
