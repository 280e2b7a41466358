// Package upload drives the drop, preview and export cycle as an explicit
// state machine: every user or I/O event goes through Reduce.
package upload

import (
	"time"

	"github.com/ukaji3/emargement-go/pkg/emargement"
	"github.com/ukaji3/emargement-go/pkg/emargement/models"
	"github.com/ukaji3/emargement-go/pkg/emargement/preview"
)

// DefaultNotificationTimeout is how long a notification stays open.
const DefaultNotificationTimeout = 6 * time.Second

// Success messages.
const (
	MsgUploaded = "Fichier téléversé avec succès !"
	MsgExported = "PDF généré avec succès !"
)

// Severity of a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is the single-line message area.
type Notification struct {
	// ID increases with every notification; timers carry it to skip stale dismissals.
	ID       uint64
	Message  string
	Severity Severity
	Open     bool
}

// DismissReason tells why a notification is being closed.
type DismissReason string

const (
	// ReasonTimeout is the auto-dismiss timer.
	ReasonTimeout DismissReason = "timeout"
	// ReasonClose is an explicit close by the user.
	ReasonClose DismissReason = "close"
	// ReasonClickAway is a click outside the notification. It never closes it.
	ReasonClickAway DismissReason = "clickaway"
)

// State is the whole UI state. Reduce never mutates a State or its Preview in
// place, so snapshots handed to observers stay valid.
type State struct {
	Phase Phase
	// Request is the id of the most recently started read.
	Request uint64
	// Preview is the last successfully extracted roster, nil before the first one.
	Preview      *preview.Model
	Notification Notification
	// Exporting is set while an export effect is outstanding.
	Exporting bool
	// LastExport is the path of the last written document.
	LastExport string
	// DismissAfter is the auto-dismiss delay; zero disables the timer.
	DismissAfter time.Duration
}

// NewState returns the initial idle state.
func NewState(dismissAfter time.Duration) State {
	return State{Phase: PhaseIdle, DismissAfter: dismissAfter}
}

// CanExport reports whether the export action is available.
func (s State) CanExport() bool {
	return s.Preview != nil && s.Phase != PhaseLoading && !s.Exporting
}

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// Dropped is a drop or file selection.
type Dropped struct {
	Files []Source
}

// ReadCompleted is the completion of the read tagged Request.
type ReadCompleted struct {
	Request uint64
	Roster  *models.Roster
	Err     error
}

// Toggled flips the presence of one previewed attendee.
type Toggled struct {
	Name string
}

// ExportRequested asks for the attendance sheet of the current preview.
type ExportRequested struct{}

// ExportCompleted reports the outcome of an export.
type ExportCompleted struct {
	Path string
	Err  error
}

// Dismissed asks to close notification ID.
type Dismissed struct {
	Notification uint64
	Reason       DismissReason
}

func (Dropped) isEvent()         {}
func (ReadCompleted) isEvent()   {}
func (Toggled) isEvent()         {}
func (ExportRequested) isEvent() {}
func (ExportCompleted) isEvent() {}
func (Dismissed) isEvent()       {}

// Effect is work Reduce asks the controller to perform.
type Effect interface {
	isEffect()
}

// StartRead reads and extracts File, then reports ReadCompleted with Request.
type StartRead struct {
	Request uint64
	File    Source
}

// StartExport renders the attendance sheet, then reports ExportCompleted.
type StartExport struct {
	GroupName string
	Attendees []string
}

// ScheduleDismiss reports Dismissed{Notification, ReasonTimeout} after a delay.
type ScheduleDismiss struct {
	Notification uint64
	After        time.Duration
}

func (StartRead) isEffect()       {}
func (StartExport) isEffect()     {}
func (ScheduleDismiss) isEffect() {}

// Reduce is the transition function of the upload cycle.
func Reduce(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case Dropped:
		return reduceDrop(s, ev)
	case ReadCompleted:
		return reduceRead(s, ev)
	case Toggled:
		if s.Preview == nil {
			return s, nil
		}
		p := s.Preview.Clone()
		if p.Toggle(ev.Name) {
			s.Preview = p
		}
		return s, nil
	case ExportRequested:
		if !s.CanExport() {
			return s, nil
		}
		s.Exporting = true
		roster := s.Preview.Roster()
		return s, []Effect{StartExport{GroupName: roster.GroupName(), Attendees: roster.Attendees()}}
	case ExportCompleted:
		s.Exporting = false
		if ev.Err != nil {
			return notify(s, SeverityError, emargement.Message(ev.Err))
		}
		s.LastExport = ev.Path
		return notify(s, SeveritySuccess, MsgExported)
	case Dismissed:
		return reduceDismiss(s, ev), nil
	default:
		return s, nil
	}
}

// reduceDrop validates the file count before anything is read. Only one file
// per drop is allowed; files of other types are not accepted.
func reduceDrop(s State, ev Dropped) (State, []Effect) {
	if len(ev.Files) > 1 {
		return reject(s, emargement.ErrTooManyFiles)
	}
	if len(ev.Files) == 0 || !Accepts(ev.Files[0].Name()) {
		return reject(s, emargement.ErrNoFileSelected)
	}

	s.Phase, _ = advance(s.Phase, eventDrop)
	s.Request++
	return s, []Effect{StartRead{Request: s.Request, File: ev.Files[0]}}
}

// reject reports a refused drop. A read already in flight keeps going.
func reject(s State, err error) (State, []Effect) {
	s.Phase, _ = advance(s.Phase, eventReject)
	return notify(s, SeverityError, emargement.Message(err))
}

func reduceRead(s State, ev ReadCompleted) (State, []Effect) {
	if ev.Request != s.Request || s.Phase != PhaseLoading {
		return s, nil
	}
	if ev.Err != nil {
		s.Phase, _ = advance(s.Phase, eventFail)
		return notify(s, SeverityError, emargement.Message(ev.Err))
	}
	if ev.Roster == nil {
		s.Phase, _ = advance(s.Phase, eventFail)
		return notify(s, SeverityError, emargement.ErrNoAttendeesFound.Error())
	}

	s.Preview = preview.New(ev.Roster)
	s.Phase, _ = advance(s.Phase, eventLoad)
	return notify(s, SeveritySuccess, MsgUploaded)
}

func reduceDismiss(s State, ev Dismissed) State {
	if ev.Reason == ReasonClickAway {
		return s
	}
	if ev.Notification != s.Notification.ID || !s.Notification.Open {
		return s
	}
	s.Notification.Open = false
	s.Phase, _ = advance(s.Phase, eventSettle)
	return s
}

// notify opens a new notification and schedules its auto-dismissal.
func notify(s State, severity Severity, msg string) (State, []Effect) {
	s.Notification = Notification{
		ID:       s.Notification.ID + 1,
		Message:  msg,
		Severity: severity,
		Open:     true,
	}
	if s.DismissAfter <= 0 {
		return s, nil
	}
	return s, []Effect{ScheduleDismiss{Notification: s.Notification.ID, After: s.DismissAfter}}
}
