package upload

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/emargement-go/pkg/emargement"
	"github.com/ukaji3/emargement-go/pkg/emargement/models"
)

type memSource struct {
	name string
	data string
}

func (m memSource) Name() string                 { return m.name }
func (m memSource) Open() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(m.data)), nil }

func roster(t *testing.T, group string, names ...string) *models.Roster {
	t.Helper()
	r, err := models.NewRoster(group, names)
	require.NoError(t, err)
	return r
}

// loaded returns a state showing a preview of r.
func loaded(t *testing.T, r *models.Roster) State {
	t.Helper()
	s, _ := Reduce(NewState(DefaultNotificationTimeout), Dropped{Files: []Source{memSource{name: "a.xlsx"}}})
	s, _ = Reduce(s, ReadCompleted{Request: s.Request, Roster: r})
	require.Equal(t, PhasePreviewReady, s.Phase)
	return s
}

func TestDropStartsRead(t *testing.T) {
	s := NewState(DefaultNotificationTimeout)
	src := memSource{name: "RCI.XLSX"}

	next, effects := Reduce(s, Dropped{Files: []Source{src}})

	assert.Equal(t, PhaseLoading, next.Phase)
	assert.Equal(t, uint64(1), next.Request)
	assert.Equal(t, []Effect{StartRead{Request: 1, File: src}}, effects)
	assert.Equal(t, PhaseIdle, s.Phase, "input state must not change")
}

func TestDropValidation(t *testing.T) {
	tests := []struct {
		name    string
		files   []Source
		wantMsg string
	}{
		{"no file", nil, emargement.ErrNoFileSelected.Error()},
		{"two files", []Source{memSource{name: "a.xlsx"}, memSource{name: "b.xlsx"}}, emargement.ErrTooManyFiles.Error()},
		{"wrong type", []Source{memSource{name: "notes.pdf"}}, emargement.ErrNoFileSelected.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, effects := Reduce(NewState(DefaultNotificationTimeout), Dropped{Files: tt.files})

			assert.Equal(t, PhaseFailed, next.Phase)
			assert.Equal(t, uint64(0), next.Request, "no read may start")
			assert.Equal(t, Notification{ID: 1, Message: tt.wantMsg, Severity: SeverityError, Open: true}, next.Notification)
			assert.Equal(t, []Effect{ScheduleDismiss{Notification: 1, After: DefaultNotificationTimeout}}, effects)
		})
	}
}

func TestReadSuccess(t *testing.T) {
	s, _ := Reduce(NewState(DefaultNotificationTimeout), Dropped{Files: []Source{memSource{name: "a.xls"}}})
	r := roster(t, "RCI-12", "Alice", "Bob")

	next, effects := Reduce(s, ReadCompleted{Request: 1, Roster: r})

	assert.Equal(t, PhasePreviewReady, next.Phase)
	require.NotNil(t, next.Preview)
	assert.Same(t, r, next.Preview.Roster())
	assert.Equal(t, 0, next.Preview.PresentCount())
	assert.Equal(t, MsgUploaded, next.Notification.Message)
	assert.Equal(t, SeveritySuccess, next.Notification.Severity)
	assert.Len(t, effects, 1)
	assert.True(t, next.CanExport())
}

func TestReadFailureKeepsPreview(t *testing.T) {
	s := loaded(t, roster(t, "RCI-12", "Alice"))
	prior := s.Preview

	s, _ = Reduce(s, Dropped{Files: []Source{memSource{name: "b.xlsx"}}})
	assert.False(t, s.CanExport(), "export unavailable while loading")

	err := emargement.NewExtractionError("b.xlsx", emargement.ErrMissingGroupName, nil)
	next, _ := Reduce(s, ReadCompleted{Request: s.Request, Err: err})

	assert.Equal(t, PhaseFailed, next.Phase)
	assert.Same(t, prior, next.Preview)
	assert.Equal(t, emargement.ErrMissingGroupName.Error(), next.Notification.Message)
	assert.Equal(t, SeverityError, next.Notification.Severity)
	assert.True(t, next.CanExport())
}

func TestStaleReadDiscarded(t *testing.T) {
	s := NewState(DefaultNotificationTimeout)
	s, _ = Reduce(s, Dropped{Files: []Source{memSource{name: "first.xlsx"}}})
	s, _ = Reduce(s, Dropped{Files: []Source{memSource{name: "second.xlsx"}}})
	require.Equal(t, uint64(2), s.Request)

	next, effects := Reduce(s, ReadCompleted{Request: 1, Roster: roster(t, "OLD", "Zed")})
	assert.Equal(t, s, next)
	assert.Empty(t, effects)

	next, _ = Reduce(next, ReadCompleted{Request: 2, Roster: roster(t, "NEW", "Alice")})
	assert.Equal(t, "NEW", next.Preview.Roster().GroupName())

	again, _ := Reduce(next, ReadCompleted{Request: 1, Roster: roster(t, "OLD", "Zed")})
	assert.Equal(t, next, again)
}

func TestRejectDuringLoadingKeepsRead(t *testing.T) {
	s, _ := Reduce(NewState(DefaultNotificationTimeout), Dropped{Files: []Source{memSource{name: "a.xlsx"}}})

	s, _ = Reduce(s, Dropped{})
	assert.Equal(t, PhaseLoading, s.Phase)
	assert.Equal(t, emargement.ErrNoFileSelected.Error(), s.Notification.Message)

	s, _ = Reduce(s, ReadCompleted{Request: 1, Roster: roster(t, "RCI", "Alice")})
	assert.Equal(t, PhasePreviewReady, s.Phase)
}

func TestToggle(t *testing.T) {
	s := loaded(t, roster(t, "RCI-12", "Alice", "Bob"))
	before := s.Preview

	next, effects := Reduce(s, Toggled{Name: "Bob"})
	assert.Empty(t, effects)
	assert.True(t, next.Preview.Present("Bob"))
	assert.False(t, before.Present("Bob"), "previous snapshot must not change")

	back, _ := Reduce(next, Toggled{Name: "Bob"})
	assert.Equal(t, before.Entries(), back.Preview.Entries())

	unknown, _ := Reduce(next, Toggled{Name: "Mallory"})
	assert.Same(t, next.Preview, unknown.Preview)

	empty, _ := Reduce(NewState(0), Toggled{Name: "Alice"})
	assert.Nil(t, empty.Preview)
}

func TestExport(t *testing.T) {
	s := loaded(t, roster(t, "RCI 12 A", "Alice", "Bob"))
	s, _ = Reduce(s, Toggled{Name: "Alice"})

	next, effects := Reduce(s, ExportRequested{})
	require.Equal(t, []Effect{StartExport{GroupName: "RCI 12 A", Attendees: []string{"Alice", "Bob"}}}, effects)
	assert.True(t, next.Exporting)

	_, again := Reduce(next, ExportRequested{})
	assert.Empty(t, again, "no second export while one is outstanding")

	done, _ := Reduce(next, ExportCompleted{Path: "out/Emargement_RCI_12_A.pdf"})
	assert.False(t, done.Exporting)
	assert.Equal(t, "out/Emargement_RCI_12_A.pdf", done.LastExport)
	assert.Equal(t, MsgExported, done.Notification.Message)

	failed, _ := Reduce(next, ExportCompleted{Err: emargement.ErrEmptyRosterExport})
	assert.Equal(t, emargement.ErrEmptyRosterExport.Error(), failed.Notification.Message)
	assert.Equal(t, SeverityError, failed.Notification.Severity)
}

func TestExportUnavailable(t *testing.T) {
	_, effects := Reduce(NewState(0), ExportRequested{})
	assert.Empty(t, effects)
}

func TestDismiss(t *testing.T) {
	s := loaded(t, roster(t, "RCI", "Alice"))
	id := s.Notification.ID

	clickAway, _ := Reduce(s, Dismissed{Notification: id, Reason: ReasonClickAway})
	assert.True(t, clickAway.Notification.Open)
	assert.Equal(t, PhasePreviewReady, clickAway.Phase)

	stale, _ := Reduce(s, Dismissed{Notification: id - 1, Reason: ReasonTimeout})
	assert.True(t, stale.Notification.Open)

	for _, reason := range []DismissReason{ReasonTimeout, ReasonClose} {
		closed, _ := Reduce(s, Dismissed{Notification: id, Reason: reason})
		assert.False(t, closed.Notification.Open)
		assert.Equal(t, PhaseIdle, closed.Phase)
		assert.NotNil(t, closed.Preview, "preview stays after the cycle settles")
		assert.True(t, closed.CanExport())
	}
}

func TestFullCycle(t *testing.T) {
	s := NewState(time.Second)
	var effects []Effect

	s, _ = Reduce(s, Dropped{Files: []Source{memSource{name: "a.xlsx"}, memSource{name: "b.xlsx"}}})
	assert.Equal(t, PhaseFailed, s.Phase)
	s, _ = Reduce(s, Dismissed{Notification: s.Notification.ID, Reason: ReasonClose})
	assert.Equal(t, PhaseIdle, s.Phase)

	s, _ = Reduce(s, Dropped{Files: []Source{memSource{name: "a.xlsx"}}})
	s, effects = Reduce(s, ReadCompleted{Request: s.Request, Err: errors.New("boom")})
	assert.Equal(t, PhaseFailed, s.Phase)
	assert.Equal(t, "boom", s.Notification.Message)
	assert.Equal(t, []Effect{ScheduleDismiss{Notification: s.Notification.ID, After: time.Second}}, effects)
	assert.Nil(t, s.Preview)
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		from  Phase
		event string
		to    Phase
		ok    bool
	}{
		{PhaseIdle, eventDrop, PhaseLoading, true},
		{PhaseLoading, eventDrop, PhaseLoading, true},
		{PhaseLoading, eventLoad, PhasePreviewReady, true},
		{PhaseLoading, eventFail, PhaseFailed, true},
		{PhaseLoading, eventReject, PhaseLoading, false},
		{PhaseFailed, eventSettle, PhaseIdle, true},
		{PhaseIdle, eventSettle, PhaseIdle, false},
		{PhaseIdle, eventLoad, PhaseIdle, false},
	}

	for _, tt := range tests {
		got, ok := advance(tt.from, tt.event)
		assert.Equal(t, tt.to, got, "%s --%s-->", tt.from, tt.event)
		assert.Equal(t, tt.ok, ok, "%s --%s-->", tt.from, tt.event)
	}
}
