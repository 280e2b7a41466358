// Package preview holds the editable attendance preview of a roster.
package preview

import "github.com/ukaji3/emargement-go/pkg/emargement/models"

// Entry is one preview row.
type Entry struct {
	Name    string
	Present bool
}

// Model tracks a presence flag per attendee of the current roster. The key set
// always equals the roster's attendee names; attendees sharing a name share a flag.
type Model struct {
	roster  *models.Roster
	present map[string]bool
}

// New returns a model for roster with everyone marked absent.
func New(roster *models.Roster) *Model {
	m := &Model{}
	m.Initialize(roster)
	return m
}

// Initialize replaces any previous state with roster, everyone absent.
func (m *Model) Initialize(roster *models.Roster) {
	m.roster = roster
	m.present = make(map[string]bool, roster.Len())
	for _, name := range roster.Attendees() {
		m.present[name] = false
	}
}

// Toggle flips the presence of name. Unknown names are left alone and
// reported with false.
func (m *Model) Toggle(name string) bool {
	v, ok := m.present[name]
	if !ok {
		return false
	}
	m.present[name] = !v
	return true
}

// Roster returns the roster being previewed.
func (m *Model) Roster() *models.Roster {
	return m.roster
}

// Present reports whether name is marked present.
func (m *Model) Present(name string) bool {
	return m.present[name]
}

// Entries returns the preview rows in attendee order.
func (m *Model) Entries() []Entry {
	names := m.roster.Attendees()
	entries := make([]Entry, len(names))
	for i, name := range names {
		entries[i] = Entry{Name: name, Present: m.present[name]}
	}
	return entries
}

// PresentCount returns how many preview rows are marked present.
func (m *Model) PresentCount() int {
	n := 0
	for _, e := range m.Entries() {
		if e.Present {
			n++
		}
	}
	return n
}

// Clone returns an independent copy sharing the immutable roster.
func (m *Model) Clone() *Model {
	if m == nil {
		return nil
	}
	c := &Model{roster: m.roster, present: make(map[string]bool, len(m.present))}
	for k, v := range m.present {
		c.present[k] = v
	}
	return c
}
