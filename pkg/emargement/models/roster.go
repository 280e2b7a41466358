package models

import (
	"errors"
	"strings"
)

// ErrInvalidRoster is returned by NewRoster when the group name or the
// attendee list does not satisfy the roster invariants.
var ErrInvalidRoster = errors.New("invalid roster")

// Roster is the group name and ordered attendee list read from a spreadsheet.
// It is immutable once built.
type Roster struct {
	groupName string
	attendees []string
}

// NewRoster validates and builds a Roster. The group name must not be blank and
// there must be at least one attendee, none of them blank. Order and casing
// are kept as given.
func NewRoster(groupName string, attendees []string) (*Roster, error) {
	if strings.TrimSpace(groupName) == "" {
		return nil, errors.Join(ErrInvalidRoster, errors.New("group name is empty"))
	}
	if len(attendees) == 0 {
		return nil, errors.Join(ErrInvalidRoster, errors.New("attendee list is empty"))
	}
	names := make([]string, len(attendees))
	for i, name := range attendees {
		if strings.TrimSpace(name) == "" {
			return nil, errors.Join(ErrInvalidRoster, errors.New("attendee name is empty"))
		}
		names[i] = name
	}
	return &Roster{groupName: groupName, attendees: names}, nil
}

// GroupName returns the roster (RCI) name.
func (r *Roster) GroupName() string {
	return r.groupName
}

// Attendees returns a copy of the attendee names in spreadsheet row order.
func (r *Roster) Attendees() []string {
	out := make([]string, len(r.attendees))
	copy(out, r.attendees)
	return out
}

// Len returns the number of attendees.
func (r *Roster) Len() int {
	return len(r.attendees)
}
