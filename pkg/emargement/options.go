// Package emargement extracts attendance rosters from Excel workbooks.
package emargement

import "github.com/ukaji3/emargement-go/pkg/emargement/parser"

// Layout holds the fixed cell positions of a roster sheet (0-based).
type Layout struct {
	// MinRows is the smallest row count a sheet must have.
	MinRows int
	// GroupRow and GroupCol locate the group name cell (A2).
	GroupRow int
	GroupCol int
	// FirstAttendeeRow is the first row holding attendee names (row 4).
	// Rows between GroupRow and FirstAttendeeRow are ignored.
	FirstAttendeeRow int
	// NameCol is the column holding attendee names.
	NameCol int
}

// Options configures extraction behavior.
type Options struct {
	// Layout specifies where the roster lives in the sheet. The zero Layout
	// means DefaultLayout.
	Layout Layout
	// SheetIndex selects the worksheet; the first one by default.
	SheetIndex int
	// MaxBytes caps the size of the workbook read from a file or reader.
	// Zero means parser.DefaultMaxBytes.
	MaxBytes int64
}

// DefaultLayout returns the layout of the roster export: title row, group name
// in A2, an instruction row, then one attendee per row from A4.
func DefaultLayout() Layout {
	return Layout{
		MinRows:          4,
		GroupRow:         1,
		GroupCol:         0,
		FirstAttendeeRow: 3,
		NameCol:          0,
	}
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Layout: DefaultLayout(),
	}
}

func (o Options) layout() Layout {
	if o.Layout == (Layout{}) {
		return DefaultLayout()
	}
	return o.Layout
}

func (o Options) readOptions() parser.ReadOptions {
	return parser.ReadOptions{
		SheetIndex: o.SheetIndex,
		MaxBytes:   o.MaxBytes,
	}
}
