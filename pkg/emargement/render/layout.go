// Package render lays out and writes the attendance sheet PDF of a roster.
package render

import (
	"strings"
	"unicode"

	"github.com/ukaji3/emargement-go/pkg/emargement"
)

// Column headers of the attendance table.
const (
	NameHeader     = "Nom de l'Élève"
	PresenceHeader = "Présence"
)

// Align is the horizontal alignment of a cell.
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
)

// Cell is one table cell of the sheet.
type Cell struct {
	Text  string
	Bold  bool
	Align Align
}

// Row is a table row: name cell then presence cell.
type Row [2]Cell

// Sheet is the device-independent content of an attendance sheet.
type Sheet struct {
	Title  string
	Header Row
	Rows   []Row
}

// Layout builds the sheet for a group. Presence is never an input: the
// presence column is always left blank for handwritten signatures.
func Layout(groupName string, attendees []string) (*Sheet, error) {
	if strings.TrimSpace(groupName) == "" {
		return nil, emargement.ErrMissingGroupName
	}
	if len(attendees) == 0 {
		return nil, emargement.ErrEmptyRosterExport
	}

	sheet := &Sheet{
		Title: groupName,
		Header: Row{
			{Text: NameHeader, Bold: true, Align: AlignCenter},
			{Text: PresenceHeader, Bold: true, Align: AlignCenter},
		},
		Rows: make([]Row, len(attendees)),
	}
	for i, name := range attendees {
		sheet.Rows[i] = Row{
			{Text: name, Bold: true, Align: AlignLeft},
			{Text: "", Align: AlignLeft},
		}
	}
	return sheet, nil
}

// FileName returns the download name for a group: "Emargement_" followed by
// the group name with each whitespace run replaced by an underscore.
// Path separators are replaced as well so the name stays a single path element.
func FileName(groupName string) string {
	var b strings.Builder
	b.WriteString("Emargement_")
	inSpace := false
	for _, r := range groupName {
		switch {
		case unicode.IsSpace(r):
			if !inSpace {
				b.WriteByte('_')
			}
			inSpace = true
			continue
		case r == '/' || r == '\\':
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
		inSpace = false
	}
	b.WriteString(".pdf")
	return b.String()
}
