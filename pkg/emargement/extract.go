package emargement

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/ukaji3/emargement-go/pkg/emargement/models"
	"github.com/ukaji3/emargement-go/pkg/emargement/parser"
)

// Extract builds a roster from a sheet. The checks run in a fixed order: row
// count first, then the group name, then the attendee list.
func Extract(table models.Table, opts Options) (*models.Roster, error) {
	l := opts.layout()

	if table.Len() < l.MinRows {
		return nil, ErrInsufficientData
	}

	group := table.Cell(l.GroupRow, l.GroupCol)
	if !group.Present {
		return nil, ErrMissingGroupName
	}

	var attendees []string
	for row := l.FirstAttendeeRow; row < table.Len(); row++ {
		if name := table.Cell(row, l.NameCol); name.Present {
			attendees = append(attendees, name.Value)
		}
	}
	if len(attendees) == 0 {
		return nil, ErrNoAttendeesFound
	}

	return models.NewRoster(group.Value, attendees)
}

// ExtractReader reads the workbook in r and extracts its roster. Failures are
// returned as *ExtractionError.
func ExtractReader(r io.Reader, name string, opts Options) (*models.Roster, error) {
	table, err := parser.ReadWorkbook(r, name, opts.readOptions())
	if err != nil {
		return nil, NewExtractionError(name, ErrMalformedFile, err)
	}

	roster, err := Extract(table, opts)
	if err != nil {
		return nil, NewExtractionError(name, err, nil)
	}
	return roster, nil
}

// ExtractFile extracts the roster of the workbook at path.
func ExtractFile(path string, opts Options) (*models.Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NewExtractionError(filepath.Base(path), ErrNoFileSelected, err)
		}
		return nil, NewExtractionError(filepath.Base(path), ErrMalformedFile, err)
	}
	defer f.Close()

	return ExtractReader(f, filepath.Base(path), opts)
}
