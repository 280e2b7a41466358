package emargement

import (
	"errors"
	"fmt"
)

// Each sentinel carries the message shown to the user.
var (
	// ErrNoFileSelected indicates a drop or selection without any acceptable file.
	ErrNoFileSelected = errors.New("Veuillez sélectionner un fichier Excel valide.")
	// ErrTooManyFiles indicates more than one file was dropped at once.
	ErrTooManyFiles = errors.New("Veuillez ne déposer qu'un seul fichier Excel.")
	// ErrMalformedFile indicates the payload cannot be read as a spreadsheet.
	ErrMalformedFile = errors.New("Le fichier n'est pas un classeur Excel lisible.")
	// ErrInsufficientData indicates the first sheet has fewer rows than the layout needs.
	ErrInsufficientData = errors.New("Le fichier Excel ne contient pas suffisamment de données.")
	// ErrMissingGroupName indicates the group name cell (A2) is empty.
	ErrMissingGroupName = errors.New("La cellule A2 du fichier Excel est vide.")
	// ErrNoAttendeesFound indicates no attendee name survived filtering.
	ErrNoAttendeesFound = errors.New("Aucun nom d'élève trouvé dans le fichier Excel.")
	// ErrEmptyRosterExport indicates an export was attempted without attendees.
	ErrEmptyRosterExport = errors.New("Impossible de générer un PDF sans élève.")
)

// ExtractionError represents a failure to turn a file into a roster.
type ExtractionError struct {
	Source string // file name, may be empty
	Err    error  // one of the sentinels above
	Cause  error  // underlying reader error, may be nil
}

func (e *ExtractionError) Error() string {
	msg := e.Err.Error()
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Cause)
	}
	if e.Source == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Source, msg)
}

func (e *ExtractionError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(source string, err, cause error) *ExtractionError {
	return &ExtractionError{
		Source: source,
		Err:    err,
		Cause:  cause,
	}
}

var userErrors = []error{
	ErrNoFileSelected,
	ErrTooManyFiles,
	ErrMalformedFile,
	ErrInsufficientData,
	ErrMissingGroupName,
	ErrNoAttendeesFound,
	ErrEmptyRosterExport,
}

// Message returns the single-line message to show for err. Known failures map
// to their fixed message; anything else falls back to err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	for _, known := range userErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return err.Error()
}
