// Package parser reads worksheets from Excel workbooks into normalized tables.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ukaji3/emargement-go/pkg/emargement/models"
)

// DefaultMaxBytes bounds how much of an upload is read.
const DefaultMaxBytes = 10 << 20

// ErrUnreadable indicates the payload is not a workbook this package can decode.
var ErrUnreadable = errors.New("unreadable workbook")

// ErrTooLarge indicates the payload exceeds ReadOptions.MaxBytes.
var ErrTooLarge = errors.New("workbook exceeds size limit")

// Format identifies the container format of a workbook.
type Format string

const (
	// FormatXLSX is the Office Open XML workbook (zip container).
	FormatXLSX Format = "xlsx"
	// FormatXLS is the legacy BIFF workbook (OLE2 compound file).
	FormatXLS Format = "xls"
	// FormatUnknown is anything else.
	FormatUnknown Format = ""
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// ReadOptions configures ReadWorkbook.
type ReadOptions struct {
	// SheetIndex selects the worksheet (0-based). The first sheet is the default.
	SheetIndex int
	// MaxBytes caps the payload size. Zero means DefaultMaxBytes.
	MaxBytes int64
}

// DetectFormat picks the workbook format from the payload signature, using the
// file name to disambiguate OLE2 containers: an encrypted .xlsx is also an OLE2
// file and must go through the xlsx reader.
func DetectFormat(name string, data []byte) Format {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return FormatXLSX
	case bytes.HasPrefix(data, oleMagic):
		if ext == ".xlsx" {
			return FormatXLSX
		}
		return FormatXLS
	default:
		return FormatUnknown
	}
}

// ReadWorkbook reads one worksheet of the workbook in r. The name is only used
// for format detection and error messages.
func ReadWorkbook(r io.Reader, name string, opts ReadOptions) (models.Table, error) {
	limit := opts.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return models.Table{}, fmt.Errorf("reading %s: %w", name, err)
	}
	if int64(len(data)) > limit {
		return models.Table{}, fmt.Errorf("%s: %w (%d bytes)", name, ErrTooLarge, limit)
	}
	if len(data) == 0 {
		return models.Table{}, fmt.Errorf("%s: %w: empty file", name, ErrUnreadable)
	}

	switch DetectFormat(name, data) {
	case FormatXLSX:
		return readXLSX(data, opts.SheetIndex)
	case FormatXLS:
		return readXLS(data, opts.SheetIndex)
	default:
		return models.Table{}, fmt.Errorf("%s: %w: unrecognized file signature", name, ErrUnreadable)
	}
}

// trimTrailingBlankRows drops rows at the end of the sheet that hold no
// present cell. Both readers apply it, so a whitespace-only tail row never
// counts toward the row total whatever the format.
func trimTrailingBlankRows(rows [][]models.Cell) [][]models.Cell {
	end := len(rows)
	for end > 0 && !hasData(rows[end-1]) {
		end--
	}
	return rows[:end]
}

func hasData(cells []models.Cell) bool {
	for _, c := range cells {
		if c.Present {
			return true
		}
	}
	return false
}
