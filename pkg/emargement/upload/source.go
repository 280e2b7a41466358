package upload

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// AcceptedExtensions lists the spreadsheet types a drop accepts.
var AcceptedExtensions = []string{".xlsx", ".xls"}

// Source is a dropped file.
type Source interface {
	// Name is the file name, used for type filtering and messages.
	Name() string
	// Open returns the file content.
	Open() (io.ReadCloser, error)
}

// FileSource is a Source backed by a path on disk.
type FileSource string

func (f FileSource) Name() string {
	return filepath.Base(string(f))
}

func (f FileSource) Open() (io.ReadCloser, error) {
	return os.Open(string(f))
}

// Accepts reports whether name has a spreadsheet extension.
func Accepts(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, accepted := range AcceptedExtensions {
		if ext == accepted {
			return true
		}
	}
	return false
}
