package parser

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func openFixture(t *testing.T, name string) *os.File {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("Failed to open fixture: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestReadWorkbookXLS(t *testing.T) {
	table, err := ReadWorkbook(openFixture(t, "roster.xls"), "roster.xls", ReadOptions{})
	if err != nil {
		t.Fatalf("ReadWorkbook failed: %v", err)
	}

	if table.Sheet != "Liste" {
		t.Errorf("Expected sheet 'Liste', got %q", table.Sheet)
	}
	// Rows 8 (blank cell) and 9 (whitespace only) are trimmed.
	if table.Len() != 7 {
		t.Fatalf("Expected 7 rows, got %d", table.Len())
	}

	tests := []struct {
		row, col int
		value    string
		present  bool
	}{
		{0, 0, "Feuille d'émargement", true},
		{1, 0, "RCI-12", true},
		{3, 0, "Alice Martin", true},
		{4, 0, "Bob Durand", true},
		{4, 1, "ignoré", true},
		{5, 0, "", false}, // no record for this row
		{6, 0, "Chloé Petit", true},
	}
	for _, tt := range tests {
		cell := table.Cell(tt.row, tt.col)
		if cell.Present != tt.present || cell.Value != tt.value {
			t.Errorf("Cell(%d,%d) = %+v, expected %q present=%v", tt.row, tt.col, cell, tt.value, tt.present)
		}
	}
}

func TestReadWorkbookXLSMissingSheet(t *testing.T) {
	_, err := ReadWorkbook(openFixture(t, "roster.xls"), "roster.xls", ReadOptions{SheetIndex: 1})
	if !errorsIs(err, ErrUnreadable) {
		t.Fatalf("Expected ErrUnreadable, got %v", err)
	}
}

func TestReadWorkbookXLSCorrupt(t *testing.T) {
	data := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, bytes.Repeat([]byte{0x5A}, 600)...)
	_, err := ReadWorkbook(bytes.NewReader(data), "upload.xls", ReadOptions{})
	if !errorsIs(err, ErrUnreadable) {
		t.Fatalf("Expected ErrUnreadable, got %v", err)
	}
}

// A whitespace-only last row must be dropped the same way by both readers.
func TestTrailingBlankRowsMatchAcrossFormats(t *testing.T) {
	xls, err := ReadWorkbook(openFixture(t, "blank_tail.xls"), "blank_tail.xls", ReadOptions{})
	if err != nil {
		t.Fatalf("ReadWorkbook(xls) failed: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "Feuille d'émargement")
	f.SetCellValue("Sheet1", "A2", "RCI-12")
	f.SetCellValue("Sheet1", "A3", "Nom de l'élève")
	f.SetCellValue("Sheet1", "A4", "   ")
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	xlsx, err := ReadWorkbook(&buf, "blank_tail.xlsx", ReadOptions{})
	if err != nil {
		t.Fatalf("ReadWorkbook(xlsx) failed: %v", err)
	}

	if xls.Len() != 3 || xlsx.Len() != 3 {
		t.Errorf("Expected 3 rows for both formats, got xls=%d xlsx=%d", xls.Len(), xlsx.Len())
	}
}
