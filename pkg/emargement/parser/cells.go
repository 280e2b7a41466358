package parser

import (
	"bytes"
	"fmt"

	"github.com/ukaji3/emargement-go/pkg/emargement/models"
	"github.com/xuri/excelize/v2"
)

// readXLSX reads a worksheet from an Office Open XML workbook.
func readXLSX(data []byte, sheetIndex int) (models.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return models.Table{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if sheetIndex < 0 || sheetIndex >= len(sheets) {
		return models.Table{}, fmt.Errorf("%w: no worksheet at index %d", ErrUnreadable, sheetIndex)
	}
	sheetName := sheets[sheetIndex]

	rows, err := ExtractCells(f, sheetName)
	if err != nil {
		return models.Table{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return models.Table{Sheet: sheetName, Rows: trimTrailingBlankRows(rows)}, nil
}

// ExtractCells extracts the normalized cell grid of a sheet.
// Blank rows are kept so that row indexes match the sheet.
func ExtractCells(f *excelize.File, sheetName string) ([][]models.Cell, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	result := make([][]models.Cell, len(rows))
	for rowIdx, row := range rows {
		cells := make([]models.Cell, len(row))
		for colIdx, cellValue := range row {
			cells[colIdx] = models.Text(cellValue)
		}
		result[rowIdx] = cells
	}

	return result, nil
}
