package parser

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
	"github.com/ukaji3/emargement-go/pkg/emargement/models"
)

// readXLS reads a worksheet from a legacy BIFF workbook.
// The decoder panics on some corrupt inputs; those are reported as ErrUnreadable.
func readXLS(data []byte, sheetIndex int) (table models.Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			table = models.Table{}
			err = fmt.Errorf("%w: %v", ErrUnreadable, r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return models.Table{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if wb == nil {
		return models.Table{}, fmt.Errorf("%w: no workbook stream", ErrUnreadable)
	}

	sheet := wb.GetSheet(sheetIndex)
	if sheet == nil {
		return models.Table{}, fmt.Errorf("%w: no worksheet at index %d", ErrUnreadable, sheetIndex)
	}

	rows := make([][]models.Cell, int(sheet.MaxRow)+1)
	for i := range rows {
		row, ok := sheetRow(sheet, i)
		if !ok {
			continue
		}
		cells := make([]models.Cell, row.LastCol()+1)
		for c := range cells {
			cells[c] = models.Text(row.Col(c))
		}
		rows[i] = cells
	}

	return models.Table{Sheet: sheet.Name, Rows: trimTrailingBlankRows(rows)}, nil
}

// sheetRow returns row i, or false when the sheet has no record for it
// (WorkSheet.Row dereferences a nil entry for missing rows).
func sheetRow(sheet *xls.WorkSheet, i int) (row *xls.Row, ok bool) {
	defer func() {
		if recover() != nil {
			row, ok = nil, false
		}
	}()
	row = sheet.Row(i)
	return row, row != nil
}
