package parser

import (
	"fmt"

	"github.com/ukaji3/emargement-go/pkg/emargement/models"
	"github.com/xuri/excelize/v2"
)

// Bounds is the bounding box of the non-empty cells of a table (0-based, inclusive).
type Bounds struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
	// NonEmpty is the number of non-empty cells inside the box.
	NonEmpty int
}

// Range returns the bounds in A1 notation, e.g. "A2:C10".
func (b Bounds) Range() string {
	startCell, _ := excelize.CoordinatesToCellName(b.MinCol+1, b.MinRow+1)
	endCell, _ := excelize.CoordinatesToCellName(b.MaxCol+1, b.MaxRow+1)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// DataBounds finds the bounding box of non-empty cells.
// It returns false when the table holds no data at all.
func DataBounds(t models.Table) (Bounds, bool) {
	b := Bounds{MinRow: -1, MaxRow: -1, MinCol: -1, MaxCol: -1}

	for rowIdx, row := range t.Rows {
		for colIdx, cell := range row {
			if !cell.Present {
				continue
			}
			b.NonEmpty++
			if b.MinRow < 0 || rowIdx < b.MinRow {
				b.MinRow = rowIdx
			}
			if rowIdx > b.MaxRow {
				b.MaxRow = rowIdx
			}
			if b.MinCol < 0 || colIdx < b.MinCol {
				b.MinCol = colIdx
			}
			if colIdx > b.MaxCol {
				b.MaxCol = colIdx
			}
		}
	}

	if b.MinRow < 0 {
		return Bounds{}, false
	}
	return b, true
}
