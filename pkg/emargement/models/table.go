package models

// Table is the cell grid of a single worksheet.
type Table struct {
	// Sheet is the worksheet name, when known.
	Sheet string `json:"sheet,omitempty"`
	// Rows holds the cells row by row (0-based). Rows may have different lengths.
	Rows [][]Cell `json:"rows"`
}

// NewTable builds a Table from raw values, normalizing every cell.
func NewTable(rows [][]interface{}) Table {
	t := Table{Rows: make([][]Cell, len(rows))}
	for r, row := range rows {
		cells := make([]Cell, len(row))
		for c, v := range row {
			cells[c] = NormalizeValue(v)
		}
		t.Rows[r] = cells
	}
	return t
}

// TableFromStrings builds a Table from string rows such as those returned by
// spreadsheet readers.
func TableFromStrings(rows [][]string) Table {
	t := Table{Rows: make([][]Cell, len(rows))}
	for r, row := range rows {
		cells := make([]Cell, len(row))
		for c, v := range row {
			cells[c] = Text(v)
		}
		t.Rows[r] = cells
	}
	return t
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Cell returns the cell at the 0-based row and column. Out-of-range
// coordinates yield the absent cell.
func (t Table) Cell(row, col int) Cell {
	if row < 0 || row >= len(t.Rows) {
		return Absent()
	}
	cells := t.Rows[row]
	if col < 0 || col >= len(cells) {
		return Absent()
	}
	return cells[col]
}
