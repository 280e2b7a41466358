package models

import "testing"

type label string

func (l label) String() string { return string(l) }

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		input    interface{}
		expected Cell
	}{
		{nil, Absent()},
		{"", Absent()},
		{"   ", Absent()},
		{"  Alice ", Cell{Value: "Alice", Present: true}},
		{12, Cell{Value: "12", Present: true}},
		{int64(-3), Cell{Value: "-3", Present: true}},
		{12.0, Cell{Value: "12", Present: true}},
		{12.5, Cell{Value: "12.5", Present: true}},
		{true, Cell{Value: "true", Present: true}},
		{label(" RCI "), Cell{Value: "RCI", Present: true}},
	}

	for _, tt := range tests {
		result := NormalizeValue(tt.input)
		if result != tt.expected {
			t.Errorf("NormalizeValue(%#v) = %#v, expected %#v", tt.input, result, tt.expected)
		}
	}
}

func TestTableCellOutOfRange(t *testing.T) {
	table := NewTable([][]interface{}{
		{"x"},
		{"RCI-12", ""},
	})

	if c := table.Cell(1, 0); c.Value != "RCI-12" {
		t.Errorf("Cell(1, 0) = %q, want %q", c.Value, "RCI-12")
	}
	for _, pos := range [][2]int{{1, 1}, {1, 5}, {7, 0}, {-1, 0}, {0, -1}} {
		if c := table.Cell(pos[0], pos[1]); c.Present {
			t.Errorf("Cell(%d, %d) = %#v, want absent", pos[0], pos[1], c)
		}
	}
}
