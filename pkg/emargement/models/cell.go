// Package models defines the data structures shared by extraction, preview and rendering.
package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cell is a normalized spreadsheet cell: either absent or a trimmed, non-empty string.
type Cell struct {
	// Value is the trimmed cell text. It is empty when the cell is absent.
	Value string `json:"v,omitempty"`
	// Present reports whether the cell holds a non-blank value.
	Present bool `json:"present"`
}

// Absent returns the absent cell.
func Absent() Cell {
	return Cell{}
}

// Text returns a cell holding s trimmed, or the absent cell when s is blank.
func Text(s string) Cell {
	s = strings.TrimSpace(s)
	if s == "" {
		return Absent()
	}
	return Cell{Value: s, Present: true}
}

// String returns the cell value, "" for absent cells.
func (c Cell) String() string {
	return c.Value
}

// NormalizeValue converts a loosely typed cell value, as produced by spreadsheet
// readers or hand-built tables, into a Cell.
func NormalizeValue(v interface{}) Cell {
	switch x := v.(type) {
	case nil:
		return Absent()
	case Cell:
		return x
	case string:
		return Text(x)
	case []byte:
		return Text(string(x))
	case bool:
		return Text(strconv.FormatBool(x))
	case int:
		return Text(strconv.FormatInt(int64(x), 10))
	case int8:
		return Text(strconv.FormatInt(int64(x), 10))
	case int16:
		return Text(strconv.FormatInt(int64(x), 10))
	case int32:
		return Text(strconv.FormatInt(int64(x), 10))
	case int64:
		return Text(strconv.FormatInt(x, 10))
	case uint:
		return Text(strconv.FormatUint(uint64(x), 10))
	case uint8:
		return Text(strconv.FormatUint(uint64(x), 10))
	case uint16:
		return Text(strconv.FormatUint(uint64(x), 10))
	case uint32:
		return Text(strconv.FormatUint(uint64(x), 10))
	case uint64:
		return Text(strconv.FormatUint(x, 10))
	case float32:
		return Text(formatFloat(float64(x), 32))
	case float64:
		return Text(formatFloat(x, 64))
	case fmt.Stringer:
		return Text(x.String())
	default:
		return Text(fmt.Sprint(x))
	}
}

// formatFloat drops the fractional part of integral values so that 12.0 reads "12".
func formatFloat(f float64, bits int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}
