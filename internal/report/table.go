// Package report renders result tables and charts to the artifact
// formats the dashboards serve: CSV, HTML and images.
package report

import (
	"fmt"
	"strconv"
)

// Table is one report table. Cells are pre-formatted strings so the CSV,
// HTML and image renderings carry identical data.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// Empty reports whether the table has no data rows.
func (t *Table) Empty() bool { return len(t.Rows) == 0 }

// AddRow appends one row. Short rows are padded so renderers can assume
// rectangular data.
func (t *Table) AddRow(cells ...string) {
	for len(cells) < len(t.Columns) {
		cells = append(cells, "")
	}
	t.Rows = append(t.Rows, cells)
}

// F2 formats a float with two decimals, the table-wide numeric format.
func F2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// F4 formats a float with four decimals, used for probabilities.
func F4(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// I formats an integer cell.
func I(v int) string { return strconv.Itoa(v) }

// B renders a boolean flag as the 0/1 the report tables use.
func B(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// Pct renders a percentage cell with two decimals.
func Pct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
