package models

import "github.com/godilite/bonus-report/pkg/textnorm"

// Row is one data row keyed by normalized column header.
type Row map[string]string

// Get returns the cell under column, matched after normalization.
func (r Row) Get(column string) string {
	return r[textnorm.Normalize(column)]
}

// MonthTable is the raw tabular data of one month as read from a source.
// Columns holds the normalized headers in source order.
type MonthTable struct {
	Month   string
	Columns []string
	Rows    []Row
}

// NewMonthTable builds a table from a header line and data lines. Blank
// header cells are dropped, short lines are padded and fully blank lines are
// skipped.
func NewMonthTable(month string, header []string, lines [][]string) MonthTable {
	t := MonthTable{Month: month}

	idx := make([]int, 0, len(header))
	for i, h := range header {
		col := textnorm.Normalize(h)
		if col == "" || t.Has(col) {
			continue
		}
		t.Columns = append(t.Columns, col)
		idx = append(idx, i)
	}

	for _, line := range lines {
		row := make(Row, len(t.Columns))
		blank := true
		for j, col := range t.Columns {
			var cell string
			if idx[j] < len(line) {
				cell = line[idx[j]]
			}
			if cell != "" {
				blank = false
			}
			row[col] = cell
		}
		if !blank {
			t.Rows = append(t.Rows, row)
		}
	}
	return t
}

// Has reports whether the table carries column.
func (t MonthTable) Has(column string) bool {
	col := textnorm.Normalize(column)
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Missing returns the columns, in the order given, that the table lacks.
func (t MonthTable) Missing(columns ...string) []string {
	var out []string
	for _, c := range columns {
		if !t.Has(c) {
			out = append(out, c)
		}
	}
	return out
}
