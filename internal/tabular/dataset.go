// Package tabular provides the in-memory dataset model shared by all stream
// validators, plus readers for the accepted upload formats.
package tabular

import "strings"

// Row maps a column name to the raw cell value. Cells are kept as strings;
// type interpretation happens in the validation rules.
type Row map[string]string

// Dataset is an ordered table: the column list preserves file order and every
// row carries a value (possibly empty) for each column.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// IsMissing reports whether a cell counts as missing: empty or whitespace-only.
func IsMissing(value string) bool {
	return strings.TrimSpace(value) == ""
}

// DisplayRow converts a zero-based row index to the row number shown to
// submitters: 1-indexed plus the header row.
func DisplayRow(index int) int {
	return index + 2
}

// NormalizeName canonicalizes a column name: trimmed, lower-cased, spaces
// replaced with underscores.
func NormalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// Normalized returns a copy of the dataset with canonical column names.
// The copy is taken once, before any validation phase runs, so every phase
// observes the same shape.
func (d *Dataset) Normalized() *Dataset {
	out := &Dataset{
		Columns: make([]string, len(d.Columns)),
		Rows:    make([]Row, len(d.Rows)),
	}
	renames := make(map[string]string, len(d.Columns))
	for i, col := range d.Columns {
		norm := NormalizeName(col)
		out.Columns[i] = norm
		renames[col] = norm
	}
	for i, row := range d.Rows {
		copied := make(Row, len(row))
		for col, val := range row {
			copied[renames[col]] = val
		}
		out.Rows[i] = copied
	}
	return out
}

// HasColumn reports whether the dataset contains the named column.
func (d *Dataset) HasColumn(name string) bool {
	for _, col := range d.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// HasColumns reports whether every named column is present.
func (d *Dataset) HasColumns(names ...string) bool {
	for _, name := range names {
		if !d.HasColumn(name) {
			return false
		}
	}
	return true
}

// Value returns the cell at (row index, column). Out-of-range access returns
// the empty string, which reads as missing.
func (d *Dataset) Value(index int, column string) string {
	if index < 0 || index >= len(d.Rows) {
		return ""
	}
	return d.Rows[index][column]
}

// RowCount returns the number of data rows.
func (d *Dataset) RowCount() int {
	return len(d.Rows)
}
