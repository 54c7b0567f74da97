// Package records models the tabular data phonematch operates on.
//
// A Table is an ordered list of rows sharing one header. Every value is kept
// as a string: phone numbers must never be coerced to a numeric type, or
// leading zeros and the country prefix are lost.
package records

import "strings"

// Table is an in-memory record set read from column-delimited text.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New returns a table with the given header and no rows.
func New(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Append adds a row. Short rows are padded with empty values.
func (t *Table) Append(values ...string) {
	row := make([]string, len(t.Columns))
	copy(row, values)
	t.Rows = append(t.Rows, row)
}

// TrimColumns strips surrounding whitespace from every column name.
func (t *Table) TrimColumns() {
	for i, c := range t.Columns {
		t.Columns[i] = strings.TrimSpace(c)
	}
}

// Index returns the position of the named column, or -1 if it is absent.
// The query is trimmed; column names are compared as stored.
func (t *Table) Index(name string) int {
	name = strings.TrimSpace(name)
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Has reports whether the named column exists.
func (t *Table) Has(name string) bool {
	return t.Index(name) >= 0
}

// Value returns the value at row/column, or "" when the column is absent
// or the row is shorter than the header.
func (t *Table) Value(row []string, column string) string {
	i := t.Index(column)
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// ColumnValues returns a copy of every value of a column, in row order.
func (t *Table) ColumnValues(column string) []string {
	i := t.Index(column)
	if i < 0 {
		return nil
	}
	values := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		if i < len(row) {
			values[r] = row[i]
		}
	}
	return values
}

// SetColumnValues replaces every value of a column. values must have one
// entry per row; extra entries are ignored.
func (t *Table) SetColumnValues(column string, values []string) {
	i := t.Index(column)
	if i < 0 {
		return
	}
	for r := range t.Rows {
		if r >= len(values) {
			return
		}
		t.Rows[r][i] = values[r]
	}
}

// MapColumn rewrites every value of a column in place.
func (t *Table) MapColumn(column string, fn func(string) string) {
	i := t.Index(column)
	if i < 0 {
		return
	}
	for _, row := range t.Rows {
		if i < len(row) {
			row[i] = fn(row[i])
		}
	}
}

// TrimValues strips surrounding whitespace from every value of a column.
func (t *Table) TrimValues(column string) {
	t.MapColumn(column, strings.TrimSpace)
}

// DedupBy returns a new table keeping only the first row for every distinct
// value of column. Row order is preserved. If the column does not exist the
// result is a plain copy.
func (t *Table) DedupBy(column string) *Table {
	out := &Table{Columns: append([]string(nil), t.Columns...)}
	i := t.Index(column)
	seen := make(map[string]struct{}, len(t.Rows))
	for _, row := range t.Rows {
		if i >= 0 && i < len(row) {
			if _, dup := seen[row[i]]; dup {
				continue
			}
			seen[row[i]] = struct{}{}
		}
		out.Rows = append(out.Rows, append([]string(nil), row...))
	}
	return out
}

// Filter returns a new table with the rows for which keep returns true.
func (t *Table) Filter(keep func(row []string) bool) *Table {
	out := &Table{Columns: append([]string(nil), t.Columns...)}
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, append([]string(nil), row...))
		}
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	return t.Filter(func([]string) bool { return true })
}
