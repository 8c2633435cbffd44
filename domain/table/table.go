package table

import (
	"fmt"
)

// Row holds one record keyed by column name
type Row map[string]Value

// Table is an ordered, in-memory tabular structure with named columns.
// Mutating operations return a new Table; rows of the receiver are never
// modified, so callers can hand the same table to several evaluations.
type Table struct {
	columns []string
	rows    []Row
}

// New creates a table from an ordered column list and rows. Cells absent
// from a row read back as Missing.
func New(columns []string, rows []Row) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{columns: cols, rows: rows}
}

// Columns returns the ordered column names
func (t *Table) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// HasColumn reports whether the named column exists
func (t *Table) HasColumn(name string) bool {
	for _, col := range t.columns {
		if col == name {
			return true
		}
	}
	return false
}

// NumRows returns the row count
func (t *Table) NumRows() int {
	return len(t.rows)
}

// Row returns the i-th row. The returned map aliases table storage and must
// not be modified.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Value returns the cell at row i, column name; Missing if the cell is absent
func (t *Table) Value(i int, name string) Value {
	if v, ok := t.rows[i][name]; ok {
		return v
	}
	return Missing()
}

// Column returns all values of the named column in row order
func (t *Table) Column(name string) ([]Value, error) {
	if !t.HasColumn(name) {
		return nil, fmt.Errorf("column %q not found", name)
	}
	values := make([]Value, len(t.rows))
	for i := range t.rows {
		values[i] = t.Value(i, name)
	}
	return values, nil
}

// WithColumn returns a new table with the named column set to the given
// values. An existing column of the same name is replaced in place; a new
// column is appended to the column order. len(values) must equal NumRows.
func (t *Table) WithColumn(name string, values []Value) (*Table, error) {
	if len(values) != len(t.rows) {
		return nil, fmt.Errorf("column %q: %d values for %d rows", name, len(values), len(t.rows))
	}
	out := t.clone()
	if !out.HasColumn(name) {
		out.columns = append(out.columns, name)
	}
	for i := range out.rows {
		out.rows[i][name] = values[i]
	}
	return out, nil
}

// DropColumns returns a new table without the named columns. Unknown names
// are ignored.
func (t *Table) DropColumns(names ...string) *Table {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	out := &Table{rows: make([]Row, len(t.rows))}
	for _, col := range t.columns {
		if !drop[col] {
			out.columns = append(out.columns, col)
		}
	}
	for i, row := range t.rows {
		copied := make(Row, len(out.columns))
		for _, col := range out.columns {
			if v, ok := row[col]; ok {
				copied[col] = v
			}
		}
		out.rows[i] = copied
	}
	return out
}

// Filter returns a new table keeping only rows where keep returns true,
// preserving relative order.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := &Table{columns: t.Columns()}
	for _, row := range t.rows {
		if keep(row) {
			out.rows = append(out.rows, row)
		}
	}
	return out
}

// clone copies column order and rows (cell maps included)
func (t *Table) clone() *Table {
	out := &Table{
		columns: t.Columns(),
		rows:    make([]Row, len(t.rows)),
	}
	for i, row := range t.rows {
		copied := make(Row, len(row)+1)
		for k, v := range row {
			copied[k] = v
		}
		out.rows[i] = copied
	}
	return out
}
