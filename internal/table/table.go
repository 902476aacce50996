// Package table provides an in-memory columnar table with nullable string
// cells, used as the interchange structure between the resolver, the
// re-ranker and the figure pipeline.
package table

import (
	"fmt"
	"sort"
)

// Cell is a single table entry. A null cell carries no value.
type Cell struct {
	Value string
	Null  bool
}

// String returns a non-null cell holding s.
func String(s string) Cell {
	return Cell{Value: s}
}

// Null is the null cell.
var Null = Cell{Null: true}

// Table is an ordered set of named columns over rows of nullable cells.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Cell
}

// New creates an empty table with the given column names.
func New(columns ...string) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, ok := index[c]; ok {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		index[c] = i
	}
	return &Table{
		columns: append([]string(nil), columns...),
		index:   index,
	}, nil
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// ColumnIndex returns the positional index of the named column.
func (t *Table) ColumnIndex(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return -1, &ColumnNotFoundError{Column: name}
	}
	return i, nil
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// AppendRow adds a row. The cell count must match the column count.
func (t *Table) AppendRow(cells ...Cell) error {
	if len(cells) != len(t.columns) {
		return fmt.Errorf("expected %d cells, got %d", len(t.columns), len(cells))
	}
	t.rows = append(t.rows, append([]Cell(nil), cells...))
	return nil
}

// Row returns the i'th row. The slice aliases the table's storage.
func (t *Table) Row(i int) []Cell {
	return t.rows[i]
}

// Get returns the cell at the given row and named column.
func (t *Table) Get(row int, column string) (Cell, error) {
	i, err := t.ColumnIndex(column)
	if err != nil {
		return Cell{}, err
	}
	return t.rows[row][i], nil
}

// Set assigns the cell at the given row and named column.
func (t *Table) Set(row int, column string, c Cell) error {
	i, err := t.ColumnIndex(column)
	if err != nil {
		return err
	}
	t.rows[row][i] = c
	return nil
}

// Copy returns a deep copy of the table.
func (t *Table) Copy() *Table {
	out, _ := New(t.columns...)
	out.rows = make([][]Cell, len(t.rows))
	for i, r := range t.rows {
		out.rows[i] = append([]Cell(nil), r...)
	}
	return out
}

// ReplaceAll nulls every cell across the whole table whose value equals v.
// The replacement is table-wide, not scoped to any column subset.
func (t *Table) ReplaceAll(v string) {
	for _, r := range t.rows {
		for i, c := range r {
			if !c.Null && c.Value == v {
				r[i] = Null
			}
		}
	}
}

// SortStable stably sorts the rows with the given comparison.
func (t *Table) SortStable(less func(a, b []Cell) bool) {
	sort.SliceStable(t.rows, func(i, j int) bool {
		return less(t.rows[i], t.rows[j])
	})
}

// Filter returns a new table containing only the rows keep reports true for.
func (t *Table) Filter(keep func(row []Cell) bool) *Table {
	out, _ := New(t.columns...)
	for _, r := range t.rows {
		if keep(r) {
			out.rows = append(out.rows, append([]Cell(nil), r...))
		}
	}
	return out
}

// ValueCounts returns the distinct non-null values of the named column in
// first-appearance order, with their occurrence counts.
func (t *Table) ValueCounts(column string) ([]string, []int, error) {
	ci, err := t.ColumnIndex(column)
	if err != nil {
		return nil, nil, err
	}
	var values []string
	counts := make(map[string]int)
	for _, r := range t.rows {
		c := r[ci]
		if c.Null {
			continue
		}
		if _, seen := counts[c.Value]; !seen {
			values = append(values, c.Value)
		}
		counts[c.Value]++
	}
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = counts[v]
	}
	return values, out, nil
}

// ColumnNotFoundError reports a lookup against a column that does not exist.
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found", e.Column)
}
