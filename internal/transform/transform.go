// Package transform provides column-level string substitution and
// categorical ordering helpers for report tables.
package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sampletab/sampletab/internal/table"
)

// Replacement maps one string to another. Replacements are applied in
// slice order so later entries see the result of earlier ones.
type Replacement struct {
	Old string
	New string
}

// ReplaceStrings rewrites values in the named column. With substring set,
// every occurrence of Old inside a cell is replaced with New; otherwise any
// cell containing Old is replaced wholesale with New. Null cells are left
// alone.
func ReplaceStrings(t *table.Table, column string, replacements []Replacement, substring bool) error {
	ci, err := t.ColumnIndex(column)
	if err != nil {
		return err
	}
	for i := 0; i < t.NumRows(); i++ {
		row := t.Row(i)
		c := row[ci]
		if c.Null {
			continue
		}
		v := c.Value
		for _, rep := range replacements {
			if substring {
				v = strings.ReplaceAll(v, rep.Old, rep.New)
			} else if strings.Contains(v, rep.Old) {
				v = rep.New
			}
		}
		row[ci] = table.String(v)
	}
	return nil
}

// Categorical is an explicit ordering of category labels.
type Categorical struct {
	order []string
	rank  map[string]int
}

// NewCategorical creates a categorical ordering from the given labels.
func NewCategorical(order []string) *Categorical {
	rank := make(map[string]int, len(order))
	for i, v := range order {
		rank[v] = i
	}
	return &Categorical{order: append([]string(nil), order...), rank: rank}
}

// Labels returns the category labels in order.
func (c *Categorical) Labels() []string {
	return append([]string(nil), c.order...)
}

// Rank returns the position of v in the ordering. Labels outside the
// ordering sort after all known labels.
func (c *Categorical) Rank(v string) int {
	if i, ok := c.rank[v]; ok {
		return i
	}
	return len(c.order)
}

// SortByCategory stably sorts the table rows by the categorical rank of the
// named column. Null cells sort last.
func SortByCategory(t *table.Table, column string, cat *Categorical) error {
	ci, err := t.ColumnIndex(column)
	if err != nil {
		return err
	}
	t.SortStable(func(a, b []table.Cell) bool {
		return categoryRank(a[ci], cat) < categoryRank(b[ci], cat)
	})
	return nil
}

func categoryRank(c table.Cell, cat *Categorical) int {
	if c.Null {
		return len(cat.order) + 1
	}
	return cat.Rank(c.Value)
}

// TickLabels builds axis labels for the distinct values of the named
// column, optionally annotated with their counts ("name\nn = N") and
// renamed via the rename map. When cat is non-nil the labels follow its
// ordering; otherwise they appear in first-appearance order.
func TickLabels(t *table.Table, column string, counts bool, rename map[string]string, cat *Categorical) ([]string, error) {
	values, ns, err := t.ValueCounts(column)
	if err != nil {
		return nil, err
	}

	count := make(map[string]int, len(values))
	for i, v := range values {
		count[v] = ns[i]
	}
	if cat != nil {
		sort.SliceStable(values, func(i, j int) bool {
			return cat.Rank(values[i]) < cat.Rank(values[j])
		})
	}

	labels := make([]string, len(values))
	for i, v := range values {
		name := v
		if renamed, ok := rename[v]; ok {
			name = renamed
		}
		if counts {
			labels[i] = fmt.Sprintf("%s\nn = %d", name, count[v])
		} else {
			labels[i] = name + "\n"
		}
	}
	return labels, nil
}
