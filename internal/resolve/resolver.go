// Package resolve reconciles duplicate sample rows in a table.
//
// Samples can appear multiple times under related names (e.g. "GH" and
// "GH_2") with complementary data. The resolver groups such rows by their
// base name, propagates missing reconciliation-column values between
// neighboring rows of a group, and removes rows left with no usable data.
package resolve

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sampletab/sampletab/internal/table"
)

// DefaultSuffixes are the duplicate-name suffixes recognized by default.
// With ["_2"], "GH" and "GH_2" are duplicates of the same sample.
var DefaultSuffixes = []string{"_2", "_3", "_pool7A", "_pool10A"}

// DefaultPasses is the default number of reconciliation passes. Two passes
// fully reconcile duplicate pairs in either ordering.
const DefaultPasses = 2

// Placeholder is the value treated as missing data and normalized to null
// before each pass. Normalization is table-wide, not limited to the
// reconciliation columns.
const Placeholder = "-"

// Resolver performs duplicate-sample resolution over a table.
type Resolver struct {
	suffixes []string
	passes   int
	warn     bool
	logger   *zap.Logger
}

// NewResolver creates a resolver with the default suffixes and pass count.
func NewResolver() *Resolver {
	return &Resolver{
		suffixes: DefaultSuffixes,
		passes:   DefaultPasses,
		warn:     true,
		logger:   zap.NewNop(),
	}
}

// SetSuffixes configures the duplicate-name suffixes, matched in order.
func (r *Resolver) SetSuffixes(suffixes []string) {
	r.suffixes = append([]string(nil), suffixes...)
}

// SetPasses configures the number of alternating-order reconciliation
// passes. Filling only reaches a row's immediate neighbor within a group,
// so full propagation across a chain of n duplicate rows needs at least
// n-1 passes in the worst case; a single descending pass already cascades
// values downward through a sorted group.
func (r *Resolver) SetPasses(passes int) {
	r.passes = passes
}

// SetWarnOnDrop configures whether removed rows are reported via the logger.
func (r *Resolver) SetWarnOnDrop(warn bool) {
	r.warn = warn
}

// SetLogger sets the logger used for the dropped-row diagnostic.
func (r *Resolver) SetLogger(l *zap.Logger) {
	r.logger = l
}

// InvalidArgumentError reports a rejected resolver argument.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Reason)
}

// Resolve reconciles duplicates in t and returns the resolved table.
//
// idColumn names the sample-identity column; reconColumns are the columns
// whose missing values may be filled in from a duplicate row. Each pass
// normalizes the Placeholder to null across the whole table, groups rows by
// suffix-stripped identity, sorts by (group, identity) with the identity
// direction alternating between passes, and forward-fills reconciliation
// values between consecutive rows of the same group. Rows whose
// reconciliation columns are all null after the final pass are removed.
//
// The input table is not modified.
func (r *Resolver) Resolve(t *table.Table, idColumn string, reconColumns []string) (*table.Table, error) {
	if len(reconColumns) == 0 {
		return nil, &InvalidArgumentError{Reason: "reconciliation column list is empty"}
	}

	idIdx, err := t.ColumnIndex(idColumn)
	if err != nil {
		return nil, err
	}
	reconIdx := make([]int, len(reconColumns))
	for i, c := range reconColumns {
		ci, err := t.ColumnIndex(c)
		if err != nil {
			return nil, err
		}
		reconIdx[i] = ci
	}

	out := t.Copy()

	for pass := 0; pass < r.passes; pass++ {
		out.ReplaceAll(Placeholder)

		// The first pass sorts identities descending within a group, later
		// passes ascending, so both orderings of canonical-then-duplicate
		// placement meet the downward fill below.
		ascending := pass > 0
		out.SortStable(func(a, b []table.Cell) bool {
			ka := r.groupKey(cellString(a[idIdx]))
			kb := r.groupKey(cellString(b[idIdx]))
			if ka != kb {
				return ka > kb
			}
			ia := cellString(a[idIdx])
			ib := cellString(b[idIdx])
			if ascending {
				return ia < ib
			}
			return ia > ib
		})

		// Fill each row's null reconciliation cells from the row above when
		// both belong to the same group. Rows are visited top-down, so a
		// value cascades through a larger group within one pass.
		for i := 0; i+1 < out.NumRows(); i++ {
			cur := out.Row(i)
			next := out.Row(i + 1)
			if r.groupKey(cellString(cur[idIdx])) != r.groupKey(cellString(next[idIdx])) {
				continue
			}
			for _, ci := range reconIdx {
				if next[ci].Null && !cur[ci].Null {
					next[ci] = cur[ci]
				}
			}
		}
	}

	var dropped []string
	resolved := out.Filter(func(row []table.Cell) bool {
		for _, ci := range reconIdx {
			if !row[ci].Null {
				return true
			}
		}
		dropped = append(dropped, cellString(row[idIdx]))
		return false
	})

	if r.warn && len(dropped) > 0 {
		r.logger.Warn("removed rows with no data in any reconciliation column",
			zap.String("column", idColumn),
			zap.String("values", strings.Join(dropped, " ")))
	}

	return resolved, nil
}

// groupKey strips the first matching duplicate suffix from id. A match
// counts only if stripping leaves a non-empty remainder; otherwise the
// identity is its own group key.
func (r *Resolver) groupKey(id string) string {
	for _, s := range r.suffixes {
		if strings.HasSuffix(id, s) && len(id) > len(s) {
			return id[:len(id)-len(s)]
		}
	}
	return id
}

func cellString(c table.Cell) string {
	if c.Null {
		return ""
	}
	return c.Value
}
