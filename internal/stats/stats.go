// Package stats provides the contingency testing behind grouped figure
// annotations.
package stats

import (
	"fmt"
	"math"

	fet "github.com/glycerine/golang-fisher-exact"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sampletab/sampletab/internal/table"
)

// Contingency cross-tabulates the rows of t by the group and qual columns.
// It returns the counts matrix (one row per group value, one column per
// qual value) along with the group and qual labels in first-appearance
// order. Rows with a null group or qual cell are skipped.
func Contingency(t *table.Table, group, qual string) ([][]float64, []string, []string, error) {
	gi, err := t.ColumnIndex(group)
	if err != nil {
		return nil, nil, nil, err
	}
	qi, err := t.ColumnIndex(qual)
	if err != nil {
		return nil, nil, nil, err
	}

	var groups, quals []string
	groupIdx := make(map[string]int)
	qualIdx := make(map[string]int)
	type key struct{ g, q int }
	counts := make(map[key]float64)

	for i := 0; i < t.NumRows(); i++ {
		row := t.Row(i)
		if row[gi].Null || row[qi].Null {
			continue
		}
		g, ok := groupIdx[row[gi].Value]
		if !ok {
			g = len(groups)
			groupIdx[row[gi].Value] = g
			groups = append(groups, row[gi].Value)
		}
		q, ok := qualIdx[row[qi].Value]
		if !ok {
			q = len(quals)
			qualIdx[row[qi].Value] = q
			quals = append(quals, row[qi].Value)
		}
		counts[key{g, q}]++
	}

	matrix := make([][]float64, len(groups))
	for g := range matrix {
		matrix[g] = make([]float64, len(quals))
		for q := range matrix[g] {
			matrix[g][q] = counts[key{g, q}]
		}
	}
	return matrix, groups, quals, nil
}

// PValue computes the p-value for independence over a contingency matrix:
// Fisher's exact test (two-tailed) for a 2x2 table, chi-squared otherwise.
func PValue(counts [][]float64) (float64, error) {
	if len(counts) == 2 && len(counts[0]) == 2 && len(counts[1]) == 2 {
		return FisherExactTwoTail(
			int(counts[0][0]), int(counts[0][1]),
			int(counts[1][0]), int(counts[1][1])), nil
	}
	return ChiSquareP(counts)
}

// FisherExactTwoTail returns the two-tailed Fisher exact p-value for the
// 2x2 table [[a b] [c d]].
func FisherExactTwoTail(a, b, c, d int) float64 {
	_, _, _, twop := fet.FisherExactTest(a, b, c, d)
	return twop
}

// ChiSquareP returns the chi-squared p-value for independence over an
// observed counts matrix, with expected counts derived from the margins.
func ChiSquareP(obs [][]float64) (float64, error) {
	nrows := len(obs)
	if nrows < 2 {
		return 0, fmt.Errorf("chi-squared test requires at least 2 rows, got %d", nrows)
	}
	ncols := len(obs[0])
	if ncols < 2 {
		return 0, fmt.Errorf("chi-squared test requires at least 2 columns, got %d", ncols)
	}

	rowSums := make([]float64, nrows)
	colSums := make([]float64, ncols)
	var total float64
	for i, row := range obs {
		if len(row) != ncols {
			return 0, fmt.Errorf("ragged counts matrix at row %d", i)
		}
		for j, v := range row {
			rowSums[i] += v
			colSums[j] += v
			total += v
		}
	}
	if total == 0 {
		return 0, fmt.Errorf("counts matrix is empty")
	}

	var x2 float64
	for i := range obs {
		for j := range obs[i] {
			expected := rowSums[i] * colSums[j] / total
			if expected == 0 {
				continue
			}
			diff := obs[i][j] - expected
			x2 += diff * diff / expected
		}
	}

	dof := float64((nrows - 1) * (ncols - 1))
	dist := distuv.ChiSquared{K: dof}
	return dist.Survival(x2), nil
}

// RoundSigFigs rounds x to the given number of significant figures.
func RoundSigFigs(x float64, sigfigs int) (float64, error) {
	if sigfigs <= 0 {
		return 0, fmt.Errorf("sigfigs must be positive, got %d", sigfigs)
	}
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x, nil
	}
	magnitude := math.Ceil(math.Log10(math.Abs(x)))
	power := float64(sigfigs) - magnitude
	scale := math.Pow(10, power)
	return math.Round(x*scale) / scale, nil
}
