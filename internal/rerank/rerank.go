// Package rerank replaces most-damaging variant calls that fail quality
// criteria with each sample's next most damaging variant.
package rerank

import (
	"strconv"
	"strings"

	"github.com/sampletab/sampletab/internal/table"
)

// Column names shared by the most-damaging and all-variants tables.
const (
	ColSample = "Sample"
	ColSymbol = "Symbol"
	ColExon   = "Exon"
	ColAB     = "AB"
)

// Reranker selects replacement variants for samples whose current
// most-damaging variant fails the allele-balance threshold or falls inside
// a known false-positive gene/exon.
type Reranker struct {
	// ABThreshold is the minimum acceptable allele balance.
	ABThreshold float64
	// Gene is a gene symbol with a known false-positive call, or "".
	Gene string
	// Exon is the exon of Gene harboring the false positive, or "".
	Exon string
}

// NewReranker creates a reranker with the workflow defaults.
func NewReranker() *Reranker {
	return &Reranker{
		ABThreshold: 0.3,
		Gene:        "SKI",
		Exon:        "1/7",
	}
}

// Rerank returns a copy of mostDamaging where every sample whose variant is
// flagged as unwanted has it replaced by the sample's highest-ranked
// acceptable variant from allVariants. allVariants must be sorted by
// damage score, most damaging first; a flagged sample with no acceptable
// alternative keeps its existing variant. The output carries exactly the
// columns of mostDamaging; replacement values for columns absent from
// allVariants are null.
func (r *Reranker) Rerank(mostDamaging, allVariants *table.Table) (*table.Table, error) {
	for _, t := range []*table.Table{mostDamaging, allVariants} {
		for _, c := range []string{ColSample, ColSymbol, ColExon, ColAB} {
			if _, err := t.ColumnIndex(c); err != nil {
				return nil, err
			}
		}
	}

	flagged := r.flaggedSamples(mostDamaging)
	replacements := r.bestAlternatives(allVariants, flagged)

	out := mostDamaging.Copy()
	sampleIdx, _ := out.ColumnIndex(ColSample)
	for i := 0; i < out.NumRows(); i++ {
		row := out.Row(i)
		sample := row[sampleIdx]
		if sample.Null {
			continue
		}
		alt, ok := replacements[sample.Value]
		if !ok {
			continue
		}
		for j, col := range out.Columns() {
			row[j] = projectCell(allVariants, alt, col)
		}
	}
	return out, nil
}

// flaggedSamples returns the samples whose most-damaging variant is
// unwanted. Rows with no data in Symbol, Exon and AB are ignored, matching
// the resolver's treatment of empty records.
func (r *Reranker) flaggedSamples(mostDamaging *table.Table) map[string]bool {
	sampleIdx, _ := mostDamaging.ColumnIndex(ColSample)
	symbolIdx, _ := mostDamaging.ColumnIndex(ColSymbol)
	exonIdx, _ := mostDamaging.ColumnIndex(ColExon)
	abIdx, _ := mostDamaging.ColumnIndex(ColAB)

	flagged := make(map[string]bool)
	for i := 0; i < mostDamaging.NumRows(); i++ {
		row := mostDamaging.Row(i)
		if missing(row[symbolIdx]) && missing(row[exonIdx]) && missing(row[abIdx]) {
			continue
		}
		if r.unwanted(row[symbolIdx], row[exonIdx], row[abIdx]) && !row[sampleIdx].Null {
			flagged[row[sampleIdx].Value] = true
		}
	}
	return flagged
}

// bestAlternatives returns, per flagged sample, the first acceptable
// variant row index in allVariants.
func (r *Reranker) bestAlternatives(allVariants *table.Table, flagged map[string]bool) map[string]int {
	sampleIdx, _ := allVariants.ColumnIndex(ColSample)
	symbolIdx, _ := allVariants.ColumnIndex(ColSymbol)
	exonIdx, _ := allVariants.ColumnIndex(ColExon)
	abIdx, _ := allVariants.ColumnIndex(ColAB)

	best := make(map[string]int)
	for i := 0; i < allVariants.NumRows(); i++ {
		row := allVariants.Row(i)
		if row[sampleIdx].Null || !flagged[row[sampleIdx].Value] {
			continue
		}
		if r.unwanted(row[symbolIdx], row[exonIdx], row[abIdx]) {
			continue
		}
		if _, ok := best[row[sampleIdx].Value]; !ok {
			best[row[sampleIdx].Value] = i
		}
	}
	return best
}

// unwanted reports whether a variant fails the allele-balance threshold or
// lies in the configured false-positive gene/exon. An unparseable AB never
// fails the threshold check.
func (r *Reranker) unwanted(symbol, exon, ab table.Cell) bool {
	if v, ok := parseAB(ab); ok && v < r.ABThreshold {
		return true
	}
	if r.Gene != "" && r.Exon != "" {
		return contains(symbol, r.Gene) && contains(exon, r.Exon)
	}
	if r.Gene != "" {
		return contains(symbol, r.Gene)
	}
	return false
}

func parseAB(c table.Cell) (float64, bool) {
	if missing(c) {
		return 0, false
	}
	v, err := strconv.ParseFloat(c.Value, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func missing(c table.Cell) bool {
	return c.Null || c.Value == table.NullMarker
}

func contains(c table.Cell, substr string) bool {
	return !c.Null && strings.Contains(c.Value, substr)
}

// projectCell maps a replacement row onto a destination column by name.
func projectCell(src *table.Table, row int, column string) table.Cell {
	ci, err := src.ColumnIndex(column)
	if err != nil {
		return table.Null
	}
	return src.Row(row)[ci]
}
