package rerank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sampletab/sampletab/internal/table"
)

func buildTable(t *testing.T, columns []string, rows [][]string) *table.Table {
	t.Helper()
	tbl, err := table.New(columns...)
	require.NoError(t, err)
	for _, r := range rows {
		cells := make([]table.Cell, len(r))
		for i, v := range r {
			if v == "" {
				cells[i] = table.Null
			} else {
				cells[i] = table.String(v)
			}
		}
		require.NoError(t, tbl.AppendRow(cells...))
	}
	return tbl
}

func row(t *testing.T, tbl *table.Table, sample string) map[string]string {
	t.Helper()
	si, err := tbl.ColumnIndex(ColSample)
	require.NoError(t, err)
	for i := 0; i < tbl.NumRows(); i++ {
		c := tbl.Row(i)[si]
		if c.Null || c.Value != sample {
			continue
		}
		out := make(map[string]string)
		for j, col := range tbl.Columns() {
			cell := tbl.Row(i)[j]
			if cell.Null {
				out[col] = "<null>"
			} else {
				out[col] = cell.Value
			}
		}
		return out
	}
	t.Fatalf("sample %s not found", sample)
	return nil
}

var variantColumns = []string{"Sample", "Symbol", "Exon", "AB", "Variant"}

func TestRerankReplacesLowAlleleBalance(t *testing.T) {
	mostDamaging := buildTable(t, variantColumns, [][]string{
		{"GH", "TGFBR2", "4/8", "0.12", "chr3:30691871G>A"},
		{"JK", "FBN1", "10/66", "0.48", "chr15:48505130C>T"},
	})
	allVariants := buildTable(t, variantColumns, [][]string{
		{"GH", "TGFBR2", "4/8", "0.12", "chr3:30691871G>A"},
		{"GH", "MYH11", "12/42", "0.44", "chr16:15711097G>T"},
		{"JK", "FBN1", "10/66", "0.48", "chr15:48505130C>T"},
	})

	out, err := NewReranker().Rerank(mostDamaging, allVariants)
	require.NoError(t, err)
	require.Equal(t, 2, out.NumRows())

	// GH failed the AB threshold and picks up its next most damaging variant.
	gh := row(t, out, "GH")
	assert.Equal(t, "MYH11", gh["Symbol"])
	assert.Equal(t, "chr16:15711097G>T", gh["Variant"])

	// JK passed and is untouched.
	jk := row(t, out, "JK")
	assert.Equal(t, "FBN1", jk["Symbol"])
}

func TestRerankReplacesFalsePositiveGeneExon(t *testing.T) {
	mostDamaging := buildTable(t, variantColumns, [][]string{
		{"GH", "SKI", "1/7", "0.52", "chr1:2160180G>T"},
	})
	allVariants := buildTable(t, variantColumns, [][]string{
		{"GH", "SKI", "1/7", "0.52", "chr1:2160180G>T"},
		{"GH", "COL3A1", "30/51", "0.47", "chr2:189011543G>A"},
	})

	out, err := NewReranker().Rerank(mostDamaging, allVariants)
	require.NoError(t, err)

	gh := row(t, out, "GH")
	assert.Equal(t, "COL3A1", gh["Symbol"])
}

func TestRerankKeepsVariantWhenNoAlternative(t *testing.T) {
	mostDamaging := buildTable(t, variantColumns, [][]string{
		{"GH", "SKI", "1/7", "0.52", "chr1:2160180G>T"},
	})
	// The only variant for GH is the flagged one.
	allVariants := buildTable(t, variantColumns, [][]string{
		{"GH", "SKI", "1/7", "0.52", "chr1:2160180G>T"},
	})

	out, err := NewReranker().Rerank(mostDamaging, allVariants)
	require.NoError(t, err)

	gh := row(t, out, "GH")
	assert.Equal(t, "SKI", gh["Symbol"])
}

func TestRerankSkipsEmptyRecords(t *testing.T) {
	mostDamaging := buildTable(t, variantColumns, [][]string{
		{"GH", "", "", "", ""},
		{"JK", "-", "-", "-", ""},
	})
	allVariants := buildTable(t, variantColumns, nil)

	out, err := NewReranker().Rerank(mostDamaging, allVariants)
	require.NoError(t, err)
	assert.Equal(t, 2, out.NumRows())
}

func TestRerankPicksHighestRankedAlternative(t *testing.T) {
	mostDamaging := buildTable(t, variantColumns, [][]string{
		{"GH", "TGFBR2", "4/8", "0.05", "chr3:30691871G>A"},
	})
	// allVariants is score-sorted; the first acceptable row wins.
	allVariants := buildTable(t, variantColumns, [][]string{
		{"GH", "TGFBR2", "4/8", "0.05", "chr3:30691871G>A"},
		{"GH", "SKI", "1/7", "0.55", "chr1:2160180G>T"},
		{"GH", "MYH11", "12/42", "0.44", "chr16:15711097G>T"},
		{"GH", "ACTA2", "6/9", "0.41", "chr10:90694735C>T"},
	})

	out, err := NewReranker().Rerank(mostDamaging, allVariants)
	require.NoError(t, err)

	// SKI 1/7 is the known false positive and is skipped over.
	gh := row(t, out, "GH")
	assert.Equal(t, "MYH11", gh["Symbol"])
}

func TestRerankProjectsMissingColumnsAsNull(t *testing.T) {
	mostDamaging := buildTable(t, []string{"Sample", "Symbol", "Exon", "AB", "Reviewed"}, [][]string{
		{"GH", "TGFBR2", "4/8", "0.05", "yes"},
	})
	allVariants := buildTable(t, []string{"Sample", "Symbol", "Exon", "AB"}, [][]string{
		{"GH", "MYH11", "12/42", "0.44"},
	})

	out, err := NewReranker().Rerank(mostDamaging, allVariants)
	require.NoError(t, err)

	gh := row(t, out, "GH")
	assert.Equal(t, "MYH11", gh["Symbol"])
	assert.Equal(t, "<null>", gh["Reviewed"])
}

func TestRerankMissingColumn(t *testing.T) {
	mostDamaging := buildTable(t, []string{"Sample", "Symbol", "Exon"}, nil)
	allVariants := buildTable(t, variantColumns, nil)

	_, err := NewReranker().Rerank(mostDamaging, allVariants)
	var colErr *table.ColumnNotFoundError
	require.ErrorAs(t, err, &colErr)
	assert.Equal(t, ColAB, colErr.Column)
}
