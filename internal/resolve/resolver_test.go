package resolve

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sampletab/sampletab/internal/table"
)

// buildTable creates a table from string rows; "" means null.
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

// findRow returns the index of the row whose column value equals id.
func findRow(t *testing.T, tbl *table.Table, column, id string) int {
	t.Helper()
	ci, err := tbl.ColumnIndex(column)
	require.NoError(t, err)
	for i := 0; i < tbl.NumRows(); i++ {
		c := tbl.Row(i)[ci]
		if !c.Null && c.Value == id {
			return i
		}
	}
	t.Fatalf("row with %s=%s not found", column, id)
	return -1
}

func identities(t *testing.T, tbl *table.Table, column string) []string {
	t.Helper()
	ci, err := tbl.ColumnIndex(column)
	require.NoError(t, err)
	out := make([]string, 0, tbl.NumRows())
	for i := 0; i < tbl.NumRows(); i++ {
		out = append(out, tbl.Row(i)[ci].Value)
	}
	return out
}

func TestResolvePairFillsBothDirections(t *testing.T) {
	tbl := buildTable(t, []string{"Sample", "Symbol", "Exon"}, [][]string{
		{"A", "x", ""},
		{"A_2", "", "y"},
	})

	out, err := NewResolver().Resolve(tbl, "Sample", []string{"Symbol", "Exon"})
	require.NoError(t, err)
	require.Equal(t, 2, out.NumRows())

	for _, id := range []string{"A", "A_2"} {
		i := findRow(t, out, "Sample", id)
		row := out.Row(i)
		assert.Equal(t, "x", row[1].Value, "Symbol of %s", id)
		assert.Equal(t, "y", row[2].Value, "Exon of %s", id)
	}
}

func TestResolveSuffixRequiresExactTail(t *testing.T) {
	tbl := buildTable(t, []string{"Sample", "Symbol"}, [][]string{
		{"GH", "SKI"},
		{"GH_2", ""},
		{"GHI", "FBN1"},
	})

	r := NewResolver()
	r.SetSuffixes([]string{"_2"})
	out, err := r.Resolve(tbl, "Sample", []string{"Symbol"})
	require.NoError(t, err)

	// GH_2 joins GH's group and inherits its data; GHI stays apart.
	i := findRow(t, out, "Sample", "GH_2")
	assert.Equal(t, "SKI", out.Row(i)[1].Value)
	i = findRow(t, out, "Sample", "GHI")
	assert.Equal(t, "FBN1", out.Row(i)[1].Value)
}

func TestResolveThreeRowChain(t *testing.T) {
	// Only A_3 carries data; two passes propagate it to A.
	tbl := buildTable(t, []string{"Sample", "Symbol"}, [][]string{
		{"A", ""},
		{"A_2", ""},
		{"A_3", "SKI"},
	})

	out, err := NewResolver().Resolve(tbl, "Sample", []string{"Symbol"})
	require.NoError(t, err)
	require.Equal(t, 3, out.NumRows())

	for _, id := range []string{"A", "A_2", "A_3"} {
		i := findRow(t, out, "Sample", id)
		assert.Equal(t, "SKI", out.Row(i)[1].Value, "Symbol of %s", id)
	}
}

func TestResolveDropsRowsWithoutData(t *testing.T) {
	tbl := buildTable(t, []string{"Sample", "Symbol", "Exon", "Note"}, [][]string{
		{"GH", "SKI", "1/7", "keep"},
		{"JK", "", "", "has a note but no data"},
		{"LM", "-", "-", "dashes count as missing"},
	})

	out, err := NewResolver().Resolve(tbl, "Sample", []string{"Symbol", "Exon"})
	require.NoError(t, err)

	assert.Equal(t, []string{"GH"}, identities(t, out, "Sample"))
}

func TestResolveNeverFabricatesIdentities(t *testing.T) {
	tbl := buildTable(t, []string{"Sample", "Symbol"}, [][]string{
		{"GH", "SKI"},
		{"GH_2", ""},
		{"JK", ""},
		{"JK_2", "FBN1"},
	})

	out, err := NewResolver().Resolve(tbl, "Sample", []string{"Symbol"})
	require.NoError(t, err)

	input := map[string]bool{"GH": true, "GH_2": true, "JK": true, "JK_2": true}
	for _, id := range identities(t, out, "Sample") {
		assert.True(t, input[id], "identity %q not present in input", id)
	}
}

func TestResolveSingletonRowUnchanged(t *testing.T) {
	tbl := buildTable(t, []string{"Sample", "Symbol", "Exon"}, [][]string{
		{"GH", "SKI", ""},
	})

	out, err := NewResolver().Resolve(tbl, "Sample", []string{"Symbol", "Exon"})
	require.NoError(t, err)
	require.Equal(t, 1, out.NumRows())

	row := out.Row(0)
	assert.Equal(t, "GH", row[0].Value)
	assert.Equal(t, "SKI", row[1].Value)
	assert.True(t, row[2].Null)
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	tbl := buildTable(t, []string{"Sample", "Symbol"}, [][]string{
		{"A", "x"},
		{"A_2", ""},
		{"B", "-"},
	})

	_, err := NewResolver().Resolve(tbl, "Sample", []string{"Symbol"})
	require.NoError(t, err)

	// Original still has its null, its dash and its row order.
	assert.Equal(t, []string{"A", "A_2", "B"}, identities(t, tbl, "Sample"))
	assert.True(t, tbl.Row(1)[1].Null)
	assert.Equal(t, "-", tbl.Row(2)[1].Value)
}

func TestResolveValidation(t *testing.T) {
	tbl := buildTable(t, []string{"Sample", "Symbol"}, [][]string{
		{"GH", "SKI"},
	})
	r := NewResolver()

	_, err := r.Resolve(tbl, "Sample", nil)
	var argErr *InvalidArgumentError
	require.ErrorAs(t, err, &argErr)

	_, err = r.Resolve(tbl, "Missing", []string{"Symbol"})
	var colErr *table.ColumnNotFoundError
	require.ErrorAs(t, err, &colErr)
	assert.Equal(t, "Missing", colErr.Column)

	_, err = r.Resolve(tbl, "Sample", []string{"Symbol", "Missing"})
	require.ErrorAs(t, err, &colErr)
	assert.Equal(t, "Missing", colErr.Column)
}

func TestResolveWarnsOnceWithDroppedIdentities(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	tbl := buildTable(t, []string{"Sample", "Symbol"}, [][]string{
		{"GH", "SKI"},
		{"JK", ""},
		{"LM", ""},
	})

	r := NewResolver()
	r.SetLogger(zap.New(core))
	_, err := r.Resolve(tbl, "Sample", []string{"Symbol"})
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "Sample", fields["column"])
	values, ok := fields["values"].(string)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"JK", "LM"}, strings.Fields(values))
}

func TestResolveWarnSuppressed(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	tbl := buildTable(t, []string{"Sample", "Symbol"}, [][]string{
		{"JK", ""},
	})

	r := NewResolver()
	r.SetLogger(zap.New(core))
	r.SetWarnOnDrop(false)
	out, err := r.Resolve(tbl, "Sample", []string{"Symbol"})
	require.NoError(t, err)

	assert.Equal(t, 0, out.NumRows())
	assert.Equal(t, 0, logs.Len())
}

func TestGroupKeyStripMustLeaveRemainder(t *testing.T) {
	r := NewResolver()
	r.SetSuffixes([]string{"_2"})

	assert.Equal(t, "GH", r.groupKey("GH_2"))
	assert.Equal(t, "GH", r.groupKey("GH"))
	// Stripping "_2" from "_2" would leave nothing; it keys itself.
	assert.Equal(t, "_2", r.groupKey("_2"))
}
