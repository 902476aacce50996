package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsDuplicateColumns(t *testing.T) {
	_, err := New("Sample", "AB", "Sample")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate column")
}

func TestAppendRowLengthMismatch(t *testing.T) {
	tbl, err := New("Sample", "AB")
	require.NoError(t, err)

	err = tbl.AppendRow(String("GH"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2 cells")
}

func TestGetSet(t *testing.T) {
	tbl, err := New("Sample", "AB")
	require.NoError(t, err)
	require.NoError(t, tbl.AppendRow(String("GH"), Null))

	c, err := tbl.Get(0, "AB")
	require.NoError(t, err)
	assert.True(t, c.Null)

	require.NoError(t, tbl.Set(0, "AB", String("0.45")))
	c, err = tbl.Get(0, "AB")
	require.NoError(t, err)
	assert.Equal(t, "0.45", c.Value)

	_, err = tbl.Get(0, "missing")
	var colErr *ColumnNotFoundError
	require.ErrorAs(t, err, &colErr)
	assert.Equal(t, "missing", colErr.Column)
}

func TestCopyIsDeep(t *testing.T) {
	tbl, err := New("Sample")
	require.NoError(t, err)
	require.NoError(t, tbl.AppendRow(String("GH")))

	cp := tbl.Copy()
	require.NoError(t, cp.Set(0, "Sample", String("changed")))

	orig, err := tbl.Get(0, "Sample")
	require.NoError(t, err)
	assert.Equal(t, "GH", orig.Value)
}

func TestReplaceAll(t *testing.T) {
	tbl, err := New("Sample", "AB", "Note")
	require.NoError(t, err)
	require.NoError(t, tbl.AppendRow(String("GH"), String("-"), String("-")))
	require.NoError(t, tbl.AppendRow(String("-"), String("0.3"), Null))

	tbl.ReplaceAll("-")

	for _, pos := range []struct {
		row int
		col string
	}{
		{0, "AB"}, {0, "Note"}, {1, "Sample"},
	} {
		c, err := tbl.Get(pos.row, pos.col)
		require.NoError(t, err)
		assert.True(t, c.Null, "row %d col %s", pos.row, pos.col)
	}
	c, err := tbl.Get(1, "AB")
	require.NoError(t, err)
	assert.Equal(t, "0.3", c.Value)
}

func TestSortStableAndFilter(t *testing.T) {
	tbl, err := New("Sample")
	require.NoError(t, err)
	for _, s := range []string{"b", "c", "a"} {
		require.NoError(t, tbl.AppendRow(String(s)))
	}

	tbl.SortStable(func(a, b []Cell) bool { return a[0].Value < b[0].Value })
	assert.Equal(t, "a", tbl.Row(0)[0].Value)
	assert.Equal(t, "c", tbl.Row(2)[0].Value)

	kept := tbl.Filter(func(row []Cell) bool { return row[0].Value != "b" })
	assert.Equal(t, 2, kept.NumRows())
	assert.Equal(t, 3, tbl.NumRows())
}

func TestValueCounts(t *testing.T) {
	tbl, err := New("Outcome")
	require.NoError(t, err)
	for _, s := range []string{"Mild", "Severe", "Mild"} {
		require.NoError(t, tbl.AppendRow(String(s)))
	}
	require.NoError(t, tbl.AppendRow(Null))

	values, counts, err := tbl.ValueCounts("Outcome")
	require.NoError(t, err)
	assert.Equal(t, []string{"Mild", "Severe"}, values)
	assert.Equal(t, []int{2, 1}, counts)
}
