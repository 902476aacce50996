package plot

import (
	"image/color"
	"io"
	"sort"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/sampletab/sampletab/internal/table"
	"github.com/sampletab/sampletab/internal/transform"
)

// BarOptions configures a categorical count bar chart.
type BarOptions struct {
	Title  string
	XLabel string
	YLabel string
	// Rename maps category values to display names.
	Rename map[string]string
	// Order fixes the category order; unlisted values sort last.
	Order []string
}

// CountBars builds a bar chart of the value counts of the named column,
// with each bar labeled "name\nn = N".
func CountBars(t *table.Table, column string, opts BarOptions) (*gplot.Plot, error) {
	values, counts, err := t.ValueCounts(column)
	if err != nil {
		return nil, err
	}

	count := make(map[string]int, len(values))
	for i, v := range values {
		count[v] = counts[i]
	}

	var cat *transform.Categorical
	if len(opts.Order) > 0 {
		cat = transform.NewCategorical(opts.Order)
		sort.SliceStable(values, func(i, j int) bool {
			return cat.Rank(values[i]) < cat.Rank(values[j])
		})
	}

	labels, err := transform.TickLabels(t, column, true, opts.Rename, cat)
	if err != nil {
		return nil, err
	}

	heights := make(plotter.Values, len(values))
	for i, v := range values {
		heights[i] = float64(count[v])
	}

	p := gplot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel

	bars, err := plotter.NewBarChart(heights, vg.Points(40))
	if err != nil {
		return nil, err
	}
	bars.Color = color.RGBA{R: 250, G: 128, B: 114, A: 255}
	bars.LineStyle.Width = vg.Points(0.5)
	p.Add(bars)
	p.NominalX(labels...)

	return p, nil
}

// WriteSVG renders a plot as SVG to w.
func WriteSVG(p *gplot.Plot, w io.Writer) error {
	writer, err := p.WriterTo(8*vg.Inch, 6*vg.Inch, "svg")
	if err != nil {
		return err
	}
	_, err = writer.WriteTo(w)
	return err
}

// SavePlot writes a plot to the given path; the format follows the file
// extension (png, svg, pdf, ...).
func SavePlot(p *gplot.Plot, path string) error {
	return p.Save(8*vg.Inch, 6*vg.Inch, path)
}
