// Package plot renders the report figures: grouped pie charts and
// categorical count bar charts.
package plot

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/sampletab/sampletab/internal/stats"
	"github.com/sampletab/sampletab/internal/table"
)

// UnknownLabel replaces null values of the qualitative column before
// counting, so missing data shows up as its own slice.
const UnknownLabel = "Unknown"

// DefaultPieColors are cycled through the slices of each pie.
var DefaultPieColors = []string{
	"#FA8072", // salmon
	"#40E0D0", // turquoise
	"#C0C0C0", // silver
	"#FFFFFF", // white
}

// PieOptions configures a grouped pie chart.
type PieOptions struct {
	Title    string
	FontSize float64  // label point size; default 13
	Colors   []string // hex slice colors; default DefaultPieColors
	Width    int      // canvas width in pixels; default 1500
	Height   int      // canvas height in pixels; default 1200
}

type pieSlice struct {
	label    string
	fraction float64
}

// GroupedPie splits the table into the two values of the group column and
// renders the distribution of the qual column in each as side-by-side pie
// charts, bracketed with the p-value of the group/qual contingency test.
// Rows with a null group cell are dropped; null qual cells count as
// UnknownLabel. The group column must hold exactly two distinct values.
func GroupedPie(t *table.Table, group, qual string, opts PieOptions) (image.Image, error) {
	if opts.FontSize == 0 {
		opts.FontSize = 13
	}
	if len(opts.Colors) == 0 {
		opts.Colors = DefaultPieColors
	}
	if opts.Width == 0 {
		opts.Width = 1500
	}
	if opts.Height == 0 {
		opts.Height = 1200
	}

	gi, err := t.ColumnIndex(group)
	if err != nil {
		return nil, err
	}
	qi, err := t.ColumnIndex(qual)
	if err != nil {
		return nil, err
	}

	working := t.Filter(func(row []table.Cell) bool {
		return !row[gi].Null
	})
	for i := 0; i < working.NumRows(); i++ {
		row := working.Row(i)
		if row[qi].Null {
			row[qi] = table.String(UnknownLabel)
		}
	}

	counts, groups, divisions, err := stats.Contingency(working, group, qual)
	if err != nil {
		return nil, err
	}
	if len(groups) != 2 {
		return nil, fmt.Errorf("group column %q must have exactly 2 distinct values, got %d", group, len(groups))
	}

	pvalue, err := stats.PValue(counts)
	if err != nil {
		return nil, err
	}
	pvalue, _ = stats.RoundSigFigs(pvalue, 3)

	groupSizes := make([]float64, len(groups))
	slices := make([][]pieSlice, len(groups))
	for g := range groups {
		var total float64
		for _, n := range counts[g] {
			total += n
		}
		groupSizes[g] = total
		// Zero-count divisions are removed rather than drawn as empty slices.
		for q, n := range counts[g] {
			if n == 0 || total == 0 {
				continue
			}
			slices[g] = append(slices[g], pieSlice{label: divisions[q], fraction: n / total})
		}
	}

	return renderGroupedPie(groups, groupSizes, slices, pvalue, opts)
}

// SaveGroupedPie renders the chart and writes it as a PNG.
func SaveGroupedPie(t *table.Table, group, qual string, opts PieOptions, path string) error {
	img, err := GroupedPie(t, group, qual, opts)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("save pie chart: %w", err)
	}
	return nil
}

func renderGroupedPie(groups []string, sizes []float64, slices [][]pieSlice, pvalue float64, opts PieOptions) (image.Image, error) {
	w := float64(opts.Width)
	h := float64(opts.Height)

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	face, err := fontFace(opts.FontSize * 2)
	if err != nil {
		return nil, err
	}
	titleFace, err := fontFace(opts.FontSize * 4)
	if err != nil {
		return nil, err
	}

	if opts.Title != "" {
		dc.SetFontFace(titleFace)
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(opts.Title, w/2, h*0.06, 0.5, 0.5)
	}
	dc.SetFontFace(face)

	radius := 0.18 * math.Min(w, h)
	cy := h * 0.48
	centers := []float64{w * 0.28, w * 0.72}

	for g := range groups {
		drawPie(dc, centers[g], cy, radius, slices[g], opts.Colors)

		caption := fmt.Sprintf("%s:", groups[g])
		count := fmt.Sprintf("n = %d", int(sizes[g]))
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(caption, centers[g], cy+radius*1.45, 0.5, 0.5)
		dc.DrawStringAnchored(count, centers[g], cy+radius*1.45+opts.FontSize*2.4, 0.5, 0.5)
	}

	drawBracket(dc, centers[0], centers[1], cy-radius*1.35, radius*0.1,
		fmt.Sprintf("p = %v", pvalue))

	return dc.Image(), nil
}

func drawPie(dc *gg.Context, cx, cy, radius float64, slices []pieSlice, colors []string) {
	angle := -math.Pi / 2 // start at twelve o'clock
	for i, s := range slices {
		sweep := s.fraction * 2 * math.Pi

		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, radius, angle, angle+sweep)
		dc.ClosePath()
		dc.SetHexColor(colors[i%len(colors)])
		dc.FillPreserve()
		dc.SetRGB(0.35, 0.35, 0.35)
		dc.SetLineWidth(1.5)
		dc.Stroke()

		mid := angle + sweep/2
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(s.label,
			cx+math.Cos(mid)*radius*1.18,
			cy+math.Sin(mid)*radius*1.18, 0.5, 0.5)
		dc.DrawStringAnchored(fmt.Sprintf("%.1f%%", s.fraction*100),
			cx+math.Cos(mid)*radius*0.6,
			cy+math.Sin(mid)*radius*0.6, 0.5, 0.5)

		angle += sweep
	}
}

// drawBracket draws a square bracket between two x positions with a value
// centered above it.
func drawBracket(dc *gg.Context, x1, x2, y, tick float64, value string) {
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(2)
	dc.MoveTo(x1, y)
	dc.LineTo(x1, y-tick)
	dc.LineTo(x2, y-tick)
	dc.LineTo(x2, y)
	dc.Stroke()
	dc.DrawStringAnchored(value, (x1+x2)/2, y-tick*2.2, 0.5, 0.5)
}
