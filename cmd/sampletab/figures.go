package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/sampletab/sampletab/internal/plot"
	"github.com/sampletab/sampletab/internal/table"
)

func runPiechart(args []string) int {
	fs := flag.NewFlagSet("piechart", flag.ExitOnError)

	var (
		group      string
		qual       string
		title      string
		fontSize   float64
		colors     string
		width      int
		height     int
		outputFile string
	)

	fs.StringVar(&group, "group", "", "Column splitting the table into two groups (required)")
	fs.StringVar(&qual, "qual", "", "Categorical column rendered in each pie (required)")
	fs.StringVar(&title, "title", "", "Plot title")
	fs.Float64Var(&fontSize, "font-size", 13, "Label font size in points")
	fs.StringVar(&colors, "colors", "", "Comma-separated hex slice colors (default: config plot.colors, else built-in)")
	fs.IntVar(&width, "width", 1500, "Canvas width in pixels")
	fs.IntVar(&height, "height", 1200, "Canvas height in pixels")
	fs.StringVar(&outputFile, "o", "piechart.png", "Output PNG file")
	fs.StringVar(&outputFile, "output", "piechart.png", "Output PNG file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Render side-by-side pie charts of a categorical column, split by group.

The two pies are bracketed with the p-value of the group/category
contingency test (Fisher exact for 2x2 tables, chi-squared otherwise).

Usage:
  sampletab piechart [options] <input-file>

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  sampletab piechart --group Cohort --qual Outcome -o outcome.png samples.tsv
  sampletab piechart --group Cohort --qual Outcome --title "Outcomes by cohort" samples.tsv
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: input file argument required\n\n")
		fs.Usage()
		return ExitUsage
	}
	if group == "" || qual == "" {
		fmt.Fprintf(os.Stderr, "Error: --group and --qual are required\n")
		return ExitUsage
	}

	tbl, err := table.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	if colors == "" {
		colors = viper.GetString("plot.colors")
	}
	opts := plot.PieOptions{
		Title:    title,
		FontSize: fontSize,
		Width:    width,
		Height:   height,
	}
	if colors != "" {
		opts.Colors = splitList(colors)
	}

	if err := plot.SaveGroupedPie(tbl, group, qual, opts, outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", outputFile)
	return ExitSuccess
}

func runCountplot(args []string) int {
	fs := flag.NewFlagSet("countplot", flag.ExitOnError)

	var (
		column     string
		title      string
		xlabel     string
		ylabel     string
		order      string
		outputFile string
	)

	fs.StringVar(&column, "column", "", "Categorical column to count (required)")
	fs.StringVar(&title, "title", "", "Plot title")
	fs.StringVar(&xlabel, "xlabel", "", "X axis label")
	fs.StringVar(&ylabel, "ylabel", "Count", "Y axis label")
	fs.StringVar(&order, "order", "", "Comma-separated category order")
	fs.StringVar(&outputFile, "o", "countplot.png", "Output file (png, svg, pdf, ...)")
	fs.StringVar(&outputFile, "output", "countplot.png", "Output file (png, svg, pdf, ...)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Render a bar chart of categorical value counts.

Each bar is labeled with its category name and "n = <count>".

Usage:
  sampletab countplot [options] <input-file>

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  sampletab countplot --column Outcome -o outcome_counts.png samples.tsv
  sampletab countplot --column Outcome --order Mild,Moderate,Severe samples.tsv
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: input file argument required\n\n")
		fs.Usage()
		return ExitUsage
	}
	if column == "" {
		fmt.Fprintf(os.Stderr, "Error: --column is required\n")
		return ExitUsage
	}

	tbl, err := table.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	opts := plot.BarOptions{
		Title:  title,
		XLabel: xlabel,
		YLabel: ylabel,
	}
	if order != "" {
		opts.Order = splitList(order)
	}

	p, err := plot.CountBars(tbl, column, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	if err := plot.SavePlot(p, outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving plot: %v\n", err)
		return ExitError
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", outputFile)
	return ExitSuccess
}
