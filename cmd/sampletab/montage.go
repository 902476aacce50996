package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sampletab/sampletab/internal/compose"
)

func runMontage(args []string) int {
	fs := flag.NewFlagSet("montage", flag.ExitOnError)

	var (
		width       int
		panelLabels bool
		outputFile  string
	)

	fs.IntVar(&width, "width", 2000, "Canvas width in pixels")
	fs.BoolVar(&panelLabels, "panel-labels", false, "Draw a, b, c, ... in each panel's corner")
	fs.StringVar(&outputFile, "o", "montage.png", "Output image file")
	fs.StringVar(&outputFile, "output", "montage.png", "Output image file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Merge similarly sized figures into one panel image.

Panels are laid out in two rows, column by column, on a white canvas whose
height is corrected to the panels' mean aspect ratio.

Usage:
  sampletab montage [options] <image-file>...

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  sampletab montage -o figure1.png panel_a.png panel_b.png panel_c.png panel_d.png
  sampletab montage --panel-labels -o figure1.png a.png b.png c.png d.png
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: at least one image file argument required\n\n")
		fs.Usage()
		return ExitUsage
	}

	opts := compose.MontageOptions{Width: width, PanelLabels: panelLabels}
	if err := compose.Montage(fs.Args(), outputFile, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", outputFile)
	return ExitSuccess
}

func runCaption(args []string) int {
	fs := flag.NewFlagSet("caption", flag.ExitOnError)

	var (
		text       string
		extend     int
		fontSize   float64
		indent     int
		outputFile string
	)

	fs.StringVar(&text, "text", "", "Caption text (required)")
	fs.IntVar(&extend, "extend", 100, "Pixels added below the image for the caption")
	fs.Float64Var(&fontSize, "font-size", 20, "Caption font size in points")
	fs.IntVar(&indent, "indent", 0, "Left indent of the caption text in pixels")
	fs.StringVar(&outputFile, "o", "", "Output image file (required)")
	fs.StringVar(&outputFile, "output", "", "Output image file (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Add a word-wrapped caption box below a figure.

Usage:
  sampletab caption [options] <image-file>

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  sampletab caption --text "Figure 1: outcomes by cohort." -o figure1_captioned.png figure1.png
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: image file argument required\n\n")
		fs.Usage()
		return ExitUsage
	}
	if text == "" || outputFile == "" {
		fmt.Fprintf(os.Stderr, "Error: --text and --output are required\n")
		return ExitUsage
	}

	opts := compose.CaptionOptions{Extend: extend, FontSize: fontSize, XText: indent}
	if err := compose.Caption(fs.Arg(0), text, outputFile, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", outputFile)
	return ExitSuccess
}

func runGrayscale(args []string) int {
	fs := flag.NewFlagSet("grayscale", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Convert figures to grayscale, overwriting the input files.

Usage:
  sampletab grayscale <image-file>...
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: at least one image file argument required\n\n")
		fs.Usage()
		return ExitUsage
	}

	for _, f := range fs.Args() {
		if err := compose.Grayscale(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
	}
	return ExitSuccess
}
