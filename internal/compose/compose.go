// Package compose assembles report figures: montages of rendered plots,
// caption boxes and in-place grayscale conversion.
package compose

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// MontageOptions configures a panel montage.
type MontageOptions struct {
	Width       int  // canvas width in pixels; default 2000
	PanelLabels bool // draw a, b, c, ... in each panel's corner
}

// Montage merges similarly sized images into one canvas laid out in two
// rows, column by column. The canvas height is corrected from the mean
// aspect ratio of the inputs so the panels fit snugly.
func Montage(files []string, outPath string, opts MontageOptions) error {
	if len(files) == 0 {
		return fmt.Errorf("no input images")
	}
	if opts.Width == 0 {
		opts.Width = 2000
	}

	images := make([]image.Image, len(files))
	for i, f := range files {
		img, err := imaging.Open(f)
		if err != nil {
			return fmt.Errorf("open panel %s: %w", f, err)
		}
		images[i] = img
	}

	w, h := correctSize(images, opts.Width)

	cols := (len(files) + 1) / 2
	subW := w / cols
	subH := h / 2

	canvas := imaging.New(w, h, color.White)
	origins := make([]image.Point, len(images))
	for i, img := range images {
		panel := imaging.Fit(img, subW, subH, imaging.Lanczos)
		origin := image.Pt(i/2*subW, i%2*subH)
		origins[i] = origin
		canvas = imaging.Paste(canvas, panel, origin)
	}

	if opts.PanelLabels {
		labeled, err := drawPanelLabels(canvas, origins, float64(w+h)/120)
		if err != nil {
			return err
		}
		return saveImage(labeled, outPath)
	}
	return saveImage(canvas, outPath)
}

// correctSize adjusts the requested width/height so the panels keep their
// mean aspect ratio across a two-row layout.
func correctSize(images []image.Image, width int) (int, int) {
	var sumW, sumH float64
	for _, img := range images {
		b := img.Bounds()
		sumW += float64(b.Dx())
		sumH += float64(b.Dy())
	}
	ratio := sumW / sumH
	height := int(float64(width) / ratio * 4 / float64(len(images)))
	return width, height
}

func drawPanelLabels(canvas image.Image, origins []image.Point, points float64) (image.Image, error) {
	dc := gg.NewContextForImage(canvas)
	face, err := fontFace(points)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(face)
	dc.SetRGB(0, 0, 0)
	for i, origin := range origins {
		label := string(rune('a' + i))
		dc.DrawString(label, float64(origin.X)+points/2, float64(origin.Y)+points)
	}
	return dc.Image(), nil
}

// CaptionOptions configures a caption box.
type CaptionOptions struct {
	Extend   int     // pixels added below the image; default 100
	FontSize float64 // default 20
	XText    int     // left indent of the caption text
}

// Caption extends the canvas below an image and draws a word-wrapped
// caption in the new space.
func Caption(inPath, msg, outPath string, opts CaptionOptions) error {
	if opts.Extend == 0 {
		opts.Extend = 100
	}
	if opts.FontSize == 0 {
		opts.FontSize = 20
	}

	img, err := imaging.Open(inPath)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	b := img.Bounds()

	canvas := imaging.New(b.Dx(), b.Dy()+opts.Extend, color.White)
	canvas = imaging.Paste(canvas, img, image.Pt(0, 0))

	dc := gg.NewContextForImage(canvas)
	face, err := fontFace(opts.FontSize)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetRGB(0, 0, 0)
	maxWidth := float64(b.Dx() - 2*opts.XText)
	dc.DrawStringWrapped(msg, float64(opts.XText), float64(b.Dy()), 0, 0,
		maxWidth, 1.4, gg.AlignLeft)

	return saveImage(dc.Image(), outPath)
}

// Grayscale converts an image file to grayscale, overwriting it.
func Grayscale(path string) error {
	img, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	if err := imaging.Save(imaging.Grayscale(img), path); err != nil {
		return fmt.Errorf("save grayscale image: %w", err)
	}
	return nil
}

func saveImage(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	return nil
}

func fontFace(points float64) (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse embedded font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: points}), nil
}
