// Command griddemo renders a styled character grid offscreen and saves
// it as a PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"golang.org/x/image/font/gofont/gomono"

	"github.com/gogpu/grid"
	"github.com/gogpu/grid/glyph"
	"github.com/gogpu/grid/render"
)

func main() {
	var (
		width    = flag.Uint("width", grid.DefaultWindowWidth, "surface width in pixels")
		height   = flag.Uint("height", grid.DefaultWindowHeight, "surface height in pixels")
		fontPath = flag.String("font", "", "TTF font file (default: embedded Go Mono)")
		fontSize = flag.Float64("size", grid.DefaultFontSize, "font size in points")
		output   = flag.String("output", "grid.png", "output file")
	)
	flag.Parse()

	src, err := loadFont(*fontPath)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	cache, err := glyph.New(src, *fontSize)
	if err != nil {
		log.Fatalf("Failed to build glyph cache: %v", err)
	}
	cell := cache.CellSize()
	log.Printf("Font %q at %gpt: cell %dx%d px", src.Name(), cache.FontSize(), cell.Width, cell.Height)

	size := grid.PixelSize{Width: uint32(*width), Height: uint32(*height)} //nolint:gosec // flag values are window-sized
	r, err := render.New(cache, render.WithSize(size.Width, size.Height))
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer r.Close()

	canvas := grid.NewCanvas(grid.GridSizeFor(size, cell))
	drawDemo(canvas)

	r.Update(canvas)
	if err := r.Render(); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	offscreen, ok := r.Surface().(*render.Offscreen)
	if !ok {
		log.Fatal("Renderer is not offscreen")
	}
	img, err := offscreen.ReadPixels()
	if err != nil {
		log.Fatalf("Failed to read pixels: %v", err)
	}
	if err := savePNG(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d)", *output, *width, *height)
}

func loadFont(path string) (*glyph.FontSource, error) {
	if path == "" {
		return glyph.NewFontSource(gomono.TTF)
	}
	return glyph.NewFontSourceFromFile(path)
}

// drawDemo fills the canvas with a style showcase.
func drawDemo(c *grid.Canvas) {
	size := c.Size()

	title := grid.Style{Foreground: grid.Black, Background: grid.White}
	x := c.SetString(1, 1, " grid renderer demo ", title)
	c.SetString(x+1, 1, "cells drawn on the GPU", grid.DefaultStyle)

	bold := grid.DefaultStyle
	bold.Attrs = grid.AttrBold
	italic := grid.DefaultStyle
	italic.Attrs = grid.AttrItalic
	underline := grid.DefaultStyle
	underline.Attrs = grid.AttrUnderline
	reverse := grid.DefaultStyle
	reverse.Attrs = grid.AttrReverse

	c.SetString(1, 3, "plain", grid.DefaultStyle)
	c.SetString(1, 4, "bold", bold)
	c.SetString(1, 5, "italic", italic)
	c.SetString(1, 6, "underline", underline)
	c.SetString(1, 7, "reverse", reverse)

	c.SetString(1, 9, "wide runes: 漢字 かな", grid.DefaultStyle)

	// A palette strip along the bottom.
	colors := []grid.Color{
		grid.RGB(205, 49, 49),
		grid.RGB(13, 188, 121),
		grid.RGB(229, 229, 16),
		grid.RGB(36, 114, 200),
		grid.RGB(188, 63, 188),
		grid.RGB(17, 168, 205),
		grid.RGB(229, 229, 229),
	}
	row := size.Rows - 2
	if row < 0 {
		return
	}
	for i, col := range colors {
		x0 := 1 + i*4
		for dx := 0; dx < 4 && x0+dx < size.Columns; dx++ {
			c.SetCell(x0+dx, row, grid.Cell{Style: grid.Style{Foreground: grid.White, Background: col}})
		}
	}
}

func savePNG(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
