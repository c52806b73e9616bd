package grid

import "fmt"

// CellSize is the footprint of one character cell in device pixels.
// All glyphs of a cache generation share the same cell size.
type CellSize struct {
	Width, Height int
}

// PixelSize is a physical surface size in device pixels.
type PixelSize struct {
	Width, Height uint32
}

// GridSize is a grid extent in cells.
type GridSize struct {
	Columns, Rows int
}

// GridSizeFor returns the largest grid that fits in p with cells of size c,
// discarding any partial trailing cell. Both cell dimensions must be
// positive; a zero cell size is a programmer error and panics.
func GridSizeFor(p PixelSize, c CellSize) GridSize {
	if c.Width <= 0 || c.Height <= 0 {
		panic(fmt.Sprintf("grid: invalid cell size %dx%d", c.Width, c.Height))
	}
	return GridSize{
		Columns: int(p.Width) / c.Width,
		Rows:    int(p.Height) / c.Height,
	}
}
