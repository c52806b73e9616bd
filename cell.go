package grid

// Color is an 8-bit RGBA color. The renderer treats it as straight
// (non-premultiplied) alpha.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	Black = Color{0, 0, 0, 255}
	White = Color{255, 255, 255, 255}
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA returns a color with explicit alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Attr is a bitmask of cell style attributes.
type Attr uint8

const (
	// AttrBold renders the glyph with a synthetic bold (double-strike).
	AttrBold Attr = 1 << iota
	// AttrItalic renders the glyph with a synthetic italic (shear).
	AttrItalic
	// AttrUnderline draws an underline across the cell.
	AttrUnderline
	// AttrReverse swaps foreground and background at render time.
	AttrReverse
)

// Has reports whether all attributes in mask are set.
func (a Attr) Has(mask Attr) bool { return a&mask == mask }

// Style describes how a cell is painted.
type Style struct {
	Foreground Color
	Background Color
	Attrs      Attr
}

// DefaultStyle is white on black with no attributes.
var DefaultStyle = Style{Foreground: White, Background: Black}

// Cell is one character cell of a canvas. A Rune of 0 renders as an empty
// cell (background only); it is also what SetString leaves in the cell to
// the right of a wide rune.
type Cell struct {
	Rune  rune
	Style Style
}

// Canvas is a dense row-major grid of cells. The application draws into a
// Canvas and hands it to the renderer, which reads it without modifying it.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	size  GridSize
	cells []Cell
}

// NewCanvas creates a canvas of the given size filled with empty cells in
// the default style. Negative dimensions are treated as zero.
func NewCanvas(size GridSize) *Canvas {
	if size.Columns < 0 {
		size.Columns = 0
	}
	if size.Rows < 0 {
		size.Rows = 0
	}
	c := &Canvas{size: size}
	c.cells = make([]Cell, size.Columns*size.Rows)
	c.Fill(Cell{Style: DefaultStyle})
	return c
}

// Size returns the canvas dimensions in cells.
func (c *Canvas) Size() GridSize { return c.size }

// Cell returns the cell at (x, y). Out-of-range coordinates return the
// zero Cell.
func (c *Canvas) Cell(x, y int) Cell {
	if !c.inBounds(x, y) {
		return Cell{}
	}
	return c.cells[y*c.size.Columns+x]
}

// SetCell stores a cell at (x, y). Out-of-range coordinates are ignored.
func (c *Canvas) SetCell(x, y int, cell Cell) {
	if !c.inBounds(x, y) {
		return
	}
	c.cells[y*c.size.Columns+x] = cell
}

// Fill sets every cell of the canvas to cell.
func (c *Canvas) Fill(cell Cell) {
	for i := range c.cells {
		c.cells[i] = cell
	}
}

// SetString writes s starting at (x, y) in the given style and returns the
// column after the last cell written. Wide runes occupy two cells: the rune
// in the first, an empty placeholder in the second. Writing clips at the
// canvas edge; there is no wrapping.
func (c *Canvas) SetString(x, y int, s string, style Style) int {
	for _, r := range s {
		w := RuneWidth(r)
		if x+w > c.size.Columns {
			break
		}
		c.SetCell(x, y, Cell{Rune: r, Style: style})
		if w == 2 {
			c.SetCell(x+1, y, Cell{Style: style})
		}
		x += w
	}
	return x
}

// Resize changes the canvas dimensions, preserving the overlapping region.
// New cells are empty in the default style.
func (c *Canvas) Resize(size GridSize) {
	if size.Columns < 0 {
		size.Columns = 0
	}
	if size.Rows < 0 {
		size.Rows = 0
	}
	if size == c.size {
		return
	}
	cells := make([]Cell, size.Columns*size.Rows)
	for i := range cells {
		cells[i] = Cell{Style: DefaultStyle}
	}
	cols := min(size.Columns, c.size.Columns)
	rows := min(size.Rows, c.size.Rows)
	for y := 0; y < rows; y++ {
		copy(cells[y*size.Columns:y*size.Columns+cols], c.cells[y*c.size.Columns:y*c.size.Columns+cols])
	}
	c.size = size
	c.cells = cells
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.size.Columns && y >= 0 && y < c.size.Rows
}
