package grid

import "testing"

func TestCanvasSetCell(t *testing.T) {
	c := NewCanvas(GridSize{Columns: 4, Rows: 3})
	cell := Cell{Rune: 'x', Style: Style{Foreground: RGB(255, 0, 0), Background: Black}}
	c.SetCell(2, 1, cell)
	if got := c.Cell(2, 1); got != cell {
		t.Errorf("Cell(2, 1) = %+v, want %+v", got, cell)
	}
}

func TestCanvasOutOfRange(t *testing.T) {
	c := NewCanvas(GridSize{Columns: 2, Rows: 2})
	// Writes outside the grid are dropped, reads return the zero cell.
	c.SetCell(-1, 0, Cell{Rune: 'a'})
	c.SetCell(2, 0, Cell{Rune: 'b'})
	c.SetCell(0, 2, Cell{Rune: 'c'})
	for _, pos := range [][2]int{{-1, 0}, {2, 0}, {0, 2}} {
		if got := c.Cell(pos[0], pos[1]); got != (Cell{}) {
			t.Errorf("Cell(%d, %d) = %+v, want zero cell", pos[0], pos[1], got)
		}
	}
	if got := c.Cell(0, 0); got.Rune != 0 {
		t.Errorf("in-range cell modified by out-of-range writes: %+v", got)
	}
}

func TestCanvasFill(t *testing.T) {
	c := NewCanvas(GridSize{Columns: 3, Rows: 2})
	fill := Cell{Rune: '#', Style: DefaultStyle}
	c.Fill(fill)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if got := c.Cell(x, y); got != fill {
				t.Errorf("Cell(%d, %d) = %+v, want %+v", x, y, got, fill)
			}
		}
	}
}

func TestCanvasSetString(t *testing.T) {
	c := NewCanvas(GridSize{Columns: 10, Rows: 1})
	end := c.SetString(1, 0, "ok", DefaultStyle)
	if end != 3 {
		t.Errorf("SetString end column = %d, want 3", end)
	}
	if got := c.Cell(1, 0).Rune; got != 'o' {
		t.Errorf("Cell(1, 0).Rune = %q, want 'o'", got)
	}
	if got := c.Cell(2, 0).Rune; got != 'k' {
		t.Errorf("Cell(2, 0).Rune = %q, want 'k'", got)
	}
}

func TestCanvasSetStringWide(t *testing.T) {
	c := NewCanvas(GridSize{Columns: 6, Rows: 1})
	end := c.SetString(0, 0, "a漢b", DefaultStyle)
	if end != 4 {
		t.Errorf("SetString end column = %d, want 4", end)
	}
	if got := c.Cell(1, 0).Rune; got != '漢' {
		t.Errorf("Cell(1, 0).Rune = %q, want '漢'", got)
	}
	// The cell to the right of a wide rune holds an empty placeholder.
	if got := c.Cell(2, 0).Rune; got != 0 {
		t.Errorf("Cell(2, 0).Rune = %q, want placeholder", got)
	}
	if got := c.Cell(3, 0).Rune; got != 'b' {
		t.Errorf("Cell(3, 0).Rune = %q, want 'b'", got)
	}
}

func TestCanvasSetStringClips(t *testing.T) {
	c := NewCanvas(GridSize{Columns: 3, Rows: 1})
	end := c.SetString(2, 0, "a漢", DefaultStyle)
	// The wide rune does not fit in the last column and is clipped.
	if end != 3 {
		t.Errorf("SetString end column = %d, want 3", end)
	}
	if got := c.Cell(2, 0).Rune; got != 'a' {
		t.Errorf("Cell(2, 0).Rune = %q, want 'a'", got)
	}
}

func TestCanvasResizePreservesOverlap(t *testing.T) {
	c := NewCanvas(GridSize{Columns: 4, Rows: 4})
	c.SetCell(1, 1, Cell{Rune: 'p'})
	c.SetCell(3, 3, Cell{Rune: 'q'})

	c.Resize(GridSize{Columns: 2, Rows: 6})
	if got := c.Size(); got != (GridSize{Columns: 2, Rows: 6}) {
		t.Fatalf("Size() = %v, want {2 6}", got)
	}
	if got := c.Cell(1, 1).Rune; got != 'p' {
		t.Errorf("Cell(1, 1).Rune = %q after resize, want 'p'", got)
	}
	// (3, 3) was cut off; the grown rows are fresh cells.
	if got := c.Cell(1, 5); got.Style != DefaultStyle {
		t.Errorf("new cell style = %+v, want default", got.Style)
	}
}

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'a', 1},
		{' ', 1},
		{'é', 1},
		{'漢', 2},
		{'日', 2},
		{'Ａ', 2}, // fullwidth latin
		{'ｱ', 1},  // halfwidth katakana
	}
	for _, tt := range tests {
		if got := RuneWidth(tt.r); got != tt.want {
			t.Errorf("RuneWidth(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}
}
