package glyph

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/grid"
)

func newTestFace(t *testing.T, pt float64) *face {
	t.Helper()

	f, err := newFace(loadTestSource(t), pt)
	if err != nil {
		t.Fatalf("newFace(%v) failed: %v", pt, err)
	}
	t.Cleanup(f.Close)
	return f
}

func hasInk(m []byte) bool {
	for _, v := range m {
		if v != 0 {
			return true
		}
	}
	return false
}

func TestNewFaceInvalidSize(t *testing.T) {
	src := loadTestSource(t)

	for _, pt := range []float64{0, -5} {
		if _, err := newFace(src, pt); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("newFace(%v): expected ErrInvalidSize, got %v", pt, err)
		}
	}
}

func TestFaceCellGeometry(t *testing.T) {
	f16 := newTestFace(t, 16)
	if f16.cell.Width < 1 || f16.cell.Height < 1 {
		t.Fatalf("cell = %+v, want positive dimensions", f16.cell)
	}
	if f16.cell.Height < f16.cell.Width {
		t.Errorf("cell = %+v, expected height >= width for an upright font", f16.cell)
	}

	f32 := newTestFace(t, 32)
	if f32.cell.Width <= f16.cell.Width || f32.cell.Height <= f16.cell.Height {
		t.Errorf("cell did not scale with size: 16pt %+v, 32pt %+v", f16.cell, f32.cell)
	}
}

func TestFaceRasterize(t *testing.T) {
	f := newTestFace(t, 16)

	mask := f.rasterize('M', 0, 1)
	b := mask.Bounds()
	if b.Dx() != f.cell.Width || b.Dy() != f.cell.Height {
		t.Errorf("mask = %dx%d, want cell %dx%d", b.Dx(), b.Dy(), f.cell.Width, f.cell.Height)
	}
	if !hasInk(mask.Pix) {
		t.Error("rasterized 'M' has no ink")
	}
}

func TestFaceRasterizeWide(t *testing.T) {
	f := newTestFace(t, 16)

	mask := f.rasterize('漢', 0, 2)
	if got, want := mask.Bounds().Dx(), 2*f.cell.Width; got != want {
		t.Errorf("wide mask width = %d, want %d", got, want)
	}
}

func TestFaceRasterizeAttrs(t *testing.T) {
	f := newTestFace(t, 16)

	plain := f.rasterize('g', 0, 1)
	bold := f.rasterize('g', grid.AttrBold, 1)
	italic := f.rasterize('g', grid.AttrItalic, 1)

	if bytes.Equal(plain.Pix, bold.Pix) {
		t.Error("bold mask identical to plain")
	}
	if bytes.Equal(plain.Pix, italic.Pix) {
		t.Error("italic mask identical to plain")
	}
	if !hasInk(bold.Pix) || !hasInk(italic.Pix) {
		t.Error("styled masks have no ink")
	}
}

func TestFaceRasterizeFallback(t *testing.T) {
	f := newTestFace(t, 16)

	// Go Mono has no emoji coverage: the mask falls back to the
	// replacement character (or '?') instead of staying blank.
	if f.covers('😀') {
		t.Skip("test font unexpectedly covers emoji")
	}
	mask := f.rasterize('😀', 0, grid.RuneWidth('😀'))
	if !hasInk(mask.Pix) {
		t.Error("fallback mask has no ink")
	}
}
