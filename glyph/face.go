package glyph

import (
	"fmt"
	"image"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/gogpu/grid"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

// italicShear is the horizontal shear factor for synthetic italics.
const italicShear = 0.2

// face is one sized rendering of a FontSource: the opentype face used for
// rasterization, the go-text face used for shaping, and the cell geometry
// derived from the font metrics. A face belongs to exactly one cache
// generation and is rebuilt wholesale on size changes.
//
// face is single-threaded, like the cache that owns it.
type face struct {
	src    *FontSource
	pt     float64
	otFace font.Face
	goFace *gotext.Face
	shaper shaping.HarfbuzzShaper

	cell   grid.CellSize
	ascent fixed.Int26_6
}

// newFace builds a sized face and computes its cell geometry. CellSize
// width is the advance of a reference glyph ('M'), height the font's line
// height, both rounded up and at least 1.
func newFace(src *FontSource, pt float64) (*face, error) {
	if pt <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, pt)
	}
	otFace, err := opentype.NewFace(src.sfnt, &opentype.FaceOptions{
		Size:    pt,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("glyph: failed to create face at %vpt: %w", pt, err)
	}

	f := &face{
		src:    src,
		pt:     pt,
		otFace: otFace,
		goFace: gotext.NewFace(src.shaped),
	}

	m := otFace.Metrics()
	height := m.Height
	if sum := m.Ascent + m.Descent; sum > height {
		height = sum
	}
	f.ascent = m.Ascent
	f.cell = grid.CellSize{
		Width:  ceil26_6(f.referenceAdvance()),
		Height: ceil26_6(height),
	}
	if f.cell.Width < 1 {
		f.cell.Width = 1
	}
	if f.cell.Height < 1 {
		f.cell.Height = 1
	}
	return f, nil
}

func (f *face) Close() {
	if f.otFace != nil {
		_ = f.otFace.Close()
	}
}

// referenceAdvance returns the advance the cell width is derived from:
// the shaped advance of 'M', falling back through '0' to half the point
// size for fonts missing both.
func (f *face) referenceAdvance() fixed.Int26_6 {
	for _, r := range []rune{'M', '0'} {
		if !f.covers(r) {
			continue
		}
		if adv, ok := f.shapedAdvance(r); ok {
			return adv
		}
		if adv, ok := f.otFace.GlyphAdvance(r); ok {
			return adv
		}
	}
	return fixed.Int26_6(f.pt * 64 / 2)
}

// shapedAdvance runs one rune through the HarfBuzz shaper and returns its
// advance. Shaping keeps the advance consistent with what a full text
// renderer over the same font would produce.
func (f *face) shapedAdvance(r rune) (fixed.Int26_6, bool) {
	runes := []rune{r}
	out := f.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      f.goFace,
		Size:      fixed.Int26_6(f.pt * 64),
		Script:    language.LookupScript(r),
		Language:  language.NewLanguage("en"),
	})
	if len(out.Glyphs) == 0 {
		return 0, false
	}
	return out.Glyphs[0].Advance, true
}

// covers reports whether the font has a glyph for r.
func (f *face) covers(r rune) bool {
	var buf sfnt.Buffer
	idx, err := f.src.sfnt.GlyphIndex(&buf, r)
	return err == nil && idx != 0
}

// rasterize renders r into an alpha mask sized cells*CellSize, with the
// baseline at the face ascent. Uncovered runes fall back to the Unicode
// replacement character, then '?', then an empty mask. Bold is a 1px
// double-strike; italic shears the mask around its bottom edge.
func (f *face) rasterize(r rune, attrs grid.Attr, cells int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, f.cell.Width*cells, f.cell.Height))

	if !f.covers(r) {
		switch {
		case f.covers('�'):
			r = '�'
		case f.covers('?'):
			r = '?'
		default:
			return mask
		}
	}

	d := font.Drawer{
		Dst:  mask,
		Src:  image.White,
		Face: f.otFace,
		Dot:  fixed.Point26_6{X: 0, Y: f.ascent},
	}
	d.DrawString(string(r))
	if attrs.Has(grid.AttrBold) {
		d.Dot = fixed.Point26_6{X: 64, Y: f.ascent}
		d.DrawString(string(r))
	}

	if attrs.Has(grid.AttrItalic) {
		mask = shearMask(mask)
	}
	return mask
}

// shearMask slants a glyph mask to the right, keeping the bottom edge
// fixed.
func shearMask(mask *image.Alpha) *image.Alpha {
	b := mask.Bounds()
	h := float64(b.Dy())
	out := image.NewAlpha(b)
	// x' = x - shear*y + shear*h: the top row moves right by shear*h.
	m := f64.Aff3{
		1, -italicShear, italicShear * h,
		0, 1, 0,
	}
	xdraw.ApproxBiLinear.Transform(out, m, mask, b, xdraw.Src, nil)
	return out
}

func ceil26_6(v fixed.Int26_6) int {
	return int(v+63) >> 6
}
