// Package glyph rasterizes font glyphs into a texture atlas and caches
// them per cell-grid generation.
//
// A Cache is built over one FontSource at one font size. All glyphs of a
// generation share a uniform cell footprint (CellSize); changing the font
// size replaces the whole generation atomically: on failure the previous
// atlas, lookups, and metrics remain fully usable.
//
// The cache is single-threaded: it is owned and driven by the scheduler
// goroutine, like the renderer that consumes its atlas.
package glyph

import (
	"fmt"

	"github.com/gogpu/grid"
)

// GlyphInfo locates one cached glyph. It is valid only for the generation
// it was issued for; after a successful font size change all previously
// returned values are stale.
type GlyphInfo struct {
	// Region is the glyph's cell box in atlas texels.
	Region Region
	// Wide marks a glyph spanning two cells.
	Wide bool
	// Generation is the cache generation this info belongs to.
	Generation uint64
}

// glyphKey identifies a cached mask. Only attributes that change the mask
// participate; underline and reverse video are applied at render time.
type glyphKey struct {
	r     rune
	attrs grid.Attr
}

const maskAttrs = grid.AttrBold | grid.AttrItalic

// Cache is a generational glyph cache over one font source.
type Cache struct {
	src    *FontSource
	face   *face
	atlas  *Atlas
	glyphs map[glyphKey]GlyphInfo
	gen    uint64
}

// New creates a cache at the given font size and primes it with the
// printable ASCII set.
func New(src *FontSource, pt float64) (*Cache, error) {
	if src == nil {
		panic("glyph: nil FontSource")
	}
	src.copyCheck()
	c := &Cache{src: src}
	if err := c.rebuild(pt); err != nil {
		return nil, err
	}
	return c, nil
}

// CellSize returns the uniform cell footprint of the current generation.
func (c *Cache) CellSize() grid.CellSize { return c.face.cell }

// FontSize returns the current font size in points.
func (c *Cache) FontSize() float64 { return c.face.pt }

// Generation returns the current generation. It increments only on a
// successful SetFontSize.
func (c *Cache) Generation() uint64 { return c.gen }

// Atlas returns the backing atlas of the current generation.
func (c *Cache) Atlas() *Atlas { return c.atlas }

// Glyph returns the cached placement for r with the given attributes,
// rasterizing and packing it on a miss. It returns ok == false when the
// glyph cannot be packed even after the atlas has grown to its limit.
func (c *Cache) Glyph(r rune, attrs grid.Attr) (GlyphInfo, bool) {
	key := glyphKey{r: r, attrs: attrs & maskAttrs}
	if info, ok := c.glyphs[key]; ok {
		return info, true
	}
	info, err := insertGlyph(c.face, c.atlas, c.glyphs, c.gen, key)
	if err != nil {
		grid.Logger().Warn("glyph: glyph dropped", "rune", string(key.r), "error", err)
		return GlyphInfo{}, false
	}
	return info, true
}

// SetFontSize rebuilds the cache at a new size. The rebuild is atomic: the
// new face, atlas, and primed glyph set are constructed on the side, and
// only on full success do they replace the current generation. On error
// the cache is left exactly as it was.
func (c *Cache) SetFontSize(pt float64) error {
	return c.rebuild(pt)
}

// rebuild constructs the next generation and swaps it in on success.
func (c *Cache) rebuild(pt float64) error {
	f, err := newFace(c.src, pt)
	if err != nil {
		return err
	}
	atlas := NewAtlas(initialAtlasSide(f.cell))
	glyphs := make(map[glyphKey]GlyphInfo, 128)
	gen := c.gen + 1

	// Prime the printable ASCII range so a fresh generation renders
	// typical content without per-frame packing.
	for r := rune(' '); r <= '~'; r++ {
		if _, err := insertGlyph(f, atlas, glyphs, gen, glyphKey{r: r}); err != nil {
			f.Close()
			return fmt.Errorf("glyph: priming %q at %vpt: %w", r, pt, err)
		}
	}

	if c.face != nil {
		c.face.Close()
	}
	c.face = f
	c.atlas = atlas
	c.glyphs = glyphs
	c.gen = gen
	return nil
}

// Glyph insertion against explicit targets, so rebuild can fill a
// candidate generation without touching the live one.
func insertGlyph(f *face, atlas *Atlas, glyphs map[glyphKey]GlyphInfo, gen uint64, key glyphKey) (GlyphInfo, error) {
	cells := grid.RuneWidth(key.r)
	mask := f.rasterize(key.r, key.attrs, cells)
	region, err := atlas.Pack(mask)
	if err != nil {
		return GlyphInfo{}, err
	}
	info := GlyphInfo{
		Region:     region,
		Wide:       cells == 2,
		Generation: gen,
	}
	glyphs[key] = info
	return info, nil
}

// initialAtlasSide sizes a fresh atlas for roughly sixteen shelves of
// glyphs at the given cell height.
func initialAtlasSide(cell grid.CellSize) int {
	return 16 * (cell.Height + atlasPadding)
}

var _ grid.GlyphCache = (*Cache)(nil)
