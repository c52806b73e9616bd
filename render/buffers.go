package render

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/grid"
	"github.com/gogpu/grid/glyph"
)

// maxQuadsPerDraw bounds one indexed draw at 4*16384 vertices, the most a
// 16-bit index buffer can address.
const maxQuadsPerDraw = 16384

// glyphSource is the slice of the glyph cache the frame builder needs.
// *glyph.Cache satisfies it.
type glyphSource interface {
	CellSize() grid.CellSize
	Glyph(r rune, attrs grid.Attr) (glyph.GlyphInfo, bool)
	Atlas() *glyph.Atlas
}

// solidQuad is an untextured rectangle in surface pixels.
type solidQuad struct {
	x0, y0, x1, y1 float32
	color          [4]float32
}

// glyphQuad is a textured rectangle; the region is resolved to UVs only
// after the whole frame is collected, because glyph misses during
// collection may grow the atlas.
type glyphQuad struct {
	x0, y0, x1, y1 float32
	region         glyph.Region
	color          [4]float32
}

// frameData is the CPU side of one frame, ready for upload.
type frameData struct {
	solid      []byte
	solidQuads int
	glyphs     []byte
	glyphQuads int
}

func (f frameData) empty() bool { return f.solidQuads == 0 && f.glyphQuads == 0 }

// clearColor is the render pass clear value. Cells whose effective
// background matches it need no background quad.
var clearColor = grid.DefaultStyle.Background

// buildFrame turns a canvas into serialized quad batches. Backgrounds and
// underlines coalesce into per-row runs; glyphs emit one quad each, two
// cells wide for wide runes.
func buildFrame(c *grid.Canvas, cache glyphSource) frameData {
	if c == nil {
		return frameData{}
	}
	size := c.Size()
	cell := cache.CellSize()
	cw := float32(cell.Width)
	ch := float32(cell.Height)

	thickness := cell.Height / 16
	if thickness < 1 {
		thickness = 1
	}
	underTop := ch - float32(2*thickness)
	underBottom := ch - float32(thickness)

	var solids []solidQuad
	var quads []glyphQuad

	for y := 0; y < size.Rows; y++ {
		rowTop := float32(y) * ch

		// Current background and underline runs.
		var bgRun, ulRun struct {
			start int
			on    bool
			color [4]float32
		}
		flushBG := func(end int) {
			if bgRun.on {
				solids = append(solids, solidQuad{
					x0: float32(bgRun.start) * cw, y0: rowTop,
					x1: float32(end) * cw, y1: rowTop + ch,
					color: bgRun.color,
				})
				bgRun.on = false
			}
		}
		flushUL := func(end int) {
			if ulRun.on {
				solids = append(solids, solidQuad{
					x0: float32(ulRun.start) * cw, y0: rowTop + underTop,
					x1: float32(end) * cw, y1: rowTop + underBottom,
					color: ulRun.color,
				})
				ulRun.on = false
			}
		}

		for x := 0; x < size.Columns; x++ {
			cl := c.Cell(x, y)
			st := cl.Style
			fg, bg := st.Foreground, st.Background
			if st.Attrs.Has(grid.AttrReverse) {
				fg, bg = bg, fg
			}

			if bg != clearColor {
				col := colorVec(bg)
				if !bgRun.on || bgRun.color != col {
					flushBG(x)
					bgRun.start, bgRun.on, bgRun.color = x, true, col
				}
			} else {
				flushBG(x)
			}

			if st.Attrs.Has(grid.AttrUnderline) {
				col := colorVec(fg)
				if !ulRun.on || ulRun.color != col {
					flushUL(x)
					ulRun.start, ulRun.on, ulRun.color = x, true, col
				}
			} else {
				flushUL(x)
			}

			// Rune 0 is an empty cell or a wide glyph's trailing half;
			// spaces rasterize blank. Neither needs a quad.
			if cl.Rune == 0 || cl.Rune == ' ' {
				continue
			}
			info, ok := cache.Glyph(cl.Rune, st.Attrs)
			if !ok {
				continue
			}
			span := float32(1)
			if info.Wide {
				span = 2
			}
			left := float32(x) * cw
			quads = append(quads, glyphQuad{
				x0: left, y0: rowTop,
				x1: left + span*cw, y1: rowTop + ch,
				region: info.Region,
				color:  colorVec(fg),
			})
		}
		flushBG(size.Columns)
		flushUL(size.Columns)
	}

	// All lookups are done; the atlas has its final size for this frame.
	side := float32(cache.Atlas().Size())

	fd := frameData{solidQuads: len(solids), glyphQuads: len(quads)}
	fd.solid = make([]byte, len(solids)*4*solidVertexStride)
	off := 0
	for _, q := range solids {
		writeSolidVertex(fd.solid[off:], q.x0, q.y0, q.color)
		off += solidVertexStride
		writeSolidVertex(fd.solid[off:], q.x1, q.y0, q.color)
		off += solidVertexStride
		writeSolidVertex(fd.solid[off:], q.x1, q.y1, q.color)
		off += solidVertexStride
		writeSolidVertex(fd.solid[off:], q.x0, q.y1, q.color)
		off += solidVertexStride
	}

	fd.glyphs = make([]byte, len(quads)*4*glyphVertexStride)
	off = 0
	for _, q := range quads {
		u0 := float32(q.region.X) / side
		v0 := float32(q.region.Y) / side
		u1 := float32(q.region.X+q.region.Width) / side
		v1 := float32(q.region.Y+q.region.Height) / side
		writeGlyphVertex(fd.glyphs[off:], q.x0, q.y0, u0, v0, q.color)
		off += glyphVertexStride
		writeGlyphVertex(fd.glyphs[off:], q.x1, q.y0, u1, v0, q.color)
		off += glyphVertexStride
		writeGlyphVertex(fd.glyphs[off:], q.x1, q.y1, u1, v1, q.color)
		off += glyphVertexStride
		writeGlyphVertex(fd.glyphs[off:], q.x0, q.y1, u0, v1, q.color)
		off += glyphVertexStride
	}

	return fd
}

func colorVec(c grid.Color) [4]float32 {
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}

// writeSolidVertex serializes one solid vertex (position, color).
func writeSolidVertex(buf []byte, x, y float32, color [4]float32) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(x))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(y))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(color[0]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(color[1]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(color[2]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(color[3]))
}

// writeGlyphVertex serializes one glyph vertex (position, tex_coord, color).
func writeGlyphVertex(buf []byte, x, y, u, v float32, color [4]float32) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(x))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(y))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(u))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(color[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(color[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(color[2]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(color[3]))
}

// buildQuadIndices serializes the 0,1,2 2,3,0 index pattern for n quads.
func buildQuadIndices(n int) []byte {
	data := make([]byte, n*6*2)
	off := 0
	for i := 0; i < n; i++ {
		base := uint16(i * 4) //nolint:gosec // n is bounded by maxQuadsPerDraw
		for _, idx := range [6]uint16{0, 1, 2, 2, 3, 0} {
			binary.LittleEndian.PutUint16(data[off:], base+idx)
			off += 2
		}
	}
	return data
}
