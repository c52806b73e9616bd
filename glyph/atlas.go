package glyph

import "image"

const (
	// atlasPadding separates packed glyphs so linear sampling cannot
	// bleed between neighbors.
	atlasPadding = 1

	minAtlasSize = 64
	maxAtlasSize = 4096
)

// Region is a packed rectangle in atlas texels. Regions are stored in
// pixels, not normalized coordinates, so they stay valid across atlas
// growth; uploaders divide by the current atlas size.
type Region struct {
	X, Y, Width, Height int
}

// Atlas stores rasterized glyph masks in one square single-channel (A8)
// image, packed onto horizontal shelves. Within a generation the atlas is
// append-only: packed regions never move. When space runs out the atlas
// doubles its side up to a maximum, preserving existing texels; the epoch
// counter tells uploaders the backing texture changed dimensions and must
// be recreated rather than updated in place.
//
// An Atlas is not safe for concurrent use.
type Atlas struct {
	data    []byte
	size    int
	shelves []shelf
	dirty   bool
	epoch   uint64
}

// shelf is a horizontal strip. Items are placed left to right; the strip
// height is fixed by the tallest item placed so far.
type shelf struct {
	y      int // top of the strip
	height int
	x      int // next free slot
}

// NewAtlas creates an empty atlas. The initial side is clamped to
// [64, 4096] and rounded up to a power of two.
func NewAtlas(size int) *Atlas {
	s := minAtlasSize
	for s < size && s < maxAtlasSize {
		s *= 2
	}
	return &Atlas{
		data:    make([]byte, s*s),
		size:    s,
		shelves: make([]shelf, 0, 16),
	}
}

// Size returns the atlas side in texels.
func (a *Atlas) Size() int { return a.size }

// Data returns the A8 texel data, row-major, Size*Size bytes. The slice
// is owned by the atlas; uploaders must not modify it.
func (a *Atlas) Data() []byte { return a.data }

// Dirty reports whether texels changed since the last MarkClean.
func (a *Atlas) Dirty() bool { return a.dirty }

// MarkClean records that the current texels have been uploaded.
func (a *Atlas) MarkClean() { a.dirty = false }

// Epoch increments every time the atlas grows. An uploader holding a
// texture from an older epoch must recreate it at the new size.
func (a *Atlas) Epoch() uint64 { return a.epoch }

// Pack copies mask into the atlas and returns the packed region, growing
// the atlas as needed. It returns ErrAtlasFull when the mask cannot fit
// even at the maximum size.
func (a *Atlas) Pack(mask *image.Alpha) (Region, error) {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	for {
		if x, y, ok := a.allocate(w, h); ok {
			a.blit(x, y, mask)
			a.dirty = true
			return Region{X: x, Y: y, Width: w, Height: h}, nil
		}
		if !a.grow() {
			return Region{}, ErrAtlasFull
		}
	}
}

// allocate finds space for a w x h rectangle: first a shelf with enough
// height, extending the last shelf if the item is taller, else a fresh
// shelf below.
func (a *Atlas) allocate(w, h int) (x, y int, ok bool) {
	paddedW := w + atlasPadding
	paddedH := h + atlasPadding

	for i := range a.shelves {
		s := &a.shelves[i]
		if s.x+paddedW > a.size {
			continue
		}
		if h > s.height {
			// Taller than the shelf: only the last shelf may stretch.
			if i == len(a.shelves)-1 && s.y+paddedH <= a.size {
				s.height = h
				x, y = s.x, s.y
				s.x += paddedW
				return x, y, true
			}
			continue
		}
		x, y = s.x, s.y
		s.x += paddedW
		return x, y, true
	}

	newY := 0
	if n := len(a.shelves); n > 0 {
		last := a.shelves[n-1]
		newY = last.y + last.height + atlasPadding
	}
	if newY+paddedH > a.size {
		return 0, 0, false
	}
	a.shelves = append(a.shelves, shelf{y: newY, height: h, x: paddedW})
	return 0, newY, true
}

// blit copies the mask rows into the atlas at (x, y).
func (a *Atlas) blit(x, y int, mask *image.Alpha) {
	b := mask.Bounds()
	w := b.Dx()
	for row := 0; row < b.Dy(); row++ {
		src := mask.Pix[row*mask.Stride : row*mask.Stride+w]
		dst := (y+row)*a.size + x
		copy(a.data[dst:dst+w], src)
	}
}

// grow doubles the atlas side, keeping every packed region at its
// coordinates and recopying the texels into the wider stride.
func (a *Atlas) grow() bool {
	if a.size >= maxAtlasSize {
		return false
	}
	newSize := a.size * 2
	newData := make([]byte, newSize*newSize)
	for row := 0; row < a.size; row++ {
		copy(newData[row*newSize:row*newSize+a.size], a.data[row*a.size:(row+1)*a.size])
	}
	a.data = newData
	a.size = newSize
	a.epoch++
	a.dirty = true
	return true
}
