package grid

// Renderer is the presentation side the scheduler drives. The render
// package provides the GPU implementation; tests substitute recorders.
type Renderer interface {
	// Resize reconfigures the presentation surface. Called with the
	// current size to recover from a lost surface. A zero dimension is
	// ignored by the scheduler and never reaches the renderer.
	Resize(PixelSize)

	// Update uploads the canvas contents for the next Render call.
	Update(*Canvas)

	// Render draws one frame. It returns nil on success, ErrSurfaceLost
	// (recoverable by Resize at the current size), ErrOutOfMemory
	// (fatal), or any other error for a transient failure whose frame is
	// skipped. Errors are matched with errors.Is.
	Render() error

	// Close releases renderer resources. Called once after the loop ends.
	Close() error
}

// GlyphCache is the part of the glyph cache the scheduler manipulates:
// the cell geometry and the font size accelerators. Implemented by
// glyph.Cache.
type GlyphCache interface {
	// CellSize returns the current uniform cell footprint in pixels.
	CellSize() CellSize

	// FontSize returns the current font size in points.
	FontSize() float64

	// SetFontSize rebuilds the cache at a new size. On failure the
	// previous state is fully preserved and the error returned.
	SetFontSize(pt float64) error
}
