package glyph

import "errors"

var (
	// ErrEmptyFontData reports a FontSource created from no bytes.
	ErrEmptyFontData = errors.New("glyph: empty font data")

	// ErrInvalidSize reports a font size that is not a positive number.
	ErrInvalidSize = errors.New("glyph: invalid font size")

	// ErrAtlasFull reports that a glyph cannot be packed even after the
	// atlas has grown to its maximum size.
	ErrAtlasFull = errors.New("glyph: atlas full")
)
