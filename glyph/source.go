package glyph

import (
	"bytes"
	"fmt"
	"os"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontSource is a loaded font file. One FontSource backs any number of
// cache generations at different sizes. It is heavyweight: parse once and
// share it.
//
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection. It must point to the FontSource
	// itself.
	addr *FontSource

	data   []byte
	sfnt   *opentype.Font // rasterization identity (x/image)
	shaped *gotext.Font   // shaping identity (go-text), read-only and shareable
	name   string
}

// NewFontSource creates a FontSource from font data (TTF or OTF). The data
// slice is copied internally and can be reused after this call.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	parsed, err := opentype.Parse(dataCopy)
	if err != nil {
		return nil, fmt.Errorf("glyph: failed to parse font: %w", err)
	}

	// ParseTTF returns a *Face which embeds the thread-safe *Font; the
	// Font is what we keep, sized faces are created per generation.
	goTextFace, err := gotext.ParseTTF(bytes.NewReader(dataCopy))
	if err != nil {
		return nil, fmt.Errorf("glyph: failed to parse font for shaping: %w", err)
	}

	s := &FontSource{
		data:   dataCopy,
		sfnt:   parsed,
		shaped: goTextFace.Font,
	}
	s.addr = s
	s.name = familyName(parsed)
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("glyph: failed to read font file: %w", err)
	}
	return NewFontSource(data)
}

// Name returns the font family name, or "unknown" when the font carries no
// usable name table.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// copyCheck panics if FontSource was copied by value.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("glyph: FontSource must not be copied by value")
	}
}

func familyName(f *opentype.Font) string {
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := f.Name(nil, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return "unknown"
}
