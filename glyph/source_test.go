package glyph

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
)

// loadTestSource parses the embedded Go Mono font.
func loadTestSource(t *testing.T) *FontSource {
	t.Helper()

	source, err := NewFontSource(gomono.TTF)
	if err != nil {
		t.Fatalf("failed to load test font: %v", err)
	}
	return source
}

func TestNewFontSource(t *testing.T) {
	source := loadTestSource(t)

	if source.Name() == "" || source.Name() == "unknown" {
		t.Errorf("expected a real font name, got %q", source.Name())
	}
	t.Logf("Font name: %s", source.Name())
}

func TestNewFontSourceEmptyData(t *testing.T) {
	_, err := NewFontSource(nil)
	if !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("expected ErrEmptyFontData, got %v", err)
	}
}

func TestNewFontSourceInvalidData(t *testing.T) {
	_, err := NewFontSource([]byte("this is not a font file"))
	if err == nil {
		t.Error("expected error for invalid font data")
	}
}

func TestNewFontSourceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.ttf")
	if err := os.WriteFile(path, gomono.TTF, 0o644); err != nil {
		t.Fatalf("failed to write test font: %v", err)
	}

	source, err := NewFontSourceFromFile(path)
	if err != nil {
		t.Fatalf("NewFontSourceFromFile failed: %v", err)
	}

	if got, want := source.Name(), loadTestSource(t).Name(); got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
}

func TestNewFontSourceFromMissingFile(t *testing.T) {
	_, err := NewFontSourceFromFile(filepath.Join(t.TempDir(), "missing.ttf"))
	if err == nil {
		t.Error("expected error for missing font file")
	}
}

func TestFontSourceCopyProtection(t *testing.T) {
	source := loadTestSource(t)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic when copying FontSource")
		} else {
			t.Logf("Copy protection panic (expected): %v", r)
		}
	}()

	copySource := *source
	_ = copySource.Name() // Trigger copyCheck
}
