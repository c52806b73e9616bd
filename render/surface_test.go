//go:build !nogpu

package render

import (
	"strings"
	"testing"

	"github.com/gogpu/grid"
)

func TestOffscreenAcquire(t *testing.T) {
	dev := openNoopDevice(t)
	o := NewOffscreen(dev)
	defer o.Close()

	size := grid.PixelSize{Width: 64, Height: 32}
	view, err := o.Acquire(size)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if view == nil {
		t.Fatal("expected non-nil view")
	}
	if o.size != size {
		t.Errorf("surface size = %+v, want %+v", o.size, size)
	}

	// Same size reuses the texture.
	tex := o.tex
	if _, err := o.Acquire(size); err != nil {
		t.Fatalf("second Acquire failed: %v", err)
	}
	if o.tex != tex {
		t.Error("same-size Acquire should keep the texture")
	}

	// A new size recreates it.
	grown := grid.PixelSize{Width: 128, Height: 32}
	if _, err := o.Acquire(grown); err != nil {
		t.Fatalf("resized Acquire failed: %v", err)
	}
	if o.size != grown {
		t.Errorf("surface size = %+v after resize, want %+v", o.size, grown)
	}
}

func TestOffscreenPresent(t *testing.T) {
	dev := openNoopDevice(t)
	o := NewOffscreen(dev)
	defer o.Close()

	if err := o.Present(); err != nil {
		t.Errorf("offscreen Present returned %v", err)
	}
}

func TestOffscreenCloseIdempotent(t *testing.T) {
	dev := openNoopDevice(t)
	o := NewOffscreen(dev)

	if _, err := o.Acquire(grid.PixelSize{Width: 16, Height: 16}); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	o.Close()
	o.Close()
}

func TestOffscreenReadPixelsBeforeAcquire(t *testing.T) {
	dev := openNoopDevice(t)
	o := NewOffscreen(dev)
	defer o.Close()

	_, err := o.ReadPixels()
	if err == nil {
		t.Fatal("expected error reading pixels before any frame")
	}
	if !strings.Contains(err.Error(), "no frame") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestOffscreenReadPixels(t *testing.T) {
	dev := openNoopDevice(t)
	o := NewOffscreen(dev)
	defer o.Close()

	// 20px rows force the 256-byte copy pitch alignment path.
	size := grid.PixelSize{Width: 20, Height: 10}
	if _, err := o.Acquire(size); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	img, err := o.ReadPixels()
	if err != nil {
		t.Fatalf("ReadPixels failed: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 20 || bounds.Dy() != 10 {
		t.Errorf("image bounds = %v, want 20x10", bounds)
	}
}
