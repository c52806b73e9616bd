//go:build !nogpu

package render

import (
	"testing"

	"github.com/gogpu/grid/glyph"
)

func TestAtlasTextureSync(t *testing.T) {
	dev := openNoopDevice(t)

	atlas := glyph.NewAtlas(64)
	if _, err := atlas.Pack(solidAlpha(8, 16)); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	at := &atlasTexture{}
	defer at.destroy(dev.device)

	recreated, err := at.sync(dev.device, dev.queue, atlas, 1)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if !recreated {
		t.Error("first sync must report a recreated texture")
	}
	if at.view == nil {
		t.Error("expected non-nil atlas view")
	}
	if at.size != atlas.Size() {
		t.Errorf("texture size = %d, want %d", at.size, atlas.Size())
	}
	if atlas.Dirty() {
		t.Error("sync must mark the atlas clean")
	}

	// Nothing changed: no recreation, no upload.
	recreated, err = at.sync(dev.device, dev.queue, atlas, 1)
	if err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	if recreated {
		t.Error("unchanged atlas must not recreate the texture")
	}
}

func TestAtlasTextureSyncUploadsDirty(t *testing.T) {
	dev := openNoopDevice(t)

	atlas := glyph.NewAtlas(64)
	at := &atlasTexture{}
	defer at.destroy(dev.device)

	if _, err := at.sync(dev.device, dev.queue, atlas, 1); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	// A new pack dirties the atlas; sync uploads without recreating.
	if _, err := atlas.Pack(solidAlpha(8, 16)); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	recreated, err := at.sync(dev.device, dev.queue, atlas, 1)
	if err != nil {
		t.Fatalf("dirty sync failed: %v", err)
	}
	if recreated {
		t.Error("in-place pack must not recreate the texture")
	}
	if atlas.Dirty() {
		t.Error("sync must mark the atlas clean")
	}
}

func TestAtlasTextureSyncGrowth(t *testing.T) {
	dev := openNoopDevice(t)

	atlas := glyph.NewAtlas(64)
	at := &atlasTexture{}
	defer at.destroy(dev.device)

	if _, err := at.sync(dev.device, dev.queue, atlas, 1); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	// Pack until the atlas outgrows its 64px side.
	for atlas.Epoch() == 0 {
		if _, err := atlas.Pack(solidAlpha(60, 60)); err != nil {
			t.Fatalf("Pack failed: %v", err)
		}
	}

	recreated, err := at.sync(dev.device, dev.queue, atlas, 1)
	if err != nil {
		t.Fatalf("post-growth sync failed: %v", err)
	}
	if !recreated {
		t.Error("grown atlas must recreate the texture")
	}
	if at.size != atlas.Size() {
		t.Errorf("texture size = %d after growth, want %d", at.size, atlas.Size())
	}
	if at.epoch != atlas.Epoch() {
		t.Errorf("texture epoch = %d, want %d", at.epoch, atlas.Epoch())
	}
}

func TestAtlasTextureSyncNewGeneration(t *testing.T) {
	dev := openNoopDevice(t)

	atlas := glyph.NewAtlas(64)
	at := &atlasTexture{}
	defer at.destroy(dev.device)

	if _, err := at.sync(dev.device, dev.queue, atlas, 1); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	// A font size change replaces the cache generation wholesale; the
	// texture follows even when the atlas side is unchanged.
	recreated, err := at.sync(dev.device, dev.queue, atlas, 2)
	if err != nil {
		t.Fatalf("generation sync failed: %v", err)
	}
	if !recreated {
		t.Error("new generation must recreate the texture")
	}
	if at.gen != 2 {
		t.Errorf("texture generation = %d, want 2", at.gen)
	}
}

func TestAtlasTextureDestroyIdempotent(t *testing.T) {
	dev := openNoopDevice(t)

	at := &atlasTexture{}
	at.destroy(dev.device)

	atlas := glyph.NewAtlas(64)
	if _, err := at.sync(dev.device, dev.queue, atlas, 1); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	at.destroy(dev.device)
	at.destroy(dev.device)
}
