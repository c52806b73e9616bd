package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/grid/glyph"
)

// atlasTexture mirrors the glyph cache's atlas on the GPU. The atlas is
// A8; textures upload as RGBA8 with coverage in the alpha channel and
// white in the color channels.
type atlasTexture struct {
	tex   hal.Texture
	view  hal.TextureView
	size  int
	epoch uint64
	gen   uint64
}

// sync brings the GPU copy up to date: the texture is recreated when the
// atlas grew or the cache moved to a new generation, and texels upload
// when the atlas is dirty. Reports whether the view changed, in which
// case bind groups referencing it must be rebuilt.
func (at *atlasTexture) sync(device hal.Device, queue hal.Queue, a *glyph.Atlas, gen uint64) (bool, error) {
	recreated := false
	if at.tex == nil || at.size != a.Size() || at.epoch != a.Epoch() || at.gen != gen {
		at.destroy(device)

		side := uint32(a.Size()) //nolint:gosec // atlas side is bounded
		tex, err := device.CreateTexture(&hal.TextureDescriptor{
			Label:         "cell_atlas",
			Size:          hal.Extent3D{Width: side, Height: side, DepthOrArrayLayers: 1},
			MipLevelCount: 1,
			SampleCount:   1,
			Dimension:     gputypes.TextureDimension2D,
			Format:        gputypes.TextureFormatRGBA8Unorm,
			Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
		})
		if err != nil {
			return false, fmt.Errorf("render: create atlas texture: %w", err)
		}
		view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
			Label:         "cell_atlas_view",
			Format:        gputypes.TextureFormatRGBA8Unorm,
			Dimension:     gputypes.TextureViewDimension2D,
			Aspect:        gputypes.TextureAspectAll,
			MipLevelCount: 1,
		})
		if err != nil {
			device.DestroyTexture(tex)
			return false, fmt.Errorf("render: create atlas view: %w", err)
		}
		at.tex = tex
		at.view = view
		at.size = a.Size()
		at.epoch = a.Epoch()
		at.gen = gen
		recreated = true
	}

	if a.Dirty() || recreated {
		side := uint32(at.size) //nolint:gosec // atlas side is bounded
		queue.WriteTexture(
			&hal.ImageCopyTexture{
				Texture:  at.tex,
				MipLevel: 0,
			},
			alphaToRGBA(a.Data()),
			&hal.ImageDataLayout{
				Offset:       0,
				BytesPerRow:  side * 4,
				RowsPerImage: side,
			},
			&hal.Extent3D{Width: side, Height: side, DepthOrArrayLayers: 1},
		)
		a.MarkClean()
	}
	return recreated, nil
}

func (at *atlasTexture) destroy(device hal.Device) {
	if at.view != nil {
		device.DestroyTextureView(at.view)
		at.view = nil
	}
	if at.tex != nil {
		device.DestroyTexture(at.tex)
		at.tex = nil
	}
}

// alphaToRGBA expands A8 coverage to white RGBA8 texels.
func alphaToRGBA(alpha []byte) []byte {
	rgba := make([]byte, len(alpha)*4)
	for i, a := range alpha {
		off := i * 4
		rgba[off+0] = 255
		rgba[off+1] = 255
		rgba[off+2] = 255
		rgba[off+3] = a
	}
	return rgba
}
