// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/grid"
)

// Surface is the target rendered frames go to.
//
// A windowed implementation wraps a swapchain: Acquire returns the next
// swapchain view and reports a stale or destroyed chain with an error
// wrapping grid.ErrSurfaceLost, which the scheduler recovers from by
// resizing the renderer to the current size. Exhausted video memory wraps
// grid.ErrOutOfMemory. Any other error is treated as transient and the
// frame is skipped.
//
// Surfaces are not safe for concurrent use.
type Surface interface {
	// Acquire returns the view for the next frame at the given size.
	Acquire(size grid.PixelSize) (hal.TextureView, error)

	// Present shows the last rendered frame.
	Present() error

	// Close releases surface resources.
	Close()
}

// Offscreen renders into a plain color texture instead of a window. The
// last rendered frame can be read back with ReadPixels. It never loses
// its target, so Acquire only fails on allocation errors.
type Offscreen struct {
	dev  *Device
	tex  hal.Texture
	view hal.TextureView
	size grid.PixelSize
}

// NewOffscreen creates an offscreen surface on the given device.
func NewOffscreen(dev *Device) *Offscreen {
	return &Offscreen{dev: dev}
}

// Acquire returns the color view, recreating the texture when the size
// changed.
func (o *Offscreen) Acquire(size grid.PixelSize) (hal.TextureView, error) {
	if o.tex != nil && o.size == size {
		return o.view, nil
	}
	o.Close()

	tex, err := o.dev.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "offscreen_color",
		Size:          hal.Extent3D{Width: size.Width, Height: size.Height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        targetFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("render: create offscreen color texture: %w", err)
	}
	view, err := o.dev.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "offscreen_color_view",
	})
	if err != nil {
		o.dev.device.DestroyTexture(tex)
		return nil, fmt.Errorf("render: create offscreen color view: %w", err)
	}
	o.tex = tex
	o.view = view
	o.size = size
	return o.view, nil
}

// Present is a no-op for offscreen rendering.
func (o *Offscreen) Present() error { return nil }

// Close destroys the color texture. Safe to call more than once.
func (o *Offscreen) Close() {
	if o.view != nil {
		o.dev.device.DestroyTextureView(o.view)
		o.view = nil
	}
	if o.tex != nil {
		o.dev.device.DestroyTexture(o.tex)
		o.tex = nil
	}
	o.size = grid.PixelSize{}
}

// ReadPixels copies the last rendered frame to the CPU. It submits its
// own command buffer and blocks until the GPU finishes.
func (o *Offscreen) ReadPixels() (*image.RGBA, error) {
	if o.tex == nil {
		return nil, fmt.Errorf("render: no frame rendered yet")
	}
	w, h := o.size.Width, o.size.Height
	device, queue := o.dev.device, o.dev.queue

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "offscreen_readback",
	})
	if err != nil {
		return nil, fmt.Errorf("render: create readback encoder: %w", err)
	}
	if err := encoder.BeginEncoding("offscreen_readback"); err != nil {
		return nil, fmt.Errorf("render: begin readback encoding: %w", err)
	}

	// The color texture sits in attachment layout after rendering;
	// transition it for the copy and back afterwards.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: o.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	// Copy rows aligned to 256 bytes as required by WebGPU and DX12.
	bytesPerRow := w * 4
	const copyPitchAlignment = 256
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "offscreen_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("render: create staging buffer: %w", err)
	}
	defer device.DestroyBuffer(staging)

	encoder.CopyTextureToBuffer(o.tex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: o.tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: o.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("render: end readback encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	fence, err := device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("render: create readback fence: %w", err)
	}
	defer device.DestroyFence(fence)

	if err := queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("render: submit readback: %w", err)
	}
	fenceOK, err := device.Wait(fence, 1, 5*time.Second)
	if err != nil || !fenceOK {
		return nil, fmt.Errorf("render: wait for readback: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, stagingSize)
	if err := queue.ReadBuffer(staging, 0, readback); err != nil {
		return nil, fmt.Errorf("render: read staging buffer: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	for row := 0; row < int(h); row++ {
		src := readback[row*int(alignedBytesPerRow):]
		dst := img.Pix[row*img.Stride:]
		bgraToRGBA(src[:bytesPerRow], dst[:bytesPerRow])
	}
	return img, nil
}

// bgraToRGBA converts BGRA bytes to RGBA in place of dst.
func bgraToRGBA(src, dst []byte) {
	for i := 0; i+3 < len(src); i += 4 {
		dst[i+0] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i+0]
		dst[i+3] = src[i+3]
	}
}

var _ Surface = (*Offscreen)(nil)
