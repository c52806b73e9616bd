// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/grid"
	"github.com/gogpu/grid/glyph"
)

// uniformSize is the byte size of the Uniforms struct in cell.wgsl.
const uniformSize = 16

// frameTimeout bounds the fence wait after each submit.
const frameTimeout = 5 * time.Second

type config struct {
	size     grid.PixelSize
	provider DeviceHandle
	api      halAPI
	surface  func(*Device) (Surface, error)
}

// Option configures a Renderer.
type Option func(*config)

// WithSize sets the initial surface size in pixels. The default is
// grid.DefaultWindowWidth by grid.DefaultWindowHeight.
func WithSize(width, height uint32) Option {
	return func(c *config) { c.size = grid.PixelSize{Width: width, Height: height} }
}

// WithDeviceProvider shares the host application's GPU device instead of
// opening one. The provider must expose the HAL handles; see DeviceHandle.
func WithDeviceProvider(provider DeviceHandle) Option {
	return func(c *config) { c.provider = provider }
}

// WithHAL opens the device on a specific HAL backend instead of the
// default one. Tests use this with hal/noop.
func WithHAL(api halAPI) Option {
	return func(c *config) { c.api = api }
}

// WithSurface installs a presentation surface factory. The default is an
// Offscreen surface on the renderer's device.
func WithSurface(open func(*Device) (Surface, error)) Option {
	return func(c *config) { c.surface = open }
}

// Renderer draws canvases as cell quads over a glyph atlas: one pass,
// solid quads (backgrounds, underlines) first, glyph quads on top. It
// implements grid.Renderer.
//
// Not safe for concurrent use; the scheduler goroutine owns it.
type Renderer struct {
	dev    *Device
	surf   Surface
	pipe   *cellPipeline
	glyphs *glyph.Cache

	atlas      atlasTexture
	indexBuf   hal.Buffer
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup

	size   grid.PixelSize
	frame  frameData
	closed bool
}

// New creates a renderer over a glyph cache. Without options it opens the
// default backend's most capable adapter and renders offscreen at the
// default window size.
func New(glyphs *glyph.Cache, opts ...Option) (*Renderer, error) {
	if glyphs == nil {
		return nil, ErrNilGlyphCache
	}
	cfg := config{
		size: grid.PixelSize{Width: grid.DefaultWindowWidth, Height: grid.DefaultWindowHeight},
	}
	for _, o := range opts {
		o(&cfg)
	}

	var (
		dev *Device
		err error
	)
	switch {
	case cfg.provider != nil:
		dev, err = deviceFromProvider(cfg.provider)
	case cfg.api != nil:
		dev, err = openDevice(cfg.api)
	default:
		dev, err = defaultDevice()
	}
	if err != nil {
		return nil, err
	}

	pipe, err := newCellPipeline(dev.device)
	if err != nil {
		dev.Close()
		return nil, err
	}

	var surf Surface
	if cfg.surface != nil {
		surf, err = cfg.surface(dev)
		if err != nil {
			pipe.destroy()
			dev.Close()
			return nil, err
		}
	} else {
		surf = NewOffscreen(dev)
	}

	return &Renderer{
		dev:    dev,
		surf:   surf,
		pipe:   pipe,
		glyphs: glyphs,
		size:   cfg.size,
	}, nil
}

// Surface returns the presentation surface. Offscreen renderers expose
// ReadPixels through it.
func (r *Renderer) Surface() Surface { return r.surf }

// Size returns the current surface size.
func (r *Renderer) Size() grid.PixelSize { return r.size }

// Resize sets the surface size for subsequent frames. Zero dimensions
// are ignored.
func (r *Renderer) Resize(size grid.PixelSize) {
	if r.closed || size.Width == 0 || size.Height == 0 {
		return
	}
	r.size = size
}

// Update replaces the frame contents drawn by the next Render. Glyphs
// missing from the cache are rasterized here, so the atlas is final when
// Render uploads it.
func (r *Renderer) Update(c *grid.Canvas) {
	if r.closed {
		return
	}
	r.frame = buildFrame(c, r.glyphs)
}

// Render draws the last updated frame and presents it. A zero-size
// surface skips the frame. Surface errors pass through as the sentinels
// the surface wrapped them in: grid.ErrSurfaceLost is recoverable by a
// Resize at the current size, grid.ErrOutOfMemory is fatal, anything
// else means this frame is skipped.
func (r *Renderer) Render() error {
	if r.closed {
		return ErrClosed
	}
	if r.size.Width == 0 || r.size.Height == 0 {
		return nil
	}

	rebound, err := r.atlas.sync(r.dev.device, r.dev.queue, r.glyphs.Atlas(), r.glyphs.Generation())
	if err != nil {
		return err
	}

	view, err := r.surf.Acquire(r.size)
	if err != nil {
		return err
	}

	if err := r.ensureStatic(); err != nil {
		return err
	}
	if rebound || r.bindGroup == nil {
		if err := r.rebuildBindGroup(); err != nil {
			return err
		}
	}
	r.dev.queue.WriteBuffer(r.uniformBuf, 0, screenUniform(r.size))

	solidBufs, solidCounts, err := r.uploadQuadChunks("cell_solid_verts", r.frame.solid, r.frame.solidQuads, solidVertexStride)
	if err != nil {
		return err
	}
	defer destroyBuffers(r.dev.device, solidBufs)

	glyphBufs, glyphCounts, err := r.uploadQuadChunks("cell_glyph_verts", r.frame.glyphs, r.frame.glyphQuads, glyphVertexStride)
	if err != nil {
		return err
	}
	defer destroyBuffers(r.dev.device, glyphBufs)

	if err := r.encodeSubmit(view, solidBufs, solidCounts, glyphBufs, glyphCounts); err != nil {
		return err
	}
	return r.surf.Present()
}

// encodeSubmit records the cell pass into a command buffer, submits it,
// and waits for the GPU so per-frame vertex buffers can be freed on
// return.
func (r *Renderer) encodeSubmit(view hal.TextureView, solidBufs []hal.Buffer, solidCounts []int, glyphBufs []hal.Buffer, glyphCounts []int) error {
	device := r.dev.device

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "cell_encoder",
	})
	if err != nil {
		return fmt.Errorf("render: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("cell_frame"); err != nil {
		return fmt.Errorf("render: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "cell_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: passClearValue(),
		}},
	})

	if len(solidBufs) > 0 {
		rp.SetPipeline(r.pipe.solid)
		rp.SetBindGroup(0, r.bindGroup, nil)
		rp.SetIndexBuffer(r.indexBuf, gputypes.IndexFormatUint16, 0)
		for i, buf := range solidBufs {
			rp.SetVertexBuffer(0, buf, 0)
			rp.DrawIndexed(uint32(solidCounts[i])*6, 1, 0, 0, 0) //nolint:gosec // counts are bounded by maxQuadsPerDraw
		}
	}
	if len(glyphBufs) > 0 {
		rp.SetPipeline(r.pipe.glyph)
		rp.SetBindGroup(0, r.bindGroup, nil)
		rp.SetIndexBuffer(r.indexBuf, gputypes.IndexFormatUint16, 0)
		for i, buf := range glyphBufs {
			rp.SetVertexBuffer(0, buf, 0)
			rp.DrawIndexed(uint32(glyphCounts[i])*6, 1, 0, 0, 0) //nolint:gosec // counts are bounded by maxQuadsPerDraw
		}
	}

	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("render: end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	fence, err := device.CreateFence()
	if err != nil {
		return fmt.Errorf("render: create frame fence: %w", err)
	}
	defer device.DestroyFence(fence)

	if err := r.dev.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("render: submit frame: %w", err)
	}
	fenceOK, err := device.Wait(fence, 1, frameTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("render: wait for frame: ok=%v err=%w", fenceOK, err)
	}
	return nil
}

// ensureStatic lazily creates the frame-independent buffers: the shared
// quad index buffer and the uniform buffer.
func (r *Renderer) ensureStatic() error {
	if r.indexBuf == nil {
		buf, err := r.createAndUploadBuffer("cell_indices", buildQuadIndices(maxQuadsPerDraw),
			gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
		if err != nil {
			return err
		}
		r.indexBuf = buf
	}
	if r.uniformBuf == nil {
		buf, err := r.createAndUploadBuffer("cell_uniforms", make([]byte, uniformSize),
			gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
		if err != nil {
			return err
		}
		r.uniformBuf = buf
	}
	return nil
}

// rebuildBindGroup binds the uniform buffer, the atlas view, and the
// shared sampler. Called when the atlas texture was recreated.
func (r *Renderer) rebuildBindGroup() error {
	if r.bindGroup != nil {
		r.dev.device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	bg, err := r.dev.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "cell_bind",
		Layout: r.pipe.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: r.uniformBuf.NativeHandle(), Offset: 0, Size: uniformSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{
				TextureView: r.atlas.view.NativeHandle(),
			}},
			{Binding: 2, Resource: gputypes.SamplerBinding{
				Sampler: r.pipe.sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("render: create cell bind group: %w", err)
	}
	r.bindGroup = bg
	return nil
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (r *Renderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.dev.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("render: create %s: %w", label, err)
	}
	r.dev.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// uploadQuadChunks splits serialized quad vertices into vertex buffers of
// at most maxQuadsPerDraw quads each, so every chunk fits the shared
// 16-bit index buffer. Returns the buffers and their quad counts.
func (r *Renderer) uploadQuadChunks(label string, data []byte, quads, stride int) ([]hal.Buffer, []int, error) {
	if quads == 0 {
		return nil, nil, nil
	}
	var bufs []hal.Buffer
	var counts []int
	for start := 0; start < quads; start += maxQuadsPerDraw {
		n := quads - start
		if n > maxQuadsPerDraw {
			n = maxQuadsPerDraw
		}
		lo := start * 4 * stride
		hi := (start + n) * 4 * stride
		buf, err := r.createAndUploadBuffer(label, data[lo:hi],
			gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
		if err != nil {
			destroyBuffers(r.dev.device, bufs)
			return nil, nil, err
		}
		bufs = append(bufs, buf)
		counts = append(counts, n)
	}
	return bufs, counts, nil
}

func destroyBuffers(device hal.Device, bufs []hal.Buffer) {
	for _, b := range bufs {
		device.DestroyBuffer(b)
	}
}

// Close releases all GPU resources. Safe to call more than once; Render
// after Close returns ErrClosed.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	device := r.dev.device
	if r.bindGroup != nil {
		device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.uniformBuf != nil {
		device.DestroyBuffer(r.uniformBuf)
		r.uniformBuf = nil
	}
	if r.indexBuf != nil {
		device.DestroyBuffer(r.indexBuf)
		r.indexBuf = nil
	}
	r.atlas.destroy(device)
	if r.surf != nil {
		r.surf.Close()
	}
	r.pipe.destroy()
	r.dev.Close()
	return nil
}

// screenUniform serializes the Uniforms struct: the surface size in the
// first two lanes of a vec4.
func screenUniform(size grid.PixelSize) []byte {
	buf := make([]byte, uniformSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(size.Width)))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(float32(size.Height)))
	return buf
}

// passClearValue converts the frame builder's clear color for the render
// pass descriptor.
func passClearValue() gputypes.Color {
	return gputypes.Color{
		R: float64(clearColor.R) / 255,
		G: float64(clearColor.G) / 255,
		B: float64(clearColor.B) / 255,
		A: float64(clearColor.A) / 255,
	}
}

var _ grid.Renderer = (*Renderer)(nil)
