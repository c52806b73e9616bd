// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws character grids on the GPU.
//
// A Renderer owns the GPU device, the cell pipelines, and the render
// surface. Each frame it turns a grid.Canvas into two quad batches, solid
// quads for backgrounds and underlines and textured quads for glyphs
// sampled from the glyph cache's atlas, and encodes them into a single
// render pass.
//
// The device is either opened by the renderer itself (Vulkan by default)
// or shared from a host application through gpucontext.DeviceProvider.
// The default surface renders offscreen; Offscreen exposes the frame for
// CPU readback. Windowed presentation plugs in through the Surface
// interface.
//
// Renderer implements grid.Renderer and reports failures with the grid
// package's sentinel errors: a lost surface is recoverable by Resize, out
// of GPU memory is fatal, anything else is a transient frame skip.
package render
