// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "errors"

// Renderer errors.
var (
	// ErrNoBackend is returned when no GPU backend is available.
	ErrNoBackend = errors.New("render: no GPU backend available")

	// ErrNoAdapters is returned when the backend exposes no adapters.
	ErrNoAdapters = errors.New("render: no GPU adapters found")

	// ErrNilGlyphCache is returned when creating a renderer without a
	// glyph cache.
	ErrNilGlyphCache = errors.New("render: glyph cache is nil")

	// ErrNoProvider is returned when a device provider does not expose
	// HAL device and queue handles.
	ErrNoProvider = errors.New("render: device provider does not expose HAL types")

	// ErrClosed is returned when using a renderer after Close.
	ErrClosed = errors.New("render: renderer is closed")
)
