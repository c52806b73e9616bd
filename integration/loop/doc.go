// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package loop holds end-to-end tests that wire the scheduler, the glyph
// cache, and the GPU renderer together over an in-memory backend, the
// way a windowed frontend would.
package loop
