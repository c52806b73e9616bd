// Package grid provides a GPU-backed rendering backend for character-grid
// user interfaces.
//
// # Overview
//
// grid sits between an application that produces a grid of styled characters
// and the screen. It owns glyph rasterization and caching, GPU surface
// management, frame scheduling, input translation, and cross-thread message
// delivery. It is designed for terminal-style programs (editors, dashboards,
// TUIs) that want a GPU presentation path without depending on a terminal
// emulator.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/grid"
//	    "github.com/gogpu/grid/glyph"
//	    "github.com/gogpu/grid/render"
//	)
//
//	src, _ := glyph.NewFontSourceFromFile("mono.ttf")
//	cache, _ := glyph.New(src, grid.DefaultFontSize)
//	renderer, _ := render.New(cache)
//
//	backend := grid.NewNullBackend(grid.PixelSize{Width: 1280, Height: 1024})
//	sched := grid.NewScheduler(app, renderer, cache, backend)
//	err := sched.Run(ctx)
//
// # Architecture
//
// The library is organized into:
//   - Root package: shared types (Cell, Canvas, Key, Event), the redraw
//     scheduler, and the message bridge
//   - glyph: glyph cache and texture atlas
//   - render: GPU device, pipeline, and presentation surface
//
// The scheduler is the single owner of the application, renderer, and glyph
// cache. Everything it owns is driven from one goroutine; the message bridge
// is the only cross-thread entry point.
//
// # Coordinate System
//
// Grid coordinates are (column, row) with the origin at the top-left.
// Pixel coordinates follow standard computer graphics conventions: origin
// top-left, X right, Y down.
package grid
