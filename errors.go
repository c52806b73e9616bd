package grid

import "errors"

// Sentinel errors shared across the module. Compare with errors.Is; the
// render package wraps backend failures around these so callers never
// depend on backend-specific error types.
var (
	// ErrExiting is returned by Application.Draw to terminate the event
	// loop. It is a signal, not a failure: the scheduler shuts down
	// cleanly without rendering the frame.
	ErrExiting = errors.New("grid: exiting")

	// ErrSurfaceLost reports that the presentation surface became invalid
	// and must be rebuilt. Recoverable: reconfigure the surface at the
	// current size and render again.
	ErrSurfaceLost = errors.New("grid: surface lost")

	// ErrOutOfMemory reports GPU memory exhaustion. Fatal: no further GPU
	// work may be issued.
	ErrOutOfMemory = errors.New("grid: out of GPU memory")
)
