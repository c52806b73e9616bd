package grid

import "sync"

// Default window geometry for backends that create their own surface.
const (
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 1024
)

// Backend is the platform side of the event loop: a source of events and a
// way to schedule redraws. Platform adapters (a window, a test harness)
// implement it; the scheduler consumes it.
type Backend interface {
	// Events returns the event stream. The backend closes the channel
	// when the platform loop ends; the scheduler then shuts down.
	Events() <-chan Event

	// RequestFrame schedules exactly one EventRedraw on the stream. The
	// scheduler coalesces its own requests; backends need no dedup.
	RequestFrame()

	// Size returns the initial physical surface size.
	Size() PixelSize
}

// NullBackend is an in-memory Backend for tests and headless use. Events
// are posted by the test; RequestFrame appends an EventRedraw like a
// platform would.
type NullBackend struct {
	size PixelSize
	ch   chan Event

	mu        sync.Mutex
	closed    bool
	requested int
}

// NewNullBackend creates a backend reporting the given initial size, with
// room for 64 buffered events.
func NewNullBackend(size PixelSize) *NullBackend {
	return &NullBackend{size: size, ch: make(chan Event, 64)}
}

// Events returns the event stream.
func (b *NullBackend) Events() <-chan Event { return b.ch }

// Size returns the initial surface size.
func (b *NullBackend) Size() PixelSize { return b.size }

// Post appends an event to the stream. Posting after Close panics, as
// sending on a closed channel does.
func (b *NullBackend) Post(ev Event) { b.ch <- ev }

// RequestFrame appends an EventRedraw and counts the request.
func (b *NullBackend) RequestFrame() {
	b.mu.Lock()
	b.requested++
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return
	}
	b.ch <- RedrawEvent()
}

// FrameRequests returns how many times RequestFrame was called.
func (b *NullBackend) FrameRequests() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requested
}

// Close ends the stream. Safe to call once; further Post calls panic.
func (b *NullBackend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	close(b.ch)
}

var _ Backend = (*NullBackend)(nil)
