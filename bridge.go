package grid

import "sync/atomic"

// Bridge is the cross-thread message channel into the event loop. Senders
// obtained from it (including the Bridge itself) may be used from any
// goroutine; all clones share one destination.
//
// The loop owner closes the bridge when the loop terminates. Sending on a
// closed bridge is a programming error, the caller holds a capability
// whose lifetime it failed to respect, and panics.
type Bridge struct {
	ch     chan Message
	closed *atomic.Bool
}

// NewBridge creates a bridge whose buffer holds capacity messages.
// A capacity of 0 or less gets a small default buffer.
func NewBridge(capacity int) *Bridge {
	if capacity <= 0 {
		capacity = 16
	}
	return &Bridge{
		ch:     make(chan Message, capacity),
		closed: new(atomic.Bool),
	}
}

// Send enqueues a message for the application, blocking while the buffer
// is full. It panics if the loop has terminated.
func (b *Bridge) Send(m Message) {
	defer func() {
		if recover() != nil {
			panic("grid: send on terminated event loop")
		}
	}()
	if b.closed.Load() {
		panic("grid: send on terminated event loop")
	}
	b.ch <- m
}

// Clone returns a sender sharing this bridge's destination and lifetime.
func (b *Bridge) Clone() MessageSender {
	return &Bridge{ch: b.ch, closed: b.closed}
}

// Messages returns the receive side consumed by the scheduler.
func (b *Bridge) Messages() <-chan Message { return b.ch }

// Close marks the loop terminated. Called by the scheduler when its run
// ends; after Close every Send panics.
func (b *Bridge) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.ch)
	}
}

var _ MessageSender = (*Bridge)(nil)
