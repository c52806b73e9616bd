package grid

// Message is an opaque payload delivered to the application through the
// message bridge. Its meaning is entirely application-defined.
type Message = any

// Status is the application's answer to a poll after input or message
// delivery.
type Status struct {
	// Dirty requests a redraw.
	Dirty bool
	// Exit requests loop termination.
	Exit bool
}

// Application is the client of the rendering backend. The scheduler calls
// every method from the loop goroutine; implementations need no internal
// locking for these calls.
type Application interface {
	// HandleInput delivers one abstract key. An error is logged and the
	// event dropped; it does not terminate the loop.
	HandleInput(Key) error

	// HandleMessage delivers one bridge message. Errors are treated like
	// HandleInput errors.
	HandleMessage(Message) error

	// Poll is called after each successful HandleInput or HandleMessage
	// to learn whether the application wants a redraw or wants to exit.
	Poll() Status

	// Draw produces the canvas for the next frame. Returning an error
	// wrapping ErrExiting terminates the loop without rendering; any
	// other error skips the frame.
	Draw() (*Canvas, error)

	// Resize informs the application of a new grid size. Called once
	// before the first frame and whenever the grid changes afterwards.
	Resize(GridSize)
}

// MessageSender is a cloneable capability for delivering messages into the
// running event loop from any goroutine. See Bridge.
type MessageSender interface {
	// Send enqueues a message for the application. Sending after the
	// loop has terminated is a programming error and panics.
	Send(Message)

	// Clone returns an independent sender sharing the same destination.
	Clone() MessageSender
}
