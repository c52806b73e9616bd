package grid

// EventKind discriminates the events a Backend delivers to the scheduler.
type EventKind uint8

const (
	// EventClose asks the loop to terminate (window close button, SIGTERM).
	EventClose EventKind = iota
	// EventResize reports a new physical surface size.
	EventResize
	// EventScale reports a display scale change together with the new
	// physical size. Handled like a resize.
	EventScale
	// EventKey reports a key press.
	EventKey
	// EventRedraw asks the scheduler to draw one frame. Delivered by the
	// backend in response to RequestFrame.
	EventRedraw
	// EventMessage carries an application message from the bridge.
	EventMessage
	// EventDrained reports that the event queue is empty. The pump
	// synthesizes it before blocking; platform adapters driving Step
	// directly deliver it when their own queue runs dry.
	EventDrained
)

// Event is one item of backend input. Which fields are meaningful depends
// on Kind.
type Event struct {
	Kind EventKind
	Size PixelSize // EventResize, EventScale
	Scan Scancode  // EventKey
	Mods Modifiers // EventKey
	Msg  Message   // EventMessage
}

// CloseEvent returns an EventClose.
func CloseEvent() Event { return Event{Kind: EventClose} }

// ResizeEvent returns an EventResize with the given physical size.
func ResizeEvent(size PixelSize) Event { return Event{Kind: EventResize, Size: size} }

// ScaleEvent returns an EventScale with the new physical size.
func ScaleEvent(size PixelSize) Event { return Event{Kind: EventScale, Size: size} }

// KeyEvent returns an EventKey.
func KeyEvent(sc Scancode, mods Modifiers) Event {
	return Event{Kind: EventKey, Scan: sc, Mods: mods}
}

// RedrawEvent returns an EventRedraw.
func RedrawEvent() Event { return Event{Kind: EventRedraw} }

// MessageEvent returns an EventMessage carrying m.
func MessageEvent(m Message) Event { return Event{Kind: EventMessage, Msg: m} }

// DrainedEvent returns an EventDrained.
func DrainedEvent() Event { return Event{Kind: EventDrained} }
