package grid

import (
	"context"
	"errors"
)

// State is the scheduler's lifecycle state.
type State uint8

const (
	// StateIdle means no frame is wanted; the loop waits for events.
	StateIdle State = iota
	// StateFrameRequested means a redraw has been scheduled or drawn and
	// the queue has not drained since.
	StateFrameRequested
	// StateExiting means the loop is shutting down; all further events
	// are ignored.
	StateExiting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFrameRequested:
		return "frame-requested"
	case StateExiting:
		return "exiting"
	}
	return "unknown"
}

// Font size defaults and bounds for the zoom accelerators.
const (
	DefaultFontSize = 16.0

	MinFontSize = 1.0
	MaxFontSize = 192.0

	fontSizeStep = 1.0
)

// Scheduler is the single owner of the application, renderer, and glyph
// cache. It consumes backend events and decides when frames are drawn:
//
//   - Redraw requests coalesce: any number of dirty polls while a frame is
//     outstanding produce one frame.
//   - Ctrl+'=' and Ctrl+'-' adjust the font size by one point within
//     [MinFontSize, MaxFontSize]; the application never sees those keys.
//   - A drained queue settles the scheduler back to StateIdle, so the loop
//     blocks instead of spinning.
//
// All methods must be called from one goroutine. Cross-thread input goes
// through a Bridge.
type Scheduler struct {
	app      Application
	renderer Renderer
	glyphs   GlyphCache
	backend  Backend
	bridge   *Bridge

	state        State
	pixel        PixelSize
	gridSize     GridSize
	framePending bool
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithBridge attaches a message bridge. Run feeds its messages into the
// loop and closes it when the loop ends.
func WithBridge(b *Bridge) Option {
	return func(s *Scheduler) { s.bridge = b }
}

// NewScheduler creates a scheduler over an application, a renderer, a
// glyph cache, and an event backend. The initial surface size comes from
// the backend.
func NewScheduler(app Application, r Renderer, g GlyphCache, b Backend, opts ...Option) *Scheduler {
	s := &Scheduler{
		app:      app,
		renderer: r,
		glyphs:   g,
		backend:  b,
		state:    StateIdle,
		pixel:    b.Size(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State { return s.state }

// Start performs the initial handshake: computes the starting grid size,
// informs the application, and requests the first frame. Call once before
// stepping events. Run calls it automatically.
func (s *Scheduler) Start() {
	s.gridSize = GridSizeFor(s.pixel, s.glyphs.CellSize())
	s.app.Resize(s.gridSize)
	s.requestFrame()
}

// Step applies one event to the state machine, performing its side
// effects. Platform adapters that own their own event loop call Step
// directly and deliver an EventDrained when their queue runs dry; Run
// does both over a Backend channel.
func (s *Scheduler) Step(ev Event) {
	if s.state == StateExiting {
		return
	}
	switch ev.Kind {
	case EventClose:
		s.exit("close requested")
	case EventResize, EventScale:
		s.handleResize(ev.Size)
	case EventKey:
		s.handleKey(ev.Scan, ev.Mods)
	case EventMessage:
		s.handleMessage(ev.Msg)
	case EventRedraw:
		s.handleRedraw()
	case EventDrained:
		s.handleDrained()
	}
}

// Run pumps backend events through Step until the loop exits. When both
// queues are empty it synthesizes an EventDrained, then blocks, so bursts
// of work settle into StateIdle instead of spinning.
//
// Run returns nil on a clean exit (close request, application exit, or
// backend shutdown) and ctx.Err() when the context is canceled. The
// renderer is closed on the way out, as is the bridge if one is attached.
func (s *Scheduler) Run(ctx context.Context) error {
	var msgs <-chan Message
	if s.bridge != nil {
		msgs = s.bridge.Messages()
		defer s.bridge.Close()
	}
	defer func() {
		if err := s.renderer.Close(); err != nil {
			Logger().Warn("grid: renderer close failed", "error", err)
		}
	}()

	s.Start()
	events := s.backend.Events()
	for s.state != StateExiting {
		select {
		case <-ctx.Done():
			s.exit("context canceled")
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				s.exit("backend closed")
				return nil
			}
			s.Step(ev)
			continue
		case m, ok := <-msgs:
			if !ok {
				msgs = nil
				continue
			}
			s.Step(MessageEvent(m))
			continue
		default:
		}

		s.Step(DrainedEvent())

		select {
		case <-ctx.Done():
			s.exit("context canceled")
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				s.exit("backend closed")
				return nil
			}
			s.Step(ev)
		case m, ok := <-msgs:
			if !ok {
				msgs = nil
				continue
			}
			s.Step(MessageEvent(m))
		}
	}
	return nil
}

func (s *Scheduler) exit(reason string) {
	Logger().Debug("grid: loop exiting", "reason", reason)
	s.state = StateExiting
}

// handleResize reconfigures the surface and, when the grid actually
// changed, informs the application. A dimension of zero (minimized
// window) leaves everything untouched. Resizing never forces a frame by
// itself; the application asks for one through its poll if it cares.
func (s *Scheduler) handleResize(size PixelSize) {
	if size.Width == 0 || size.Height == 0 {
		return
	}
	s.pixel = size
	s.renderer.Resize(size)
	g := GridSizeFor(size, s.glyphs.CellSize())
	if g == s.gridSize {
		return
	}
	s.gridSize = g
	s.app.Resize(g)
	s.pollApp()
}

// handleKey intercepts the font size accelerators and forwards everything
// else through the key mapper. Unmapped scancodes are dropped.
func (s *Scheduler) handleKey(sc Scancode, mods Modifiers) {
	if mods.Has(ModCtrl) {
		switch sc {
		case ScancodeEquals:
			s.adjustFontSize(+fontSizeStep)
			return
		case ScancodeMinus:
			s.adjustFontSize(-fontSizeStep)
			return
		}
	}
	key, ok := MapKey(sc, mods)
	if !ok {
		Logger().Debug("grid: unmapped key dropped", "scancode", int(sc))
		return
	}
	if err := s.app.HandleInput(key); err != nil {
		Logger().Error("grid: input handler failed, event dropped", "error", err)
		return
	}
	s.pollApp()
}

// adjustFontSize applies one accelerator step. The key is consumed even
// when clamping makes it a no-op. A failed cache rebuild keeps the
// previous generation, so rendering continues at the old size.
func (s *Scheduler) adjustFontSize(delta float64) {
	cur := s.glyphs.FontSize()
	pt := clampFontSize(cur + delta)
	if pt == cur {
		return
	}
	if err := s.glyphs.SetFontSize(pt); err != nil {
		Logger().Error("grid: font size change failed", "size", pt, "error", err)
		return
	}
	s.gridSize = GridSizeFor(s.pixel, s.glyphs.CellSize())
	s.app.Resize(s.gridSize)
	s.requestFrame()
}

func (s *Scheduler) handleMessage(m Message) {
	if err := s.app.HandleMessage(m); err != nil {
		Logger().Error("grid: message handler failed, message dropped", "error", err)
		return
	}
	s.pollApp()
}

// handleRedraw draws one frame. The scheduler stays in StateFrameRequested
// afterwards; only a drained queue settles it back to idle.
func (s *Scheduler) handleRedraw() {
	if s.state != StateFrameRequested {
		// Redraw without a matching request.
		return
	}
	s.framePending = false

	canvas, err := s.app.Draw()
	if err != nil {
		if errors.Is(err, ErrExiting) {
			s.exit("application finished")
		} else {
			Logger().Warn("grid: draw failed, frame skipped", "error", err)
		}
		return
	}

	s.renderer.Update(canvas)
	switch err := s.renderer.Render(); {
	case err == nil:
	case errors.Is(err, ErrSurfaceLost):
		Logger().Warn("grid: surface lost, reconfiguring",
			"width", s.pixel.Width, "height", s.pixel.Height)
		s.renderer.Resize(s.pixel)
		s.requestFrame()
	case errors.Is(err, ErrOutOfMemory):
		Logger().Error("grid: render failed", "error", err)
		s.exit("out of GPU memory")
	default:
		Logger().Warn("grid: render failed, frame skipped", "error", err)
	}
}

func (s *Scheduler) handleDrained() {
	if s.state == StateFrameRequested && !s.framePending {
		s.state = StateIdle
	}
}

// pollApp asks the application what it wants after a delivered event.
func (s *Scheduler) pollApp() {
	st := s.app.Poll()
	if st.Exit {
		s.exit("application requested exit")
		return
	}
	if st.Dirty {
		s.requestFrame()
	}
}

// requestFrame schedules one redraw, coalescing repeated requests while
// one is outstanding.
func (s *Scheduler) requestFrame() {
	if s.framePending || s.state == StateExiting {
		return
	}
	s.framePending = true
	s.state = StateFrameRequested
	s.backend.RequestFrame()
}

func clampFontSize(pt float64) float64 {
	if pt < MinFontSize {
		return MinFontSize
	}
	if pt > MaxFontSize {
		return MaxFontSize
	}
	return pt
}
