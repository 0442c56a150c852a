package app

import (
	"log/slog"

	"go.creack.net/hero/event"
	"go.creack.net/hero/platform"
)

// State of the main loop.
type State int

// State values.
const (
	Running State = iota
	Terminating
)

func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Terminating:
		return "Terminating"
	default:
		return "Unknown"
	}
}

// Stats counts what the dispatcher did so far.
type Stats struct {
	Passes    int // Calls to Step.
	Events    int // Events dispatched.
	Renders   int // Frames rendered.
	Unhandled int // Events routed to the catch-all.
}

// FrameRenderer draws one frame.
type FrameRenderer interface {
	RenderFrame()
}

// Dispatcher drains the event queue and routes each event by kind.
type Dispatcher struct {
	source   platform.Source
	renderer FrameRenderer
	logger   *slog.Logger

	state State
	stats Stats
}

// NewDispatcher creates a dispatcher in the Running state.
func NewDispatcher(source platform.Source, renderer FrameRenderer, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		source:   source,
		renderer: renderer,
		logger:   logger,
		state:    Running,
	}
}

// State returns the current loop state.
func (d *Dispatcher) State() State { return d.state }

// Stats returns the counters.
func (d *Dispatcher) Stats() Stats { return d.stats }

// Step runs one loop iteration: every queued event is dispatched, even the
// ones following a Quit. Returns false once the loop should exit.
func (d *Dispatcher) Step() bool {
	d.stats.Passes++
	for {
		ev, ok := d.source.PollEvent()
		if !ok {
			break
		}
		d.Dispatch(ev)
	}
	return d.state == Running
}

// Dispatch handles a single event. Handlers never block.
func (d *Dispatcher) Dispatch(ev event.Event) {
	d.stats.Events++
	switch ev.Kind {
	case event.Quit:
		d.logger.Debug("quit requested")
		d.state = Terminating
	case event.Resized:
		d.logger.Info("resize", "width", ev.Size.Width, "height", ev.Size.Height)
	case event.KeyDown:
		d.logKey("key down", ev.Key)
	case event.KeyUp:
		d.logKey("key up", ev.Key)
	case event.Exposed:
		d.stats.Renders++
		d.renderer.RenderFrame()
	default:
		d.stats.Unhandled++
		d.logger.Info("unhandled event", "kind", ev.Kind, "raw", ev.Raw)
	}
}

func (d *Dispatcher) logKey(msg string, k event.Key) {
	attrs := []any{"key", k.Name, "code", k.Code}
	if k.Scancode != 0 {
		attrs = append(attrs, "scancode", k.Scancode)
	}
	if k.Rune != 0 {
		attrs = append(attrs, "rune", string(k.Rune))
	}
	attrs = append(attrs, "mod", k.Mod, "repeat", k.Repeat)
	d.logger.Info(msg, attrs...)
}
