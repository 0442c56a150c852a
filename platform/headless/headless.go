// Package headless provides an in-memory driver fed from an event script.
// Nothing is displayed: presented frames are recorded instead.
package headless

import (
	"errors"
	"image/color"
	"time"

	"go.creack.net/hero/event"
	"go.creack.net/hero/platform"
)

func init() {
	platform.Register("headless", func() platform.Driver { return New() })
}

// Frame is a presented frame.
type Frame struct {
	Color  color.Color
	Clears int // Clears issued since the previous present.
	At     time.Duration
}

// Driver is the headless driver.
type Driver struct {
	// Injected failures, returned by the matching step.
	InitErr    error
	WindowErr  error
	SurfaceErr error

	// MaxSteps bounds Loop, 0 means no bound.
	MaxSteps int

	queue   []event.Event
	clock   func() time.Duration
	started bool

	window *Window
	frames []Frame

	windowsCreated   int
	windowsDestroyed int
}

// New creates a headless driver running on the wall clock.
func New() *Driver {
	start := time.Now()
	return &Driver{clock: func() time.Duration { return time.Since(start) }}
}

// SetClock replaces the elapsed time source.
func (d *Driver) SetClock(f func() time.Duration) { d.clock = f }

// Push queues events for the next polls.
func (d *Driver) Push(events ...event.Event) {
	d.queue = append(d.queue, events...)
}

// Pending returns the number of queued events.
func (d *Driver) Pending() int { return len(d.queue) }

// Frames returns the presented frames, oldest first.
func (d *Driver) Frames() []Frame { return d.frames }

// Started reports whether Init succeeded and Quit was not yet called.
func (d *Driver) Started() bool { return d.started }

// LiveWindows returns the number of windows created and not destroyed.
func (d *Driver) LiveWindows() int { return d.windowsCreated - d.windowsDestroyed }

// Init implements platform.Driver.
func (d *Driver) Init() error {
	if d.InitErr != nil {
		return d.InitErr
	}
	d.started = true
	return nil
}

// Quit implements platform.Driver.
func (d *Driver) Quit() { d.started = false }

// Elapsed implements platform.Driver.
func (d *Driver) Elapsed() time.Duration { return d.clock() }

// CreateWindow implements platform.Driver.
func (d *Driver) CreateWindow(cfg platform.WindowConfig) (platform.Window, platform.Surface, error) {
	if !d.started {
		return nil, nil, errors.New("headless: driver not initialized")
	}
	if d.WindowErr != nil {
		return nil, nil, d.WindowErr
	}
	w := &Window{d: d, cfg: cfg, width: cfg.Width, height: cfg.Height}
	d.windowsCreated++
	if d.SurfaceErr != nil {
		w.Destroy()
		return nil, nil, d.SurfaceErr
	}
	w.surface = &Surface{w: w}
	d.window = w
	return w, w.surface, nil
}

// PollEvent implements platform.Driver.
func (d *Driver) PollEvent() (event.Event, bool) {
	if len(d.queue) == 0 {
		return event.Event{}, false
	}
	ev := d.queue[0]
	d.queue = d.queue[1:]
	ev.Timestamp = d.clock()

	// Mirror what real backends do: the window follows resize requests.
	if ev.Kind == event.Resized && d.window != nil && !d.window.destroyed {
		d.window.width, d.window.height = ev.Size.Width, ev.Size.Height
	}
	return ev, true
}

// Loop implements platform.Driver.
func (d *Driver) Loop(step func() bool) error {
	for i := 0; d.MaxSteps == 0 || i < d.MaxSteps; i++ {
		if !step() {
			return nil
		}
	}
	return nil
}

// Window is a headless window.
type Window struct {
	d       *Driver
	cfg     platform.WindowConfig
	surface *Surface

	width, height int
	destroyed     bool
}

// Title implements platform.Window.
func (w *Window) Title() string { return w.cfg.Title }

// Size implements platform.Window.
func (w *Window) Size() (int, int) { return w.width, w.height }

// Resizable reports the flag the window was created with.
func (w *Window) Resizable() bool { return w.cfg.Resizable }

// Destroyed reports whether Destroy was called.
func (w *Window) Destroyed() bool { return w.destroyed }

// Destroy implements platform.Window.
func (w *Window) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.d.windowsDestroyed++
	if w.d.window == w {
		w.d.window = nil
	}
}

// Surface records draw calls.
type Surface struct {
	w      *Window
	color  color.Color
	clears int
}

// SetDrawColor implements platform.Surface.
func (s *Surface) SetDrawColor(c color.Color) { s.color = c }

// Clear implements platform.Surface.
func (s *Surface) Clear() error {
	if s.w.destroyed {
		return errors.New("headless: clear on destroyed window")
	}
	s.clears++
	return nil
}

// Present implements platform.Surface.
func (s *Surface) Present() error {
	if s.w.destroyed {
		return errors.New("headless: present on destroyed window")
	}
	d := s.w.d
	d.frames = append(d.frames, Frame{Color: s.color, Clears: s.clears, At: d.clock()})
	s.clears = 0
	return nil
}
