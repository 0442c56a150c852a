// Package platform is the boundary between the application core and the
// windowing library doing the actual work.
package platform

import (
	"errors"
	"image/color"
	"time"

	"go.creack.net/hero/event"
)

// WindowConfig describes the window created at startup.
type WindowConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
}

// Window is the OS level window.
type Window interface {
	Title() string
	Size() (width, height int)
	// Destroy releases the window and the surface bound to it.
	Destroy()
}

// Surface is the drawable target bound to a Window.
type Surface interface {
	SetDrawColor(c color.Color)
	Clear() error
	Present() error
}

// Clock reports the time elapsed since the driver started.
type Clock interface {
	Elapsed() time.Duration
}

// Source is a non-blocking event queue.
type Source interface {
	// PollEvent returns the next pending event, false when the queue is empty.
	PollEvent() (event.Event, bool)
}

// Driver wraps a windowing library.
//
// Init and Quit bracket the library lifetime. CreateWindow returns both
// handles or neither: when the surface can't be created, the window is
// destroyed before returning.
type Driver interface {
	Source
	Clock

	Init() error
	CreateWindow(cfg WindowConfig) (Window, Surface, error)
	// Loop calls step until it returns false.
	// Drivers owning their own frame loop call step once per tick.
	Loop(step func() bool) error
	Quit()
}

// ErrUnknownDriver is returned by New for unregistered driver names.
var ErrUnknownDriver = errors.New("unknown driver")
