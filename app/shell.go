// Package app holds the application core: the shell owning the window, the
// event dispatcher and the frame renderer.
package app

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"go.creack.net/hero/platform"
)

// Options configures the shell.
type Options struct {
	Window platform.WindowConfig
	Period time.Duration // Color cycle period.
	Tint   color.Color   // Nil renders grayscale.
}

// Context holds the window and its surface. Both are set or both are nil.
type Context struct {
	Window  platform.Window
	Surface platform.Surface
}

// Live reports whether the window/surface pair exists.
func (c *Context) Live() bool { return c.Window != nil && c.Surface != nil }

// ErrNotInitialized is returned by Run before a successful Initialize.
var ErrNotInitialized = errors.New("shell not initialized")

// Shell owns the driver and the window for the process lifetime.
// Lifecycle: Initialize, Run, Shutdown. No re-entry.
type Shell struct {
	driver platform.Driver
	opts   Options
	logger *slog.Logger

	ctx        Context
	dispatcher *Dispatcher
}

// NewShell creates a shell over the given driver.
func NewShell(driver platform.Driver, opts Options, logger *slog.Logger) *Shell {
	return &Shell{driver: driver, opts: opts, logger: logger}
}

// Context returns the owned window/surface pair.
func (s *Shell) Context() *Context { return &s.ctx }

// Dispatcher returns the dispatcher built by Run, nil before.
func (s *Shell) Dispatcher() *Dispatcher { return s.dispatcher }

// Initialize starts the driver and creates the window and its surface.
// On failure nothing stays acquired.
func (s *Shell) Initialize() error {
	if err := s.driver.Init(); err != nil {
		s.logger.Error("Couldn't initialize the windowing library.", "error", err)
		return fmt.Errorf("init driver: %w", err)
	}
	w, surface, err := s.driver.CreateWindow(s.opts.Window)
	if err != nil {
		s.logger.Error("Couldn't create window/renderer.", "error", err)
		s.driver.Quit()
		return fmt.Errorf("create window: %w", err)
	}
	s.ctx = Context{Window: w, Surface: surface}
	width, height := w.Size()
	s.logger.Debug("window created", "title", w.Title(), "width", width, "height", height)
	return nil
}

// Run drives the event loop until a Quit event is dispatched.
func (s *Shell) Run() error {
	if !s.ctx.Live() {
		return ErrNotInitialized
	}
	renderer := NewRenderer(s.driver, s.ctx.Surface, s.opts.Period, s.opts.Tint)
	s.dispatcher = NewDispatcher(s.driver, renderer, s.logger)
	if err := s.driver.Loop(s.dispatcher.Step); err != nil {
		return fmt.Errorf("event loop: %w", err)
	}
	return nil
}

// Shutdown destroys the window, implicitly its surface, then stops the driver.
func (s *Shell) Shutdown() {
	if s.dispatcher != nil {
		st := s.dispatcher.Stats()
		s.logger.Debug("shutting down",
			"passes", st.Passes,
			"events", st.Events,
			"renders", st.Renders,
			"unhandled", st.Unhandled,
		)
	}
	if s.ctx.Window != nil {
		s.ctx.Window.Destroy()
	}
	s.ctx = Context{}
	s.driver.Quit()
}
