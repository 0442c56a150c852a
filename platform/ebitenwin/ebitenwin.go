// Package ebitenwin implements the platform driver on top of ebiten.
//
// Ebiten owns the frame loop: events are gathered at the start of every
// Update tick and the step function drains them within the same tick.
package ebitenwin

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/bitmapfont/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"go.creack.net/hero/event"
	"go.creack.net/hero/platform"
)

var fontFace = text.NewGoXFace(bitmapfont.Face)

func init() {
	platform.Register("ebiten", func() platform.Driver { return New() })
}

// Driver is the ebiten driver.
type Driver struct {
	start   time.Time
	overlay bool

	input input
	queue []event.Event
	keys  []ebiten.Key

	window *Window

	// Last observed state, used to synthesize events.
	ticks         int
	width, height int
	focused       bool
}

// New creates an ebiten driver.
func New() *Driver {
	return &Driver{input: ebitenInput{}}
}

// input is the per tick state ebiten exposes through package functions.
type input interface {
	WindowSize() (int, int)
	IsFocused() bool
	IsWindowBeingClosed() bool
	IsKeyPressed(k ebiten.Key) bool
	AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key
	AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key
}

type ebitenInput struct{}

func (ebitenInput) WindowSize() (int, int) { return ebiten.WindowSize() }
func (ebitenInput) IsFocused() bool { return ebiten.IsFocused() }
func (ebitenInput) IsWindowBeingClosed() bool { return ebiten.IsWindowBeingClosed() }
func (ebitenInput) IsKeyPressed(k ebiten.Key) bool { return ebiten.IsKeyPressed(k) }

func (ebitenInput) AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustPressedKeys(keys)
}

func (ebitenInput) AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustReleasedKeys(keys)
}

// SetOverlay toggles the elapsed time / color text drawn over each frame.
func (d *Driver) SetOverlay(enabled bool) { d.overlay = enabled }

// Init implements platform.Driver.
func (d *Driver) Init() error {
	d.start = time.Now()
	return nil
}

// Quit implements platform.Driver. The window goes away when the game loop returns.
func (d *Driver) Quit() {}

// Elapsed implements platform.Driver.
func (d *Driver) Elapsed() time.Duration { return time.Since(d.start) }

// CreateWindow implements platform.Driver.
func (d *Driver) CreateWindow(cfg platform.WindowConfig) (platform.Window, platform.Surface, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, nil, fmt.Errorf("ebiten: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
	// Closing the window becomes a Quit event instead of ending the game.
	ebiten.SetWindowClosingHandled(true)
	// The presented color stays on screen until the next present.
	ebiten.SetScreenClearedEveryFrame(false)

	d.width, d.height = cfg.Width, cfg.Height
	d.window = &Window{title: cfg.Title}
	return d.window, &Surface{w: d.window}, nil
}

// PollEvent implements platform.Driver.
func (d *Driver) PollEvent() (event.Event, bool) {
	if len(d.queue) == 0 {
		return event.Event{}, false
	}
	ev := d.queue[0]
	d.queue = d.queue[1:]
	return ev, true
}

// Loop implements platform.Driver.
func (d *Driver) Loop(step func() bool) error {
	if d.window == nil {
		return fmt.Errorf("ebiten: no window")
	}
	if err := ebiten.RunGame(&game{d: d, step: step}); err != nil {
		return fmt.Errorf("ebiten run: %w", err)
	}
	return nil
}

func (d *Driver) push(ev event.Event) {
	ev.Timestamp = d.Elapsed()
	d.queue = append(d.queue, ev)
}

// collect turns the input state of the current tick into events.
func (d *Driver) collect() {
	expose := d.ticks == 0
	d.ticks++

	if w, h := d.input.WindowSize(); w != d.width || h != d.height {
		d.width, d.height = w, h
		d.push(event.NewResized(w, h))
		expose = true
	}

	if focused := d.input.IsFocused(); focused != d.focused {
		d.focused = focused
		if focused {
			d.push(event.NewOther("focus gained"))
			expose = true
		} else {
			d.push(event.NewOther("focus lost"))
		}
	}

	d.keys = d.input.AppendJustPressedKeys(d.keys[:0])
	for _, k := range d.keys {
		d.push(event.NewKey(event.KeyDown, d.keyOf(k)))
	}
	d.keys = d.input.AppendJustReleasedKeys(d.keys[:0])
	for _, k := range d.keys {
		d.push(event.NewKey(event.KeyUp, d.keyOf(k)))
	}

	if expose {
		d.push(event.New(event.Exposed))
	}
	if d.input.IsWindowBeingClosed() {
		d.push(event.New(event.Quit))
	}
}

func (d *Driver) keyOf(k ebiten.Key) event.Key {
	var mod event.Mod
	if d.input.IsKeyPressed(ebiten.KeyShift) {
		mod |= event.ModShift
	}
	if d.input.IsKeyPressed(ebiten.KeyControl) {
		mod |= event.ModCtrl
	}
	if d.input.IsKeyPressed(ebiten.KeyAlt) {
		mod |= event.ModAlt
	}
	if d.input.IsKeyPressed(ebiten.KeyMeta) {
		mod |= event.ModMeta
	}
	return event.Key{
		Code: int(k),
		Name: k.String(),
		Mod:  mod,
	}
}

// game implements ebiten.Game interface.
type game struct {
	d    *Driver
	step func() bool
}

// Update gathers the tick's events and runs one loop iteration.
func (g *game) Update() error {
	g.d.collect()
	if !g.step() {
		return ebiten.Termination
	}
	return nil
}

// Draw paints the last presented color.
func (g *game) Draw(screen *ebiten.Image) {
	w := g.d.window
	if w == nil || w.destroyed || w.presented == nil {
		return
	}
	screen.Fill(w.presented)
	if !g.d.overlay {
		return
	}
	textOp := &text.DrawOptions{}
	textOp.GeoM.Translate(4, 4)
	textOp.ColorScale.ScaleWithColor(color.RGBA{R: 255})
	n := color.NRGBAModel.Convert(w.presented).(color.NRGBA)
	text.Draw(screen, fmt.Sprintf("%.2fs #%02x%02x%02x", g.d.Elapsed().Seconds(), n.R, n.G, n.B), fontFace, textOp)
}

// Layout keeps a 1:1 mapping between window and screen pixels.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Window is the ebiten window. Ebiten only ever has one.
type Window struct {
	title     string
	presented color.Color
	destroyed bool
}

// Title implements platform.Window.
func (w *Window) Title() string { return w.title }

// Size implements platform.Window.
func (w *Window) Size() (int, int) { return ebiten.WindowSize() }

// Destroy implements platform.Window.
func (w *Window) Destroy() { w.destroyed = true }

// Surface buffers the clear color until present.
type Surface struct {
	w       *Window
	color   color.Color
	cleared color.Color
}

// SetDrawColor implements platform.Surface.
func (s *Surface) SetDrawColor(c color.Color) { s.color = c }

// Clear implements platform.Surface.
func (s *Surface) Clear() error {
	if s.w.destroyed {
		return fmt.Errorf("ebiten: clear on destroyed window")
	}
	s.cleared = s.color
	return nil
}

// Present implements platform.Surface.
func (s *Surface) Present() error {
	if s.w.destroyed {
		return fmt.Errorf("ebiten: present on destroyed window")
	}
	s.w.presented = s.cleared
	return nil
}
