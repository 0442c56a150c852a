// Package term implements the platform driver on a terminal through tcell.
// The terminal screen plays the window: it is always resizable and has no
// key release events.
package term

import (
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"go.creack.net/hero/event"
	"go.creack.net/hero/platform"
)

func init() {
	platform.Register("term", func() platform.Driver { return New(nil) })
}

// Driver is the tcell driver.
type Driver struct {
	screen tcell.Screen
	start  time.Time

	// Events synthesized from a single tcell event, drained first.
	pending []event.Event
}

// New creates a terminal driver. A nil screen uses the process terminal.
func New(screen tcell.Screen) *Driver {
	return &Driver{screen: screen}
}

// Init implements platform.Driver.
func (d *Driver) Init() error {
	if d.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("tcell new screen: %w", err)
		}
		d.screen = s
	}
	d.start = time.Now()
	return nil
}

// Quit implements platform.Driver.
func (d *Driver) Quit() {}

// Elapsed implements platform.Driver.
func (d *Driver) Elapsed() time.Duration { return time.Since(d.start) }

// CreateWindow implements platform.Driver. Size and resizable flag are
// dictated by the terminal.
func (d *Driver) CreateWindow(cfg platform.WindowConfig) (platform.Window, platform.Surface, error) {
	if d.screen == nil {
		return nil, nil, fmt.Errorf("tcell: driver not initialized")
	}
	if err := d.screen.Init(); err != nil {
		return nil, nil, fmt.Errorf("tcell init screen: %w", err)
	}
	d.screen.HideCursor()
	w := &Window{screen: d.screen, title: cfg.Title}
	return w, &Surface{w: w, style: tcell.StyleDefault}, nil
}

// PollEvent implements platform.Driver.
func (d *Driver) PollEvent() (event.Event, bool) {
	if len(d.pending) == 0 {
		if d.screen == nil || !d.screen.HasPendingEvent() {
			return event.Event{}, false
		}
		ev := d.screen.PollEvent()
		if ev == nil {
			// Screen finalized.
			return event.Event{}, false
		}
		d.pending = append(d.pending, translate(ev)...)
	}
	ev := d.pending[0]
	d.pending = d.pending[1:]
	ev.Timestamp = d.Elapsed()
	return ev, true
}

// Loop implements platform.Driver.
func (d *Driver) Loop(step func() bool) error {
	for step() {
	}
	return nil
}

func translate(ev tcell.Event) []event.Event {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		// Terminal contents are stale after a resize.
		w, h := ev.Size()
		return []event.Event{event.NewResized(w, h), event.New(event.Exposed)}
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return []event.Event{event.New(event.Quit)}
		}
		return []event.Event{event.NewKey(event.KeyDown, keyOf(ev))}
	case *tcell.EventFocus:
		if ev.Focused {
			return []event.Event{event.NewOther("focus gained")}
		}
		return []event.Event{event.NewOther("focus lost")}
	default:
		return []event.Event{event.NewOther(fmt.Sprintf("%T", ev))}
	}
}

func keyOf(ev *tcell.EventKey) event.Key {
	k := event.Key{
		Code: int(ev.Key()),
		Name: ev.Name(),
	}
	if ev.Key() == tcell.KeyRune {
		k.Rune = ev.Rune()
	}
	m := ev.Modifiers()
	if m&tcell.ModShift != 0 {
		k.Mod |= event.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		k.Mod |= event.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		k.Mod |= event.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		k.Mod |= event.ModMeta
	}
	return k
}

// Window is the terminal screen.
type Window struct {
	screen    tcell.Screen
	title     string
	destroyed bool
}

// Title implements platform.Window.
func (w *Window) Title() string { return w.title }

// Size implements platform.Window.
func (w *Window) Size() (int, int) { return w.screen.Size() }

// Destroy implements platform.Window. It gives the terminal back.
func (w *Window) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.screen.Fini()
}

// Surface paints the whole screen background.
type Surface struct {
	w     *Window
	style tcell.Style
}

// SetDrawColor implements platform.Surface.
func (s *Surface) SetDrawColor(c color.Color) {
	s.style = tcell.StyleDefault.Background(Color(c))
}

// Clear implements platform.Surface.
func (s *Surface) Clear() error {
	if s.w.destroyed {
		return fmt.Errorf("tcell: clear on destroyed screen")
	}
	s.w.screen.SetStyle(s.style)
	s.w.screen.Clear()
	return nil
}

// Present implements platform.Surface.
func (s *Surface) Present() error {
	if s.w.destroyed {
		return fmt.Errorf("tcell: present on destroyed screen")
	}
	s.w.screen.Show()
	return nil
}

// Color converts a color to a true color tcell one, alpha ignored.
func Color(c color.Color) tcell.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B))
}
