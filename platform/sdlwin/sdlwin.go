// Package sdlwin implements the platform driver on top of SDL2.
package sdlwin

import (
	"fmt"
	"image/color"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"go.creack.net/hero/event"
	"go.creack.net/hero/platform"
)

func init() {
	// SDL video calls must all happen on the main thread.
	runtime.LockOSThread()

	platform.Register("sdl", func() platform.Driver { return &Driver{} })
}

// Driver is the SDL2 driver.
type Driver struct{}

// Init implements platform.Driver.
func (*Driver) Init() error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	return nil
}

// Quit implements platform.Driver.
func (*Driver) Quit() { sdl.Quit() }

// Elapsed implements platform.Driver.
func (*Driver) Elapsed() time.Duration {
	return ticksToDuration(sdl.GetTicks64())
}

// ticksToDuration converts SDL milliseconds. The 64-bit counter doesn't wrap
// after 49 days like the 32-bit one.
func ticksToDuration(ms uint64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// CreateWindow implements platform.Driver.
func (*Driver) CreateWindow(cfg platform.WindowConfig) (platform.Window, platform.Surface, error) {
	flags := uint32(sdl.WINDOW_SHOWN)
	if cfg.Resizable {
		flags |= uint32(sdl.WINDOW_RESIZABLE)
	}
	w, err := sdl.CreateWindow(cfg.Title,
		int32(sdl.WINDOWPOS_UNDEFINED),
		int32(sdl.WINDOWPOS_UNDEFINED),
		int32(cfg.Width), int32(cfg.Height), flags)
	if err != nil {
		return nil, nil, fmt.Errorf("sdl create window: %w", err)
	}
	r, err := sdl.CreateRenderer(w, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		_ = w.Destroy()
		return nil, nil, fmt.Errorf("sdl create renderer: %w", err)
	}
	win := &Window{w: w, r: r, title: cfg.Title}
	return win, &Surface{r: r}, nil
}

// PollEvent implements platform.Driver.
func (*Driver) PollEvent() (event.Event, bool) {
	e := sdl.PollEvent()
	if e == nil {
		return event.Event{}, false
	}
	ev := translate(e)
	ev.Timestamp = time.Duration(e.GetTimestamp()) * time.Millisecond
	return ev, true
}

// Loop implements platform.Driver. It never sleeps: PollEvent doesn't block.
func (*Driver) Loop(step func() bool) error {
	for step() {
	}
	return nil
}

func translate(e sdl.Event) event.Event {
	switch e := e.(type) {
	case *sdl.QuitEvent:
		return event.New(event.Quit)
	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_RESIZED:
			return event.NewResized(int(e.Data1), int(e.Data2))
		case sdl.WINDOWEVENT_EXPOSED:
			return event.New(event.Exposed)
		default:
			return event.NewOther(fmt.Sprintf("window:%d", e.Event))
		}
	case *sdl.KeyboardEvent:
		k := event.KeyDown
		if e.Type == sdl.KEYUP {
			k = event.KeyUp
		}
		return event.NewKey(k, event.Key{
			Scancode: int(e.Keysym.Scancode),
			Code:     int(e.Keysym.Sym),
			Name:     sdl.GetKeyName(e.Keysym.Sym),
			Mod:      translateMod(e.Keysym.Mod),
			Repeat:   e.Repeat != 0,
		})
	default:
		return event.NewOther(fmt.Sprintf("0x%x", e.GetType()))
	}
}

func translateMod(m uint16) event.Mod {
	var mod event.Mod
	if m&uint16(sdl.KMOD_SHIFT) != 0 {
		mod |= event.ModShift
	}
	if m&uint16(sdl.KMOD_CTRL) != 0 {
		mod |= event.ModCtrl
	}
	if m&uint16(sdl.KMOD_ALT) != 0 {
		mod |= event.ModAlt
	}
	if m&uint16(sdl.KMOD_GUI) != 0 {
		mod |= event.ModMeta
	}
	return mod
}

// Window wraps the SDL window and owns its renderer.
type Window struct {
	w     *sdl.Window
	r     *sdl.Renderer
	title string
}

// Title implements platform.Window.
func (w *Window) Title() string { return w.title }

// Size implements platform.Window.
func (w *Window) Size() (int, int) {
	width, height := w.w.GetSize()
	return int(width), int(height)
}

// Destroy implements platform.Window.
func (w *Window) Destroy() {
	_ = w.r.Destroy()
	_ = w.w.Destroy()
}

// Surface is the SDL renderer bound to the window.
type Surface struct {
	r *sdl.Renderer
}

// SetDrawColor implements platform.Surface.
func (s *Surface) SetDrawColor(c color.Color) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	_ = s.r.SetDrawColor(n.R, n.G, n.B, n.A)
}

// Clear implements platform.Surface.
func (s *Surface) Clear() error { return s.r.Clear() }

// Present implements platform.Surface.
func (s *Surface) Present() error {
	s.r.Present()
	return nil
}
