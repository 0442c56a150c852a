// Package event defines the window and keyboard events drained by the main loop.
package event

import (
	"fmt"
	"strings"
	"time"
)

// Kind enum type.
type Kind int

// Kind values.
const (
	_       Kind = iota
	Quit         // The user or the OS asked the application to close.
	Resized      // The window changed size.
	KeyDown      // A key was pressed.
	KeyUp        // A key was released.
	Exposed      // The window contents must be redrawn.
	Other        // Anything the dispatcher has no dedicated handler for.
)

func (k Kind) String() string {
	switch k {
	case Quit:
		return "Quit"
	case Resized:
		return "Resized"
	case KeyDown:
		return "KeyDown"
	case KeyUp:
		return "KeyUp"
	case Exposed:
		return "Exposed"
	case Other:
		return "Other"
	default:
		return "Unknown"
	}
}

// Mod is a bitmask of keyboard modifiers held during a key event.
type Mod int

// Mod values.
const (
	ModShift Mod = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

func (m Mod) String() string {
	var parts []string
	if m&ModShift != 0 {
		parts = append(parts, "shift")
	}
	if m&ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if m&ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if m&ModMeta != 0 {
		parts = append(parts, "meta")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// Size is the payload of a Resized event.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// Key is the payload of KeyDown and KeyUp events.
// Backends fill what they know: terminals have no scancodes, ebiten has no runes.
type Key struct {
	Scancode int    // Physical key position, backend specific.
	Code     int    // Virtual key code, backend specific.
	Name     string // Human readable key name.
	Rune     rune   // Printable character, 0 if none.
	Mod      Mod
	Repeat   bool // Auto-repeat from a held key.
}

// Event is a single pending window/input event.
// Only the payload matching Kind is set.
type Event struct {
	Kind      Kind
	Timestamp time.Duration // Elapsed since the driver started.

	Size Size   // Resized.
	Key  Key    // KeyDown, KeyUp.
	Raw  string // Other: backend native kind.
}

// New creates an event of the given kind.
func New(k Kind) Event {
	return Event{Kind: k}
}

// NewResized creates a Resized event.
func NewResized(width, height int) Event {
	return Event{Kind: Resized, Size: Size{Width: width, Height: height}}
}

// NewKey creates a KeyDown or KeyUp event.
func NewKey(k Kind, key Key) Event {
	return Event{Kind: k, Key: key}
}

// NewOther creates a catch-all event carrying the backend's own name for it.
func NewOther(raw string) Event {
	return Event{Kind: Other, Raw: raw}
}

func (e Event) String() string {
	switch e.Kind {
	case Resized:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Size)
	case KeyDown, KeyUp:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Key.Name)
	case Other:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Raw)
	default:
		return e.Kind.String()
	}
}
