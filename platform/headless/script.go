package headless

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.creack.net/hero/event"
)

// ParseScript converts textual events into events.
//
// Accepted forms: "quit", "exposed", "resized:WxH", "keydown:K", "keyup:K",
// and "other:NAME". K is a key name; single characters also set the rune.
func ParseScript(lines []string) ([]event.Event, error) {
	out := make([]event.Event, 0, len(lines))
	for i, line := range lines {
		ev, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		out = append(out, ev)
	}
	return out, nil
}

func parseLine(line string) (event.Event, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), ":")
	switch strings.ToLower(name) {
	case "quit":
		return event.New(event.Quit), nil
	case "exposed", "expose":
		return event.New(event.Exposed), nil
	case "resized", "resize":
		ws, hs, ok := strings.Cut(arg, "x")
		if !ok {
			return event.Event{}, fmt.Errorf("invalid size %q, expected WxH", arg)
		}
		w, err := strconv.Atoi(ws)
		if err != nil {
			return event.Event{}, fmt.Errorf("invalid width %q: %w", ws, err)
		}
		h, err := strconv.Atoi(hs)
		if err != nil {
			return event.Event{}, fmt.Errorf("invalid height %q: %w", hs, err)
		}
		if w <= 0 || h <= 0 {
			return event.Event{}, fmt.Errorf("size must be positive, got %dx%d", w, h)
		}
		return event.NewResized(w, h), nil
	case "keydown", "keyup":
		if arg == "" {
			return event.Event{}, fmt.Errorf("missing key name in %q", line)
		}
		k := event.KeyDown
		if strings.EqualFold(name, "keyup") {
			k = event.KeyUp
		}
		key := event.Key{Name: arg}
		if r, size := utf8.DecodeRuneInString(arg); size == len(arg) {
			key.Rune = r
			key.Code = int(r)
		}
		return event.NewKey(k, key), nil
	case "other":
		if arg == "" {
			arg = "unknown"
		}
		return event.NewOther(arg), nil
	default:
		return event.Event{}, fmt.Errorf("unknown event %q", name)
	}
}
