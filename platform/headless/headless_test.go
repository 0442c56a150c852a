package headless

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"go.creack.net/hero/event"
	"go.creack.net/hero/platform"
)

func TestParseScript(t *testing.T) {
	events, err := ParseScript([]string{"exposed", "keydown:A", "resized:800x600", "keyup:Escape", "other:joystick", "quit"})
	if err != nil {
		t.Fatalf("parse: %s", err)
	}
	want := []event.Kind{event.Exposed, event.KeyDown, event.Resized, event.KeyUp, event.Other, event.Quit}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, k := range want {
		if events[i].Kind != k {
			t.Errorf("event %d: expected %s, got %s", i, k, events[i].Kind)
		}
	}
	if k := events[1].Key; k.Name != "A" || k.Rune != 'A' {
		t.Errorf("unexpected key payload: %+v", k)
	}
	if k := events[3].Key; k.Name != "Escape" || k.Rune != 0 {
		t.Errorf("unexpected key payload: %+v", k)
	}
	if s := events[2].Size; s.Width != 800 || s.Height != 600 {
		t.Errorf("unexpected size: %s", s)
	}
	if events[4].Raw != "joystick" {
		t.Errorf("unexpected raw: %q", events[4].Raw)
	}
}

func TestParseScriptErrors(t *testing.T) {
	for _, line := range []string{"resized:800", "resized:ax600", "resized:800xb", "resized:-5x0", "resized:0x600", "resized:800x0", "keydown", "teleport"} {
		if _, err := ParseScript([]string{line}); err == nil {
			t.Errorf("expected an error for %q", line)
		}
	}
}

func TestDriverLifecycle(t *testing.T) {
	d := New()
	d.SetClock(func() time.Duration { return time.Second })

	if _, _, err := d.CreateWindow(platform.WindowConfig{}); err == nil {
		t.Fatal("expected an error before Init")
	}
	if err := d.Init(); err != nil {
		t.Fatalf("init: %s", err)
	}
	w, s, err := d.CreateWindow(platform.WindowConfig{Title: "t", Width: 10, Height: 20})
	if err != nil {
		t.Fatalf("create window: %s", err)
	}
	if d.LiveWindows() != 1 {
		t.Fatalf("expected 1 live window, got %d", d.LiveWindows())
	}

	s.SetDrawColor(color.Black)
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %s", err)
	}
	if err := s.Present(); err != nil {
		t.Fatalf("present: %s", err)
	}
	if f := d.Frames(); len(f) != 1 || f[0].Color != color.Black || f[0].At != time.Second {
		t.Fatalf("unexpected frames: %+v", f)
	}

	d.Push(event.NewResized(30, 40))
	ev, ok := d.PollEvent()
	if !ok || ev.Timestamp != time.Second {
		t.Fatalf("unexpected poll: %v %t", ev, ok)
	}
	if width, height := w.Size(); width != 30 || height != 40 {
		t.Fatalf("window did not follow resize: %dx%d", width, height)
	}
	if _, ok := d.PollEvent(); ok {
		t.Fatal("expected empty queue")
	}

	w.Destroy()
	w.Destroy()
	if d.LiveWindows() != 0 {
		t.Fatalf("expected no live window, got %d", d.LiveWindows())
	}
	if err := s.Present(); err == nil {
		t.Fatal("expected present to fail on a destroyed window")
	}
	d.Quit()
	if d.Started() {
		t.Fatal("driver still started")
	}
}

func TestSurfaceFailureReleasesWindow(t *testing.T) {
	d := New()
	d.SurfaceErr = errors.New("no renderer")
	if err := d.Init(); err != nil {
		t.Fatalf("init: %s", err)
	}
	w, s, err := d.CreateWindow(platform.WindowConfig{Width: 1, Height: 1})
	if err == nil || w != nil || s != nil {
		t.Fatalf("expected failure with no handles, got %v %v %v", w, s, err)
	}
	if d.LiveWindows() != 0 {
		t.Fatalf("window leaked")
	}
}

func TestLoopBound(t *testing.T) {
	d := New()
	d.MaxSteps = 5
	n := 0
	if err := d.Loop(func() bool { n++; return true }); err != nil {
		t.Fatalf("loop: %s", err)
	}
	if n != 5 {
		t.Fatalf("expected 5 steps, got %d", n)
	}

	d.MaxSteps = 0
	n = 0
	_ = d.Loop(func() bool { n++; return n < 3 })
	if n != 3 {
		t.Fatalf("expected 3 steps, got %d", n)
	}
}

func TestRegistered(t *testing.T) {
	drv, err := platform.New("headless")
	if err != nil {
		t.Fatalf("new: %s", err)
	}
	if _, ok := drv.(*Driver); !ok {
		t.Fatalf("unexpected driver type %T", drv)
	}
	if _, err := platform.New("nope"); !errors.Is(err, platform.ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
}
