package event

import "testing"

func TestString(t *testing.T) {
	tcs := []struct {
		ev   Event
		want string
	}{
		{New(Quit), "Quit"},
		{New(Exposed), "Exposed"},
		{NewResized(800, 600), "Resized(800x600)"},
		{NewKey(KeyDown, Key{Name: "A"}), "KeyDown(A)"},
		{NewKey(KeyUp, Key{Name: "Escape"}), "KeyUp(Escape)"},
		{NewOther("0x7f00"), "Other(0x7f00)"},
		{Event{}, "Unknown"},
	}
	for _, tc := range tcs {
		if got := tc.ev.String(); got != tc.want {
			t.Errorf("got %q, want %q", got, tc.want)
		}
	}
}

func TestModString(t *testing.T) {
	tcs := []struct {
		mod  Mod
		want string
	}{
		{0, "none"},
		{ModShift, "shift"},
		{ModCtrl | ModAlt, "ctrl+alt"},
		{ModShift | ModCtrl | ModAlt | ModMeta, "shift+ctrl+alt+meta"},
	}
	for _, tc := range tcs {
		if got := tc.mod.String(); got != tc.want {
			t.Errorf("Mod(%d): got %q, want %q", tc.mod, got, tc.want)
		}
	}
}
