package main

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"go.creack.net/hero/config"
	"go.creack.net/hero/platform"
	"go.creack.net/hero/platform/headless"
)

func init() {
	platform.Register("broken-init", func() platform.Driver {
		d := headless.New()
		d.InitErr = errors.New("no video device available")
		return d
	})
	platform.Register("broken-window", func() platform.Driver {
		d := headless.New()
		d.WindowErr = errors.New("couldn't create window/renderer: no display")
		return d
	})
}

func headlessConfig(events ...string) config.Config {
	cfg := config.Default()
	cfg.Driver = "headless"
	cfg.Headless.Events = events
	return cfg
}

func TestRunScenario(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	code := run(headlessConfig("exposed", "keydown:A", "resized:800x600", "quit"), logger)
	if code != exitOK {
		t.Fatalf("expected exit code %d, got %d: %s", exitOK, code, buf.String())
	}
	out := buf.String()
	for _, want := range []string{"key down", "key=A", "resize", "width=800", "height=600"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestSetupHeadless(t *testing.T) {
	drv, err := setup(headlessConfig("exposed", "quit"))
	if err != nil {
		t.Fatalf("setup: %s", err)
	}
	h, ok := drv.(*headless.Driver)
	if !ok {
		t.Fatalf("unexpected driver %T", drv)
	}
	if h.Pending() != 2 {
		t.Fatalf("expected 2 scripted events, got %d", h.Pending())
	}
}

func TestRunBadSetup(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	cfg := headlessConfig("warp:9")
	if code := run(cfg, logger); code != exitBadConfig {
		t.Fatalf("expected exit code %d, got %d", exitBadConfig, code)
	}

	cfg = headlessConfig()
	cfg.Driver = "vulkan"
	if code := run(cfg, logger); code != exitBadConfig {
		t.Fatalf("expected exit code %d, got %d", exitBadConfig, code)
	}
}

func TestDriversRegistered(t *testing.T) {
	for _, name := range []string{"ebiten", "headless", "sdl", "term"} {
		cfg := headlessConfig()
		cfg.Driver = name
		if _, err := setup(cfg); err != nil {
			t.Errorf("driver %q: %s", name, err)
		}
	}
}

func TestRunInitFailure(t *testing.T) {
	tcs := []struct {
		driver     string
		diagnostic string
	}{
		{"broken-init", "no video device available"},
		{"broken-window", "no display"},
	}
	for _, tc := range tcs {
		t.Run(tc.driver, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			cfg := headlessConfig("exposed", "quit")
			cfg.Driver = tc.driver
			if code := run(cfg, logger); code != exitInitFailed {
				t.Fatalf("expected exit code %d, got %d", exitInitFailed, code)
			}
			if out := buf.String(); !strings.Contains(out, tc.diagnostic) || !strings.Contains(out, "level=ERROR") {
				t.Fatalf("diagnostic %q not logged: %q", tc.diagnostic, out)
			}
		})
	}
}
