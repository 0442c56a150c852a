package config

import (
	"bytes"
	"errors"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/image/colornames"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Driver != "sdl" {
		t.Fatalf("unexpected driver %q", cfg.Driver)
	}
	if cfg.Window.Title != "Hero" || cfg.Window.Width != 640 || cfg.Window.Height != 480 || !cfg.Resizable() {
		t.Fatalf("unexpected window: %+v", cfg.Window)
	}
	if cfg.Render.Period != 2*time.Second || cfg.Overlay() {
		t.Fatalf("unexpected render: %+v", cfg.Render)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %s", err)
	}
	if c, _ := cfg.TintColor(); c != color.Color(colornames.White) {
		t.Fatalf("unexpected tint %v", c)
	}
}

func TestLoadMerges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hero.yaml")
	data := `
driver: headless
window:
  width: 800
  resizable: false
render:
  tint: steelblue
  overlay: true
headless:
  events: [exposed, quit]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %s", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %s", err)
	}
	if cfg.Driver != "headless" {
		t.Errorf("unexpected driver %q", cfg.Driver)
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != 480 || cfg.Window.Title != "Hero" {
		t.Errorf("unexpected window %+v", cfg.Window)
	}
	if cfg.Resizable() {
		t.Error("expected resizable=false to override the default")
	}
	if !cfg.Overlay() {
		t.Error("expected overlay")
	}
	if cfg.Render.Period != 2*time.Second {
		t.Errorf("unexpected period %s", cfg.Render.Period)
	}
	if c, err := cfg.TintColor(); err != nil || c != color.Color(colornames.Steelblue) {
		t.Errorf("unexpected tint %v: %v", c, err)
	}
	if len(cfg.Headless.Events) != 2 {
		t.Errorf("unexpected events %v", cfg.Headless.Events)
	}
}

func TestLoadNoPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %s", err)
	}
	if cfg.Window.Title != "Hero" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("window:\n  colour: red\n"), 0o644); err != nil {
		t.Fatalf("write: %s", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an unknown field")
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("parse: %s", err)
	}
	if cfg.Driver != "" {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tcs := []struct {
		name   string
		modify func(c *Config)
	}{
		{"no driver", func(c *Config) { c.Driver = "" }},
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"negative height", func(c *Config) { c.Window.Height = -1 }},
		{"zero period", func(c *Config) { c.Render.Period = 0 }},
		{"tint", func(c *Config) { c.Render.Tint = "ultraviolet" }},
		{"level", func(c *Config) { c.Log.Level = "loud" }},
		{"format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	var buf bytes.Buffer
	logger := cfg.NewLogger(&buf)
	if !logger.Enabled(t.Context(), slog.LevelDebug) {
		t.Fatal("expected debug enabled")
	}
	logger.Info("resize", "width", 1)
	if !strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), `"width":1`) {
		t.Fatalf("expected json output, got %q", buf.String())
	}

	cfg.Log.Level = "warn"
	cfg.Log.Format = "text"
	buf.Reset()
	logger = cfg.NewLogger(&buf)
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected info filtered, got %q", buf.String())
	}
}
