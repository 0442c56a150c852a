// Package config loads the application configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"go.creack.net/hero/assets"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the whole application configuration.
type Config struct {
	Driver   string         `yaml:"driver"`
	Window   WindowConfig   `yaml:"window"`
	Render   RenderConfig   `yaml:"render"`
	Log      LogConfig      `yaml:"log"`
	Headless HeadlessConfig `yaml:"headless"`
}

// WindowConfig describes the window created at startup.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable *bool  `yaml:"resizable"`
}

// RenderConfig controls the frame color.
type RenderConfig struct {
	Period  time.Duration `yaml:"period"`
	Tint    string        `yaml:"tint"`
	Overlay *bool         `yaml:"overlay"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// HeadlessConfig feeds the headless driver.
type HeadlessConfig struct {
	Events []string `yaml:"events"`
}

// Default returns the embedded default configuration.
func Default() Config {
	cfg, err := Parse(assets.DefaultConfig)
	if err != nil {
		panic(fmt.Errorf("embedded config: %w", err))
	}
	return cfg
}

// Parse decodes a YAML document. Unknown fields are rejected.
func Parse(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode yaml: %w", err)
	}
	return cfg, nil
}

// Load returns the defaults merged with the file at path, if any.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}
	parsed, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	Merge(&cfg, parsed)
	return cfg, nil
}

// Merge overrides dst with the non zero fields of src.
func Merge(dst *Config, src Config) {
	if src.Driver != "" {
		dst.Driver = src.Driver
	}
	if src.Window.Title != "" {
		dst.Window.Title = src.Window.Title
	}
	if src.Window.Width != 0 {
		dst.Window.Width = src.Window.Width
	}
	if src.Window.Height != 0 {
		dst.Window.Height = src.Window.Height
	}
	if src.Window.Resizable != nil {
		dst.Window.Resizable = src.Window.Resizable
	}
	if src.Render.Period != 0 {
		dst.Render.Period = src.Render.Period
	}
	if src.Render.Tint != "" {
		dst.Render.Tint = src.Render.Tint
	}
	if src.Render.Overlay != nil {
		dst.Render.Overlay = src.Render.Overlay
	}
	if src.Log.Level != "" {
		dst.Log.Level = src.Log.Level
	}
	if src.Log.Format != "" {
		dst.Log.Format = src.Log.Format
	}
	if src.Headless.Events != nil {
		dst.Headless.Events = src.Headless.Events
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.Driver == "" {
		errs = append(errs, fmt.Errorf("driver must be set"))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Render.Period <= 0 {
		errs = append(errs, fmt.Errorf("render period must be positive, got %s", c.Render.Period))
	}
	if _, err := c.TintColor(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	if f := c.Log.Format; f != "" && f != "text" && f != "json" {
		errs = append(errs, fmt.Errorf("unknown log format %q", f))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Resizable reports the window flag, true when unset.
func (c Config) Resizable() bool {
	return c.Window.Resizable == nil || *c.Window.Resizable
}

// Overlay reports whether the text overlay is enabled.
func (c Config) Overlay() bool {
	return c.Render.Overlay != nil && *c.Render.Overlay
}

// TintColor resolves the tint name, white when empty.
func (c Config) TintColor() (color.Color, error) {
	name := strings.ToLower(strings.TrimSpace(c.Render.Tint))
	if name == "" {
		return color.White, nil
	}
	col, ok := colornames.Map[name]
	if !ok {
		return nil, fmt.Errorf("unknown tint color %q", c.Render.Tint)
	}
	return col, nil
}

// LogLevel resolves the log level name, info when empty.
func (c Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return lvl, nil
}

// NewLogger builds the process logger writing to w.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	lvl, err := c.LogLevel()
	if err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
