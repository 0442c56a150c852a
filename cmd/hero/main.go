// Package main is the entry point of the program.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"go.creack.net/hero/app"
	"go.creack.net/hero/config"
	"go.creack.net/hero/event"
	"go.creack.net/hero/platform"
	"go.creack.net/hero/platform/headless"

	_ "go.creack.net/hero/platform/ebitenwin"
	_ "go.creack.net/hero/platform/sdlwin"
	_ "go.creack.net/hero/platform/term"
)

var version = "dev"

// Exit codes.
const (
	exitOK         = 0
	exitInitFailed = 1
	exitBadConfig  = 2
)

// overlayer is implemented by drivers able to draw a text overlay.
type overlayer interface {
	SetOverlay(enabled bool)
}

// scripted is implemented by drivers fed from a config event script.
type scripted interface {
	Push(events ...event.Event)
}

func setup(cfg config.Config) (platform.Driver, error) {
	driver, err := platform.New(cfg.Driver)
	if err != nil {
		return nil, err
	}
	if o, ok := driver.(overlayer); ok {
		o.SetOverlay(cfg.Overlay())
	}
	if s, ok := driver.(scripted); ok {
		events, err := headless.ParseScript(cfg.Headless.Events)
		if err != nil {
			return nil, fmt.Errorf("headless script: %w", err)
		}
		s.Push(events...)
	}
	return driver, nil
}

func run(cfg config.Config, logger *slog.Logger) int {
	driver, err := setup(cfg)
	if err != nil {
		logger.Error("Invalid driver setup.", "error", err)
		return exitBadConfig
	}
	tint, _ := cfg.TintColor() // Already validated.

	shell := app.NewShell(driver, app.Options{
		Window: platform.WindowConfig{
			Title:     cfg.Window.Title,
			Width:     cfg.Window.Width,
			Height:    cfg.Window.Height,
			Resizable: cfg.Resizable(),
		},
		Period: cfg.Render.Period,
		Tint:   tint,
	}, logger)

	if err := shell.Initialize(); err != nil {
		return exitInitFailed
	}
	defer shell.Shutdown()

	if err := shell.Run(); err != nil {
		logger.Error("Event loop failed.", "error", err)
		return exitInitFailed
	}
	return exitOK
}

func main() {
	log.SetFlags(0)
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to a YAML config file (optional)")
	driverName := flag.String("driver", "", fmt.Sprintf("windowing driver override: %v", platform.Drivers()))
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()
	if *showVersion {
		fmt.Printf("hero version=%s\n", version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Failed to load config: %s.", err)
		os.Exit(exitBadConfig)
	}
	if *driverName != "" {
		cfg.Driver = *driverName
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("Invalid config: %s.", err)
		os.Exit(exitBadConfig)
	}

	os.Exit(run(cfg, cfg.NewLogger(os.Stderr)))
}
