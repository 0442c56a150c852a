package assets

import (
	_ "embed"
)

// DefaultConfig is the built-in configuration: a 640x480 resizable "Hero" window.
//
//go:embed hero.yaml
var DefaultConfig []byte
