// Package config handles application configuration and setup
package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateKeyLayout returns the key layout selected by the options. A custom
// key string takes precedence over a named layout.
func CreateKeyLayout(opts options.Program) (*keymap.Layout, error) {
	if opts.Keys != "" {
		return keymap.Parse(opts.Keys)
	}
	return keymap.New(opts.Layout)
}

// Palette holds the colors of set and clear pixels.
type Palette struct {
	Foreground color.RGBA
	Background color.RGBA
}

// CreatePalette parses the foreground and background colors of the options.
func CreatePalette(opts options.Program) (Palette, error) {
	fg, err := ParseColor(opts.Foreground)
	if err != nil {
		return Palette{}, fmt.Errorf("parsing foreground color: %w", err)
	}
	bg, err := ParseColor(opts.Background)
	if err != nil {
		return Palette{}, fmt.Errorf("parsing background color: %w", err)
	}
	return Palette{Foreground: fg, Background: bg}, nil
}

// ParseColor parses a RRGGBB hex color, an optional leading '#' is allowed.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color '%s', expected RRGGBB", s)
	}
	value, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color '%s': %w", s, err)
	}
	return color.RGBA{
		R: uint8(value >> 16),
		G: uint8(value >> 8),
		B: uint8(value),
		A: 0xFF,
	}, nil
}
