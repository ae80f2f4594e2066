package config

import (
	"image/color"
	"testing"

	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input    string
		expected color.RGBA
		wantErr  bool
	}{
		{"3a3b3c", color.RGBA{R: 0x3A, G: 0x3B, B: 0x3C, A: 0xFF}, false},
		{"#FF0080", color.RGBA{R: 0xFF, G: 0x00, B: 0x80, A: 0xFF}, false},
		{"fff", color.RGBA{}, true},
		{"zzzzzz", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseColor(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func TestCreatePalette(t *testing.T) {
	opts := options.New()
	palette, err := CreatePalette(opts)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x3A), palette.Foreground.R)
	assert.Equal(t, uint8(0xB0), palette.Background.R)

	opts.Background = "nope"
	_, err = CreatePalette(opts)
	assert.ErrorContains(t, err, "background")
}

func TestCreateKeyLayout(t *testing.T) {
	opts := options.New()
	layout, err := CreateKeyLayout(opts)
	assert.NoError(t, err)
	assert.Equal(t, keymap.Cosmac, layout.Name())

	opts.Keys = "0123456789abcdef"
	layout, err = CreateKeyLayout(opts)
	assert.NoError(t, err)
	assert.Equal(t, "custom", layout.Name())
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}
