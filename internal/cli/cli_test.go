package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func parseArgs(t *testing.T, args ...string) (options.Program, error) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = append([]string{"prog"}, args...)
	return ParseFlags()
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, opts options.Program)
	}{
		{
			name: "defaults",
			args: []string{"pong.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, "pong.ch8", opts.Input)
				assert.Equal(t, options.FrontendAuto, opts.Frontend)
				assert.Equal(t, options.DefaultSpeed, opts.Speed)
				assert.Equal(t, options.DefaultFrameRate, opts.FrameRate)
				assert.Equal(t, "cosmac", opts.Layout)
			},
		},
		{
			name: "input flag wins over positional",
			args: []string{"-i", "a.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, "a.ch8", opts.Input)
			},
		},
		{
			name: "no ROM leaves input empty for the file dialog",
			args: []string{"-f", "SDL"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, "", opts.Input)
				assert.Equal(t, options.FrontendSDL, opts.Frontend)
			},
		},
		{
			name: "speed and timing",
			args: []string{"-speed", "20", "-fps", "30", "-frames", "100", "-seed", "7", "rom.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, 20, opts.Speed)
				assert.Equal(t, 30, opts.FrameRate)
				assert.Equal(t, 100, opts.Frames)
				assert.Equal(t, uint64(7), opts.Seed)
			},
		},
		{
			name: "batch forces headless",
			args: []string{"-batch", "roms/*.ch8", "-f", "sdl"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, options.FrontendHeadless, opts.Frontend)
				assert.Equal(t, "roms/*.ch8", opts.Batch)
				assert.Equal(t, options.DefaultHeadlessFrames, opts.Frames)
			},
		},
		{
			name: "batch keeps explicit frame limit",
			args: []string{"-batch", "roms/*.ch8", "-frames", "50"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, 50, opts.Frames)
			},
		},
		{
			name: "headless run is bounded",
			args: []string{"-f", "headless", "rom.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, options.DefaultHeadlessFrames, opts.Frames)
			},
		},
		{
			name: "windowed run is unbounded",
			args: []string{"-f", "sdl", "rom.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, 0, opts.Frames)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseArgs(t, tt.args...)
			assert.NoError(t, err)
			tt.check(t, opts)
		})
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		usageError bool
		contains   string
	}{
		{"unknown frontend", []string{"-f", "vga", "rom.ch8"}, false, "unsupported frontend"},
		{"zero speed", []string{"-speed", "0", "rom.ch8"}, false, "speed"},
		{"zero fps", []string{"-fps", "0", "rom.ch8"}, false, "frame rate"},
		{"negative frames", []string{"-frames", "-1", "rom.ch8"}, false, "frame limit"},
		{"flag after file", []string{"rom.ch8", "-debug"}, true, "after ROM file"},
		{"two files", []string{"a.ch8", "b.ch8"}, true, "one ROM file"},
		{"unknown flag", []string{"-nope", "rom.ch8"}, true, "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(t, tt.args...)
			assert.ErrorContains(t, err, tt.contains)

			var usageErr *UsageError
			assert.Equal(t, tt.usageError, errors.As(err, &usageErr))
		})
	}
}
