// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
)

var frontends = []string{
	options.FrontendAuto,
	options.FrontendSDL,
	options.FrontendPixel,
	options.FrontendTerminal,
	options.FrontendHeadless,
}

// ParseFlags parses command line flags and returns the program options.
// The ROM can be passed with -i or as the last argument, if neither is
// given the frontend opens a file dialog.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	opts := options.New()
	readOptionFlags(flags, &opts)

	if err := flags.Parse(os.Args[1:]); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	args := flags.Args()

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}
	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if opts.Input == "" && len(args) > 0 {
		opts.Input = args[0]
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage text with all flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] [ROM file]\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	if len(args) > 1 {
		for _, arg := range args[1:] {
			if strings.HasPrefix(arg, "-") {
				return &UsageError{
					flags: flags,
					msg:   fmt.Sprintf("argument %s found after ROM file, please pass the ROM file as last argument", arg),
				}
			}
		}
		return &UsageError{flags: flags, msg: "only one ROM file can be run at a time, use -batch for multiple files"}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	opts.Layout = strings.ToLower(opts.Layout)

	valid := false
	for _, name := range frontends {
		if opts.Frontend == name {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(frontends, ", "))
	}

	if opts.Speed < 1 {
		return fmt.Errorf("speed must be at least 1 instruction per frame, got %d", opts.Speed)
	}
	if opts.FrameRate < 1 || opts.FrameRate > 1000 {
		return fmt.Errorf("frame rate must be between 1 and 1000, got %d", opts.FrameRate)
	}
	if opts.Scale < 1 {
		return fmt.Errorf("scale must be at least 1, got %d", opts.Scale)
	}
	if opts.Frames < 0 {
		return fmt.Errorf("frame limit can not be negative, got %d", opts.Frames)
	}

	// batch runs are smoke tests without a window
	if opts.Batch != "" {
		opts.Frontend = options.FrontendHeadless
	}
	if opts.Frontend == options.FrontendHeadless && opts.Frames == 0 {
		opts.Frames = options.DefaultHeadlessFrames
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Batch, "batch", "", "run a batch of ROMs headless for a frame limit, for example roms/*.ch8")
	flags.StringVar(&opts.Frontend, "f", opts.Frontend, "frontend to use (auto/sdl/pixel/terminal/headless)")
	flags.StringVar(&opts.Layout, "layout", opts.Layout, "keyboard layout of the hex keypad (cosmac/sequential)")
	flags.StringVar(&opts.Keys, "keys", "", "custom keyboard layout as 16 characters for the keypad keys 0-F")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, time based if 0")
	flags.IntVar(&opts.Frames, "frames", 0, "stop after the given number of frames, 0 runs until quit (300 for headless runs)")
	flags.IntVar(&opts.Speed, "speed", opts.Speed, "instructions executed per frame")
	flags.IntVar(&opts.FrameRate, "fps", opts.FrameRate, "frames per second, the timers count down once per frame")
	flags.IntVar(&opts.Scale, "scale", opts.Scale, "size of a CHIP-8 pixel in window pixels")
	flags.StringVar(&opts.Foreground, "fg", opts.Foreground, "color of set pixels as RRGGBB")
	flags.StringVar(&opts.Background, "bg", opts.Background, "color of clear pixels as RRGGBB")
	flags.BoolVar(&opts.Stats, "stats", false, "serve runtime statistics charts on localhost:18066")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, needs -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
