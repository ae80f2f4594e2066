// Package options contains the program options.
package options

// Frontend names.
const (
	FrontendAuto     = "auto"
	FrontendSDL      = "sdl"
	FrontendPixel    = "pixel"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Defaults of the emulation speed and presentation.
const (
	DefaultSpeed      = 10 // instructions per frame
	DefaultFrameRate  = 60
	DefaultScale      = 15
	DefaultForeground = "3a3b3c"
	DefaultBackground = "b0b3b8"

	// DefaultHeadlessFrames bounds headless runs that do not set a frame
	// limit, the headless frontend never asks to quit.
	DefaultHeadlessFrames = 300
)

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"input ROM file, a file dialog opens if none is given"`
	Batch string `flag:"batch" usage:"run all ROMs matching pattern headless (e.g. roms/*.ch8)"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend string `flag:"f" usage:"frontend: auto, sdl, pixel, terminal, headless" default:"auto"`
	Layout   string `flag:"layout" usage:"key layout: cosmac, sequential" default:"cosmac"`
	Keys     string `flag:"keys" usage:"custom layout, 16 physical keys for keypad keys 0-F"`
	Seed     uint64 `flag:"seed" usage:"random number seed (default: time based)"`
	Frames   int    `flag:"frames" usage:"stop after this many frames (0: unlimited)"`
	Stats    bool   `flag:"stats" usage:"serve runtime statistics over http"`
	Trace    bool   `flag:"trace" usage:"log every executed instruction, requires -debug"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
}

// DisplayFlags contains emulation speed and presentation options.
type DisplayFlags struct {
	Speed      int    `flag:"speed" usage:"instructions executed per frame" default:"10"`
	FrameRate  int    `flag:"fps" usage:"frames per second, timers tick once per frame" default:"60"`
	Scale      int    `flag:"scale" usage:"window pixels per CHIP-8 pixel" default:"15"`
	Foreground string `flag:"fg" usage:"color of set pixels as RRGGBB" default:"3a3b3c"`
	Background string `flag:"bg" usage:"color of clear pixels as RRGGBB" default:"b0b3b8"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	DisplayFlags
}

// New returns program options with all defaults set.
func New() Program {
	return Program{
		Flags: Flags{
			Frontend: FrontendAuto,
			Layout:   "cosmac",
		},
		DisplayFlags: DisplayFlags{
			Speed:      DefaultSpeed,
			FrameRate:  DefaultFrameRate,
			Scale:      DefaultScale,
			Foreground: DefaultForeground,
			Background: DefaultBackground,
		},
	}
}
