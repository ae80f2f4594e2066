// Package frontend defines the interface between the emulator loop and the
// window, terminal or test harness that shows the display and reads input.
package frontend

import (
	"image/color"

	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/vm"
)

// EventKind is the type of an input event.
type EventKind uint8

// Input event kinds.
const (
	KeyDown EventKind = iota
	KeyUp
	Reset
	Quit
)

var eventNames = [...]string{
	KeyDown: "key down",
	KeyUp:   "key up",
	Reset:   "reset",
	Quit:    "quit",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is an input event. Key holds the keypad index 0-F for key events.
type Event struct {
	Kind EventKind
	Key  int
}

// Frontend presents the display and collects input.
type Frontend interface {
	// Open creates the window or screen.
	Open(title string) error
	// Events returns all input events received since the last call.
	Events() []Event
	// Render shows the display.
	Render(display vm.Display) error
	// Close releases all resources.
	Close() error
}

// MainThreadRunner is implemented by frontends whose window system has to
// run on the main thread. The whole emulation is run through RunMain.
type MainThreadRunner interface {
	RunMain(fn func())
}

// Config contains the presentation options shared by all frontends.
type Config struct {
	Scale      int
	Foreground color.RGBA
	Background color.RGBA
	Layout     *keymap.Layout
}

// KeyEvent returns a key event for a physical key, ok is false if the key is
// not part of the layout.
func (c Config) KeyEvent(r rune, kind EventKind) (Event, bool) {
	if c.Layout == nil {
		return Event{}, false
	}
	key, ok := c.Layout.Key(r)
	if !ok {
		return Event{}, false
	}
	return Event{Kind: kind, Key: key}, true
}

// Size returns the window size in pixels for the configured scale.
func (c Config) Size() (width, height int) {
	scale := max(c.Scale, 1)
	return vm.DisplayWidth * scale, vm.DisplayHeight * scale
}
