package frontend

import (
	"errors"

	"github.com/retroenv/retrochip8/internal/vm"
)

var errNotOpen = errors.New("frontend is not open")

// Headless is a frontend without any output. It replays scripted input
// events and keeps the last rendered display, it is used by batch runs and
// tests.
type Headless struct {
	script  map[int][]Event
	frame   int
	open    bool
	renders int
	last    vm.Display
}

// NewHeadless returns a headless frontend. The script maps a frame number,
// counted by calls to Events, to the events returned for that frame.
func NewHeadless(script map[int][]Event) *Headless {
	return &Headless{script: script}
}

// Open marks the frontend as open.
func (h *Headless) Open(string) error {
	h.open = true
	return nil
}

// Events returns the scripted events of the current frame.
func (h *Headless) Events() []Event {
	events := h.script[h.frame]
	h.frame++
	return events
}

// Render stores the display.
func (h *Headless) Render(display vm.Display) error {
	if !h.open {
		return errNotOpen
	}
	h.last = display
	h.renders++
	return nil
}

// Close marks the frontend as closed.
func (h *Headless) Close() error {
	h.open = false
	return nil
}

// Renders returns the number of rendered frames.
func (h *Headless) Renders() int {
	return h.renders
}

// LastDisplay returns the most recently rendered display.
func (h *Headless) LastDisplay() vm.Display {
	return h.last
}
