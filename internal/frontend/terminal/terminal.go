// Package terminal implements a frontend that draws the display into the
// terminal using termbox.
package terminal

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/vm"
)

// ReleaseFrames is the number of frames a key stays pressed after a key
// press, terminals do not report key releases.
const ReleaseFrames = 6

// Frontend draws every pixel as a terminal cell.
type Frontend struct {
	cfg     frontend.Config
	input   chan termbox.Event
	done    chan struct{}
	wg      sync.WaitGroup
	release releaseTracker
	events  []frontend.Event
	fg, bg  termbox.Attribute
}

// New returns a new terminal frontend.
func New(cfg frontend.Config) *Frontend {
	return &Frontend{cfg: cfg}
}

// Open initializes the terminal and starts reading input.
func (f *Frontend) Open(string) error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)
	mode := termbox.SetOutputMode(termbox.OutputRGB)
	f.fg, f.bg = palette(mode, f.cfg.Foreground, f.cfg.Background)

	width, height := termbox.Size()
	if width < vm.DisplayWidth || height < vm.DisplayHeight {
		termbox.Close()
		return fmt.Errorf("terminal size %dx%d is smaller than the display %dx%d",
			width, height, vm.DisplayWidth, vm.DisplayHeight)
	}

	f.input = make(chan termbox.Event, 16)
	f.done = make(chan struct{})
	f.wg.Add(1)
	go f.poll()
	return nil
}

func (f *Frontend) poll() {
	defer f.wg.Done()
	for {
		ev := termbox.PollEvent()
		if ev.Type == termbox.EventInterrupt {
			return
		}
		select {
		case f.input <- ev:
		case <-f.done:
			return
		}
	}
}

// Events returns the events of all key presses since the last call and
// releases keys that were pressed ReleaseFrames calls ago.
func (f *Frontend) Events() []frontend.Event {
	f.events = f.events[:0]
	for _, key := range f.release.tick() {
		f.events = append(f.events, frontend.Event{Kind: frontend.KeyUp, Key: key})
	}

	for {
		select {
		case ev := <-f.input:
			f.handle(ev)
		default:
			return f.events
		}
	}
}

func (f *Frontend) handle(ev termbox.Event) {
	switch ev.Type {
	case termbox.EventKey:
	case termbox.EventError:
		f.events = append(f.events, frontend.Event{Kind: frontend.Quit})
		return
	default:
		return
	}

	switch ev.Key {
	case termbox.KeyEsc, termbox.KeyCtrlC:
		f.events = append(f.events, frontend.Event{Kind: frontend.Quit})
		return
	case termbox.KeyF5, termbox.KeyBackspace, termbox.KeyBackspace2:
		f.events = append(f.events, frontend.Event{Kind: frontend.Reset})
		return
	}

	event, ok := f.cfg.KeyEvent(ev.Ch, frontend.KeyDown)
	if !ok {
		return
	}
	if f.release.press(event.Key, ReleaseFrames) {
		f.events = append(f.events, event)
	}
}

// palette maps the configured colors to termbox attributes. Terminals
// without true color support get black and white, keeping which of the two
// colors is the brighter one.
func palette(mode termbox.OutputMode, fg, bg color.RGBA) (termbox.Attribute, termbox.Attribute) {
	if mode == termbox.OutputRGB {
		return termbox.RGBToAttribute(fg.R, fg.G, fg.B), termbox.RGBToAttribute(bg.R, bg.G, bg.B)
	}
	if luminance(fg) < luminance(bg) {
		return termbox.ColorBlack, termbox.ColorWhite
	}
	return termbox.ColorWhite, termbox.ColorBlack
}

func luminance(c color.RGBA) int {
	return 299*int(c.R) + 587*int(c.G) + 114*int(c.B)
}

// Render draws set pixels in the foreground color on the background color.
func (f *Frontend) Render(display vm.Display) error {
	if err := termbox.Clear(f.bg, f.bg); err != nil {
		return fmt.Errorf("clearing terminal: %w", err)
	}
	for y := range vm.DisplayHeight {
		for x := range vm.DisplayWidth {
			if display[y][x] {
				termbox.SetCell(x, y, ' ', f.fg, f.fg)
			}
		}
	}
	if err := termbox.Flush(); err != nil {
		return fmt.Errorf("flushing terminal: %w", err)
	}
	return nil
}

// Close stops reading input and restores the terminal.
func (f *Frontend) Close() error {
	if f.done == nil {
		return nil
	}
	close(f.done)
	termbox.Interrupt()
	f.wg.Wait()
	termbox.Close()
	f.done = nil
	return nil
}
