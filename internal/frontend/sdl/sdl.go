// Package sdl implements a windowed frontend using SDL2.
package sdl

import (
	"fmt"
	"runtime"

	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	runtime.LockOSThread()
}

// Frontend renders the display into an SDL window.
type Frontend struct {
	cfg      frontend.Config
	window   *sdl.Window
	renderer *sdl.Renderer
	events   []frontend.Event
}

// New returns a new SDL frontend.
func New(cfg frontend.Config) *Frontend {
	return &Frontend{cfg: cfg}
}

// Open initializes SDL and creates the window.
func (f *Frontend) Open(title string) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("initializing SDL: %w", err)
	}

	width, height := f.cfg.Size()
	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(width), int32(height), sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("creating window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		_ = window.Destroy()
		sdl.Quit()
		return fmt.Errorf("creating renderer: %w", err)
	}

	f.window = window
	f.renderer = renderer
	return nil
}

// Events polls all pending SDL events.
func (f *Frontend) Events() []frontend.Event {
	f.events = f.events[:0]
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			f.events = append(f.events, frontend.Event{Kind: frontend.Quit})
		case *sdl.KeyboardEvent:
			f.handleKey(ev)
		}
	}
	return f.events
}

func (f *Frontend) handleKey(ev *sdl.KeyboardEvent) {
	if ev.Repeat != 0 {
		return
	}

	pressed := ev.Type == sdl.KEYDOWN
	switch ev.Keysym.Sym {
	case sdl.K_ESCAPE:
		if pressed {
			f.events = append(f.events, frontend.Event{Kind: frontend.Quit})
		}
		return
	case sdl.K_F5:
		if pressed {
			f.events = append(f.events, frontend.Event{Kind: frontend.Reset})
		}
		return
	}

	kind := frontend.KeyUp
	if pressed {
		kind = frontend.KeyDown
	}
	if event, ok := f.cfg.KeyEvent(rune(ev.Keysym.Sym), kind); ok {
		f.events = append(f.events, event)
	}
}

// Render draws every set pixel as a filled rectangle.
func (f *Frontend) Render(display vm.Display) error {
	bg, fg := f.cfg.Background, f.cfg.Foreground
	if err := f.renderer.SetDrawColor(bg.R, bg.G, bg.B, bg.A); err != nil {
		return fmt.Errorf("setting draw color: %w", err)
	}
	if err := f.renderer.Clear(); err != nil {
		return fmt.Errorf("clearing renderer: %w", err)
	}
	if err := f.renderer.SetDrawColor(fg.R, fg.G, fg.B, fg.A); err != nil {
		return fmt.Errorf("setting draw color: %w", err)
	}

	scale := int32(max(f.cfg.Scale, 1))
	for y := range vm.DisplayHeight {
		for x := range vm.DisplayWidth {
			if !display[y][x] {
				continue
			}
			rect := sdl.Rect{X: int32(x) * scale, Y: int32(y) * scale, W: scale, H: scale}
			if err := f.renderer.FillRect(&rect); err != nil {
				return fmt.Errorf("drawing pixel: %w", err)
			}
		}
	}

	f.renderer.Present()
	return nil
}

// Close destroys the window and shuts down SDL.
func (f *Frontend) Close() error {
	var err error
	if f.renderer != nil {
		err = f.renderer.Destroy()
	}
	if f.window != nil {
		if werr := f.window.Destroy(); err == nil {
			err = werr
		}
	}
	sdl.Quit()
	return err
}
