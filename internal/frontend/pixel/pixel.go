// Package pixel implements a windowed frontend using the OpenGL backend of
// the pixel game library.
package pixel

import (
	"fmt"
	"image"

	"github.com/gopxl/pixel/v2"
	"github.com/gopxl/pixel/v2/backends/opengl"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/vm"
)

var buttons = map[rune]pixel.Button{
	'0': pixel.Key0, '1': pixel.Key1, '2': pixel.Key2, '3': pixel.Key3, '4': pixel.Key4,
	'5': pixel.Key5, '6': pixel.Key6, '7': pixel.Key7, '8': pixel.Key8, '9': pixel.Key9,
	'a': pixel.KeyA, 'b': pixel.KeyB, 'c': pixel.KeyC, 'd': pixel.KeyD, 'e': pixel.KeyE,
	'f': pixel.KeyF, 'g': pixel.KeyG, 'h': pixel.KeyH, 'i': pixel.KeyI, 'j': pixel.KeyJ,
	'k': pixel.KeyK, 'l': pixel.KeyL, 'm': pixel.KeyM, 'n': pixel.KeyN, 'o': pixel.KeyO,
	'p': pixel.KeyP, 'q': pixel.KeyQ, 'r': pixel.KeyR, 's': pixel.KeyS, 't': pixel.KeyT,
	'u': pixel.KeyU, 'v': pixel.KeyV, 'w': pixel.KeyW, 'x': pixel.KeyX, 'y': pixel.KeyY,
	'z': pixel.KeyZ,
}

// Frontend renders the display into an OpenGL window.
type Frontend struct {
	cfg    frontend.Config
	window *opengl.Window
	keys   [vm.KeyCount]pixel.Button
	mapped [vm.KeyCount]bool
	frame  *image.RGBA
	events []frontend.Event
}

// New returns a new pixel frontend. Layout keys without a matching button
// can not be pressed.
func New(cfg frontend.Config) *Frontend {
	f := &Frontend{
		cfg:   cfg,
		frame: image.NewRGBA(image.Rect(0, 0, vm.DisplayWidth, vm.DisplayHeight)),
	}
	if cfg.Layout != nil {
		for index, r := range cfg.Layout.Runes() {
			f.keys[index], f.mapped[index] = buttons[r]
		}
	}
	return f
}

// RunMain runs fn on the main thread as required by OpenGL.
func (f *Frontend) RunMain(fn func()) {
	opengl.Run(fn)
}

// Open creates the window.
func (f *Frontend) Open(title string) error {
	width, height := f.cfg.Size()
	window, err := opengl.NewWindow(opengl.WindowConfig{
		Title:  title,
		Bounds: pixel.R(0, 0, float64(width), float64(height)),
		VSync:  true,
	})
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	f.window = window
	return nil
}

// Events returns the key changes of the last window update.
func (f *Frontend) Events() []frontend.Event {
	f.events = f.events[:0]
	f.window.UpdateInput()

	if f.window.Closed() || f.window.JustPressed(pixel.KeyEscape) {
		return append(f.events, frontend.Event{Kind: frontend.Quit})
	}
	if f.window.JustPressed(pixel.KeyF5) {
		f.events = append(f.events, frontend.Event{Kind: frontend.Reset})
	}

	for index, button := range f.keys {
		if !f.mapped[index] {
			continue
		}
		switch {
		case f.window.JustPressed(button):
			f.events = append(f.events, frontend.Event{Kind: frontend.KeyDown, Key: index})
		case f.window.JustReleased(button):
			f.events = append(f.events, frontend.Event{Kind: frontend.KeyUp, Key: index})
		}
	}
	return f.events
}

// Render draws the display as a scaled sprite.
func (f *Frontend) Render(display vm.Display) error {
	for y := range vm.DisplayHeight {
		for x := range vm.DisplayWidth {
			c := f.cfg.Background
			if display[y][x] {
				c = f.cfg.Foreground
			}
			f.frame.SetRGBA(x, y, c)
		}
	}

	picture := pixel.PictureDataFromImage(f.frame)
	sprite := pixel.NewSprite(picture, picture.Bounds())

	f.window.Clear(f.cfg.Background)
	scale := float64(max(f.cfg.Scale, 1))
	sprite.Draw(f.window, pixel.IM.Scaled(pixel.ZV, scale).Moved(f.window.Bounds().Center()))
	f.window.SwapBuffers()
	return nil
}

// Close destroys the window.
func (f *Frontend) Close() error {
	if f.window != nil {
		f.window.Destroy()
	}
	return nil
}
