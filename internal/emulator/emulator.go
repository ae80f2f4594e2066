// Package emulator implements the host loop that paces the interpreter,
// forwards input events and presents the display.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// ErrQuit is returned by Frame when the frontend requested to quit.
var ErrQuit = errors.New("quit requested")

// Config contains the pacing options of the emulator.
type Config struct {
	Speed     int  // instructions per frame
	FrameRate int  // frames per second
	MaxFrames int  // 0 runs until quit
	Throttle  bool // pace frames in real time
	Trace     bool // log every executed instruction
}

// Emulator runs a program on the interpreter and a frontend.
type Emulator struct {
	logger   *log.Logger
	machine  *vm.VM
	frontend frontend.Frontend
	program  []byte
	cfg      Config
	frames   int
}

// New returns an emulator for a VM that already has the program loaded. The
// program is kept to reload it on reset.
func New(logger *log.Logger, machine *vm.VM, fe frontend.Frontend, program []byte, cfg Config) *Emulator {
	cfg.Speed = max(cfg.Speed, 1)
	cfg.FrameRate = max(cfg.FrameRate, 1)
	return &Emulator{
		logger:   logger,
		machine:  machine,
		frontend: fe,
		program:  program,
		cfg:      cfg,
	}
}

// Run executes frames until the frontend quits, the frame limit is reached,
// the context is canceled or the interpreter halts with a fatal error.
// Quitting and reaching the frame limit return nil.
func (e *Emulator) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if e.cfg.Throttle {
		ticker := time.NewTicker(time.Second / time.Duration(e.cfg.FrameRate))
		defer ticker.Stop()
		tick = ticker.C
	}

	for e.cfg.MaxFrames == 0 || e.frames < e.cfg.MaxFrames {
		if tick != nil {
			select {
			case <-ctx.Done():
				return fmt.Errorf("running emulation: %w", ctx.Err())
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return fmt.Errorf("running emulation: %w", err)
		}

		if err := e.Frame(); err != nil {
			if errors.Is(err, ErrQuit) {
				e.logger.Debug("Quit requested", log.Int("frames", e.frames))
				return nil
			}
			return err
		}
	}

	e.logger.Debug("Frame limit reached", log.Int("frames", e.frames))
	return nil
}

// Frame runs a single frame: input events are applied, Speed instructions
// are executed, the timers count down once and the display is rendered if it
// changed.
func (e *Emulator) Frame() error {
	for _, event := range e.frontend.Events() {
		if err := e.handleEvent(event); err != nil {
			return err
		}
	}

	var stepErr error
	for range e.cfg.Speed {
		if e.cfg.Trace {
			e.trace()
		}
		if stepErr = e.machine.Step(); stepErr != nil {
			break
		}
	}
	if stepErr == nil {
		e.machine.TickTimers()
	}
	e.frames++

	// show the screen of a halted program before stopping
	if err := e.render(); err != nil {
		return err
	}
	if stepErr != nil {
		return fmt.Errorf("emulation halted at frame %d: %w", e.frames, stepErr)
	}
	return nil
}

// Frames returns the number of executed frames.
func (e *Emulator) Frames() int {
	return e.frames
}

func (e *Emulator) handleEvent(event frontend.Event) error {
	switch event.Kind {
	case frontend.KeyDown:
		e.machine.PressKey(event.Key)
	case frontend.KeyUp:
		e.machine.UnpressKey(event.Key)
	case frontend.Reset:
		return e.Reset()
	case frontend.Quit:
		return ErrQuit
	}
	return nil
}

// Reset resets the interpreter and reloads the program.
func (e *Emulator) Reset() error {
	e.logger.Info("Resetting")
	e.machine.Reset()
	if err := e.machine.Load(e.program); err != nil {
		return fmt.Errorf("reloading program: %w", err)
	}
	return nil
}

func (e *Emulator) render() error {
	if !e.machine.NeedsRedraw() {
		return nil
	}
	if err := e.frontend.Render(e.machine.Display()); err != nil {
		return fmt.Errorf("rendering frame: %w", err)
	}
	e.machine.MarkRedrawn()
	return nil
}

func (e *Emulator) trace() {
	pc := e.machine.PC()
	ins, err := e.machine.Peek()
	if err != nil {
		return
	}
	e.logger.Debug("Executing",
		log.Hex("pc", pc),
		log.String("instruction", ins.String()),
		log.Stringer("pattern", ins.Op))
}
