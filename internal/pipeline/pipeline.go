// Package pipeline orchestrates the emulation workflow stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/frontend/pixel"
	"github.com/retroenv/retrochip8/internal/frontend/sdl"
	"github.com/retroenv/retrochip8/internal/frontend/terminal"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
)

// FrontendFactory creates the frontend with the given name.
type FrontendFactory func(name string, cfg frontend.Config) (frontend.Frontend, error)

// Result describes a finished emulation run.
type Result struct {
	Frames  int
	Display vm.Display
}

// Pipeline orchestrates the complete emulation workflow.
type Pipeline struct {
	logger      *log.Logger
	detector    *detector.Detector
	loader      *loader.Loader
	newFrontend FrontendFactory
	showError   func(msg string)
}

// Option configures a pipeline.
type Option func(*Pipeline)

// WithLoader sets the ROM loader.
func WithLoader(l *loader.Loader) Option {
	return func(p *Pipeline) {
		p.loader = l
	}
}

// WithFrontendFactory sets the function that creates frontends.
func WithFrontendFactory(factory FrontendFactory) Option {
	return func(p *Pipeline) {
		p.newFrontend = factory
	}
}

// New creates a new emulation pipeline.
func New(logger *log.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		logger:      logger,
		detector:    detector.New(logger),
		loader:      loader.New(),
		newFrontend: createFrontend,
		showError:   showErrorDialog,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Execute runs the complete emulation pipeline: the frontend is detected,
// the ROM loaded into a new interpreter and run until the user quits, the
// frame limit is reached or the program halts.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) (*Result, error) {
	frontendName := p.detector.Detect(opts)
	windowed := detector.IsWindowed(frontendName)

	result, err := p.execute(ctx, opts, frontendName)
	if err != nil && windowed && !errors.Is(err, context.Canceled) && !errors.Is(err, loader.ErrCancelled) {
		p.showError(err.Error())
	}
	return result, err
}

func (p *Pipeline) execute(ctx context.Context, opts options.Program, frontendName string) (*Result, error) {
	if opts.Input == "" {
		if !detector.IsWindowed(frontendName) {
			return nil, errors.New("no ROM file given")
		}
		fileName, err := p.loader.Pick()
		if err != nil {
			return nil, fmt.Errorf("picking ROM file: %w", err)
		}
		opts.Input = fileName
	}
	p.detector.CheckFile(opts.Input)

	rom, err := p.loader.Load(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading ROM: %w", err)
	}

	machine, err := p.createVM(opts, rom)
	if err != nil {
		return nil, err
	}

	cfg, err := createFrontendConfig(opts)
	if err != nil {
		return nil, err
	}
	fe, err := p.newFrontend(frontendName, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating frontend: %w", err)
	}

	app.PrintInfo(p.logger, opts, rom, frontendName)

	emu := emulator.New(p.logger, machine, fe, rom, emulator.Config{
		Speed:     opts.Speed,
		FrameRate: opts.FrameRate,
		MaxFrames: opts.Frames,
		Throttle:  frontendName != options.FrontendHeadless,
		Trace:     opts.Trace && opts.Debug,
	})

	title := fmt.Sprintf("%s - %s", app.Name, filepath.Base(opts.Input))
	run := func() {
		err = runFrontend(ctx, fe, emu, title)
	}
	if runner, ok := fe.(frontend.MainThreadRunner); ok {
		runner.RunMain(run)
	} else {
		run()
	}

	result := &Result{
		Frames:  emu.Frames(),
		Display: machine.Display(),
	}
	return result, err
}

func (p *Pipeline) createVM(opts options.Program, rom []byte) (*vm.VM, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	p.logger.Debug("Creating interpreter", log.String("seed", fmt.Sprintf("%d", seed)))

	machine := vm.New(vm.WithSeed(seed))
	if err := machine.Load(rom); err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}
	return machine, nil
}

func runFrontend(ctx context.Context, fe frontend.Frontend, emu *emulator.Emulator, title string) (err error) {
	if err := fe.Open(title); err != nil {
		return fmt.Errorf("opening frontend: %w", err)
	}
	defer func() {
		if closeErr := fe.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing frontend: %w", closeErr)
		}
	}()

	return emu.Run(ctx)
}

func createFrontendConfig(opts options.Program) (frontend.Config, error) {
	layout, err := config.CreateKeyLayout(opts)
	if err != nil {
		return frontend.Config{}, fmt.Errorf("creating key layout: %w", err)
	}
	palette, err := config.CreatePalette(opts)
	if err != nil {
		return frontend.Config{}, fmt.Errorf("creating palette: %w", err)
	}
	return frontend.Config{
		Scale:      opts.Scale,
		Foreground: palette.Foreground,
		Background: palette.Background,
		Layout:     layout,
	}, nil
}

func createFrontend(name string, cfg frontend.Config) (frontend.Frontend, error) {
	switch name {
	case options.FrontendSDL:
		return sdl.New(cfg), nil
	case options.FrontendPixel:
		return pixel.New(cfg), nil
	case options.FrontendTerminal:
		return terminal.New(cfg), nil
	case options.FrontendHeadless:
		return frontend.NewHeadless(nil), nil
	default:
		return nil, fmt.Errorf("unsupported frontend '%s'", name)
	}
}

func showErrorDialog(msg string) {
	dialog.Message("%s", msg).Title(app.Name).Error()
}
