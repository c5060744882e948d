// Package pipeline orchestrates the emulation workflow: loading the ROM,
// configuring the machine and running it with the selected frontend.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8emu/internal/app"
	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/config"
	"github.com/retroenv/chip8emu/internal/emulator"
	"github.com/retroenv/chip8emu/internal/loader"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/chip8emu/internal/sdlwindow"
	"github.com/retroenv/chip8emu/internal/terminal"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete emulation workflow.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader

	// newFrontend is replaced in tests.
	newFrontend func(opts options.Program) (emulator.Frontend, io.Closer, error)
}

// New creates a new emulation pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:      logger,
		loader:      loader.New(),
		newFrontend: createFrontend,
	}
}

// Execute loads the ROM and runs it until it ends, faults, the user quits
// or the context is canceled.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) (err error) {
	rom, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}
	app.PrintInfo(p.logger, opts, len(rom))

	machine := chip8.New(config.MachineConfig(opts))
	if err := machine.LoadROM(rom); err != nil {
		return fmt.Errorf("loading ROM into memory: %w", err)
	}

	tracer, closeTrace, err := config.CreateTracer(p.logger, opts)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeTrace(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	frontend, closer, err := p.newFrontend(opts)
	if err != nil {
		return fmt.Errorf("creating %s frontend: %w", opts.Frontend, err)
	}
	defer func() { _ = closer.Close() }()

	emu := emulator.New(p.logger, machine, frontend, emulator.Options{
		ClockHz:   opts.ClockHz,
		MaxFrames: opts.MaxFrames,
		Tracer:    tracer,
	})

	if err := emu.Run(ctx); err != nil {
		return fmt.Errorf("running ROM: %w", err)
	}
	return nil
}

// createFrontend opens the frontend selected by the options.
func createFrontend(opts options.Program) (emulator.Frontend, io.Closer, error) {
	switch opts.Frontend {
	case options.FrontendHeadless:
		return &emulator.Headless{}, nopCloser{}, nil

	case options.FrontendSDL:
		window, err := sdlwindow.Open(app.Title(opts.Input), opts.Scale)
		if err != nil {
			return nil, nil, err
		}
		return window, window, nil

	case options.FrontendTerminal, "":
		term, err := terminal.Open(os.Stdin, os.Stdout)
		if err != nil {
			return nil, nil, err
		}
		return term, term, nil

	default:
		return nil, nil, fmt.Errorf("unsupported frontend '%s'", opts.Frontend)
	}
}

// nopCloser is the closer of frontends without resources.
type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}
