// Package emulator implements the host loop that drives a CHIP-8 machine:
// keypad input, instruction execution, rendering and the 60 Hz timers.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/trace"
	"github.com/retroenv/retrogolib/log"
)

// FrameRate is the number of frames per second, the timers are decremented once per frame.
const FrameRate = 60

// historySize is the number of instructions reported when the machine faults.
const historySize = 16

// Framebuffer is the display content handed to a frontend.
type Framebuffer = [chip8.DisplayHeight][chip8.DisplayWidth]uint8

// Frontend presents the display and provides the keypad state.
type Frontend interface {
	// PollInput updates the pressed state of all keys and reports whether
	// the user requested to quit.
	PollInput(keys *[chip8.KeyCount]bool) (quit bool, err error)
	// Render draws the framebuffer, a value of 1 is a lit pixel.
	Render(fb *Framebuffer) error
}

// Options controls the host loop.
type Options struct {
	ClockHz   int          // instructions per second
	MaxFrames int          // stop after this many frames, 0 runs until the program ends
	Tracer    chip8.Tracer // optional additional instruction tracer
}

// Emulator runs a machine with a frontend.
type Emulator struct {
	logger   *log.Logger
	machine  *chip8.Machine
	frontend Frontend
	recorder *trace.Recorder
	opts     Options

	stepsPerFrame int
	frames        int
	keys          [chip8.KeyCount]bool
}

// New creates a new emulator. The machine must already contain the program.
func New(logger *log.Logger, machine *chip8.Machine, frontend Frontend, opts Options) *Emulator {
	recorder := trace.NewRecorder(historySize)
	machine.SetTracer(trace.Multi(opts.Tracer, recorder))

	return &Emulator{
		logger:        logger,
		machine:       machine,
		frontend:      frontend,
		recorder:      recorder,
		opts:          opts,
		stepsPerFrame: max(1, opts.ClockHz/FrameRate),
	}
}

// Run executes frames at FrameRate until the program ends, the user quits,
// the frame limit is reached or the context is canceled. A machine fault is
// returned as error.
func (e *Emulator) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / FrameRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.logger.Debug("Emulation canceled", log.Int("frames", e.frames))
			return nil

		case <-ticker.C:
			done, err := e.RunFrame()
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// RunFrame executes one frame: poll input, execute the instructions of one
// frame, render a changed display and decrement the timers.
// It returns true when emulation should stop.
func (e *Emulator) RunFrame() (bool, error) {
	quit, err := e.frontend.PollInput(&e.keys)
	if err != nil {
		return true, fmt.Errorf("polling input: %w", err)
	}
	if quit {
		e.logger.Info("Quit requested", log.Int("frames", e.frames))
		return true, nil
	}
	e.machine.SetKeys(e.keys)

	terminated, err := e.executeFrame()
	if err != nil {
		return true, err
	}

	if err := e.render(); err != nil {
		return true, err
	}
	if terminated {
		e.logger.Info("Program ended",
			log.Hex("pc", e.machine.ProgramCounter()),
			log.Int("frames", e.frames))
		return true, nil
	}

	e.machine.TickTimers()
	e.frames++

	if e.opts.MaxFrames > 0 && e.frames >= e.opts.MaxFrames {
		e.logger.Debug("Frame limit reached", log.Int("frames", e.frames))
		return true, nil
	}
	return false, nil
}

// Frames returns the number of completed frames.
func (e *Emulator) Frames() int {
	return e.frames
}

// executeFrame runs the instructions of one frame. A waiting key instruction
// ends the frame early, the next frame retries it with fresh input.
func (e *Emulator) executeFrame() (bool, error) {
	for range e.stepsPerFrame {
		status, err := e.machine.Step()
		if err != nil {
			e.reportFault(err)
			return false, fmt.Errorf("executing instruction: %w", err)
		}

		switch status {
		case chip8.Terminated:
			return true, nil
		case chip8.Waiting:
			return false, nil
		}
	}
	return false, nil
}

func (e *Emulator) render() error {
	if !e.machine.DisplayChanged() {
		return nil
	}

	fb := e.machine.Framebuffer()
	if err := e.frontend.Render(&fb); err != nil {
		return fmt.Errorf("rendering display: %w", err)
	}
	e.machine.ClearDisplayChanged()
	return nil
}

// reportFault logs the fault with the instructions that were executed last.
func (e *Emulator) reportFault(err error) {
	var fault *chip8.Fault
	if !errors.As(err, &fault) {
		return
	}

	e.logger.Error("Machine fault",
		log.String("kind", fault.Kind.String()),
		log.Hex("pc", fault.PC),
		log.Hex("opcode", fault.Opcode))

	for _, event := range e.recorder.Events() {
		e.logger.Info("Executed", log.String("instruction", trace.FormatEvent(event)))
	}
}
