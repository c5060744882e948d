package emulator

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// scriptedFrontend presses the given keys and requests quit after quitAfter polls.
type scriptedFrontend struct {
	Headless

	keys      [chip8.KeyCount]bool
	polls     int
	quitAfter int
	pollErr   error
}

func (s *scriptedFrontend) PollInput(keys *[chip8.KeyCount]bool) (bool, error) {
	s.polls++
	if s.pollErr != nil {
		return false, s.pollErr
	}
	*keys = s.keys
	return s.quitAfter > 0 && s.polls > s.quitAfter, nil
}

func newEmulator(t *testing.T, frontend Frontend, opts Options, program ...byte) (*Emulator, *chip8.Machine) {
	t.Helper()
	return newEmulatorWithLogger(t, log.NewTestLogger(t), frontend, opts, program...)
}

func newEmulatorWithLogger(t *testing.T, logger *log.Logger, frontend Frontend, opts Options,
	program ...byte) (*Emulator, *chip8.Machine) {

	t.Helper()
	m := chip8.New(chip8.Config{Seed: 1})
	assert.NoError(t, m.LoadROM(program))
	return New(logger, m, frontend, opts), m
}

// newBufferLogger returns a logger that writes to buf. Fault reports are
// logged at error level, which the test logger treats as test failure.
func newBufferLogger(buf *bytes.Buffer) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Output = buf
	cfg.TimeFormat = "-"
	return log.NewWithConfig(cfg)
}

func TestNew(t *testing.T) {
	e, _ := newEmulator(t, &Headless{}, Options{ClockHz: 700}, 0x12, 0x00)

	assert.NotNil(t, e.recorder)
	assert.Equal(t, 11, e.stepsPerFrame)

	e, _ = newEmulator(t, &Headless{}, Options{ClockHz: 10}, 0x12, 0x00)
	assert.Equal(t, 1, e.stepsPerFrame)
}

func TestRunFrame_RenderAndTimers(t *testing.T) {
	frontend := &Headless{}
	// ld V0, $0A; ld DT, V0; drw V1, V1, $5; jp $206
	e, m := newEmulator(t, frontend, Options{ClockHz: 600},
		0x60, 0x0A, 0xF0, 0x15, 0xD1, 0x15, 0x12, 0x06)

	done, err := e.RunFrame()
	assert.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 1, frontend.Renders)
	assert.Equal(t, uint8(1), frontend.Last[0][0])
	assert.False(t, m.DisplayChanged())
	assert.Equal(t, uint8(9), m.DelayTimer())

	done, err = e.RunFrame()
	assert.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 1, frontend.Renders) // display unchanged
	assert.Equal(t, uint8(8), m.DelayTimer())
	assert.Equal(t, 2, e.Frames())
}

func TestRunFrame_Keypad(t *testing.T) {
	frontend := &scriptedFrontend{}
	frontend.keys[7] = true
	// ld V1, K; jp $202
	e, m := newEmulator(t, frontend, Options{ClockHz: 60}, 0xF1, 0x0A, 0x12, 0x02)

	_, err := e.RunFrame()
	assert.NoError(t, err)
	assert.True(t, m.KeyPressed(7))
	assert.Equal(t, uint8(7), m.Register(1))
}

func TestRunFrame_Termination(t *testing.T) {
	frontend := &Headless{}
	// cls; jp $FFF
	e, _ := newEmulator(t, frontend, Options{ClockHz: 700}, 0x00, 0xE0, 0x1F, 0xFF)

	done, err := e.RunFrame()
	assert.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, 1, frontend.Renders)
}

func TestRunFrame_Fault(t *testing.T) {
	var buf bytes.Buffer
	// ld V0, $01; ret
	e, m := newEmulatorWithLogger(t, newBufferLogger(&buf), &Headless{}, Options{ClockHz: 700},
		0x60, 0x01, 0x00, 0xEE)

	done, err := e.RunFrame()
	assert.True(t, done)
	assert.ErrorIs(t, err, chip8.ErrStackUnderflow)
	var fault *chip8.Fault
	assert.ErrorAs(t, err, &fault)
	assert.Equal(t, uint16(0x202), fault.PC)
	assert.True(t, m.Halted())
	assert.Len(t, e.recorder.Events(), 2)

	output := buf.String()
	assert.Contains(t, output, "Machine fault")
	assert.Contains(t, output, "stack underflow")
	assert.Contains(t, output, "[0200] 6001 ld V0, $01")
	assert.Contains(t, output, "[0202] 00EE ret")
}

func TestRunFrame_Quit(t *testing.T) {
	frontend := &scriptedFrontend{quitAfter: 1}
	e, _ := newEmulator(t, frontend, Options{ClockHz: 700}, 0x12, 0x00)

	done, err := e.RunFrame()
	assert.NoError(t, err)
	assert.False(t, done)

	done, err = e.RunFrame()
	assert.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, 1, e.Frames())
}

func TestRunFrame_InputError(t *testing.T) {
	frontend := &scriptedFrontend{pollErr: errors.New("terminal closed")}
	e, _ := newEmulator(t, frontend, Options{ClockHz: 700}, 0x12, 0x00)

	done, err := e.RunFrame()
	assert.True(t, done)
	assert.ErrorContains(t, err, "terminal closed")
}

func TestRun_MaxFrames(t *testing.T) {
	e, _ := newEmulator(t, &Headless{}, Options{ClockHz: 700, MaxFrames: 3}, 0x12, 0x00)

	assert.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 3, e.Frames())
}

func TestRun_Canceled(t *testing.T) {
	e, _ := newEmulator(t, &Headless{}, Options{ClockHz: 700}, 0x12, 0x00)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, e.Run(ctx))
}

func TestRun_Fault(t *testing.T) {
	var buf bytes.Buffer
	e, _ := newEmulatorWithLogger(t, newBufferLogger(&buf), &Headless{}, Options{ClockHz: 700}, 0xFF, 0xFF)

	err := e.Run(context.Background())
	assert.ErrorIs(t, err, chip8.ErrDecode)
	assert.Contains(t, buf.String(), "decode")
	assert.Contains(t, buf.String(), "[0200] FFFF .word $FFFF")
}
