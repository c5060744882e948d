//go:build !linux

package terminal

import (
	"errors"
	"os"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/emulator"
)

// Terminal is only available on linux.
type Terminal struct{}

// Open returns an error on this platform.
func Open(_, _ *os.File) (*Terminal, error) {
	return nil, errors.New("terminal frontend is only supported on linux, use -f sdl or -f headless")
}

// Close implements io.Closer.
func (t *Terminal) Close() error {
	return nil
}

// PollInput implements emulator.Frontend.
func (t *Terminal) PollInput(_ *[chip8.KeyCount]bool) (bool, error) {
	return true, nil
}

// Render implements emulator.Frontend.
func (t *Terminal) Render(_ *emulator.Framebuffer) error {
	return nil
}
