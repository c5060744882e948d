//go:build !sdl

// Package sdlwindow implements an SDL2 window frontend.
package sdlwindow

import (
	"errors"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/emulator"
)

// ErrNotSupported is returned when the binary was built without the sdl build tag.
var ErrNotSupported = errors.New("SDL frontend not available, rebuild with -tags sdl")

// Window is not available without SDL support.
type Window struct{}

// Open returns ErrNotSupported.
func Open(_ string, _ int) (*Window, error) {
	return nil, ErrNotSupported
}

// Close implements io.Closer.
func (w *Window) Close() error {
	return nil
}

// PollInput implements emulator.Frontend.
func (w *Window) PollInput(_ *[chip8.KeyCount]bool) (bool, error) {
	return true, nil
}

// Render implements emulator.Frontend.
func (w *Window) Render(_ *emulator.Framebuffer) error {
	return nil
}
