// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8emu/internal/chip8"
)

// ErrEmptyROM is returned for a ROM file without any content.
var ErrEmptyROM = errors.New("rom file is empty")

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a raw, headerless CHIP-8 program image.
func (l *Loader) Load(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("no ROM file given")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return l.LoadFromReader(file)
}

// LoadFromReader reads a program image from r. Reading stops one byte after
// the maximum image size, so that oversized input is detected without
// reading it completely.
func (l *Loader) LoadFromReader(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, chip8.MaxROMSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}

	switch {
	case len(data) == 0:
		return nil, ErrEmptyROM
	case len(data) > chip8.MaxROMSize:
		return nil, fmt.Errorf("%w: maximum is %d bytes", chip8.ErrROMTooLarge, chip8.MaxROMSize)
	}
	return data, nil
}

// LoadInto reads the ROM file and copies it into the machine memory.
func (l *Loader) LoadInto(m *chip8.Machine, path string) error {
	data, err := l.Load(path)
	if err != nil {
		return err
	}
	if err := m.LoadROM(data); err != nil {
		return fmt.Errorf("loading ROM into memory: %w", err)
	}
	return nil
}
