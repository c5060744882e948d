//go:build linux

package terminal

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/emulator"
	"golang.org/x/sys/unix"
)

// Compile-time check to ensure Terminal implements emulator.Frontend.
var _ emulator.Frontend = (*Terminal)(nil)

// Terminal is a frontend that renders into a raw mode terminal.
type Terminal struct {
	input   *os.File
	output  *os.File
	restore unix.Termios
	keys    keyState
	buf     [64]byte
}

// Open switches the input terminal into raw mode. The caller has to Close
// the terminal to restore the previous mode.
func Open(input, output *os.File) (*Terminal, error) {
	if input == nil || output == nil {
		return nil, errors.New("terminal requires an input and output file")
	}

	ws, err := unix.IoctlGetWinsize(int(output.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return nil, fmt.Errorf("getting terminal size: %w", err)
	}
	if int(ws.Col) < Columns || int(ws.Row) < Lines {
		return nil, fmt.Errorf("terminal size %dx%d is too small, %dx%d is required",
			ws.Col, ws.Row, Columns, Lines)
	}

	fd := int(input.Fd())
	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, fmt.Errorf("getting terminal attributes: %w", err)
	}

	t := &Terminal{
		input:   input,
		output:  output,
		restore: *termios,
	}

	raw := *termios
	raw.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR | unix.ICRNL | unix.IXON
	raw.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	raw.Cflag &^= unix.CSIZE | unix.PARENB
	raw.Cflag |= unix.CS8
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &raw); err != nil {
		return nil, fmt.Errorf("setting raw mode: %w", err)
	}

	if _, err := output.WriteString(clearAll + hideCursor); err != nil {
		_ = t.Close()
		return nil, fmt.Errorf("preparing terminal: %w", err)
	}
	return t, nil
}

// Close restores the terminal mode.
func (t *Terminal) Close() error {
	_, _ = t.output.WriteString(showCursor + "\r\n")
	if err := unix.IoctlSetTermios(int(t.input.Fd()), unix.TCSETS, &t.restore); err != nil {
		return fmt.Errorf("restoring terminal attributes: %w", err)
	}
	return nil
}

// PollInput implements emulator.Frontend. Escape quits.
func (t *Terminal) PollInput(keys *[chip8.KeyCount]bool) (bool, error) {
	for {
		n, err := unix.Read(int(t.input.Fd()), t.buf[:])
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
				break
			}
			return false, fmt.Errorf("reading terminal input: %w", err)
		}
		if n == 0 {
			break
		}
		if t.keys.feed(t.buf[:n]) {
			return true, nil
		}
	}

	t.keys.update(keys)
	return false, nil
}

// Render implements emulator.Frontend.
func (t *Terminal) Render(fb *emulator.Framebuffer) error {
	return RenderTo(t.output, fb)
}
