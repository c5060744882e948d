// Package terminal implements a text terminal frontend. Two display rows are
// drawn per text line using half block characters.
package terminal

import (
	"bufio"
	"fmt"
	"io"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/emulator"
)

// Text lines and columns needed to show the display.
const (
	Columns = chip8.DisplayWidth
	Lines   = chip8.DisplayHeight / 2
)

const (
	cursorHome = "\x1b[H"
	clearAll   = "\x1b[2J"
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
)

// cells indexed by top pixel << 1 | bottom pixel.
var cells = [4]rune{' ', '▄', '▀', '█'}

// RenderTo writes the framebuffer as text, starting at the top left corner
// of the terminal.
func RenderTo(w io.Writer, fb *emulator.Framebuffer) error {
	bw := bufio.NewWriter(w)
	_, _ = bw.WriteString(cursorHome)

	for line := 0; line < Lines; line++ {
		top, bottom := fb[line*2], fb[line*2+1]
		for x := 0; x < Columns; x++ {
			_, _ = bw.WriteRune(cells[top[x]&1<<1|bottom[x]&1])
		}
		_, _ = bw.WriteString("\r\n")
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing display: %w", err)
	}
	return nil
}
