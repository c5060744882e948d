//go:build !sdl

package sdlwindow

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestOpen_NotSupported(t *testing.T) {
	w, err := Open("chip8emu", 10)
	assert.True(t, w == nil)
	assert.ErrorIs(t, err, ErrNotSupported)
}
