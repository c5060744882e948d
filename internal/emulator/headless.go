package emulator

import "github.com/retroenv/chip8emu/internal/chip8"

// Compile-time check to ensure Headless implements Frontend.
var _ Frontend = (*Headless)(nil)

// Headless is a frontend without display and input, used for automated runs.
// It keeps the last rendered framebuffer.
type Headless struct {
	Renders int
	Last    Framebuffer
}

// PollInput implements Frontend, no key is ever pressed.
func (h *Headless) PollInput(keys *[chip8.KeyCount]bool) (bool, error) {
	*keys = [chip8.KeyCount]bool{}
	return false, nil
}

// Render implements Frontend.
func (h *Headless) Render(fb *Framebuffer) error {
	h.Renders++
	h.Last = *fb
	return nil
}
