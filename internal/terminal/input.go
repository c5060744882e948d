package terminal

import (
	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/emulator"
)

// holdFrames is the number of frames a key stays pressed after its last
// input byte. Terminals only report key presses, key repeat keeps a held key
// alive.
const holdFrames = 6

const escape = 0x1b

// keyState converts the terminal byte stream into keypad state.
type keyState struct {
	remaining [chip8.KeyCount]int
}

// feed processes input bytes and reports whether escape was pressed.
// Escape only quits as last byte of a read, otherwise it starts a control
// sequence of a cursor or function key, which is skipped.
func (k *keyState) feed(input []byte) bool {
	for i := 0; i < len(input); i++ {
		b := input[i]
		if b == escape {
			if i == len(input)-1 {
				return true
			}
			i = skipEscapeSequence(input, i+1)
			continue
		}
		if key, ok := emulator.KeyForRune(rune(b)); ok {
			k.remaining[key] = holdFrames
		}
	}
	return false
}

// skipEscapeSequence returns the index of the last byte of the sequence that
// follows an escape byte. CSI and SS3 sequences end with a byte in the range
// 0x40-0x7E, any other byte is a single alt modified key.
func skipEscapeSequence(input []byte, start int) int {
	if input[start] != '[' && input[start] != 'O' {
		return start
	}
	for i := start + 1; i < len(input); i++ {
		if input[i] >= 0x40 && input[i] <= 0x7E {
			return i
		}
	}
	return len(input) - 1
}

// update writes the pressed keys and ages all held keys by one frame.
func (k *keyState) update(keys *[chip8.KeyCount]bool) {
	for i := range k.remaining {
		keys[i] = k.remaining[i] > 0
		if k.remaining[i] > 0 {
			k.remaining[i]--
		}
	}
}
