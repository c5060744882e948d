package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// assemble converts opcodes into a big-endian program image.
func assemble(opcodes ...uint16) []byte {
	data := make([]byte, 0, len(opcodes)*opcodeSize)
	for _, op := range opcodes {
		data = append(data, byte(op>>8), byte(op))
	}
	return data
}

// newMachine returns a machine with a fixed random seed and the given program loaded.
func newMachine(t *testing.T, opcodes ...uint16) *Machine {
	t.Helper()
	m := New(Config{Seed: 1})
	assert.NoError(t, m.LoadROM(assemble(opcodes...)))
	return m
}

func TestNew(t *testing.T) {
	m := New(Config{})

	assert.Equal(t, uint16(ProgramStart), m.ProgramCounter())
	assert.Equal(t, uint16(0), m.Index())
	assert.Equal(t, 0, m.StackDepth())
	assert.Equal(t, IndexThresholdMemory, m.cfg.IndexOverflowThreshold)
	assert.False(t, m.DisplayChanged())
	assert.False(t, m.Halted())
	assert.False(t, m.Terminated())

	fontSet := FontSet()
	for i, b := range fontSet {
		value, err := m.ReadMemory(uint16(FontStart + i))
		assert.NoError(t, err)
		assert.Equal(t, b, value)
	}

	value, err := m.ReadMemory(ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, byte(0), value)
}

func TestGlyphAddress(t *testing.T) {
	assert.Equal(t, uint16(0), GlyphAddress(0))
	assert.Equal(t, uint16(50), GlyphAddress(0xA))
	assert.Equal(t, uint16(75), GlyphAddress(0xF))
}

func TestMachine_LoadROM(t *testing.T) {
	t.Run("program is copied to program start", func(t *testing.T) {
		m := New(Config{})
		assert.NoError(t, m.LoadROM([]byte{0x12, 0x34, 0x56}))

		for i, expected := range []byte{0x12, 0x34, 0x56} {
			value, err := m.ReadMemory(uint16(ProgramStart + i))
			assert.NoError(t, err)
			assert.Equal(t, expected, value)
		}
	})

	t.Run("maximum size fits", func(t *testing.T) {
		m := New(Config{})
		data := make([]byte, MaxROMSize)
		data[len(data)-1] = 0xAB
		assert.NoError(t, m.LoadROM(data))

		value, err := m.ReadMemory(MemorySize - 1)
		assert.NoError(t, err)
		assert.Equal(t, byte(0xAB), value)
	})

	t.Run("oversized image is rejected", func(t *testing.T) {
		m := New(Config{})
		err := m.LoadROM(make([]byte, MaxROMSize+1))
		assert.ErrorIs(t, err, ErrROMTooLarge)
	})
}

func TestMachine_Reset(t *testing.T) {
	m := newMachine(t, 0x6A42, 0xA123, 0x2300)
	m.SetKey(3, true)
	for range 3 {
		_, err := m.Step()
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, m.StackDepth())

	m.Reset()

	assert.Equal(t, uint16(ProgramStart), m.ProgramCounter())
	assert.Equal(t, uint16(0), m.Index())
	assert.Equal(t, uint8(0), m.Register(0xA))
	assert.Equal(t, 0, m.StackDepth())
	assert.False(t, m.KeyPressed(3))

	value, err := m.ReadMemory(ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, byte(0), value)
}

func TestMachine_Keys(t *testing.T) {
	m := New(Config{})

	m.SetKey(0x5, true)
	assert.True(t, m.KeyPressed(0x5))
	assert.False(t, m.KeyPressed(0x6))

	m.SetKey(0x10, true)
	assert.False(t, m.KeyPressed(0x10))

	var keys [KeyCount]bool
	keys[0xF] = true
	m.SetKeys(keys)
	assert.False(t, m.KeyPressed(0x5))
	assert.True(t, m.KeyPressed(0xF))
}

func TestMachine_TickTimers(t *testing.T) {
	m := newMachine(t, 0x6002, 0xF015, 0x6001, 0xF018)
	for range 4 {
		_, err := m.Step()
		assert.NoError(t, err)
	}
	assert.Equal(t, uint8(2), m.DelayTimer())
	assert.Equal(t, uint8(1), m.SoundTimer())

	m.TickTimers()
	assert.Equal(t, uint8(1), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())

	m.TickTimers()
	m.TickTimers()
	assert.Equal(t, uint8(0), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())
}

func TestMachine_MemoryAccess(t *testing.T) {
	m := New(Config{})

	assert.NoError(t, m.WriteMemory(0xFFF, 0x42))
	value, err := m.ReadMemory(0xFFF)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x42), value)

	_, err = m.ReadMemory(0x1000)
	assert.ErrorIs(t, err, ErrMemoryBounds)
	assert.ErrorIs(t, m.WriteMemory(0x1000, 1), ErrMemoryBounds)
}

func TestMachine_PixelWraps(t *testing.T) {
	// ld V0, $3F; ld V1, $1F; drw V0, V1, $1 with I pointing at the top row of glyph 0
	m := newMachine(t, 0x603F, 0x611F, 0xD011)
	for range 3 {
		_, err := m.Step()
		assert.NoError(t, err)
	}

	assert.Equal(t, uint8(1), m.Pixel(63, 31))
	assert.Equal(t, uint8(1), m.Pixel(-1, -1))
	assert.Equal(t, uint8(1), m.Pixel(-64, -1))
	assert.Equal(t, uint8(1), m.Pixel(-62, 31))
	assert.Equal(t, uint8(0), m.Pixel(-4, -1))
	assert.Equal(t, uint8(1), m.Pixel(127, 63))
	assert.NotPanics(t, func() { m.Pixel(-1000, -1000) })
}

func TestMachine_DisplayChanged(t *testing.T) {
	m := newMachine(t, 0x00E0)
	assert.False(t, m.DisplayChanged())

	_, err := m.Step()
	assert.NoError(t, err)
	assert.True(t, m.DisplayChanged())

	m.ClearDisplayChanged()
	assert.False(t, m.DisplayChanged())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "executed", Executed.String())
	assert.Equal(t, "waiting", Waiting.String())
	assert.Equal(t, "terminated", Terminated.String())
	assert.Equal(t, "status(9)", Status(9).String())
}
