package chip8

import (
	"fmt"
	"math/rand"
	"time"
)

// Status reports the outcome of a successfully executed step.
type Status int

const (
	// Executed means the instruction ran and PC points to the next instruction.
	Executed Status = iota
	// Waiting means a key wait instruction found no pressed key and PC was not
	// advanced. Only returned when Config.WaitForKey is enabled.
	Waiting
	// Terminated means PC ran off the end of memory. No further instructions execute.
	Terminated
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Executed:
		return "executed"
	case Waiting:
		return "waiting"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Config contains the machine options. The zero value is a valid configuration.
type Config struct {
	// IndexOverflowThreshold is the value of I from which Fx1E sets VF.
	// Defaults to IndexThresholdMemory.
	IndexOverflowThreshold uint16

	// WaitForKey makes Fx0A block by not advancing PC until a key is pressed.
	// By default Fx0A samples the keypad once and continues.
	WaitForKey bool

	// Seed initializes the random number generator used by Cxnn.
	// A zero seed uses the current time.
	Seed int64

	// Tracer is notified about every instruction before it executes.
	Tracer Tracer
}

// Machine is a CHIP-8 virtual machine. It is not safe for concurrent use.
type Machine struct {
	cfg Config
	rnd *rand.Rand

	memory  [MemorySize]byte
	v       [RegisterCount]uint8
	i       uint16
	pc      uint16
	stack   [StackSize]uint16
	sp      uint8
	display [DisplayHeight][DisplayWidth]uint8
	keypad  [KeyCount]bool

	delayTimer uint8
	soundTimer uint8

	displayChanged bool
	terminated     bool
	halted         bool
}

// New returns a new machine with the font table loaded and PC set to ProgramStart.
func New(cfg Config) *Machine {
	if cfg.IndexOverflowThreshold == 0 {
		cfg.IndexOverflowThreshold = IndexThresholdMemory
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m := &Machine{
		cfg: cfg,
		rnd: rand.New(rand.NewSource(seed)), //nolint:gosec // no cryptographic use
	}
	m.Reset()
	return m
}

// Reset restores the power-on state, clearing memory, registers and display.
// The configuration and random number generator are kept.
func (m *Machine) Reset() {
	m.memory = [MemorySize]byte{}
	copy(m.memory[FontStart:], font[:])

	m.v = [RegisterCount]uint8{}
	m.i = 0
	m.pc = ProgramStart
	m.stack = [StackSize]uint16{}
	m.sp = 0
	m.display = [DisplayHeight][DisplayWidth]uint8{}
	m.keypad = [KeyCount]bool{}
	m.delayTimer = 0
	m.soundTimer = 0
	m.displayChanged = false
	m.terminated = false
	m.halted = false
}

// LoadROM copies a raw program image to ProgramStart.
func (m *Machine) LoadROM(data []byte) error {
	if len(data) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrROMTooLarge, len(data), MaxROMSize)
	}
	copy(m.memory[ProgramStart:], data)
	return nil
}

// SetTracer replaces the instruction tracer, nil disables tracing.
func (m *Machine) SetTracer(tracer Tracer) {
	m.cfg.Tracer = tracer
}

// TickTimers decrements the delay and sound timers if they are not zero.
// The host calls it at 60 Hz.
func (m *Machine) TickTimers() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}
}

// SetKey sets the pressed state of a single key. Keys outside of 0x0-0xF are ignored.
func (m *Machine) SetKey(key uint8, pressed bool) {
	if int(key) < KeyCount {
		m.keypad[key] = pressed
	}
}

// SetKeys replaces the state of the whole keypad.
func (m *Machine) SetKeys(keys [KeyCount]bool) {
	m.keypad = keys
}

// KeyPressed returns whether the given key is pressed.
func (m *Machine) KeyPressed(key uint8) bool {
	return int(key) < KeyCount && m.keypad[key]
}

// Framebuffer returns a copy of the display, indexed by row and column.
func (m *Machine) Framebuffer() [DisplayHeight][DisplayWidth]uint8 {
	return m.display
}

// Pixel returns the pixel value at the given coordinates, coordinates wrap around.
func (m *Machine) Pixel(x, y int) uint8 {
	return m.display[wrap(y, DisplayHeight)][wrap(x, DisplayWidth)]
}

// DisplayChanged returns whether the framebuffer was modified since the flag was last cleared.
func (m *Machine) DisplayChanged() bool {
	return m.displayChanged
}

// ClearDisplayChanged resets the display-changed flag after the renderer redrew the display.
func (m *Machine) ClearDisplayChanged() {
	m.displayChanged = false
}

// Registers returns a copy of V0-VF.
func (m *Machine) Registers() [RegisterCount]uint8 {
	return m.v
}

// Register returns the value of register Vx.
func (m *Machine) Register(x uint8) uint8 {
	return m.v[x&0xF]
}

// SetRegister sets register Vx.
func (m *Machine) SetRegister(x, value uint8) {
	m.v[x&0xF] = value
}

// Index returns the index register I.
func (m *Machine) Index() uint16 {
	return m.i
}

// SetIndex sets the index register I.
func (m *Machine) SetIndex(value uint16) {
	m.i = value
}

// ProgramCounter returns the address of the next instruction.
func (m *Machine) ProgramCounter() uint16 {
	return m.pc
}

// SetProgramCounter moves execution to the given address.
func (m *Machine) SetProgramCounter(address uint16) {
	m.pc = address
	m.terminated = !validFetchAddress(address)
}

// StackDepth returns the number of active subroutine calls.
func (m *Machine) StackDepth() int {
	return int(m.sp)
}

// DelayTimer returns the current delay timer value.
func (m *Machine) DelayTimer() uint8 {
	return m.delayTimer
}

// SoundTimer returns the current sound timer value.
func (m *Machine) SoundTimer() uint8 {
	return m.soundTimer
}

// ReadMemory returns the byte at the given address.
func (m *Machine) ReadMemory(address uint16) (byte, error) {
	if int(address) >= MemorySize {
		return 0, fmt.Errorf("%w: address $%04X", ErrMemoryBounds, address)
	}
	return m.memory[address], nil
}

// WriteMemory writes a byte to the given address.
func (m *Machine) WriteMemory(address uint16, value byte) error {
	if int(address) >= MemorySize {
		return fmt.Errorf("%w: address $%04X", ErrMemoryBounds, address)
	}
	m.memory[address] = value
	return nil
}

// Halted returns whether the machine stopped on a fault.
func (m *Machine) Halted() bool {
	return m.halted
}

// Terminated returns whether the program ran off the end of memory.
func (m *Machine) Terminated() bool {
	return m.terminated
}

// validFetchAddress returns whether both opcode bytes at the address are inside memory.
func validFetchAddress(address uint16) bool {
	return int(address)+1 < MemorySize
}

// wrap maps a coordinate into [0, size), negative values wrap from the far edge.
func wrap(value, size int) int {
	return (value%size + size) % size
}
