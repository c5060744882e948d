package chip8

import (
	"errors"
	"fmt"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

var (
	// ErrDecode is returned for an opcode that matches no known instruction.
	ErrDecode = errors.New("unknown opcode")
	// ErrStackOverflow is returned for a call with all stack entries in use.
	ErrStackOverflow = chip8cpu.ErrStackOverflow
	// ErrStackUnderflow is returned for a return with an empty stack.
	ErrStackUnderflow = chip8cpu.ErrStackUnderflow
	// ErrMemoryBounds is returned when an instruction addresses memory outside of 0x000-0xFFF.
	ErrMemoryBounds = chip8cpu.ErrMemoryOutOfBounds

	// ErrHalted is returned when stepping a machine that stopped on a fault.
	ErrHalted = errors.New("machine is halted")
	// ErrROMTooLarge is returned for a program image that does not fit into memory.
	ErrROMTooLarge = errors.New("rom image too large")
)

// FaultKind classifies a fault raised by the instruction cycle.
type FaultKind int

// Fault kinds.
const (
	DecodeFault FaultKind = iota
	StackOverflowFault
	StackUnderflowFault
	MemoryBoundsFault
)

// String returns the fault kind name.
func (k FaultKind) String() string {
	switch k {
	case DecodeFault:
		return "decode"
	case StackOverflowFault:
		return "stack overflow"
	case StackUnderflowFault:
		return "stack underflow"
	case MemoryBoundsFault:
		return "memory bounds"
	default:
		return fmt.Sprintf("fault(%d)", int(k))
	}
}

// Fault describes a fatal error of the instruction cycle. The instruction that
// raised the fault has not modified any machine state.
type Fault struct {
	Kind    FaultKind
	PC      uint16 // address of the faulting instruction
	Opcode  uint16
	Address int // offending memory address, only set for memory bounds faults
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.Kind == MemoryBoundsFault {
		return fmt.Sprintf("%s fault at $%04X (opcode $%04X): address $%04X", f.Kind, f.PC, f.Opcode, f.Address)
	}
	return fmt.Sprintf("%s fault at $%04X (opcode $%04X)", f.Kind, f.PC, f.Opcode)
}

// Unwrap returns the sentinel error matching the fault kind, so that callers
// can use errors.Is(err, ErrStackOverflow).
func (f *Fault) Unwrap() error {
	switch f.Kind {
	case DecodeFault:
		return ErrDecode
	case StackOverflowFault:
		return ErrStackOverflow
	case StackUnderflowFault:
		return ErrStackUnderflow
	case MemoryBoundsFault:
		return ErrMemoryBounds
	default:
		return nil
	}
}
