package chip8

import (
	"fmt"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Instruction contains the fields decoded from a 16-bit CHIP-8 opcode.
type Instruction struct {
	Opcode uint16
	Family uint8  // top nibble, selects the instruction family
	NNN    uint16 // lowest 12 bits, an address
	NN     uint8  // lowest 8 bits, an immediate value
	N      uint8  // lowest 4 bits
	X      uint8  // register index from bits 8-11
	Y      uint8  // register index from bits 4-7
}

// Decode extracts all opcode fields. Decoding never fails, the opcode is only
// validated when the instruction gets executed.
func Decode(opcode uint16) Instruction {
	return Instruction{
		Opcode: opcode,
		Family: uint8(opcode >> 12),
		NNN:    opcode & 0x0FFF,
		NN:     uint8(opcode & 0x00FF),
		N:      uint8(opcode & 0x000F),
		X:      extractRegisterX(opcode),
		Y:      extractRegisterY(opcode),
	}
}

// Lookup returns the definition of the opcode in the retrogolib CHIP-8
// opcode table. Opcodes without a table entry are decode faults.
func Lookup(opcode uint16) (*chip8cpu.Instruction, bool) {
	for _, op := range chip8cpu.Opcodes[opcode>>12] {
		if opcode&op.Info.Mask == op.Info.Value {
			return op.Instruction, true
		}
	}
	return nil, false
}

// String returns the opcode as hex value.
func (i Instruction) String() string {
	return fmt.Sprintf("$%04X", i.Opcode)
}

// decodeOpcode combines two big-endian instruction bytes into an opcode.
func decodeOpcode(high, low byte) uint16 {
	return uint16(high)<<8 | uint16(low)
}

// extractRegisterX extracts the X register nibble from a CHIP-8 opcode.
func extractRegisterX(opcode uint16) uint8 {
	return uint8((opcode & 0x0F00) >> 8)
}

// extractRegisterY extracts the Y register nibble from a CHIP-8 opcode.
func extractRegisterY(opcode uint16) uint8 {
	return uint8((opcode & 0x00F0) >> 4)
}
