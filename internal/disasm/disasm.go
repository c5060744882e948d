// Package disasm renders CHIP-8 opcodes as assembly mnemonics for instruction traces.
package disasm

import (
	"fmt"

	"github.com/retroenv/chip8emu/internal/chip8"
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Format returns the assembly representation of the opcode, for example
// "drw V1, V2, $5". Opcodes that do not match any instruction are
// returned as data word.
func Format(opcode uint16) string {
	ins, ok := chip8.Lookup(opcode)
	if !ok {
		return fmt.Sprintf(".word $%04X", opcode)
	}

	if params := formatParams(ins.Name, opcode); params != "" {
		return fmt.Sprintf("%s %s", ins.Name, params)
	}
	return ins.Name
}

// formatParams formats the instruction parameters.
func formatParams(name string, opcode uint16) string {
	switch name {
	case chip8cpu.ClsName, chip8cpu.RetName:
		return "" // No parameters
	case chip8cpu.JpName:
		return formatJump(opcode)
	case chip8cpu.CallName:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case chip8cpu.SeName, chip8cpu.SneName:
		return formatCompare(opcode)
	case chip8cpu.LdName:
		return formatLoad(opcode)
	case chip8cpu.AddName:
		return formatAdd(opcode)
	case chip8cpu.OrName, chip8cpu.AndName, chip8cpu.XorName, chip8cpu.SubName, chip8cpu.SubnName:
		return fmt.Sprintf("V%X, V%X", registerX(opcode), registerY(opcode))
	case chip8cpu.ShrName, chip8cpu.ShlName, chip8cpu.SkpName, chip8cpu.SknpName:
		return fmt.Sprintf("V%X", registerX(opcode))
	case chip8cpu.RndName:
		return fmt.Sprintf("V%X, $%02X", registerX(opcode), opcode&0x00FF)
	case chip8cpu.DrwName:
		return fmt.Sprintf("V%X, V%X, $%X", registerX(opcode), registerY(opcode), opcode&0x000F)
	}
	return ""
}

// formatJump formats jump instructions (JP addr, JP V0+addr).
func formatJump(opcode uint16) string {
	switch opcode & 0xF000 {
	case 0x1000:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case 0xB000:
		return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
	}
	return ""
}

// formatCompare formats comparison instructions (SE, SNE).
func formatCompare(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x3000, 0x4000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	}
	return ""
}

// formatLoad formats all load variants, including the timer, keypad and
// memory transfer forms of the 0xF family.
func formatLoad(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	case 0xA000:
		return fmt.Sprintf("I, $%03X", opcode&0x0FFF)
	case 0xF000:
		return formatLoadMisc(x, opcode&0x00FF)
	}
	return ""
}

func formatLoadMisc(x, selector uint16) string {
	switch selector {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}

// formatAdd formats add instructions (ADD Vx, byte/Vy, ADD I, Vx).
func formatAdd(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x7000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	case 0xF000:
		return fmt.Sprintf("I, V%X", x)
	}
	return ""
}

func registerX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

func registerY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}
