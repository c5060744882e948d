// Package chip8 implements the CHIP-8 virtual machine core.
//
// # Machine State
//
// A Machine owns the complete emulated state:
//   - 4KB of memory (0x000-0xFFF), the font table is preloaded at 0x000
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as flag register
//   - the 16-bit index register I and the program counter, starting at ProgramStart
//   - a 16 entry call stack
//   - a 64x32 monochrome framebuffer and a display-changed flag
//   - a 16 key keypad, the delay timer and the sound timer
//
// # Instruction Cycle
//
// Step fetches the two opcode bytes at PC, decodes the nibble fields and
// executes exactly one instruction. All faults are returned as *Fault values
// and leave the machine state untouched, a faulted machine refuses to step
// until Reset is called.
//
// # Host Contract
//
// The machine has no internal concurrency. The host serializes all access:
//
//	m := chip8.New(chip8.Config{})
//	if err := m.LoadROM(rom); err != nil {
//		return err
//	}
//	for {
//		m.SetKeys(keys)
//		status, err := m.Step()
//		if err != nil || status == chip8.Terminated {
//			break
//		}
//		if m.DisplayChanged() {
//			render(m.Framebuffer())
//			m.ClearDisplayChanged()
//		}
//	}
//
// TickTimers has to be called at 60 Hz from the same goroutine.
package chip8
