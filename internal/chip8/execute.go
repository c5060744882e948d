package chip8

// Step executes exactly one instruction. It returns Terminated once PC points
// past the last complete opcode in memory, and a *Fault if the instruction
// could not be executed. A faulted machine returns ErrHalted until Reset.
func (m *Machine) Step() (Status, error) {
	if m.halted {
		return Executed, ErrHalted
	}
	if m.terminated || !validFetchAddress(m.pc) {
		m.terminated = true
		return Terminated, nil
	}

	ins := Decode(decodeOpcode(m.memory[m.pc], m.memory[m.pc+1]))
	if m.cfg.Tracer != nil {
		m.cfg.Tracer.Trace(Event{PC: m.pc, Instruction: ins})
	}

	status, err := m.execute(ins)
	if err != nil {
		m.halted = true
		return status, err
	}

	if !validFetchAddress(m.pc) {
		m.terminated = true
		return Terminated, nil
	}
	return status, nil
}

// execute dispatches the instruction on its family nibble. Opcodes missing
// from the opcode table fault before any state is modified.
func (m *Machine) execute(ins Instruction) (Status, error) {
	if _, ok := Lookup(ins.Opcode); !ok {
		return Executed, m.fault(DecodeFault, ins, 0)
	}

	var err error

	switch ins.Family {
	case 0x0:
		err = m.executeSystem(ins)
	case 0x1: // jp nnn
		m.pc = ins.NNN
	case 0x2:
		err = m.call(ins)
	case 0x3:
		m.skipIf(m.v[ins.X] == ins.NN)
	case 0x4:
		m.skipIf(m.v[ins.X] != ins.NN)
	case 0x5:
		m.skipIf(m.v[ins.X] == m.v[ins.Y])
	case 0x6:
		m.v[ins.X] = ins.NN
		m.next()
	case 0x7:
		m.v[ins.X] += ins.NN
		m.next()
	case 0x8:
		m.executeALU(ins)
	case 0x9:
		m.skipIf(m.v[ins.X] != m.v[ins.Y])
	case 0xA:
		m.i = ins.NNN
		m.next()
	case 0xB: // jp V0, nnn
		m.pc = uint16(m.v[0]) + ins.NNN
	case 0xC:
		m.v[ins.X] = uint8(m.rnd.Intn(256)) & ins.NN
		m.next()
	case 0xD:
		err = m.draw(ins)
	case 0xE:
		m.executeKey(ins)
	case 0xF:
		return m.executeMisc(ins)
	}

	return Executed, err
}

// executeSystem handles the 0x0 family, cls and ret.
func (m *Machine) executeSystem(ins Instruction) error {
	if ins.Opcode == 0x00E0 {
		m.display = [DisplayHeight][DisplayWidth]uint8{}
		m.displayChanged = true
		m.next()
		return nil
	}

	if m.sp == 0 {
		return m.fault(StackUnderflowFault, ins, 0)
	}
	m.sp--
	m.pc = m.stack[m.sp]
	return nil
}

// call pushes the return address and jumps to nnn.
func (m *Machine) call(ins Instruction) error {
	if int(m.sp) >= StackSize {
		return m.fault(StackOverflowFault, ins, 0)
	}
	m.stack[m.sp] = m.pc + opcodeSize
	m.sp++
	m.pc = ins.NNN
	return nil
}

// executeALU handles the 0x8 family. All flags are computed from the operand
// values before the destination register is written, VF is written last.
func (m *Machine) executeALU(ins Instruction) {
	vx, vy := m.v[ins.X], m.v[ins.Y]

	switch ins.N {
	case 0x0:
		m.v[ins.X] = vy
	case 0x1:
		m.v[ins.X] = vx | vy
	case 0x2:
		m.v[ins.X] = vx & vy
	case 0x3:
		m.v[ins.X] = vx ^ vy
	case 0x4:
		sum := uint16(vx) + uint16(vy)
		m.v[ins.X] = uint8(sum)
		m.v[flagRegister] = boolToFlag(sum > 0xFF)
	case 0x5:
		m.v[ins.X] = vx - vy
		m.v[flagRegister] = boolToFlag(vx >= vy)
	case 0x6:
		m.v[ins.X] = vx >> 1
		m.v[flagRegister] = vx & 0x01
	case 0x7:
		m.v[ins.X] = vy - vx
		m.v[flagRegister] = boolToFlag(vy >= vx)
	case 0xE:
		m.v[ins.X] = vx << 1
		m.v[flagRegister] = vx >> 7
	}

	m.next()
}

// draw XORs an n byte sprite from memory at I onto the display at (Vx, Vy).
// Coordinates wrap around the display edges, VF reports any erased pixel.
func (m *Machine) draw(ins Instruction) error {
	rows := int(ins.N)
	if rows > 0 {
		if last := int(m.i) + rows - 1; last >= MemorySize {
			return m.fault(MemoryBoundsFault, ins, last)
		}
	}

	x0, y0 := int(m.v[ins.X]), int(m.v[ins.Y])
	var collision uint8

	for row := 0; row < rows; row++ {
		y := (y0 + row) % DisplayHeight
		sprite := m.memory[int(m.i)+row]

		for bit := 0; bit < 8; bit++ {
			x := (x0 + bit) % DisplayWidth
			pixel := (sprite >> (7 - bit)) & 1
			collision |= pixel & m.display[y][x]
			m.display[y][x] ^= pixel
		}
	}

	m.v[flagRegister] = collision
	m.displayChanged = true
	m.next()
	return nil
}

// executeKey handles the 0xE family, skips depending on the keypad state.
// Only the low nibble of Vx selects the key.
func (m *Machine) executeKey(ins Instruction) {
	pressed := m.keypad[m.v[ins.X]&0xF]
	if ins.NN == 0x9E {
		m.skipIf(pressed)
	} else {
		m.skipIf(!pressed)
	}
}

// executeMisc handles the 0xF family: timers, keypad wait, index and memory transfers.
func (m *Machine) executeMisc(ins Instruction) (Status, error) {
	x := ins.X

	switch ins.NN {
	case 0x07:
		m.v[x] = m.delayTimer

	case 0x0A:
		key, ok := m.firstPressedKey()
		switch {
		case ok:
			m.v[x] = key
		case m.cfg.WaitForKey:
			return Waiting, nil
		}

	case 0x15:
		m.delayTimer = m.v[x]

	case 0x18:
		m.soundTimer = m.v[x]

	case 0x1E:
		m.i += uint16(m.v[x])
		m.v[flagRegister] = boolToFlag(m.i >= m.cfg.IndexOverflowThreshold)

	case 0x29:
		m.i = GlyphAddress(m.v[x])

	case 0x33:
		if err := m.checkRange(ins, 2); err != nil {
			return Executed, err
		}
		value := m.v[x]
		m.memory[m.i] = value / 100
		m.memory[m.i+1] = value / 10 % 10
		m.memory[m.i+2] = value % 10

	case 0x55:
		if err := m.checkRange(ins, int(x)); err != nil {
			return Executed, err
		}
		copy(m.memory[m.i:int(m.i)+int(x)+1], m.v[:x+1])

	case 0x65:
		if err := m.checkRange(ins, int(x)); err != nil {
			return Executed, err
		}
		copy(m.v[:x+1], m.memory[m.i:int(m.i)+int(x)+1])
	}

	m.next()
	return Executed, nil
}

// checkRange verifies that I and I+offset are valid memory addresses.
func (m *Machine) checkRange(ins Instruction, offset int) error {
	if last := int(m.i) + offset; last >= MemorySize {
		return m.fault(MemoryBoundsFault, ins, last)
	}
	return nil
}

// firstPressedKey returns the lowest pressed key.
func (m *Machine) firstPressedKey() (uint8, bool) {
	for key, pressed := range m.keypad {
		if pressed {
			return uint8(key), true
		}
	}
	return 0, false
}

// next advances PC to the following instruction.
func (m *Machine) next() {
	m.pc += opcodeSize
}

// skipIf advances PC and skips the following instruction if the condition is met.
func (m *Machine) skipIf(condition bool) {
	m.pc += opcodeSize
	if condition {
		m.pc += opcodeSize
	}
}

func (m *Machine) fault(kind FaultKind, ins Instruction, address int) *Fault {
	return &Fault{
		Kind:    kind,
		PC:      m.pc,
		Opcode:  ins.Opcode,
		Address: address,
	}
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
