package vm

// Step fetches, decodes and executes exactly one instruction. The program
// counter is advanced past the instruction before it executes, so jumps and
// calls overwrite it with an absolute address.
//
// The returned errors are fatal: after the first error the interpreter is
// halted and Step keeps returning that error until Reset is called.
func (m *VM) Step() error {
	if m.halted != nil {
		return m.halted
	}

	address := m.pc
	raw := m.fetch()
	m.pc += InstructionSize

	ins, err := Decode(raw)
	if err != nil {
		return m.halt(&UnimplementedOpcodeError{Address: address, Nibbles: splitNibbles(raw)})
	}
	if err := m.execute(ins); err != nil {
		return m.halt(err)
	}
	return nil
}

// Peek decodes the instruction at the program counter without executing it.
func (m *VM) Peek() (Instruction, error) {
	raw := m.fetch()
	ins, err := Decode(raw)
	if err != nil {
		return ins, &UnimplementedOpcodeError{Address: m.pc, Nibbles: splitNibbles(raw)}
	}
	return ins, nil
}

func (m *VM) fetch() uint16 {
	hi := m.memory[m.pc&AddressMask]
	lo := m.memory[(m.pc+1)&AddressMask]
	return uint16(hi)<<8 | uint16(lo)
}

func (m *VM) halt(err error) error {
	m.halted = err
	return err
}

//nolint:cyclop,funlen // single exhaustive dispatch over all instruction forms
func (m *VM) execute(ins Instruction) error {
	switch ins.Op {
	case OpSys:
		// COSMAC VIP machine code routines are not emulated
	case OpClear:
		m.display.clear()
		m.needsRedraw = true
	case OpReturn:
		return m.ret()
	case OpJump:
		m.pc = ins.NNN
	case OpCall:
		return m.call(ins.NNN)
	case OpSkipEqualByte:
		m.skipIf(m.v[ins.X] == ins.NN)
	case OpSkipNotEqualByte:
		m.skipIf(m.v[ins.X] != ins.NN)
	case OpSkipEqualRegister:
		m.skipIf(m.v[ins.X] == m.v[ins.Y])
	case OpLoadByte:
		m.v[ins.X] = ins.NN
	case OpAddByte:
		m.v[ins.X] += ins.NN
	case OpLoadRegister:
		m.v[ins.X] = m.v[ins.Y]
	case OpOr:
		m.v[ins.X] |= m.v[ins.Y]
	case OpAnd:
		m.v[ins.X] &= m.v[ins.Y]
	case OpXor:
		m.v[ins.X] ^= m.v[ins.Y]
	case OpAddRegister:
		m.addRegister(ins.X, ins.Y)
	case OpSub:
		m.sub(ins.X, m.v[ins.X], m.v[ins.Y])
	case OpShiftRight:
		m.shiftRight(ins.X)
	case OpSubReverse:
		m.sub(ins.X, m.v[ins.Y], m.v[ins.X])
	case OpShiftLeft:
		m.shiftLeft(ins.X)
	case OpSkipNotEqualRegister:
		m.skipIf(m.v[ins.X] != m.v[ins.Y])
	case OpLoadIndex:
		m.i = ins.NNN
	case OpJumpOffset:
		m.pc = ins.NNN + uint16(m.v[0])
	case OpRandom:
		m.v[ins.X] = byte(m.rng.UintN(256)) & ins.NN
	case OpDraw:
		m.draw(ins.X, ins.Y, ins.N)
	case OpSkipKeyPressed:
		m.skipIf(m.keys[m.v[ins.X]&0x0F])
	case OpSkipKeyNotPressed:
		m.skipIf(!m.keys[m.v[ins.X]&0x0F])
	case OpLoadDelay:
		m.v[ins.X] = m.delayTimer
	case OpWaitKey:
		m.waitKey(ins.X)
	case OpSetDelay:
		m.delayTimer = m.v[ins.X]
	case OpSetSound:
		m.soundTimer = m.v[ins.X]
	case OpAddIndex:
		m.i += uint16(m.v[ins.X])
	case OpLoadFont:
		m.i = FontAddress(m.v[ins.X])
	case OpStoreBCD:
		m.storeBCD(m.v[ins.X])
	case OpStoreRegisters:
		for r := uint16(0); r <= uint16(ins.X); r++ {
			m.memory[(m.i+r)&AddressMask] = m.v[r]
		}
	case OpLoadRegisters:
		for r := uint16(0); r <= uint16(ins.X); r++ {
			m.v[r] = m.memory[(m.i+r)&AddressMask]
		}
	}
	return nil
}

func (m *VM) call(address uint16) error {
	if len(m.stack) >= StackDepth {
		return ErrStackOverflow
	}
	m.stack = append(m.stack, m.pc)
	m.pc = address
	return nil
}

func (m *VM) ret() error {
	if len(m.stack) == 0 {
		return ErrStackUnderflow
	}
	last := len(m.stack) - 1
	m.pc = m.stack[last]
	m.stack = m.stack[:last]
	return nil
}

func (m *VM) skipIf(condition bool) {
	if condition {
		m.pc += InstructionSize
	}
}

// addRegister adds VY to VX, VF is set to 1 on carry. The flag is written
// last so that it wins when X is F.
func (m *VM) addRegister(x, y uint8) {
	sum := uint16(m.v[x]) + uint16(m.v[y])
	m.v[x] = byte(sum)
	m.v[FlagRegister] = boolToByte(sum > 0xFF)
}

// sub stores a - b in VX, VF is set to 1 if no borrow occurred.
func (m *VM) sub(x uint8, a, b byte) {
	m.v[x] = a - b
	m.v[FlagRegister] = boolToByte(a >= b)
}

func (m *VM) shiftRight(x uint8) {
	value := m.v[x]
	m.v[x] = value >> 1
	m.v[FlagRegister] = value & 0x01
}

func (m *VM) shiftLeft(x uint8) {
	value := m.v[x]
	m.v[x] = value << 1
	m.v[FlagRegister] = value >> 7
}

func (m *VM) draw(x, y, height uint8) {
	var buf [16]byte
	rows := buf[:height]
	for row := range rows {
		rows[row] = m.memory[(m.i+uint16(row))&AddressMask]
	}
	collision := m.display.drawSprite(m.v[x], m.v[y], rows)
	m.v[FlagRegister] = boolToByte(collision)
	m.needsRedraw = true
}

// waitKey stores the lowest held key in VX. Without a held key the program
// counter is rewound so that the instruction executes again on the next step.
func (m *VM) waitKey(x uint8) {
	for key, pressed := range m.keys {
		if pressed {
			m.v[x] = byte(key)
			return
		}
	}
	m.pc -= InstructionSize
}

func (m *VM) storeBCD(value byte) {
	m.memory[m.i&AddressMask] = value / 100
	m.memory[(m.i+1)&AddressMask] = value / 10 % 10
	m.memory[(m.i+2)&AddressMask] = value % 10
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
