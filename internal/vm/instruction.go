package vm

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Op identifies one of the 35 CHIP-8 instruction forms.
type Op uint8

// Instruction forms, named after the operation they perform. The comment
// shows the encoding of each form.
const (
	OpSys                Op = iota // 0NNN
	OpClear                        // 00E0
	OpReturn                       // 00EE
	OpJump                         // 1NNN
	OpCall                         // 2NNN
	OpSkipEqualByte                // 3XNN
	OpSkipNotEqualByte             // 4XNN
	OpSkipEqualRegister            // 5XY0
	OpLoadByte                     // 6XNN
	OpAddByte                      // 7XNN
	OpLoadRegister                 // 8XY0
	OpOr                           // 8XY1
	OpAnd                          // 8XY2
	OpXor                          // 8XY3
	OpAddRegister                  // 8XY4
	OpSub                          // 8XY5
	OpShiftRight                   // 8XY6
	OpSubReverse                   // 8XY7
	OpShiftLeft                    // 8XYE
	OpSkipNotEqualRegister         // 9XY0
	OpLoadIndex                    // ANNN
	OpJumpOffset                   // BNNN
	OpRandom                       // CXNN
	OpDraw                         // DXYN
	OpSkipKeyPressed               // EX9E
	OpSkipKeyNotPressed            // EXA1
	OpLoadDelay                    // FX07
	OpWaitKey                      // FX0A
	OpSetDelay                     // FX15
	OpSetSound                     // FX18
	OpAddIndex                     // FX1E
	OpLoadFont                     // FX29
	OpStoreBCD                     // FX33
	OpStoreRegisters               // FX55
	OpLoadRegisters                // FX65

	opCount
)

// opInfo links an instruction form to its assembler mnemonic.
type opInfo struct {
	ins     *chip8.Instruction
	pattern string
}

var ops = [opCount]opInfo{
	OpSys:                  {nil, "0NNN"},
	OpClear:                {chip8.ClsInst, "00E0"},
	OpReturn:               {chip8.RetInst, "00EE"},
	OpJump:                 {chip8.JpInst, "1NNN"},
	OpCall:                 {chip8.CallInst, "2NNN"},
	OpSkipEqualByte:        {chip8.SeInst, "3XNN"},
	OpSkipNotEqualByte:     {chip8.SneInst, "4XNN"},
	OpSkipEqualRegister:    {chip8.SeInst, "5XY0"},
	OpLoadByte:             {chip8.LdInst, "6XNN"},
	OpAddByte:              {chip8.AddInst, "7XNN"},
	OpLoadRegister:         {chip8.LdInst, "8XY0"},
	OpOr:                   {chip8.OrInst, "8XY1"},
	OpAnd:                  {chip8.AndInst, "8XY2"},
	OpXor:                  {chip8.XorInst, "8XY3"},
	OpAddRegister:          {chip8.AddInst, "8XY4"},
	OpSub:                  {chip8.SubInst, "8XY5"},
	OpShiftRight:           {chip8.ShrInst, "8XY6"},
	OpSubReverse:           {chip8.SubnInst, "8XY7"},
	OpShiftLeft:            {chip8.ShlInst, "8XYE"},
	OpSkipNotEqualRegister: {chip8.SneInst, "9XY0"},
	OpLoadIndex:            {chip8.LdInst, "ANNN"},
	OpJumpOffset:           {chip8.JpInst, "BNNN"},
	OpRandom:               {chip8.RndInst, "CXNN"},
	OpDraw:                 {chip8.DrwInst, "DXYN"},
	OpSkipKeyPressed:       {chip8.SkpInst, "EX9E"},
	OpSkipKeyNotPressed:    {chip8.SknpInst, "EXA1"},
	OpLoadDelay:            {chip8.LdInst, "FX07"},
	OpWaitKey:              {chip8.LdInst, "FX0A"},
	OpSetDelay:             {chip8.LdInst, "FX15"},
	OpSetSound:             {chip8.LdInst, "FX18"},
	OpAddIndex:             {chip8.AddInst, "FX1E"},
	OpLoadFont:             {chip8.LdInst, "FX29"},
	OpStoreBCD:             {chip8.LdInst, "FX33"},
	OpStoreRegisters:       {chip8.LdInst, "FX55"},
	OpLoadRegisters:        {chip8.LdInst, "FX65"},
}

// Instruction returns the assembler instruction of the form, nil for 0NNN
// which has no mnemonic in the instruction set.
func (o Op) Instruction() *chip8.Instruction {
	if o >= opCount {
		return nil
	}
	return ops[o].ins
}

// Mnemonic returns the upper case assembler mnemonic.
func (o Op) Mnemonic() string {
	ins := o.Instruction()
	if ins == nil {
		return "SYS"
	}
	return strings.ToUpper(ins.Name)
}

// Pattern returns the encoding pattern of the form, for example "8XY4".
func (o Op) Pattern() string {
	if o >= opCount {
		return "????"
	}
	return ops[o].pattern
}

func (o Op) String() string {
	return o.Pattern()
}

// Instruction is a decoded instruction word. Only the fields used by the
// form carry meaning, all are filled from the raw word.
type Instruction struct {
	Op  Op
	Raw uint16

	X   uint8  // second nibble, register index
	Y   uint8  // third nibble, register index
	N   uint8  // lowest nibble
	NN  uint8  // lowest byte
	NNN uint16 // lowest 12 bits, an address
}

// Decode splits an instruction word into its fields and identifies the
// instruction form. Words matching no form return an UnimplementedOpcodeError
// without an address.
func Decode(raw uint16) (Instruction, error) {
	ins := Instruction{
		Raw: raw,
		X:   uint8(raw>>8) & 0x0F,
		Y:   uint8(raw>>4) & 0x0F,
		N:   uint8(raw) & 0x0F,
		NN:  uint8(raw),
		NNN: raw & 0x0FFF,
	}

	op, ok := decodeOp(raw, ins.N, ins.NN)
	if !ok {
		return ins, &UnimplementedOpcodeError{Nibbles: splitNibbles(raw)}
	}
	ins.Op = op
	return ins, nil
}

//nolint:cyclop,funlen // one flat dispatch table is easier to audit
func decodeOp(raw uint16, n, nn uint8) (Op, bool) {
	switch raw >> 12 {
	case 0x0:
		switch raw {
		case 0x00E0:
			return OpClear, true
		case 0x00EE:
			return OpReturn, true
		}
		return OpSys, true
	case 0x1:
		return OpJump, true
	case 0x2:
		return OpCall, true
	case 0x3:
		return OpSkipEqualByte, true
	case 0x4:
		return OpSkipNotEqualByte, true
	case 0x5:
		return OpSkipEqualRegister, true
	case 0x6:
		return OpLoadByte, true
	case 0x7:
		return OpAddByte, true
	case 0x8:
		switch n {
		case 0x0:
			return OpLoadRegister, true
		case 0x1:
			return OpOr, true
		case 0x2:
			return OpAnd, true
		case 0x3:
			return OpXor, true
		case 0x4:
			return OpAddRegister, true
		case 0x5:
			return OpSub, true
		case 0x6:
			return OpShiftRight, true
		case 0x7:
			return OpSubReverse, true
		case 0xE:
			return OpShiftLeft, true
		}
	case 0x9:
		return OpSkipNotEqualRegister, true
	case 0xA:
		return OpLoadIndex, true
	case 0xB:
		return OpJumpOffset, true
	case 0xC:
		return OpRandom, true
	case 0xD:
		return OpDraw, true
	case 0xE:
		switch nn {
		case 0x9E:
			return OpSkipKeyPressed, true
		case 0xA1:
			return OpSkipKeyNotPressed, true
		}
	case 0xF:
		switch nn {
		case 0x07:
			return OpLoadDelay, true
		case 0x0A:
			return OpWaitKey, true
		case 0x15:
			return OpSetDelay, true
		case 0x18:
			return OpSetSound, true
		case 0x1E:
			return OpAddIndex, true
		case 0x29:
			return OpLoadFont, true
		case 0x33:
			return OpStoreBCD, true
		case 0x55:
			return OpStoreRegisters, true
		case 0x65:
			return OpLoadRegisters, true
		}
	}
	return 0, false
}

func splitNibbles(raw uint16) [4]byte {
	return [4]byte{
		byte(raw>>12) & 0x0F,
		byte(raw>>8) & 0x0F,
		byte(raw>>4) & 0x0F,
		byte(raw) & 0x0F,
	}
}

// String returns the instruction in assembler syntax, for example "ADD V1, V2".
func (i Instruction) String() string {
	params := i.operands()
	if params == "" {
		return i.Op.Mnemonic()
	}
	return i.Op.Mnemonic() + " " + params
}

//nolint:cyclop // one case per operand layout
func (i Instruction) operands() string {
	switch i.Op {
	case OpClear, OpReturn:
		return ""
	case OpSys, OpJump, OpCall:
		return fmt.Sprintf("$%03X", i.NNN)
	case OpJumpOffset:
		return fmt.Sprintf("V0, $%03X", i.NNN)
	case OpSkipEqualByte, OpSkipNotEqualByte, OpLoadByte, OpAddByte, OpRandom:
		return fmt.Sprintf("V%X, $%02X", i.X, i.NN)
	case OpSkipEqualRegister, OpSkipNotEqualRegister, OpLoadRegister,
		OpOr, OpAnd, OpXor, OpAddRegister, OpSub, OpSubReverse:
		return fmt.Sprintf("V%X, V%X", i.X, i.Y)
	case OpShiftRight, OpShiftLeft, OpSkipKeyPressed, OpSkipKeyNotPressed:
		return fmt.Sprintf("V%X", i.X)
	case OpLoadIndex:
		return fmt.Sprintf("I, $%03X", i.NNN)
	case OpDraw:
		return fmt.Sprintf("V%X, V%X, $%X", i.X, i.Y, i.N)
	case OpLoadDelay:
		return fmt.Sprintf("V%X, DT", i.X)
	case OpWaitKey:
		return fmt.Sprintf("V%X, K", i.X)
	case OpSetDelay:
		return fmt.Sprintf("DT, V%X", i.X)
	case OpSetSound:
		return fmt.Sprintf("ST, V%X", i.X)
	case OpAddIndex:
		return fmt.Sprintf("I, V%X", i.X)
	case OpLoadFont:
		return fmt.Sprintf("F, V%X", i.X)
	case OpStoreBCD:
		return fmt.Sprintf("B, V%X", i.X)
	case OpStoreRegisters:
		return fmt.Sprintf("[I], V%X", i.X)
	case OpLoadRegisters:
		return fmt.Sprintf("V%X, [I]", i.X)
	}
	return ""
}
