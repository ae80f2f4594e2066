package vm

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		raw      uint16
		op       Op
		expected string
	}{
		{0x00E0, OpClear, "CLS"},
		{0x00EE, OpReturn, "RET"},
		{0x0123, OpSys, "SYS $123"},
		{0x1ABC, OpJump, "JP $ABC"},
		{0x2456, OpCall, "CALL $456"},
		{0x3A12, OpSkipEqualByte, "SE VA, $12"},
		{0x4B34, OpSkipNotEqualByte, "SNE VB, $34"},
		{0x5120, OpSkipEqualRegister, "SE V1, V2"},
		{0x6C7F, OpLoadByte, "LD VC, $7F"},
		{0x7D01, OpAddByte, "ADD VD, $01"},
		{0x8120, OpLoadRegister, "LD V1, V2"},
		{0x8121, OpOr, "OR V1, V2"},
		{0x8122, OpAnd, "AND V1, V2"},
		{0x8123, OpXor, "XOR V1, V2"},
		{0x8124, OpAddRegister, "ADD V1, V2"},
		{0x8125, OpSub, "SUB V1, V2"},
		{0x8126, OpShiftRight, "SHR V1"},
		{0x8127, OpSubReverse, "SUBN V1, V2"},
		{0x812E, OpShiftLeft, "SHL V1"},
		{0x9120, OpSkipNotEqualRegister, "SNE V1, V2"},
		{0xA2F0, OpLoadIndex, "LD I, $2F0"},
		{0xB300, OpJumpOffset, "JP V0, $300"},
		{0xC50F, OpRandom, "RND V5, $0F"},
		{0xD125, OpDraw, "DRW V1, V2, $5"},
		{0xE69E, OpSkipKeyPressed, "SKP V6"},
		{0xE6A1, OpSkipKeyNotPressed, "SKNP V6"},
		{0xF707, OpLoadDelay, "LD V7, DT"},
		{0xF70A, OpWaitKey, "LD V7, K"},
		{0xF715, OpSetDelay, "LD DT, V7"},
		{0xF718, OpSetSound, "LD ST, V7"},
		{0xF71E, OpAddIndex, "ADD I, V7"},
		{0xF729, OpLoadFont, "LD F, V7"},
		{0xF733, OpStoreBCD, "LD B, V7"},
		{0xF755, OpStoreRegisters, "LD [I], V7"},
		{0xF765, OpLoadRegisters, "LD V7, [I]"},
	}

	seen := map[Op]bool{}
	for _, tt := range tests {
		t.Run(tt.op.Pattern(), func(t *testing.T) {
			ins, err := Decode(tt.raw)
			assert.NoError(t, err)
			assert.Equal(t, tt.op, ins.Op)
			assert.Equal(t, tt.raw, ins.Raw)
			assert.Equal(t, tt.expected, ins.String())
		})
		seen[tt.op] = true
	}
	assert.Equal(t, int(opCount), len(seen))
}

func TestDecodeFields(t *testing.T) {
	ins, err := Decode(0xD7A3)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x7), ins.X)
	assert.Equal(t, uint8(0xA), ins.Y)
	assert.Equal(t, uint8(0x3), ins.N)
	assert.Equal(t, uint8(0xA3), ins.NN)
	assert.Equal(t, uint16(0x7A3), ins.NNN)
}

func TestDecodeUnknown(t *testing.T) {
	for _, raw := range []uint16{0x8008, 0x800F, 0xE000, 0xE09F, 0xF000, 0xF066, 0xFFFF} {
		_, err := Decode(raw)
		var opErr *UnimplementedOpcodeError
		assert.True(t, errors.As(err, &opErr))
		assert.Equal(t, raw, opErr.Opcode())
	}
}

func TestOpInstruction(t *testing.T) {
	assert.Nil(t, OpSys.Instruction())
	assert.Equal(t, chip8.JpInst, OpJump.Instruction())
	assert.Equal(t, chip8.JpInst, OpJumpOffset.Instruction())
	assert.Equal(t, chip8.DrwInst, OpDraw.Instruction())
	assert.Nil(t, opCount.Instruction())
	assert.Equal(t, "????", opCount.Pattern())
	assert.Equal(t, "8XY4", OpAddRegister.String())
}
