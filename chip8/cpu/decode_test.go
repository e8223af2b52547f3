package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		opcode   uint16
		op       Operation
		mnemonic string
	}{
		{name: "CLS", opcode: 0x00E0, op: OpClear, mnemonic: "CLS"},
		{name: "RET", opcode: 0x00EE, op: OpReturn, mnemonic: "RET"},
		{name: "JP", opcode: 0x1234, op: OpJump, mnemonic: "JP #234"},
		{name: "CALL", opcode: 0x2ABC, op: OpCall, mnemonic: "CALL #ABC"},
		{name: "SE imm", opcode: 0x3A42, op: OpSkipEqualImm, mnemonic: "SE VA, #42"},
		{name: "SNE imm", opcode: 0x4A42, op: OpSkipNotEqualImm, mnemonic: "SNE VA, #42"},
		{name: "SE reg", opcode: 0x5120, op: OpSkipEqualReg, mnemonic: "SE V1, V2"},
		{name: "LD imm", opcode: 0x6005, op: OpLoadImm, mnemonic: "LD V0, #05"},
		{name: "ADD imm", opcode: 0x7003, op: OpAddImm, mnemonic: "ADD V0, #03"},
		{name: "LD reg", opcode: 0x8120, op: OpLoadReg, mnemonic: "LD V1, V2"},
		{name: "OR", opcode: 0x8121, op: OpOr, mnemonic: "OR V1, V2"},
		{name: "AND", opcode: 0x8122, op: OpAnd, mnemonic: "AND V1, V2"},
		{name: "XOR", opcode: 0x8123, op: OpXor, mnemonic: "XOR V1, V2"},
		{name: "ADD reg", opcode: 0x8124, op: OpAddReg, mnemonic: "ADD V1, V2"},
		{name: "SUB", opcode: 0x8125, op: OpSub, mnemonic: "SUB V1, V2"},
		{name: "SHR", opcode: 0x8126, op: OpShiftRight, mnemonic: "SHR V1, V2"},
		{name: "SUBN", opcode: 0x8127, op: OpSubN, mnemonic: "SUBN V1, V2"},
		{name: "SHL", opcode: 0x812E, op: OpShiftLeft, mnemonic: "SHL V1, V2"},
		{name: "SNE reg", opcode: 0x9120, op: OpSkipNotEqualReg, mnemonic: "SNE V1, V2"},
		{name: "LD I", opcode: 0xA300, op: OpLoadIndex, mnemonic: "LD I, #300"},
		{name: "JP V0", opcode: 0xB300, op: OpJumpV0, mnemonic: "JP V0, #300"},
		{name: "RND", opcode: 0xC30F, op: OpRandom, mnemonic: "RND V3, #0F"},
		{name: "DRW", opcode: 0xD125, op: OpDraw, mnemonic: "DRW V1, V2, 5"},
		{name: "SKP", opcode: 0xE49E, op: OpSkipKeyPressed, mnemonic: "SKP V4"},
		{name: "SKNP", opcode: 0xE4A1, op: OpSkipKeyNotPressed, mnemonic: "SKNP V4"},
		{name: "LD Vx, DT", opcode: 0xF507, op: OpLoadDelay, mnemonic: "LD V5, DT"},
		{name: "LD Vx, K", opcode: 0xF50A, op: OpWaitKey, mnemonic: "LD V5, K"},
		{name: "LD DT, Vx", opcode: 0xF515, op: OpSetDelay, mnemonic: "LD DT, V5"},
		{name: "LD ST, Vx", opcode: 0xF518, op: OpSetSound, mnemonic: "LD ST, V5"},
		{name: "ADD I, Vx", opcode: 0xF51E, op: OpAddIndex, mnemonic: "ADD I, V5"},
		{name: "LD F, Vx", opcode: 0xF529, op: OpLoadFont, mnemonic: "LD F, V5"},
		{name: "LD B, Vx", opcode: 0xF533, op: OpStoreBCD, mnemonic: "LD B, V5"},
		{name: "LD [I], Vx", opcode: 0xF555, op: OpStoreRegisters, mnemonic: "LD [I], V5"},
		{name: "LD Vx, [I]", opcode: 0xF565, op: OpLoadRegisters, mnemonic: "LD V5, [I]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := Decode(tt.opcode)
			require.NoError(t, err)
			assert.Equal(t, tt.op, in.Op)
			assert.Equal(t, tt.opcode, in.Raw)
			assert.Equal(t, tt.mnemonic, in.String())
		})
	}
}

func TestDecode_Operands(t *testing.T) {
	in, err := Decode(0xD12F)
	require.NoError(t, err)

	assert.Equal(t, uint8(0x1), in.X)
	assert.Equal(t, uint8(0x2), in.Y)
	assert.Equal(t, uint8(0xF), in.N)
	assert.Equal(t, uint8(0x2F), in.NN)
	assert.Equal(t, uint16(0x12F), in.NNN)
}

func TestDecode_Invalid(t *testing.T) {
	for _, opcode := range []uint16{0x0000, 0x0123, 0x00E1, 0x5121, 0x812F, 0x8128, 0x9121, 0xE19F, 0xF1FF, 0xF10B} {
		in, err := Decode(opcode)

		var decodeErr *DecodeError
		require.True(t, errors.As(err, &decodeErr), "opcode %04X", opcode)
		assert.Equal(t, opcode, decodeErr.Opcode)
		assert.Equal(t, OpInvalid, in.Op)
		assert.Contains(t, in.String(), "DW #")
	}
}

// Every operation must be reachable from the dispatch table.
func TestHandlersCoverAllOperations(t *testing.T) {
	for op := Operation(0); op < opCount; op++ {
		assert.NotNil(t, handlers[op], "operation %d", op)
		assert.NotEmpty(t, op.Mnemonic())
	}
}
