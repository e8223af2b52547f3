package disasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/memory"
)

func loadProgram(t *testing.T, program ...byte) *memory.Memory {
	t.Helper()
	rom, err := memory.NewROM(program, "disasm")
	require.NoError(t, err)
	mem := memory.New()
	mem.LoadROM(rom)
	return mem
}

func TestDisassembleAt(t *testing.T) {
	mem := loadProgram(t, 0x60, 0x05, 0x01, 0x23)

	line := DisassembleAt(0x200, mem)
	assert.Equal(t, Line{Address: 0x200, Opcode: 0x6005, Instruction: "LD V0, #05", Valid: true}, line)

	line = DisassembleAt(0x202, mem)
	assert.Equal(t, "DW #0123", line.Instruction)
	assert.False(t, line.Valid)

	line = DisassembleAt(0xFFF, mem)
	assert.Equal(t, "??", line.Instruction)
}

func TestDisassembleRange(t *testing.T) {
	mem := loadProgram(t, 0x00, 0xE0, 0xA2, 0x0A, 0xD0, 0x15, 0x12, 0x06)

	lines := DisassembleRange(0x200, 4, mem)

	require.Len(t, lines, 4)
	want := []string{"CLS", "LD I, #20A", "DRW V0, V1, 5", "JP #206"}
	for i, line := range lines {
		assert.Equal(t, uint16(0x200+i*2), line.Address)
		assert.Equal(t, want[i], line.Instruction)
	}
}

func TestDisassembleRange_StopsAtEndOfMemory(t *testing.T) {
	mem := memory.New()
	lines := DisassembleRange(0xFFA, 10, mem)
	assert.Len(t, lines, 3)
}

func TestDisassembleBytes(t *testing.T) {
	data := []byte{0x00, 0xEE, 0x7F}

	text, n := DisassembleBytes(data, 0)
	assert.Equal(t, "RET", text)
	assert.Equal(t, 2, n)

	text, n = DisassembleBytes(data, 2)
	assert.Equal(t, "DB #7F", text)
	assert.Equal(t, 1, n)
}

func TestFormatLine(t *testing.T) {
	line := Line{Address: 0x204, Opcode: 0x00E0, Instruction: "CLS"}
	assert.Equal(t, ">0x204: 00E0  CLS", FormatLine(line, true))
	assert.Equal(t, " 0x204: 00E0  CLS", FormatLine(line, false))
}
