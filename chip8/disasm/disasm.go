package disasm

import (
	"fmt"

	"github.com/valerio/go-chip8/chip8/bit"
	"github.com/valerio/go-chip8/chip8/cpu"
)

// InstructionSize is the length in bytes of every CHIP-8 instruction.
const InstructionSize = 2

// WordReader is the read access the disassembler needs, satisfied by
// *memory.Memory.
type WordReader interface {
	ReadWord(address uint16) (uint16, error)
}

// Line represents a single disassembled instruction
type Line struct {
	Address     uint16
	Opcode      uint16
	Instruction string
	// Valid is false for words that do not decode, they are shown as data.
	Valid bool
}

// Format returns the assembler text for an opcode. Words that are not
// instructions are rendered as data, e.g. "DW #0123".
func Format(opcode uint16) (string, bool) {
	in, err := cpu.Decode(opcode)
	if err != nil {
		return fmt.Sprintf("DW #%04X", opcode), false
	}
	return in.String(), true
}

// DisassembleAt disassembles the instruction at the given program counter
func DisassembleAt(pc uint16, mem WordReader) Line {
	opcode, err := mem.ReadWord(pc)
	if err != nil {
		return Line{Address: pc, Instruction: "??"}
	}
	text, valid := Format(opcode)
	return Line{Address: pc, Opcode: opcode, Instruction: text, Valid: valid}
}

// DisassembleRange disassembles count instructions starting from the given
// address, stopping early at the end of memory.
func DisassembleRange(start uint16, count int, mem WordReader) []Line {
	lines := make([]Line, 0, count)
	for i := 0; i < count; i++ {
		address := start + uint16(i*InstructionSize)
		if address < start {
			break
		}
		if _, err := mem.ReadWord(address); err != nil {
			break
		}
		lines = append(lines, DisassembleAt(address, mem))
	}
	return lines
}

// DisassembleBytes disassembles the instruction at offset in a raw byte
// slice, returning its text and length. A trailing odd byte is shown as
// a single data byte.
func DisassembleBytes(data []byte, offset int) (string, int) {
	if offset < 0 || offset >= len(data) {
		return "??", 1
	}
	if offset+1 >= len(data) {
		return fmt.Sprintf("DB #%02X", data[offset]), 1
	}
	text, _ := Format(bit.Combine(data[offset], data[offset+1]))
	return text, InstructionSize
}

// FormatLine formats a disassembly line for display
func FormatLine(line Line, isCurrentPC bool) string {
	prefix := " "
	if isCurrentPC {
		prefix = ">"
	}
	return fmt.Sprintf("%s0x%03X: %04X  %s", prefix, line.Address, line.Opcode, line.Instruction)
}
