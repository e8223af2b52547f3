package cpu

import (
	"fmt"

	"github.com/valerio/go-chip8/chip8/bit"
)

// Operation identifies one of the canonical CHIP-8 instructions.
type Operation uint8

const (
	OpInvalid Operation = iota
	OpClear             // 00E0
	OpReturn            // 00EE
	OpJump              // 1NNN
	OpCall              // 2NNN
	OpSkipEqualImm      // 3XNN
	OpSkipNotEqualImm   // 4XNN
	OpSkipEqualReg      // 5XY0
	OpLoadImm           // 6XNN
	OpAddImm            // 7XNN
	OpLoadReg           // 8XY0
	OpOr                // 8XY1
	OpAnd               // 8XY2
	OpXor               // 8XY3
	OpAddReg            // 8XY4
	OpSub               // 8XY5
	OpShiftRight        // 8XY6
	OpSubN              // 8XY7
	OpShiftLeft         // 8XYE
	OpSkipNotEqualReg   // 9XY0
	OpLoadIndex         // ANNN
	OpJumpV0            // BNNN
	OpRandom            // CXNN
	OpDraw              // DXYN
	OpSkipKeyPressed    // EX9E
	OpSkipKeyNotPressed // EXA1
	OpLoadDelay         // FX07
	OpWaitKey           // FX0A
	OpSetDelay          // FX15
	OpSetSound          // FX18
	OpAddIndex          // FX1E
	OpLoadFont          // FX29
	OpStoreBCD          // FX33
	OpStoreRegisters    // FX55
	OpLoadRegisters     // FX65

	opCount
)

var operationNames = [opCount]string{
	OpInvalid:           "INVALID",
	OpClear:             "CLS",
	OpReturn:            "RET",
	OpJump:              "JP",
	OpCall:              "CALL",
	OpSkipEqualImm:      "SE",
	OpSkipNotEqualImm:   "SNE",
	OpSkipEqualReg:      "SE",
	OpLoadImm:           "LD",
	OpAddImm:            "ADD",
	OpLoadReg:           "LD",
	OpOr:                "OR",
	OpAnd:               "AND",
	OpXor:               "XOR",
	OpAddReg:            "ADD",
	OpSub:               "SUB",
	OpShiftRight:        "SHR",
	OpSubN:              "SUBN",
	OpShiftLeft:         "SHL",
	OpSkipNotEqualReg:   "SNE",
	OpLoadIndex:         "LD",
	OpJumpV0:            "JP",
	OpRandom:            "RND",
	OpDraw:              "DRW",
	OpSkipKeyPressed:    "SKP",
	OpSkipKeyNotPressed: "SKNP",
	OpLoadDelay:         "LD",
	OpWaitKey:           "LD",
	OpSetDelay:          "LD",
	OpSetSound:          "LD",
	OpAddIndex:          "ADD",
	OpLoadFont:          "LD",
	OpStoreBCD:          "LD",
	OpStoreRegisters:    "LD",
	OpLoadRegisters:     "LD",
}

// Mnemonic returns the assembler mnemonic of the operation.
func (op Operation) Mnemonic() string {
	if op >= opCount {
		return operationNames[OpInvalid]
	}
	return operationNames[op]
}

// Instruction is a decoded opcode. Only the fields relevant to Op are
// meaningful, the rest are still filled from the opcode nibbles.
type Instruction struct {
	Op  Operation
	Raw uint16
	X   uint8
	Y   uint8
	N   uint8
	NN  uint8
	NNN uint16
}

// Decode maps an opcode to its instruction. It has no side effects, the
// returned DecodeError has a zero Address that callers fill in.
func Decode(opcode uint16) (Instruction, error) {
	in := Instruction{
		Raw: opcode,
		X:   bit.Nibble(opcode, 2),
		Y:   bit.Nibble(opcode, 1),
		N:   bit.Nibble(opcode, 0),
		NN:  bit.Low(opcode),
		NNN: bit.Addr12(opcode),
	}
	in.Op = operationFor(in)
	if in.Op == OpInvalid {
		return in, &DecodeError{Opcode: opcode}
	}
	return in, nil
}

func operationFor(in Instruction) Operation {
	switch bit.Nibble(in.Raw, 3) {
	case 0x0:
		switch in.Raw {
		case 0x00E0:
			return OpClear
		case 0x00EE:
			return OpReturn
		}
	case 0x1:
		return OpJump
	case 0x2:
		return OpCall
	case 0x3:
		return OpSkipEqualImm
	case 0x4:
		return OpSkipNotEqualImm
	case 0x5:
		if in.N == 0 {
			return OpSkipEqualReg
		}
	case 0x6:
		return OpLoadImm
	case 0x7:
		return OpAddImm
	case 0x8:
		return arithmeticOps[in.N]
	case 0x9:
		if in.N == 0 {
			return OpSkipNotEqualReg
		}
	case 0xA:
		return OpLoadIndex
	case 0xB:
		return OpJumpV0
	case 0xC:
		return OpRandom
	case 0xD:
		return OpDraw
	case 0xE:
		switch in.NN {
		case 0x9E:
			return OpSkipKeyPressed
		case 0xA1:
			return OpSkipKeyNotPressed
		}
	case 0xF:
		return miscOps[in.NN]
	}
	return OpInvalid
}

// arithmeticOps is indexed by the low nibble of 8XYN opcodes.
var arithmeticOps = [16]Operation{
	0x0: OpLoadReg,
	0x1: OpOr,
	0x2: OpAnd,
	0x3: OpXor,
	0x4: OpAddReg,
	0x5: OpSub,
	0x6: OpShiftRight,
	0x7: OpSubN,
	0xE: OpShiftLeft,
}

// miscOps is indexed by the low byte of FXNN opcodes.
var miscOps = map[uint8]Operation{
	0x07: OpLoadDelay,
	0x0A: OpWaitKey,
	0x15: OpSetDelay,
	0x18: OpSetSound,
	0x1E: OpAddIndex,
	0x29: OpLoadFont,
	0x33: OpStoreBCD,
	0x55: OpStoreRegisters,
	0x65: OpLoadRegisters,
}

// String renders the instruction in the usual assembler syntax,
// e.g. "LD V0, #05" or "DRW V1, V2, 5".
func (in Instruction) String() string {
	m := in.Op.Mnemonic()
	switch in.Op {
	case OpClear, OpReturn:
		return m
	case OpJump, OpCall:
		return fmt.Sprintf("%s #%03X", m, in.NNN)
	case OpLoadIndex:
		return fmt.Sprintf("%s I, #%03X", m, in.NNN)
	case OpJumpV0:
		return fmt.Sprintf("%s V0, #%03X", m, in.NNN)
	case OpSkipEqualImm, OpSkipNotEqualImm, OpLoadImm, OpAddImm, OpRandom:
		return fmt.Sprintf("%s V%X, #%02X", m, in.X, in.NN)
	case OpSkipEqualReg, OpSkipNotEqualReg, OpLoadReg, OpOr, OpAnd, OpXor,
		OpAddReg, OpSub, OpShiftRight, OpSubN, OpShiftLeft:
		return fmt.Sprintf("%s V%X, V%X", m, in.X, in.Y)
	case OpDraw:
		return fmt.Sprintf("%s V%X, V%X, %d", m, in.X, in.Y, in.N)
	case OpSkipKeyPressed, OpSkipKeyNotPressed:
		return fmt.Sprintf("%s V%X", m, in.X)
	case OpLoadDelay:
		return fmt.Sprintf("%s V%X, DT", m, in.X)
	case OpWaitKey:
		return fmt.Sprintf("%s V%X, K", m, in.X)
	case OpSetDelay:
		return fmt.Sprintf("%s DT, V%X", m, in.X)
	case OpSetSound:
		return fmt.Sprintf("%s ST, V%X", m, in.X)
	case OpAddIndex:
		return fmt.Sprintf("%s I, V%X", m, in.X)
	case OpLoadFont:
		return fmt.Sprintf("%s F, V%X", m, in.X)
	case OpStoreBCD:
		return fmt.Sprintf("%s B, V%X", m, in.X)
	case OpStoreRegisters:
		return fmt.Sprintf("%s [I], V%X", m, in.X)
	case OpLoadRegisters:
		return fmt.Sprintf("%s V%X, [I]", m, in.X)
	}
	return fmt.Sprintf("DW #%04X", in.Raw)
}
