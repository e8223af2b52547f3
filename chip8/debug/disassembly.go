package debug

import (
	"github.com/valerio/go-chip8/chip8/disasm"
)

type DisasmLine struct {
	Address     uint16
	Instruction string
	IsCurrent   bool
}

// DisasmBuffer holds pre-allocated buffers for disassembly lines
type DisasmBuffer struct {
	Lines    []DisasmLine
	AllLines []DisasmLine
}

func NewDisasmBuffer(maxLines int) *DisasmBuffer {
	return &DisasmBuffer{
		Lines:    make([]DisasmLine, 0, maxLines),
		AllLines: make([]DisasmLine, 0, maxLines*3),
	}
}

func CreateDisassembly(snapshot *MemorySnapshot, pc uint16, maxLines int) []DisasmLine {
	buf := NewDisasmBuffer(maxLines)
	return CreateDisassemblyWithBuffer(snapshot, pc, maxLines, buf)
}

// CreateDisassemblyWithBuffer disassembles the snapshot and returns at most
// maxLines lines centered on pc. Decoding starts on the same byte parity as
// pc so the current instruction is always aligned.
func CreateDisassemblyWithBuffer(snapshot *MemorySnapshot, pc uint16, maxLines int, buf *DisasmBuffer) []DisasmLine {
	if snapshot == nil || maxLines <= 0 {
		return nil
	}

	end := snapshot.StartAddr + uint16(len(snapshot.Bytes))
	pcInSnapshot := pc >= snapshot.StartAddr && pc < end

	buf.AllLines = buf.AllLines[:0]
	startOffset := 0
	if pcInSnapshot {
		startOffset = int(pc-snapshot.StartAddr) % disasm.InstructionSize
	}
	for i := startOffset; i < len(snapshot.Bytes); {
		address := snapshot.StartAddr + uint16(i)
		instruction, length := disasm.DisassembleBytes(snapshot.Bytes, i)
		buf.AllLines = append(buf.AllLines, DisasmLine{
			Address:     address,
			Instruction: instruction,
			IsCurrent:   address == pc,
		})
		i += length
	}

	if !pcInSnapshot {
		buf.Lines = buf.Lines[:0]
		limit := min(maxLines-1, len(buf.AllLines))
		buf.Lines = append(buf.Lines, buf.AllLines[:limit]...)
		buf.Lines = append(buf.Lines, DisasmLine{
			Address:     pc,
			Instruction: "[PC outside snapshot range]",
			IsCurrent:   true,
		})
		return buf.Lines
	}

	pcIndex := 0
	for i, line := range buf.AllLines {
		if line.IsCurrent {
			pcIndex = i
			break
		}
	}

	halfHeight := maxLines / 2
	startIdx := pcIndex - halfHeight
	endIdx := startIdx + maxLines
	if startIdx < 0 {
		startIdx = 0
		endIdx = maxLines
	}
	if endIdx > len(buf.AllLines) {
		endIdx = len(buf.AllLines)
		startIdx = max(endIdx-maxLines, 0)
	}

	buf.Lines = buf.Lines[:0]
	buf.Lines = append(buf.Lines, buf.AllLines[startIdx:endIdx]...)
	return buf.Lines
}
