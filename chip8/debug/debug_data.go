package debug

// CPUState contains all CPU register information for debugging
type CPUState struct {
	V     [16]uint8
	I     uint16
	PC    uint16
	SP    uint8
	Stack []uint16

	DelayTimer uint8
	SoundTimer uint8

	Opcode       uint16
	Instructions uint64
	State        string
}

// MemorySnapshot contains a snapshot of memory for disassembly
type MemorySnapshot struct {
	StartAddr uint16
	Bytes     []uint8
}

// DebuggerState represents the current debugger state
type DebuggerState int

const (
	DebuggerRunning DebuggerState = iota
	DebuggerPaused
	DebuggerStepInstruction
	DebuggerStepFrame
)

func (s DebuggerState) String() string {
	switch s {
	case DebuggerRunning:
		return "RUNNING"
	case DebuggerPaused:
		return "PAUSED"
	case DebuggerStepInstruction:
		return "STEP"
	case DebuggerStepFrame:
		return "FRAME"
	}
	return "UNKNOWN"
}

// Data contains all debug information needed by debug displays
type Data struct {
	CPU           *CPUState
	Memory        *MemorySnapshot
	Keys          [16]bool
	DebuggerState DebuggerState
	Title         string
	// Err is the fatal error that halted the machine, if any.
	Err error
}
