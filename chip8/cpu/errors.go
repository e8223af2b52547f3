package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrStackOverflow is returned by a call made with all 16 stack slots in use.
	ErrStackOverflow = errors.New("call stack overflow")
	// ErrStackUnderflow is returned by a return made with an empty stack.
	ErrStackUnderflow = errors.New("call stack underflow")
	// ErrIndexOutOfRange is returned by FX1E when I+Vx lies past the end of memory.
	ErrIndexOutOfRange = errors.New("index register out of range")
)

// DecodeError reports an opcode that does not map to any instruction.
// Native machine code calls (0NNN) are reported this way too.
type DecodeError struct {
	Opcode  uint16
	Address uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unknown opcode 0x%04X at 0x%04X", e.Opcode, e.Address)
}

// ExecError wraps a failure raised while executing the instruction at
// Address. Fetch failures are returned as the bare memory error.
type ExecError struct {
	Address uint16
	Opcode  uint16
	Err     error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("executing 0x%04X at 0x%04X: %v", e.Opcode, e.Address, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
