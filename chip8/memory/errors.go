package memory

import (
	"errors"
	"fmt"
)

// ErrROMTooLarge is returned when a ROM does not fit in program memory.
var ErrROMTooLarge = errors.New("rom does not fit in program memory")

// AccessKind tells which operation triggered a bounds error.
type AccessKind uint8

const (
	AccessRead AccessKind = iota
	AccessWrite
)

func (k AccessKind) String() string {
	if k == AccessWrite {
		return "write"
	}
	return "read"
}

// BoundsError reports an access outside of the address space, or a write
// into the reserved interpreter area.
type BoundsError struct {
	Address  uint16
	Kind     AccessKind
	Reserved bool
}

func (e *BoundsError) Error() string {
	if e.Reserved {
		return fmt.Sprintf("%s to reserved interpreter area at 0x%04X", e.Kind, e.Address)
	}
	return fmt.Sprintf("%s out of bounds at 0x%04X", e.Kind, e.Address)
}
