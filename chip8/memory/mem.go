package memory

import (
	"github.com/valerio/go-chip8/chip8/addr"
	"github.com/valerio/go-chip8/chip8/bit"
)

// MaxROMSize is the largest program that fits between ProgramStart and the
// end of memory.
const MaxROMSize = addr.MemorySize - int(addr.ProgramStart)

// Memory is the flat 4K byte store of the machine.
//
//	0x000-0x1FF  interpreter area, font sprites at 0x000
//	0x200-0xFFF  program memory
type Memory struct {
	data [addr.MemorySize]byte
}

// New creates a memory unit with the font sprites written in the
// interpreter area and empty program memory.
func New() *Memory {
	m := &Memory{}
	copy(m.data[addr.FontStart:], fontSprites[:])
	return m
}

// LoadROM copies the ROM bytes verbatim at ProgramStart.
func (m *Memory) LoadROM(rom *ROM) {
	copy(m.data[addr.ProgramStart:], rom.data)
}

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) (byte, error) {
	if !addr.IsValid(address) {
		return 0, &BoundsError{Address: address, Kind: AccessRead}
	}
	return m.data[address], nil
}

// ReadWord returns the big-endian 16 bit word at [address, address+1],
// which is how opcodes are stored.
func (m *Memory) ReadWord(address uint16) (uint16, error) {
	if address >= addr.MemoryEnd {
		return 0, &BoundsError{Address: address, Kind: AccessRead}
	}
	return bit.Combine(m.data[address], m.data[address+1]), nil
}

// Write stores a byte at the given address. Writes to the interpreter area
// are rejected, programs only ever write to program memory.
func (m *Memory) Write(address uint16, value byte) error {
	if !addr.IsValid(address) {
		return &BoundsError{Address: address, Kind: AccessWrite}
	}
	if addr.IsReserved(address) {
		return &BoundsError{Address: address, Kind: AccessWrite, Reserved: true}
	}
	m.data[address] = value
	return nil
}

// Slice returns a copy of size bytes starting at address, or a bounds error
// if any of them falls outside memory.
func (m *Memory) Slice(address uint16, size int) ([]byte, error) {
	end := int(address) + size
	if !addr.IsValid(address) || end > addr.MemorySize {
		return nil, &BoundsError{Address: address, Kind: AccessRead}
	}
	out := make([]byte, size)
	copy(out, m.data[address:end])
	return out, nil
}

// Snapshot returns a copy of up to size bytes starting at address,
// truncated at the end of memory instead of failing.
func (m *Memory) Snapshot(address uint16, size int) []byte {
	if !addr.IsValid(address) || size <= 0 {
		return nil
	}
	end := int(address) + size
	if end > addr.MemorySize {
		end = addr.MemorySize
	}
	out := make([]byte, end-int(address))
	copy(out, m.data[address:end])
	return out
}
