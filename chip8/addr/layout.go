package addr

// memory map
const (
	// Interpreter area start. Holds the font sprites, nothing else is
	// placed here by this interpreter.
	InterpreterStart uint16 = 0x000
	// Font sprites for the hex digits 0-F, 5 bytes each.
	FontStart uint16 = 0x000
	// First address of program memory, ROMs are loaded here.
	ProgramStart uint16 = 0x200
	// Last addressable byte.
	MemoryEnd uint16 = 0xFFF
	// Total addressable memory in bytes.
	MemorySize = int(MemoryEnd) + 1
)

// IsReserved reports whether the address belongs to the interpreter area,
// which programs are not allowed to write to.
func IsReserved(address uint16) bool {
	return address < ProgramStart
}

// IsValid reports whether the address is inside the 4K address space.
func IsValid(address uint16) bool {
	return address <= MemoryEnd
}
