package bit

// Combine combines two 8 bit values into a single 16 bit value.
// The high byte will be the most significant one.
func Combine(high, low uint8) uint16 {
	return (uint16(high) << 8) | uint16(low)
}

// CheckedAdd adds two 8 bit unsigned values and detects if an overflow happened.
func CheckedAdd(a, b uint8) (result uint8, overflow bool) {
	overflow = (uint16(a)+uint16(b))&0xFF00 != 0
	result = a + b
	return
}

// CheckedSub subtracts two 8 bit unsigned values and detects if a borrow happened.
func CheckedSub(a, b uint8) (result uint8, borrow bool) {
	borrow = b > a
	result = a - b
	return
}

// IsSet will check if the bit at the specified index is set to 1 or not.
func IsSet(index, value uint8) bool {
	return ((value >> index) & 1) == 1
}

// Low returns the low (LSB) part of a 16 bit number.
func Low(value uint16) uint8 {
	return uint8(value)
}

// High returns the high (MSB) part of a 16 bit number.
func High(value uint16) uint8 {
	return uint8(value >> 8)
}

// Nibble returns the 4 bit group at the given index of a 16 bit word,
// counting from the least significant nibble (index 0) to the most
// significant one (index 3).
// Example: Nibble(0xD123, 3) -> 0xD, Nibble(0xD123, 0) -> 0x3
func Nibble(value uint16, index uint8) uint8 {
	return uint8(value>>(index*4)) & 0x0F
}

// Addr12 returns the lowest 12 bits of a word, the address operand of
// jump, call and index-load opcodes.
func Addr12(value uint16) uint16 {
	return value & 0x0FFF
}

// BCD splits a byte into its hundreds, tens and units decimal digits.
func BCD(value uint8) (hundreds, tens, units uint8) {
	return value / 100, (value / 10) % 10, value % 10
}
