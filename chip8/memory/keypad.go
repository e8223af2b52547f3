package memory

// Key is one of the 16 keys of the hex keypad, 0x0-0xF.
type Key uint8

// KeyCount is the number of keys on the hex keypad.
const KeyCount = 16

// Keypad is the input latch: the current pressed state of each key.
// It is written by the host input adapter and only sampled by the CPU,
// no events are queued.
type Keypad struct {
	pressed [KeyCount]bool
}

// NewKeypad creates a keypad with all keys released.
func NewKeypad() *Keypad {
	return &Keypad{}
}

// Press marks the key as held down.
func (k *Keypad) Press(key Key) {
	if key < KeyCount {
		k.pressed[key] = true
	}
}

// Release marks the key as released.
func (k *Keypad) Release(key Key) {
	if key < KeyCount {
		k.pressed[key] = false
	}
}

// IsPressed reports whether the key is currently held down.
// Only the low nibble of key is used, as the instructions that read the
// keypad take the key number from a full 8 bit register.
func (k *Keypad) IsPressed(key Key) bool {
	return k.pressed[key&0x0F]
}

// State returns a copy of the pressed state of every key.
func (k *Keypad) State() [KeyCount]bool {
	return k.pressed
}

// Reset releases all keys.
func (k *Keypad) Reset() {
	k.pressed = [KeyCount]bool{}
}
