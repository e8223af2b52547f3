package chip8

import (
	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/video"
)

// Bus connects the CPU to the rest of the machine.
type Bus struct {
	Memory *memory.Memory
	Frame  *video.FrameBuffer
	Keypad *memory.Keypad
	Timers *memory.Timers
}

var _ cpu.Bus = (*Bus)(nil)

func (b *Bus) Read(address uint16) (byte, error) {
	return b.Memory.Read(address)
}

func (b *Bus) Write(address uint16, value byte) error {
	return b.Memory.Write(address, value)
}

func (b *Bus) ReadWord(address uint16) (uint16, error) {
	return b.Memory.ReadWord(address)
}

func (b *Bus) ClearScreen() {
	b.Frame.Clear()
}

func (b *Bus) DrawSprite(x, y byte, sprite []byte) bool {
	return b.Frame.DrawSprite(x, y, sprite)
}

func (b *Bus) KeyPressed(key memory.Key) bool {
	return b.Keypad.IsPressed(key)
}

func (b *Bus) Delay() uint8 {
	return b.Timers.Delay()
}

func (b *Bus) SetDelay(value uint8) {
	b.Timers.SetDelay(value)
}

func (b *Bus) SetSound(value uint8) {
	b.Timers.SetSound(value)
}
