//go:build sdl2

package sdl2

import (
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	DebugWindowWidth  = 560
	DebugWindowHeight = 320
	DebugWindowTitle  = "CHIP-8 Debug"

	keyCellSize    = 40
	registerBarW   = 14
	registerBarMax = 128
	memoryCellSize = 12
	memoryPerRow   = 16
)

// keypadLayout lists keys in the order they appear on the hex keypad.
var keypadLayout = [16]uint8{
	0x1, 0x2, 0x3, 0xC,
	0x4, 0x5, 0x6, 0xD,
	0x7, 0x8, 0x9, 0xE,
	0xA, 0x0, 0xB, 0xF,
}

// DebugWindow draws machine state as shapes: the keypad, register and
// timer bars, the stack depth and the memory around the program counter.
type DebugWindow struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	visible  bool
}

func NewDebugWindow() *DebugWindow {
	return &DebugWindow{}
}

func (dw *DebugWindow) Init() error {
	window, err := sdl.CreateWindow(
		DebugWindowTitle,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		DebugWindowWidth,
		DebugWindowHeight,
		sdl.WINDOW_HIDDEN,
	)
	if err != nil {
		return err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		return err
	}

	dw.window = window
	dw.renderer = renderer
	return nil
}

func (dw *DebugWindow) SetVisible(visible bool) {
	if dw.window == nil {
		return
	}
	dw.visible = visible
	if visible {
		dw.window.Show()
	} else {
		dw.window.Hide()
	}
}

func (dw *DebugWindow) IsVisible() bool {
	return dw.visible
}

func (dw *DebugWindow) IsInitialized() bool {
	return dw.window != nil
}

// Owns reports whether an SDL window event targets the debug window.
func (dw *DebugWindow) Owns(windowID uint32) bool {
	if dw.window == nil {
		return false
	}
	id, err := dw.window.GetID()
	return err == nil && id == windowID
}

func (dw *DebugWindow) Render(data *debug.Data) {
	if !dw.visible || data == nil || data.CPU == nil {
		return
	}

	dw.renderer.SetDrawColor(32, 32, 32, 255)
	dw.renderer.Clear()

	dw.renderKeypad(data.Keys)
	dw.renderRegisters(data.CPU)
	dw.renderStack(data.CPU)
	dw.renderMemory(data.Memory, data.CPU.PC, data.CPU.I)

	if data.Err != nil {
		// red frame around the window when the machine halted on an error
		dw.renderer.SetDrawColor(220, 40, 40, 255)
		dw.renderer.DrawRect(&sdl.Rect{X: 0, Y: 0, W: DebugWindowWidth, H: DebugWindowHeight})
	}

	dw.renderer.Present()
}

func (dw *DebugWindow) renderKeypad(keys [16]bool) {
	for i, key := range keypadLayout {
		rect := &sdl.Rect{
			X: int32(10 + (i%4)*(keyCellSize+4)),
			Y: int32(10 + (i/4)*(keyCellSize+4)),
			W: keyCellSize,
			H: keyCellSize,
		}
		if keys[key] {
			dw.renderer.SetDrawColor(100, 200, 100, 255)
		} else {
			dw.renderer.SetDrawColor(64, 64, 64, 255)
		}
		dw.renderer.FillRect(rect)
	}
}

func (dw *DebugWindow) renderRegisters(cpu *debug.CPUState) {
	const baseX, baseY = 200, 10 + registerBarMax

	bar := func(i int, value uint8) {
		h := int32(value) * registerBarMax / 255
		dw.renderer.FillRect(&sdl.Rect{
			X: int32(baseX + i*(registerBarW+2)),
			Y: baseY - h,
			W: registerBarW,
			H: h,
		})
	}

	dw.renderer.SetDrawColor(80, 140, 220, 255)
	for i, value := range cpu.V {
		if i == 0xF {
			dw.renderer.SetDrawColor(220, 160, 60, 255)
		}
		bar(i, value)
	}

	dw.renderer.SetDrawColor(200, 200, 80, 255)
	bar(17, cpu.DelayTimer)
	dw.renderer.SetDrawColor(220, 90, 90, 255)
	bar(18, cpu.SoundTimer)
}

func (dw *DebugWindow) renderStack(cpu *debug.CPUState) {
	for i := 0; i < 16; i++ {
		if i < int(cpu.SP) {
			dw.renderer.SetDrawColor(180, 120, 220, 255)
		} else {
			dw.renderer.SetDrawColor(64, 64, 64, 255)
		}
		dw.renderer.FillRect(&sdl.Rect{X: int32(200 + i*16), Y: 150, W: 14, H: 8})
	}
}

func (dw *DebugWindow) renderMemory(snapshot *debug.MemorySnapshot, pc, index uint16) {
	if snapshot == nil {
		return
	}
	const baseX, baseY = 10, 190

	for i, b := range snapshot.Bytes {
		address := snapshot.StartAddr + uint16(i)
		rect := &sdl.Rect{
			X: int32(baseX + (i%memoryPerRow)*memoryCellSize),
			Y: int32(baseY + (i/memoryPerRow)*memoryCellSize),
			W: memoryCellSize - 1,
			H: memoryCellSize - 1,
		}
		dw.renderer.SetDrawColor(b, b, b, 255)
		dw.renderer.FillRect(rect)

		switch {
		case address == pc || address == pc+1:
			dw.renderer.SetDrawColor(220, 40, 40, 255)
			dw.renderer.DrawRect(rect)
		case address == index:
			dw.renderer.SetDrawColor(60, 120, 240, 255)
			dw.renderer.DrawRect(rect)
		}
	}
}

func (dw *DebugWindow) Cleanup() {
	if dw.renderer != nil {
		dw.renderer.Destroy()
		dw.renderer = nil
	}
	if dw.window != nil {
		dw.window.Destroy()
		dw.window = nil
	}
}
