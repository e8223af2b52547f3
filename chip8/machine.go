package chip8

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/valerio/go-chip8/chip8/addr"
	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

// Bytes of memory before and after PC included in debug snapshots.
const (
	debugMemoryBefore = 32
	debugMemorySize   = 96
)

// Machine is a complete CHIP-8 system: memory, CPU, display, keypad and
// timers, plus the debugger controls used by the frontends.
type Machine struct {
	mem    *memory.Memory
	cpu    *cpu.CPU
	fb     *video.FrameBuffer
	keypad *memory.Keypad
	timers memory.Timers
	bus    *Bus
	rom    *memory.ROM

	inputManager *input.Manager
	limiter      timing.Limiter

	instructionsPerFrame int
	frameCount           uint64
	debuggerState        debug.DebuggerState
	errLogged            bool
}

// New creates a machine with empty program memory.
func New(opts ...Option) *Machine {
	rom, _ := memory.NewROM(nil, "")
	return newMachine(rom, opts)
}

// NewWithROM creates a machine with the program loaded at 0x200.
func NewWithROM(data []byte, title string, opts ...Option) (*Machine, error) {
	rom, err := memory.NewROM(data, title)
	if err != nil {
		return nil, fmt.Errorf("failed to load ROM: %w", err)
	}
	return newMachine(rom, opts), nil
}

// NewWithFile creates a new machine and loads the file specified into it.
func NewWithFile(path string, opts ...Option) (*Machine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ROM %s: %w", path, err)
	}

	m, err := NewWithROM(data, memory.TitleFromPath(path), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Info("Loaded ROM", "title", m.rom.Title(), "bytes", m.rom.Size(), "crc32", fmt.Sprintf("%08X", m.rom.Checksum()))
	return m, nil
}

func newMachine(rom *memory.ROM, opts []Option) *Machine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Machine{
		mem:                  memory.New(),
		fb:                   video.NewFrameBuffer(),
		keypad:               memory.NewKeypad(),
		rom:                  rom,
		limiter:              cfg.limiter,
		instructionsPerFrame: timing.InstructionsPerFrame(cfg.clockSpeed),
	}
	m.fb.SetPalette(cfg.palette)
	m.mem.LoadROM(rom)
	m.bus = &Bus{Memory: m.mem, Frame: m.fb, Keypad: m.keypad, Timers: &m.timers}
	m.cpu = cpu.New(m.bus, cfg.cpuOpts...)

	m.inputManager = input.NewManager(m.keypad)
	m.setupInputHandlers()

	return m
}

func (m *Machine) setupInputHandlers() {
	m.inputManager.On(action.EmulatorPauseToggle, event.Press, m.togglePause)
	m.inputManager.On(action.EmulatorStepInstruction, event.Press, func() {
		m.debuggerState = debug.DebuggerStepInstruction
	})
	m.inputManager.On(action.EmulatorStepFrame, event.Press, func() {
		m.debuggerState = debug.DebuggerStepFrame
	})
	m.inputManager.On(action.EmulatorReset, event.Press, m.Reset)
}

func (m *Machine) togglePause() {
	if m.debuggerState == debug.DebuggerRunning {
		m.debuggerState = debug.DebuggerPaused
		slog.Info("Emulation paused", "pc", fmt.Sprintf("0x%03X", m.cpu.GetPC()))
	} else {
		m.debuggerState = debug.DebuggerRunning
		m.limiter.Reset()
		slog.Info("Emulation resumed")
	}
}

// Step executes a single instruction.
func (m *Machine) Step() (cpu.Status, error) {
	status, err := m.cpu.Step()
	if err != nil && !m.errLogged {
		m.errLogged = true
		m.logFatal(err)
	}
	return status, err
}

func (m *Machine) logFatal(err error) {
	attrs := []any{"error", err, "pc", fmt.Sprintf("0x%03X", m.cpu.GetPC())}
	if op := m.cpu.GetCurrentOpcode(); op != 0 {
		attrs = append(attrs, "opcode", fmt.Sprintf("%04X", op))
	}
	slog.Error("Machine halted", attrs...)
}

// TickTimers decrements the delay and sound timers, it must be called at
// 60 Hz.
func (m *Machine) TickTimers() {
	m.timers.Tick()
}

// RunUntilFrame runs one 60 Hz frame: a batch of instructions followed by
// a timer tick. Waiting for a key ends the batch early. Once the machine
// has halted every call returns the error that halted it.
func (m *Machine) RunUntilFrame() error {
	defer m.limiter.WaitForNextFrame()

	if m.cpu.State() == cpu.Halted {
		return m.cpu.Err()
	}

	switch m.debuggerState {
	case debug.DebuggerPaused:
		return nil
	case debug.DebuggerStepInstruction:
		m.debuggerState = debug.DebuggerPaused
		_, err := m.Step()
		return err
	case debug.DebuggerStepFrame:
		m.debuggerState = debug.DebuggerPaused
	}

	for i := 0; i < m.instructionsPerFrame; i++ {
		status, err := m.Step()
		if err != nil {
			return err
		}
		if status == cpu.StatusBlocked {
			break
		}
	}
	m.TickTimers()
	m.frameCount++
	return nil
}

// Reset restores the power-on state and reloads the ROM. Quirks and the
// debugger state are kept.
func (m *Machine) Reset() {
	*m.mem = *memory.New()
	m.mem.LoadROM(m.rom)
	m.fb.Clear()
	m.keypad.Reset()
	m.timers.Reset()
	m.cpu.Reset()
	m.frameCount = 0
	m.errLogged = false
	m.limiter.Reset()
	slog.Info("Machine reset", "title", m.rom.Title())
}

// HandleAction forwards a host action. Keypad actions update the keypad
// latch, the others drive the debugger.
func (m *Machine) HandleAction(act action.Action, pressed bool) {
	evt := event.Release
	if pressed {
		evt = event.Press
	}
	m.inputManager.Trigger(act, evt)
}

func (m *Machine) SoundActive() bool {
	return m.timers.SoundActive()
}

func (m *Machine) GetCurrentFrame() *video.FrameBuffer {
	return m.fb
}

func (m *Machine) ExtractDebugData() *debug.Data {
	pc := m.cpu.GetPC()
	start := addr.InterpreterStart
	if pc > debugMemoryBefore {
		start = pc - debugMemoryBefore
	}

	return &debug.Data{
		CPU: &debug.CPUState{
			V:            m.cpu.GetRegisters(),
			I:            m.cpu.GetI(),
			PC:           pc,
			SP:           m.cpu.GetSP(),
			Stack:        m.cpu.GetStack(),
			DelayTimer:   m.timers.Delay(),
			SoundTimer:   m.timers.Sound(),
			Opcode:       m.cpu.GetCurrentOpcode(),
			Instructions: m.cpu.GetInstructionCount(),
			State:        m.cpu.State().String(),
		},
		Memory: &debug.MemorySnapshot{
			StartAddr: start,
			Bytes:     m.mem.Snapshot(start, debugMemorySize),
		},
		Keys:          m.keypad.State(),
		DebuggerState: m.debuggerState,
		Title:         m.rom.Title(),
		Err:           m.cpu.Err(),
	}
}

func (m *Machine) SetFrameLimiter(limiter timing.Limiter) {
	if limiter == nil {
		m.limiter = timing.NewNoOpLimiter()
	} else {
		m.limiter = limiter
	}
}

func (m *Machine) CPU() *cpu.CPU                      { return m.cpu }
func (m *Machine) Memory() *memory.Memory             { return m.mem }
func (m *Machine) Keypad() *memory.Keypad             { return m.keypad }
func (m *Machine) Title() string                      { return m.rom.Title() }
func (m *Machine) GetFrameCount() uint64              { return m.frameCount }
func (m *Machine) GetInstructionCount() uint64        { return m.cpu.GetInstructionCount() }
func (m *Machine) InstructionsPerFrame() int          { return m.instructionsPerFrame }
func (m *Machine) DebuggerState() debug.DebuggerState { return m.debuggerState }
