package cpu

import (
	"math/rand"
	"time"

	"github.com/valerio/go-chip8/chip8/addr"
	"github.com/valerio/go-chip8/chip8/memory"
)

// Bus provides the interface for component communication
type Bus interface {
	Read(address uint16) (byte, error)
	Write(address uint16, value byte) error
	ReadWord(address uint16) (uint16, error)

	ClearScreen()
	DrawSprite(x, y byte, sprite []byte) bool

	KeyPressed(key memory.Key) bool

	Delay() uint8
	SetDelay(value uint8)
	SetSound(value uint8)
}

// StackDepth is the number of return addresses the call stack can hold.
const StackDepth = 16

// State is the execution sub-state of the CPU.
type State uint8

const (
	Running State = iota
	// AwaitingKey means FX0A is waiting for a key to go down. Keys already
	// held when the wait began must be released first.
	AwaitingKey
	// Halted means a fatal error occurred, the CPU will not run again
	// until reset.
	Halted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case AwaitingKey:
		return "awaiting key"
	case Halted:
		return "halted"
	}
	return "unknown"
}

// Status is the outcome of a single Step.
type Status uint8

const (
	// StatusExecuted means an instruction ran, or a pending key wait completed.
	StatusExecuted Status = iota
	// StatusBlocked means the CPU is waiting for a key and did nothing.
	StatusBlocked
	// StatusHalted means the CPU stopped on a fatal error.
	StatusHalted
)

// CPU holds the register file and call stack of the machine.
type CPU struct {
	// registers
	v     [16]uint8
	i     uint16
	pc    uint16
	sp    uint8
	stack [StackDepth]uint16

	// metadata
	state         State
	waitRegister  uint8
	heldAtWait    [memory.KeyCount]bool
	currentOpcode uint16
	instructions  uint64
	err           error

	quirks Quirks
	rng    *rand.Rand

	bus Bus
}

// New returns a CPU ready to run a program loaded at ProgramStart.
func New(bus Bus, opts ...Option) *CPU {
	cpu := &CPU{
		bus: bus,
		pc:  addr.ProgramStart,
	}
	for _, opt := range opts {
		opt(cpu)
	}
	if cpu.rng == nil {
		cpu.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return cpu
}

// Reset restores the power-on register state, keeping quirks and the
// random source.
func (c *CPU) Reset() {
	c.v = [16]uint8{}
	c.i = 0
	c.pc = addr.ProgramStart
	c.sp = 0
	c.stack = [StackDepth]uint16{}
	c.state = Running
	c.waitRegister = 0
	c.heldAtWait = [memory.KeyCount]bool{}
	c.currentOpcode = 0
	c.instructions = 0
	c.err = nil
}

// Step runs one fetch-decode-execute cycle.
//
// While a key wait is pending it only samples the keypad. Once halted it
// keeps returning the error that stopped it.
func (c *CPU) Step() (Status, error) {
	switch c.state {
	case Halted:
		return StatusHalted, c.err
	case AwaitingKey:
		key, ok := c.newlyPressedKey()
		if !ok {
			return StatusBlocked, nil
		}
		c.v[c.waitRegister] = uint8(key)
		c.state = Running
		return StatusExecuted, nil
	}

	address := c.pc
	opcode, err := c.bus.ReadWord(address)
	if err != nil {
		return c.halt(err)
	}
	c.currentOpcode = opcode
	c.pc += 2

	instruction, err := Decode(opcode)
	if err != nil {
		if decodeErr, ok := err.(*DecodeError); ok {
			decodeErr.Address = address
		}
		return c.halt(err)
	}

	if err := handlers[instruction.Op](c, instruction); err != nil {
		return c.halt(&ExecError{Address: address, Opcode: opcode, Err: err})
	}
	c.instructions++

	if c.state == AwaitingKey {
		return StatusBlocked, nil
	}
	return StatusExecuted, nil
}

// newlyPressedKey returns the lowest key that went down since the wait
// began. A key held at that moment is forgotten once it is released.
func (c *CPU) newlyPressedKey() (memory.Key, bool) {
	var (
		first memory.Key
		found bool
	)
	for k := memory.Key(0); k < memory.KeyCount; k++ {
		if !c.bus.KeyPressed(k) {
			c.heldAtWait[k] = false
			continue
		}
		if !found && !c.heldAtWait[k] {
			first, found = k, true
		}
	}
	return first, found
}

func (c *CPU) halt(err error) (Status, error) {
	c.state = Halted
	c.err = err
	return StatusHalted, err
}

// Debug getter methods for register display
func (c *CPU) GetV(index uint8) uint8         { return c.v[index&0x0F] }
func (c *CPU) GetRegisters() [16]uint8        { return c.v }
func (c *CPU) GetI() uint16                   { return c.i }
func (c *CPU) GetPC() uint16                  { return c.pc }
func (c *CPU) GetSP() uint8                   { return c.sp }
func (c *CPU) GetCurrentOpcode() uint16       { return c.currentOpcode }
func (c *CPU) GetInstructionCount() uint64    { return c.instructions }
func (c *CPU) State() State                   { return c.state }
func (c *CPU) Err() error                     { return c.err }
func (c *CPU) Quirks() Quirks                 { return c.quirks }
func (c *CPU) GetStack() []uint16             { return append([]uint16(nil), c.stack[:c.sp]...) }
func (c *CPU) GetWaitRegister() (uint8, bool) { return c.waitRegister, c.state == AwaitingKey }
