package cpu

import (
	"github.com/valerio/go-chip8/chip8/addr"
	"github.com/valerio/go-chip8/chip8/bit"
	"github.com/valerio/go-chip8/chip8/memory"
)

type handler func(*CPU, Instruction) error

// handlers is the dispatch table, indexed by Operation.
var handlers = [opCount]handler{
	OpInvalid:           invalid,
	OpClear:             clearScreen,
	OpReturn:            ret,
	OpJump:              jump,
	OpCall:              call,
	OpSkipEqualImm:      skipEqualImm,
	OpSkipNotEqualImm:   skipNotEqualImm,
	OpSkipEqualReg:      skipEqualReg,
	OpLoadImm:           loadImm,
	OpAddImm:            addImm,
	OpLoadReg:           loadReg,
	OpOr:                or,
	OpAnd:               and,
	OpXor:               xor,
	OpAddReg:            addReg,
	OpSub:               sub,
	OpShiftRight:        shiftRight,
	OpSubN:              subN,
	OpShiftLeft:         shiftLeft,
	OpSkipNotEqualReg:   skipNotEqualReg,
	OpLoadIndex:         loadIndex,
	OpJumpV0:            jumpV0,
	OpRandom:            random,
	OpDraw:              draw,
	OpSkipKeyPressed:    skipKeyPressed,
	OpSkipKeyNotPressed: skipKeyNotPressed,
	OpLoadDelay:         loadDelay,
	OpWaitKey:           waitKey,
	OpSetDelay:          setDelay,
	OpSetSound:          setSound,
	OpAddIndex:          addIndex,
	OpLoadFont:          loadFont,
	OpStoreBCD:          storeBCD,
	OpStoreRegisters:    storeRegisters,
	OpLoadRegisters:     loadRegisters,
}

func invalid(c *CPU, in Instruction) error {
	return &DecodeError{Opcode: in.Raw, Address: c.pc - 2}
}

func (c *CPU) push(address uint16) error {
	if int(c.sp) >= StackDepth {
		return ErrStackOverflow
	}
	c.stack[c.sp] = address
	c.sp++
	return nil
}

func (c *CPU) pop() (uint16, error) {
	if c.sp == 0 {
		return 0, ErrStackUnderflow
	}
	c.sp--
	return c.stack[c.sp], nil
}

// skipIf jumps over the next instruction when cond holds.
func (c *CPU) skipIf(cond bool) {
	if cond {
		c.pc += 2
	}
}

// setWithFlag writes the result to Vx first and the flag to VF last, so
// when X is F the flag is what remains.
func (c *CPU) setWithFlag(x, result uint8, flag bool) {
	c.v[x] = result
	if flag {
		c.v[0xF] = 1
	} else {
		c.v[0xF] = 0
	}
}

// 00E0: CLS
func clearScreen(c *CPU, _ Instruction) error {
	c.bus.ClearScreen()
	return nil
}

// 00EE: RET
func ret(c *CPU, _ Instruction) error {
	address, err := c.pop()
	if err != nil {
		return err
	}
	c.pc = address
	return nil
}

// 1NNN: JP addr
func jump(c *CPU, in Instruction) error {
	c.pc = in.NNN
	return nil
}

// 2NNN: CALL addr
func call(c *CPU, in Instruction) error {
	if err := c.push(c.pc); err != nil {
		return err
	}
	c.pc = in.NNN
	return nil
}

// 3XNN: SE Vx, byte
func skipEqualImm(c *CPU, in Instruction) error {
	c.skipIf(c.v[in.X] == in.NN)
	return nil
}

// 4XNN: SNE Vx, byte
func skipNotEqualImm(c *CPU, in Instruction) error {
	c.skipIf(c.v[in.X] != in.NN)
	return nil
}

// 5XY0: SE Vx, Vy
func skipEqualReg(c *CPU, in Instruction) error {
	c.skipIf(c.v[in.X] == c.v[in.Y])
	return nil
}

// 9XY0: SNE Vx, Vy
func skipNotEqualReg(c *CPU, in Instruction) error {
	c.skipIf(c.v[in.X] != c.v[in.Y])
	return nil
}

// 6XNN: LD Vx, byte
func loadImm(c *CPU, in Instruction) error {
	c.v[in.X] = in.NN
	return nil
}

// 7XNN: ADD Vx, byte. Does not touch VF.
func addImm(c *CPU, in Instruction) error {
	c.v[in.X] += in.NN
	return nil
}

// 8XY0: LD Vx, Vy
func loadReg(c *CPU, in Instruction) error {
	c.v[in.X] = c.v[in.Y]
	return nil
}

func (c *CPU) logic(in Instruction, result uint8) {
	c.v[in.X] = result
	if c.quirks.LogicResetsVF {
		c.v[0xF] = 0
	}
}

// 8XY1: OR Vx, Vy
func or(c *CPU, in Instruction) error {
	c.logic(in, c.v[in.X]|c.v[in.Y])
	return nil
}

// 8XY2: AND Vx, Vy
func and(c *CPU, in Instruction) error {
	c.logic(in, c.v[in.X]&c.v[in.Y])
	return nil
}

// 8XY3: XOR Vx, Vy
func xor(c *CPU, in Instruction) error {
	c.logic(in, c.v[in.X]^c.v[in.Y])
	return nil
}

// 8XY4: ADD Vx, Vy. VF = carry.
func addReg(c *CPU, in Instruction) error {
	result, carry := bit.CheckedAdd(c.v[in.X], c.v[in.Y])
	c.setWithFlag(in.X, result, carry)
	return nil
}

// 8XY5: SUB Vx, Vy. VF = not borrow.
func sub(c *CPU, in Instruction) error {
	result, borrow := bit.CheckedSub(c.v[in.X], c.v[in.Y])
	c.setWithFlag(in.X, result, !borrow)
	return nil
}

// 8XY7: SUBN Vx, Vy. Vx = Vy - Vx, VF = not borrow.
func subN(c *CPU, in Instruction) error {
	result, borrow := bit.CheckedSub(c.v[in.Y], c.v[in.X])
	c.setWithFlag(in.X, result, !borrow)
	return nil
}

func (c *CPU) shiftSource(in Instruction) uint8 {
	if c.quirks.ShiftUsesVy {
		return c.v[in.Y]
	}
	return c.v[in.X]
}

// 8XY6: SHR Vx {, Vy}. VF = bit shifted out.
func shiftRight(c *CPU, in Instruction) error {
	value := c.shiftSource(in)
	c.setWithFlag(in.X, value>>1, bit.IsSet(0, value))
	return nil
}

// 8XYE: SHL Vx {, Vy}. VF = bit shifted out.
func shiftLeft(c *CPU, in Instruction) error {
	value := c.shiftSource(in)
	c.setWithFlag(in.X, value<<1, bit.IsSet(7, value))
	return nil
}

// ANNN: LD I, addr
func loadIndex(c *CPU, in Instruction) error {
	c.i = in.NNN
	return nil
}

// BNNN: JP V0, addr
func jumpV0(c *CPU, in Instruction) error {
	target := uint32(in.NNN) + uint32(c.v[0])
	if target > uint32(addr.MemoryEnd) {
		return &memory.BoundsError{Address: uint16(target), Kind: memory.AccessRead}
	}
	c.pc = uint16(target)
	return nil
}

// CXNN: RND Vx, byte
func random(c *CPU, in Instruction) error {
	c.v[in.X] = uint8(c.rng.Intn(256)) & in.NN
	return nil
}

// DXYN: DRW Vx, Vy, nibble. VF = collision.
func draw(c *CPU, in Instruction) error {
	sprite := make([]byte, in.N)
	for row := range sprite {
		address, err := c.indexAddress(row, memory.AccessRead)
		if err != nil {
			return err
		}
		b, err := c.bus.Read(address)
		if err != nil {
			return err
		}
		sprite[row] = b
	}
	c.v[0xF] = 0
	if c.bus.DrawSprite(c.v[in.X], c.v[in.Y], sprite) {
		c.v[0xF] = 1
	}
	return nil
}

// EX9E: SKP Vx
func skipKeyPressed(c *CPU, in Instruction) error {
	c.skipIf(c.bus.KeyPressed(memory.Key(c.v[in.X] & 0x0F)))
	return nil
}

// EXA1: SKNP Vx
func skipKeyNotPressed(c *CPU, in Instruction) error {
	c.skipIf(!c.bus.KeyPressed(memory.Key(c.v[in.X] & 0x0F)))
	return nil
}

// FX07: LD Vx, DT
func loadDelay(c *CPU, in Instruction) error {
	c.v[in.X] = c.bus.Delay()
	return nil
}

// FX0A: LD Vx, K. The key is sampled by Step on the following calls.
func waitKey(c *CPU, in Instruction) error {
	c.state = AwaitingKey
	c.waitRegister = in.X
	for k := memory.Key(0); k < memory.KeyCount; k++ {
		c.heldAtWait[k] = c.bus.KeyPressed(k)
	}
	return nil
}

// FX15: LD DT, Vx
func setDelay(c *CPU, in Instruction) error {
	c.bus.SetDelay(c.v[in.X])
	return nil
}

// FX18: LD ST, Vx
func setSound(c *CPU, in Instruction) error {
	c.bus.SetSound(c.v[in.X])
	return nil
}

// FX1E: ADD I, Vx
func addIndex(c *CPU, in Instruction) error {
	sum := uint32(c.i) + uint32(c.v[in.X])
	if sum > uint32(addr.MemoryEnd) {
		return ErrIndexOutOfRange
	}
	c.i = uint16(sum)
	return nil
}

// FX29: LD F, Vx
func loadFont(c *CPU, in Instruction) error {
	c.i = memory.FontAddress(c.v[in.X])
	return nil
}

// FX33: LD B, Vx
func storeBCD(c *CPU, in Instruction) error {
	hundreds, tens, units := bit.BCD(c.v[in.X])
	for offset, digit := range []uint8{hundreds, tens, units} {
		address, err := c.indexAddress(offset, memory.AccessWrite)
		if err != nil {
			return err
		}
		if err := c.bus.Write(address, digit); err != nil {
			return err
		}
	}
	return nil
}

// FX55: LD [I], Vx
func storeRegisters(c *CPU, in Instruction) error {
	for r := uint8(0); r <= in.X; r++ {
		address, err := c.indexAddress(int(r), memory.AccessWrite)
		if err != nil {
			return err
		}
		if err := c.bus.Write(address, c.v[r]); err != nil {
			return err
		}
	}
	if c.quirks.LoadStoreIncrementsI {
		c.i += uint16(in.X) + 1
	}
	return nil
}

// FX65: LD Vx, [I]
func loadRegisters(c *CPU, in Instruction) error {
	for r := uint8(0); r <= in.X; r++ {
		address, err := c.indexAddress(int(r), memory.AccessRead)
		if err != nil {
			return err
		}
		value, err := c.bus.Read(address)
		if err != nil {
			return err
		}
		c.v[r] = value
	}
	if c.quirks.LoadStoreIncrementsI {
		c.i += uint16(in.X) + 1
	}
	return nil
}

// indexAddress returns I+offset, failing instead of wrapping when the
// result lies past the end of memory.
func (c *CPU) indexAddress(offset int, kind memory.AccessKind) (uint16, error) {
	address := int(c.i) + offset
	if address > int(addr.MemoryEnd) {
		if address > 0xFFFF {
			address = 0xFFFF
		}
		return 0, &memory.BoundsError{Address: uint16(address), Kind: kind}
	}
	return uint16(address), nil
}
