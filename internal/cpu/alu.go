package cpu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy/internal/types"
)

// add adds n, and the carry flag when withCarry is set, to the A
// Register.
//
//	ADD A, n / ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8, withCarry bool) {
	var carry uint8
	if withCarry {
		carry = c.carryBit()
	}
	a := c.A()
	result := uint16(a) + uint16(n) + uint16(carry)
	c.setFlags(uint8(result) == 0, false, (a&0xF)+(n&0xF)+carry > 0xF, result > 0xFF)
	c.SetA(uint8(result))
}

// sub subtracts n, and the carry flag when withCarry is set, from
// the A Register.
//
//	SUB n / SBC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(n uint8, withCarry bool) {
	var carry uint8
	if withCarry {
		carry = c.carryBit()
	}
	a := c.A()
	result := int16(a) - int16(n) - int16(carry)
	c.setFlags(uint8(result) == 0, true, int16(a&0xF)-int16(n&0xF)-int16(carry) < 0, result < 0)
	c.SetA(uint8(result))
}

// and performs a bitwise AND operation on n and the A Register.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.SetA(c.A() & n)
	c.setFlags(c.A() == 0, false, true, false)
}

// or performs a bitwise OR operation on n and the A Register.
func (c *CPU) or(n uint8) {
	c.SetA(c.A() | n)
	c.setFlags(c.A() == 0, false, false, false)
}

// xor performs a bitwise XOR operation on n and the A Register.
func (c *CPU) xor(n uint8) {
	c.SetA(c.A() ^ n)
	c.setFlags(c.A() == 0, false, false, false)
}

// compare compares n to the A Register. The flags are set as if n
// were subtracted from A, but A is left unchanged.
//
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
func (c *CPU) compare(n uint8) {
	a := c.A()
	c.sub(n, false)
	c.SetA(a)
}

// increment increments n by 1.
//
//	INC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(n uint8) uint8 {
	result := n + 1
	carry := c.isFlagSet(FlagCarry)
	if c.Quirks.IncDecCarry {
		carry = n == 0xFF
	}
	c.setFlags(result == 0, false, n&0xF == 0xF, carry)
	return result
}

// decrement decrements n by 1.
//
//	DEC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(n uint8) uint8 {
	result := n - 1
	carry := c.isFlagSet(FlagCarry)
	if c.Quirks.IncDecCarry {
		carry = n == 0x00
	}
	c.setFlags(result == 0, true, n&0xF == 0, carry)
	return result
}

// addHL adds n to the HL Register pair.
//
//	ADD HL, nn
//	nn = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(n uint16) {
	hl := c.HL.Uint16()
	result := uint32(hl) + uint32(n)
	c.setFlags(c.isFlagSet(FlagZero), false, (hl&0xFFF)+(n&0xFFF) > 0xFFF, result > 0xFFFF)
	c.HL.SetUint16(uint16(result))
}

// addSPSigned returns SP plus the signed immediate operand. The
// flags are computed from the unsigned low byte addition.
//
//	ADD SP, e / LD HL, SP+e
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned() uint16 {
	e := c.readOperand()
	result := uint16(int32(c.SP) + int32(int8(e)))
	c.setFlags(false, false, (c.SP&0xF)+uint16(e&0xF) > 0xF, (c.SP&0xFF)+uint16(e) > 0xFF)
	return result
}

// decimalAdjust adjusts the A Register into packed BCD after an
// addition or subtraction.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func (c *CPU) decimalAdjust() {
	a := c.A()
	carry := c.isFlagSet(FlagCarry)
	subtract := c.isFlagSet(FlagSubtract)

	var adjust uint8
	if subtract {
		if c.isFlagSet(FlagHalfCarry) {
			adjust |= 0x06
		}
		if carry {
			adjust |= 0x60
		}
		a -= adjust
	} else {
		if c.isFlagSet(FlagHalfCarry) || a&0x0F > 0x09 {
			adjust |= 0x06
		}
		if carry || a > 0x99 {
			adjust |= 0x60
			carry = true
		}
		a += adjust
	}

	c.setFlags(a == 0, subtract, false, carry)
	c.SetA(a)
}

var aluNames = [8]string{"ADD A,", "ADC A,", "SUB", "SBC A,", "AND", "XOR", "OR", "CP"}

// aluOperation returns the accumulator operation encoded in bits 3-5
// of the ALU opcodes.
func aluOperation(op uint8) func(*CPU, uint8) {
	switch op {
	case 0:
		return func(c *CPU, n uint8) { c.add(n, false) }
	case 1:
		return func(c *CPU, n uint8) { c.add(n, true) }
	case 2:
		return func(c *CPU, n uint8) { c.sub(n, false) }
	case 3:
		return func(c *CPU, n uint8) { c.sub(n, true) }
	case 4:
		return (*CPU).and
	case 5:
		return (*CPU).xor
	case 6:
		return (*CPU).or
	}
	return (*CPU).compare
}

func init() {
	// 0x80 - 0xBF ALU A, r and 0xC6 - 0xFE ALU A, d8
	for op := uint8(0); op < 8; op++ {
		fn := aluOperation(op)
		for j := uint8(0); j < 8; j++ {
			index := j
			cycles := uint8(4)
			if index == types.RegHLIndirect {
				cycles = 8
			}
			DefineInstruction(0x80+op*8+j, fmt.Sprintf("%s %s", aluNames[op], registerNames[index]), func(c *CPU) {
				fn(c, c.operand(index))
			}, Cycles(cycles))
		}
		DefineInstruction(0xC6+op*8, fmt.Sprintf("%s d8", aluNames[op]), func(c *CPU) {
			fn(c, c.readOperand())
		}, Length(2), Cycles(8))
	}

	// 0x04 - 0x3D INC r / DEC r
	for j := uint8(0); j < 8; j++ {
		index := j
		cycles := uint8(4)
		if index == types.RegHLIndirect {
			cycles = 12
		}
		DefineInstruction(0x04+j*8, fmt.Sprintf("INC %s", registerNames[index]), func(c *CPU) {
			c.setOperand(index, c.increment(c.operand(index)))
		}, Cycles(cycles))
		DefineInstruction(0x05+j*8, fmt.Sprintf("DEC %s", registerNames[index]), func(c *CPU) {
			c.setOperand(index, c.decrement(c.operand(index)))
		}, Cycles(cycles))
	}

	// 16-bit arithmetic
	for i, pair := range pairNames {
		i := uint8(i)
		name := pair
		DefineInstruction(0x03+i*16, "INC "+name, func(c *CPU) {
			c.setPair(i, c.pair(i)+1)
		}, Cycles(8))
		DefineInstruction(0x0B+i*16, "DEC "+name, func(c *CPU) {
			c.setPair(i, c.pair(i)-1)
		}, Cycles(8))
		DefineInstruction(0x09+i*16, "ADD HL, "+name, func(c *CPU) {
			c.addHL(c.pair(i))
		}, Cycles(8))
	}

	DefineInstruction(0xE8, "ADD SP, r8", func(c *CPU) {
		c.SP = c.addSPSigned()
	}, Length(2), Cycles(16))
}
