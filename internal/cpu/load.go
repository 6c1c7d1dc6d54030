package cpu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy/internal/types"
)

// pairNames are the register pairs encoded in bits 4-5 of the 16-bit
// load and arithmetic opcodes.
var pairNames = [4]string{"BC", "DE", "HL", "SP"}

// pair returns the register pair (or SP) with the given index.
func (c *CPU) pair(index uint8) uint16 {
	switch index {
	case 0:
		return c.BC.Uint16()
	case 1:
		return c.DE.Uint16()
	case 2:
		return c.HL.Uint16()
	}
	return c.SP
}

// setPair writes the register pair (or SP) with the given index.
func (c *CPU) setPair(index uint8, value uint16) {
	switch index {
	case 0:
		c.BC.SetUint16(value)
	case 1:
		c.DE.SetUint16(value)
	case 2:
		c.HL.SetUint16(value)
	default:
		c.SP = value
	}
}

// indirectAddress returns the address used by the LD (rr), A and
// LD A, (rr) family, applying the post-increment or post-decrement
// of HL after the address has been taken.
//
//	index 0 = (BC), 1 = (DE), 2 = (HL+), 3 = (HL-)
func (c *CPU) indirectAddress(index uint8) uint16 {
	switch index {
	case 0:
		return c.BC.Uint16()
	case 1:
		return c.DE.Uint16()
	}
	address := c.HL.Uint16()
	if index == 2 {
		c.HL.SetUint16(address + 1)
	} else {
		c.HL.SetUint16(address - 1)
	}
	return address
}

var indirectNames = [4]string{"(BC)", "(DE)", "(HL+)", "(HL-)"}

func init() {
	// 0x40 - 0x7F LD r, r' (0x76 is HALT)
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			if dst == types.RegHLIndirect && src == types.RegHLIndirect {
				continue
			}
			to, from := dst, src
			cycles := uint8(4)
			if to == types.RegHLIndirect || from == types.RegHLIndirect {
				cycles = 8
			}
			DefineInstruction(0x40+to*8+from, fmt.Sprintf("LD %s, %s", registerNames[to], registerNames[from]), func(c *CPU) {
				c.setOperand(to, c.operand(from))
			}, Cycles(cycles))
		}

		// LD r, d8
		to := dst
		cycles := uint8(8)
		if to == types.RegHLIndirect {
			cycles = 12
		}
		DefineInstruction(0x06+to*8, fmt.Sprintf("LD %s, d8", registerNames[to]), func(c *CPU) {
			c.setOperand(to, c.readOperand())
		}, Length(2), Cycles(cycles))
	}

	for i := uint8(0); i < 4; i++ {
		index := i

		// LD rr, d16
		DefineInstruction(0x01+index*16, fmt.Sprintf("LD %s, d16", pairNames[index]), func(c *CPU) {
			c.setPair(index, c.readOperand16())
		}, Length(3), Cycles(12))

		// LD (rr), A
		DefineInstruction(0x02+index*16, fmt.Sprintf("LD %s, A", indirectNames[index]), func(c *CPU) {
			c.b.Write(c.indirectAddress(index), c.A())
		}, Cycles(8))

		// LD A, (rr)
		DefineInstruction(0x0A+index*16, fmt.Sprintf("LD A, %s", indirectNames[index]), func(c *CPU) {
			c.SetA(c.b.Read(c.indirectAddress(index)))
		}, Cycles(8))
	}

	DefineInstruction(0x08, "LD (a16), SP", func(c *CPU) {
		c.b.Write16(c.readOperand16(), c.SP)
	}, Length(3), Cycles(20))
	DefineInstruction(0xE0, "LDH (a8), A", func(c *CPU) {
		c.b.Write(0xFF00+uint16(c.readOperand()), c.A())
	}, Length(2), Cycles(12))
	DefineInstruction(0xF0, "LDH A, (a8)", func(c *CPU) {
		c.SetA(c.b.Read(0xFF00 + uint16(c.readOperand())))
	}, Length(2), Cycles(12))
	DefineInstruction(0xE2, "LD (C), A", func(c *CPU) {
		c.b.Write(0xFF00+uint16(c.C()), c.A())
	}, Cycles(8))
	DefineInstruction(0xF2, "LD A, (C)", func(c *CPU) {
		c.SetA(c.b.Read(0xFF00 + uint16(c.C())))
	}, Cycles(8))
	DefineInstruction(0xEA, "LD (a16), A", func(c *CPU) {
		c.b.Write(c.readOperand16(), c.A())
	}, Length(3), Cycles(16))
	DefineInstruction(0xFA, "LD A, (a16)", func(c *CPU) {
		c.SetA(c.b.Read(c.readOperand16()))
	}, Length(3), Cycles(16))
	DefineInstruction(0xF8, "LD HL, SP+r8", func(c *CPU) {
		c.HL.SetUint16(c.addSPSigned())
	}, Length(2), Cycles(12))
	DefineInstruction(0xF9, "LD SP, HL", func(c *CPU) {
		c.SP = c.HL.Uint16()
	}, Cycles(8))
}
