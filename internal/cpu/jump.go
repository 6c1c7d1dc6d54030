package cpu

import "fmt"

// push pushes a 16 bit value onto the stack. SP is decremented by 2
// first, then the word is stored little-endian at the new SP.
func (c *CPU) push(value uint16) {
	c.SP -= 2
	c.b.Write16(c.SP, value)
}

// pop pops a 16 bit value off the stack.
func (c *CPU) pop() uint16 {
	value := c.b.Read16(c.SP)
	c.SP += 2
	return value
}

// call pushes the address of the next instruction onto the stack and
// jumps to the given address.
//
//	CALL nn
//	nn = 16-bit immediate value
func (c *CPU) call(address uint16) {
	c.push(c.PC)
	c.PC = address
}

// jumpRelative reads the signed displacement and adds it to PC when
// the condition holds. The displacement is always consumed first.
//
//	JR e / JR cc, e
//	cc = NZ, Z, NC, C
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelative(condition bool) {
	offset := int8(c.readOperand())
	if !condition {
		return
	}
	c.PC = uint16(int32(c.PC) + int32(offset))
	if !c.Quirks.BaselineTiming {
		c.branch()
	}
}

// stackPairNames are the register pairs encoded in PUSH and POP.
var stackPairNames = [4]string{"BC", "DE", "HL", "AF"}

func (c *CPU) stackPair(index uint8) uint16 {
	if index == 3 {
		return c.AF.Uint16()
	}
	return c.pair(index)
}

func (c *CPU) setStackPair(index uint8, value uint16) {
	if index == 3 {
		c.AF.SetUint16(value & 0xFFF0)
		return
	}
	c.setPair(index, value)
}

func init() {
	DefineInstruction(0x18, "JR r8", func(c *CPU) { c.jumpRelative(true) }, Length(2), Cycles(12))
	DefineInstruction(0xC3, "JP a16", func(c *CPU) { c.PC = c.readOperand16() }, Length(3), Cycles(16))
	DefineInstruction(0xE9, "JP HL", func(c *CPU) { c.PC = c.HL.Uint16() })
	DefineInstruction(0xCD, "CALL a16", func(c *CPU) { c.call(c.readOperand16()) }, Length(3), Cycles(24))
	DefineInstruction(0xC9, "RET", func(c *CPU) { c.PC = c.pop() }, Cycles(16))
	DefineInstruction(0xD9, "RETI", func(c *CPU) {
		c.PC = c.pop()
		c.irq.IME = true
	}, Cycles(16))

	for i := uint8(0); i < 4; i++ {
		cond := conditions[i]

		DefineInstruction(0x20+i*8, fmt.Sprintf("JR %s, r8", cond.name), func(c *CPU) {
			c.jumpRelative(cond.test(c))
		}, Length(2), Cycles(8), Branch(12))
		DefineInstruction(0xC2+i*8, fmt.Sprintf("JP %s, a16", cond.name), func(c *CPU) {
			address := c.readOperand16()
			if cond.test(c) {
				c.PC = address
				c.branch()
			}
		}, Length(3), Cycles(12), Branch(16))
		DefineInstruction(0xC4+i*8, fmt.Sprintf("CALL %s, a16", cond.name), func(c *CPU) {
			address := c.readOperand16()
			if cond.test(c) {
				c.call(address)
				c.branch()
			}
		}, Length(3), Cycles(12), Branch(24))
		DefineInstruction(0xC0+i*8, fmt.Sprintf("RET %s", cond.name), func(c *CPU) {
			if cond.test(c) {
				c.PC = c.pop()
				c.branch()
			}
		}, Cycles(8), Branch(20))

		index := i
		DefineInstruction(0xC1+index*16, fmt.Sprintf("POP %s", stackPairNames[index]), func(c *CPU) {
			c.setStackPair(index, c.pop())
		}, Cycles(12))
		DefineInstruction(0xC5+index*16, fmt.Sprintf("PUSH %s", stackPairNames[index]), func(c *CPU) {
			c.push(c.stackPair(index))
		}, Cycles(16))
	}

	// RST n
	for i := uint8(0); i < 8; i++ {
		vector := uint16(i) * 8
		DefineInstruction(0xC7+i*8, fmt.Sprintf("RST %02XH", vector), func(c *CPU) {
			c.call(vector)
		}, Cycles(16))
	}
}
