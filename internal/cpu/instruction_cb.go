package cpu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy/internal/types"
)

var shiftNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

var shiftOperations = [8]func(*CPU, uint8) uint8{
	(*CPU).rotateLeftCarry,
	(*CPU).rotateRightCarry,
	(*CPU).rotateLeftThroughCarry,
	(*CPU).rotateRightThroughCarry,
	(*CPU).shiftLeftArithmetic,
	(*CPU).shiftRightArithmetic,
	(*CPU).swap,
	(*CPU).shiftRightLogical,
}

// The CB table is fully regular: bits 0-2 select the operand
// (B, C, D, E, H, L, (HL), A), bits 3-5 the operation or bit number,
// and bits 6-7 the group.
func init() {
	for j := uint8(0); j < 8; j++ {
		index := j
		memory := index == types.RegHLIndirect
		cycles := uint8(8)
		if memory {
			cycles = 16
		}

		// 0x00 - 0x3F rotates, shifts and swap
		for op := uint8(0); op < 8; op++ {
			fn := shiftOperations[op]
			DefineInstructionCB(op*8+index, fmt.Sprintf("%s %s", shiftNames[op], registerNames[index]), func(c *CPU) {
				c.setOperand(index, fn(c, c.operand(index)))
			}, Cycles(cycles))
		}

		for n := uint8(0); n < 8; n++ {
			bit := n

			// 0x40 - 0x7F BIT n, r
			bitCycles := uint8(8)
			if memory {
				bitCycles = 12
			}
			DefineInstructionCB(0x40+bit*8+index, fmt.Sprintf("BIT %d, %s", bit, registerNames[index]), func(c *CPU) {
				c.testBit(c.operand(index), bit)
				if memory && c.Quirks.BaselineTiming {
					c.cycles += 4
				}
			}, Cycles(bitCycles))

			// 0x80 - 0xBF RES n, r
			DefineInstructionCB(0x80+bit*8+index, fmt.Sprintf("RES %d, %s", bit, registerNames[index]), func(c *CPU) {
				c.setOperand(index, resetBit(c.operand(index), bit))
			}, Cycles(cycles))

			// 0xC0 - 0xFF SET n, r
			DefineInstructionCB(0xC0+bit*8+index, fmt.Sprintf("SET %d, %s", bit, registerNames[index]), func(c *CPU) {
				c.setOperand(index, setBit(c.operand(index), bit))
			}, Cycles(cycles))
		}
	}
}
