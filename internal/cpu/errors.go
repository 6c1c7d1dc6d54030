package cpu

import "fmt"

// UndefinedOpcodeError is reported when the CPU fetches one of the
// opcodes that have no meaning on the hardware. Executing one locks
// the CPU.
type UndefinedOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *UndefinedOpcodeError) Error() string {
	return fmt.Sprintf("undefined opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

// UndefinedOpcodes are the base opcodes that were never assigned an
// instruction.
var UndefinedOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

// IsUndefined reports whether opcode is an undefined base opcode.
func IsUndefined(opcode uint8) bool {
	for _, o := range UndefinedOpcodes {
		if o == opcode {
			return true
		}
	}
	return false
}

func undefinedOpcode(c *CPU) {
	opcode := c.b.Read(c.opcodePC)
	c.err = &UndefinedOpcodeError{Opcode: opcode, PC: c.opcodePC}
	c.log.Errorf("undefined opcode 0x%02X at 0x%04X, cpu locked", opcode, c.opcodePC)
	c.mode = ModeLocked
}
