package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstructionSet_Complete(t *testing.T) {
	names := make(map[string]int)
	for opcode, instruction := range InstructionSet {
		require.Truef(t, instruction.Defined(), "base opcode 0x%02X has no handler", opcode)
		require.NotEmptyf(t, instruction.Name(), "base opcode 0x%02X has no mnemonic", opcode)
		assert.GreaterOrEqualf(t, instruction.Length(), uint8(1), "0x%02X length", opcode)
		assert.LessOrEqualf(t, instruction.Length(), uint8(3), "0x%02X length", opcode)
		assert.GreaterOrEqualf(t, instruction.BranchCycles(), instruction.Cycles(), "0x%02X branch cost", opcode)

		if IsUndefined(uint8(opcode)) {
			assert.Truef(t, strings.HasPrefix(instruction.Name(), "undefined"), "0x%02X should be undefined", opcode)
		} else {
			names[instruction.Name()]++
		}
	}
	for opcode, instruction := range InstructionSetCB {
		require.Truef(t, instruction.Defined(), "CB opcode 0x%02X has no handler", opcode)
		assert.Equalf(t, uint8(2), instruction.Length(), "CB 0x%02X length", opcode)
		names[instruction.Name()]++
	}

	// every defined mnemonic is unique, so the tables have no
	// accidental overwrites
	for name, count := range names {
		assert.Equalf(t, 1, count, "mnemonic %q defined %d times", name, count)
	}
	assert.Len(t, UndefinedOpcodes, 11)
}

// isControlFlow reports whether an instruction may write PC.
func isControlFlow(name string) bool {
	for _, prefix := range []string{"JR", "JP", "CALL", "RET", "RST", "HALT", "STOP", "undefined"} {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func TestInstructionSet_Length(t *testing.T) {
	for opcode, instruction := range InstructionSet {
		if isControlFlow(instruction.Name()) {
			continue
		}
		c := newTestCPU()
		c.HL.SetUint16(0xD000)
		load(c, uint8(opcode), 0x00, 0xD1)

		cycles := c.Step()
		assert.Equalf(t, origin+uint16(instruction.Length()), c.PC, "%s (0x%02X) PC advance", instruction.Name(), opcode)
		if opcode != 0xCB {
			assert.Equalf(t, instruction.Cycles(), cycles, "%s (0x%02X) cycles", instruction.Name(), opcode)
		}
	}
}

func TestInstructionSetCB_Cycles(t *testing.T) {
	for opcode, instruction := range InstructionSetCB {
		c := newTestCPU()
		c.HL.SetUint16(0xD000)
		load(c, 0xCB, uint8(opcode))

		cycles := c.Step()
		assert.Equalf(t, uint16(origin+2), c.PC, "%s PC advance", instruction.Name())
		assert.Equalf(t, instruction.Cycles(), cycles, "%s cycles", instruction.Name())
	}
}

func TestInstruction_Cycles(t *testing.T) {
	tests := []struct {
		name     string
		opcode   uint8
		cycles   uint8
		register uint8
	}{
		{"NOP", 0x00, 4, 0},
		{"LD BC, d16", 0x01, 12, 0},
		{"LD (BC), A", 0x02, 8, 0},
		{"INC BC", 0x03, 8, 0},
		{"INC B", 0x04, 4, 0},
		{"LD B, d8", 0x06, 8, 0},
		{"ADD HL, BC", 0x09, 8, 0},
		{"LD (HL), d8", 0x36, 12, 0},
		{"INC (HL)", 0x34, 12, 0},
		{"LD B, C", 0x41, 4, 0},
		{"LD B, (HL)", 0x46, 8, 0},
		{"ADD A, B", 0x80, 4, 0},
		{"ADD A, (HL)", 0x86, 8, 0},
		{"PUSH BC", 0xC5, 16, 0},
		{"POP BC", 0xC1, 12, 0},
		{"LDH (a8), A", 0xE0, 12, 0},
		{"LD (a16), SP", 0x08, 20, 0},
		{"ADD SP, r8", 0xE8, 16, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, InstructionSet[tt.opcode].Name())
		assert.Equalf(t, tt.cycles, InstructionSet[tt.opcode].Cycles(), tt.name)
	}
}

func TestInstruction_Branch(t *testing.T) {
	t.Run("JR taken", func(t *testing.T) {
		c := newTestCPU()
		load(c, 0x20, 0x05) // JR NZ, +5
		assert.Equal(t, uint8(12), c.Step())
		assert.Equal(t, uint16(origin+7), c.PC)
	})
	t.Run("JR not taken", func(t *testing.T) {
		c := newTestCPU()
		load(c, 0x20, 0x05)
		c.setFlag(FlagZero)
		assert.Equal(t, uint8(8), c.Step())
		assert.Equal(t, uint16(origin+2), c.PC, "displacement is consumed")
	})
	t.Run("JR backwards", func(t *testing.T) {
		c := newTestCPU()
		load(c, 0x18, 0xFE) // JR -2
		assert.Equal(t, uint8(12), c.Step())
		assert.Equal(t, uint16(origin), c.PC)
	})
	t.Run("JR baseline timing", func(t *testing.T) {
		c := newTestCPU()
		c.Quirks.BaselineTiming = true
		load(c, 0x38, 0x05) // JR C, +5
		c.setFlag(FlagCarry)
		assert.Equal(t, uint8(8), c.Step())
		assert.Equal(t, uint16(origin+7), c.PC)
	})
	t.Run("JP taken", func(t *testing.T) {
		c := newTestCPU()
		load(c, 0xCA, 0x34, 0x12) // JP Z, 0x1234
		c.setFlag(FlagZero)
		assert.Equal(t, uint8(16), c.Step())
		assert.Equal(t, uint16(0x1234), c.PC)
	})
	t.Run("CALL not taken", func(t *testing.T) {
		c := newTestCPU()
		load(c, 0xD4, 0x34, 0x12) // CALL NC, 0x1234
		c.setFlag(FlagCarry)
		assert.Equal(t, uint8(12), c.Step())
		assert.Equal(t, uint16(origin+3), c.PC)
	})
	t.Run("RET taken", func(t *testing.T) {
		c := newTestCPU()
		load(c, 0xC0) // RET NZ
		c.push(0x4321)
		assert.Equal(t, uint8(20), c.Step())
		assert.Equal(t, uint16(0x4321), c.PC)
	})
}

func TestInstruction_Call(t *testing.T) {
	c := newTestCPU()
	load(c, 0xCD, 0x00, 0xD0) // CALL 0xD000
	c.b.Load(0xD000, []byte{0xC9}) // RET
	sp := c.SP

	c.Step()
	assert.Equal(t, uint16(0xD000), c.PC)
	assert.Equal(t, sp-2, c.SP)
	assert.Equal(t, uint16(origin+3), c.b.Read16(c.SP), "return address follows the operand")

	c.Step()
	assert.Equal(t, uint16(origin+3), c.PC)
	assert.Equal(t, sp, c.SP)
}

func TestInstruction_RST(t *testing.T) {
	for i := uint8(0); i < 8; i++ {
		c := newTestCPU()
		load(c, 0xC7+i*8)
		c.Step()
		assert.Equal(t, uint16(i)*8, c.PC)
		assert.Equal(t, uint16(origin+1), c.b.Read16(c.SP))
	}
}

func TestInstruction_Stack(t *testing.T) {
	c := newTestCPU()
	load(c, 0xC5, 0xF1) // PUSH BC, POP AF
	c.BC.SetUint16(0x12FF)
	c.Step()
	c.Step()
	assert.Equal(t, uint16(0x12F0), c.AF.Uint16(), "low nibble of F is masked")
}
