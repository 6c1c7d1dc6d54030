package cpu

import "testing"

func TestInstruction_RLCA(t *testing.T) {
	c := newTestCPU()
	load(c, 0x07)
	c.SetA(0xF0)
	c.Step()

	if c.A() != 0xE1 {
		t.Errorf("expected A to be 0xE1, got 0x%02X", c.A())
	}
	if c.F() != FlagCarry {
		t.Errorf("expected only Carry to be set, got %08b", c.F())
	}
}

func TestInstruction_RotateAccumulator(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint8
		a      uint8
		carry  bool
		result uint8
		carryOut bool
	}{
		{"RLCA", 0x07, 0x80, false, 0x01, true},
		{"RRCA", 0x0F, 0x01, false, 0x80, true},
		{"RLA", 0x17, 0x80, false, 0x00, true},
		{"RLA", 0x17, 0x55, true, 0xAB, false},
		{"RRA", 0x1F, 0x01, false, 0x00, true},
		{"RRA", 0x1F, 0xAA, true, 0xD5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU()
			load(c, tt.opcode)
			c.SetA(tt.a)
			if tt.carry {
				c.setFlag(FlagCarry)
			}
			c.Step()
			if c.A() != tt.result {
				t.Errorf("expected A to be 0x%02X, got 0x%02X", tt.result, c.A())
			}
			if c.isFlagSet(FlagCarry) != tt.carryOut {
				t.Errorf("expected carry %t, got %08b", tt.carryOut, c.F())
			}
			// the accumulator rotates never set Z, even on a zero result
			if c.isFlagSet(FlagZero) || c.isFlagSet(FlagSubtract) || c.isFlagSet(FlagHalfCarry) {
				t.Errorf("expected Z, N and H to be reset, got %08b", c.F())
			}
		})
	}
}

func TestInstruction_RLCRRCInverse(t *testing.T) {
	for v := 0; v < 256; v++ {
		c := newTestCPU()
		load(c, 0xCB, 0x00, 0xCB, 0x08) // RLC B; RRC B
		c.SetB(uint8(v))
		c.Step()
		c.Step()
		if c.B() != uint8(v) {
			t.Fatalf("RLC/RRC 0x%02X: got 0x%02X", v, c.B())
		}
	}
}

func TestInstruction_ShiftsCB(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint8
		value  uint8
		carry  bool
		result uint8
		flags  uint8
	}{
		{"RLC B", 0x00, 0x85, false, 0x0B, FlagCarry},
		{"RLC B zero", 0x00, 0x00, false, 0x00, FlagZero},
		{"RRC B", 0x08, 0x01, false, 0x80, FlagCarry},
		{"RL B", 0x10, 0x80, false, 0x00, FlagZero | FlagCarry},
		{"RR B", 0x18, 0x01, true, 0x80, FlagCarry},
		{"SLA B", 0x20, 0xFF, false, 0xFE, FlagCarry},
		{"SRA B", 0x28, 0x8A, false, 0xC5, 0},
		{"SRA B carry", 0x28, 0x01, false, 0x00, FlagZero | FlagCarry},
		{"SWAP B", 0x30, 0xF0, true, 0x0F, 0},
		{"SWAP B zero", 0x30, 0x00, false, 0x00, FlagZero},
		{"SRL B", 0x38, 0xFF, false, 0x7F, FlagCarry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU()
			load(c, 0xCB, tt.opcode)
			c.SetB(tt.value)
			if tt.carry {
				c.setFlag(FlagCarry)
			}
			c.Step()
			if c.B() != tt.result {
				t.Errorf("expected 0x%02X, got 0x%02X", tt.result, c.B())
			}
			if c.F() != tt.flags {
				t.Errorf("expected flags %08b, got %08b", tt.flags, c.F())
			}
		})
	}
}

func TestInstruction_ShiftMemory(t *testing.T) {
	c := newTestCPU()
	load(c, 0xCB, 0x36) // SWAP (HL)
	c.HL.SetUint16(0xD000)
	c.b.Write(0xD000, 0x12)
	if cycles := c.Step(); cycles != 16 {
		t.Errorf("expected 16 cycles, got %d", cycles)
	}
	if c.b.Read(0xD000) != 0x21 {
		t.Errorf("expected 0x21, got 0x%02X", c.b.Read(0xD000))
	}
}
