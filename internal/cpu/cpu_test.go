package cpu

import (
	"errors"
	"testing"

	"github.com/thelolagemann/gomeboy/internal/interrupts"
	"github.com/thelolagemann/gomeboy/internal/io"
	"github.com/thelolagemann/gomeboy/internal/types"
	"github.com/thelolagemann/gomeboy/pkg/log"
)

const origin = 0xC000

func newTestCPU() *CPU {
	b := io.NewBus()
	c := NewCPU(b, interrupts.NewController(b), log.NewNullLogger())
	c.SP = 0xDFFE
	return c
}

// load places program at origin and points PC at it.
func load(c *CPU, program ...byte) {
	c.b.Load(origin, program)
	c.PC = origin
}

func TestCPU_UndefinedOpcode(t *testing.T) {
	for _, opcode := range UndefinedOpcodes {
		c := newTestCPU()
		load(c, opcode, 0x00)

		if cycles := c.Step(); cycles != 4 {
			t.Errorf("0x%02X: expected 4 cycles, got %d", opcode, cycles)
		}
		if c.State() != Locked {
			t.Fatalf("0x%02X: expected cpu to be locked, got %s", opcode, c.State())
		}

		var undefined *UndefinedOpcodeError
		if !errors.As(c.Err(), &undefined) {
			t.Fatalf("0x%02X: expected UndefinedOpcodeError, got %v", opcode, c.Err())
		}
		if undefined.Opcode != opcode || undefined.PC != origin {
			t.Errorf("0x%02X: unexpected error %v", opcode, undefined)
		}

		// a locked cpu never fetches again
		pc := c.PC
		c.Step()
		if c.PC != pc {
			t.Errorf("0x%02X: expected PC to stay at 0x%04X, got 0x%04X", opcode, pc, c.PC)
		}
	}
}

func TestCPU_Interrupt(t *testing.T) {
	c := newTestCPU()
	load(c, 0x00, 0x00)
	c.irq.IME = true
	c.b.Set(types.IE, interrupts.VBlankFlag|interrupts.TimerFlag)
	c.irq.Request(interrupts.TimerFlag)
	c.irq.Request(interrupts.VBlankFlag)

	if cycles := c.Step(); cycles != 20 {
		t.Errorf("expected dispatch to cost 20 cycles, got %d", cycles)
	}
	if c.PC != 0x0040 {
		t.Errorf("expected PC 0x0040, got 0x%04X", c.PC)
	}
	if c.b.Read16(c.SP) != origin {
		t.Errorf("expected 0x%04X on the stack, got 0x%04X", origin, c.b.Read16(c.SP))
	}
	if c.irq.IME {
		t.Errorf("expected IME to be cleared")
	}
	if c.b.Get(types.IF) != interrupts.TimerFlag {
		t.Errorf("expected only the timer to remain requested, got %08b", c.b.Get(types.IF))
	}
}

func TestCPU_EIDelay(t *testing.T) {
	c := newTestCPU()
	load(c, 0xFB, 0x00, 0x00) // EI, NOP, NOP
	c.b.Set(types.IE, interrupts.VBlankFlag)
	c.irq.Request(interrupts.VBlankFlag)

	c.Step() // EI
	if c.irq.IME {
		t.Fatalf("expected IME to be enabled after the next instruction")
	}
	c.Step() // NOP runs before the interrupt is taken
	if c.PC != origin+2 {
		t.Fatalf("expected NOP to execute, PC 0x%04X", c.PC)
	}
	c.Step()
	if c.PC != 0x0040 {
		t.Errorf("expected dispatch to 0x0040, got 0x%04X", c.PC)
	}
}

func TestCPU_DICancelsEI(t *testing.T) {
	c := newTestCPU()
	load(c, 0xFB, 0xF3, 0x00) // EI, DI, NOP
	c.Step()
	c.Step()
	c.Step()
	if c.irq.IME {
		t.Errorf("expected DI to cancel the pending EI")
	}
}

func TestCPU_Halt(t *testing.T) {
	c := newTestCPU()
	load(c, 0x76, 0x00)
	c.irq.IME = true
	c.b.Set(types.IE, interrupts.TimerFlag)

	c.Step()
	if c.State() != Halted {
		t.Fatalf("expected cpu to be halted, got %s", c.State())
	}
	for i := 0; i < 4; i++ {
		if cycles := c.Step(); cycles != 4 || c.PC != origin+1 {
			t.Fatalf("expected halted cpu to idle, cycles %d PC 0x%04X", cycles, c.PC)
		}
	}

	c.irq.Request(interrupts.TimerFlag)
	c.Step()
	if c.State() != Running || c.PC != 0x0050 {
		t.Errorf("expected wake into timer handler, got %s at 0x%04X", c.State(), c.PC)
	}
}

func TestCPU_HaltWithoutIME(t *testing.T) {
	c := newTestCPU()
	load(c, 0x76, 0x3C) // HALT, INC A
	c.b.Set(types.IE, interrupts.SerialFlag)

	c.Step()
	c.irq.Request(interrupts.SerialFlag)
	c.Step()
	if c.A() != 1 || c.PC != origin+2 {
		t.Errorf("expected execution to resume after HALT, A=%d PC=0x%04X", c.A(), c.PC)
	}
}

func TestCPU_HaltBug(t *testing.T) {
	c := newTestCPU()
	load(c, 0x76, 0x3C, 0x00) // HALT, INC A
	c.b.Set(types.IE, interrupts.SerialFlag)
	c.irq.Request(interrupts.SerialFlag)

	c.Step() // HALT does not halt
	if c.State() != Running {
		t.Fatalf("expected halt bug instead of halting, got %s", c.State())
	}
	c.Step() // INC A, PC not incremented
	c.Step() // INC A again
	if c.A() != 2 {
		t.Errorf("expected INC A to execute twice, A=%d", c.A())
	}
}

func TestCPU_Stop(t *testing.T) {
	c := newTestCPU()
	load(c, 0x10, 0x00, 0x00)
	c.Step()
	if c.State() != Stopped || c.PC != origin+2 {
		t.Fatalf("expected stopped cpu past the operand, got %s at 0x%04X", c.State(), c.PC)
	}
	c.Step()
	if c.State() != Stopped {
		t.Fatalf("expected cpu to stay stopped")
	}
	c.irq.Request(interrupts.JoypadFlag)
	c.Step()
	if c.State() != Running || c.PC != origin+3 {
		t.Errorf("expected joypad to resume execution, got %s at 0x%04X", c.State(), c.PC)
	}
}

func TestCPU_Clock(t *testing.T) {
	c := newTestCPU()
	load(c, 0xCD, 0x00, 0xD0) // CALL 0xD000
	c.Step()
	if c.Clock.T != 24 || c.Clock.M != 6 {
		t.Errorf("expected 24/6 cycles, got %d/%d", c.Clock.T, c.Clock.M)
	}
}

func TestQuirks_Parse(t *testing.T) {
	q, err := ParseQuirks("incdec-carry, bit-carry,baseline-timing")
	if err != nil {
		t.Fatal(err)
	}
	if !q.IncDecCarry || !q.BitCarry || !q.BaselineTiming {
		t.Errorf("expected all quirks, got %+v", q)
	}
	if q, err := ParseQuirks(""); err != nil || q != (Quirks{}) {
		t.Errorf("expected empty quirks, got %+v %v", q, err)
	}
	if _, err := ParseQuirks("turbo"); err == nil {
		t.Errorf("expected error for unknown quirk")
	}
}
