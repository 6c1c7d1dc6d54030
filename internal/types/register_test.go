package types

import "testing"

func TestRegisterPair_Halves(t *testing.T) {
	var p RegisterPair

	p.SetHigh(0x12)
	p.SetLow(0x34)
	if p.Uint16() != 0x1234 {
		t.Errorf("expected 0x1234, got 0x%04X", p.Uint16())
	}

	p.SetUint16(0xBEEF)
	if p.High() != 0xBE || p.Low() != 0xEF {
		t.Errorf("expected BE/EF, got %02X/%02X", p.High(), p.Low())
	}

	// writing one half never disturbs the other
	p.SetLow(0x00)
	if p.Uint16() != 0xBE00 {
		t.Errorf("expected 0xBE00, got 0x%04X", p.Uint16())
	}
	p.SetHigh(0xFF)
	if p.Uint16() != 0xFF00 {
		t.Errorf("expected 0xFF00, got 0x%04X", p.Uint16())
	}
}

func TestRegisters_F(t *testing.T) {
	var r Registers
	r.SetF(0xFF)
	if r.F() != 0xF0 {
		t.Errorf("expected low nibble of F to be masked, got 0x%02X", r.F())
	}
	r.SetA(0x01)
	if r.AF.Uint16() != 0x01F0 {
		t.Errorf("expected AF 0x01F0, got 0x%04X", r.AF.Uint16())
	}
}

func TestRegisters_Index(t *testing.T) {
	var r Registers
	for _, i := range []RegisterIndex{RegB, RegC, RegD, RegE, RegH, RegL, RegA} {
		r.Set(i, 0x40+i)
	}
	if r.BC.Uint16() != 0x4041 || r.DE.Uint16() != 0x4243 || r.HL.Uint16() != 0x4445 || r.A() != 0x47 {
		t.Errorf("unexpected register file %+v", r)
	}
	for _, i := range []RegisterIndex{RegB, RegC, RegD, RegE, RegH, RegL, RegA} {
		if got := r.Get(i); got != 0x40+i {
			t.Errorf("register %d: expected 0x%02X, got 0x%02X", i, 0x40+i, got)
		}
	}

	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for memory operand index")
		}
	}()
	r.Get(RegHLIndirect)
}

func TestClock(t *testing.T) {
	var step, total Clock
	for _, cycles := range []uint8{4, 8, 24} {
		step.Set(cycles)
		if step.M != uint64(cycles)/4 {
			t.Errorf("expected %d machine cycles, got %d", cycles/4, step.M)
		}
		total.Add(step)
	}
	if total.T != 36 || total.M != 9 {
		t.Errorf("expected 36/9, got %d/%d", total.T, total.M)
	}
}
