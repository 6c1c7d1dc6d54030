package interrupts

import (
	"testing"

	"github.com/thelolagemann/gomeboy/internal/io"
	"github.com/thelolagemann/gomeboy/internal/types"
)

func TestController_Priority(t *testing.T) {
	b := io.NewBus()
	c := NewController(b)
	c.IME = true
	b.Set(types.IE, 0x1F)

	// request everything, lowest priority first
	for _, f := range []uint8{JoypadFlag, SerialFlag, TimerFlag, LCDFlag, VBlankFlag} {
		c.Request(f)
	}

	expected := []uint16{0x40, 0x48, 0x50, 0x58, 0x60}
	for _, want := range expected {
		c.IME = true
		vector, flag, ok := c.Vector()
		if !ok {
			t.Fatalf("expected an interrupt for vector 0x%02X", want)
		}
		if vector != want {
			t.Errorf("expected vector 0x%02X, got 0x%02X (%s)", want, vector, Name(flag))
		}
		if c.IME {
			t.Errorf("expected IME to be cleared after dispatch")
		}
		if b.Get(types.IF)&flag != 0 {
			t.Errorf("expected %s request to be cleared", Name(flag))
		}
	}

	if _, _, ok := c.Vector(); ok {
		t.Errorf("expected no more interrupts")
	}
}

func TestController_OnePerCall(t *testing.T) {
	b := io.NewBus()
	c := NewController(b)
	c.IME = true
	b.Set(types.IE, VBlankFlag|TimerFlag)
	c.Request(VBlankFlag)
	c.Request(TimerFlag)

	if v, _, _ := c.Vector(); v != 0x40 {
		t.Fatalf("expected VBlank first, got 0x%02X", v)
	}
	// IME is now clear, so the timer waits
	if _, _, ok := c.Vector(); ok {
		t.Errorf("expected no dispatch while IME is clear")
	}
	if c.Pending() != TimerFlag {
		t.Errorf("expected timer to remain pending, got %05b", c.Pending())
	}
}

func TestController_Masked(t *testing.T) {
	b := io.NewBus()
	c := NewController(b)
	c.IME = true
	c.Request(SerialFlag)

	if c.Pending() != 0 {
		t.Errorf("expected disabled interrupt not to be pending")
	}
	if _, _, ok := c.Vector(); ok {
		t.Errorf("expected no dispatch for a disabled interrupt")
	}
	if b.Get(types.IF) != SerialFlag {
		t.Errorf("expected request to stay latched in IF")
	}
}
