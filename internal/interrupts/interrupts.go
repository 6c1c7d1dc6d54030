package interrupts

import (
	"github.com/thelolagemann/gomeboy/internal/io"
	"github.com/thelolagemann/gomeboy/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0), requested
	// every time the PPU enters VBlank.
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD STAT interrupt flag (bit 1), requested
	// by the sources selected in types.STAT.
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2), requested
	// when types.TIMA overflows.
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3), requested
	// when a serial transfer completes.
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt flag (bit 4), requested
	// when a button is pressed.
	JoypadFlag = types.Bit4
)

// Vectors holds the handler address of each interrupt source, in
// priority order.
var Vectors = [5]uint16{0x0040, 0x0048, 0x0050, 0x0058, 0x0060}

var names = [5]string{"VBlank", "LCD", "Timer", "Serial", "Joypad"}

// Name returns a readable name for a single interrupt flag.
func Name(flag uint8) string {
	for i := 0; i < 5; i++ {
		if flag == 1<<i {
			return names[i]
		}
	}
	return "Unknown"
}

// Controller is the interrupt controller. The request (types.IF)
// and enable (types.IE) registers are ordinary bytes in the address
// space; the master enable (IME) lives here, and is set and cleared
// by the EI, DI and RETI instructions.
type Controller struct {
	// IME is the interrupt master enable.
	IME bool

	b *io.Bus
}

// NewController returns a Controller backed by b.
func NewController(b *io.Bus) *Controller {
	return &Controller{b: b}
}

// Request requests the interrupt by setting its bit in types.IF.
func (c *Controller) Request(flag uint8) {
	c.b.SetBit(types.IF, flag)
}

// Pending returns the set of interrupts that are both requested
// and enabled, regardless of IME.
func (c *Controller) Pending() uint8 {
	return c.b.Get(types.IF) & c.b.Get(types.IE) & 0x1F
}

// Vector selects the highest priority pending interrupt, clears its
// request bit along with IME, and returns its handler address. ok is
// false when IME is clear or nothing is pending; only one interrupt
// is taken per call, the rest stay pending.
func (c *Controller) Vector() (vector uint16, flag uint8, ok bool) {
	if !c.IME {
		return 0, 0, false
	}
	pending := c.Pending()
	if pending == 0 {
		return 0, 0, false
	}

	for i := uint8(0); i < 5; i++ {
		flag = 1 << i
		if pending&flag != 0 {
			c.b.ClearBit(types.IF, flag)
			c.IME = false
			return Vectors[i], flag, true
		}
	}

	return 0, 0, false
}
