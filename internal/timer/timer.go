// Package timer provides an implementation of the Game Boy
// timer. It is used to generate interrupts at a specific
// frequency. The frequency can be configured using the
// types.TAC register.
package timer

import (
	"github.com/thelolagemann/gomeboy/internal/interrupts"
	"github.com/thelolagemann/gomeboy/internal/io"
	"github.com/thelolagemann/gomeboy/internal/types"
)

// Controller is a timer controller. It is used to generate
// interrupts at a specific frequency. The frequency can be
// configured using the types.TAC register.
//
// Both DIV and TIMA are driven by a 16-bit system counter that
// counts clock cycles. DIV is the upper byte of the counter, and
// TIMA is incremented on the falling edge of the counter bit
// selected by TAC.
type Controller struct {
	counter uint16

	currentBit         uint16
	Enabled            bool
	lastBit            bool
	overflow           bool
	ticksSinceOverflow uint8

	b   *io.Bus
	irq *interrupts.Controller
}

// NewController returns a new timer controller.
func NewController(b *io.Bus, irq *interrupts.Controller) *Controller {
	c := &Controller{
		b:          b,
		irq:        irq,
		currentBit: bits[0],
	}
	b.Set(types.TAC, 0xF8)

	b.ReserveAddress(types.DIV, func(v uint8) uint8 {
		// resetting the counter can cause a falling edge
		if c.Enabled && c.counter&c.currentBit != 0 {
			c.increment()
		}
		c.counter = 0
		c.lastBit = false
		return 0
	})
	b.ReserveAddress(types.TIMA, func(v uint8) uint8 {
		// writes to TIMA are ignored if written the same tick it is
		// reloading
		if c.ticksSinceOverflow == 5 {
			return b.Get(types.TIMA)
		}
		c.overflow = false
		c.ticksSinceOverflow = 0
		return v
	})
	b.ReserveAddress(types.TMA, func(v uint8) uint8 {
		// if you write to TMA the same tick that TIMA is reloading,
		// TIMA will be set to the new value of TMA
		if c.ticksSinceOverflow == 5 {
			b.Set(types.TIMA, v)
		}
		return v
	})
	b.ReserveAddress(types.TAC, func(v uint8) uint8 {
		wasEnabled := c.Enabled
		oldBit := c.currentBit

		c.currentBit = bits[v&0b11]
		c.Enabled = v&types.Bit2 != 0

		c.timaGlitch(wasEnabled, oldBit)
		return v | 0b11111000
	})

	return c
}

// Tick advances the timer by the given number of machine cycles.
func (c *Controller) Tick(cycles uint64) {
	for i := uint64(0); i < cycles; i++ {
		c.TickM()
	}
}

// TickM ticks the timer controller by 1 M-Cycle (4 T-Cycles).
func (c *Controller) TickM() {
	for i := 0; i < 4; i++ {
		c.counter++

		// detect a falling edge
		newBit := c.Enabled && c.counter&c.currentBit != 0
		if !newBit && c.lastBit {
			c.increment()
		}
		c.lastBit = newBit

		if c.overflow {
			c.ticksSinceOverflow++

			switch c.ticksSinceOverflow {
			case 4:
				c.irq.Request(interrupts.TimerFlag)
			case 5:
				c.b.Set(types.TIMA, c.b.Get(types.TMA))
			case 6:
				c.overflow = false
				c.ticksSinceOverflow = 0
			}
		}
	}

	c.b.Set(types.DIV, uint8(c.counter>>8))
}

func (c *Controller) increment() {
	tima := c.b.Get(types.TIMA) + 1
	c.b.Set(types.TIMA, tima)

	// TIMA reads 0 for a machine cycle before it is reloaded
	if tima == 0 {
		c.overflow = true
		c.ticksSinceOverflow = 0
	}
}

// timaGlitch handles the glitch that occurs when the timer is enabled
// or disabled: if the selected bit was set before the write and is
// clear after it, TIMA sees a falling edge.
func (c *Controller) timaGlitch(wasEnabled bool, oldBit uint16) {
	if !wasEnabled {
		return
	}

	if c.counter&oldBit != 0 {
		if !c.Enabled || c.counter&c.currentBit == 0 {
			c.increment()
			c.lastBit = false
		}
	}
}

// bits are the system counter bits selected by TAC 0-3, giving
// rates of 1024, 16, 64 and 256 clock cycles.
var bits = [4]uint16{512, 8, 32, 128}
