// Package serial provides the serial port of the Game Boy. Only the
// internal clock is driven; a transfer clocked externally waits for a
// partner that never arrives, as on hardware with nothing plugged in.
package serial

import (
	"github.com/thelolagemann/gomeboy/internal/interrupts"
	"github.com/thelolagemann/gomeboy/internal/io"
	"github.com/thelolagemann/gomeboy/internal/scheduler"
	"github.com/thelolagemann/gomeboy/internal/types"
)

const (
	// ticksPerBit is the number of machine cycles to shift one bit
	// at 8192Hz.
	ticksPerBit = 128
	// TransferCycles is the number of machine cycles a whole byte
	// takes to shift.
	TransferCycles = ticksPerBit * 8
)

// Controller is the serial controller. It is responsible for sending and
// receiving data to and from devices.
//
// Writing types.SC with bit 7 (and bit 0, the internal clock) set starts
// a transfer. Once the 8 bits have been shifted the byte in types.SB is
// exchanged with the attached device, bit 7 of types.SC is cleared and
// the serial interrupt is requested.
type Controller struct {
	InternalClock   bool // if true, this controller is the master.
	TransferRequest bool // if true, a transfer has been requested.

	AttachedDevice Device // the device that is attached to this controller.

	b   *io.Bus
	irq *interrupts.Controller
	s   *scheduler.Scheduler
}

// NewController creates a new Controller.
//
// By default, the Controller is attached to a nullDevice, which acts as if
// there is no device attached. If you want to attach a device, use the
// Controller.Attach method.
func NewController(b *io.Bus, irq *interrupts.Controller, s *scheduler.Scheduler) *Controller {
	c := &Controller{
		b:              b,
		irq:            irq,
		s:              s,
		AttachedDevice: nullDevice{},
	}
	b.ReserveAddress(types.SC, func(v byte) byte {
		c.InternalClock = v&types.Bit0 != 0
		c.TransferRequest = v&types.Bit7 != 0

		if c.TransferRequest && c.InternalClock {
			s.Defer(scheduler.SerialTransfer, TransferCycles)
		} else {
			s.DescheduleEvent(scheduler.SerialTransfer)
		}

		return v | 0x7E // bits 1-6 are always set
	})
	b.Set(types.SC, 0x7E)

	s.RegisterEvent(scheduler.SerialTransfer, c.complete)
	return c
}

// Attach attaches a Device to the Controller.
func (c *Controller) Attach(d Device) {
	c.AttachedDevice = d
}

// complete finishes a transfer.
func (c *Controller) complete() {
	if !c.TransferRequest {
		return
	}

	c.b.Set(types.SB, c.AttachedDevice.Exchange(c.b.Get(types.SB)))
	c.b.ClearBit(types.SC, types.Bit7)
	c.TransferRequest = false
	c.irq.Request(interrupts.SerialFlag)
}
