package ppu

import (
	"github.com/thelolagemann/gomeboy/internal/io"
	"github.com/thelolagemann/gomeboy/internal/scheduler"
	"github.com/thelolagemann/gomeboy/internal/types"
)

// DMATransferCycles is the length of an OAM DMA transfer in machine
// cycles, one per byte.
const DMATransferCycles = 160

// DMA copies 160 bytes from value<<8 into OAM when types.DMA is
// written. The copy lands once the transfer time has elapsed, counted
// from the end of the instruction that wrote the register.
type DMA struct {
	b *io.Bus
	s *scheduler.Scheduler

	source uint16
}

func NewDMA(b *io.Bus, s *scheduler.Scheduler) *DMA {
	d := &DMA{b: b, s: s}
	b.ReserveAddress(types.DMA, func(v byte) byte {
		d.source = uint16(v) << 8
		s.Defer(scheduler.DMATransfer, DMATransferCycles)
		return v
	})
	s.RegisterEvent(scheduler.DMATransfer, d.transfer)
	return d
}

// Active reports whether a transfer is in progress.
func (d *DMA) Active() bool {
	return d.s.Scheduled(scheduler.DMATransfer)
}

func (d *DMA) transfer() {
	for i := uint16(0); i < DMATransferCycles; i++ {
		source := d.source + i
		// sources above 0xDFFF read from the echo of work RAM
		if source >= 0xE000 {
			source &^= 0x2000
		}
		d.b.Set(types.OAM+i, d.b.Get(source))
	}
}
