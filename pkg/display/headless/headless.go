// Package headless provides a display driver that discards frames,
// for benchmarking and for running test ROMs without a window.
package headless

import (
	"sync"

	"github.com/thelolagemann/gomeboy/internal/joypad"
	"github.com/thelolagemann/gomeboy/pkg/display"
	"github.com/thelolagemann/gomeboy/pkg/display/event"
	"github.com/thelolagemann/gomeboy/pkg/log"
)

func init() {
	driver := New(log.New())
	display.Install("headless", driver, []display.DriverOption{
		{
			Name:        "frames",
			Default:     0,
			Value:       &driver.Limit,
			Type:        "int",
			Description: "Stop after this many frames (0 runs until the emulator stops)",
		},
	})
}

// Driver counts the frames it receives and keeps the most recent one.
type Driver struct {
	// Limit is the number of frames after which Start returns.
	Limit int
	// Frames is the number of frames received.
	Frames int
	// Last is the most recently received frame.
	Last []byte

	log      log.Logger
	stop     chan struct{}
	stopOnce sync.Once
}

// New returns a headless driver without a frame limit.
func New(l log.Logger) *Driver {
	return &Driver{log: l, stop: make(chan struct{})}
}

func (d *Driver) Initialize(display.Emulator) {}

// Start consumes frames until the limit is reached or the driver is
// stopped. Input channels are never written.
func (d *Driver) Start(fb <-chan []byte, events <-chan event.Event, _, _ chan<- joypad.Button) error {
	for {
		select {
		case f := <-fb:
			d.Last = f
			d.Frames++
			if d.Limit > 0 && d.Frames >= d.Limit {
				d.log.Infof("headless: reached %d frames", d.Frames)
				return nil
			}
		case e := <-events:
			switch e.Type {
			case event.Title:
				d.log.Debugf("headless: %s", e.Data)
			case event.Quit:
				return nil
			}
		case <-d.stop:
			return nil
		}
	}
}

// Stop stops the display driver.
func (d *Driver) Stop() error {
	d.stopOnce.Do(func() { close(d.stop) })
	return nil
}
