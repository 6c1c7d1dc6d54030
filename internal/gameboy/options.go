package gameboy

import (
	"io"
	"time"

	"github.com/thelolagemann/gomeboy/internal/cpu"
	"github.com/thelolagemann/gomeboy/internal/ppu/palette"
	"github.com/thelolagemann/gomeboy/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance. Options are applied before the
// components are created.
type Opt func(gb *GameBoy)

// Debug enables the instruction trace.
func Debug() Opt {
	return func(gb *GameBoy) {
		gb.debug = true
	}
}

func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithBootROM sets the boot ROM for the emulator. The
// registers start zeroed and execution starts at 0x0000.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootROM = rom
	}
}

// WithQuirks selects the legacy CPU behaviour.
func WithQuirks(q cpu.Quirks) Opt {
	return func(gb *GameBoy) {
		gb.quirks = q
	}
}

// WithPalette sets the shades the PPU renders with. When mapBGP is
// set colour indices are first mapped through BGP.
func WithPalette(p palette.Palette, mapBGP bool) Opt {
	return func(gb *GameBoy) {
		gb.palette = p
		gb.mapBGP = mapBGP
	}
}

// WithAudio attaches a Ticker that is advanced alongside the PPU.
func WithAudio(t Ticker) Opt {
	return func(gb *GameBoy) {
		gb.audio = t
	}
}

// WithSerialOutput copies every byte sent over the serial port to w.
func WithSerialOutput(w io.Writer) Opt {
	return func(gb *GameBoy) {
		gb.serialOut = w
	}
}

// Speed throttles Run to speed times the hardware frame rate. A speed
// of 0 runs unthrottled.
func Speed(speed float64) Opt {
	return func(gb *GameBoy) {
		gb.speed = speed
	}
}

// WithFrameStats calls fn with the time each frame took to emulate.
func WithFrameStats(fn func(time.Duration)) Opt {
	return func(gb *GameBoy) {
		gb.frameStats = fn
	}
}
