package display

import (
	"image"

	"github.com/thelolagemann/gomeboy/internal/ppu/palette"
	"github.com/thelolagemann/gomeboy/internal/types"
)

// Inspector is implemented by emulators that can hand their internal
// state to a driver's debug views.
type Inspector interface {
	// Inspect returns a copy of the emulator state, taken between
	// frames. It is safe to call from any goroutine.
	Inspect() Snapshot
}

// Snapshot is a copy of the emulator state.
type Snapshot struct {
	Registers types.Registers

	// State is the CPU run-state, e.g. "running" or "halted".
	State string
	IME   bool

	IF, IE uint8

	LCDC, STAT, LY, SCX, SCY, BGP uint8

	// Background is the full 256x256 background layer.
	Background *image.RGBA
	// Palette is the palette the shades are drawn from, before BGP
	// is applied.
	Palette palette.Palette

	Frames uint64
	Cycles uint64 // machine cycles since power on
}
