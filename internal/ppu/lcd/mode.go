// Package lcd describes the modes the LCD controller moves through
// and the layout of the LCD status register.
package lcd

import "github.com/thelolagemann/gomeboy/internal/types"

// Mode represents a mode of the LCD. The value is the one reported
// in bits 0-1 of types.STAT.
type Mode = uint8

const (
	// HBlank is the horizontal blanking mode. The CPU can access both the display RAM and OAM.
	HBlank Mode = iota
	// VBlank is the vertical blanking mode. The CPU can access both the display RAM and OAM.
	VBlank
	// OAM is the OAM scan mode. The CPU can access the display RAM but not OAM.
	OAM
	// VRAM is the pixel transfer mode. The CPU can access neither the display RAM nor OAM.
	VRAM
)

// ModeName returns a readable name of the mode.
func ModeName(m Mode) string {
	switch m {
	case HBlank:
		return "HBlank"
	case VBlank:
		return "VBlank"
	case OAM:
		return "OAM"
	case VRAM:
		return "VRAM"
	}
	return "Unknown"
}

// Bits of types.STAT.
//
//	Bit 6 - LYC=LY Coincidence Interrupt (1=Enable)
//	Bit 5 - Mode 2 OAM Interrupt         (1=Enable)
//	Bit 4 - Mode 1 V-Blank Interrupt     (1=Enable)
//	Bit 3 - Mode 0 H-Blank Interrupt     (1=Enable)
//	Bit 2 - Coincidence Flag  (0:LYC<>LY, 1:LYC=LY)
//	Bit 1-0 - Mode Flag
const (
	CoincidenceInterrupt = types.Bit6
	OAMInterrupt         = types.Bit5
	VBlankInterrupt      = types.Bit4
	HBlankInterrupt      = types.Bit3
	Coincidence          = types.Bit2
	ModeMask             = types.Bit1 | types.Bit0
)

// Interrupt returns the STAT interrupt enable bit for entering the
// given mode, or 0 if the mode has no interrupt source.
func Interrupt(m Mode) uint8 {
	switch m {
	case HBlank:
		return HBlankInterrupt
	case VBlank:
		return VBlankInterrupt
	case OAM:
		return OAMInterrupt
	}
	return 0
}

// Bits of types.LCDC.
const (
	Enabled          = types.Bit7
	WindowTileMap    = types.Bit6
	WindowEnabled    = types.Bit5
	TileDataUnsigned = types.Bit4
	BackgroundMap    = types.Bit3
	SpriteSize       = types.Bit2
	SpritesEnabled   = types.Bit1
	BackgroundEnable = types.Bit0
)
