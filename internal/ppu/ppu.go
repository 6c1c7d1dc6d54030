package ppu

import (
	"github.com/thelolagemann/gomeboy/internal/interrupts"
	"github.com/thelolagemann/gomeboy/internal/io"
	"github.com/thelolagemann/gomeboy/internal/ppu/lcd"
	"github.com/thelolagemann/gomeboy/internal/ppu/palette"
	"github.com/thelolagemann/gomeboy/internal/types"
)

const (
	// ScreenWidth is the width of the visible screen.
	ScreenWidth = 160
	// ScreenHeight is the height of the visible screen.
	ScreenHeight = 144
	// BackgroundSize is the width and height of the background layer.
	BackgroundSize = 256

	// FrameClocks is the number of machine cycles in a frame.
	FrameClocks = 17556
	// ClocksPerLine is the number of machine cycles in a scanline.
	ClocksPerLine = 114
	// OAMThreshold is the cycle within a line where OAM scan ends.
	OAMThreshold = 21
	// TransferThreshold is the cycle within a line where pixel
	// transfer ends and HBlank begins.
	TransferThreshold = 64
	// VisibleLines is the last scanline value before VBlank.
	VisibleLines = 144
)

// PPU is the video timing engine. It advances by the machine cycles
// consumed by the CPU, walks each scanline through the OAM, VRAM and
// HBlank modes, writes the scanline into types.LY and raises the
// VBlank and LCD STAT interrupts. When a new frame begins, the
// background layer is rendered into Background.
type PPU struct {
	// Background holds the last rendered 256x256 background layer.
	Background [BackgroundSize * BackgroundSize]uint32
	// Palette is the set of shades colour indices are mapped through.
	Palette palette.Palette
	// MapBGP maps colour indices through types.BGP before selecting
	// a shade from Palette.
	MapBGP bool

	// Frames counts the rendered frames.
	Frames uint64

	b   *io.Bus
	irq *interrupts.Controller

	internalClock  uint64
	prevHorizontal uint64
	prevVertical   uint64
	mode           lcd.Mode
	coincidence    bool
	frameReady     bool
}

// New returns a PPU using the greyscale palette.
func New(b *io.Bus, irq *interrupts.Controller) *PPU {
	return &PPU{
		b:       b,
		irq:     irq,
		Palette: palette.Palettes[palette.Greyscale],
	}
}

// Tick advances the PPU by the given number of machine cycles.
func (p *PPU) Tick(cycles uint64) {
	if !p.b.TestBit(types.LCDC, lcd.Enabled) {
		p.DisplayOff()
		return
	}

	// first tick since power on or since the display was re-enabled
	if p.internalClock == 0 && p.prevHorizontal == 0 && p.prevVertical == 0 {
		p.fill(p.Palette[0])
	}

	p.internalClock = (p.internalClock + cycles) % FrameClocks
	horizontal := p.internalClock % ClocksPerLine
	vertical := p.internalClock/ClocksPerLine + 1

	p.b.Set(types.LY, uint8(vertical))

	if mode := modeFor(horizontal, vertical); mode != p.mode {
		p.setMode(mode)
	}

	if p.prevVertical <= VisibleLines && vertical > VisibleLines {
		p.irq.Request(interrupts.VBlankFlag)
	}
	if p.prevVertical > VisibleLines && vertical < VisibleLines {
		p.renderBackground()
		p.frameReady = true
		p.Frames++
	}

	p.compare()

	p.prevHorizontal = horizontal
	p.prevVertical = vertical
}

// modeFor returns the mode for a position within the frame.
func modeFor(horizontal, vertical uint64) lcd.Mode {
	switch {
	case vertical > VisibleLines:
		return lcd.VBlank
	case horizontal < OAMThreshold:
		return lcd.OAM
	case horizontal < TransferThreshold:
		return lcd.VRAM
	}
	return lcd.HBlank
}

// setMode reports the mode in types.STAT and raises the LCD STAT
// interrupt if the mode's source is enabled.
func (p *PPU) setMode(mode lcd.Mode) {
	p.mode = mode
	stat := p.b.Get(types.STAT)
	p.b.Set(types.STAT, stat&^lcd.ModeMask|mode)

	if source := lcd.Interrupt(mode); source != 0 && stat&source != 0 {
		p.irq.Request(interrupts.LCDFlag)
	}
}

// compare updates the coincidence flag, raising the LCD STAT interrupt
// when it becomes set and the source is enabled.
func (p *PPU) compare() {
	equal := p.b.Get(types.LY) == p.b.Get(types.LYC)
	if equal {
		p.b.SetBit(types.STAT, lcd.Coincidence)
		if !p.coincidence && p.b.TestBit(types.STAT, lcd.CoincidenceInterrupt) {
			p.irq.Request(interrupts.LCDFlag)
		}
	} else {
		p.b.ClearBit(types.STAT, lcd.Coincidence)
	}
	p.coincidence = equal
}

// DisplayOff resets the timing counters and clears the background
// layer. It only acts on the transition into the off state, so calling
// it again while the display is off changes nothing.
func (p *PPU) DisplayOff() {
	if p.internalClock == 0 && p.prevHorizontal == 0 && p.prevVertical == 0 {
		return
	}

	p.internalClock = 0
	p.prevHorizontal = 0
	p.prevVertical = 0
	p.coincidence = false
	p.fill(0)

	p.mode = lcd.HBlank
	p.b.Set(types.LY, 0)
	p.b.Set(types.STAT, p.b.Get(types.STAT)&^(lcd.ModeMask|lcd.Coincidence))
}

// Mode returns the current mode.
func (p *PPU) Mode() lcd.Mode {
	return p.mode
}

// Position returns the position within the line and the scanline
// derived on the last tick.
func (p *PPU) Position() (horizontal, vertical uint64) {
	return p.prevHorizontal, p.prevVertical
}

// FrameReady reports whether a frame was rendered since the last call.
func (p *PPU) FrameReady() bool {
	ready := p.frameReady
	p.frameReady = false
	return ready
}

func (p *PPU) fill(pixel uint32) {
	for i := range p.Background {
		p.Background[i] = pixel
	}
}
