package views

import (
	"image"
	"image/color"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gomeboy/internal/ppu"
	"github.com/thelolagemann/gomeboy/internal/ppu/palette"
	"github.com/thelolagemann/gomeboy/pkg/display"
	"github.com/thelolagemann/gomeboy/pkg/perf"
)

func testSnapshot() display.Snapshot {
	s := display.Snapshot{
		State:      "halted",
		IME:        true,
		IF:         0x01,
		IE:         0x1F,
		LCDC:       0x91,
		BGP:        0x1B,
		Background: image.NewRGBA(image.Rect(0, 0, ppu.BackgroundSize, ppu.BackgroundSize)),
		Palette:    palette.Palettes[palette.Greyscale],
	}
	s.Registers.AF.SetUint16(0x01B0)
	s.Registers.BC.SetUint16(0x0013)
	s.Registers.DE.SetUint16(0x00D8)
	s.Registers.HL.SetUint16(0x014D)
	s.Registers.SP = 0xFFFE
	s.Registers.PC = 0x0150

	for i := range s.Background.Pix {
		s.Background.Pix[i] = 0xFF
	}
	return s
}

func TestCPU_Update(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	c := NewCPU()
	w := test.NewWindow(c)
	defer w.Close()

	c.Update(testSnapshot())
	assert.Equal(t, "0x01", c.regA.Text)
	assert.Equal(t, "0x13", c.regC.Text)
	assert.Equal(t, "0x4D", c.regL.Text)
	assert.Equal(t, "0x0150", c.pc.Text)
	assert.Equal(t, "0xFFFE", c.sp.Text)
	assert.Equal(t, "Z1 N0 H1 C1", c.regF.Text)
	assert.Equal(t, "halted", c.state.Text)
	assert.Equal(t, "1", c.ime.Text)
	assert.Equal(t, "IF 0x01 IE 0x1F", c.irq.Text)
}

func TestTilemap_Update(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	tm := NewTilemap()
	s := testSnapshot()
	s.SCX, s.SCY = 250, 200
	tm.Update(s)

	white := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	assert.Equal(t, viewportColour, tm.image.RGBAAt(250, 200), "top left")
	assert.Equal(t, viewportColour, tm.image.RGBAAt((250+159)%256, 200), "top right wraps")
	assert.Equal(t, viewportColour, tm.image.RGBAAt(250, (200+143)%256), "bottom left wraps")
	assert.Equal(t, white, tm.image.RGBAAt(100, 100))
	assert.Contains(t, tm.info.Text, "Map   0x9800")
	assert.Contains(t, tm.info.Text, "Tiles 0x8000")

	// the viewport is not drawn into the snapshot
	assert.Equal(t, white, s.Background.RGBAAt(250, 200))

	tm.viewport.SetChecked(false)
	s.LCDC = 0x89
	tm.Update(s)
	assert.Equal(t, white, tm.image.RGBAAt(250, 200))
	assert.Contains(t, tm.info.Text, "Map   0x9C00")
	assert.Contains(t, tm.info.Text, "Tiles 0x8800")
}

func TestTilemap_Scale(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	tm := NewTilemap()
	assert.Equal(t, float32(512), tm.raster.MinSize().Width)
	tm.scale.SetSelected("3x")
	assert.Equal(t, float32(768), tm.raster.MinSize().Height)
}

func TestPalette_Update(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	p := NewPalette()
	s := testSnapshot()
	p.Update(s)

	grey := palette.Palettes[palette.Greyscale]
	for i := 0; i < 4; i++ {
		assert.Equal(t, palette.RGBA(grey[i]), p.shades[i].FillColor)
		// BGP 0x1B reverses the shades
		assert.Equal(t, palette.RGBA(grey[3-i]), p.mapped[i].FillColor)
	}
	assert.Equal(t, "0x1B", p.bgp.Text)
}

func TestPerformance_Update(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	p := NewPerformance(perf.NewRecorder(10), 16742*time.Microsecond)
	p.Update(display.Snapshot{})
	assert.Equal(t, color.RGBA{}, p.image.RGBAAt(0, 0), "nothing to plot")

	for i := 0; i < 5; i++ {
		p.Record(16 * time.Millisecond)
	}
	p.Update(display.Snapshot{})
	assert.NotEqual(t, color.RGBA{}, p.image.RGBAAt(0, 0))
	assert.Equal(t, "average 16ms, target 16.742ms", p.average.Text)
}

func TestNewTabs(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	tabs := NewTabs(NewCPU(), NewTilemap(), NewPalette())
	require.Len(t, tabs.Items, 3)
	assert.Equal(t, "CPU", tabs.Items[0].Text)
	assert.Equal(t, "Palette", tabs.Items[2].Text)
}
