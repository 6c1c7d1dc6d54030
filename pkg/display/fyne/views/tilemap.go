package views

import (
	"fmt"
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/gomeboy/internal/ppu"
	"github.com/thelolagemann/gomeboy/internal/types"
	"github.com/thelolagemann/gomeboy/pkg/display"
)

// viewportColour outlines the visible window on the background.
var viewportColour = color.RGBA{R: 0xFF, A: 0xFF}

// Tilemap shows the 256x256 background layer built from the selected
// tile map, optionally outlining the area the scroll registers select.
type Tilemap struct {
	widget.BaseWidget

	image  *image.RGBA
	raster *canvas.Raster

	scale    *widget.Select
	viewport *widget.Check
	info     *widget.Label
}

func NewTilemap() *Tilemap {
	t := &Tilemap{
		image: image.NewRGBA(image.Rect(0, 0, ppu.BackgroundSize, ppu.BackgroundSize)),
		info:  mono(""),
	}
	t.raster = canvas.NewRasterFromImage(t.image)
	t.raster.ScaleMode = canvas.ImageScalePixels

	t.scale = widget.NewSelect([]string{"1x", "2x", "3x", "4x"}, func(s string) {
		var factor int
		if _, err := fmt.Sscanf(s, "%dx", &factor); err != nil {
			return
		}
		size := float32(ppu.BackgroundSize * factor)
		t.raster.SetMinSize(fyne.NewSize(size, size))
		t.raster.Refresh()
	})
	t.scale.SetSelected("2x")
	t.viewport = widget.NewCheck("", nil)
	t.viewport.SetChecked(true)

	t.ExtendBaseWidget(t)
	return t
}

func (t *Tilemap) Title() string {
	return "Tilemap"
}

func (t *Tilemap) CreateRenderer() fyne.WidgetRenderer {
	settings := container.NewVBox(
		container.NewGridWithColumns(2, bold("Scale"), t.scale),
		container.NewGridWithColumns(2, bold("Viewport"), t.viewport),
		t.info,
	)
	return widget.NewSimpleRenderer(container.NewHBox(settings, t.raster))
}

// Update copies the background layer of s into the view.
func (t *Tilemap) Update(s display.Snapshot) {
	if s.Background != nil {
		copy(t.image.Pix, s.Background.Pix)
	}
	if t.viewport.Checked {
		drawViewport(t.image, int(s.SCX), int(s.SCY))
	}

	tileMap, tileData := types.TileMap0, types.TileData1
	if s.LCDC&types.Bit3 != 0 {
		tileMap = types.TileMap1
	}
	if s.LCDC&types.Bit4 != 0 {
		tileData = types.TileData0
	}
	t.info.SetText(fmt.Sprintf("Map   0x%04X\nTiles 0x%04X\nSCX   %d\nSCY   %d", tileMap, tileData, s.SCX, s.SCY))
	t.raster.Refresh()
}

// drawViewport outlines the ScreenWidth x ScreenHeight window at scx,
// scy, wrapping around the edges of the background.
func drawViewport(img *image.RGBA, scx, scy int) {
	right := (scx + ppu.ScreenWidth - 1) % ppu.BackgroundSize
	bottom := (scy + ppu.ScreenHeight - 1) % ppu.BackgroundSize
	for x := 0; x < ppu.ScreenWidth; x++ {
		img.SetRGBA((scx+x)%ppu.BackgroundSize, scy, viewportColour)
		img.SetRGBA((scx+x)%ppu.BackgroundSize, bottom, viewportColour)
	}
	for y := 0; y < ppu.ScreenHeight; y++ {
		img.SetRGBA(scx, (scy+y)%ppu.BackgroundSize, viewportColour)
		img.SetRGBA(right, (scy+y)%ppu.BackgroundSize, viewportColour)
	}
}
