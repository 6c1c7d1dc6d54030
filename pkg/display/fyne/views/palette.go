package views

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/gomeboy/internal/ppu/palette"
	"github.com/thelolagemann/gomeboy/pkg/display"
)

// Palette shows the four shades of the palette and the shades BGP
// assigns to each colour index.
type Palette struct {
	widget.BaseWidget

	shades, mapped [4]*canvas.Rectangle
	bgp            *widget.Label
}

func NewPalette() *Palette {
	p := &Palette{bgp: mono("0x00")}
	for i := range p.shades {
		p.shades[i] = swatch()
		p.mapped[i] = swatch()
	}
	p.ExtendBaseWidget(p)
	return p
}

func swatch() *canvas.Rectangle {
	r := canvas.NewRectangle(palette.RGBA(0))
	r.SetMinSize(fyne.NewSize(32, 32))
	return r
}

func (p *Palette) Title() string {
	return "Palette"
}

func (p *Palette) CreateRenderer() fyne.WidgetRenderer {
	shades, mapped := container.NewHBox(), container.NewHBox()
	for i := range p.shades {
		shades.Add(p.shades[i])
		mapped.Add(p.mapped[i])
	}
	return widget.NewSimpleRenderer(container.NewGridWithColumns(2,
		bold("Shades"), shades,
		bold("Background"), mapped,
		bold("BGP"), p.bgp,
	))
}

// Update recolours the swatches that changed.
func (p *Palette) Update(s display.Snapshot) {
	mapped := s.Palette.Map(s.BGP)
	for i := range p.shades {
		fill(p.shades[i], s.Palette[i])
		fill(p.mapped[i], mapped[i])
	}
	p.bgp.SetText(fmt.Sprintf("0x%02X", s.BGP))
}

func fill(r *canvas.Rectangle, pixel uint32) {
	c := palette.RGBA(pixel)
	if r.FillColor == c {
		return
	}
	r.FillColor = c
	r.Refresh()
}
