package ppu

import (
	"image"

	"github.com/thelolagemann/gomeboy/internal/ppu/palette"
	"github.com/thelolagemann/gomeboy/internal/types"
)

// Viewport copies the visible 160x144 window of the background into
// dst, offset by types.SCX and types.SCY and wrapping around the edges
// of the 256x256 layer. dst must hold ScreenWidth*ScreenHeight pixels.
func (p *PPU) Viewport(dst []uint32) {
	scx, scy := int(p.b.Get(types.SCX)), int(p.b.Get(types.SCY))
	for y := 0; y < ScreenHeight; y++ {
		row := ((y + scy) % BackgroundSize) * BackgroundSize
		for x := 0; x < ScreenWidth; x++ {
			dst[y*ScreenWidth+x] = p.Background[row+(x+scx)%BackgroundSize]
		}
	}
}

// Image returns the visible window as an image.
func (p *PPU) Image() *image.RGBA {
	pixels := make([]uint32, ScreenWidth*ScreenHeight)
	p.Viewport(pixels)
	return toImage(pixels, ScreenWidth, ScreenHeight)
}

// BackgroundImage returns the full 256x256 background layer as an image.
func (p *PPU) BackgroundImage() *image.RGBA {
	return toImage(p.Background[:], BackgroundSize, BackgroundSize)
}

func toImage(pixels []uint32, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, pixel := range pixels {
		img.SetRGBA(i%width, i/width, palette.RGBA(pixel))
	}
	return img
}
