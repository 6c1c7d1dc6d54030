package ppu

import (
	"github.com/thelolagemann/gomeboy/internal/ppu/lcd"
	"github.com/thelolagemann/gomeboy/internal/types"
)

// colourIndex extracts the 2-bit colour index of pixel x (0 = left)
// from a tile row. The high bit comes from the second byte of the row
// and the low bit from the first.
func colourIndex(low, high uint8, x int) uint8 {
	bit := 7 - x
	return (high>>bit)&1<<1 | (low>>bit)&1
}

// tileAddress returns the address of a tile's data. In unsigned mode
// tiles are indexed from types.TileData0; otherwise the index is
// signed and relative to 0x9000.
func tileAddress(id uint8, unsigned bool) uint16 {
	if unsigned {
		return types.TileData0 + uint16(id)*16
	}
	return uint16(0x9000 + int32(int8(id))*16)
}

// renderBackground decodes the full 32x32 tile background map into
// Background.
func (p *PPU) renderBackground() {
	lcdc := p.b.Get(types.LCDC)
	tileMap := types.TileMap0
	if lcdc&lcd.BackgroundMap != 0 {
		tileMap = types.TileMap1
	}
	unsigned := lcdc&lcd.TileDataUnsigned != 0

	shades := p.Palette
	if p.MapBGP {
		shades = shades.Map(p.b.Get(types.BGP))
	}

	for tileY := 0; tileY < 32; tileY++ {
		for tileX := 0; tileX < 32; tileX++ {
			id := p.b.Get(tileMap + uint16(tileY*32+tileX))
			address := tileAddress(id, unsigned)

			for row := 0; row < 8; row++ {
				low := p.b.Get(address + uint16(row*2))
				high := p.b.Get(address + uint16(row*2+1))

				offset := (tileY*8+row)*BackgroundSize + tileX*8
				for x := 0; x < 8; x++ {
					p.Background[offset+x] = shades[colourIndex(low, high, x)]
				}
			}
		}
	}
}
