// Package palette holds the shade tables used to turn 2-bit colour
// indices into packed ARGB pixels.
package palette

import (
	"fmt"
	"image/color"
	"strings"
)

const (
	// Greyscale is the default greyscale palette.
	Greyscale = iota
	// Green is the green palette which attempts to emulate
	// the original colour palette as it would have appeared
	// on the original Game Boy.
	Green
	// Red is a red palette.
	Red
	// Yellow is a yellow palette.
	Yellow
)

// Palette is four shades in packed 0xAARRGGBB form, lightest first.
type Palette [4]uint32

// Palettes is a list of all available palettes.
var Palettes = []Palette{
	Greyscale: {0xFFFFFFFF, 0xFFBBBBBB, 0xFF666666, 0xFF000000},
	Green:     {0xFF9BBC0F, 0xFF8BAC0F, 0xFF306230, 0xFF0F380F},
	Red:       {0xFFFF0000, 0xFFCC0000, 0xFF770000, 0xFF000000},
	Yellow:    {0xFFFFFF00, 0xFFCCCC00, 0xFF777700, 0xFF000000},
}

var names = []string{"greyscale", "green", "red", "yellow"}

// ByName returns the palette with the given name.
func ByName(name string) (Palette, error) {
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return Palettes[i], nil
		}
	}
	return Palette{}, fmt.Errorf("unknown palette %q, expected one of %s", name, strings.Join(names, ", "))
}

// Map returns the palette selected by a BGP/OBP style register: each
// 2-bit field of b picks the shade used for the matching colour index.
func (p Palette) Map(b byte) Palette {
	return Palette{
		p[b&0x03],
		p[(b>>2)&0x03],
		p[(b>>4)&0x03],
		p[(b>>6)&0x03],
	}
}

// RGBA converts a packed pixel into a color.RGBA.
func RGBA(pixel uint32) color.RGBA {
	return color.RGBA{
		R: uint8(pixel >> 16),
		G: uint8(pixel >> 8),
		B: uint8(pixel),
		A: uint8(pixel >> 24),
	}
}
