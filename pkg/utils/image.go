package utils

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// Scale returns img enlarged by factor using nearest neighbour
// sampling, which keeps pixel art sharp.
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*factor, bounds.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// SaveImage writes img to filename scaled by factor. The format is
// chosen by extension: .bmp for BMP, anything else is written as PNG.
func SaveImage(filename string, img image.Image, factor int) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	img = Scale(img, factor)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".bmp":
		err = bmp.Encode(file, img)
	default:
		err = png.Encode(file, img)
	}
	if err != nil {
		file.Close()
		return fmt.Errorf("utils: encoding %s: %w", filename, err)
	}
	return file.Close()
}
