//go:build !test

package utils

import (
	"image"
	"path/filepath"
	"strings"

	"github.com/sqweek/dialog"
)

// AskForFile shows a file picker for ROM images.
func AskForFile(title, startingDir string) (string, error) {
	return dialog.File().
		SetStartDir(startingDir).
		Filter("Game Boy ROM", "gb", "zip", "7z", "gz").
		Title(title).
		Load()
}

// SaveImageAs asks the user where to save img, then saves it through
// SaveImage. A filename without a png or bmp extension is saved as PNG.
func SaveImageAs(img image.Image, factor int) error {
	filename, err := dialog.File().
		Filter("PNG Image", "png").
		Filter("BMP Image", "bmp").
		Title("Save Image").
		Save()
	if err != nil {
		return err
	}

	if ext := strings.ToLower(filepath.Ext(filename)); ext != ".png" && ext != ".bmp" {
		filename += ".png"
	}
	return SaveImage(filename, img, factor)
}
