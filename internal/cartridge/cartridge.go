// Package cartridge parses the cartridge header and maps the game ROM
// into the address space.
package cartridge

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/gomeboy/internal/io"
	"github.com/thelolagemann/gomeboy/pkg/log"
)

// MaxSize is the largest ROM that can be mapped without a memory
// bank controller.
const MaxSize = 0x8000

// ErrTooSmall is returned when the image is too small to hold a header.
var ErrTooSmall = errors.New("cartridge: rom too small to contain a header")

// Cartridge represents a basic game cartridge.
type Cartridge struct {
	rom    []byte
	header Header
}

// New parses the header of rom. The slice is retained.
func New(rom []byte) (*Cartridge, error) {
	if len(rom) < 0x150 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooSmall, len(rom))
	}
	return &Cartridge{
		rom:    rom,
		header: parseHeader(rom[0x100:0x150]),
	}, nil
}

// Header returns the parsed cartridge header.
func (c *Cartridge) Header() Header {
	return c.header
}

// Title returns the cartridge title.
func (c *Cartridge) Title() string {
	return c.header.Title
}

// Map copies up to MaxSize bytes of ROM into the bus at 0x0000.
// Anything past that would need bank switching and is dropped with
// a warning.
func (c *Cartridge) Map(b *io.Bus, l log.Logger) {
	l.Infof("cartridge: %s", c.header.String())
	if !c.header.ChecksumValid {
		l.Warnf("cartridge: header checksum mismatch (0x%02X)", c.header.HeaderChecksum)
	}
	if c.header.CartridgeType != ROM || len(c.rom) > MaxSize {
		l.Warnf("cartridge: %s with %d bytes of ROM, only the first %d are mapped", c.header.CartridgeType, len(c.rom), MaxSize)
	}

	rom := c.rom
	if len(rom) > MaxSize {
		rom = rom[:MaxSize]
	}
	b.Load(0, rom)
}
