// Package boot provides a boot ROM implementation for the Game Boy. Whilst
// this package is not strictly required for the emulator to function, it
// can be used to emulate the boot process of the Game Boy.
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/thelolagemann/gomeboy/internal/io"
	"github.com/thelolagemann/gomeboy/internal/types"
)

// Size is the size of a DMG boot ROM.
const Size = 256

// Sentinel is the last byte of every DMG boot ROM, the operand of the
// final write to types.BDIS that unmaps it.
const Sentinel = 0x50

var (
	// ErrInvalidSize is returned when the image is not Size bytes long.
	ErrInvalidSize = errors.New("boot: invalid boot rom size")
	// ErrInvalidSentinel is returned when the image does not end with Sentinel.
	ErrInvalidSentinel = errors.New("boot: invalid boot rom sentinel")
)

// ROM represents a boot ROM for the Game Boy. When the Game Boy first
// powers on, the boot ROM is mapped to memory addresses 0x0000 -
// 0x00FF.
//
// The boot ROM performs a series of tasks, such as initializing the
// hardware, setting the stack pointer, scrolling the Nintendo logo, etc.
//
// Once the boot ROM has completed its tasks, it is unmapped from memory
// (by writing to the types.BDIS register), and the cartridge is mapped
// over the boot ROM, thus starting the cartridge execution, and preventing
// the boot ROM from being executed again.
type ROM struct {
	raw      [Size]byte
	checksum string

	cartridge [Size]byte // the bytes the boot rom is mapped over
	mapped    bool
}

// Load validates a boot ROM image and calculates its MD5 checksum.
func Load(b []byte) (*ROM, error) {
	if len(b) != Size {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSize, len(b))
	}
	if b[Size-1] != Sentinel {
		return nil, fmt.Errorf("%w: 0x%02X", ErrInvalidSentinel, b[Size-1])
	}

	sum := md5.Sum(b)
	r := &ROM{checksum: hex.EncodeToString(sum[:])}
	copy(r.raw[:], b)
	return r, nil
}

// Map copies the boot ROM over 0x0000 - 0x00FF, keeping the bytes it
// replaces, and reserves types.BDIS so that writing a non-zero value
// restores them.
func (r *ROM) Map(b *io.Bus) {
	copy(r.cartridge[:], b.Slice(0, Size))
	b.Load(0, r.raw[:])
	r.mapped = true

	b.ReserveAddress(types.BDIS, func(v byte) byte {
		if v != 0 && r.mapped {
			b.Load(0, r.cartridge[:])
			r.mapped = false
		}
		return v
	})
}

// Mapped reports whether the boot ROM is still mapped.
func (r *ROM) Mapped() bool {
	return r != nil && r.mapped
}

// Checksum returns the MD5 checksum of the boot rom.
func (r *ROM) Checksum() string {
	if r == nil {
		return ""
	}
	return r.checksum
}

// Model returns the model of the boot rom. The model
// is determined by the checksum of the boot rom.
func (r *ROM) Model() string {
	if r == nil {
		return "none"
	}
	if model, ok := knownChecksums[r.checksum]; ok {
		return model
	}
	return "unknown"
}

// knownChecksums maps the checksums of known boot roms
// to the model they were dumped from.
var knownChecksums = map[string]string{
	DMG0: "Game Boy (DMG-0)",
	DMG:  "Game Boy (DMG-01)",
	MGB:  "Game Boy Pocket",
	SGB:  "Super Game Boy",
	SGB2: "Super Game Boy 2",
}

const (
	// DMG0 is the checksum of the DMG early boot ROM,
	// a variant that was found in very early DMG units and
	// only ever sold in Japan. In the case of a boot failure
	// it flashes the screen, rather than hanging after the
	// Nintendo logo.
	DMG0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	// DMG is the checksum of the DMG boot rom, which is
	// the most common boot ROM found in the original DMG-01
	// models.
	DMG = "32fbbd84168d3482956eb3c5051637f5"
	// MGB differs by a single byte from DMG, loading 0xFF
	// into A rather than 0x01.
	MGB = "71a378e71ff30b2d8a1f02bf5c7896aa"
	// SGB sends the cartridge header to the SNES instead
	// of scrolling the logo.
	SGB = "d574d4f9c12f305074798f54c091a8b4"
	// SGB2 differs by a single byte from SGB, loading 0xFF
	// into A rather than 0x01.
	SGB2 = "e0430bca9925fb9882148fd2dc2418c1"
)
