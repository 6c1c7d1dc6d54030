package cartridge

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gomeboy/internal/io"
	"github.com/thelolagemann/gomeboy/pkg/log"
)

// testROM returns a ROM only image of the given size with a valid header.
func testROM(size int) []byte {
	rom := make([]byte, size)
	copy(rom[0x134:], "TETRIS")
	rom[0x147] = byte(ROM)
	rom[0x148] = 0x00
	rom[0x14D] = headerChecksum(rom[0x100:0x150])
	return rom
}

func TestNew(t *testing.T) {
	_, err := New(make([]byte, 0x14F))
	assert.True(t, errors.Is(err, ErrTooSmall))

	c, err := New(testROM(MaxSize))
	require.NoError(t, err)

	h := c.Header()
	assert.Equal(t, "TETRIS", c.Title())
	assert.Equal(t, ROM, h.CartridgeType)
	assert.Equal(t, uint(32*1024), h.ROMSize)
	assert.Equal(t, "DMG", h.Hardware())
	assert.False(t, h.GameboyColor())
	assert.True(t, h.ChecksumValid)
	assert.Equal(t, "ROM ONLY", h.CartridgeType.String())
}

func TestHeader_CGB(t *testing.T) {
	rom := testROM(MaxSize)
	rom[0x143] = 0x80
	rom[0x147] = byte(MBC5RAMBATT)
	rom[0x149] = 0x03

	c, err := New(rom)
	require.NoError(t, err)
	h := c.Header()
	assert.True(t, h.GameboyColor())
	assert.Equal(t, uint(32*1024), h.RAMSize)
	assert.False(t, h.ChecksumValid)
	assert.Equal(t, "MBC5+RAM+BATTERY", h.CartridgeType.String())
}

func TestCartridge_Map(t *testing.T) {
	rom := testROM(MaxSize * 2)
	rom[0x7FFF] = 0x12
	rom[0x8000] = 0x34

	c, err := New(rom)
	require.NoError(t, err)

	var out bytes.Buffer
	b := io.NewBus()
	c.Map(b, log.NewWithWriter(&out, false))

	assert.Equal(t, uint8(0x12), b.Read(0x7FFF))
	assert.Equal(t, uint8(0x00), b.Read(0x8000), "rom past 32KB must not be mapped")
	assert.Contains(t, out.String(), "only the first")
}
