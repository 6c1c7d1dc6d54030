package gameboy

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gomeboy/pkg/utils"
)

// Test ROM suites are not distributed with the repository, point
// GOMEBOY_TEST_ROMS at a directory holding blargg/ and mooneye/ to
// run them.
func romDir(t *testing.T, suite string) string {
	base := os.Getenv("GOMEBOY_TEST_ROMS")
	if base == "" {
		base = filepath.Join("testdata", "roms")
	}
	dir := filepath.Join(base, suite)
	if _, err := os.Stat(dir); err != nil {
		t.Skipf("%s test roms not found in %s", suite, base)
	}
	return dir
}

func roms(t *testing.T, dir string) []string {
	files, err := filepath.Glob(filepath.Join(dir, "*.gb"))
	require.NoError(t, err)
	if len(files) == 0 {
		t.Skipf("no roms in %s", dir)
	}
	return files
}

func loadROM(t *testing.T, file string, opts ...Opt) *GameBoy {
	rom, err := utils.LoadFile(file)
	require.NoError(t, err)
	g, err := NewGameBoy(rom, opts...)
	require.NoError(t, err)
	return g
}

// blargg's cpu_instrs report over the serial port.
func TestROMs_Blargg(t *testing.T) {
	dir := filepath.Join(romDir(t, "blargg"), "cpu_instrs", "individual")
	for _, file := range roms(t, dir) {
		file := file
		t.Run(filepath.Base(file), func(t *testing.T) {
			t.Parallel()
			out := &bytes.Buffer{}
			g := loadROM(t, file, WithSerialOutput(out))

			// 60 emulated seconds is enough for the slowest test
			for i := 0; i < 60*60; i++ {
				require.NoError(t, g.Frame())
				if s := out.String(); strings.Contains(s, "Passed") || strings.Contains(s, "Failed") {
					break
				}
			}
			assert.Contains(t, out.String(), "Passed")
			assert.NotContains(t, out.String(), "Failed")
		})
	}
}

// mooneye tests execute LD B,B once done and leave the fibonacci
// sequence in the registers when they pass.
func TestROMs_Mooneye(t *testing.T) {
	dir := filepath.Join(romDir(t, "mooneye"), "acceptance")
	for _, file := range roms(t, dir) {
		file := file
		if strings.Contains(file, "cgb") || strings.Contains(file, "sgb") {
			continue
		}
		t.Run(filepath.Base(file), func(t *testing.T) {
			t.Parallel()
			g := loadROM(t, file)

			for i := 0; i < ClockSpeed*10; i++ {
				if g.Bus().Read(g.CPU.PC) == 0x40 {
					break
				}
				require.NoError(t, g.Step())
			}
			assert.Equal(t, []uint8{3, 5, 8, 13, 21, 34}, []uint8{
				g.CPU.B(), g.CPU.C(), g.CPU.D(), g.CPU.E(), g.CPU.H(), g.CPU.L(),
			})
		})
	}
}
