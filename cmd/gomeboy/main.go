// Command gomeboy runs a DMG cartridge on one of the installed display
// drivers.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/thelolagemann/gomeboy/internal/cpu"
	"github.com/thelolagemann/gomeboy/internal/gameboy"
	"github.com/thelolagemann/gomeboy/internal/joypad"
	"github.com/thelolagemann/gomeboy/internal/ppu/palette"
	"github.com/thelolagemann/gomeboy/pkg/display"
	"github.com/thelolagemann/gomeboy/pkg/display/event"
	_ "github.com/thelolagemann/gomeboy/pkg/display/fyne"
	_ "github.com/thelolagemann/gomeboy/pkg/display/headless"
	_ "github.com/thelolagemann/gomeboy/pkg/display/sdl"
	_ "github.com/thelolagemann/gomeboy/pkg/display/web"
	"github.com/thelolagemann/gomeboy/pkg/log"
	"github.com/thelolagemann/gomeboy/pkg/perf"
	"github.com/thelolagemann/gomeboy/pkg/utils"
)

var (
	_ display.Emulator  = &gameboy.GameBoy{}
	_ display.Inspector = &gameboy.GameBoy{}
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	romFile := flag.String("rom", "", "The rom file to load (asks for one when empty)")
	bootROM := flag.String("boot", "", "The boot rom file to load")
	displayDriver := flag.String("driver", "sdl", "The display driver to use. Can be sdl, web, headless or auto (the first installed)")
	speed := flag.Float64("speed", 1, "The speed to run the emulator at (0 is unthrottled)")
	paletteName := flag.String("palette", "greyscale", "The palette to render with")
	mapBGP := flag.Bool("bgp", true, "Map shades through the BGP register")
	quirks := flag.String("quirks", "", "Comma separated legacy cpu behaviours: incdec-carry, bit-carry, baseline-timing")
	serialOut := flag.Bool("serial", false, "Print bytes sent over the serial port to stdout")
	debug := flag.Bool("debug", false, "Trace every executed instruction")
	screenshot := flag.String("screenshot", "", "Save the last frame to this file (png or bmp) on exit")
	scale := flag.Int("scale", 1, "Scale factor of the screenshot (1-8)")
	plotFile := flag.String("plot", "", "Save a plot of the frame times to this file on exit")
	statsView := flag.Bool("statsview", false, "Serve runtime statistics on "+perf.StatsAddress)
	memvizFile := flag.String("memviz", "", "Write a graphviz dump of the cpu state to this file on exit")

	display.RegisterFlags()
	flag.Parse()

	logger := log.NewWithWriter(os.Stderr, *debug)

	if len(display.InstalledDrivers) == 0 {
		return fmt.Errorf("no display drivers installed")
	}

	if *romFile == "" {
		file, err := utils.AskForFile("Select a ROM", ".")
		if err != nil {
			return fmt.Errorf("selecting rom: %w", err)
		}
		*romFile = file
	}
	rom, err := utils.LoadFile(*romFile)
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}

	opts := []gameboy.Opt{gameboy.WithLogger(logger), gameboy.Speed(*speed)}
	if *bootROM != "" {
		boot, err := utils.LoadFile(*bootROM)
		if err != nil {
			return fmt.Errorf("loading boot rom: %w", err)
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}

	p, err := palette.ByName(*paletteName)
	if err != nil {
		return err
	}
	opts = append(opts, gameboy.WithPalette(p, *mapBGP))

	q, err := cpu.ParseQuirks(*quirks)
	if err != nil {
		return err
	}
	opts = append(opts, gameboy.WithQuirks(q))

	if *serialOut {
		opts = append(opts, gameboy.WithSerialOutput(os.Stdout))
	}
	if *debug {
		opts = append(opts, gameboy.Debug())
	}

	var frames *perf.Recorder
	if *plotFile != "" {
		frames = perf.NewRecorder(3600)
		opts = append(opts, gameboy.WithFrameStats(frames.Record))
	}
	if *statsView {
		stop := perf.ServeStats(perf.StatsAddress, logger)
		defer stop()
	}

	gb, err := gameboy.NewGameBoy(rom, opts...)
	if err != nil {
		return err
	}

	driver := display.GetDriver(strings.ToLower(*displayDriver))
	if driver == nil {
		return fmt.Errorf("invalid display driver %q", *displayDriver)
	}
	driver.Initialize(gb)

	fb := make(chan []byte, 1)
	events := make(chan event.Event, 16)
	pressed := make(chan joypad.Button, 10)
	released := make(chan joypad.Button, 10)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	emuErr := make(chan error, 1)
	go func() {
		emuErr <- gb.Run(ctx, fb, events, pressed, released)
		// let the driver return once the emulation ends
		driver.Stop()
	}()

	if err := driver.Start(fb, events, pressed, released); err != nil {
		logger.Errorf("display: %v", err)
	}
	cancel()
	err = <-emuErr

	if *screenshot != "" {
		if err := utils.SaveImage(*screenshot, gb.PPU.Image(), utils.Clamp(1, *scale, 8)); err != nil {
			logger.Errorf("saving screenshot: %v", err)
		}
	}
	if frames != nil {
		if err := frames.SavePlot(*plotFile, gameboy.FrameTime); err != nil {
			logger.Errorf("saving plot: %v", err)
		}
	}
	if *memvizFile != "" {
		if err := dumpCPU(*memvizFile, gb.CPU); err != nil {
			logger.Errorf("writing cpu dump: %v", err)
		}
	}

	return err
}

func dumpCPU(filename string, c *cpu.CPU) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	memviz.Map(f, &c.Registers)
	return nil
}
