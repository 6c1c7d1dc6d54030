// Package gameboy provides an emulation of a Nintendo Game Boy.
//
// The GameBoy type owns every component and drives them from a single
// goroutine: each Step executes one CPU instruction (or interrupt
// dispatch) and then advances the PPU, the timer, the optional audio
// Ticker and the event scheduler by the machine cycles it consumed.
package gameboy

import (
	"context"
	"fmt"
	stdio "io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thelolagemann/gomeboy/internal/boot"
	"github.com/thelolagemann/gomeboy/internal/cartridge"
	"github.com/thelolagemann/gomeboy/internal/cpu"
	"github.com/thelolagemann/gomeboy/internal/interrupts"
	"github.com/thelolagemann/gomeboy/internal/io"
	"github.com/thelolagemann/gomeboy/internal/joypad"
	"github.com/thelolagemann/gomeboy/internal/ppu"
	"github.com/thelolagemann/gomeboy/internal/ppu/palette"
	"github.com/thelolagemann/gomeboy/internal/scheduler"
	"github.com/thelolagemann/gomeboy/internal/serial"
	"github.com/thelolagemann/gomeboy/internal/timer"
	"github.com/thelolagemann/gomeboy/internal/types"
	"github.com/thelolagemann/gomeboy/pkg/display"
	"github.com/thelolagemann/gomeboy/pkg/display/event"
	"github.com/thelolagemann/gomeboy/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = cpu.ClockSpeed
	// FrameTime is the time a frame takes on hardware, roughly 16.74ms.
	FrameTime = time.Second * ppu.FrameClocks * 4 / ClockSpeed
	// FrameSize is the size of a published frame, RGBA ordered.
	FrameSize = ppu.ScreenWidth * ppu.ScreenHeight * 4
)

// Ticker is a collaborator advanced by the main loop after every step,
// such as an audio timing engine.
type Ticker interface {
	Tick(cycles uint64)
}

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU        *cpu.CPU
	PPU        *ppu.PPU
	DMA        *ppu.DMA
	Interrupts *interrupts.Controller
	Timer      *timer.Controller
	Joypad     *joypad.State
	Serial     *serial.Controller
	Scheduler  *scheduler.Scheduler
	Cartridge  *cartridge.Cartridge
	Boot       *boot.ROM

	// Clock is the cumulative clock since power on.
	Clock types.Clock

	log.Logger

	b     *io.Bus
	audio Ticker

	// set by the Opt functions before the components are built
	bootROM    []byte
	quirks     cpu.Quirks
	palette    palette.Palette
	mapBGP     bool
	serialOut  stdio.Writer
	debug      bool
	speed      float64
	frameStats func(time.Duration)

	running atomic.Bool
	paused  atomic.Bool

	// held by Run while a frame is emulated
	mu sync.Mutex

	pixels []uint32
}

// NewGameBoy returns a new GameBoy with rom mapped into the address
// space. Without a boot ROM the registers are set to the values the
// DMG boot ROM leaves behind and execution starts at 0x0100.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		Logger:  log.NewNullLogger(),
		palette: palette.Palettes[palette.Greyscale],
		pixels:  make([]uint32, ppu.ScreenWidth*ppu.ScreenHeight),
	}
	for _, opt := range opts {
		opt(g)
	}

	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, fmt.Errorf("gameboy: loading cartridge: %w", err)
	}

	var bootROM *boot.ROM
	if g.bootROM != nil {
		if bootROM, err = boot.Load(g.bootROM); err != nil {
			return nil, fmt.Errorf("gameboy: loading boot rom: %w", err)
		}
	}

	b := io.NewBus()
	irq := interrupts.NewController(b)
	sched := scheduler.NewScheduler()

	g.b = b
	g.Interrupts = irq
	g.Scheduler = sched
	g.Cartridge = cart
	g.Boot = bootROM

	cart.Map(b, g.Logger)

	g.PPU = ppu.New(b, irq)
	g.PPU.Palette = g.palette
	g.PPU.MapBGP = g.mapBGP
	g.DMA = ppu.NewDMA(b, sched)
	g.Timer = timer.NewController(b, irq)
	g.Joypad = joypad.New(b)
	g.Serial = serial.NewController(b, irq, sched)
	if g.serialOut != nil {
		g.Serial.Attach(serial.WriterDevice{W: g.serialOut})
	}

	g.CPU = cpu.NewCPU(b, irq, g.Logger)
	g.CPU.Quirks = g.quirks
	g.CPU.Debug = g.debug

	if bootROM != nil {
		bootROM.Map(b)
		g.Logger.Infof("boot rom: %s (%s)", bootROM.Model(), bootROM.Checksum())
	} else {
		g.skipBoot()
	}

	return g, nil
}

// skipBoot sets up the state the DMG boot ROM leaves behind.
func (g *GameBoy) skipBoot() {
	g.CPU.AF.SetUint16(0x01B0)
	g.CPU.BC.SetUint16(0x0013)
	g.CPU.DE.SetUint16(0x00D8)
	g.CPU.HL.SetUint16(0x014D)
	g.CPU.SP = 0xFFFE
	g.CPU.PC = 0x0100

	g.b.Set(types.LCDC, 0x91)
	g.b.Set(types.BGP, 0xFC)
	g.b.Set(types.BDIS, 0x01)
}

// Bus returns the address space shared by the components.
func (g *GameBoy) Bus() *io.Bus {
	return g.b
}

// Step executes one CPU step and advances every other component by
// the machine cycles it took. It returns the CPU error once the CPU
// has locked up.
func (g *GameBoy) Step() error {
	g.CPU.Step()
	g.Clock.Add(g.CPU.Clock)

	m := g.CPU.Clock.M
	g.PPU.Tick(m)
	g.Timer.Tick(m)
	if g.audio != nil {
		g.audio.Tick(m)
	}
	g.Scheduler.Tick(m)

	return g.CPU.Err()
}

// Frame steps until the PPU renders a frame, or a frame's worth of
// cycles has elapsed with the display off.
func (g *GameBoy) Frame() error {
	start := g.Clock.M
	for g.Clock.M-start < ppu.FrameClocks {
		if err := g.Step(); err != nil {
			return err
		}
		if g.PPU.FrameReady() {
			break
		}
	}
	return nil
}

// Run runs the emulation until ctx is done, Stop is called or the
// CPU locks up. Every frame is published to fb as FrameSize RGBA bytes
// and input is drained from pressed and released. Neither the frame
// publish nor the input poll block: a frame the receiver is not ready
// for is dropped. Any channel may be nil.
func (g *GameBoy) Run(ctx context.Context, fb chan<- []byte, events chan<- event.Event, pressed, released <-chan joypad.Button) error {
	g.running.Store(true)
	defer g.running.Store(false)

	g.Logger.Infof("starting emulation of %s", g.Cartridge.Title())

	frames := 0
	second := time.Now()
	for g.running.Load() {
		if ctx.Err() != nil {
			return nil
		}
		g.poll(pressed, released)

		start := time.Now()
		if g.paused.Load() {
			time.Sleep(FrameTime)
			continue
		}
		var f []byte
		g.mu.Lock()
		err := g.Frame()
		if err == nil && fb != nil {
			f = g.frame()
		}
		g.mu.Unlock()
		if err != nil {
			g.Logger.Errorf("emulation stopped at %d cycles: %v", g.Clock.T, err)
			return err
		}

		if f != nil {
			select {
			case fb <- f:
			default:
			}
		}

		elapsed := time.Since(start)
		if g.frameStats != nil {
			g.frameStats(elapsed)
		}
		if g.speed > 0 {
			if wait := time.Duration(float64(FrameTime)/g.speed) - elapsed; wait > 0 {
				time.Sleep(wait)
			}
		}

		frames++
		if time.Since(second) >= time.Second {
			send(events, event.Event{Type: event.Title, Data: fmt.Sprintf("%s | FPS: %d", g.Cartridge.Title(), frames)})
			send(events, event.Event{Type: event.FrameTime, Data: time.Since(second) / time.Duration(frames)})
			frames = 0
			second = time.Now()
		}
	}

	return nil
}

// poll drains any pending input without blocking.
func (g *GameBoy) poll(pressed, released <-chan joypad.Button) {
	for {
		select {
		case b := <-pressed:
			g.Joypad.Press(b)
		case b := <-released:
			g.Joypad.Release(b)
		default:
			return
		}
	}
}

func send(events chan<- event.Event, e event.Event) {
	if events == nil {
		return
	}
	select {
	case events <- e:
	default:
	}
}

// frame returns the visible window as RGBA bytes.
func (g *GameBoy) frame() []byte {
	g.PPU.Viewport(g.pixels)

	out := make([]byte, FrameSize)
	for i, pixel := range g.pixels {
		c := palette.RGBA(pixel)
		out[i*4] = c.R
		out[i*4+1] = c.G
		out[i*4+2] = c.B
		out[i*4+3] = c.A
	}
	return out
}

// Inspect returns a copy of the emulator state. While Run is executing
// the copy is taken between frames.
func (g *GameBoy) Inspect() display.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	return display.Snapshot{
		Registers:  g.CPU.Registers,
		State:      g.CPU.State().String(),
		IME:        g.Interrupts.IME,
		IF:         g.b.Get(types.IF),
		IE:         g.b.Get(types.IE),
		LCDC:       g.b.Get(types.LCDC),
		STAT:       g.b.Get(types.STAT),
		LY:         g.b.Get(types.LY),
		SCX:        g.b.Get(types.SCX),
		SCY:        g.b.Get(types.SCY),
		BGP:        g.b.Get(types.BGP),
		Background: g.PPU.BackgroundImage(),
		Palette:    g.PPU.Palette,
		Frames:     g.PPU.Frames,
		Cycles:     g.Clock.M,
	}
}

// Stop stops a running emulation after the current frame.
func (g *GameBoy) Stop() {
	g.running.Store(false)
}

// IsRunning reports whether Run is executing.
func (g *GameBoy) IsRunning() bool {
	return g.running.Load()
}

// Pause pauses a running emulation.
func (g *GameBoy) Pause() {
	g.paused.Store(true)
}

// Unpause resumes a paused emulation.
func (g *GameBoy) Unpause() {
	g.paused.Store(false)
}

// Paused reports whether the emulation is paused.
func (g *GameBoy) Paused() bool {
	return g.paused.Load()
}
