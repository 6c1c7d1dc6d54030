//go:build !test

// Package fyne provides a display driver built on the fyne toolkit. Besides
// the game window it can open a debugger window with views over the CPU,
// the background layer, the palette and the frame times.
package fyne

import (
	"image"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/thelolagemann/gomeboy/internal/gameboy"
	"github.com/thelolagemann/gomeboy/internal/joypad"
	"github.com/thelolagemann/gomeboy/pkg/display"
	"github.com/thelolagemann/gomeboy/pkg/display/event"
	"github.com/thelolagemann/gomeboy/pkg/display/fyne/views"
	"github.com/thelolagemann/gomeboy/pkg/log"
	"github.com/thelolagemann/gomeboy/pkg/perf"
	"github.com/thelolagemann/gomeboy/pkg/utils"
)

// debugRefresh is how often an open debugger redraws its views.
const debugRefresh = time.Second / 10

func init() {
	driver := &Driver{log: log.New(), stop: make(chan struct{})}
	display.Install("fyne", driver, []display.DriverOption{
		{
			Name:        "zoom",
			Default:     4.0,
			Value:       &driver.zoom,
			Type:        "float",
			Description: "Scale the window by this factor",
		},
		{
			Name:        "debug",
			Default:     false,
			Value:       &driver.debug,
			Type:        "bool",
			Description: "Open the debugger window on start",
		},
	})
}

var keyMap = map[fyne.KeyName]joypad.Button{
	fyne.KeyA:         joypad.ButtonA,
	fyne.KeyB:         joypad.ButtonB,
	fyne.KeyUp:        joypad.ButtonUp,
	fyne.KeyDown:      joypad.ButtonDown,
	fyne.KeyLeft:      joypad.ButtonLeft,
	fyne.KeyRight:     joypad.ButtonRight,
	fyne.KeyReturn:    joypad.ButtonStart,
	fyne.KeyBackspace: joypad.ButtonSelect,
}

// Driver presents frames in a fyne window.
type Driver struct {
	zoom  float64
	debug bool

	emu       display.Emulator
	inspector display.Inspector
	log       log.Logger
	stop      chan struct{}
	stopOnce  sync.Once

	app    fyne.App
	window fyne.Window
	raster *canvas.Raster

	mu     sync.Mutex // guards screen
	screen *image.RGBA

	debugger     fyne.Window
	debuggerOpen atomic.Bool
	views        []views.View
	performance  *views.Performance
}

// Initialize attaches the driver to emu. The debugger is only available
// when emu is also a display.Inspector.
func (d *Driver) Initialize(emu display.Emulator) {
	d.emu = emu
	d.inspector, _ = emu.(display.Inspector)
}

// Start opens the game window and blocks until it is closed or the
// driver is stopped.
func (d *Driver) Start(fb <-chan []byte, events <-chan event.Event, pressed, released chan<- joypad.Button) error {
	d.app = app.NewWithID("com.github.thelolagemann.gomeboy")

	d.window = d.app.NewWindow("GomeBoy")
	d.window.SetMaster()
	d.window.SetPadded(false)

	d.screen = image.NewRGBA(image.Rect(0, 0, display.FrameWidth, display.FrameHeight))
	d.raster = canvas.NewRasterFromImage(d.screen)
	d.raster.ScaleMode = canvas.ImageScalePixels
	d.raster.SetMinSize(fyne.NewSize(display.FrameWidth, display.FrameHeight))
	d.window.SetContent(d.raster)
	d.window.Resize(fyne.NewSize(float32(display.FrameWidth*d.zoom), float32(display.FrameHeight*d.zoom)))

	d.performance = views.NewPerformance(perf.NewRecorder(300), gameboy.FrameTime)
	d.views = []views.View{views.NewCPU(), views.NewTilemap(), views.NewPalette(), d.performance}

	d.bindKeys(pressed, released)
	if d.debug {
		d.toggleDebugger()
	}

	done := make(chan struct{})
	go d.loop(fb, events, done)

	d.window.ShowAndRun()
	close(done)
	return nil
}

// loop presents frames and refreshes the debugger until the app is
// closed or the driver is stopped.
func (d *Driver) loop(fb <-chan []byte, events <-chan event.Event, done <-chan struct{}) {
	ticker := time.NewTicker(debugRefresh)
	defer ticker.Stop()

	for {
		select {
		case f := <-fb:
			d.mu.Lock()
			copy(d.screen.Pix, f)
			d.mu.Unlock()
			d.raster.Refresh()
		case e := <-events:
			switch e.Type {
			case event.Title:
				d.window.SetTitle("GomeBoy | " + e.Data.(string))
			case event.FrameTime:
				if frameTime, ok := e.Data.(time.Duration); ok {
					d.performance.Record(frameTime)
				}
			case event.Quit:
				d.app.Quit()
				return
			}
		case <-ticker.C:
			if !d.debuggerOpen.Load() {
				continue
			}
			s := d.inspector.Inspect()
			for _, v := range d.views {
				v.Update(s)
			}
		case <-d.stop:
			d.app.Quit()
			return
		case <-done:
			return
		}
	}
}

func (d *Driver) bindKeys(pressed, released chan<- joypad.Button) {
	c := d.window.Canvas()
	if desk, ok := c.(desktop.Canvas); ok {
		desk.SetOnKeyDown(func(e *fyne.KeyEvent) {
			if button, ok := keyMap[e.Name]; ok {
				display.Send(pressed, button)
			}
		})
		desk.SetOnKeyUp(func(e *fyne.KeyEvent) {
			if button, ok := keyMap[e.Name]; ok {
				display.Send(released, button)
			}
		})
	}

	c.SetOnTypedKey(func(e *fyne.KeyEvent) {
		switch e.Name {
		case fyne.KeyEscape, fyne.KeySpace:
			display.TogglePause(d.emu)
		case fyne.KeyD:
			d.toggleDebugger()
		case fyne.KeyF11:
			d.window.SetFullScreen(!d.window.FullScreen())
		case fyne.KeyF12:
			if err := utils.CopyImage(d.frame()); err != nil {
				d.log.Errorf("fyne: copying screenshot: %v", err)
			}
		case fyne.KeyS:
			if err := utils.SaveImageAs(d.frame(), int(d.zoom)); err != nil {
				d.log.Errorf("fyne: saving screenshot: %v", err)
			}
		}
	})
}

// frame returns a copy of the last presented frame.
func (d *Driver) frame() *image.RGBA {
	d.mu.Lock()
	defer d.mu.Unlock()

	img := image.NewRGBA(d.screen.Rect)
	copy(img.Pix, d.screen.Pix)
	return img
}

// toggleDebugger opens the debugger window, or closes it if it is open.
func (d *Driver) toggleDebugger() {
	if d.inspector == nil {
		d.log.Warnf("fyne: the emulator cannot be inspected")
		return
	}
	if d.debugger != nil {
		d.debuggerOpen.Store(false)
		d.debugger.Close()
		d.debugger = nil
		return
	}

	w := d.app.NewWindow("GomeBoy | Debugger")
	w.SetContent(views.NewTabs(d.views...))
	w.SetOnClosed(func() {
		d.debuggerOpen.Store(false)
		d.debugger = nil
	})
	d.debugger = w
	d.debuggerOpen.Store(true)
	w.Show()
}

// Stop stops the display driver.
func (d *Driver) Stop() error {
	d.stopOnce.Do(func() { close(d.stop) })
	return nil
}
