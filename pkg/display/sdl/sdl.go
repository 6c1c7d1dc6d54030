//go:build !test

// Package sdl provides a display driver that presents frames in an
// SDL window and maps the keyboard to the joypad.
package sdl

import (
	"runtime"
	"sync"
	"time"

	"github.com/thelolagemann/gomeboy/internal/joypad"
	"github.com/thelolagemann/gomeboy/pkg/display"
	"github.com/thelolagemann/gomeboy/pkg/display/event"
	"github.com/thelolagemann/gomeboy/pkg/log"
	"github.com/thelolagemann/gomeboy/pkg/utils"
	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	// SDL: this is needed to arrange for main to run on main thread
	runtime.LockOSThread()

	// register display driver
	driver := &sdlDriver{log: log.New(), stop: make(chan struct{})}
	display.Install("sdl", driver, []display.DriverOption{
		{
			Name:        "scale",
			Default:     4.0,
			Value:       &driver.scale,
			Type:        "float",
			Description: "Scale the window by this factor",
		},
		{
			Name:        "fullscreen",
			Default:     false,
			Value:       &driver.fullscreen,
			Type:        "bool",
			Description: "Run in fullscreen mode",
		},
	})
}

var joypadKeys = map[sdl.Keycode]joypad.Button{
	sdl.K_a:         joypad.ButtonA,
	sdl.K_b:         joypad.ButtonB,
	sdl.K_DOWN:      joypad.ButtonDown,
	sdl.K_UP:        joypad.ButtonUp,
	sdl.K_LEFT:      joypad.ButtonLeft,
	sdl.K_RIGHT:     joypad.ButtonRight,
	sdl.K_RETURN:    joypad.ButtonStart,
	sdl.K_BACKSPACE: joypad.ButtonSelect,
}

// sdlDriver implements a barebones display driver using SDL,
// streaming each frame into a texture that the renderer stretches
// over the window.
type sdlDriver struct {
	scale      float64
	fullscreen bool

	emu      display.Emulator
	log      log.Logger
	stop     chan struct{}
	stopOnce sync.Once

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	last []byte // the last presented frame
}

func (s *sdlDriver) Initialize(e display.Emulator) {
	s.emu = e
}

// Start starts the display driver.
func (s *sdlDriver) Start(frames <-chan []byte, evts <-chan event.Event, pressed, released chan<- joypad.Button) error {
	if err := s.create(); err != nil {
		return err
	}
	defer s.destroy()

	pollTicker := time.NewTicker(time.Millisecond * 10) // to handle when paused
	defer pollTicker.Stop()

	// draw loop
	for {
		select {
		case f := <-frames:
			if err := s.present(f); err != nil {
				return err
			}
		case e := <-evts:
			switch e.Type {
			case event.Title:
				s.window.SetTitle("GomeBoy | " + e.Data.(string))
			case event.Quit:
				return nil
			}
		case <-pollTicker.C:
			if !s.poll(pressed, released) {
				return nil
			}
		case <-s.stop:
			return nil
		}
	}
}

func (s *sdlDriver) create() error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return err
	}

	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE)
	if s.fullscreen {
		flags |= uint32(sdl.WINDOW_FULLSCREEN_DESKTOP)
	}
	var err error
	s.window, err = sdl.CreateWindow("GomeBoy",
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(display.FrameWidth*s.scale), int32(display.FrameHeight*s.scale),
		flags)
	if err != nil {
		return err
	}

	s.renderer, err = sdl.CreateRenderer(s.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return err
	}
	// keep the aspect ratio when the window is resized
	if err := s.renderer.SetLogicalSize(display.FrameWidth, display.FrameHeight); err != nil {
		return err
	}

	// ABGR8888 is R, G, B, A in memory on little endian machines
	s.texture, err = s.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING),
		display.FrameWidth, display.FrameHeight)
	return err
}

func (s *sdlDriver) destroy() {
	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()
}

// present copies the frame into the texture and renders it.
func (s *sdlDriver) present(frame []byte) error {
	pixels, _, err := s.texture.Lock(nil)
	if err != nil {
		return err
	}
	copy(pixels, frame)
	s.texture.Unlock()

	if err := s.renderer.Clear(); err != nil {
		return err
	}
	if err := s.renderer.Copy(s.texture, nil, nil); err != nil {
		return err
	}
	s.renderer.Present()

	s.last = frame
	return nil
}

// poll handles the pending SDL events, returning false when the
// window has been closed.
func (s *sdlDriver) poll(pressed, released chan<- joypad.Button) bool {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch e := e.(type) {
		case *sdl.QuitEvent:
			return false
		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}

			// check to see if the key is mapped to a joypad button
			if button, ok := joypadKeys[e.Keysym.Sym]; ok {
				if e.State == sdl.PRESSED {
					display.Send(pressed, button)
				} else {
					display.Send(released, button)
				}
				continue
			}

			if e.State != sdl.PRESSED {
				continue
			}
			switch e.Keysym.Sym {
			case sdl.K_ESCAPE, sdl.K_PAUSE, sdl.K_SPACE:
				display.TogglePause(s.emu)
			case sdl.K_F11:
				s.fullscreen = !s.fullscreen
				var mode uint32
				if s.fullscreen {
					mode = uint32(sdl.WINDOW_FULLSCREEN_DESKTOP)
				}
				if err := s.window.SetFullscreen(mode); err != nil {
					s.log.Errorf("sdl: toggling fullscreen: %v", err)
				}
			case sdl.K_F12:
				if s.last == nil {
					continue
				}
				if err := utils.CopyImage(display.FrameImage(s.last)); err != nil {
					s.log.Errorf("sdl: copying screenshot: %v", err)
				}
			case sdl.K_s:
				if s.last == nil {
					continue
				}
				if err := utils.SaveImageAs(display.FrameImage(s.last), int(s.scale)); err != nil {
					s.log.Errorf("sdl: saving screenshot: %v", err)
				}
			}
		}
	}
	return true
}

// Stop stops the display driver.
func (s *sdlDriver) Stop() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return nil
}
