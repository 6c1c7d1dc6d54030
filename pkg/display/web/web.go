// Package web provides a display driver that streams frames to
// browsers over a websocket. The longest connected client controls
// the joypad; the others spectate.
package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/thelolagemann/gomeboy/internal/joypad"
	"github.com/thelolagemann/gomeboy/pkg/display"
	"github.com/thelolagemann/gomeboy/pkg/display/event"
	"github.com/thelolagemann/gomeboy/pkg/log"
)

func init() {
	driver := New(log.New())
	display.Install("web", driver, []display.DriverOption{
		{
			Name:        "addr",
			Default:     ":8090",
			Value:       &driver.Addr,
			Type:        "string",
			Description: "Address to serve the websocket on",
		},
		{
			Name:        "compression",
			Default:     6,
			Value:       &driver.Compression,
			Type:        "int",
			Description: "Brotli quality used for frames (0-11)",
		},
	})
}

// Driver serves the emulator to websocket clients.
type Driver struct {
	Addr        string
	Compression int

	hub      *hub
	server   *http.Server
	log      log.Logger
	stop     chan struct{}
	stopOnce sync.Once
	ready    chan net.Addr
}

// New returns a web driver listening on :8090.
func New(l log.Logger) *Driver {
	return &Driver{
		Addr:        ":8090",
		Compression: 6,
		hub:         newHub(l),
		log:         l,
		stop:        make(chan struct{}),
		ready:       make(chan net.Addr, 1),
	}
}

func (d *Driver) Initialize(emu display.Emulator) {
	d.hub.emu = emu
}

// Start serves clients until the driver is stopped or the emulator
// quits. Frames are published to every client and input from the
// player is forwarded to the emulator.
func (d *Driver) Start(fb <-chan []byte, events <-chan event.Event, pressed, released chan<- joypad.Button) error {
	d.hub.set(CompressionLevel, uint8(d.Compression))

	ln, err := net.Listen("tcp", d.Addr)
	if err != nil {
		return err
	}
	d.server = &http.Server{Handler: d.hub, ReadHeaderTimeout: 5 * time.Second}
	d.ready <- ln.Addr()
	d.log.Infof("web: serving on %s", ln.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.hub.run(ctx)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- d.server.Serve(ln)
	}()
	defer func() {
		shutdown, done := context.WithTimeout(context.Background(), time.Second)
		defer done()
		d.server.Shutdown(shutdown)
	}()

	for {
		select {
		case f := <-fb:
			if err := d.hub.frames.frame(f); err != nil {
				d.log.Errorf("web: encoding frame: %v", err)
			}
		case e := <-events:
			switch e.Type {
			case event.Title:
				if title, ok := e.Data.(string); ok {
					d.hub.publish(append([]byte{WindowTitle}, title...))
				}
			case event.Quit:
				return nil
			}
		case msg := <-d.hub.input:
			d.handleInput(msg, pressed, released)
		case err := <-serveErr:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-d.stop:
			return nil
		}
	}
}

// handleInput applies a message from the player: a single byte
// toggles pause, otherwise [button, state] presses or releases
// a button.
func (d *Driver) handleInput(msg []byte, pressed, released chan<- joypad.Button) {
	if len(msg) == 1 {
		if d.hub.emu != nil {
			display.TogglePause(d.hub.emu)
		}
		d.hub.publish(d.hub.status())
		return
	}

	button := joypad.Button(msg[0])
	if button > joypad.ButtonDown {
		return
	}
	if msg[1] == 0 {
		display.Send(released, button)
	} else {
		display.Send(pressed, button)
	}
}

// Stop stops the display driver.
func (d *Driver) Stop() error {
	d.stopOnce.Do(func() { close(d.stop) })
	return nil
}
