package web

import (
	"context"
	"encoding/binary"
	"net/http"
	"sync"
	"time"

	"github.com/google/brotli/go/cbrotli"
	"github.com/gorilla/websocket"
	"github.com/thelolagemann/gomeboy/internal/types"
	"github.com/thelolagemann/gomeboy/pkg/display"
	"github.com/thelolagemann/gomeboy/pkg/log"
	"github.com/thelolagemann/gomeboy/pkg/utils"
)

// settings are shared by every client, any client may change them.
type settings struct {
	compression      bool
	compressionLevel int
	framePatching    bool
	framePatchRatio  int
	frameSkipping    bool
}

// hub tracks the connected clients. The clients map is owned by the
// run loop, everything else is guarded by mu.
type hub struct {
	clients map[*Client]bool
	player  *Client // the client in control of the joypad

	broadcast            chan []byte
	register, unregister chan *Client
	input                chan []byte
	done                 chan struct{}

	settings
	currentID uint8
	emu       display.Emulator
	latest    []byte
	frames    *Player

	log log.Logger
	mu  sync.Mutex
}

func newHub(l log.Logger) *hub {
	h := &hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		input:      make(chan []byte, 64),
		done:       make(chan struct{}),
		settings: settings{
			compression:      true,
			compressionLevel: 6,
			framePatching:    true,
			framePatchRatio:  3,
			frameSkipping:    true,
		},
		log: l,
	}
	h.frames = newPlayer(h)
	return h
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeHTTP upgrades the connection to a websocket and registers
// the new client.
func (h *hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("web: upgrading %s: %v", r.RemoteAddr, err)
		return
	}

	c := h.newClient(conn, r)
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.ReadPump()
	go c.WritePump()
}

// run owns the client map until ctx is cancelled.
func (h *hub) run(ctx context.Context) {
	t := time.NewTicker(time.Second)
	defer func() {
		t.Stop()
		for c := range h.clients {
			close(c.Send)
			delete(h.clients, c)
		}
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = true
			h.log.Infof("web: client %d connected from %s", c.ID, c.Metadata.RemoteAddr)

			trySend(c, h.status())
			for _, msg := range h.frames.sync() {
				trySend(c, msg)
			}
			if frame := h.syncFrame(); frame != nil {
				trySend(c, frame)
			}

			h.mu.Lock()
			promoted := h.player == nil
			if promoted {
				h.player = c
			}
			h.mu.Unlock()
			if promoted {
				trySend(c, []byte{PlayerIdentify})
			}
		case c := <-h.unregister:
			h.remove(c)
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.Send <- msg:
				default:
					h.log.Warnf("web: dropping slow client %d", c.ID)
					h.remove(c)
				}
			}
		case <-t.C:
			data := []byte{ServerInfo}
			for c := range h.clients {
				data = append(data, c.ID)
				data = binary.LittleEndian.AppendUint16(data, uint16(c.avgLatency.Load()))
			}
			for c := range h.clients {
				trySend(c, data)
			}
		}
	}
}

// remove unregisters c and hands the joypad to the longest connected
// client if c held it.
func (h *hub) remove(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.Send)
	h.log.Infof("web: client %d disconnected", c.ID)

	h.mu.Lock()
	var next *Client
	if h.player == c {
		h.player = h.nextPlayer()
		next = h.player
	}
	h.mu.Unlock()

	if next != nil {
		trySend(next, []byte{PlayerIdentify})
	}
	for cl := range h.clients {
		trySend(cl, []byte{ClientClosing, c.ID})
	}
}

// trySend queues msg for c without blocking the run loop.
func trySend(c *Client, msg []byte) {
	select {
	case c.Send <- msg:
	default:
	}
}

// publish queues msg for every client.
func (h *hub) publish(msg []byte) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}

// info returns a byte of information containing the various
// hub settings. The byte is constructed as follows:
//
//	Bit 0: Emulator running
//	Bit 2: Compression enabled
//	Bit 3: Frame patching enabled
//	Bit 4: Frame skipping enabled
//	Bit 5: Emulator paused
func (h *hub) info() byte {
	info := uint8(0)
	if h.emu != nil {
		if h.emu.Paused() {
			info |= types.Bit5
		} else {
			info |= types.Bit0
		}
	}

	if h.compression {
		info |= types.Bit2
	}
	if h.framePatching {
		info |= types.Bit3
	}
	if h.frameSkipping {
		info |= types.Bit4
	}

	return info
}

func (h *hub) status() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return []byte{ClientInfo, ClientStatus, h.info(), uint8(h.compressionLevel), uint8(h.framePatchRatio)}
}

// set changes a hub setting.
func (h *hub) set(setting Event, value byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch setting {
	case Compression:
		h.compression = value == 1
	case CompressionLevel:
		h.compressionLevel = utils.Clamp(0, int(value), 11)
	case FramePatching:
		h.framePatching = value == 1
	case FramePatchingRatio:
		h.framePatchRatio = utils.Clamp(1, int(value), 5)
	case FrameSkipping:
		h.frameSkipping = value == 1
	}
}

func (h *hub) snapshot() settings {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.settings
}

func (h *hub) isPlayer(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.player == c
}

// keepFrame stores a copy of the most recent frame for clients that
// connect later.
func (h *hub) keepFrame(frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.latest == nil {
		h.latest = make([]byte, len(frame))
	}
	copy(h.latest, frame)
}

// syncFrame encodes the most recent frame as a FrameSync message.
func (h *hub) syncFrame() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.latest == nil {
		return nil
	}

	data, err := cbrotli.Encode(h.latest, cbrotli.WriterOptions{Quality: h.compressionLevel})
	if err != nil {
		h.log.Errorf("web: encoding frame: %v", err)
		return nil
	}
	return append([]byte{FrameSync}, data...)
}

// nextPlayer returns the next client in the list awaiting
// player upgrade by comparing the value of each connectedAt
// field. Used when a player disconnects and a new player
// is able to take over.
func (h *hub) nextPlayer() *Client {
	var next *Client
	for c := range h.clients {
		if next == nil || c.connectedAt.Before(next.connectedAt) {
			next = c
		}
	}

	return next
}

// newClient creates a new client.
func (h *hub) newClient(conn *websocket.Conn, r *http.Request) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.currentID++

	c := &Client{
		hub:         h,
		conn:        conn,
		Send:        make(chan []byte, 256),
		ID:          h.currentID,
		connectedAt: time.Now(),
	}
	c.Metadata.RemoteAddr = r.RemoteAddr
	c.Metadata.UserAgent = r.Header.Get("User-Agent")
	return c
}
