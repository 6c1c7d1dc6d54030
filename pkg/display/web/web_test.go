package web

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gomeboy/internal/joypad"
	"github.com/thelolagemann/gomeboy/internal/types"
	"github.com/thelolagemann/gomeboy/pkg/log"
)

func TestCache(t *testing.T) {
	c := newCache(2)
	assert.Equal(t, -1, c.index(1))

	assert.Equal(t, 0, c.add(1, []byte{1}))
	assert.Equal(t, 1, c.add(2, []byte{2}))
	assert.Equal(t, 1, c.index(2))

	// the oldest entry is evicted
	assert.Equal(t, 0, c.add(3, []byte{3}))
	assert.Equal(t, -1, c.index(1))
	assert.Equal(t, 0, c.index(3))

	assert.Equal(t, []byte{1, 0, 0, 0, 3, 1, 0, 1, 0, 2}, c.sync())
}

func frame(rgb byte) []byte {
	f := make([]byte, frameSize)
	for i := 0; i < len(f); i += 4 {
		f[i], f[i+1], f[i+2], f[i+3] = rgb, rgb, rgb, 0xFF
	}
	return f
}

func TestPlayer_Encode(t *testing.T) {
	p := newPlayer(newHub(log.NewNullLogger()))
	s := settings{framePatching: true, framePatchRatio: 3, frameSkipping: true}

	t.Run("full frame", func(t *testing.T) {
		msgs, err := p.encode(frame(0xFF), s)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, Frame, msgs[0][0])
		assert.Len(t, msgs[0], 3+frameSize)
	})
	t.Run("skip", func(t *testing.T) {
		msgs, err := p.encode(frame(0xFF), s)
		require.NoError(t, err)
		assert.Empty(t, msgs)
	})
	t.Run("patch", func(t *testing.T) {
		f := frame(0xFF)
		f[0] = 0
		msgs, err := p.encode(f, s)
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, []byte{FrameSkip, 1, 0, 0, 0}, msgs[0])
		assert.Equal(t, FramePatch, msgs[1][0])
		patch := msgs[1][3:]
		assert.Equal(t, []byte{0, 0xFF, 0xFF, 0xFF}, patch[:4])
		assert.Equal(t, byte(0), patch[7], "clean pixels are transparent")
	})
	t.Run("cached", func(t *testing.T) {
		_, err := p.encode(frame(0xFF), s)
		require.NoError(t, err)
		msgs, err := p.encode(frame(0x00), s)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, Frame, msgs[0][0])

		msgs, err = p.encode(frame(0xFF), s)
		require.NoError(t, err)
		assert.Equal(t, []byte{FrameCache, 0, 0}, msgs[0])
	})
	t.Run("compressed", func(t *testing.T) {
		s := s
		s.compression, s.compressionLevel = true, 5
		msgs, err := p.encode(frame(0x80), s)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Less(t, len(msgs[0]), frameSize/10)
	})
}

type pauser struct{ paused atomic.Bool }

func (p *pauser) Pause()       { p.paused.Store(true) }
func (p *pauser) Unpause()     { p.paused.Store(false) }
func (p *pauser) Paused() bool { return p.paused.Load() }

func TestHub(t *testing.T) {
	h := newHub(log.NewNullLogger())
	h.emu = &pauser{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.run(ctx)

	srv := httptest.NewServer(h)
	defer srv.Close()

	dial := func() *websocket.Conn {
		conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
		require.NoError(t, err)
		return conn
	}
	read := func(conn *websocket.Conn) []byte {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		return msg
	}

	player := dial()
	defer player.Close()

	status := read(player)
	assert.Equal(t, []byte{ClientInfo, ClientStatus}, status[:2])
	assert.Equal(t, byte(types.Bit0|types.Bit2|types.Bit3|types.Bit4), status[2])
	assert.Equal(t, []byte{PlayerIdentify}, read(player))

	spectator := dial()
	defer spectator.Close()
	assert.Equal(t, ClientInfo, read(spectator)[0])

	t.Run("input from the player", func(t *testing.T) {
		require.NoError(t, player.WriteMessage(websocket.BinaryMessage, []byte{joypad.ButtonA, 1}))
		select {
		case msg := <-h.input:
			assert.Equal(t, []byte{joypad.ButtonA, 1}, msg)
		case <-time.After(2 * time.Second):
			t.Fatal("no input")
		}
	})
	t.Run("settings", func(t *testing.T) {
		require.NoError(t, spectator.WriteMessage(websocket.BinaryMessage, []byte{Settings, Compression, 0}))
		for {
			msg := read(spectator)
			if msg[0] == ClientInfo {
				assert.Zero(t, msg[2]&types.Bit2)
				break
			}
		}
		assert.False(t, h.snapshot().compression)
	})
	t.Run("player hand over", func(t *testing.T) {
		require.NoError(t, player.WriteMessage(websocket.BinaryMessage, []byte{Closing}))
		for {
			if msg := read(spectator); msg[0] == PlayerIdentify {
				break
			}
		}
	})
}

func TestDriver_Start(t *testing.T) {
	d := New(log.NewNullLogger())
	d.Addr = "127.0.0.1:0"
	emu := &pauser{}
	d.Initialize(emu)

	fb := make(chan []byte)
	pressed := make(chan joypad.Button, 1)
	released := make(chan joypad.Button, 1)
	done := make(chan error, 1)
	go func() {
		done <- d.Start(fb, nil, pressed, released)
	}()

	var addr string
	select {
	case a := <-d.ready:
		addr = a.String()
	case err := <-done:
		t.Fatal(err)
	}

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() []byte {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		return msg
	}
	assert.Equal(t, ClientInfo, read()[0])
	assert.Equal(t, []byte{PlayerIdentify}, read())

	fb <- frame(0xFF)
	for {
		if msg := read(); msg[0] == Frame {
			break
		}
	}

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{joypad.ButtonStart, 1}))
	select {
	case b := <-pressed:
		assert.Equal(t, joypad.ButtonStart, b)
	case <-time.After(2 * time.Second):
		t.Fatal("no press")
	}

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{0}))
	assert.Eventually(t, emu.Paused, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, d.Stop())
	require.NoError(t, <-done)
}
