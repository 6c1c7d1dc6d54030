package web

import (
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Client is a single websocket connection.
type Client struct {
	hub      *hub
	conn     *websocket.Conn
	Send     chan []byte
	ID       uint8
	Metadata struct {
		RemoteAddr string
		UserAgent  string
	}
	avgLatency  atomic.Uint32
	connectedAt time.Time
}

// ReadPump reads messages from the client until the connection
// closes. Input from clients other than the player is ignored.
func (c *Client) ReadPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Warnf("web: client %d: %v", c.ID, err)
			}
			return
		}
		if len(message) == 0 {
			continue
		}

		switch message[0] {
		case Settings:
			if len(message) < 3 {
				continue
			}
			c.hub.set(message[1], message[2])
			c.hub.publish(c.hub.status())
		case Closing:
			return
		default:
			if !c.hub.isPlayer(c) {
				continue
			}
			select {
			case c.hub.input <- message:
			default:
			}
		}
	}
}

// WritePump writes queued messages to the client, pinging it
// periodically and sampling the connection latency.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			// the hub closed the channel
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
				return
			}

			if rtt, err := roundTrip(c.conn.UnderlyingConn()); err == nil {
				avg := (c.avgLatency.Load()*9 + uint32(rtt)) / 10
				c.avgLatency.Store(avg)
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
