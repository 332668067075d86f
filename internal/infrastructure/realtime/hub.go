// Package realtime owns the websocket connection registry that delivers
// events to connected users.
package realtime

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	sendBufferSize = 16
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 1 << 16
)

var ErrHubUnavailable = errors.New("real-time hub unavailable")

// Frame is the wire format of every server-sent event.
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type client struct {
	userID string
	conn   *websocket.Conn
	send   chan Frame
}

// Hub tracks the live connections of each user. A user may hold several.
type Hub struct {
	clientsByUser map[string]map[*client]bool
	mu            sync.RWMutex
	upgrader      websocket.Upgrader
	logger        *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clientsByUser: make(map[string]map[*client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

func (h *Hub) Available() bool {
	return true
}

func (h *Hub) IsConnected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clientsByUser[userID]) > 0
}

// ConnectionCount returns the number of live connections for userID.
func (h *Hub) ConnectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clientsByUser[userID])
}

// EmitToUser enqueues the event on every connection of userID. It never
// blocks: a connection whose buffer is full misses the event.
func (h *Hub) EmitToUser(_ context.Context, userID, event string, payload any) error {
	frame := Frame{Event: event, Data: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clientsByUser[userID] {
		select {
		case c.send <- frame:
		default:
			h.logger.Warn("dropping event, client buffer full", "user_id", userID, "event", event)
		}
	}
	return nil
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clientsByUser[c.userID] == nil {
		h.clientsByUser[c.userID] = make(map[*client]bool)
	}
	h.clientsByUser[c.userID][c] = true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if peers, ok := h.clientsByUser[c.userID]; ok {
		if _, ok := peers[c]; ok {
			delete(peers, c)
			close(c.send)
		}
		if len(peers) == 0 {
			delete(h.clientsByUser, c.userID)
		}
	}
}

// Serve upgrades the request and pumps events to userID until the
// connection closes. It blocks for the lifetime of the connection.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{
		userID: userID,
		conn:   conn,
		send:   make(chan Frame, sendBufferSize),
	}
	h.register(c)
	h.logger.Debug("client connected", "user_id", userID)

	c.send <- Frame{Event: "connected"}

	go h.writePump(c)
	h.readPump(c)
	return nil
}

// readPump only keeps the connection alive; clients do not send events.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
		h.logger.Debug("client disconnected", "user_id", c.userID)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Unavailable is the hub-absent channel. Dispatchers treat it as a signal to
// use their fallback path.
type Unavailable struct{}

func (Unavailable) Available() bool { return false }

func (Unavailable) IsConnected(string) bool { return false }

func (Unavailable) EmitToUser(context.Context, string, string, any) error {
	return ErrHubUnavailable
}
