package ws

import (
	"sync"

	"github.com/gofiber/websocket/v2"

	"kursus/pkg/logger"
)

// Hub tracks connected clients and fans change events out to all of them.
// Targeting is deliberately global: the core only ever says "event X happened",
// clients filter for what they care about.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]bool)}
}

// Add registers a connected client.
func (h *Hub) Add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
}

// Remove drops a client and closes its send channel.
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Broadcast sends raw event bytes to every connected client. A client whose
// buffer is full is skipped; delivery is best effort.
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- message:
		default:
			logger.L().Debugf("dropping event for slow websocket client")
		}
	}
}

// Client is one websocket connection.
type Client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewClient wraps a websocket connection.
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		conn: conn,
		send: make(chan []byte, 16),
	}
}

// Run pumps events to the connection until it closes. Blocks; call from the
// websocket handler goroutine.
func (c *Client) Run(hub *Hub) {
	hub.Add(c)
	defer func() {
		hub.Remove(c)
		c.conn.Close()
	}()

	// Reader only to detect close; inbound messages are ignored.
	go func() {
		for {
			if _, _, err := c.conn.ReadMessage(); err != nil {
				hub.Remove(c)
				return
			}
		}
	}()

	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
