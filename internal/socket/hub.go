// server/internal/socket/hub.go
package socket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"parcelio-api-server/internal/lib/sl"

	"github.com/gorilla/websocket"
)

// Event names pushed to subscribers.
const (
	EventParcelCreated    = "parcel_created"
	EventParcelDeleted    = "parcel_deleted"
	EventParcelPhotoAdded = "parcel_photo_added"
	EventPaymentRecorded  = "payment_recorded"
)

const writeWait = 10 * time.Second

// Event is the JSON frame sent to a subscriber.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// client guards a connection; gorilla connections allow one concurrent writer.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(message []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, message)
}

// Hub tracks one WebSocket connection per subscriber email.
type Hub struct {
	clients map[string]*client
	mu      sync.RWMutex
	log     *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*client),
		log:     log.With(sl.Module("socket.hub")),
	}
}

// Register adds a connection for email, closing any connection it replaces.
func (h *Hub) Register(email string, conn *websocket.Conn) {
	h.mu.Lock()
	old, ok := h.clients[email]
	h.clients[email] = &client{conn: conn}
	h.mu.Unlock()

	if ok && old.conn != conn {
		_ = old.conn.Close()
	}
	h.log.Info("websocket client registered", slog.String("email", email))
}

// Unregister removes email's connection if it is still conn.
func (h *Hub) Unregister(email string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[email]; ok && c.conn == conn {
		delete(h.clients, email)
		h.log.Info("websocket client unregistered", slog.String("email", email))
	}
}

// Connected reports whether email has a live subscription.
func (h *Hub) Connected(email string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[email]
	return ok
}

// Send writes a raw message to email. An offline subscriber is not an error.
func (h *Hub) Send(email string, message []byte) error {
	h.mu.RLock()
	c, ok := h.clients[email]
	h.mu.RUnlock()

	if !ok {
		h.log.Debug("websocket client not found, message dropped", slog.String("email", email))
		return nil
	}
	return c.write(message)
}

// Publish sends a named event with data to email. Failures are logged, never returned.
func (h *Hub) Publish(email, event string, data interface{}) {
	if email == "" {
		return
	}
	message, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		h.log.Error("failed to encode websocket event", slog.String("event", event), sl.Err(err))
		return
	}
	if err := h.Send(email, message); err != nil {
		h.log.Warn("failed to deliver websocket event",
			slog.String("event", event),
			slog.String("email", email),
			sl.Err(err),
		)
	}
}
