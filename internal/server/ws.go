package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local monitor only
	},
}

// eventPayload is the wire form of one dispatched gesture.
type eventPayload struct {
	Session string    `json:"session"`
	Gesture string    `json:"gesture"`
	At      time.Time `json:"at"`
}

// eventHub fans gesture events out to connected WebSocket clients.
type eventHub struct {
	log     zerolog.Logger
	mu      sync.RWMutex
	clients map[*websocket.Conn]bool
}

func newEventHub(log zerolog.Logger) *eventHub {
	return &eventHub{
		log:     log.With().Str("component", "monitor-ws").Logger(),
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *eventHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep the connection alive; clients never send meaningful data.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// clientCount returns the number of registered clients.
func (h *eventHub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// broadcast sends the event to every connected client, dropping clients
// whose writes fail.
func (h *eventHub) broadcast(ev eventPayload) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(ev); err != nil {
			h.log.Debug().Err(err).Msg("dropping monitor client")
			conn.Close()
			delete(h.clients, conn)
		}
	}
}
