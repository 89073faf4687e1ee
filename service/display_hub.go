package service

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"
)

// DisplayEvent is the payload broadcast to connected showroom displays.
type DisplayEvent struct {
	Type string `json:"type"`
	At   string `json:"at"`
}

// displayClient wraps a WebSocket connection with a mutex for thread-safe writes.
type displayClient struct {
	conn *ws.Conn
	mu   sync.Mutex
}

// DisplayHub maintains connected TV-display WebSocket clients and tells them
// when the inventory snapshot changed so they re-render their slides.
type DisplayHub struct {
	mu      sync.RWMutex
	clients map[*displayClient]struct{}
}

// NewDisplayHub creates a new DisplayHub.
func NewDisplayHub() *DisplayHub {
	return &DisplayHub{clients: make(map[*displayClient]struct{})}
}

func (h *DisplayHub) register(c *displayClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *DisplayHub) unregister(c *displayClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// BroadcastInventoryUpdated tells every connected display the snapshot changed.
func (h *DisplayHub) BroadcastInventoryUpdated() {
	h.broadcast(DisplayEvent{Type: "inventory_updated", At: time.Now().Format(time.RFC3339)})
}

func (h *DisplayHub) broadcast(evt DisplayEvent) {
	data, err := json.Marshal(evt)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}
	h.mu.RLock()
	clients := make([]*displayClient, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.mu.Lock()
		_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		writeErr := c.conn.WriteMessage(ws.TextMessage, data)
		c.mu.Unlock()

		if writeErr != nil {
			h.unregister(c)
		}
	}
}

// upgrader accepts any origin: displays live on the showroom LAN.
var upgrader = ws.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades the connection and keeps it alive with pings.
func (h *DisplayHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade error: %v", err)
		return
	}

	c := &displayClient{conn: conn}
	h.register(c)

	h.mu.RLock()
	clientCount := len(h.clients)
	h.mu.RUnlock()
	log.Printf("ws: display connected (%d total)", clientCount)

	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			c.mu.Lock()
			err := conn.WriteControl(ws.PingMessage, nil, time.Now().Add(5*time.Second))
			c.mu.Unlock()
			if err != nil {
				return
			}
		}
	}()

	go func() {
		defer h.unregister(c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
