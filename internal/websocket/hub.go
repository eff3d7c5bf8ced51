package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Hub fans device notifications out to every connected staff dashboard.
// Dashboards use it to refresh timelines and countdown badges without
// polling the API.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	mu         sync.RWMutex
}

// Notification is the wire shape pushed to dashboards.
type Notification struct {
	Type      string      `json:"type"`
	DeviceID  string      `json:"deviceId,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("📱 Dashboard connected (%d active)", h.count())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			log.Printf("📴 Dashboard disconnected (%d active)", h.count())

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer, drop the frame rather than block the hub.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Notify broadcasts a typed notification to all connected dashboards.
func (h *Hub) Notify(n Notification) {
	n.Timestamp = time.Now()
	data, err := json.Marshal(n)
	if err != nil {
		log.Printf("⚠️ Notification encode failed: %v", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		log.Println("⚠️ Notification dropped: broadcast queue full")
	}
}

func (h *Hub) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
