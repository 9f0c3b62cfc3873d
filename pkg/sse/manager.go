package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/gin-gonic/gin"
)

// Event is a server-sent event pushed to a user's open connections.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

type client struct {
	userID string
	send   chan Event
}

// Manager fans out events to all connected clients of a user.
type Manager struct {
	mu         sync.RWMutex
	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
}

// Run processes client registrations. Call once in a goroutine.
func (m *Manager) Run() {
	for {
		select {
		case c := <-m.register:
			m.mu.Lock()
			m.clients[c] = struct{}{}
			m.mu.Unlock()
		case c := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[c]; ok {
				delete(m.clients, c)
				close(c.send)
			}
			m.mu.Unlock()
		}
	}
}

// SendToUser delivers an event to every open connection of the given user.
// Slow consumers are skipped rather than blocking the caller.
func (m *Manager) SendToUser(userID string, event Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for c := range m.clients {
		if c.userID != userID {
			continue
		}
		select {
		case c.send <- event:
		default:
			log.Printf("[SSE] Dropping event %q for user %s (slow consumer)", event.Type, userID)
		}
	}
}

// ServeHTTP upgrades the gin request to an SSE stream for the user.
func (m *Manager) ServeHTTP(c *gin.Context, userID string) {
	cl := &client{
		userID: userID,
		send:   make(chan Event, 16),
	}
	m.register <- cl
	defer func() { m.unregister <- cl }()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-cl.send:
			if !ok {
				return false
			}
			data, err := json.Marshal(event)
			if err != nil {
				log.Printf("[SSE] Failed to marshal event: %v", err)
				return true
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
