package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/taberinos/backend/internal/session"
)

// Client represents a connected WebSocket client
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	id        string
	token     string
	spectator bool

	// sess is nil for spectators of a session hosted elsewhere; they read
	// snapshots through snapshots instead
	sess      *session.Session
	snapshots SnapshotLoader
	frames    <-chan []byte
	unsub     func()

	send chan []byte
}

// Hub maintains the set of active clients, grouped into rooms by session token
type Hub struct {
	rooms      map[string]map[string]*Client // token -> client ID -> Client
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes registrations until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			room, exists := h.rooms[client.token]
			if !exists {
				room = make(map[string]*Client)
				h.rooms[client.token] = room
			}
			room[client.id] = client
			size := len(room)
			h.mu.Unlock()

			role := "player"
			if client.spectator {
				role = "spectator"
			}
			log.Printf("[WS] %s %s joined session %s (room_size=%d)", role, client.id, client.token, size)

		case client := <-h.unregister:
			h.mu.Lock()
			if room, exists := h.rooms[client.token]; exists {
				if cur, ok := room[client.id]; ok && cur == client {
					delete(room, client.id)
					if len(room) == 0 {
						delete(h.rooms, client.token)
					}
					close(client.send)
					log.Printf("[WS] %s left session %s", client.id, client.token)
				}
			}
			h.mu.Unlock()
			if client.unsub != nil {
				client.unsub()
			}
		}
	}
}

func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
		if c.unsub != nil {
			c.unsub()
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for token, room := range h.rooms {
		for id, c := range room {
			c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(time.Second))
			c.conn.Close()
			delete(room, id)
		}
		delete(h.rooms, token)
	}
}

// BroadcastToSession sends a message to every client watching a session.
// When onlyRemote is set, clients attached to a local session are skipped;
// they already receive everything from the session itself.
func (h *Hub) BroadcastToSession(token string, message interface{}, onlyRemote bool) int {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] Error marshaling message: %v", err)
		return 0
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := 0
	for _, client := range h.rooms[token] {
		if onlyRemote && client.sess != nil {
			continue
		}
		select {
		case client.send <- data:
			sent++
		default:
			log.Printf("[WS] send buffer full for %s in session %s, dropping message", client.id, token)
		}
	}
	return sent
}

// RoomSize reports how many clients watch a session.
func (h *Hub) RoomSize(token string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[token])
}
