package realtime

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/focusboard/focusboard-api/internal/api/metrics"
)

// Hub tracks connected clients and the room each one has joined.
// A client belongs to at most one room.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]string              // client -> room ("" until authenticated)
	rooms   map[string]map[*Client]struct{} // room -> members
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]string),
		rooms:   make(map[string]map[*Client]struct{}),
		log:     log,
	}
}

// Register adds an unauthenticated client.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = ""
	total := len(h.clients)
	h.mu.Unlock()

	metrics.RealtimeConnections.Inc()
	h.log.Debug().Str("client_id", c.ID).Int("total", total).Msg("socket connected")
}

// Join moves c into room, leaving any room it joined before.
func (h *Hub) Join(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	prev, ok := h.clients[c]
	if !ok {
		return
	}
	if prev == room {
		return
	}
	if prev != "" {
		h.removeFromRoom(c, prev)
	} else {
		metrics.RealtimeAuthenticated.Inc()
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	h.clients[c] = room
}

// Unregister drops c and its room membership. Safe to call more than once.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	room, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		if room != "" {
			h.removeFromRoom(c, room)
			metrics.RealtimeAuthenticated.Dec()
		}
	}
	h.mu.Unlock()

	if ok {
		metrics.RealtimeConnections.Dec()
		h.log.Debug().Str("client_id", c.ID).Str("room", room).Msg("socket disconnected")
	}
}

// Broadcast queues payload on every member of room and returns how many
// clients accepted it. Slow clients whose buffer is full are skipped.
func (h *Hub) Broadcast(room string, payload []byte) int {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, c := range members {
		if c.enqueue(payload) {
			delivered++
		}
	}
	return delivered
}

// RoomSize reports the number of clients in room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// RoomOf reports the room c has joined, or "" when it has not authenticated.
func (h *Hub) RoomOf(c *Client) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[c]
}

// removeFromRoom must be called with mu held.
func (h *Hub) removeFromRoom(c *Client, room string) {
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}
