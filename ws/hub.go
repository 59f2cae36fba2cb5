package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
)

// Event is the wire frame on the socket, both directions.
type Event struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

const (
	EventJoinRoom           = "join_room"
	EventRoomJoined         = "room_joined"
	EventError              = "error"
	EventNewOrder           = "new_order"
	EventOrderStatusUpdated = "order_status_updated"
)

// Hub tracks live connections and their room memberships. Room names are
// account ids: a customer's room is their user id, a restaurant's room is the
// manager's user id. Delivery is at-most-once to currently-connected sockets;
// nothing is queued for absent members.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*connection]bool
	conns map[*connection]map[string]bool

	bridge *RedisBridge
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*connection]bool),
		conns: make(map[*connection]map[string]bool),
	}
}

// SetBridge attaches a cross-instance fan-out bridge. Must be called before
// the hub starts accepting connections.
func (h *Hub) SetBridge(b *RedisBridge) {
	h.bridge = b
}

// Emit broadcasts an event to every connection currently in the room, and
// hands it to the bridge so peer instances can do the same.
func (h *Hub) Emit(room string, event string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ws: could not marshal %s payload: %v", event, err)
		return
	}
	h.emitLocal(room, event, raw)
	if h.bridge != nil {
		if err := h.bridge.Publish(context.Background(), room, event, raw); err != nil {
			log.Printf("ws: bridge publish failed: %v", err)
		}
	}
}

func (h *Hub) emitLocal(room string, event string, payload json.RawMessage) {
	message, err := json.Marshal(Event{Event: event, Payload: payload})
	if err != nil {
		log.Printf("ws: could not marshal %s frame: %v", event, err)
		return
	}

	h.mu.Lock()
	var slow []*connection
	for c := range h.rooms[room] {
		select {
		case c.send <- message:
		default:
			slow = append(slow, c)
		}
	}
	for _, c := range slow {
		h.removeLocked(c)
	}
	h.mu.Unlock()

	for _, c := range slow {
		log.Printf("ws: dropping slow connection %s", c.id)
		c.close()
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	h.conns[c] = make(map[string]bool)
	h.mu.Unlock()
}

// join is idempotent; re-joining a room a connection is already in is a no-op.
func (h *Hub) join(c *connection, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[c]; !ok {
		return
	}
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*connection]bool)
	}
	h.rooms[room][c] = true
	h.conns[c][room] = true
}

// remove takes the connection out of every room it was part of.
func (h *Hub) remove(c *connection) {
	h.mu.Lock()
	h.removeLocked(c)
	h.mu.Unlock()
}

func (h *Hub) removeLocked(c *connection) {
	for room := range h.conns[c] {
		delete(h.rooms[room], c)
		if len(h.rooms[room]) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(h.conns, c)
}

// sendTo delivers one frame to a single connection. Channel sends only ever
// happen under the hub mutex with a membership check, so a channel closed
// after removal is never written to.
func (h *Hub) sendTo(c *connection, event string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	message, err := json.Marshal(Event{Event: event, Payload: raw})
	if err != nil {
		return
	}
	h.mu.Lock()
	if _, ok := h.conns[c]; ok {
		select {
		case c.send <- message:
		default:
		}
	}
	h.mu.Unlock()
}

// RoomSize reports current membership; used by the badge endpoints and tests.
func (h *Hub) RoomSize(room string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[room])
}
