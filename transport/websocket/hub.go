package websocket

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/chess-backend/internal/entity"
)

// Hub tracks live connections and the rooms they belong to.
// Sends never block: a connection whose buffer is full loses the message.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[string]*client
	rooms   map[string]map[string]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger.With("component", "hub"),

		clients: make(map[string]*client),
		rooms:   make(map[string]map[string]struct{}),
	}
}

func (that *Hub) register(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[c.id] = c
	that.logger.Debug("client registered", "connection_id", c.id, "clients", len(that.clients))
}

// unregister forgets the connection, drops it from its rooms and closes its send buffer.
func (that *Hub) unregister(connectionID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	c, ok := that.clients[connectionID]
	if !ok {
		return
	}

	delete(that.clients, connectionID)
	close(c.send)

	for room, members := range that.rooms {
		delete(members, connectionID)
		if len(members) == 0 {
			delete(that.rooms, room)
		}
	}

	that.logger.Debug("client unregistered", "connection_id", connectionID, "clients", len(that.clients))
}

func (that *Hub) Send(connectionID string, event entity.Event) {
	data, err := encodeEvent(event)
	if err != nil {
		that.logger.Error("failed to encode event", "event", event.Name, "error", err)
		return
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	that.deliver(connectionID, data)
}

// Broadcast sends the event to every member of the room except one connection.
func (that *Hub) Broadcast(room, exceptConnectionID string, event entity.Event) {
	data, err := encodeEvent(event)
	if err != nil {
		that.logger.Error("failed to encode event", "event", event.Name, "error", err)
		return
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	for connectionID := range that.rooms[room] {
		if connectionID != exceptConnectionID {
			that.deliver(connectionID, data)
		}
	}
}

func (that *Hub) JoinRoom(connectionID, room string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.clients[connectionID]; !ok {
		that.logger.Warn("unknown connection cannot join room", "connection_id", connectionID, "room", room)
		return
	}

	members, ok := that.rooms[room]
	if !ok {
		members = make(map[string]struct{})
		that.rooms[room] = members
	}

	members[connectionID] = struct{}{}
}

// RoomMembers - number of connections in the room.
func (that *Hub) RoomMembers(room string) int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.rooms[room])
}

// deliver expects the read lock to be held.
func (that *Hub) deliver(connectionID string, data []byte) {
	c, ok := that.clients[connectionID]
	if !ok {
		that.logger.Debug("dropping message for unknown connection", "connection_id", connectionID)
		return
	}

	select {
	case c.send <- data:
	default:
		that.logger.Warn("send buffer is full, dropping message", "connection_id", connectionID)
	}
}

// Close unregisters every connection, which makes their write pumps close the sockets.
func (that *Hub) Close() {
	that.mu.RLock()
	ids := make([]string, 0, len(that.clients))
	for id := range that.clients {
		ids = append(ids, id)
	}
	that.mu.RUnlock()

	for _, id := range ids {
		that.unregister(id)
	}
}
