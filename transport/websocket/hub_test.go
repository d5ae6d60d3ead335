package websocket

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/chess-backend/internal/entity"
)

func newTestHub(ids ...string) *Hub {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	for _, id := range ids {
		hub.register(&client{id: id, send: make(chan []byte, 2)})
	}

	return hub
}

func drain(t *testing.T, hub *Hub, id string) []Message {
	t.Helper()

	hub.mu.RLock()
	c := hub.clients[id]
	hub.mu.RUnlock()
	require.NotNil(t, c)

	var messages []Message
	for {
		select {
		case raw := <-c.send:
			var message Message
			require.NoError(t, json.Unmarshal(raw, &message))
			messages = append(messages, message)
		default:
			return messages
		}
	}
}

func TestHub_Send(t *testing.T) {
	t.Run("Encodes the event for the addressed connection only", func(t *testing.T) {
		// Given: two connections
		hub := newTestHub("conn-a", "conn-b")

		// When: A is told it joined
		hub.Send("conn-a", entity.NewJoinedEvent("game1", entity.White))

		// Then: only A gets the frame
		messages := drain(t, hub, "conn-a")
		require.Len(t, messages, 1)
		assert.Equal(t, "game:joined", messages[0].Action)
		assert.JSONEq(t, `{"sessionId":"game1","color":"white"}`, string(messages[0].Payload))
		assert.Empty(t, drain(t, hub, "conn-b"))
	})

	t.Run("Full buffer drops the message", func(t *testing.T) {
		hub := newTestHub("conn-a")

		for i := 0; i < 5; i++ {
			hub.Send("conn-a", entity.NewTextEvent(entity.EventMoveMade, "e2e4"))
		}

		assert.Len(t, drain(t, hub, "conn-a"), 2)
	})

	t.Run("Unknown connection is ignored", func(t *testing.T) {
		hub := newTestHub()

		assert.NotPanics(t, func() {
			hub.Send("conn-x", entity.NewTextEvent(entity.EventError, "boom"))
		})
	})
}

func TestHub_Broadcast(t *testing.T) {
	// Given: A and B share a room, C is elsewhere
	hub := newTestHub("conn-a", "conn-b", "conn-c")
	hub.JoinRoom("conn-a", "game1")
	hub.JoinRoom("conn-b", "game1")
	hub.JoinRoom("conn-c", "game2")

	// When: A broadcasts its move
	hub.Broadcast("game1", "conn-a", entity.NewTextEvent(entity.EventMoveMade, "e2e4"))

	// Then: only B receives it
	messages := drain(t, hub, "conn-b")
	require.Len(t, messages, 1)
	assert.Equal(t, "game:move_made", messages[0].Action)
	assert.JSONEq(t, `"e2e4"`, string(messages[0].Payload))
	assert.Empty(t, drain(t, hub, "conn-a"))
	assert.Empty(t, drain(t, hub, "conn-c"))
}

func TestHub_Unregister(t *testing.T) {
	// Given: A and B in a room
	hub := newTestHub("conn-a", "conn-b")
	hub.JoinRoom("conn-a", "game1")
	hub.JoinRoom("conn-b", "game1")

	hub.mu.RLock()
	a := hub.clients["conn-a"]
	hub.mu.RUnlock()

	// When: A goes away
	hub.unregister("conn-a")

	// Then: its buffer is closed and it left the room
	_, open := <-a.send
	assert.False(t, open)
	assert.Equal(t, 1, hub.RoomMembers("game1"))

	// And: unregistering twice or joining afterwards is harmless
	assert.NotPanics(t, func() {
		hub.unregister("conn-a")
		hub.JoinRoom("conn-a", "game1")
		hub.Broadcast("game1", "", entity.NewTextEvent(entity.EventMoveMade, "e2e4"))
	})
	assert.Equal(t, 1, hub.RoomMembers("game1"))
}

func TestHub_Close(t *testing.T) {
	hub := newTestHub("conn-a", "conn-b")
	hub.JoinRoom("conn-a", "game1")

	hub.Close()

	assert.Zero(t, hub.RoomMembers("game1"))
	assert.NotPanics(t, func() {
		hub.Send("conn-a", entity.NewTextEvent(entity.EventError, "late"))
	})
}
