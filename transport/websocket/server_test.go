package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/chess-backend/internal/entity"
	"github.com/rocketscienceinc/chess-backend/internal/repository"
	"github.com/rocketscienceinc/chess-backend/internal/rules"
	"github.com/rocketscienceinc/chess-backend/internal/usecase"
)

const allowedOrigin = "http://localhost:5173"

type testServer struct {
	url     string
	manager *usecase.GameManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := rules.NewEngine()
	hub := NewHub(logger)
	manager := usecase.NewGameManager(logger, repository.NewSessionRegistry(engine.InitialState), engine, hub, nil)

	ctx, cancel := context.WithCancel(context.Background())
	srv := httptest.NewServer(New(logger, hub, manager, allowedOrigin).Handler(ctx))
	t.Cleanup(func() {
		cancel()
		hub.Close()
		srv.Close()
	})

	return &testServer{
		url:     "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws",
		manager: manager,
	}
}

func (that *testServer) dial(t *testing.T) *websocket.Conn {
	t.Helper()

	header := http.Header{}
	header.Set("Origin", allowedOrigin)

	conn, resp, err := websocket.DefaultDialer.Dial(that.url, header)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func send(t *testing.T, conn *websocket.Conn, action string, payload any) {
	t.Helper()

	message := Message{Action: action}
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		message.Payload = raw
	}

	require.NoError(t, conn.WriteJSON(message))
}

func receive(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var message Message
	require.NoError(t, conn.ReadJSON(&message))

	return message
}

func TestServer_Game(t *testing.T) {
	// Given: a running server and two players
	server := newTestServer(t)
	white := server.dial(t)
	black := server.dial(t)

	// When: both join
	send(t, white, actionJoin, nil)
	joined := receive(t, white)
	send(t, black, actionJoin, nil)
	joinedBlack := receive(t, black)

	// Then: they are paired with opposite colors
	assert.Equal(t, "game:joined", joined.Action)
	assert.JSONEq(t, `{"sessionId":"game1","color":"white"}`, string(joined.Payload))
	assert.JSONEq(t, `{"sessionId":"game1","color":"black"}`, string(joinedBlack.Payload))

	// When: white opens with e4
	send(t, white, actionMove, MovePayload{SessionID: "game1", Move: "e2e4"})

	// Then: black sees the move and the new position
	moveMade := receive(t, black)
	assert.Equal(t, "game:move_made", moveMade.Action)
	assert.JSONEq(t, `"e2e4"`, string(moveMade.Payload))

	boardUpdate := receive(t, black)
	assert.Equal(t, "game:board_update", boardUpdate.Action)
	assert.JSONEq(t, `"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"`, string(boardUpdate.Payload))

	// When: white tries to move again
	send(t, white, actionMove, MovePayload{SessionID: "game1", Move: "d2d4"})

	// Then: white is told it is not its turn
	rejected := receive(t, white)
	assert.Equal(t, "game:not_your_turn", rejected.Action)
	assert.JSONEq(t, `"d2d4"`, string(rejected.Payload))

	// When: white disconnects
	require.NoError(t, white.Close())

	// Then: black stays alone in the active session
	require.Eventually(t, func() bool {
		return server.manager.Stats() == entity.Stats{Sessions: 1, Active: 1}
	}, 5*time.Second, 20*time.Millisecond)
}

func TestServer_BadRequests(t *testing.T) {
	server := newTestServer(t)
	conn := server.dial(t)

	t.Run("Unknown action", func(t *testing.T) {
		send(t, conn, "game:resign", nil)

		message := receive(t, conn)
		assert.Equal(t, "error", message.Action)
	})

	t.Run("Move without session", func(t *testing.T) {
		send(t, conn, actionMove, map[string]string{"move": "e2e4"})

		message := receive(t, conn)
		assert.Equal(t, "error", message.Action)
		assert.JSONEq(t, `"invalid payload"`, string(message.Payload))
	})

	t.Run("Move in a missing session", func(t *testing.T) {
		send(t, conn, actionMove, MovePayload{SessionID: "game9", Move: "e2e4"})

		message := receive(t, conn)
		assert.Equal(t, "game:not_found", message.Action)
		assert.JSONEq(t, `"game9"`, string(message.Payload))
	})

	t.Run("Malformed frame keeps the connection open", func(t *testing.T) {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))

		message := receive(t, conn)
		assert.Equal(t, "error", message.Action)

		send(t, conn, actionJoin, nil)
		assert.Equal(t, "game:joined", receive(t, conn).Action)
	})
}

func TestServer_CheckOrigin(t *testing.T) {
	server := newTestServer(t)

	header := http.Header{}
	header.Set("Origin", "http://evil.example")

	_, resp, err := websocket.DefaultDialer.Dial(server.url, header)

	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()
}
