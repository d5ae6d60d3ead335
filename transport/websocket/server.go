package websocket

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/chess-backend/internal/entity"
	"github.com/rocketscienceinc/chess-backend/pkg/httpserver"
)

type gameManager interface {
	Join(connectionID string) (string, entity.Color, error)
	SubmitMove(ctx context.Context, connectionID, sessionID, notation string) error
	Disconnect(connectionID string)
}

type handler func(ctx context.Context, c *client, message *Message) error

type Server struct {
	logger  *slog.Logger
	hub     *Hub
	manager gameManager

	upgrader websocket.Upgrader
	handlers map[string]handler
}

func New(logger *slog.Logger, hub *Hub, manager gameManager, allowedOrigin string) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		hub:     hub,
		manager: manager,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigin),
		},
		handlers: make(map[string]handler),
	}

	server.handlers[actionJoin] = server.handleJoin
	server.handlers[actionMove] = server.handleMove

	return server
}

// Start - serves websocket connections on /ws until ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	defer that.hub.Close()

	return httpserver.Run(ctx, httpserver.New(port, that.Handler(ctx)))
}

func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveWs(ctx, w, r)
	})

	return mux
}

// serveWs - upgrades the request and starts the connection pumps.
func (that *Server) serveWs(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWs")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("failed to upgrade connection", "origin", r.Header.Get("Origin"), "error", err)
		return
	}

	c := newClient(uuid.NewString(), conn, that.logger)
	that.hub.register(c)

	log.Info("websocket connection established", "connection_id", c.id)

	go c.writePump()
	go func() {
		c.readPump(ctx, that.handleMessage)
		that.disconnect(c)
	}()
}

func (that *Server) disconnect(c *client) {
	that.hub.unregister(c.id)
	that.manager.Disconnect(c.id)
	_ = c.conn.Close()

	that.logger.Info("websocket connection closed", "connection_id", c.id)
}

func checkOrigin(allowedOrigin string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		return origin == "" || allowedOrigin == "*" || origin == allowedOrigin
	}
}
