package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/rs/cors"

	"github.com/rocketscienceinc/chess-backend/internal/entity"
	"github.com/rocketscienceinc/chess-backend/pkg/httpserver"
)

const recentGamesLimit = 20

type statsProvider interface {
	Stats() entity.Stats
}

type gameArchive interface {
	GetByID(ctx context.Context, id string) (*entity.GameRecord, error)
	Recent(ctx context.Context, limit int64) ([]string, error)
}

type Server struct {
	logger  *slog.Logger
	stats   statsProvider
	archive gameArchive

	allowedOrigin string
}

// New - archive may be nil when archiving is disabled.
func New(logger *slog.Logger, stats statsProvider, archive gameArchive, allowedOrigin string) *Server {
	return &Server{
		logger:  logger.With("component", "rest"),
		stats:   stats,
		archive: archive,

		allowedOrigin: allowedOrigin,
	}
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", that.rootHandler)
	mux.HandleFunc("GET /ping", that.pingHandler)
	mux.HandleFunc("GET /stats", that.statsHandler)
	mux.HandleFunc("GET /games", that.recentGamesHandler)
	mux.HandleFunc("GET /games/{id}", that.gameHandler)

	return cors.New(cors.Options{
		AllowedOrigins:   []string{that.allowedOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(mux)
}

// Start - serves the REST API until ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	return httpserver.Run(ctx, httpserver.New(port, that.Handler()))
}
