package application

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/chess-backend/internal/config"
	"github.com/rocketscienceinc/chess-backend/internal/repository"
	"github.com/rocketscienceinc/chess-backend/internal/repository/storage"
	"github.com/rocketscienceinc/chess-backend/internal/rules"
	"github.com/rocketscienceinc/chess-backend/internal/usecase"
	"github.com/rocketscienceinc/chess-backend/transport/rest"
	"github.com/rocketscienceinc/chess-backend/transport/websocket"
)

// RunApp - runs the application until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	archive, closeArchive, err := initArchive(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeArchive()

	engine := rules.NewEngine()
	registry := repository.NewSessionRegistry(engine.InitialState)
	hub := websocket.NewHub(logger)

	gameManager := usecase.NewGameManager(logger, registry, engine, hub, archive)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		httpErrCh <- rest.New(logger, gameManager, archive, conf.AllowedOrigin).Start(ctx, conf.HTTPPort)
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsErrCh <- websocket.New(logger, hub, gameManager, conf.AllowedOrigin).Start(ctx, conf.SocketPort)
	}()

	var runErr error

	select {
	case err = <-httpErrCh:
		httpErrCh = nil
		if err != nil {
			runErr = fmt.Errorf("HTTP server error: %w", err)
		}
	case err = <-wsErrCh:
		wsErrCh = nil
		if err != nil {
			runErr = fmt.Errorf("WebSocket server error: %w", err)
		}
	case <-ctx.Done():
		log.Info("Received signal, shutting down")
	}

	// the remaining server stops on the canceled context
	stop()

	if httpErrCh != nil {
		if err = <-httpErrCh; err != nil {
			log.Error("HTTP server shutdown failed", "error", err)
		}
	}

	if wsErrCh != nil {
		if err = <-wsErrCh; err != nil {
			log.Error("WebSocket server shutdown failed", "error", err)
		}
	}

	log.Info("Application stopped")

	return runErr
}

// initArchive - connects the finished game archive when redis is enabled.
func initArchive(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.GameArchive, func(), error) {
	if !conf.Redis.Enabled {
		log.Info("game archive is disabled")
		return nil, func() {}, nil
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	log.Info("game archive is enabled", "addr", conf.Redis.GetRedisAddr(), "ttl", conf.Redis.ArchiveTTL)

	archive := repository.NewGameArchive(redisStorage.Connection, conf.Redis.ArchiveTTL, conf.Redis.ArchiveRecent)
	closeArchive := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return archive, closeArchive, nil
}
