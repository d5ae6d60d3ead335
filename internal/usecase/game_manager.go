package usecase

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/chess-backend/internal/entity"
	"github.com/rocketscienceinc/chess-backend/internal/rules"
)

type sessionRegistry interface {
	CreateSession() *entity.Session
	PeekWaiting() *entity.Session
	PopWaiting()
	Get(id string) *entity.Session
	RemoveSession(id string)
	Sessions() []*entity.Session
	WaitingLen() int
}

type rulesEngine interface {
	MoverOf(board entity.Board) (entity.Color, error)
	Apply(board entity.Board, notation string) (rules.Result, error)
	Classify(board entity.Board) (entity.GameResult, error)
	Serialize(board entity.Board) string
	PGN(board entity.Board) (string, error)
}

// gateway delivers events to connections. Implementations must not block.
type gateway interface {
	Send(connectionID string, event entity.Event)
	Broadcast(room, exceptConnectionID string, event entity.Event)
	JoinRoom(connectionID, room string)
}

type gameArchive interface {
	Save(ctx context.Context, record *entity.GameRecord) error
}

const archiveTimeout = 5 * time.Second

type noopArchive struct{}

func (noopArchive) Save(context.Context, *entity.GameRecord) error {
	return nil
}

// GameManager pairs connections into sessions, relays moves and cleans up after disconnects.
// Every operation runs under one lock, so registry mutations never interleave.
type GameManager struct {
	logger *slog.Logger

	mu       sync.Mutex
	registry sessionRegistry
	rules    rulesEngine
	gateway  gateway
	archive  gameArchive

	now func() time.Time
}

// NewGameManager - archive may be nil, finished games are then dropped.
func NewGameManager(
	logger *slog.Logger,
	registry sessionRegistry,
	engine rulesEngine,
	gateway gateway,
	archive gameArchive,
) *GameManager {
	if archive == nil {
		archive = noopArchive{}
	}

	return &GameManager{
		logger: logger.With("component", "game_manager"),

		registry: registry,
		rules:    engine,
		gateway:  gateway,
		archive:  archive,

		now: time.Now,
	}
}

func (that *GameManager) Stats() entity.Stats {
	that.mu.Lock()
	defer that.mu.Unlock()

	sessions := that.registry.Sessions()
	stats := entity.Stats{
		Sessions: len(sessions),
		Waiting:  that.registry.WaitingLen(),
	}

	for _, session := range sessions {
		switch session.Phase {
		case entity.PhaseForming:
			stats.Forming++
		case entity.PhaseActive:
			stats.Active++
		case entity.PhaseFinished:
			stats.Finished++
		}
	}

	return stats
}

func (that *GameManager) newRecord(log *slog.Logger, session *entity.Session, reason entity.GameResult) *entity.GameRecord {
	pgn, err := that.rules.PGN(session.Board)
	if err != nil {
		log.Warn("failed to render pgn", "error", err)
	}

	return &entity.GameRecord{
		ID:           uuid.NewString(),
		SessionID:    session.ID,
		Reason:       reason,
		FinalFEN:     that.rules.Serialize(session.Board),
		PGN:          pgn,
		Participants: slices.Clone(session.Participants),
		FinishedAt:   that.now().UTC(),
	}
}

// archiveGame - the record outlives the request: a canceled ctx does not abort the save.
func (that *GameManager) archiveGame(ctx context.Context, log *slog.Logger, record *entity.GameRecord) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
	defer cancel()

	if err := that.archive.Save(ctx, record); err != nil {
		log.Error("failed to archive game", "record_id", record.ID, "error", err)
		return
	}

	log.Debug("game archived", "record_id", record.ID, "reason", record.Reason)
}
