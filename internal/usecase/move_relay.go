package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/chess-backend/internal/apperror"
	"github.com/rocketscienceinc/chess-backend/internal/entity"
)

// SubmitMove validates and applies a move for the connection, then notifies the opponent.
// Rejections are unicast to the sender and leave the session untouched.
func (that *GameManager) SubmitMove(ctx context.Context, connectionID, sessionID, notation string) error {
	log := that.logger.With("method", "SubmitMove", "session_id", sessionID, "connection_id", connectionID)

	record, err := that.submitMove(log, connectionID, sessionID, notation)
	if record != nil {
		that.archiveGame(ctx, log, record)
	}

	return err
}

func (that *GameManager) submitMove(log *slog.Logger, connectionID, sessionID, notation string) (*entity.GameRecord, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session := that.registry.Get(sessionID)
	if session == nil {
		that.gateway.Send(connectionID, entity.NewTextEvent(entity.EventGameNotFound, sessionID))
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, sessionID)
	}

	participant, ok := session.Participant(connectionID)
	if !ok {
		that.gateway.Send(connectionID, entity.NewTextEvent(entity.EventGameNotFound, sessionID))
		return nil, fmt.Errorf("%w: %s", apperror.ErrPlayerNotInSession, sessionID)
	}

	if session.IsFinished() {
		that.gateway.Send(connectionID, entity.NewTextEvent(entity.EventAlreadyOver, sessionID))
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameFinished, sessionID)
	}

	mover, err := that.rules.MoverOf(session.Board)
	if err != nil {
		return nil, that.internalMoveError(log, session, connectionID, notation, err)
	}

	if participant.Color != mover {
		that.gateway.Send(connectionID, entity.NewTextEvent(entity.EventNotYourTurn, notation))
		return nil, fmt.Errorf("%w: %s to move", apperror.ErrNotYourTurn, mover)
	}

	result, err := that.rules.Apply(session.Board, notation)
	if err != nil {
		return nil, that.internalMoveError(log, session, connectionID, notation, err)
	}

	if !result.Legal {
		that.gateway.Send(connectionID, entity.NewTextEvent(entity.EventInvalidMove, notation))
		return nil, fmt.Errorf("%w: %s", apperror.ErrIllegalMove, notation)
	}

	verdict, err := that.rules.Classify(result.Board)
	if err != nil {
		return nil, that.internalMoveError(log, session, connectionID, notation, err)
	}

	session.Board = result.Board

	if verdict.IsTerminal() {
		session.Finish()
		that.gateway.Broadcast(session.ID, connectionID, entity.NewGameOverEvent(verdict))
		log.Info("game over", "reason", verdict)

		return that.newRecord(log, session, verdict), nil
	}

	that.gateway.Broadcast(session.ID, connectionID, entity.NewTextEvent(entity.EventMoveMade, notation))
	that.gateway.Broadcast(session.ID, connectionID, entity.NewTextEvent(entity.EventBoardUpdate, that.rules.Serialize(session.Board)))
	log.Debug("move made", "move", notation, "color", participant.Color)

	return nil, nil
}

func (that *GameManager) internalMoveError(log *slog.Logger, session *entity.Session, connectionID, notation string, err error) error {
	log.Error("failed to process move",
		"move", notation,
		"fen", that.rules.Serialize(session.Board),
		"error", err,
	)
	that.gateway.Send(connectionID, entity.NewTextEvent(entity.EventError, apperror.ErrInternalMove.Error()))

	return fmt.Errorf("%w: %w", apperror.ErrInternalMove, err)
}
