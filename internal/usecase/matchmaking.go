package usecase

import (
	"github.com/rocketscienceinc/chess-backend/internal/entity"
)

// Join seats the connection in the oldest waiting session, or in a new one when nobody waits.
// The joiner learns its color through a game:joined event and is enrolled in the session room.
func (that *GameManager) Join(connectionID string) (string, entity.Color, error) {
	log := that.logger.With("method", "Join", "connection_id", connectionID)

	that.mu.Lock()
	defer that.mu.Unlock()

	target := that.registry.PeekWaiting()
	if target == nil {
		target = that.registry.CreateSession()
	}

	participant, err := target.AddParticipant(connectionID)
	if err != nil {
		// the wait queue only holds forming sessions, so this means it is corrupted
		log.Error("waiting session is already full", "session_id", target.ID, "error", err)
		that.gateway.Send(connectionID, entity.NewTextEvent(entity.EventSessionFull, target.ID))

		return "", entity.NoColor, err
	}

	that.gateway.Send(connectionID, entity.NewJoinedEvent(target.ID, participant.Color))
	that.gateway.JoinRoom(connectionID, target.ID)

	if target.IsActive() {
		that.registry.PopWaiting()
		log.Info("session started", "session_id", target.ID)
	} else {
		log.Info("waiting for opponent", "session_id", target.ID)
	}

	return target.ID, participant.Color, nil
}
