package usecase

// Disconnect removes the connection from every session it sits in.
// Sessions left without participants are dropped together with their wait queue entry;
// a remaining opponent is not notified.
func (that *GameManager) Disconnect(connectionID string) {
	log := that.logger.With("method", "Disconnect", "connection_id", connectionID)

	that.mu.Lock()
	defer that.mu.Unlock()

	for _, session := range that.registry.Sessions() {
		if session.RemoveParticipant(connectionID) == 0 {
			continue
		}

		if session.IsEmpty() {
			that.registry.RemoveSession(session.ID)
			log.Info("session removed", "session_id", session.ID)

			continue
		}

		log.Info("player left session", "session_id", session.ID, "phase", session.Phase.String())
	}
}
