package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/chess-backend/internal/repository"
)

func (that *Server) statsHandler(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, that.stats.Stats())
}

// gameHandler - archived record of a finished game.
func (that *Server) gameHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "gameHandler")

	if that.archive == nil {
		http.Error(w, "game archive is disabled", http.StatusNotFound)
		return
	}

	id := r.PathValue("id")

	record, err := that.archive.GetByID(r.Context(), id)
	if errors.Is(err, repository.ErrGameRecordNotFound) {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error("failed to get game record", "session_id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)

		return
	}

	that.writeJSON(w, http.StatusOK, record)
}

// recentGamesHandler - ids of the latest archived games.
func (that *Server) recentGamesHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "recentGamesHandler")

	if that.archive == nil {
		that.writeJSON(w, http.StatusOK, []string{})
		return
	}

	ids, err := that.archive.Recent(r.Context(), recentGamesLimit)
	if err != nil {
		log.Error("failed to list recent games", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)

		return
	}

	that.writeJSON(w, http.StatusOK, ids)
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Warn("failed to write response", "error", err)
	}
}
