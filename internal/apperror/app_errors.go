package apperror

import "errors"

var (
	ErrSessionFull        = errors.New("session is full")
	ErrSessionNotFound    = errors.New("session not found")
	ErrPlayerNotInSession = errors.New("player is not in session")
	ErrNotYourTurn        = errors.New("it's not your turn")
	ErrIllegalMove        = errors.New("illegal move")
	ErrGameFinished       = errors.New("game is already finished")
	ErrInternalMove       = errors.New("failed to process move")
)
