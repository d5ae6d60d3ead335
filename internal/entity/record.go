package entity

import "time"

// GameRecord is the archived summary of a finished session.
// ID is unique across restarts, SessionID is not.
type GameRecord struct {
	ID           string        `json:"id"`
	SessionID    string        `json:"session_id"`
	Reason       GameResult    `json:"reason"`
	FinalFEN     string        `json:"final_fen"`
	PGN          string        `json:"pgn"`
	Participants []Participant `json:"participants"`
	FinishedAt   time.Time     `json:"finished_at"`
}

// Stats is a point-in-time view of the session registry.
type Stats struct {
	Sessions int `json:"sessions"`
	Waiting  int `json:"waiting"`
	Forming  int `json:"forming"`
	Active   int `json:"active"`
	Finished int `json:"finished"`
}
