package entity

import (
	"fmt"

	"github.com/rocketscienceinc/chess-backend/internal/apperror"
)

const MaxParticipants = 2

type Participant struct {
	ConnectionID string `json:"connection_id"`
	Color        Color  `json:"color"`
}

type Session struct {
	ID           string        `json:"id"`
	Participants []Participant `json:"participants"`
	Phase        Phase         `json:"phase"`
	Board        Board         `json:"board"`
}

func NewSession(id string, board Board) *Session {
	return &Session{
		ID:           id,
		Participants: make([]Participant, 0, MaxParticipants),
		Phase:        PhaseForming,
		Board:        board,
	}
}

func (that *Session) IsForming() bool {
	return that.Phase == PhaseForming
}

func (that *Session) IsActive() bool {
	return that.Phase == PhaseActive
}

func (that *Session) IsFinished() bool {
	return that.Phase == PhaseFinished
}

func (that *Session) IsFull() bool {
	return len(that.Participants) >= MaxParticipants
}

func (that *Session) IsEmpty() bool {
	return len(that.Participants) == 0
}

// NextColor - the color the next joiner gets: the first joiner plays white.
func (that *Session) NextColor() Color {
	if len(that.Participants) == 0 {
		return White
	}

	return Black
}

// AddParticipant seats the connection and activates the session once it holds two players.
func (that *Session) AddParticipant(connectionID string) (Participant, error) {
	if that.IsFull() {
		return Participant{}, fmt.Errorf("%w: session %s", apperror.ErrSessionFull, that.ID)
	}

	participant := Participant{
		ConnectionID: connectionID,
		Color:        that.NextColor(),
	}
	that.Participants = append(that.Participants, participant)

	if that.IsFull() && that.IsForming() {
		that.Phase = PhaseActive
	}

	return participant, nil
}

func (that *Session) Participant(connectionID string) (Participant, bool) {
	for _, participant := range that.Participants {
		if participant.ConnectionID == connectionID {
			return participant, true
		}
	}

	return Participant{}, false
}

// RemoveParticipant drops every seat held by the connection and reports how many were dropped.
// The phase is left as is.
func (that *Session) RemoveParticipant(connectionID string) int {
	kept := that.Participants[:0]
	for _, participant := range that.Participants {
		if participant.ConnectionID != connectionID {
			kept = append(kept, participant)
		}
	}

	removed := len(that.Participants) - len(kept)
	that.Participants = kept

	return removed
}

func (that *Session) Finish() {
	that.Phase = PhaseFinished
}
