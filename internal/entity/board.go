package entity

import "slices"

// Board is a chess position together with the moves that produced it.
// An empty StartFEN means the standard starting position.
type Board struct {
	StartFEN string   `json:"start_fen,omitempty"`
	Moves    []string `json:"moves,omitempty"`
	FEN      string   `json:"fen"`
}

// WithMove returns a copy of the board advanced by one move; the receiver is left untouched.
func (that Board) WithMove(uci, fen string) Board {
	moves := make([]string, 0, len(that.Moves)+1)
	moves = append(moves, that.Moves...)

	return Board{
		StartFEN: that.StartFEN,
		Moves:    append(moves, uci),
		FEN:      fen,
	}
}

func (that Board) Equal(other Board) bool {
	return that.StartFEN == other.StartFEN &&
		that.FEN == other.FEN &&
		slices.Equal(that.Moves, other.Moves)
}
