package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/corentings/chess/v2"

	"github.com/rocketscienceinc/chess-backend/internal/entity"
)

var (
	ErrMalformedNotation = errors.New("malformed move notation")
	ErrEngineFailure     = errors.New("rules engine failure")
	ErrInvalidPosition   = errors.New("invalid position")
)

var (
	uciPattern = regexp.MustCompile(`^[a-h][1-8][a-h][1-8][qrbn]?$`)
	sanPattern = regexp.MustCompile(`^(?:[KQRBN][a-h]?[1-8]?x?[a-h][1-8]|[a-h](?:x[a-h])?[1-8](?:=?[QRBN])?|O-O(?:-O)?)[+#]?[!?]{0,2}$`)
)

// Result is the outcome of applying a move. Board is set only when Legal is true.
type Result struct {
	Legal bool
	Board entity.Board
}

// Engine answers chess rule questions about an entity.Board. It keeps no state of its own.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// InitialState - the standard starting position.
func (that *Engine) InitialState() entity.Board {
	return entity.Board{FEN: chess.NewGame().FEN()}
}

// NewState - a board starting from an arbitrary FEN.
func (that *Engine) NewState(fen string) (entity.Board, error) {
	option, err := chess.FEN(fen)
	if err != nil {
		return entity.Board{}, fmt.Errorf("%w: %w", ErrInvalidPosition, err)
	}

	start := chess.NewGame(option).FEN()

	return entity.Board{StartFEN: start, FEN: start}, nil
}

// MoverOf - the color whose turn it is on the board.
func (that *Engine) MoverOf(board entity.Board) (entity.Color, error) {
	fields := strings.Fields(board.FEN)
	if len(fields) < 2 {
		return entity.NoColor, fmt.Errorf("%w: %q", ErrInvalidPosition, board.FEN)
	}

	switch fields[1] {
	case "w":
		return entity.White, nil
	case "b":
		return entity.Black, nil
	default:
		return entity.NoColor, fmt.Errorf("%w: side to move %q", ErrInvalidPosition, fields[1])
	}
}

// Apply plays notation (UCI or SAN) on a copy of the board.
// A well formed but illegal move is reported through Result.Legal, not as an error.
func (that *Engine) Apply(board entity.Board, notation string) (result Result, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			result = Result{}
			err = fmt.Errorf("%w: %v", ErrEngineFailure, recovered)
		}
	}()

	notation = strings.TrimSpace(notation)
	if !uciPattern.MatchString(notation) && !sanPattern.MatchString(notation) {
		return Result{}, fmt.Errorf("%w: %q", ErrMalformedNotation, notation)
	}

	game, err := replay(board)
	if err != nil {
		return Result{}, err
	}

	if game.Outcome() != chess.NoOutcome {
		return Result{Legal: false}, nil
	}

	move, ok := findMove(game, notation)
	if !ok {
		return Result{Legal: false}, nil
	}

	if err = game.Move(move, nil); err != nil {
		return Result{Legal: false}, nil
	}

	return Result{
		Legal: true,
		Board: board.WithMove(move.String(), game.FEN()),
	}, nil
}

// Classify - terminal classification of the board.
// Threefold repetition and the fifty-move rule end the game without a claim.
func (that *Engine) Classify(board entity.Board) (entity.GameResult, error) {
	game, err := replay(board)
	if err != nil {
		return entity.ResultUnknown, err
	}

	switch game.Method() {
	case chess.Checkmate:
		return entity.ResultCheckmate, nil
	case chess.Stalemate:
		return entity.ResultStalemate, nil
	case chess.InsufficientMaterial,
		chess.FivefoldRepetition,
		chess.SeventyFiveMoveRule,
		chess.ThreefoldRepetition,
		chess.FiftyMoveRule,
		chess.DrawOffer:
		return entity.ResultDraw, nil
	}

	if game.Outcome() != chess.NoOutcome {
		return entity.ResultUnknown, nil
	}

	for _, method := range game.EligibleDraws() {
		if method == chess.ThreefoldRepetition || method == chess.FiftyMoveRule {
			return entity.ResultDraw, nil
		}
	}

	return entity.ResultOngoing, nil
}

// Serialize - FEN of the current position.
func (that *Engine) Serialize(board entity.Board) string {
	return board.FEN
}

// PGN - the game so far in portable game notation.
func (that *Engine) PGN(board entity.Board) (string, error) {
	game, err := replay(board)
	if err != nil {
		return "", err
	}

	if board.StartFEN != "" {
		game.AddTagPair("SetUp", "1")
		game.AddTagPair("FEN", board.StartFEN)
	}

	return game.String(), nil
}

func replay(board entity.Board) (*chess.Game, error) {
	var options []func(*chess.Game)

	if board.StartFEN != "" {
		option, err := chess.FEN(board.StartFEN)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to decode start position: %w", ErrEngineFailure, err)
		}
		options = append(options, option)
	}

	game := chess.NewGame(options...)
	for _, move := range board.Moves {
		if err := game.PushNotationMove(move, chess.UCINotation{}, nil); err != nil {
			return nil, fmt.Errorf("%w: failed to replay move %s: %w", ErrEngineFailure, move, err)
		}
	}

	return game, nil
}

func findMove(game *chess.Game, notation string) (*chess.Move, bool) {
	if uciPattern.MatchString(notation) {
		for _, candidate := range game.ValidMoves() {
			if candidate.String() == notation {
				return &candidate, true
			}
		}
	}

	if sanPattern.MatchString(notation) {
		move, err := chess.AlgebraicNotation{}.Decode(game.Position(), notation)
		if err == nil {
			return move, true
		}
	}

	return nil, false
}
