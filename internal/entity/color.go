package entity

import (
	"errors"
	"fmt"
)

var ErrUnknownColor = errors.New("unknown color")

// Color is the side a participant plays. White always moves first.
type Color uint8

const (
	NoColor Color = iota
	White
	Black
)

func (that Color) String() string {
	switch that {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return ""
	}
}

func (that Color) Opposite() Color {
	switch that {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

func (that Color) MarshalText() ([]byte, error) {
	if that != White && that != Black {
		return nil, fmt.Errorf("%w: %d", ErrUnknownColor, that)
	}

	return []byte(that.String()), nil
}

func (that *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*that = White
	case "black":
		*that = Black
	default:
		return fmt.Errorf("%w: %q", ErrUnknownColor, text)
	}

	return nil
}

// Phase is the lifecycle stage of a session.
type Phase uint8

const (
	PhaseForming Phase = iota
	PhaseActive
	PhaseFinished
)

func (that Phase) String() string {
	switch that {
	case PhaseForming:
		return "forming"
	case PhaseActive:
		return "active"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

func (that Phase) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

// GameResult is the terminal classification of a position.
type GameResult string

const (
	ResultOngoing   GameResult = "ongoing"
	ResultCheckmate GameResult = "checkmate"
	ResultStalemate GameResult = "stalemate"
	ResultDraw      GameResult = "draw"
	ResultUnknown   GameResult = "unknown"
)

func (that GameResult) IsTerminal() bool {
	return that != ResultOngoing
}
