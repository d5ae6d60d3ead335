package entity

type EventName string

const (
	EventJoined       EventName = "game:joined"
	EventSessionFull  EventName = "game:full"
	EventGameNotFound EventName = "game:not_found"
	EventNotYourTurn  EventName = "game:not_your_turn"
	EventInvalidMove  EventName = "game:invalid_move"
	EventMoveMade     EventName = "game:move_made"
	EventBoardUpdate  EventName = "game:board_update"
	EventGameOver     EventName = "game:over"
	EventAlreadyOver  EventName = "game:already_over"
	EventError        EventName = "error"
)

// Event is an outbound notification. Payload is encoded as JSON by the transport.
type Event struct {
	Name    EventName
	Payload any
}

type JoinedPayload struct {
	SessionID string `json:"sessionId"`
	Color     Color  `json:"color"`
}

type GameOverPayload struct {
	Reason GameResult `json:"reason"`
}

func NewJoinedEvent(sessionID string, color Color) Event {
	return Event{Name: EventJoined, Payload: JoinedPayload{SessionID: sessionID, Color: color}}
}

func NewGameOverEvent(reason GameResult) Event {
	return Event{Name: EventGameOver, Payload: GameOverPayload{Reason: reason}}
}

// NewTextEvent builds the events whose payload is a bare string (session id, move or message).
func NewTextEvent(name EventName, text string) Event {
	return Event{Name: name, Payload: text}
}
