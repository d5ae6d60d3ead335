package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/chess-backend/internal/entity"
)

const (
	actionJoin = "game:join"
	actionMove = "game:move"
)

// Message is the frame exchanged in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type MovePayload struct {
	SessionID string `json:"sessionId"`
	Move      string `json:"move"`
}

func encodeEvent(event entity.Event) ([]byte, error) {
	message := Message{Action: string(event.Name)}

	if event.Payload != nil {
		payload, err := json.Marshal(event.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", event.Name, err)
		}

		message.Payload = payload
	}

	data, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return data, nil
}
