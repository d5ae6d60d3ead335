package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/chess-backend/internal/entity"
)

var (
	ErrUnknownAction  = errors.New("unknown action")
	ErrInvalidPayload = errors.New("invalid payload")
)

// handleMessage - decodes one inbound frame and routes it by action.
func (that *Server) handleMessage(ctx context.Context, c *client, raw []byte) {
	log := that.logger.With("method", "handleMessage", "connection_id", c.id)

	var message Message
	if err := json.Unmarshal(raw, &message); err != nil {
		log.Warn("failed to unmarshal message", "error", err)
		that.hub.Send(c.id, entity.NewTextEvent(entity.EventError, "malformed message"))

		return
	}

	handle, ok := that.handlers[message.Action]
	if !ok {
		log.Warn("unknown action", "action", message.Action)
		that.hub.Send(c.id, entity.NewTextEvent(entity.EventError, fmt.Sprintf("%s: %q", ErrUnknownAction, message.Action)))

		return
	}

	if err := handle(ctx, c, &message); err != nil {
		log.Debug("request rejected", "action", message.Action, "error", err)
	}
}

func (that *Server) handleJoin(_ context.Context, c *client, _ *Message) error {
	if _, _, err := that.manager.Join(c.id); err != nil {
		return fmt.Errorf("failed to join: %w", err)
	}

	return nil
}

func (that *Server) handleMove(ctx context.Context, c *client, message *Message) error {
	var payload MovePayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil || payload.SessionID == "" || payload.Move == "" {
		that.hub.Send(c.id, entity.NewTextEvent(entity.EventError, ErrInvalidPayload.Error()))

		return fmt.Errorf("%w: %s", ErrInvalidPayload, message.Payload)
	}

	if err := that.manager.SubmitMove(ctx, c.id, payload.SessionID, payload.Move); err != nil {
		return fmt.Errorf("failed to submit move: %w", err)
	}

	return nil
}
