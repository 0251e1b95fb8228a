package messaging

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/dompet-app/dompet-backend/internal/websocket"
	"github.com/google/uuid"
)

// ErrInvalidMessage is returned for a relay message without a workspace or event
var ErrInvalidMessage = errors.New("invalid relay message")

// EventMessage carries one websocket event between API instances. The event
// stays serialized so receivers forward it without decoding the payload.
type EventMessage struct {
	WorkspaceID uuid.UUID       `json:"workspaceId"`
	Type        string          `json:"type"`
	Event       json.RawMessage `json:"event"`
	Origin      string          `json:"origin"`
	Timestamp   time.Time       `json:"timestamp"`
}

// NewEventMessage wraps an event for the relay
func NewEventMessage(workspaceID uuid.UUID, event websocket.Event, origin string) (*EventMessage, error) {
	data, err := event.ToJSON()
	if err != nil {
		return nil, err
	}
	return &EventMessage{
		WorkspaceID: workspaceID,
		Type:        event.Type,
		Event:       data,
		Origin:      origin,
		Timestamp:   time.Now().UTC(),
	}, nil
}

// ToJSON converts the message to JSON bytes
func (m *EventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// EventMessageFromJSON decodes and validates a relay message
func EventMessageFromJSON(data []byte) (*EventMessage, error) {
	var msg EventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.WorkspaceID == uuid.Nil || len(msg.Event) == 0 || string(msg.Event) == "null" {
		return nil, ErrInvalidMessage
	}
	return &msg, nil
}
