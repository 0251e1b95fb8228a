package websocket

import "github.com/google/uuid"

// EventPublisher defines the interface for publishing change events
type EventPublisher interface {
	// Publish sends an event to every client watching the given workspace
	Publish(workspaceID uuid.UUID, event Event)
}

// Ensure Hub implements EventPublisher
var _ EventPublisher = (*Hub)(nil)

// Publish implements EventPublisher by broadcasting the event to the workspace
func (h *Hub) Publish(workspaceID uuid.UUID, event Event) {
	h.Broadcast(workspaceID, event)
}

// NoOpPublisher is a publisher that does nothing (for testing or when WebSocket is disabled)
type NoOpPublisher struct{}

// Publish does nothing
func (n *NoOpPublisher) Publish(workspaceID uuid.UUID, event Event) {}
