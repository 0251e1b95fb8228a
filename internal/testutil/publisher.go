package testutil

import (
	"sync"

	"github.com/dompet-app/dompet-backend/internal/websocket"
	"github.com/google/uuid"
)

// PublishedEvent records one Publish call
type PublishedEvent struct {
	WorkspaceID uuid.UUID
	Event       websocket.Event
}

// MockEventPublisher records published events and optionally forwards them
type MockEventPublisher struct {
	mu      sync.Mutex
	Events  []PublishedEvent
	Forward websocket.EventPublisher
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records the event
func (m *MockEventPublisher) Publish(workspaceID uuid.UUID, event websocket.Event) {
	m.mu.Lock()
	m.Events = append(m.Events, PublishedEvent{WorkspaceID: workspaceID, Event: event})
	forward := m.Forward
	m.mu.Unlock()

	if forward != nil {
		forward.Publish(workspaceID, event)
	}
}

// Types returns the type of every recorded event in publish order
func (m *MockEventPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Event.Type
	}
	return types
}
