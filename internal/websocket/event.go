package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of event (created, updated, deleted)
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
)

// Ledger session event types
const (
	EventTypeSnapshot EventType = "snapshot"
	EventTypeError    EventType = "error"
	EventTypeSeeded   EventType = "seeded"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeTransaction EntityType = "transaction"
	EntityTypeAccount     EntityType = "account"
	EntityTypeCategory    EntityType = "category"
	EntityTypeWorkspace   EntityType = "workspace"
	EntityTypeLedger      EntityType = "ledger"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "transaction.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "transaction"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// DeletedPayload is the payload of every *.deleted event
type DeletedPayload struct {
	ID uuid.UUID `json:"id"`
}

// ErrorPayload is the payload of ledger.error
type ErrorPayload struct {
	WorkspaceID uuid.UUID `json:"workspaceId"`
	Message     string    `json:"message"`
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TransactionCreated creates a transaction.created event
func TransactionCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeTransaction, payload)
}

// TransactionUpdated creates a transaction.updated event
func TransactionUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeTransaction, payload)
}

// TransactionDeleted creates a transaction.deleted event
func TransactionDeleted(id uuid.UUID) Event {
	return NewEvent(EventTypeDeleted, EntityTypeTransaction, DeletedPayload{ID: id})
}

// AccountCreated creates an account.created event
func AccountCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeAccount, payload)
}

// AccountUpdated creates an account.updated event
func AccountUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeAccount, payload)
}

// AccountDeleted creates an account.deleted event
func AccountDeleted(id uuid.UUID) Event {
	return NewEvent(EventTypeDeleted, EntityTypeAccount, DeletedPayload{ID: id})
}

// CategoryCreated creates a category.created event
func CategoryCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeCategory, payload)
}

// CategoryUpdated creates a category.updated event
func CategoryUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeCategory, payload)
}

// CategoryDeleted creates a category.deleted event
func CategoryDeleted(id uuid.UUID) Event {
	return NewEvent(EventTypeDeleted, EntityTypeCategory, DeletedPayload{ID: id})
}

// WorkspaceUpdated creates a workspace.updated event
func WorkspaceUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeWorkspace, payload)
}

// WorkspaceDeleted creates a workspace.deleted event
func WorkspaceDeleted(id uuid.UUID) Event {
	return NewEvent(EventTypeDeleted, EntityTypeWorkspace, DeletedPayload{ID: id})
}

// WorkspaceSeeded creates a workspace.seeded event after defaults were created
func WorkspaceSeeded(payload interface{}) Event {
	return NewEvent(EventTypeSeeded, EntityTypeWorkspace, payload)
}

// LedgerSnapshot creates a ledger.snapshot event carrying a computed month view
func LedgerSnapshot(payload interface{}) Event {
	return NewEvent(EventTypeSnapshot, EntityTypeLedger, payload)
}

// LedgerError creates a ledger.error event
func LedgerError(workspaceID uuid.UUID, err error) Event {
	return NewEvent(EventTypeError, EntityTypeLedger, ErrorPayload{WorkspaceID: workspaceID, Message: err.Error()})
}
