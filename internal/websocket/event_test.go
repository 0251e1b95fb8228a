package websocket

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent_CombinesEntityAndAction(t *testing.T) {
	before := time.Now().UTC()
	evt := NewEvent(EventTypeSeeded, EntityTypeWorkspace, map[string]int{"accounts": 5})

	assert.Equal(t, "workspace.seeded", evt.Type)
	assert.Equal(t, EntityTypeWorkspace, evt.Entity)
	assert.Equal(t, time.UTC, evt.Timestamp.Location())
	assert.False(t, evt.Timestamp.Before(before))
}

func TestEvent_WireShape(t *testing.T) {
	evt := AccountUpdated(map[string]string{"name": "Wallet", "initialBalance": "12.50"})
	evt.Timestamp = time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC)

	data, err := evt.ToJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "account.updated",
		"entity": "account",
		"payload": {"name": "Wallet", "initialBalance": "12.50"},
		"timestamp": "2025-03-04T08:00:00Z"
	}`, string(data))
}

func TestEntityEvent_Helpers(t *testing.T) {
	payload := map[string]interface{}{"name": "Wallet"}
	id := uuid.New()

	tests := []struct {
		evt      Event
		wantType string
		entity   EntityType
	}{
		{TransactionCreated(payload), "transaction.created", EntityTypeTransaction},
		{TransactionUpdated(payload), "transaction.updated", EntityTypeTransaction},
		{AccountCreated(payload), "account.created", EntityTypeAccount},
		{CategoryCreated(payload), "category.created", EntityTypeCategory},
		{CategoryUpdated(payload), "category.updated", EntityTypeCategory},
		{WorkspaceUpdated(payload), "workspace.updated", EntityTypeWorkspace},
		{LedgerSnapshot(payload), "ledger.snapshot", EntityTypeLedger},
	}
	for _, tt := range tests {
		t.Run(tt.wantType, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.evt.Type)
			assert.Equal(t, tt.entity, tt.evt.Entity)
			assert.Equal(t, payload, tt.evt.Payload)
		})
	}

	deletions := map[string]Event{
		"transaction.deleted": TransactionDeleted(id),
		"account.deleted":     AccountDeleted(id),
		"category.deleted":    CategoryDeleted(id),
		"workspace.deleted":   WorkspaceDeleted(id),
	}
	for wantType, evt := range deletions {
		assert.Equal(t, wantType, evt.Type)
		data, err := evt.ToJSON()
		require.NoError(t, err)
		var decoded struct {
			Payload map[string]string `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, map[string]string{"id": id.String()}, decoded.Payload, "deletions carry only the id")
	}
}

func TestLedgerError(t *testing.T) {
	wsID := uuid.New()
	evt := LedgerError(wsID, errors.New("connection refused"))

	data, err := evt.ToJSON()
	require.NoError(t, err)

	var decoded struct {
		Type    string `json:"type"`
		Payload struct {
			WorkspaceID string `json:"workspaceId"`
			Message     string `json:"message"`
		} `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "ledger.error", decoded.Type)
	assert.Equal(t, wsID.String(), decoded.Payload.WorkspaceID)
	assert.Equal(t, "connection refused", decoded.Payload.Message)
}
