package domain

import (
	"time"

	"github.com/google/uuid"
)

// LedgerSnapshot is the complete current state of one workspace as delivered
// by the ledger store. It is never a delta.
type LedgerSnapshot struct {
	Workspace    *Workspace
	Accounts     []Account
	Categories   []Category
	Transactions []Transaction
	LoadedAt     time.Time
}

// WorkspaceID returns the id of the snapshot's workspace
func (s *LedgerSnapshot) WorkspaceID() uuid.UUID {
	if s == nil || s.Workspace == nil {
		return uuid.Nil
	}
	return s.Workspace.ID
}

// FindTransaction looks a transaction up by id, including excluded ones
func (s *LedgerSnapshot) FindTransaction(id uuid.UUID) (Transaction, bool) {
	if s == nil {
		return Transaction{}, false
	}
	for _, tx := range s.Transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return Transaction{}, false
}
