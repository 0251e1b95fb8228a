package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is income or expense
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction is a single ledger entry. Amount is a magnitude; the sign comes
// from Type. Amount and Date are nullable because legacy rows may lack them.
type Transaction struct {
	ID                      uuid.UUID           `json:"id"`
	WorkspaceID             uuid.UUID           `json:"workspaceId"`
	UserID                  uuid.UUID           `json:"userId"`
	Type                    TransactionType     `json:"type"`
	Amount                  decimal.NullDecimal `json:"amount"`
	Description             string              `json:"description"`
	Category                EntityRef           `json:"category"`
	Account                 EntityRef           `json:"account"`
	Date                    *time.Time          `json:"date"`
	ExcludeFromCalculations bool                `json:"excludeFromCalculations"`
	CreatedAt               time.Time           `json:"createdAt"`
	UpdatedAt               time.Time           `json:"updatedAt"`
}

// TransactionPatch holds the optional fields of a transaction update
type TransactionPatch struct {
	Type                    *TransactionType
	Amount                  *decimal.Decimal
	Description             *string
	Category                *EntityRef
	Account                 *EntityRef
	Date                    *time.Time
	ExcludeFromCalculations *bool
}

// IsEmpty reports whether the patch changes nothing
func (p TransactionPatch) IsEmpty() bool {
	return p.Type == nil && p.Amount == nil && p.Description == nil && p.Category == nil &&
		p.Account == nil && p.Date == nil && p.ExcludeFromCalculations == nil
}

type TransactionRepository interface {
	Create(ctx context.Context, transaction *Transaction) (*Transaction, error)
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*Transaction, error)
	GetAllByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*Transaction, error)
	Update(ctx context.Context, workspaceID, id uuid.UUID, patch TransactionPatch) (*Transaction, error)
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
}
