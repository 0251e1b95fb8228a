package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeCash AccountType = "cash"
	AccountTypeBank AccountType = "bank"
)

// Valid reports whether t is a known account type
func (t AccountType) Valid() bool {
	return t == AccountTypeCash || t == AccountTypeBank
}

// Account is a place money lives. Transactions link to it by name.
type Account struct {
	ID             uuid.UUID       `json:"id"`
	WorkspaceID    uuid.UUID       `json:"workspaceId"`
	Name           string          `json:"name"`
	Type           AccountType     `json:"type"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	Note           string          `json:"note"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Ref returns a reference to the account suitable for storing on a transaction
func (a *Account) Ref() EntityRef {
	id := a.ID
	return EntityRef{ID: &id, Name: a.Name}
}

// AccountPatch holds the optional fields of an account update
type AccountPatch struct {
	Name           *string
	Type           *AccountType
	InitialBalance *decimal.Decimal
	Note           *string
}

type AccountRepository interface {
	Create(ctx context.Context, account *Account) (*Account, error)
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*Account, error)
	GetAllByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*Account, error)
	Update(ctx context.Context, workspaceID, id uuid.UUID, patch AccountPatch) (*Account, error)
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
}

// FitsMoneyScale reports whether d can be stored without rounding
func FitsMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale))
}
