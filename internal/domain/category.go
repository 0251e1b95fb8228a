package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Category classifies transactions of one type. Transactions link to it by name.
type Category struct {
	ID          uuid.UUID       `json:"id"`
	WorkspaceID uuid.UUID       `json:"workspaceId"`
	Name        string          `json:"name"`
	Type        TransactionType `json:"type"`
	Icon        string          `json:"icon"`
	Color       string          `json:"color"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Ref returns a reference to the category suitable for storing on a transaction
func (c *Category) Ref() EntityRef {
	id := c.ID
	return EntityRef{ID: &id, Name: c.Name}
}

// CategoryPatch holds the optional fields of a category update
type CategoryPatch struct {
	Name  *string
	Icon  *string
	Color *string
}

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) (*Category, error)
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*Category, error)
	GetAllByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*Category, error)
	Update(ctx context.Context, workspaceID, id uuid.UUID, patch CategoryPatch) (*Category, error)
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
}
