package domain

import (
	"context"
	"time"
	// Zone names must resolve on hosts without a system zoneinfo database
	_ "time/tzdata"

	"github.com/google/uuid"
)

// Workspace represents a user's workspace. Every ledger computation runs inside
// exactly one workspace.
type Workspace struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"userId"`
	Name             string     `json:"name"`
	Currency         string     `json:"currency"`
	Timezone         string     `json:"timezone"`
	DefaultsSeededAt *time.Time `json:"defaultsSeededAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Location returns the workspace's time zone, falling back to UTC
func (w *Workspace) Location() *time.Location {
	if w == nil || w.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(w.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// WorkspacePatch holds the optional fields of a workspace update
type WorkspacePatch struct {
	Name     *string
	Currency *string
	Timezone *string
}

// SeedResult reports what a defaults seeding run created
type SeedResult struct {
	AccountsCreated   int `json:"accountsCreated"`
	CategoriesCreated int `json:"categoriesCreated"`
}

// WorkspaceRepository defines the interface for workspace persistence operations
type WorkspaceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Workspace, error)
	GetAllByUserID(ctx context.Context, userID uuid.UUID) ([]*Workspace, error)
	Create(ctx context.Context, workspace *Workspace) (*Workspace, error)
	Update(ctx context.Context, id uuid.UUID, patch WorkspacePatch) (*Workspace, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// SeedDefaults creates the given accounts and categories for each kind that
	// has no rows yet. Implementations must serialize concurrent calls for the
	// same workspace so defaults are never created twice.
	SeedDefaults(ctx context.Context, id uuid.UUID, accounts []*Account, categories []*Category) (*SeedResult, error)
}
