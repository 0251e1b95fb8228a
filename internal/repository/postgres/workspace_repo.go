package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const workspaceColumns = `id, user_id, name, currency, timezone, defaults_seeded_at, created_at, updated_at`

// WorkspaceRepository implements domain.WorkspaceRepository using PostgreSQL
type WorkspaceRepository struct {
	pool *pgxpool.Pool
}

// NewWorkspaceRepository creates a new WorkspaceRepository
func NewWorkspaceRepository(pool *pgxpool.Pool) *WorkspaceRepository {
	return &WorkspaceRepository{pool: pool}
}

// GetByID retrieves a workspace by its ID
func (r *WorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+workspaceColumns+` FROM workspaces WHERE id = $1`, id)
	workspace, err := scanWorkspace(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWorkspaceNotFound
		}
		return nil, err
	}
	return workspace, nil
}

// GetAllByUserID retrieves every workspace owned by a user, oldest first
func (r *WorkspaceRepository) GetAllByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Workspace, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+workspaceColumns+` FROM workspaces WHERE user_id = $1 ORDER BY created_at, id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Workspace
	for rows.Next() {
		workspace, err := scanWorkspace(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, workspace)
	}
	return result, rows.Err()
}

// Create creates a new workspace
func (r *WorkspaceRepository) Create(ctx context.Context, workspace *domain.Workspace) (*domain.Workspace, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO workspaces (user_id, name, currency, timezone)
		VALUES ($1, $2, $3, $4)
		RETURNING `+workspaceColumns,
		workspace.UserID, workspace.Name, workspace.Currency, workspace.Timezone)
	return scanWorkspace(row)
}

// Update applies the non-nil fields of patch
func (r *WorkspaceRepository) Update(ctx context.Context, id uuid.UUID, patch domain.WorkspacePatch) (*domain.Workspace, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE workspaces SET
			name = COALESCE($2, name),
			currency = COALESCE($3, currency),
			timezone = COALESCE($4, timezone),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+workspaceColumns,
		id, patch.Name, patch.Currency, patch.Timezone)
	workspace, err := scanWorkspace(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWorkspaceNotFound
		}
		return nil, err
	}
	return workspace, nil
}

// Delete deletes a workspace and, through cascading keys, its ledger
func (r *WorkspaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM workspaces WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWorkspaceNotFound
	}
	return nil
}

// SeedDefaults inserts the default accounts and categories for each kind that
// is still empty. The workspace row is locked for the whole transaction so two
// concurrent calls run one after the other and the second finds rows present.
func (r *WorkspaceRepository) SeedDefaults(ctx context.Context, id uuid.UUID, accounts []*domain.Account, categories []*domain.Category) (*domain.SeedResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var locked uuid.UUID
	if err := tx.QueryRow(ctx, `SELECT id FROM workspaces WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWorkspaceNotFound
		}
		return nil, err
	}

	result := &domain.SeedResult{}

	var accountCount int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE workspace_id = $1`, id).Scan(&accountCount); err != nil {
		return nil, err
	}
	if accountCount == 0 {
		for _, account := range accounts {
			account.WorkspaceID = id
			if _, err := insertAccount(ctx, tx, account); err != nil {
				return nil, fmt.Errorf("seed account %q: %w", account.Name, err)
			}
			result.AccountsCreated++
		}
	}

	var categoryCount int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE workspace_id = $1`, id).Scan(&categoryCount); err != nil {
		return nil, err
	}
	if categoryCount == 0 {
		for _, category := range categories {
			category.WorkspaceID = id
			if _, err := insertCategory(ctx, tx, category); err != nil {
				return nil, fmt.Errorf("seed category %q: %w", category.Name, err)
			}
			result.CategoriesCreated++
		}
	}

	if _, err := tx.Exec(ctx,
		`UPDATE workspaces SET defaults_seeded_at = COALESCE(defaults_seeded_at, NOW()) WHERE id = $1`, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit seed transaction: %w", err)
	}
	return result, nil
}

func scanWorkspace(row pgx.Row) (*domain.Workspace, error) {
	var w domain.Workspace
	if err := row.Scan(&w.ID, &w.UserID, &w.Name, &w.Currency, &w.Timezone, &w.DefaultsSeededAt, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}
