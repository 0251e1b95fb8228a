package postgres

import (
	"context"
	"errors"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryColumns = `id, workspace_id, name, category_type, icon, color, created_at, updated_at`

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	return insertCategory(ctx, r.pool, category)
}

func insertCategory(ctx context.Context, q querier, category *domain.Category) (*domain.Category, error) {
	row := q.QueryRow(ctx, `
		INSERT INTO categories (workspace_id, name, category_type, icon, color)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+categoryColumns,
		category.WorkspaceID, category.Name, string(category.Type), category.Icon, category.Color)
	created, err := scanCategory(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrCategoryNameExists
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a category by its ID within a workspace
func (r *CategoryRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Category, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id)
	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// GetAllByWorkspace retrieves all categories for a workspace in creation order
func (r *CategoryRepository) GetAllByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE workspace_id = $1 ORDER BY created_at, id`,
		workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}

// Update applies the non-nil fields of patch
func (r *CategoryRepository) Update(ctx context.Context, workspaceID, id uuid.UUID, patch domain.CategoryPatch) (*domain.Category, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE categories SET
			name = COALESCE($3, name),
			icon = COALESCE($4, icon),
			color = COALESCE($5, color),
			updated_at = NOW()
		WHERE workspace_id = $1 AND id = $2
		RETURNING `+categoryColumns,
		workspaceID, id, patch.Name, patch.Icon, patch.Color)
	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrCategoryNameExists
		}
		return nil, err
	}
	return category, nil
}

// Delete removes a category. Transactions naming it are left as they are.
func (r *CategoryRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var (
		c            domain.Category
		categoryType string
	)
	if err := row.Scan(&c.ID, &c.WorkspaceID, &c.Name, &categoryType, &c.Icon, &c.Color, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Type = domain.TransactionType(categoryType)
	return &c, nil
}
