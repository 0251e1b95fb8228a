package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `id, workspace_id, user_id, transaction_type, amount, description,
	category_id, category_name, account_id, account_name, transaction_date,
	exclude_from_calculations, created_at, updated_at`

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create creates a new transaction
func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	amount, err := nullDecimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO transactions (
			workspace_id, user_id, transaction_type, amount, description,
			category_id, category_name, account_id, account_name,
			transaction_date, exclude_from_calculations
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+transactionColumns,
		transaction.WorkspaceID, transaction.UserID, string(transaction.Type), amount, transaction.Description,
		transaction.Category.ID, transaction.Category.Name, transaction.Account.ID, transaction.Account.Name,
		transaction.Date, transaction.ExcludeFromCalculations)
	return scanTransaction(row)
}

// GetByID retrieves a transaction by its ID within a workspace
func (r *TransactionRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id)
	transaction, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}

// GetAllByWorkspace retrieves every transaction of a workspace, newest first.
// Excluded and undated rows are included.
func (r *TransactionRepository) GetAllByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE workspace_id = $1
		ORDER BY transaction_date DESC NULLS LAST, created_at DESC`,
		workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, transaction)
	}
	return result, rows.Err()
}

// Update applies the non-nil fields of patch
func (r *TransactionRepository) Update(ctx context.Context, workspaceID, id uuid.UUID, patch domain.TransactionPatch) (*domain.Transaction, error) {
	var amount pgtype.Numeric
	if patch.Amount != nil {
		var err error
		if amount, err = decimalToPgNumeric(*patch.Amount); err != nil {
			return nil, fmt.Errorf("invalid amount: %w", err)
		}
	}
	var txType *string
	if patch.Type != nil {
		t := string(*patch.Type)
		txType = &t
	}

	var (
		setCategory, setAccount   bool
		categoryID, accountID     *uuid.UUID
		categoryName, accountName string
	)
	if patch.Category != nil {
		setCategory, categoryID, categoryName = true, patch.Category.ID, patch.Category.Name
	}
	if patch.Account != nil {
		setAccount, accountID, accountName = true, patch.Account.ID, patch.Account.Name
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE transactions SET
			transaction_type = COALESCE($3, transaction_type),
			amount = COALESCE($4, amount),
			description = COALESCE($5, description),
			category_id = CASE WHEN $6 THEN $7 ELSE category_id END,
			category_name = CASE WHEN $6 THEN $8 ELSE category_name END,
			account_id = CASE WHEN $9 THEN $10 ELSE account_id END,
			account_name = CASE WHEN $9 THEN $11 ELSE account_name END,
			transaction_date = COALESCE($12, transaction_date),
			exclude_from_calculations = COALESCE($13, exclude_from_calculations),
			updated_at = NOW()
		WHERE workspace_id = $1 AND id = $2
		RETURNING `+transactionColumns,
		workspaceID, id, txType, amount, patch.Description,
		setCategory, categoryID, categoryName,
		setAccount, accountID, accountName,
		patch.Date, patch.ExcludeFromCalculations)
	transaction, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}

// Delete removes a transaction
func (r *TransactionRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		t      domain.Transaction
		txType string
		amount pgtype.Numeric
		date   *time.Time
	)
	if err := row.Scan(
		&t.ID, &t.WorkspaceID, &t.UserID, &txType, &amount, &t.Description,
		&t.Category.ID, &t.Category.Name, &t.Account.ID, &t.Account.Name, &date,
		&t.ExcludeFromCalculations, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	t.Type = domain.TransactionType(txType)
	t.Amount = pgNumericToNullDecimal(amount)
	t.Date = date
	return &t, nil
}
