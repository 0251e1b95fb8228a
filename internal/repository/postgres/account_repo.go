package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `id, workspace_id, name, account_type, initial_balance, note, created_at, updated_at`

// AccountRepository implements domain.AccountRepository using PostgreSQL
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	return insertAccount(ctx, r.pool, account)
}

func insertAccount(ctx context.Context, q querier, account *domain.Account) (*domain.Account, error) {
	initialBalance, err := decimalToPgNumeric(account.InitialBalance)
	if err != nil {
		return nil, fmt.Errorf("invalid initial balance: %w", err)
	}

	row := q.QueryRow(ctx, `
		INSERT INTO accounts (workspace_id, name, account_type, initial_balance, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+accountColumns,
		account.WorkspaceID, account.Name, string(account.Type), initialBalance, account.Note)
	created, err := scanAccount(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAccountNameExists
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves an account by its ID within a workspace
func (r *AccountRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// GetAllByWorkspace retrieves all accounts for a workspace in creation order
func (r *AccountRepository) GetAllByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE workspace_id = $1 ORDER BY created_at, id`,
		workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, account)
	}
	return result, rows.Err()
}

// Update applies the non-nil fields of patch
func (r *AccountRepository) Update(ctx context.Context, workspaceID, id uuid.UUID, patch domain.AccountPatch) (*domain.Account, error) {
	var initialBalance pgtype.Numeric
	if patch.InitialBalance != nil {
		var err error
		if initialBalance, err = decimalToPgNumeric(*patch.InitialBalance); err != nil {
			return nil, fmt.Errorf("invalid initial balance: %w", err)
		}
	}
	var accountType *string
	if patch.Type != nil {
		t := string(*patch.Type)
		accountType = &t
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE accounts SET
			name = COALESCE($3, name),
			account_type = COALESCE($4, account_type),
			initial_balance = COALESCE($5, initial_balance),
			note = COALESCE($6, note),
			updated_at = NOW()
		WHERE workspace_id = $1 AND id = $2
		RETURNING `+accountColumns,
		workspaceID, id, patch.Name, accountType, initialBalance, patch.Note)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrAccountNameExists
		}
		return nil, err
	}
	return account, nil
}

// Delete removes an account. Transactions naming it are left as they are.
func (r *AccountRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		a              domain.Account
		accountType    string
		initialBalance pgtype.Numeric
	)
	if err := row.Scan(&a.ID, &a.WorkspaceID, &a.Name, &accountType, &initialBalance, &a.Note, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Type = domain.AccountType(accountType)
	a.InitialBalance = pgNumericToDecimal(initialBalance)
	return &a, nil
}
