package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/dompet-app/dompet-backend/internal/ledger"
	"github.com/dompet-app/dompet-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionService handles transaction-related business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	accountRepo     domain.AccountRepository
	categoryRepo    domain.CategoryRepository
	workspaceRepo   domain.WorkspaceRepository
	eventPublisher  websocket.EventPublisher
	now             func() time.Time
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, accountRepo domain.AccountRepository, categoryRepo domain.CategoryRepository, workspaceRepo domain.WorkspaceRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		workspaceRepo:   workspaceRepo,
		now:             time.Now,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *TransactionService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *TransactionService) publishEvent(workspaceID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(workspaceID, event)
	}
}

// CreateTransactionInput holds the input for creating a transaction.
// Category and Account are names; they link the transaction to its category
// and account.
type CreateTransactionInput struct {
	Type                    domain.TransactionType
	Amount                  decimal.Decimal
	Description             string
	Category                string
	Account                 string
	Date                    domain.Timestamp
	ExcludeFromCalculations bool
}

// CreateTransaction validates and records a transaction. A missing date
// defaults to now.
func (s *TransactionService) CreateTransaction(ctx context.Context, workspaceID, userID uuid.UUID, input CreateTransactionInput) (*domain.Transaction, error) {
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidTransactionType
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	description, err := validateDescription(input.Description)
	if err != nil {
		return nil, err
	}
	categoryName := strings.TrimSpace(input.Category)
	if categoryName == "" {
		return nil, domain.ErrCategoryRequired
	}
	accountName := strings.TrimSpace(input.Account)
	if accountName == "" {
		return nil, domain.ErrAccountRequired
	}

	loc := s.location(ctx, workspaceID)
	date := s.now().UTC()
	if input.Date.Valid {
		date = input.Date.In(loc).Time
	}

	category, err := s.categoryRef(ctx, workspaceID, categoryName, input.Type)
	if err != nil {
		return nil, err
	}
	account, err := s.accountRef(ctx, workspaceID, accountName)
	if err != nil {
		return nil, err
	}

	transaction, err := s.transactionRepo.Create(ctx, &domain.Transaction{
		WorkspaceID:             workspaceID,
		UserID:                  userID,
		Type:                    input.Type,
		Amount:                  decimal.NewNullDecimal(input.Amount),
		Description:             description,
		Category:                category,
		Account:                 account,
		Date:                    &date,
		ExcludeFromCalculations: input.ExcludeFromCalculations,
	})
	if err != nil {
		return nil, err
	}
	s.publishEvent(workspaceID, websocket.TransactionCreated(transaction))
	return transaction, nil
}

// GetTransactionByID retrieves a transaction within a workspace
func (s *TransactionService) GetTransactionByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(ctx, workspaceID, id)
}

// TransactionFilters narrows a transaction listing. A zero Year or Month
// lists every date, including undated rows.
type TransactionFilters struct {
	Year            int
	Month           time.Month
	IncludeExcluded bool
	Category        string
	Account         string
}

// GetTransactions lists a workspace's transactions, newest first
func (s *TransactionService) GetTransactions(ctx context.Context, workspaceID uuid.UUID, filters TransactionFilters) ([]domain.Transaction, error) {
	stored, err := s.transactionRepo.GetAllByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	txns := derefTransactions(stored)

	if filters.Year != 0 && filters.Month != 0 {
		opts := []ledger.Option{ledger.InLocation(s.location(ctx, workspaceID))}
		if filters.IncludeExcluded {
			opts = append(opts, ledger.IncludeExcluded())
		}
		txns = ledger.FilterByPeriod(txns, filters.Year, filters.Month, opts...)
	}

	result := make([]domain.Transaction, 0, len(txns))
	for _, tx := range txns {
		if !filters.IncludeExcluded && tx.ExcludeFromCalculations {
			continue
		}
		if filters.Category != "" && tx.Category.Name != filters.Category {
			continue
		}
		if filters.Account != "" && tx.Account.Name != filters.Account {
			continue
		}
		result = append(result, tx)
	}
	sortNewestFirst(result)
	return result, nil
}

// UpdateTransactionInput holds the optional fields of a transaction update
type UpdateTransactionInput struct {
	Type                    *domain.TransactionType
	Amount                  *decimal.Decimal
	Description             *string
	Category                *string
	Account                 *string
	Date                    *domain.Timestamp
	ExcludeFromCalculations *bool
}

// UpdateTransaction applies a partial update to a transaction
func (s *TransactionService) UpdateTransaction(ctx context.Context, workspaceID, id uuid.UUID, input UpdateTransactionInput) (*domain.Transaction, error) {
	existing, err := s.transactionRepo.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	patch := domain.TransactionPatch{ExcludeFromCalculations: input.ExcludeFromCalculations}
	typ := existing.Type
	if input.Type != nil {
		if !input.Type.Valid() {
			return nil, domain.ErrInvalidTransactionType
		}
		typ = *input.Type
		patch.Type = input.Type
	}
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		patch.Amount = input.Amount
	}
	if input.Description != nil {
		description, err := validateDescription(*input.Description)
		if err != nil {
			return nil, err
		}
		patch.Description = &description
	}

	// A category id is only valid for one type, so a type change re-resolves it
	if input.Category != nil || input.Type != nil {
		name := existing.Category.Name
		if input.Category != nil {
			name = strings.TrimSpace(*input.Category)
			if name == "" {
				return nil, domain.ErrCategoryRequired
			}
		}
		ref, err := s.categoryRef(ctx, workspaceID, name, typ)
		if err != nil {
			return nil, err
		}
		patch.Category = &ref
	}
	if input.Account != nil {
		name := strings.TrimSpace(*input.Account)
		if name == "" {
			return nil, domain.ErrAccountRequired
		}
		ref, err := s.accountRef(ctx, workspaceID, name)
		if err != nil {
			return nil, err
		}
		patch.Account = &ref
	}
	if input.Date != nil && input.Date.Valid {
		date := input.Date.In(s.location(ctx, workspaceID)).Time
		patch.Date = &date
	}

	if patch.IsEmpty() {
		return existing, nil
	}

	transaction, err := s.transactionRepo.Update(ctx, workspaceID, id, patch)
	if err != nil {
		return nil, err
	}
	s.publishEvent(workspaceID, websocket.TransactionUpdated(transaction))
	return transaction, nil
}

// DeleteTransaction removes a transaction
func (s *TransactionService) DeleteTransaction(ctx context.Context, workspaceID, id uuid.UUID) error {
	if err := s.transactionRepo.Delete(ctx, workspaceID, id); err != nil {
		return err
	}
	s.publishEvent(workspaceID, websocket.TransactionDeleted(id))
	return nil
}

// location returns the workspace's time zone, UTC when it cannot be loaded
func (s *TransactionService) location(ctx context.Context, workspaceID uuid.UUID) *time.Location {
	if s.workspaceRepo == nil {
		return time.UTC
	}
	workspace, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return time.UTC
	}
	return workspace.Location()
}

// categoryRef links by name and attaches the id of the matching category when
// one exists. Unknown names are kept as legacy name-only references.
func (s *TransactionService) categoryRef(ctx context.Context, workspaceID uuid.UUID, name string, typ domain.TransactionType) (domain.EntityRef, error) {
	categories, err := s.categoryRepo.GetAllByWorkspace(ctx, workspaceID)
	if err != nil {
		return domain.EntityRef{}, err
	}
	for _, c := range categories {
		if c.Name == name && c.Type == typ {
			return c.Ref(), nil
		}
	}
	return domain.NameRef(name), nil
}

func (s *TransactionService) accountRef(ctx context.Context, workspaceID uuid.UUID, name string) (domain.EntityRef, error) {
	accounts, err := s.accountRepo.GetAllByWorkspace(ctx, workspaceID)
	if err != nil {
		return domain.EntityRef{}, err
	}
	for _, a := range accounts {
		if a.Name == name {
			return a.Ref(), nil
		}
	}
	return domain.NameRef(name), nil
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if !domain.FitsMoneyScale(amount) {
		return domain.ErrAmountPrecision
	}
	return nil
}

func validateDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if len(description) > domain.MaxDescriptionLength {
		return "", domain.ErrDescriptionTooLong
	}
	return description, nil
}

// sortNewestFirst orders by date descending with undated rows last
func sortNewestFirst(txns []domain.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		a, b := txns[i].Date, txns[j].Date
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return a.After(*b)
	})
}

func derefTransactions(stored []*domain.Transaction) []domain.Transaction {
	txns := make([]domain.Transaction, len(stored))
	for i, tx := range stored {
		txns[i] = *tx
	}
	return txns
}
