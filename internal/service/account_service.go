package service

import (
	"context"
	"strings"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/dompet-app/dompet-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountService handles account-related business logic
type AccountService struct {
	accountRepo    domain.AccountRepository
	eventPublisher websocket.EventPublisher
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo domain.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *AccountService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *AccountService) publishEvent(workspaceID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(workspaceID, event)
	}
}

// CreateAccountInput holds the input for creating an account
type CreateAccountInput struct {
	Name           string
	Type           domain.AccountType
	InitialBalance decimal.Decimal
	Note           string
}

// CreateAccount creates a new account. Names are unique per workspace because
// transactions link to accounts by name.
func (s *AccountService) CreateAccount(ctx context.Context, workspaceID uuid.UUID, input CreateAccountInput) (*domain.Account, error) {
	name, err := validateAccountName(input.Name)
	if err != nil {
		return nil, err
	}
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidAccountType
	}
	note := strings.TrimSpace(input.Note)
	if len(note) > domain.MaxAccountNoteLength {
		return nil, domain.ErrNoteTooLong
	}
	if !domain.FitsMoneyScale(input.InitialBalance) {
		return nil, domain.ErrBalancePrecision
	}
	if err := s.checkNameFree(ctx, workspaceID, name, uuid.Nil); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.Create(ctx, &domain.Account{
		WorkspaceID:    workspaceID,
		Name:           name,
		Type:           input.Type,
		InitialBalance: input.InitialBalance,
		Note:           note,
	})
	if err != nil {
		return nil, err
	}
	s.publishEvent(workspaceID, websocket.AccountCreated(account))
	return account, nil
}

// GetAccounts retrieves all accounts for a workspace
func (s *AccountService) GetAccounts(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Account, error) {
	return s.accountRepo.GetAllByWorkspace(ctx, workspaceID)
}

// GetAccountByID retrieves an account by ID within a workspace
func (s *AccountService) GetAccountByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Account, error) {
	return s.accountRepo.GetByID(ctx, workspaceID, id)
}

// UpdateAccountInput holds the optional fields of an account update
type UpdateAccountInput struct {
	Name           *string
	Type           *domain.AccountType
	InitialBalance *decimal.Decimal
	Note           *string
}

// UpdateAccount updates an account. Renaming does not rewrite the account
// name stored on existing transactions.
func (s *AccountService) UpdateAccount(ctx context.Context, workspaceID, id uuid.UUID, input UpdateAccountInput) (*domain.Account, error) {
	if _, err := s.accountRepo.GetByID(ctx, workspaceID, id); err != nil {
		return nil, err
	}

	patch := domain.AccountPatch{InitialBalance: input.InitialBalance}
	if input.InitialBalance != nil && !domain.FitsMoneyScale(*input.InitialBalance) {
		return nil, domain.ErrBalancePrecision
	}
	if input.Name != nil {
		name, err := validateAccountName(*input.Name)
		if err != nil {
			return nil, err
		}
		if err := s.checkNameFree(ctx, workspaceID, name, id); err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if input.Type != nil {
		if !input.Type.Valid() {
			return nil, domain.ErrInvalidAccountType
		}
		patch.Type = input.Type
	}
	if input.Note != nil {
		note := strings.TrimSpace(*input.Note)
		if len(note) > domain.MaxAccountNoteLength {
			return nil, domain.ErrNoteTooLong
		}
		patch.Note = &note
	}

	account, err := s.accountRepo.Update(ctx, workspaceID, id, patch)
	if err != nil {
		return nil, err
	}
	s.publishEvent(workspaceID, websocket.AccountUpdated(account))
	return account, nil
}

// DeleteAccount removes an account. Its transactions stay and keep counting
// toward ledger-wide totals.
func (s *AccountService) DeleteAccount(ctx context.Context, workspaceID, id uuid.UUID) error {
	if err := s.accountRepo.Delete(ctx, workspaceID, id); err != nil {
		return err
	}
	s.publishEvent(workspaceID, websocket.AccountDeleted(id))
	return nil
}

func (s *AccountService) checkNameFree(ctx context.Context, workspaceID uuid.UUID, name string, self uuid.UUID) error {
	accounts, err := s.accountRepo.GetAllByWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	for _, a := range accounts {
		if a.ID != self && a.Name == name {
			return domain.ErrAccountNameExists
		}
	}
	return nil
}

func validateAccountName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrNameRequired
	}
	if len(name) > domain.MaxAccountNameLength {
		return "", domain.ErrNameTooLong
	}
	return name, nil
}
