package service

import (
	"context"
	"strings"
	"time"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/dompet-app/dompet-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// WorkspaceService handles workspace-related business logic
type WorkspaceService struct {
	workspaceRepo  domain.WorkspaceRepository
	eventPublisher websocket.EventPublisher
}

// NewWorkspaceService creates a new WorkspaceService
func NewWorkspaceService(workspaceRepo domain.WorkspaceRepository) *WorkspaceService {
	return &WorkspaceService{workspaceRepo: workspaceRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *WorkspaceService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *WorkspaceService) publishEvent(workspaceID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(workspaceID, event)
	}
}

// CreateWorkspaceInput holds the input for creating a workspace
type CreateWorkspaceInput struct {
	Name     string
	Currency string
	Timezone string
}

// CreateWorkspace creates a workspace owned by userID and seeds its defaults
func (s *WorkspaceService) CreateWorkspace(ctx context.Context, userID uuid.UUID, input CreateWorkspaceInput) (*domain.Workspace, error) {
	name, err := validateWorkspaceName(input.Name)
	if err != nil {
		return nil, err
	}

	currency := domain.DefaultWorkspaceCurrency
	if input.Currency != "" {
		if currency, err = validateCurrency(input.Currency); err != nil {
			return nil, err
		}
	}

	timezone := domain.DefaultWorkspaceTimezone
	if input.Timezone != "" {
		if timezone, err = validateTimezone(input.Timezone); err != nil {
			return nil, err
		}
	}

	workspace, err := s.workspaceRepo.Create(ctx, &domain.Workspace{
		UserID:   userID,
		Name:     name,
		Currency: currency,
		Timezone: timezone,
	})
	if err != nil {
		return nil, err
	}

	// The workspace exists either way; seeding is retried through EnsureDefaults
	if _, err := s.EnsureDefaults(ctx, workspace.ID); err != nil {
		log.Error().Err(err).Str("workspace_id", workspace.ID.String()).Msg("Failed to seed workspace defaults")
		return workspace, nil
	}

	return s.workspaceRepo.GetByID(ctx, workspace.ID)
}

// GetWorkspaces lists the workspaces a user owns
func (s *WorkspaceService) GetWorkspaces(ctx context.Context, userID uuid.UUID) ([]*domain.Workspace, error) {
	return s.workspaceRepo.GetAllByUserID(ctx, userID)
}

// GetWorkspace returns a workspace owned by userID. A workspace owned by
// someone else is reported as not found.
func (s *WorkspaceService) GetWorkspace(ctx context.Context, userID, id uuid.UUID) (*domain.Workspace, error) {
	workspace, err := s.workspaceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if workspace.UserID != userID {
		return nil, domain.ErrWorkspaceNotFound
	}
	return workspace, nil
}

// UpdateWorkspaceInput holds the optional fields of a workspace update
type UpdateWorkspaceInput struct {
	Name     *string
	Currency *string
	Timezone *string
}

// UpdateWorkspace renames a workspace or changes its currency or time zone
func (s *WorkspaceService) UpdateWorkspace(ctx context.Context, userID, id uuid.UUID, input UpdateWorkspaceInput) (*domain.Workspace, error) {
	if _, err := s.GetWorkspace(ctx, userID, id); err != nil {
		return nil, err
	}

	var patch domain.WorkspacePatch
	if input.Name != nil {
		name, err := validateWorkspaceName(*input.Name)
		if err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if input.Currency != nil {
		currency, err := validateCurrency(*input.Currency)
		if err != nil {
			return nil, err
		}
		patch.Currency = &currency
	}
	if input.Timezone != nil {
		timezone, err := validateTimezone(*input.Timezone)
		if err != nil {
			return nil, err
		}
		patch.Timezone = &timezone
	}

	updated, err := s.workspaceRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.publishEvent(id, websocket.WorkspaceUpdated(updated))
	return updated, nil
}

// DeleteWorkspace removes a workspace and everything in it
func (s *WorkspaceService) DeleteWorkspace(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.GetWorkspace(ctx, userID, id); err != nil {
		return err
	}
	if err := s.workspaceRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publishEvent(id, websocket.WorkspaceDeleted(id))
	return nil
}

// EnsureDefaults seeds the default accounts and categories of a workspace.
// Each kind is seeded only while it has no rows, so repeated and concurrent
// calls never create duplicates.
func (s *WorkspaceService) EnsureDefaults(ctx context.Context, workspaceID uuid.UUID) (*domain.SeedResult, error) {
	result, err := s.workspaceRepo.SeedDefaults(ctx, workspaceID,
		domain.DefaultAccounts(workspaceID),
		domain.DefaultCategories(workspaceID))
	if err != nil {
		return nil, err
	}

	if result.AccountsCreated > 0 || result.CategoriesCreated > 0 {
		log.Info().
			Str("workspace_id", workspaceID.String()).
			Int("accounts_created", result.AccountsCreated).
			Int("categories_created", result.CategoriesCreated).
			Msg("Seeded workspace defaults")
		s.publishEvent(workspaceID, websocket.WorkspaceSeeded(result))
	}
	return result, nil
}

func validateWorkspaceName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrNameRequired
	}
	if len(name) > domain.MaxWorkspaceNameLength {
		return "", domain.ErrNameTooLong
	}
	return name, nil
}

func validateCurrency(currency string) (string, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return "", domain.ErrInvalidCurrency
	}
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return "", domain.ErrInvalidCurrency
		}
	}
	return currency, nil
}

func validateTimezone(timezone string) (string, error) {
	timezone = strings.TrimSpace(timezone)
	if timezone == "" {
		return "", domain.ErrInvalidTimezone
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return "", domain.ErrInvalidTimezone
	}
	return timezone, nil
}
