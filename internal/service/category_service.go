package service

import (
	"context"
	"strings"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/dompet-app/dompet-backend/internal/websocket"
	"github.com/google/uuid"
)

// CategoryService handles category-related business logic
type CategoryService struct {
	categoryRepo   domain.CategoryRepository
	eventPublisher websocket.EventPublisher
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *CategoryService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *CategoryService) publishEvent(workspaceID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(workspaceID, event)
	}
}

// CreateCategoryInput holds the input for creating a category
type CreateCategoryInput struct {
	Name  string
	Type  domain.TransactionType
	Icon  string
	Color string
}

// CreateCategory creates a category. The (name, type) pair is unique per workspace.
func (s *CategoryService) CreateCategory(ctx context.Context, workspaceID uuid.UUID, input CreateCategoryInput) (*domain.Category, error) {
	name, err := validateCategoryName(input.Name)
	if err != nil {
		return nil, err
	}
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidCategoryType
	}
	if err := s.checkNameFree(ctx, workspaceID, name, input.Type, uuid.Nil); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.Create(ctx, &domain.Category{
		WorkspaceID: workspaceID,
		Name:        name,
		Type:        input.Type,
		Icon:        strings.TrimSpace(input.Icon),
		Color:       strings.TrimSpace(input.Color),
	})
	if err != nil {
		return nil, err
	}
	s.publishEvent(workspaceID, websocket.CategoryCreated(category))
	return category, nil
}

// GetCategories lists a workspace's categories, optionally of one type only
func (s *CategoryService) GetCategories(ctx context.Context, workspaceID uuid.UUID, typ *domain.TransactionType) ([]*domain.Category, error) {
	categories, err := s.categoryRepo.GetAllByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if typ == nil {
		return categories, nil
	}
	if !typ.Valid() {
		return nil, domain.ErrInvalidCategoryType
	}

	filtered := make([]*domain.Category, 0, len(categories))
	for _, c := range categories {
		if c.Type == *typ {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// UpdateCategoryInput holds the optional fields of a category update
type UpdateCategoryInput struct {
	Name  *string
	Icon  *string
	Color *string
}

// UpdateCategory updates a category's name, icon or color
func (s *CategoryService) UpdateCategory(ctx context.Context, workspaceID, id uuid.UUID, input UpdateCategoryInput) (*domain.Category, error) {
	existing, err := s.categoryRepo.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	patch := domain.CategoryPatch{}
	if input.Name != nil {
		name, err := validateCategoryName(*input.Name)
		if err != nil {
			return nil, err
		}
		if err := s.checkNameFree(ctx, workspaceID, name, existing.Type, id); err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if input.Icon != nil {
		icon := strings.TrimSpace(*input.Icon)
		patch.Icon = &icon
	}
	if input.Color != nil {
		color := strings.TrimSpace(*input.Color)
		patch.Color = &color
	}

	category, err := s.categoryRepo.Update(ctx, workspaceID, id, patch)
	if err != nil {
		return nil, err
	}
	s.publishEvent(workspaceID, websocket.CategoryUpdated(category))
	return category, nil
}

// DeleteCategory removes a category. Transactions keep its name and fall
// back to the default icon and color.
func (s *CategoryService) DeleteCategory(ctx context.Context, workspaceID, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, workspaceID, id); err != nil {
		return err
	}
	s.publishEvent(workspaceID, websocket.CategoryDeleted(id))
	return nil
}

func (s *CategoryService) checkNameFree(ctx context.Context, workspaceID uuid.UUID, name string, typ domain.TransactionType, self uuid.UUID) error {
	categories, err := s.categoryRepo.GetAllByWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	for _, c := range categories {
		if c.ID != self && c.Name == name && c.Type == typ {
			return domain.ErrCategoryNameExists
		}
	}
	return nil
}

func validateCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrNameRequired
	}
	if len(name) > domain.MaxCategoryNameLength {
		return "", domain.ErrNameTooLong
	}
	return name, nil
}
