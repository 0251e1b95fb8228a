package handler

import (
	"net/http"
	"time"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/dompet-app/dompet-backend/internal/middleware"
	"github.com/dompet-app/dompet-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the create category request body
type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

// UpdateCategoryRequest represents the update category request body.
// A category's type cannot change.
type UpdateCategoryRequest struct {
	Name  *string `json:"name,omitempty"`
	Icon  *string `json:"icon,omitempty"`
	Color *string `json:"color,omitempty"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspaceId"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// CreateCategory handles POST /api/v1/workspaces/:workspaceId/categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)

	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.CreateCategory(c.Request().Context(), workspaceID, service.CreateCategoryInput{
		Name:  req.Name,
		Type:  domain.TransactionType(req.Type),
		Icon:  req.Icon,
		Color: req.Color,
	})
	if err != nil {
		return handleServiceError(c, err, "Failed to create category")
	}

	log.Info().Str("workspace_id", workspaceID.String()).Str("category_id", category.ID.String()).Str("name", category.Name).Msg("Category created")

	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

// GetCategories handles GET /api/v1/workspaces/:workspaceId/categories?type=
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)

	var typ *domain.TransactionType
	if raw := c.QueryParam("type"); raw != "" {
		t := domain.TransactionType(raw)
		typ = &t
	}

	categories, err := h.categoryService.GetCategories(c.Request().Context(), workspaceID, typ)
	if err != nil {
		return handleServiceError(c, err, "Failed to get categories")
	}

	response := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		response[i] = toCategoryResponse(category)
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateCategory handles PUT /api/v1/workspaces/:workspaceId/categories/:id
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	var req UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.UpdateCategory(c.Request().Context(), workspaceID, categoryID, service.UpdateCategoryInput{
		Name:  req.Name,
		Icon:  req.Icon,
		Color: req.Color,
	})
	if err != nil {
		return handleServiceError(c, err, "Failed to update category")
	}

	return c.JSON(http.StatusOK, toCategoryResponse(category))
}

// DeleteCategory handles DELETE /api/v1/workspaces/:workspaceId/categories/:id
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	if err := h.categoryService.DeleteCategory(c.Request().Context(), workspaceID, categoryID); err != nil {
		return handleServiceError(c, err, "Failed to delete category")
	}

	log.Info().Str("workspace_id", workspaceID.String()).Str("category_id", categoryID.String()).Msg("Category deleted")

	return c.NoContent(http.StatusNoContent)
}

func toCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID.String(),
		WorkspaceID: category.WorkspaceID.String(),
		Name:        category.Name,
		Type:        string(category.Type),
		Icon:        category.Icon,
		Color:       category.Color,
		CreatedAt:   category.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   category.UpdatedAt.Format(time.RFC3339),
	}
}
