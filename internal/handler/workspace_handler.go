package handler

import (
	"net/http"
	"time"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/dompet-app/dompet-backend/internal/middleware"
	"github.com/dompet-app/dompet-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// WorkspaceHandler handles workspace-related HTTP requests
type WorkspaceHandler struct {
	workspaceService *service.WorkspaceService
}

// NewWorkspaceHandler creates a new WorkspaceHandler
func NewWorkspaceHandler(workspaceService *service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

// CreateWorkspaceRequest represents the create workspace request body
type CreateWorkspaceRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// UpdateWorkspaceRequest represents the update workspace request body.
// Omitted fields are left unchanged.
type UpdateWorkspaceRequest struct {
	Name     *string `json:"name,omitempty"`
	Currency *string `json:"currency,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
}

// WorkspaceResponse represents a workspace in API responses
type WorkspaceResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Currency         string  `json:"currency"`
	Timezone         string  `json:"timezone"`
	DefaultsSeededAt *string `json:"defaultsSeededAt,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// GetWorkspaces handles GET /api/v1/workspaces
func (h *WorkspaceHandler) GetWorkspaces(c echo.Context) error {
	userID := middleware.GetUserID(c)

	workspaces, err := h.workspaceService.GetWorkspaces(c.Request().Context(), userID)
	if err != nil {
		return handleServiceError(c, err, "Failed to get workspaces")
	}

	response := make([]WorkspaceResponse, len(workspaces))
	for i, ws := range workspaces {
		response[i] = toWorkspaceResponse(ws)
	}
	return c.JSON(http.StatusOK, response)
}

// CreateWorkspace handles POST /api/v1/workspaces
func (h *WorkspaceHandler) CreateWorkspace(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req CreateWorkspaceRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	workspace, err := h.workspaceService.CreateWorkspace(c.Request().Context(), userID, service.CreateWorkspaceInput{
		Name:     req.Name,
		Currency: req.Currency,
		Timezone: req.Timezone,
	})
	if err != nil {
		return handleServiceError(c, err, "Failed to create workspace")
	}

	log.Info().Str("user_id", userID.String()).Str("workspace_id", workspace.ID.String()).Msg("Workspace created")

	return c.JSON(http.StatusCreated, toWorkspaceResponse(workspace))
}

// GetWorkspace handles GET /api/v1/workspaces/:workspaceId
func (h *WorkspaceHandler) GetWorkspace(c echo.Context) error {
	workspace := middleware.GetWorkspace(c)
	if workspace == nil {
		return NewNotFoundError(c, "Workspace not found")
	}
	return c.JSON(http.StatusOK, toWorkspaceResponse(workspace))
}

// UpdateWorkspace handles PUT /api/v1/workspaces/:workspaceId
func (h *WorkspaceHandler) UpdateWorkspace(c echo.Context) error {
	userID := middleware.GetUserID(c)
	workspaceID := middleware.GetWorkspaceID(c)

	var req UpdateWorkspaceRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	workspace, err := h.workspaceService.UpdateWorkspace(c.Request().Context(), userID, workspaceID, service.UpdateWorkspaceInput{
		Name:     req.Name,
		Currency: req.Currency,
		Timezone: req.Timezone,
	})
	if err != nil {
		return handleServiceError(c, err, "Failed to update workspace")
	}

	return c.JSON(http.StatusOK, toWorkspaceResponse(workspace))
}

// DeleteWorkspace handles DELETE /api/v1/workspaces/:workspaceId
func (h *WorkspaceHandler) DeleteWorkspace(c echo.Context) error {
	userID := middleware.GetUserID(c)
	workspaceID := middleware.GetWorkspaceID(c)

	if err := h.workspaceService.DeleteWorkspace(c.Request().Context(), userID, workspaceID); err != nil {
		return handleServiceError(c, err, "Failed to delete workspace")
	}

	log.Info().Str("user_id", userID.String()).Str("workspace_id", workspaceID.String()).Msg("Workspace deleted")

	return c.NoContent(http.StatusNoContent)
}

// EnsureDefaults handles POST /api/v1/workspaces/:workspaceId/defaults.
// Calling it again after the defaults exist creates nothing.
func (h *WorkspaceHandler) EnsureDefaults(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)

	result, err := h.workspaceService.EnsureDefaults(c.Request().Context(), workspaceID)
	if err != nil {
		return handleServiceError(c, err, "Failed to create default accounts and categories")
	}

	return c.JSON(http.StatusOK, result)
}

func toWorkspaceResponse(ws *domain.Workspace) WorkspaceResponse {
	resp := WorkspaceResponse{
		ID:        ws.ID.String(),
		Name:      ws.Name,
		Currency:  ws.Currency,
		Timezone:  ws.Timezone,
		CreatedAt: ws.CreatedAt.Format(time.RFC3339),
		UpdatedAt: ws.UpdatedAt.Format(time.RFC3339),
	}
	if ws.DefaultsSeededAt != nil {
		seededAt := ws.DefaultsSeededAt.Format(time.RFC3339)
		resp.DefaultsSeededAt = &seededAt
	}
	return resp
}
