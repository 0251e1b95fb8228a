package handler

import (
	"net/http"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/dompet-app/dompet-backend/internal/middleware"
	"github.com/dompet-app/dompet-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PreferenceHandler handles the user's device preferences
type PreferenceHandler struct {
	preferenceService *service.PreferenceService
	workspaceService  *service.WorkspaceService
}

// NewPreferenceHandler creates a new PreferenceHandler
func NewPreferenceHandler(preferenceService *service.PreferenceService, workspaceService *service.WorkspaceService) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceService: preferenceService,
		workspaceService:  workspaceService,
	}
}

// UpdatePreferencesRequest represents the update preferences request body.
// An empty currentWorkspaceId clears the stored workspace.
type UpdatePreferencesRequest struct {
	OnboardingCompleted *bool   `json:"onboardingCompleted,omitempty"`
	CurrentWorkspaceID  *string `json:"currentWorkspaceId,omitempty"`
}

// PreferencesResponse represents the stored preferences
type PreferencesResponse struct {
	OnboardingCompleted bool    `json:"onboardingCompleted"`
	CurrentWorkspaceID  *string `json:"currentWorkspaceId"`
}

// GetPreferences handles GET /api/v1/preferences
func (h *PreferenceHandler) GetPreferences(c echo.Context) error {
	prefs, err := h.preferenceService.GetPreferences(c.Request().Context(), middleware.GetUserID(c))
	if err != nil {
		return handleServiceError(c, err, "Failed to get preferences")
	}
	return c.JSON(http.StatusOK, toPreferencesResponse(prefs))
}

// UpdatePreferences handles PUT /api/v1/preferences
func (h *PreferenceHandler) UpdatePreferences(c echo.Context) error {
	userID := middleware.GetUserID(c)
	ctx := c.Request().Context()

	var req UpdatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if req.CurrentWorkspaceID != nil {
		workspaceID := uuid.Nil
		if *req.CurrentWorkspaceID != "" {
			id, err := uuid.Parse(*req.CurrentWorkspaceID)
			if err != nil {
				return NewValidationError(c, "Validation failed", []ValidationError{
					{Field: "currentWorkspaceId", Message: "Must be a valid workspace ID"},
				})
			}
			// Only workspaces the user owns can become current
			if _, err := h.workspaceService.GetWorkspace(ctx, userID, id); err != nil {
				return handleServiceError(c, err, "Failed to get workspace")
			}
			workspaceID = id
		}
		if err := h.preferenceService.SetCurrentWorkspace(ctx, userID, workspaceID); err != nil {
			return handleServiceError(c, err, "Failed to update preferences")
		}
	}

	if req.OnboardingCompleted != nil {
		if err := h.preferenceService.SetOnboardingCompleted(ctx, userID, *req.OnboardingCompleted); err != nil {
			return handleServiceError(c, err, "Failed to update preferences")
		}
	}

	prefs, err := h.preferenceService.GetPreferences(ctx, userID)
	if err != nil {
		return handleServiceError(c, err, "Failed to get preferences")
	}
	return c.JSON(http.StatusOK, toPreferencesResponse(prefs))
}

func toPreferencesResponse(prefs *domain.Preferences) PreferencesResponse {
	resp := PreferencesResponse{OnboardingCompleted: prefs.OnboardingCompleted}
	if prefs.CurrentWorkspaceID != nil {
		id := prefs.CurrentWorkspaceID.String()
		resp.CurrentWorkspaceID = &id
	}
	return resp
}
