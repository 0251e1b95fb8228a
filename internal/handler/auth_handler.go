package handler

import (
	"context"
	"net/http"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/dompet-app/dompet-backend/internal/middleware"
	"github.com/dompet-app/dompet-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService       *service.AuthService
	workspaceService  *service.WorkspaceService
	preferenceService *service.PreferenceService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService, workspaceService *service.WorkspaceService, preferenceService *service.PreferenceService) *AuthHandler {
	return &AuthHandler{
		authService:       authService,
		workspaceService:  workspaceService,
		preferenceService: preferenceService,
	}
}

// AuthCallbackResponse represents the response from the auth callback
type AuthCallbackResponse struct {
	User             UserResponse        `json:"user"`
	Workspaces       []WorkspaceResponse `json:"workspaces"`
	CurrentWorkspace *WorkspaceResponse  `json:"currentWorkspace"`
	IsNewUser        bool                `json:"isNewUser"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Name       *string `json:"name"`
	PictureURL *string `json:"pictureUrl"`
}

// Callback handles the Auth0 callback after successful authentication
// This endpoint is called by the app after receiving the Auth0 token
// POST /auth/callback
func (h *AuthHandler) Callback(c echo.Context) error {
	// Get Auth0 ID from the validated JWT (set by auth middleware)
	auth0ID := middleware.GetAuth0ID(c)
	if auth0ID == "" {
		log.Error().Msg("No Auth0 ID in context - middleware may not be configured")
		return NewUnauthorizedError(c, "Authentication required")
	}

	customClaims := middleware.GetCustomClaims(c)
	var email, name, picture string
	if customClaims != nil {
		email = customClaims.Email
		name = customClaims.Name
		picture = customClaims.Picture
	}

	// Email is required for user creation
	if email == "" {
		log.Error().Str("auth0_id", auth0ID).Msg("No email in JWT claims")
		return NewValidationError(c, "Email is required for authentication", []ValidationError{
			{Field: "email", Message: "Email claim is missing from token"},
		})
	}

	var namePtr, picturePtr *string
	if name != "" {
		namePtr = &name
	}
	if picture != "" {
		picturePtr = &picture
	}

	ctx := c.Request().Context()
	result, err := h.authService.AuthenticateUser(ctx, auth0ID, email, namePtr, picturePtr)
	if err != nil {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to authenticate user")
		return NewInternalError(c, "Failed to authenticate user")
	}

	if result.IsNewUser && len(result.Workspaces) > 0 {
		if err := h.preferenceService.SetCurrentWorkspace(ctx, result.User.ID, result.Workspaces[0].ID); err != nil {
			log.Warn().Err(err).Str("user_id", result.User.ID.String()).Msg("Failed to store current workspace")
		}
	}

	response := h.buildResponse(ctx, result.User, result.Workspaces)
	response.IsNewUser = result.IsNewUser
	return c.JSON(http.StatusOK, response)
}

// Me returns the current user, their workspaces and the current workspace
// GET /auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	userID := middleware.GetUserID(c)
	ctx := c.Request().Context()

	user, err := h.authService.GetUserByID(ctx, userID)
	if err != nil {
		return handleServiceError(c, err, "Failed to get user")
	}

	workspaces, err := h.workspaceService.GetWorkspaces(ctx, userID)
	if err != nil {
		return handleServiceError(c, err, "Failed to get workspaces")
	}

	return c.JSON(http.StatusOK, h.buildResponse(ctx, user, workspaces))
}

// LogoutResponse represents the response from logout
type LogoutResponse struct {
	Message string `json:"message"`
}

// Logout clears the user's stored preferences
// POST /auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	userID := middleware.GetUserID(c)

	if err := h.preferenceService.Clear(c.Request().Context(), userID); err != nil {
		return handleServiceError(c, err, "Failed to clear preferences")
	}

	log.Info().Str("user_id", userID.String()).Msg("User logged out")

	// Auth0 handles actual session termination
	return c.JSON(http.StatusOK, LogoutResponse{
		Message: "Logged out successfully",
	})
}

func (h *AuthHandler) buildResponse(ctx context.Context, user *domain.User, workspaces []*domain.Workspace) AuthCallbackResponse {
	response := AuthCallbackResponse{
		User: UserResponse{
			ID:         user.ID.String(),
			Email:      user.Email,
			Name:       user.Name,
			PictureURL: user.PictureURL,
		},
		Workspaces: make([]WorkspaceResponse, len(workspaces)),
	}
	for i, ws := range workspaces {
		response.Workspaces[i] = toWorkspaceResponse(ws)
	}

	if current := h.currentWorkspace(ctx, user.ID, workspaces); current != nil {
		resp := toWorkspaceResponse(current)
		response.CurrentWorkspace = &resp
	}
	return response
}

// currentWorkspace picks the stored current workspace, falling back to the
// first one when the preference is unset or points at a workspace the user
// no longer has
func (h *AuthHandler) currentWorkspace(ctx context.Context, userID uuid.UUID, workspaces []*domain.Workspace) *domain.Workspace {
	if len(workspaces) == 0 {
		return nil
	}

	prefs, err := h.preferenceService.GetPreferences(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("Failed to read preferences")
		return workspaces[0]
	}
	if prefs.CurrentWorkspaceID != nil {
		for _, ws := range workspaces {
			if ws.ID == *prefs.CurrentWorkspaceID {
				return ws
			}
		}
	}
	return workspaces[0]
}
