package middleware

import (
	"context"
	"errors"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// WorkspaceKey is the context key for the workspace named in the route
const WorkspaceKey contextKey = "workspace"

// WorkspaceLookup returns a workspace only when the user owns it.
// *service.WorkspaceService implements it.
type WorkspaceLookup interface {
	GetWorkspace(ctx context.Context, userID, id uuid.UUID) (*domain.Workspace, error)
}

// RequireWorkspace loads the :workspaceId route parameter and checks that the
// authenticated user owns it. Workspaces of other users look like missing ones.
func RequireWorkspace(lookup WorkspaceLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := uuid.Parse(c.Param("workspaceId"))
			if err != nil {
				return badRequestError(c, "invalid workspace ID")
			}

			workspace, err := lookup.GetWorkspace(c.Request().Context(), GetUserID(c), id)
			if err != nil {
				if errors.Is(err, domain.ErrWorkspaceNotFound) {
					return notFoundError(c, "workspace not found")
				}
				log.Error().Err(err).Str("workspace_id", id.String()).Msg("Workspace lookup failed")
				return internalError(c, "failed to load workspace")
			}

			ctx := context.WithValue(c.Request().Context(), WorkspaceKey, workspace)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetWorkspace extracts the route's workspace from the context
func GetWorkspace(c echo.Context) *domain.Workspace {
	if ws, ok := c.Request().Context().Value(WorkspaceKey).(*domain.Workspace); ok {
		return ws
	}
	return nil
}

// GetWorkspaceID extracts the route's workspace ID from the context
func GetWorkspaceID(c echo.Context) uuid.UUID {
	if ws := GetWorkspace(c); ws != nil {
		return ws.ID
	}
	return uuid.Nil
}
