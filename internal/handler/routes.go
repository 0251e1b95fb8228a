package handler

import (
	"github.com/dompet-app/dompet-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// Handlers groups every HTTP handler the API serves
type Handlers struct {
	Auth        *AuthHandler
	Preference  *PreferenceHandler
	Workspace   *WorkspaceHandler
	Account     *AccountHandler
	Category    *CategoryHandler
	Transaction *TransactionHandler
	Summary     *SummaryHandler
	WebSocket   *WebSocketHandler
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, workspaces middleware.WorkspaceLookup, h Handlers) {
	// The websocket authenticates with its own token query parameter
	e.GET("/ws", h.WebSocket.HandleWS)

	// API version 1
	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())

	// Callback registers the user, so it runs before RequireUser
	api.POST("/auth/callback", h.Auth.Callback)

	// Everything else needs a registered user
	user := api.Group("", middleware.RequireUser(), middleware.RateLimitMiddleware(rateLimiter))
	user.GET("/auth/me", h.Auth.Me)
	user.POST("/auth/logout", h.Auth.Logout)

	user.GET("/preferences", h.Preference.GetPreferences)
	user.PUT("/preferences", h.Preference.UpdatePreferences)

	user.GET("/workspaces", h.Workspace.GetWorkspaces)
	user.POST("/workspaces", h.Workspace.CreateWorkspace)

	// Workspace routes (ownership checked)
	ws := user.Group("/workspaces/:workspaceId", middleware.RequireWorkspace(workspaces))
	ws.GET("", h.Workspace.GetWorkspace)
	ws.PUT("", h.Workspace.UpdateWorkspace)
	ws.DELETE("", h.Workspace.DeleteWorkspace)
	ws.POST("/defaults", h.Workspace.EnsureDefaults)

	ws.GET("/accounts", h.Account.GetAccounts)
	ws.POST("/accounts", h.Account.CreateAccount)
	ws.PUT("/accounts/:id", h.Account.UpdateAccount)
	ws.DELETE("/accounts/:id", h.Account.DeleteAccount)

	ws.GET("/categories", h.Category.GetCategories)
	ws.POST("/categories", h.Category.CreateCategory)
	ws.PUT("/categories/:id", h.Category.UpdateCategory)
	ws.DELETE("/categories/:id", h.Category.DeleteCategory)

	ws.GET("/transactions", h.Transaction.GetTransactions)
	ws.POST("/transactions", h.Transaction.CreateTransaction)
	ws.GET("/transactions/:id", h.Transaction.GetTransaction)
	ws.PUT("/transactions/:id", h.Transaction.UpdateTransaction)
	ws.DELETE("/transactions/:id", h.Transaction.DeleteTransaction)

	ws.GET("/summary", h.Summary.GetSummary)
	ws.GET("/series", h.Summary.GetSeries)
	ws.GET("/category-totals", h.Summary.GetCategoryTotals)
}
