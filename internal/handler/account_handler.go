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
	"github.com/shopspring/decimal"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountService *service.AccountService
	summaryService *service.SummaryService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *service.AccountService, summaryService *service.SummaryService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		summaryService: summaryService,
	}
}

// CreateAccountRequest represents the create account request body
type CreateAccountRequest struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	InitialBalance string `json:"initialBalance,omitempty"`
	Note           string `json:"note,omitempty"`
}

// UpdateAccountRequest represents the update account request body
type UpdateAccountRequest struct {
	Name           *string `json:"name,omitempty"`
	Type           *string `json:"type,omitempty"`
	InitialBalance *string `json:"initialBalance,omitempty"`
	Note           *string `json:"note,omitempty"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID                string  `json:"id"`
	WorkspaceID       string  `json:"workspaceId"`
	Name              string  `json:"name"`
	Type              string  `json:"type"`
	InitialBalance    string  `json:"initialBalance"`
	CalculatedBalance *string `json:"calculatedBalance,omitempty"`
	Note              string  `json:"note"`
	Icon              string  `json:"icon,omitempty"`
	Color             string  `json:"color,omitempty"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

// AccountListResponse is the account list with the workspace's total balance
type AccountListResponse struct {
	Accounts     []AccountResponse `json:"accounts"`
	TotalBalance string            `json:"totalBalance"`
}

// CreateAccount handles POST /api/v1/workspaces/:workspaceId/accounts
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)

	var req CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	// Parse initial balance (default to 0)
	initialBalance := decimal.Zero
	if req.InitialBalance != "" {
		var err error
		initialBalance, err = decimal.NewFromString(req.InitialBalance)
		if err != nil {
			return NewValidationError(c, "Invalid initial balance", []ValidationError{
				{Field: "initialBalance", Message: "Must be a valid decimal number"},
			})
		}
	}

	account, err := h.accountService.CreateAccount(c.Request().Context(), workspaceID, service.CreateAccountInput{
		Name:           req.Name,
		Type:           domain.AccountType(req.Type),
		InitialBalance: initialBalance,
		Note:           req.Note,
	})
	if err != nil {
		return handleServiceError(c, err, "Failed to create account")
	}

	log.Info().Str("workspace_id", workspaceID.String()).Str("account_id", account.ID.String()).Str("name", account.Name).Msg("Account created")

	return c.JSON(http.StatusCreated, toAccountResponse(account))
}

// GetAccounts handles GET /api/v1/workspaces/:workspaceId/accounts.
// Each account carries its all-time calculated balance.
func (h *AccountHandler) GetAccounts(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)

	balances, err := h.summaryService.GetAccountBalances(c.Request().Context(), workspaceID)
	if err != nil {
		return handleServiceError(c, err, "Failed to calculate balances")
	}

	response := AccountListResponse{
		Accounts:     make([]AccountResponse, len(balances.Accounts)),
		TotalBalance: balances.TotalBalance.StringFixed(2),
	}
	for i := range balances.Accounts {
		view := balances.Accounts[i]
		resp := toAccountResponse(&view.Account)
		calculated := view.Balance.StringFixed(2)
		resp.CalculatedBalance = &calculated
		resp.Icon = view.Display.Icon
		resp.Color = view.Display.Color
		response.Accounts[i] = resp
	}

	return c.JSON(http.StatusOK, response)
}

// UpdateAccount handles PUT /api/v1/workspaces/:workspaceId/accounts/:id.
// Renaming does not touch transactions that name the old account.
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid account ID", nil)
	}

	var req UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.UpdateAccountInput{
		Name: req.Name,
		Note: req.Note,
	}
	if req.Type != nil {
		typ := domain.AccountType(*req.Type)
		input.Type = &typ
	}
	if req.InitialBalance != nil {
		balance, err := decimal.NewFromString(*req.InitialBalance)
		if err != nil {
			return NewValidationError(c, "Invalid initial balance", []ValidationError{
				{Field: "initialBalance", Message: "Must be a valid decimal number"},
			})
		}
		input.InitialBalance = &balance
	}

	account, err := h.accountService.UpdateAccount(c.Request().Context(), workspaceID, accountID, input)
	if err != nil {
		return handleServiceError(c, err, "Failed to update account")
	}

	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// DeleteAccount handles DELETE /api/v1/workspaces/:workspaceId/accounts/:id.
// Transactions that name the account are kept.
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid account ID", nil)
	}

	if err := h.accountService.DeleteAccount(c.Request().Context(), workspaceID, accountID); err != nil {
		return handleServiceError(c, err, "Failed to delete account")
	}

	log.Info().Str("workspace_id", workspaceID.String()).Str("account_id", accountID.String()).Msg("Account deleted")

	return c.NoContent(http.StatusNoContent)
}

func toAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:             account.ID.String(),
		WorkspaceID:    account.WorkspaceID.String(),
		Name:           account.Name,
		Type:           string(account.Type),
		InitialBalance: account.InitialBalance.StringFixed(2),
		Note:           account.Note,
		CreatedAt:      account.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      account.UpdatedAt.Format(time.RFC3339),
	}
}
