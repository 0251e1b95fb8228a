package handler

import (
	"net/http"
	"time"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/dompet-app/dompet-backend/internal/middleware"
	"github.com/dompet-app/dompet-backend/internal/service"
	"github.com/dompet-app/dompet-backend/internal/util"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the create transaction request body.
// Amount accepts a JSON number or a decimal string. Date accepts RFC 3339,
// YYYY-MM-DD, Unix milliseconds or a {"seconds","nanoseconds"} object.
type CreateTransactionRequest struct {
	Type                    string           `json:"type"`
	Amount                  *decimal.Decimal `json:"amount" swaggertype:"string"`
	Description             string           `json:"description"`
	Category                string           `json:"category"`
	Account                 string           `json:"account"`
	Date                    domain.Timestamp `json:"date" swaggertype:"string"`
	ExcludeFromCalculations bool             `json:"excludeFromCalculations"`
}

// UpdateTransactionRequest represents the update transaction request body.
// Omitted fields are left unchanged.
type UpdateTransactionRequest struct {
	Type                    *string           `json:"type,omitempty"`
	Amount                  *decimal.Decimal  `json:"amount,omitempty" swaggertype:"string"`
	Description             *string           `json:"description,omitempty"`
	Category                *string           `json:"category,omitempty"`
	Account                 *string           `json:"account,omitempty"`
	Date                    *domain.Timestamp `json:"date,omitempty" swaggertype:"string"`
	ExcludeFromCalculations *bool             `json:"excludeFromCalculations,omitempty"`
}

// RefResponse is a transaction's link to an account or category
type RefResponse struct {
	ID   *string `json:"id,omitempty"`
	Name string  `json:"name"`
}

// TransactionResponse represents a transaction in API responses.
// Amount and Date are null for legacy rows that lack them.
type TransactionResponse struct {
	ID                      string      `json:"id"`
	WorkspaceID             string      `json:"workspaceId"`
	UserID                  string      `json:"userId"`
	Type                    string      `json:"type"`
	Amount                  *string     `json:"amount"`
	Description             string      `json:"description"`
	Category                RefResponse `json:"category"`
	Account                 RefResponse `json:"account"`
	Date                    *string     `json:"date"`
	ExcludeFromCalculations bool        `json:"excludeFromCalculations"`
	CreatedAt               string      `json:"createdAt"`
	UpdatedAt               string      `json:"updatedAt"`
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Description Record an income or expense. Category and account link by name.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param request body CreateTransactionRequest true "Transaction creation request"
// @Success 201 {object} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /workspaces/{workspaceId}/transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	userID := middleware.GetUserID(c)

	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if req.Amount == nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount is required"},
		})
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request().Context(), workspaceID, userID, service.CreateTransactionInput{
		Type:                    domain.TransactionType(req.Type),
		Amount:                  *req.Amount,
		Description:             req.Description,
		Category:                req.Category,
		Account:                 req.Account,
		Date:                    req.Date,
		ExcludeFromCalculations: req.ExcludeFromCalculations,
	})
	if err != nil {
		return handleServiceError(c, err, "Failed to create transaction")
	}

	log.Info().
		Str("workspace_id", workspaceID.String()).
		Str("transaction_id", transaction.ID.String()).
		Str("type", string(transaction.Type)).
		Msg("Transaction created")

	return c.JSON(http.StatusCreated, toTransactionResponse(transaction))
}

// GetTransactions godoc
// @Summary List transactions
// @Description List a workspace's transactions, newest first. Excluded transactions are left out unless includeExcluded=true.
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param year query int false "Calendar year; requires month"
// @Param month query int false "Month 1-12; requires year"
// @Param includeExcluded query bool false "Include transactions excluded from calculations"
// @Param category query string false "Filter by category name"
// @Param account query string false "Filter by account name"
// @Success 200 {array} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /workspaces/{workspaceId}/transactions [get]
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)

	filters := service.TransactionFilters{
		IncludeExcluded: c.QueryParam("includeExcluded") == "true",
		Category:        c.QueryParam("category"),
		Account:         c.QueryParam("account"),
	}

	yearStr, monthStr := c.QueryParam("year"), c.QueryParam("month")
	if (yearStr == "") != (monthStr == "") {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "month", Message: "Year and month must be given together"},
		})
	}
	if yearStr != "" {
		year, month, err := util.ParseYearMonth(yearStr, monthStr, time.Now())
		if err != nil {
			return NewValidationError(c, "Invalid period", []ValidationError{
				{Field: "month", Message: err.Error()},
			})
		}
		filters.Year, filters.Month = year, month
	}

	transactions, err := h.transactionService.GetTransactions(c.Request().Context(), workspaceID, filters)
	if err != nil {
		return handleServiceError(c, err, "Failed to get transactions")
	}

	response := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		response[i] = toTransactionResponse(&transactions[i])
	}
	return c.JSON(http.StatusOK, response)
}

// GetTransaction handles GET /api/v1/workspaces/:workspaceId/transactions/:id
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	transaction, err := h.transactionService.GetTransactionByID(c.Request().Context(), workspaceID, transactionID)
	if err != nil {
		return handleServiceError(c, err, "Failed to get transaction")
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// UpdateTransaction godoc
// @Summary Update a transaction
// @Description Partially update a transaction. Omitted fields are unchanged.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param id path string true "Transaction ID"
// @Param request body UpdateTransactionRequest true "Transaction update request"
// @Success 200 {object} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /workspaces/{workspaceId}/transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	var req UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.UpdateTransactionInput{
		Amount:                  req.Amount,
		Description:             req.Description,
		Category:                req.Category,
		Account:                 req.Account,
		Date:                    req.Date,
		ExcludeFromCalculations: req.ExcludeFromCalculations,
	}
	if req.Type != nil {
		typ := domain.TransactionType(*req.Type)
		input.Type = &typ
	}

	transaction, err := h.transactionService.UpdateTransaction(c.Request().Context(), workspaceID, transactionID, input)
	if err != nil {
		return handleServiceError(c, err, "Failed to update transaction")
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// DeleteTransaction handles DELETE /api/v1/workspaces/:workspaceId/transactions/:id
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	if err := h.transactionService.DeleteTransaction(c.Request().Context(), workspaceID, transactionID); err != nil {
		return handleServiceError(c, err, "Failed to delete transaction")
	}

	log.Info().Str("workspace_id", workspaceID.String()).Str("transaction_id", transactionID.String()).Msg("Transaction deleted")

	return c.NoContent(http.StatusNoContent)
}

func toRefResponse(ref domain.EntityRef) RefResponse {
	resp := RefResponse{Name: ref.Name}
	if ref.HasID() {
		id := ref.ID.String()
		resp.ID = &id
	}
	return resp
}

func toTransactionResponse(tx *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:                      tx.ID.String(),
		WorkspaceID:             tx.WorkspaceID.String(),
		UserID:                  tx.UserID.String(),
		Type:                    string(tx.Type),
		Description:             tx.Description,
		Category:                toRefResponse(tx.Category),
		Account:                 toRefResponse(tx.Account),
		ExcludeFromCalculations: tx.ExcludeFromCalculations,
		CreatedAt:               tx.CreatedAt.Format(time.RFC3339),
		UpdatedAt:               tx.UpdatedAt.Format(time.RFC3339),
	}
	if tx.Amount.Valid {
		amount := tx.Amount.Decimal.StringFixed(2)
		resp.Amount = &amount
	}
	if tx.Date != nil {
		date := tx.Date.Format(time.RFC3339)
		resp.Date = &date
	}
	return resp
}
