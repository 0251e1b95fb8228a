package handler

import (
	"errors"
	"net/http"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation   = "https://dompet.app/errors/validation"
	ErrorTypeNotFound     = "https://dompet.app/errors/not-found"
	ErrorTypeUnauthorized = "https://dompet.app/errors/unauthorized"
	ErrorTypeForbidden    = "https://dompet.app/errors/forbidden"
	ErrorTypeConflict     = "https://dompet.app/errors/conflict"
	ErrorTypeInternal     = "https://dompet.app/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnauthorized, ProblemDetails{
		Type:     ErrorTypeUnauthorized,
		Title:    "Unauthorized",
		Status:   http.StatusUnauthorized,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewForbiddenError creates a forbidden error response
func NewForbiddenError(c echo.Context, detail string) error {
	return c.JSON(http.StatusForbidden, ProblemDetails{
		Type:     ErrorTypeForbidden,
		Title:    "Forbidden",
		Status:   http.StatusForbidden,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return c.JSON(http.StatusConflict, ProblemDetails{
		Type:     ErrorTypeConflict,
		Title:    "Conflict",
		Status:   http.StatusConflict,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// fieldErrors maps validation errors returned by services to request fields
var fieldErrors = []struct {
	err     error
	field   string
	message string
}{
	{domain.ErrNameRequired, "name", "Name is required"},
	{domain.ErrNameTooLong, "name", "Name is too long"},
	{domain.ErrInvalidAccountType, "type", "Type must be one of: cash, bank"},
	{domain.ErrInvalidCategoryType, "type", "Type must be one of: income, expense"},
	{domain.ErrInvalidTransactionType, "type", "Type must be one of: income, expense"},
	{domain.ErrInvalidAmount, "amount", "Amount must be greater than zero"},
	{domain.ErrAmountPrecision, "amount", "Amount must have at most 4 decimal places"},
	{domain.ErrBalancePrecision, "initialBalance", "Initial balance must have at most 4 decimal places"},
	{domain.ErrAccountRequired, "account", "Account is required"},
	{domain.ErrCategoryRequired, "category", "Category is required"},
	{domain.ErrDescriptionTooLong, "description", "Description must be 500 characters or less"},
	{domain.ErrNoteTooLong, "note", "Note must be 500 characters or less"},
	{domain.ErrInvalidCurrency, "currency", "Currency must be a 3-letter ISO 4217 code"},
	{domain.ErrInvalidTimezone, "timezone", "Timezone must be a valid IANA name"},
}

var notFoundErrors = []error{
	domain.ErrNotFound,
	domain.ErrUserNotFound,
	domain.ErrWorkspaceNotFound,
	domain.ErrAccountNotFound,
	domain.ErrCategoryNotFound,
	domain.ErrTransactionNotFound,
}

// handleServiceError translates a service error into a problem response.
// Unknown errors are logged and reported as internal errors with fallback as detail.
func handleServiceError(c echo.Context, err error, fallback string) error {
	for _, fe := range fieldErrors {
		if errors.Is(err, fe.err) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: fe.field, Message: fe.message},
			})
		}
	}
	for _, nf := range notFoundErrors {
		if errors.Is(err, nf) {
			return NewNotFoundError(c, capitalize(err.Error()))
		}
	}
	switch {
	case errors.Is(err, domain.ErrAccountNameExists),
		errors.Is(err, domain.ErrCategoryNameExists),
		errors.Is(err, domain.ErrAlreadyExists):
		return NewConflictError(c, capitalize(err.Error()))
	case errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, capitalize(err.Error()), nil)
	case errors.Is(err, domain.ErrForbidden):
		return NewForbiddenError(c, fallback)
	}

	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg(fallback)
	return NewInternalError(c, fallback)
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
