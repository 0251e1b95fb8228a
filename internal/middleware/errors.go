package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// problemDetails represents an RFC 7807 Problem Details response
type problemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// Error types
const (
	errorTypeUnauthorized = "https://dompet.app/errors/unauthorized"
	errorTypeValidation   = "https://dompet.app/errors/validation"
	errorTypeNotFound     = "https://dompet.app/errors/not-found"
	errorTypeRateLimit    = "https://dompet.app/errors/rate-limit"
	errorTypeInternal     = "https://dompet.app/errors/internal"
)

func problem(c echo.Context, status int, typ, title, detail string) error {
	return c.JSON(status, problemDetails{
		Type:     typ,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// unauthorizedError creates an unauthorized error response
func unauthorizedError(c echo.Context, detail string) error {
	return problem(c, http.StatusUnauthorized, errorTypeUnauthorized, "Unauthorized", detail)
}

func badRequestError(c echo.Context, detail string) error {
	return problem(c, http.StatusBadRequest, errorTypeValidation, "Validation Error", detail)
}

func notFoundError(c echo.Context, detail string) error {
	return problem(c, http.StatusNotFound, errorTypeNotFound, "Not Found", detail)
}

func internalError(c echo.Context, detail string) error {
	return problem(c, http.StatusInternalServerError, errorTypeInternal, "Internal Server Error", detail)
}

func rateLimitError(c echo.Context, detail string) error {
	return problem(c, http.StatusTooManyRequests, errorTypeRateLimit, "Rate Limit Exceeded", detail)
}
