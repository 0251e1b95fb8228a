package handler

import (
	"net/http"
	"time"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/dompet-app/dompet-backend/internal/middleware"
	"github.com/dompet-app/dompet-backend/internal/service"
	"github.com/dompet-app/dompet-backend/internal/util"
	"github.com/labstack/echo/v4"
)

// SummaryHandler serves the computed ledger views of a workspace
type SummaryHandler struct {
	summaryService *service.SummaryService
	now            func() time.Time
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService, now: time.Now}
}

// period reads ?year&month, defaulting to the current month in the
// workspace's time zone
func (h *SummaryHandler) period(c echo.Context) (int, time.Month, error) {
	now := h.now().In(middleware.GetWorkspace(c).Location())
	return util.ParseYearMonth(c.QueryParam("year"), c.QueryParam("month"), now)
}

// GetSummary godoc
// @Summary Month view
// @Description Totals, balances, top categories, daily series and transactions for one month
// @Tags summary
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param year query int false "Calendar year (default: current)"
// @Param month query int false "Month 1-12 (default: current)"
// @Success 200 {object} ledger.MonthView
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /workspaces/{workspaceId}/summary [get]
func (h *SummaryHandler) GetSummary(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)

	year, month, err := h.period(c)
	if err != nil {
		return NewValidationError(c, "Invalid period", []ValidationError{
			{Field: "month", Message: err.Error()},
		})
	}

	view, err := h.summaryService.GetMonthView(c.Request().Context(), workspaceID, year, month)
	if err != nil {
		return handleServiceError(c, err, "Failed to build month summary")
	}
	return c.JSON(http.StatusOK, view)
}

// GetSeries godoc
// @Summary Daily series
// @Description One income and one expense point per day of the month
// @Tags summary
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param year query int false "Calendar year (default: current)"
// @Param month query int false "Month 1-12 (default: current)"
// @Success 200 {object} ledger.DailySeries
// @Failure 400 {object} ProblemDetails
// @Router /workspaces/{workspaceId}/series [get]
func (h *SummaryHandler) GetSeries(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)

	year, month, err := h.period(c)
	if err != nil {
		return NewValidationError(c, "Invalid period", []ValidationError{
			{Field: "month", Message: err.Error()},
		})
	}

	series, err := h.summaryService.GetDailySeries(c.Request().Context(), workspaceID, year, month)
	if err != nil {
		return handleServiceError(c, err, "Failed to build daily series")
	}
	return c.JSON(http.StatusOK, series)
}

// GetCategoryTotals godoc
// @Summary Category totals
// @Description Every category of one type with its summed amount, in first-seen order. Without year and month all dates are included.
// @Tags summary
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param type query string true "income or expense"
// @Param year query int false "Calendar year; requires month"
// @Param month query int false "Month 1-12; requires year"
// @Success 200 {object} service.CategoryTotalsResult
// @Failure 400 {object} ProblemDetails
// @Router /workspaces/{workspaceId}/category-totals [get]
func (h *SummaryHandler) GetCategoryTotals(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	typ := domain.TransactionType(c.QueryParam("type"))

	var year int
	var month time.Month
	yearStr, monthStr := c.QueryParam("year"), c.QueryParam("month")
	if (yearStr == "") != (monthStr == "") {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "month", Message: "Year and month must be given together"},
		})
	}
	if yearStr != "" {
		var err error
		if year, month, err = h.period(c); err != nil {
			return NewValidationError(c, "Invalid period", []ValidationError{
				{Field: "month", Message: err.Error()},
			})
		}
	}

	totals, err := h.summaryService.GetCategoryTotals(c.Request().Context(), workspaceID, typ, year, month)
	if err != nil {
		return handleServiceError(c, err, "Failed to group category totals")
	}
	return c.JSON(http.StatusOK, totals)
}
