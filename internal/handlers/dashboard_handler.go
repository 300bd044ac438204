package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moneyflow/internal/services"
)

// DashboardHandler handles dashboard-related requests.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetMonthlySummary handles the monthly dashboard summary.
// @Summary     Monthly summary
// @Description Income, expenses, balance, savings rate, category breakdown, budget statuses and recent activity for a month
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query int false "Month (1-12), defaults to current"
// @Param       year  query int false "Year, defaults to current"
// @Success     200 {object} services.MonthlySummary "Monthly summary"
// @Failure     400 {object} ErrorResponse "Invalid month or year"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/summary [get]
func (h *DashboardHandler) GetMonthlySummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, year, err := parseMonthYear(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.dashboardService.GetMonthlySummary(userID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetMonthlyComparison handles the month-over-month comparison.
// @Summary     Monthly comparison
// @Description Compare a month against the previous month, including the biggest category movers
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query int false "Month (1-12), defaults to current"
// @Param       year  query int false "Year, defaults to current"
// @Success     200 {object} services.MonthlyComparison "Monthly comparison"
// @Failure     400 {object} ErrorResponse "Invalid month or year"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/comparison [get]
func (h *DashboardHandler) GetMonthlyComparison(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, year, err := parseMonthYear(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	comparison, err := h.dashboardService.GetMonthlyComparison(userID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comparison": comparison})
}

// GetYearlyOverview handles the yearly dashboard overview.
// @Summary     Yearly overview
// @Description Totals, monthly averages, best and worst months, per-month series and trends for a year
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Year, defaults to current"
// @Success     200 {object} services.YearlyOverview "Yearly overview"
// @Failure     400 {object} ErrorResponse "Invalid year"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/yearly [get]
func (h *DashboardHandler) GetYearlyOverview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := parseIntQuery(c, "year", currentYear())
	if err != nil {
		respondWithError(c, err)
		return
	}

	overview, err := h.dashboardService.GetYearlyOverview(userID, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"overview": overview})
}
