package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "moneyflow/internal/errors"
	"moneyflow/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// CreateBudgetRequest represents the request payload for creating a budget.
type CreateBudgetRequest struct {
	CategoryID uint            `json:"category_id" binding:"required"`
	Month      int             `json:"month" binding:"required,min=1,max=12"`
	Year       int             `json:"year" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// UpdateBudgetRequest represents the request payload for updating a budget.
type UpdateBudgetRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CreateBudget handles the creation of a new budget.
// @Summary     Create a budget
// @Description Create a monthly spending ceiling for an expense category
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Budget already exists for the period"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.CreateBudget(userID, req.CategoryID, req.Month, req.Year, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_BUDGET", "budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"category_id": req.CategoryID, "month": req.Month, "year": req.Year, "amount": req.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetBudgets handles listing all budgets of the authenticated user.
// @Summary     Get budgets
// @Description Get all budgets for the authenticated user, newest period first
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Budget "Budgets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgets, err := h.budgetService.ListBudgets(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

// GetBudget handles retrieving a specific budget.
// @Summary     Get budget by ID
// @Description Get a specific budget by ID
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} models.Budget "Budget details"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudgetByID(userID, budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// UpdateBudget handles updating a budget's amount.
// @Summary     Update budget
// @Description Update a budget's amount; its alerts are re-evaluated
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                 true "Budget ID"
// @Param       request body UpdateBudgetRequest true "Updated budget amount"
// @Success     200 {object} models.Budget "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input or budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.UpdateBudget(userID, budgetID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_BUDGET", "budget", budgetID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount.String()})

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget handles deleting a budget.
// @Summary     Delete budget
// @Description Delete a budget by ID (soft delete); historical alerts are kept
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} MessageResponse "Budget deleted"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteBudget(userID, budgetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_BUDGET", "budget", budgetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted successfully"})
}

// GetBudgetStatus handles retrieving the derived status of one budget.
// @Summary     Get budget status
// @Description Spent, remaining and usage tier for one budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} services.BudgetStatusRow "Budget status"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/status [get]
func (h *BudgetHandler) GetBudgetStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	status, err := h.budgetService.GetBudgetStatus(userID, budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

// GetMonthlyStatuses handles retrieving the status of all budgets in a month.
// @Summary     Get monthly budget statuses
// @Description Status of every budget in a month (defaults to the current month)
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query int false "Month (1-12, default current)"
// @Param       year  query int false "Year (default current)"
// @Success     200 {array} services.BudgetStatusRow "Budget statuses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/status [get]
func (h *BudgetHandler) GetMonthlyStatuses(c *gin.Context) {
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

	statuses, err := h.budgetService.GetMonthlyBudgetStatuses(userID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"statuses": statuses})
}

// CheckBudgets handles manually re-running alert evaluation for a month.
// @Summary     Check budgets
// @Description Re-run alert evaluation for every budget in a month
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query int false "Month (1-12, default current)"
// @Param       year  query int false "Year (default current)"
// @Success     200 {object} MessageResponse "Number of budgets at or above the warning threshold"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/check [post]
func (h *BudgetHandler) CheckBudgets(c *gin.Context) {
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

	evaluated, err := h.budgetService.CheckBudgets(userID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"evaluated": evaluated})
}
