package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "moneyflow/internal/errors"
	"moneyflow/internal/models"
	"moneyflow/internal/pagination"
	"moneyflow/internal/services"
)

const dateLayout = "2006-01-02"

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// TransactionRequest represents the payload for creating or updating a transaction.
type TransactionRequest struct {
	CategoryID    uint                   `json:"category_id" binding:"required"`
	Type          models.TransactionType `json:"type" binding:"required,transaction_type"`
	Amount        decimal.Decimal        `json:"amount" binding:"required"`
	Description   string                 `json:"description" binding:"required,min=3,max=200"`
	Date          string                 `json:"date" binding:"required"`
	PaymentMethod models.PaymentMethod   `json:"payment_method" binding:"required,payment_method"`
	Notes         string                 `json:"notes" binding:"max=500"`
}

// cleanDescription trims surrounding whitespace; the trimmed value must
// still be at least 3 characters.
func (r *TransactionRequest) cleanDescription() (string, error) {
	description := strings.TrimSpace(r.Description)
	if len(description) < 3 {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "description must be at least 3 characters")
	}
	return description, nil
}

func (r *TransactionRequest) parsedDate() (time.Time, error) {
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be in YYYY-MM-DD format")
	}
	return date, nil
}

// CreateTransaction handles the creation of a new transaction.
// @Summary     Create a transaction
// @Description Record a new income or expense transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := req.parsedDate()
	if err != nil {
		respondWithError(c, err)
		return
	}

	description, err := req.cleanDescription()
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(
		userID, req.CategoryID, req.Type, req.Amount, description, date, req.PaymentMethod, req.Notes,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"type": req.Type, "amount": req.Amount.String(), "category_id": req.CategoryID})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions handles listing transactions for the authenticated user.
// @Summary     Get transactions
// @Description Get a paginated, filtered list of transactions, newest first
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       start_date  query string false "Filter from date (YYYY-MM-DD, inclusive)"
// @Param       end_date    query string false "Filter to date (YYYY-MM-DD, inclusive)"
// @Param       type        query string false "Filter by type (INCOME/EXPENSE)"
// @Param       category_id query int    false "Filter by category"
// @Param       page        query int    false "Page number (default 1)"
// @Param       page_size   query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetUserTransactions(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if v := c.Query("start_date"); v != "" {
		date, err := time.Parse(dateLayout, v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "start_date must be in YYYY-MM-DD format")
		}
		filter.StartDate = &date
	}
	if v := c.Query("end_date"); v != "" {
		date, err := time.Parse(dateLayout, v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "end_date must be in YYYY-MM-DD format")
		}
		filter.EndDate = &date
	}
	if v := c.Query("type"); v != "" {
		tt := models.TransactionType(v)
		if tt != models.TransactionTypeIncome && tt != models.TransactionTypeExpense {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be 'INCOME' or 'EXPENSE'")
		}
		filter.Type = &tt
	}
	if v := c.Query("category_id"); v != "" {
		id, err := parseIntQuery(c, "category_id", 0)
		if err != nil || id < 1 {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "category_id must be a positive integer")
		}
		categoryID := uint(id)
		filter.CategoryID = &categoryID
	}

	return filter, nil
}

// GetTransaction handles retrieving a specific transaction.
// @Summary     Get transaction by ID
// @Description Get a specific transaction by ID
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction details"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction handles updating an existing transaction.
// @Summary     Update transaction
// @Description Update an existing transaction; affected budgets are re-evaluated
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                true "Transaction ID"
// @Param       request body TransactionRequest true "Updated transaction details"
// @Success     200 {object} models.Transaction "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input or transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := req.parsedDate()
	if err != nil {
		respondWithError(c, err)
		return
	}

	description, err := req.cleanDescription()
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(
		userID, transactionID, req.CategoryID, req.Type, req.Amount, description, date, req.PaymentMethod, req.Notes,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_TRANSACTION", "transaction", transactionID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount.String()})

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles deleting a transaction.
// @Summary     Delete transaction
// @Description Delete a transaction by ID (soft delete); its budget is re-evaluated
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_TRANSACTION", "transaction", transactionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// GetPeriodSummary handles summarizing a date range.
// @Summary     Get period summary
// @Description Total income, expenses and balance over a date range
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string true "Start date (YYYY-MM-DD, inclusive)"
// @Param       end_date   query string true "End date (YYYY-MM-DD, inclusive)"
// @Success     200 {object} services.PeriodSummary "Period summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/summary [get]
func (h *TransactionHandler) GetPeriodSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, end, err := parsePeriod(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.transactionService.GetPeriodSummary(userID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetExpensesByCategory handles breaking down expenses by category.
// @Summary     Get expenses by category
// @Description Expense totals per category over a date range, largest first
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string true "Start date (YYYY-MM-DD, inclusive)"
// @Param       end_date   query string true "End date (YYYY-MM-DD, inclusive)"
// @Success     200 {array} services.CategoryExpense "Expense breakdown"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/by-category [get]
func (h *TransactionHandler) GetExpensesByCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, end, err := parsePeriod(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rows, err := h.transactionService.GetExpensesByCategory(userID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenses_by_category": rows})
}

func parsePeriod(c *gin.Context) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, c.Query("start_date"))
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "start_date must be in YYYY-MM-DD format")
	}
	end, err := time.Parse(dateLayout, c.Query("end_date"))
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "end_date must be in YYYY-MM-DD format")
	}
	return start, end, nil
}
