package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "moneyflow/internal/errors"
	"moneyflow/internal/models"
	"moneyflow/internal/money"
	"moneyflow/internal/pagination"
)

// transactionService handles transaction-related business logic. Every write
// that can move a category's monthly spend re-runs the budget evaluation for
// the affected month inside the same database transaction, so the alert state
// and the spend it reflects commit or roll back together.
type transactionService struct {
	db     *gorm.DB
	alerts AlertServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, alerts AlertServicer) TransactionServicer {
	return &transactionService{db: db, alerts: alerts}
}

// CreateTransaction records a new income or expense entry.
func (s *transactionService) CreateTransaction(
	userID, categoryID uint,
	transactionType models.TransactionType,
	amount decimal.Decimal,
	description string,
	date time.Time,
	paymentMethod models.PaymentMethod,
	notes string,
) (*models.Transaction, error) {
	if err := s.validateInput(userID, categoryID, transactionType, amount, date); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:        userID,
		CategoryID:    categoryID,
		Type:          transactionType,
		Description:   description,
		Amount:        amount,
		Date:          date,
		PaymentMethod: paymentMethod,
		Notes:         notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if transactionType == models.TransactionTypeExpense {
			return s.reevaluateBudget(tx, userID, categoryID, date)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// UpdateTransaction replaces a transaction's fields. When the update moves
// spend between categories or months, both the old and the new bucket are
// re-evaluated.
func (s *transactionService) UpdateTransaction(
	userID, transactionID, categoryID uint,
	transactionType models.TransactionType,
	amount decimal.Decimal,
	description string,
	date time.Time,
	paymentMethod models.PaymentMethod,
	notes string,
) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(userID, categoryID, transactionType, amount, date); err != nil {
		return nil, err
	}

	oldCategoryID := transaction.CategoryID
	oldDate := transaction.Date
	oldWasExpense := transaction.Type == models.TransactionTypeExpense

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"category_id":    categoryID,
			"type":           transactionType,
			"description":    description,
			"amount":         amount,
			"date":           date,
			"payment_method": paymentMethod,
			"notes":          notes,
		}
		if err := tx.Model(transaction).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if oldWasExpense {
			if err := s.reevaluateBudget(tx, userID, oldCategoryID, oldDate); err != nil {
				return err
			}
		}
		newIsExpense := transactionType == models.TransactionTypeExpense
		movedBucket := oldCategoryID != categoryID ||
			oldDate.Year() != date.Year() || oldDate.Month() != date.Month()
		if newIsExpense && (movedBucket || !oldWasExpense) {
			return s.reevaluateBudget(tx, userID, categoryID, date)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetTransactionByID(userID, transactionID)
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Preload("Category").
		Where("id = ? AND user_id = ?", transactionID, userID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// GetUserTransactions retrieves a paginated, filtered list of transactions,
// newest first.
func (s *transactionService) GetUserTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return nil, apperrors.ErrInvalidDateRange
	}

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if filter.StartDate != nil {
		base = base.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		base = base.Where("date < ?", filter.EndDate.AddDate(0, 0, 1))
	}
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}
	if filter.CategoryID != nil {
		base = base.Where("category_id = ?", *filter.CategoryID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Preload("Category").
		Order("date DESC").
		Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DeleteTransaction soft-deletes a transaction and re-evaluates the budget
// of the month it belonged to.
func (s *transactionService) DeleteTransaction(userID, transactionID uint) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if transaction.Type == models.TransactionTypeExpense {
			return s.reevaluateBudget(tx, userID, transaction.CategoryID, transaction.Date)
		}
		return nil
	})
}

// GetPeriodSummary totals income and expenses over a date range. Both
// boundary dates are inclusive.
func (s *transactionService) GetPeriodSummary(userID uint, startDate, endDate time.Time) (*PeriodSummary, error) {
	if startDate.After(endDate) {
		return nil, apperrors.ErrInvalidDateRange
	}
	end := endDate.AddDate(0, 0, 1)

	income, err := sumByType(s.db, userID, models.TransactionTypeIncome, startDate, end)
	if err != nil {
		return nil, err
	}
	expense, err := sumByType(s.db, userID, models.TransactionTypeExpense, startDate, end)
	if err != nil {
		return nil, err
	}

	return &PeriodSummary{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income.Sub(expense),
	}, nil
}

// GetExpensesByCategory breaks down expense spend by category over a date
// range. Both boundary dates are inclusive; rows come back largest first.
func (s *transactionService) GetExpensesByCategory(userID uint, startDate, endDate time.Time) ([]CategoryExpense, error) {
	if startDate.After(endDate) {
		return nil, apperrors.ErrInvalidDateRange
	}
	return expensesByCategory(s.db, userID, startDate, endDate.AddDate(0, 0, 1))
}

// expensesByCategory groups expense transactions by category over the
// half-open range [start, end).
func expensesByCategory(db *gorm.DB, userID uint, start, end time.Time) ([]CategoryExpense, error) {
	type row struct {
		CategoryID       uint
		CategoryName     string
		TotalAmount      decimal.Decimal
		TransactionCount int64
	}

	var rows []row
	err := db.Model(&models.Transaction{}).
		Select("transactions.category_id AS category_id, categories.name AS category_name, SUM(transactions.amount) AS total_amount, COUNT(transactions.id) AS transaction_count").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.type = ? AND transactions.date >= ? AND transactions.date < ?",
			userID, models.TransactionTypeExpense, start, end).
		Group("transactions.category_id, categories.name").
		Order("total_amount DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.TotalAmount)
	}

	result := make([]CategoryExpense, 0, len(rows))
	for _, r := range rows {
		result = append(result, CategoryExpense{
			CategoryID:       r.CategoryID,
			CategoryName:     r.CategoryName,
			TotalAmount:      r.TotalAmount,
			Percentage:       money.Share(r.TotalAmount, total),
			TransactionCount: r.TransactionCount,
		})
	}
	return result, nil
}

// validateInput checks the common invariants for creating or updating a
// transaction: positive amount, no future date, and a category of matching
// type owned by the user.
func (s *transactionService) validateInput(userID, categoryID uint, transactionType models.TransactionType, amount decimal.Decimal, date time.Time) error {
	if !amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}
	if date.After(endOfToday()) {
		return apperrors.ErrInvalidDate
	}

	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if string(category.Type) != string(transactionType) {
		return apperrors.ErrTransactionTypeMismatch
	}
	return nil
}

func endOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
}

// reevaluateBudget recomputes the month's spend for a category and runs the
// alert state machine, all inside the caller's transaction. Months without a
// budget have nothing to evaluate.
func (s *transactionService) reevaluateBudget(tx *gorm.DB, userID, categoryID uint, date time.Time) error {
	var budget models.Budget
	err := tx.Where("user_id = ? AND category_id = ? AND month = ? AND year = ?",
		userID, categoryID, int(date.Month()), date.Year()).
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	start, end := monthRange(budget.Year, budget.Month)
	spent, err := sumCategoryExpenses(tx, userID, categoryID, start, end)
	if err != nil {
		return err
	}
	return s.alerts.EvaluateBudget(tx, &budget, spent)
}
