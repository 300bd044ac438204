package services

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "moneyflow/internal/errors"
	"moneyflow/internal/models"
	"moneyflow/internal/money"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db     *gorm.DB
	alerts AlertServicer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, alerts AlertServicer) BudgetServicer {
	return &budgetService{db: db, alerts: alerts}
}

// CreateBudget defines a spending ceiling for an expense category in a given
// month. The new budget is evaluated immediately, since existing transactions
// may already put it over a threshold.
func (s *budgetService) CreateBudget(userID, categoryID uint, month, year int, amount decimal.Decimal) (*models.Budget, error) {
	if err := validateMonth(month); err != nil {
		return nil, err
	}
	if err := validateYear(year); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if category.Type != models.CategoryTypeExpense {
		return nil, apperrors.ErrInvalidCategoryType
	}

	var count int64
	if err := s.db.Model(&models.Budget{}).
		Where("user_id = ? AND category_id = ? AND month = ? AND year = ?", userID, categoryID, month, year).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrBudgetAlreadyExists
	}

	budget := &models.Budget{
		UserID:     userID,
		CategoryID: categoryID,
		Month:      month,
		Year:       year,
		Amount:     amount,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(budget).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.evaluate(tx, budget)
	})
	if err != nil {
		return nil, err
	}

	budget.Category = category
	return budget, nil
}

// UpdateBudget changes a budget's amount and re-runs the alert evaluation,
// since a new ceiling shifts the thresholds.
func (s *budgetService) UpdateBudget(userID, budgetID uint, amount decimal.Decimal) (*models.Budget, error) {
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(budget).Update("amount", amount).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		budget.Amount = amount
		return s.evaluate(tx, budget)
	})
	if err != nil {
		return nil, err
	}

	return budget, nil
}

// DeleteBudget soft-deletes a budget. Alerts raised while the budget was live
// are kept for history; their budget pointer simply stops resolving.
func (s *budgetService) DeleteBudget(userID, budgetID uint) error {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetBudgetByID retrieves a budget by ID for a specific user
func (s *budgetService) GetBudgetByID(userID, budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Preload("Category").
		Where("id = ? AND user_id = ?", budgetID, userID).
		First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// ListBudgets retrieves all budgets of a user, newest period first.
func (s *budgetService) ListBudgets(userID uint) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("year DESC").
		Order("month DESC").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// GetBudgetStatus returns the derived status of one budget.
func (s *budgetService) GetBudgetStatus(userID, budgetID uint) (*BudgetStatusRow, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}
	row, err := s.statusRow(budget)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// GetMonthlyBudgetStatuses returns the status of every budget a user has in
// a given month.
func (s *budgetService) GetMonthlyBudgetStatuses(userID uint, month, year int) ([]BudgetStatusRow, error) {
	if err := validateMonth(month); err != nil {
		return nil, err
	}
	if err := validateYear(year); err != nil {
		return nil, err
	}

	var budgets []models.Budget
	if err := s.db.Preload("Category").
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	rows := make([]BudgetStatusRow, 0, len(budgets))
	for i := range budgets {
		row, err := s.statusRow(&budgets[i])
		if err != nil {
			return nil, err
		}
		rows = append(rows, *row)
	}
	// Most consumed budgets first, so the ones needing attention lead.
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].PercentageUsed.GreaterThan(rows[j].PercentageUsed)
	})
	return rows, nil
}

// CheckBudgets re-runs the alert evaluation for every budget of a user in a
// month and returns how many of them sit at or above the warning threshold.
// It is the manual reconciliation entry point; normal evaluation happens on
// each transaction write.
func (s *budgetService) CheckBudgets(userID uint, month, year int) (int, error) {
	if err := validateMonth(month); err != nil {
		return 0, err
	}
	if err := validateYear(year); err != nil {
		return 0, err
	}

	var budgets []models.Budget
	if err := s.db.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Find(&budgets).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	flagged := 0
	for i := range budgets {
		budget := &budgets[i]
		err := s.db.Transaction(func(tx *gorm.DB) error {
			start, end := monthRange(budget.Year, budget.Month)
			spent, err := sumCategoryExpenses(tx, budget.UserID, budget.CategoryID, start, end)
			if err != nil {
				return err
			}
			usage := money.ClassifyUsage(money.Percentage(spent, budget.Amount))
			if usage != money.UsageWithinBudget {
				flagged++
			}
			return s.alerts.EvaluateBudget(tx, budget, spent)
		})
		if err != nil {
			return 0, err
		}
	}
	return flagged, nil
}

// evaluate recomputes the month's spend and runs the alert state machine for
// one budget inside the given transaction.
func (s *budgetService) evaluate(tx *gorm.DB, budget *models.Budget) error {
	start, end := monthRange(budget.Year, budget.Month)
	spent, err := sumCategoryExpenses(tx, budget.UserID, budget.CategoryID, start, end)
	if err != nil {
		return err
	}
	return s.alerts.EvaluateBudget(tx, budget, spent)
}

func (s *budgetService) statusRow(budget *models.Budget) (*BudgetStatusRow, error) {
	start, end := monthRange(budget.Year, budget.Month)
	spent, err := sumCategoryExpenses(s.db, budget.UserID, budget.CategoryID, start, end)
	if err != nil {
		return nil, err
	}

	var txCount int64
	if err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND category_id = ? AND type = ? AND date >= ? AND date < ?",
			budget.UserID, budget.CategoryID, models.TransactionTypeExpense, start, end).
		Count(&txCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	percentage := money.Percentage(spent, budget.Amount)
	return &BudgetStatusRow{
		BudgetID:         budget.ID,
		CategoryID:       budget.CategoryID,
		CategoryName:     budget.Category.Name,
		Month:            budget.Month,
		Year:             budget.Year,
		BudgetAmount:     budget.Amount,
		SpentAmount:      spent,
		RemainingAmount:  budget.Amount.Sub(spent),
		PercentageUsed:   percentage,
		Status:           money.ClassifyUsage(percentage),
		TransactionCount: txCount,
	}, nil
}
