package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "moneyflow/internal/errors"
	"moneyflow/internal/models"
	"moneyflow/internal/money"
)

const recentTransactionLimit = 5

// dashboardService assembles the aggregated views served by the dashboard
// endpoints. It reads through the budget and alert services so the derived
// numbers match what those endpoints report on their own.
type dashboardService struct {
	db      *gorm.DB
	budgets BudgetServicer
	alerts  AlertServicer
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB, budgets BudgetServicer, alerts AlertServicer) DashboardServicer {
	return &dashboardService{db: db, budgets: budgets, alerts: alerts}
}

// GetMonthlySummary builds the single-month dashboard view.
func (s *dashboardService) GetMonthlySummary(userID uint, month, year int) (*MonthlySummary, error) {
	if err := validateMonth(month); err != nil {
		return nil, err
	}
	if err := validateYear(year); err != nil {
		return nil, err
	}

	data, err := s.monthData(userID, month, year)
	if err != nil {
		return nil, err
	}

	start, end := monthRange(year, month)
	byCategory, err := expensesByCategory(s.db, userID, start, end)
	if err != nil {
		return nil, err
	}

	budgetStatus, err := s.budgets.GetMonthlyBudgetStatuses(userID, month, year)
	if err != nil {
		return nil, err
	}

	unread, err := s.alerts.UnreadCount(userID)
	if err != nil {
		return nil, err
	}

	// Latest activity overall, not scoped to the summary month.
	var recent []models.Transaction
	if err := s.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("date DESC").
		Order("created_at DESC").
		Limit(recentTransactionLimit).
		Find(&recent).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &MonthlySummary{
		Month:              month,
		Year:               year,
		TotalIncome:        data.Income,
		TotalExpense:       data.Expense,
		Balance:            data.Balance,
		SavingsRate:        money.SavingsRate(data.Income, data.Expense),
		ExpensesByCategory: byCategory,
		BudgetStatus:       budgetStatus,
		UnreadAlertCount:   unread,
		RecentTransactions: recent,
	}, nil
}

// GetMonthlyComparison contrasts a month with the one before it: totals,
// their variations, and the categories whose spend moved the most.
func (s *dashboardService) GetMonthlyComparison(userID uint, month, year int) (*MonthlyComparison, error) {
	if err := validateMonth(month); err != nil {
		return nil, err
	}
	if err := validateYear(year); err != nil {
		return nil, err
	}

	prevMonth, prevYear := month-1, year
	if prevMonth == 0 {
		prevMonth, prevYear = 12, year-1
	}

	current, err := s.monthData(userID, month, year)
	if err != nil {
		return nil, err
	}
	previous, err := s.monthData(userID, prevMonth, prevYear)
	if err != nil {
		return nil, err
	}

	variations, err := s.categoryVariations(userID, prevMonth, prevYear, month, year)
	if err != nil {
		return nil, err
	}

	return &MonthlyComparison{
		CurrentMonth:     *current,
		PreviousMonth:    *previous,
		IncomeVariation:  money.VariationBetween(previous.Income, current.Income),
		ExpenseVariation: money.VariationBetween(previous.Expense, current.Expense),
		BalanceVariation: money.VariationBetween(previous.Balance, current.Balance),
		BiggestIncreases: topVariations(variations, true),
		BiggestDecreases: topVariations(variations, false),
	}, nil
}

// GetYearlyOverview aggregates a year month by month. For the current year
// the series stops at the current month; future months carry no signal.
// Averages and trends consider only months that have movement.
func (s *dashboardService) GetYearlyOverview(userID uint, year int) (*YearlyOverview, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}

	// Never emit months after the current calendar month; a future year
	// yields an empty series.
	lastMonth := 12
	now := time.Now()
	switch {
	case year > now.Year():
		lastMonth = 0
	case year == now.Year():
		lastMonth = int(now.Month())
	}

	overview := &YearlyOverview{
		Year:         year,
		MonthlyData:  make([]MonthData, 0, lastMonth),
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}

	var incomes, expenses []decimal.Decimal
	monthsWithData := 0

	for month := 1; month <= lastMonth; month++ {
		data, err := s.monthData(userID, month, year)
		if err != nil {
			return nil, err
		}
		overview.MonthlyData = append(overview.MonthlyData, *data)
		overview.TotalIncome = overview.TotalIncome.Add(data.Income)
		overview.TotalExpense = overview.TotalExpense.Add(data.Expense)

		if data.Income.IsZero() && data.Expense.IsZero() {
			continue
		}
		monthsWithData++
		incomes = append(incomes, data.Income)
		expenses = append(expenses, data.Expense)

		if overview.BestMonth == nil || data.Balance.GreaterThan(overview.BestMonth.Balance) {
			best := *data
			overview.BestMonth = &best
		}
		if overview.WorstMonth == nil || data.Balance.LessThan(overview.WorstMonth.Balance) {
			worst := *data
			overview.WorstMonth = &worst
		}
	}

	overview.TotalBalance = overview.TotalIncome.Sub(overview.TotalExpense)
	overview.SavingsRate = money.SavingsRate(overview.TotalIncome, overview.TotalExpense)

	if monthsWithData > 0 {
		divisor := decimal.NewFromInt(int64(monthsWithData))
		overview.AverageMonthlyIncome = overview.TotalIncome.Div(divisor).Round(2)
		overview.AverageMonthlyExpense = overview.TotalExpense.Div(divisor).Round(2)
		overview.AverageMonthlyBalance = overview.TotalBalance.Div(divisor).Round(2)
	} else {
		overview.AverageMonthlyIncome = decimal.Zero
		overview.AverageMonthlyExpense = decimal.Zero
		overview.AverageMonthlyBalance = decimal.Zero
	}

	overview.IncomeTrend = money.ClassifyTrend("income", incomes)
	overview.ExpenseTrend = money.ClassifyTrend("expenses", expenses)
	return overview, nil
}

// monthData sums income and expenses for one calendar month.
func (s *dashboardService) monthData(userID uint, month, year int) (*MonthData, error) {
	start, end := monthRange(year, month)
	income, err := sumByType(s.db, userID, models.TransactionTypeIncome, start, end)
	if err != nil {
		return nil, err
	}
	expense, err := sumByType(s.db, userID, models.TransactionTypeExpense, start, end)
	if err != nil {
		return nil, err
	}
	return &MonthData{
		Month:   month,
		Year:    year,
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}, nil
}

// categoryVariations computes, per expense category, how spend moved between
// two months. Categories present in only one of the months still produce a
// row, with zero on the missing side.
func (s *dashboardService) categoryVariations(userID uint, prevMonth, prevYear, month, year int) ([]CategoryVariation, error) {
	prevStart, prevEnd := monthRange(prevYear, prevMonth)
	previous, err := expensesByCategory(s.db, userID, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}

	start, end := monthRange(year, month)
	current, err := expensesByCategory(s.db, userID, start, end)
	if err != nil {
		return nil, err
	}

	type pair struct {
		name     string
		previous decimal.Decimal
		current  decimal.Decimal
	}
	merged := make(map[uint]*pair)
	for _, row := range previous {
		merged[row.CategoryID] = &pair{name: row.CategoryName, previous: row.TotalAmount}
	}
	for _, row := range current {
		if p, ok := merged[row.CategoryID]; ok {
			p.current = row.TotalAmount
		} else {
			merged[row.CategoryID] = &pair{name: row.CategoryName, current: row.TotalAmount}
		}
	}

	variations := make([]CategoryVariation, 0, len(merged))
	for categoryID, p := range merged {
		v := money.VariationBetween(p.previous, p.current)
		variations = append(variations, CategoryVariation{
			CategoryID:          categoryID,
			CategoryName:        p.name,
			PreviousAmount:      p.previous,
			CurrentAmount:       p.current,
			AbsoluteVariation:   v.Absolute,
			PercentageVariation: v.Percentage,
		})
	}
	return variations, nil
}

const topVariationLimit = 5

// topVariations picks the categories that moved the most in one direction.
func topVariations(variations []CategoryVariation, increases bool) []CategoryVariation {
	filtered := make([]CategoryVariation, 0, len(variations))
	for _, v := range variations {
		if increases && v.AbsoluteVariation.IsPositive() {
			filtered = append(filtered, v)
		}
		if !increases && v.AbsoluteVariation.IsNegative() {
			filtered = append(filtered, v)
		}
	}

	sort.Slice(filtered, func(i, j int) bool {
		if increases {
			return filtered[i].AbsoluteVariation.GreaterThan(filtered[j].AbsoluteVariation)
		}
		return filtered[i].AbsoluteVariation.LessThan(filtered[j].AbsoluteVariation)
	})

	if len(filtered) > topVariationLimit {
		filtered = filtered[:topVariationLimit]
	}
	return filtered
}
