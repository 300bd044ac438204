package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"moneyflow/internal/models"
	"moneyflow/internal/money"
	"moneyflow/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// CategoryWithCount pairs a category with the number of non-deleted
// transactions recorded against it.
type CategoryWithCount struct {
	Category         models.Category `json:"category"`
	TransactionCount int64           `json:"transaction_count"`
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID uint, name string, categoryType models.CategoryType, description, color string) (*models.Category, error)
	GetUserCategories(userID uint, categoryType *models.CategoryType, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, categoryID uint) (*models.Category, error)
	UpdateCategory(userID, categoryID uint, name, description, color string, newType *models.CategoryType) (*models.Category, error)
	DeleteCategory(userID, categoryID uint) error
	GetCategoriesWithCount(userID uint) ([]CategoryWithCount, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Type       *models.TransactionType
	CategoryID *uint
}

// PeriodSummary aggregates income and expenses over an arbitrary date range.
type PeriodSummary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
}

// CategoryExpense is one row of an expense breakdown by category.
type CategoryExpense struct {
	CategoryID       uint            `json:"category_id"`
	CategoryName     string          `json:"category_name"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Percentage       decimal.Decimal `json:"percentage"`
	TransactionCount int64           `json:"transaction_count"`
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID, categoryID uint, transactionType models.TransactionType, amount decimal.Decimal, description string, date time.Time, paymentMethod models.PaymentMethod, notes string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID, categoryID uint, transactionType models.TransactionType, amount decimal.Decimal, description string, date time.Time, paymentMethod models.PaymentMethod, notes string) (*models.Transaction, error)
	GetTransactionByID(userID, transactionID uint) (*models.Transaction, error)
	GetUserTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	DeleteTransaction(userID, transactionID uint) error
	GetPeriodSummary(userID uint, startDate, endDate time.Time) (*PeriodSummary, error)
	GetExpensesByCategory(userID uint, startDate, endDate time.Time) ([]CategoryExpense, error)
}

// BudgetStatusRow is the derived status of one budget: how much was spent,
// what remains, and which usage tier the budget sits in.
type BudgetStatusRow struct {
	BudgetID         uint              `json:"budget_id"`
	CategoryID       uint              `json:"category_id"`
	CategoryName     string            `json:"category_name"`
	Month            int               `json:"month"`
	Year             int               `json:"year"`
	BudgetAmount     decimal.Decimal   `json:"budget_amount"`
	SpentAmount      decimal.Decimal   `json:"spent_amount"`
	RemainingAmount  decimal.Decimal   `json:"remaining_amount"`
	PercentageUsed   decimal.Decimal   `json:"percentage_used"`
	Status           money.BudgetUsage `json:"status"`
	TransactionCount int64             `json:"transaction_count"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID, categoryID uint, month, year int, amount decimal.Decimal) (*models.Budget, error)
	UpdateBudget(userID, budgetID uint, amount decimal.Decimal) (*models.Budget, error)
	DeleteBudget(userID, budgetID uint) error
	GetBudgetByID(userID, budgetID uint) (*models.Budget, error)
	ListBudgets(userID uint) ([]models.Budget, error)
	GetBudgetStatus(userID, budgetID uint) (*BudgetStatusRow, error)
	GetMonthlyBudgetStatuses(userID uint, month, year int) ([]BudgetStatusRow, error)
	CheckBudgets(userID uint, month, year int) (int, error)
}

// AlertServicer defines the contract for budget alert lifecycle and delivery.
type AlertServicer interface {
	// EvaluateBudget runs the threshold state machine for one budget inside
	// the caller's database transaction.
	EvaluateBudget(tx *gorm.DB, budget *models.Budget, currentSpent decimal.Decimal) error
	ListAlerts(userID uint, read *bool) ([]models.Alert, error)
	GetAlertByID(userID, alertID uint) (*models.Alert, error)
	UnreadCount(userID uint) (int64, error)
	MarkAsRead(userID, alertID uint) (*models.Alert, error)
	MarkAllAsRead(userID uint) (int64, error)
	MarkMultipleAsRead(userID uint, alertIDs []uint) (int64, error)
	DeleteAlert(userID, alertID uint) error
	CleanOldReadAlerts(userID uint, daysOld int) (int64, error)
}

// AuditServicer records mutating user operations. Implementations never
// return errors; auditing must not disrupt the operation it records.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]any)
}

// MonthData holds income, expense and balance for one calendar month.
type MonthData struct {
	Month   int             `json:"month"`
	Year    int             `json:"year"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// CategoryVariation describes how spending in one category moved between two months.
type CategoryVariation struct {
	CategoryID          uint            `json:"category_id"`
	CategoryName        string          `json:"category_name"`
	PreviousAmount      decimal.Decimal `json:"previous_amount"`
	CurrentAmount       decimal.Decimal `json:"current_amount"`
	AbsoluteVariation   decimal.Decimal `json:"absolute_variation"`
	PercentageVariation decimal.Decimal `json:"percentage_variation"`
}

// MonthlySummary is the dashboard view of a single month.
type MonthlySummary struct {
	Month              int                  `json:"month"`
	Year               int                  `json:"year"`
	TotalIncome        decimal.Decimal      `json:"total_income"`
	TotalExpense       decimal.Decimal      `json:"total_expense"`
	Balance            decimal.Decimal      `json:"balance"`
	SavingsRate        decimal.Decimal      `json:"savings_rate"`
	ExpensesByCategory []CategoryExpense    `json:"expenses_by_category"`
	BudgetStatus       []BudgetStatusRow    `json:"budget_status"`
	UnreadAlertCount   int64                `json:"unread_alert_count"`
	RecentTransactions []models.Transaction `json:"recent_transactions"`
}

// MonthlyComparison contrasts a month with the month before it.
type MonthlyComparison struct {
	CurrentMonth     MonthData           `json:"current_month"`
	PreviousMonth    MonthData           `json:"previous_month"`
	IncomeVariation  money.Variation     `json:"income_variation"`
	ExpenseVariation money.Variation     `json:"expense_variation"`
	BalanceVariation money.Variation     `json:"balance_variation"`
	BiggestIncreases []CategoryVariation `json:"biggest_increases"`
	BiggestDecreases []CategoryVariation `json:"biggest_decreases"`
}

// YearlyOverview aggregates a year of monthly data with trend analysis.
// Averages divide by the number of months that actually have movement, so
// inactive months do not dilute them.
type YearlyOverview struct {
	Year                  int             `json:"year"`
	TotalIncome           decimal.Decimal `json:"total_income"`
	TotalExpense          decimal.Decimal `json:"total_expense"`
	TotalBalance          decimal.Decimal `json:"total_balance"`
	AverageMonthlyIncome  decimal.Decimal `json:"average_monthly_income"`
	AverageMonthlyExpense decimal.Decimal `json:"average_monthly_expense"`
	AverageMonthlyBalance decimal.Decimal `json:"average_monthly_balance"`
	BestMonth             *MonthData      `json:"best_month"`
	WorstMonth            *MonthData      `json:"worst_month"`
	SavingsRate           decimal.Decimal `json:"savings_rate"`
	MonthlyData           []MonthData     `json:"monthly_data"`
	IncomeTrend           money.Trend     `json:"income_trend"`
	ExpenseTrend          money.Trend     `json:"expense_trend"`
}

// DashboardServicer defines the contract for dashboard aggregation queries.
type DashboardServicer interface {
	GetMonthlySummary(userID uint, month, year int) (*MonthlySummary, error)
	GetMonthlyComparison(userID uint, month, year int) (*MonthlyComparison, error)
	GetYearlyOverview(userID uint, year int) (*YearlyOverview, error)
}
