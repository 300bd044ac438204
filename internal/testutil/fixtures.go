package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"moneyflow/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Name:     fmt.Sprintf("Test User %d", nextID()),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID uint, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   fmt.Sprintf("Test Category %d", nextID()),
		Type:   categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction of the given type and amount,
// dated the given day.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, categoryID uint, txType models.TransactionType, amount decimal.Decimal, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:        userID,
		CategoryID:    categoryID,
		Type:          txType,
		Description:   fmt.Sprintf("Test Transaction %d", nextID()),
		Amount:        amount,
		Date:          date,
		PaymentMethod: models.PaymentMethodCash,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBudget creates a budget for the given category and period.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID, categoryID uint, month, year int, amount decimal.Decimal) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:     userID,
		CategoryID: categoryID,
		Month:      month,
		Year:       year,
		Amount:     amount,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestAlert creates an alert snapshot for the given budget.
func CreateTestAlert(t *testing.T, db *gorm.DB, userID uint, budgetID, categoryID *uint, level models.AlertLevel, month, year int) *models.Alert {
	t.Helper()

	alertType := models.AlertTypeBudgetWarning
	if level == models.AlertLevelCritical {
		alertType = models.AlertTypeBudgetExceeded
	}

	alert := &models.Alert{
		UserID:        userID,
		BudgetID:      budgetID,
		CategoryID:    categoryID,
		Level:         level,
		Type:          alertType,
		Message:       fmt.Sprintf("Test Alert %d", nextID()),
		BudgetAmount:  decimal.NewFromInt(1000),
		CurrentAmount: decimal.NewFromInt(850),
		Month:         month,
		Year:          year,
	}
	if err := db.Create(alert).Error; err != nil {
		t.Fatalf("failed to create test alert: %v", err)
	}
	return alert
}
