package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"moneyflow/internal/errors"
	"moneyflow/internal/models"
)

const minYear = 2000

func validateMonth(month int) error {
	if month < 1 || month > 12 {
		return errors.ErrInvalidMonth
	}
	return nil
}

func validateYear(year int) error {
	if year < minYear || year > time.Now().Year()+1 {
		return errors.ErrInvalidYear
	}
	return nil
}

// monthRange returns the half-open interval [first day of month, first day
// of the next month) in UTC. Date filters use half-open ranges so the same
// query works on both postgres and sqlite.
func monthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// sumByType totals transaction amounts of one type for a user over a date range.
func sumByType(db *gorm.DB, userID uint, transactionType models.TransactionType, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND type = ? AND date >= ? AND date < ?", userID, transactionType, start, end).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, errors.Wrap(errors.ErrInternalServer, err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// sumCategoryExpenses totals expense transactions for one category of a user
// over a date range.
func sumCategoryExpenses(db *gorm.DB, userID, categoryID uint, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND category_id = ? AND type = ? AND date >= ? AND date < ?",
			userID, categoryID, models.TransactionTypeExpense, start, end).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, errors.Wrap(errors.ErrInternalServer, err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
