package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "moneyflow/internal/errors"
	"moneyflow/internal/logger"
	"moneyflow/internal/models"
	"moneyflow/internal/money"
)

// defaultAlertRetentionDays is how long read alerts are kept when the
// clean-up caller does not specify a window.
const defaultAlertRetentionDays = 30

var alertsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "moneyflow_budget_alerts_created_total",
	Help: "Total number of budget alerts created, by level.",
}, []string{"level"})

// budgetLocks serializes alert evaluation per budget. Concurrent transactions
// against the same budget would otherwise race between the existence check and
// the insert; the partial unique index on (budget_id, level) is the backstop.
type budgetLocks struct {
	locks sync.Map
}

func (b *budgetLocks) lock(budgetID uint) *sync.Mutex {
	mu, _ := b.locks.LoadOrStore(budgetID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// alertService handles the budget alert lifecycle.
type alertService struct {
	db    *gorm.DB
	locks budgetLocks
}

// NewAlertService creates a new AlertServicer.
func NewAlertService(db *gorm.DB) AlertServicer {
	return &alertService{db: db}
}

// EvaluateBudget runs the threshold state machine for one budget inside the
// caller's transaction. The spent amount has already been computed by the
// caller from the same transactional view.
//
// Rules:
//   - below 80%: any active alerts for the budget are retired
//   - 80% to below 100%: a WARNING alert is active
//   - 100% and above: a CRITICAL alert is active
//
// An alert already active at the target level is left untouched, so repeated
// evaluations at the same tier do not duplicate notifications. Retired alerts
// are soft-deleted and keep their snapshot values for history.
func (s *alertService) EvaluateBudget(tx *gorm.DB, budget *models.Budget, currentSpent decimal.Decimal) error {
	mu := s.locks.lock(budget.ID)
	mu.Lock()
	defer mu.Unlock()

	percentage := money.Percentage(currentSpent, budget.Amount)
	usage := money.ClassifyUsage(percentage)

	if usage == money.UsageWithinBudget {
		return s.retireAlerts(tx, budget.ID)
	}

	level := models.AlertLevelWarning
	alertType := models.AlertTypeBudgetWarning
	if usage == money.UsageExceeded {
		level = models.AlertLevelCritical
		alertType = models.AlertTypeBudgetExceeded
	}

	// Idempotence: if the budget already carries an active alert at the
	// target level, nothing changes.
	var count int64
	if err := tx.Model(&models.Alert{}).
		Where("budget_id = ? AND level = ?", budget.ID, level).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil
	}

	// Moving between tiers retires the previous alert before the new one
	// is created, so at most one alert per budget is ever active.
	if err := s.retireAlerts(tx, budget.ID); err != nil {
		return err
	}

	categoryName, err := s.categoryName(tx, budget)
	if err != nil {
		return err
	}

	budgetID := budget.ID
	categoryID := budget.CategoryID
	alert := &models.Alert{
		UserID:        budget.UserID,
		BudgetID:      &budgetID,
		CategoryID:    &categoryID,
		Level:         level,
		Type:          alertType,
		Message:       alertMessage(alertType, categoryName, percentage, budget.Month, budget.Year),
		BudgetAmount:  budget.Amount,
		CurrentAmount: money.Round2(budget.Amount.Mul(percentage).Div(decimal.NewFromInt(100))),
		Month:         budget.Month,
		Year:          budget.Year,
	}

	if err := tx.Create(alert).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	alertsCreated.WithLabelValues(string(level)).Inc()
	logger.Get().Infow("budget alert created",
		"user_id", budget.UserID,
		"budget_id", budget.ID,
		"level", level,
		"percentage", percentage.String(),
	)
	return nil
}

// retireAlerts soft-deletes all active alerts for a budget.
func (s *alertService) retireAlerts(tx *gorm.DB, budgetID uint) error {
	if err := tx.Where("budget_id = ?", budgetID).Delete(&models.Alert{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *alertService) categoryName(tx *gorm.DB, budget *models.Budget) (string, error) {
	if budget.Category.ID != 0 {
		return budget.Category.Name, nil
	}
	var category models.Category
	if err := tx.Unscoped().First(&category, budget.CategoryID).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category.Name, nil
}

func alertMessage(alertType models.AlertType, categoryName string, percentage decimal.Decimal, month, year int) string {
	if alertType == models.AlertTypeBudgetExceeded {
		return fmt.Sprintf("You have exceeded your '%s' budget for %02d/%d (%s%% used)", categoryName, month, year, percentage.String())
	}
	return fmt.Sprintf("You have used %s%% of your '%s' budget for %02d/%d", percentage.String(), categoryName, month, year)
}

// ListAlerts retrieves a user's active alerts, most severe first, optionally
// filtered by read state.
func (s *alertService) ListAlerts(userID uint, read *bool) ([]models.Alert, error) {
	query := s.db.Preload("Category").Where("user_id = ?", userID)
	if read != nil {
		query = query.Where("read = ?", *read)
	}

	var alerts []models.Alert
	err := query.
		Order("CASE level WHEN 'CRITICAL' THEN 1 WHEN 'WARNING' THEN 2 ELSE 3 END").
		Order("created_at DESC").
		Find(&alerts).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return alerts, nil
}

// GetAlertByID retrieves an alert by ID for a specific user
func (s *alertService) GetAlertByID(userID, alertID uint) (*models.Alert, error) {
	var alert models.Alert
	if err := s.db.Preload("Category").Where("id = ? AND user_id = ?", alertID, userID).First(&alert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAlertNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &alert, nil
}

// UnreadCount returns the number of active unread alerts for a user.
func (s *alertService) UnreadCount(userID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Alert{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count, nil
}

// MarkAsRead marks a single alert as read. Marking an already-read alert is a
// no-op that keeps the original read timestamp.
func (s *alertService) MarkAsRead(userID, alertID uint) (*models.Alert, error) {
	alert, err := s.GetAlertByID(userID, alertID)
	if err != nil {
		return nil, err
	}
	if alert.Read {
		return alert, nil
	}

	now := time.Now()
	updates := map[string]interface{}{"read": true, "read_at": &now}
	if err := s.db.Model(alert).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return alert, nil
}

// MarkAllAsRead marks every unread alert of a user as read and returns how
// many were affected.
func (s *alertService) MarkAllAsRead(userID uint) (int64, error) {
	now := time.Now()
	result := s.db.Model(&models.Alert{}).
		Where("user_id = ? AND read = ?", userID, false).
		Updates(map[string]interface{}{"read": true, "read_at": &now})
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected, nil
}

// MarkMultipleAsRead marks the given alerts as read. The operation is
// all-or-nothing: if any ID does not resolve to an active alert owned by the
// user, no alert is touched.
func (s *alertService) MarkMultipleAsRead(userID uint, alertIDs []uint) (int64, error) {
	if len(alertIDs) == 0 {
		return 0, nil
	}

	var affected int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Alert{}).
			Where("user_id = ? AND id IN ?", userID, alertIDs).
			Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count != int64(len(alertIDs)) {
			return apperrors.ErrForbidden
		}

		now := time.Now()
		result := tx.Model(&models.Alert{}).
			Where("user_id = ? AND id IN ? AND read = ?", userID, alertIDs, false).
			Updates(map[string]interface{}{"read": true, "read_at": &now})
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// DeleteAlert soft-deletes (dismisses) an alert.
func (s *alertService) DeleteAlert(userID, alertID uint) error {
	alert, err := s.GetAlertByID(userID, alertID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(alert).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CleanOldReadAlerts permanently removes read alerts created more than
// daysOld days ago. A non-positive daysOld falls back to the default
// retention window.
func (s *alertService) CleanOldReadAlerts(userID uint, daysOld int) (int64, error) {
	if daysOld < 1 {
		daysOld = defaultAlertRetentionDays
	}

	cutoff := time.Now().AddDate(0, 0, -daysOld)
	result := s.db.Unscoped().
		Where("user_id = ? AND read = ? AND created_at < ?", userID, true, cutoff).
		Delete(&models.Alert{})
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected, nil
}
