package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertLevel represents the severity of an alert.
type AlertLevel string

const (
	AlertLevelInfo     AlertLevel = "INFO"
	AlertLevelWarning  AlertLevel = "WARNING"
	AlertLevelCritical AlertLevel = "CRITICAL"
)

// AlertType describes what produced the alert.
type AlertType string

const (
	AlertTypeBudgetWarning  AlertType = "BUDGET_WARNING"
	AlertTypeBudgetExceeded AlertType = "BUDGET_EXCEEDED"
)

// Alert is a system-generated notification that a budget crossed a spend
// threshold. BudgetAmount/CurrentAmount are snapshots taken at creation time
// and are never mutated afterwards; retiring an alert is a soft delete.
// BudgetID and CategoryID are historical pointers, not ownership edges:
// deleting the budget leaves its alerts in place.
type Alert struct {
	Base
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	BudgetID      *uint           `gorm:"index" json:"budget_id,omitempty"`
	CategoryID    *uint           `json:"category_id,omitempty"`
	Level         AlertLevel      `gorm:"not null;size:20" json:"level"`
	Type          AlertType       `gorm:"size:30" json:"type"`
	Message       string          `gorm:"not null;size:200" json:"message"`
	BudgetAmount  decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"budget_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"current_amount"`
	Month         int             `gorm:"not null" json:"month"`
	Year          int             `gorm:"not null" json:"year"`
	Read          bool            `gorm:"not null;default:false" json:"read"`
	ReadAt        *time.Time      `json:"read_at,omitempty"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
