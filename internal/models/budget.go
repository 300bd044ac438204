package models

import "github.com/shopspring/decimal"

// Budget represents a monthly spending ceiling for one expense category.
// At most one live budget exists per (user, category, month, year); the
// uniqueness is enforced by a partial unique index in the migrations
// (soft-deleted rows do not count) plus an existence check in the service.
type Budget struct {
	Base
	UserID     uint            `gorm:"not null;index" json:"user_id"`
	CategoryID uint            `gorm:"not null;index" json:"category_id"`
	Month      int             `gorm:"not null" json:"month"`
	Year       int             `gorm:"not null" json:"year"`
	Amount     decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"amount"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
