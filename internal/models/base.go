package models

import (
	"time"

	"gorm.io/gorm"
)

// Base contains common columns for all tables. DeletedAt doubles as the
// soft-delete flag: soft-deleted rows are excluded from every query and
// aggregation by GORM's default scope.
type Base struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
