package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// PaymentMethod represents how a transaction was paid.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentMethodPix          PaymentMethod = "PIX"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

// Transaction represents a single income or expense entry. Deleting a
// transaction is a soft delete; deleted rows are excluded from all sums.
type Transaction struct {
	Base
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	CategoryID    uint            `gorm:"not null;index" json:"category_id"`
	Type          TransactionType `gorm:"not null;size:20" json:"type"`
	Description   string          `gorm:"not null;size:200" json:"description"`
	Amount        decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"amount"`
	Date          time.Time       `gorm:"not null;index" json:"date"`
	PaymentMethod PaymentMethod   `gorm:"not null;size:50" json:"payment_method"`
	Notes         string          `gorm:"size:500" json:"notes,omitempty"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
