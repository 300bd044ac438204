// Package errors provides custom error types for the MoneyFlow API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrInactiveUser       = &AppError{Code: "INACTIVE_USER", Message: "User account is deactivated", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Validation errors shared by budgets, transactions and dashboards.
var (
	ErrInvalidAmount    = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be greater than zero", StatusCode: http.StatusBadRequest}
	ErrInvalidMonth     = &AppError{Code: "INVALID_MONTH", Message: "Month must be between 1 and 12", StatusCode: http.StatusBadRequest}
	ErrInvalidYear      = &AppError{Code: "INVALID_YEAR", Message: "Year is out of the accepted range", StatusCode: http.StatusBadRequest}
	ErrInvalidDate      = &AppError{Code: "INVALID_DATE", Message: "Transaction date cannot be in the future", StatusCode: http.StatusBadRequest}
	ErrInvalidDateRange = &AppError{Code: "INVALID_DATE_RANGE", Message: "Start date cannot be after end date", StatusCode: http.StatusBadRequest}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Category errors.
var (
	ErrCategoryNotFound        = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrCategoryInUse           = &AppError{Code: "CATEGORY_IN_USE", Message: "Category is used by existing transactions", StatusCode: http.StatusConflict}
	ErrDuplicateCategory       = &AppError{Code: "DUPLICATE_CATEGORY", Message: "A category with this name already exists", StatusCode: http.StatusConflict}
	ErrCategoryTypeChange      = &AppError{Code: "CATEGORY_TYPE_CHANGE_NOT_ALLOWED", Message: "Cannot change the type of a category that has transactions", StatusCode: http.StatusConflict}
	ErrInvalidCategoryType     = &AppError{Code: "INVALID_CATEGORY_TYPE", Message: "Only expense categories can have a budget", StatusCode: http.StatusBadRequest}
	ErrTransactionTypeMismatch = &AppError{Code: "INVALID_TRANSACTION_TYPE", Message: "Transaction type does not match the category type", StatusCode: http.StatusBadRequest}
)

// Transaction errors.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
)

// Budget errors.
var (
	ErrBudgetNotFound      = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrBudgetAlreadyExists = &AppError{Code: "BUDGET_ALREADY_EXISTS", Message: "A budget already exists for this category and period", StatusCode: http.StatusConflict}
)

// Alert errors.
var (
	ErrAlertNotFound = &AppError{Code: "ALERT_NOT_FOUND", Message: "Alert not found", StatusCode: http.StatusNotFound}
)
