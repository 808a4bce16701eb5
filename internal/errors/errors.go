// Package errors provides custom error types for the Kamra API.
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
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusBadRequest}
)

// Budget errors.
var (
	ErrMonthNotFound   = &AppError{Code: "MONTH_NOT_FOUND", Message: "Budget month not found", StatusCode: http.StatusNotFound}
	ErrExpenseNotFound = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
)

// Recurring expense errors.
var (
	ErrRecurringNotFound = &AppError{Code: "RECURRING_NOT_FOUND", Message: "Recurring expense not found", StatusCode: http.StatusNotFound}
)

// Saving errors.
var (
	ErrSavingNotFound = &AppError{Code: "SAVING_NOT_FOUND", Message: "Saving goal not found", StatusCode: http.StatusNotFound}
)

// Food & nutrient errors.
var (
	ErrFoodNotFound     = &AppError{Code: "FOOD_NOT_FOUND", Message: "Food not found", StatusCode: http.StatusNotFound}
	ErrNutrientNotFound = &AppError{Code: "NUTRIENT_NOT_FOUND", Message: "Nutrient not found", StatusCode: http.StatusNotFound}
)

// Diary errors.
var (
	ErrMealTypeNotFound  = &AppError{Code: "MEAL_TYPE_NOT_FOUND", Message: "Meal type not found", StatusCode: http.StatusNotFound}
	ErrDiaryDayNotFound  = &AppError{Code: "DIARY_DAY_NOT_FOUND", Message: "Diary day not found", StatusCode: http.StatusNotFound}
	ErrMealEntryNotFound = &AppError{Code: "MEAL_ENTRY_NOT_FOUND", Message: "Meal entry not found", StatusCode: http.StatusNotFound}
)

// Share errors.
var (
	ErrShareNotFound  = &AppError{Code: "SHARE_NOT_FOUND", Message: "Share not found", StatusCode: http.StatusNotFound}
	ErrSelfShare      = &AppError{Code: "SELF_SHARE", Message: "Cannot share data with yourself", StatusCode: http.StatusBadRequest}
	ErrDuplicateShare = &AppError{Code: "DUPLICATE_SHARE", Message: "An identical share already exists", StatusCode: http.StatusConflict}
)
