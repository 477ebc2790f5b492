// Package errors provides custom error types for the Cardfolio API.
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
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Account is temporarily locked", StatusCode: http.StatusLocked}
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
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Card errors.
var (
	ErrCardNotFound    = &AppError{Code: "CARD_NOT_FOUND", Message: "Card not found", StatusCode: http.StatusNotFound}
	ErrCardInGrading   = &AppError{Code: "CARD_IN_GRADING", Message: "Card is part of an open grading submission", StatusCode: http.StatusConflict}
	ErrInvalidQuantity = &AppError{Code: "INVALID_QUANTITY", Message: "Quantity must be a positive integer", StatusCode: http.StatusBadRequest}
)

// Sale errors.
var (
	ErrSaleNotFound        = &AppError{Code: "SALE_NOT_FOUND", Message: "Sale not found", StatusCode: http.StatusNotFound}
	ErrInsufficientStock   = &AppError{Code: "INSUFFICIENT_STOCK", Message: "Not enough copies on hand for this sale", StatusCode: http.StatusBadRequest}
	ErrSaleBeforePurchase  = &AppError{Code: "SALE_BEFORE_PURCHASE", Message: "Sale date is before the acquisition date", StatusCode: http.StatusBadRequest}
	ErrInvalidCostBasis    = &AppError{Code: "INVALID_COST_BASIS_METHOD", Message: "Unsupported cost basis method", StatusCode: http.StatusBadRequest}
	ErrInvalidReportPeriod = &AppError{Code: "INVALID_REPORT_PERIOD", Message: "Unsupported report period", StatusCode: http.StatusBadRequest}
)

// Grading errors.
var (
	ErrSubmissionNotFound = &AppError{Code: "SUBMISSION_NOT_FOUND", Message: "Grading submission not found", StatusCode: http.StatusNotFound}
	ErrSubmissionClosed   = &AppError{Code: "SUBMISSION_CLOSED", Message: "Grading submission has already been returned", StatusCode: http.StatusConflict}
	ErrEmptySubmission    = &AppError{Code: "EMPTY_SUBMISSION", Message: "A grading submission needs at least one card", StatusCode: http.StatusBadRequest}
)

// Pricing errors.
var (
	ErrPriceUnavailable = &AppError{Code: "PRICE_UNAVAILABLE", Message: "No price available for this card", StatusCode: http.StatusNotFound}
	ErrProviderFailure  = &AppError{Code: "PROVIDER_FAILURE", Message: "Price provider request failed", StatusCode: http.StatusBadGateway}
)
