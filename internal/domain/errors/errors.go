// Package errors defines the application error model: structured errors that
// carry an HTTP status, a stable business code and user-facing messages, so
// the delivery layer never has to guess how to render a failure.
package errors

import (
	"net/http"
	"strings"

	"github.com/hcplayer1988/coderr/internal/errors"
)

// AppError defines the interface for application-specific errors.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message.
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information.
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy of the error carrying detailed information.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Account-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusBadRequest,
		"USER_ALREADY_EXISTS",
		"A user with this username or email already exists",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		"",
	)

	ErrRefreshTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_INVALID",
		"Invalid or expired refresh token",
		"",
	)

	ErrAuthenticationRequired = NewBaseError(
		http.StatusUnauthorized,
		"AUTHENTICATION_FAILED",
		"Authentication credentials were not provided or are invalid",
		"",
	)

	// Authorization errors
	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"You do not have permission to perform this action",
		"",
	)

	ErrNotBusinessUser = NewBaseError(
		http.StatusForbidden,
		"NOT_BUSINESS_USER",
		"Only business users can create offers",
		"",
	)

	ErrNotCustomerUser = NewBaseError(
		http.StatusForbidden,
		"NOT_CUSTOMER_USER",
		"Only customer users can perform this action",
		"",
	)

	ErrNotResourceOwner = NewBaseError(
		http.StatusForbidden,
		"NOT_RESOURCE_OWNER",
		"Only the owner of this resource may modify it",
		"",
	)

	ErrStaffOnly = NewBaseError(
		http.StatusForbidden,
		"STAFF_ONLY",
		"Only staff users may perform this action",
		"",
	)

	// Validation errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	ErrOrderAlreadyCompleted = NewBaseError(
		http.StatusBadRequest,
		"ORDER_ALREADY_COMPLETED",
		"The order is already completed and cannot change status",
		"",
	)

	// Lookup errors
	ErrOfferNotFound = NewBaseError(
		http.StatusNotFound,
		"OFFER_NOT_FOUND",
		"Offer not found",
		"",
	)

	ErrOfferDetailNotFound = NewBaseError(
		http.StatusNotFound,
		"OFFER_DETAIL_NOT_FOUND",
		"Offer detail not found",
		"",
	)

	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"Order not found",
		"",
	)

	ErrReviewNotFound = NewBaseError(
		http.StatusNotFound,
		"REVIEW_NOT_FOUND",
		"Review not found",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)
)

// ValidationError is an AppError carrying structured per-field and non-field
// messages, so clients can tell "rating out of range" apart from "you already
// reviewed this user".
type ValidationError struct {
	fieldErrors    map[string][]string
	nonFieldErrors []string
}

// NewValidationError creates an empty validation error to be filled via
// AddFieldError / AddNonFieldError.
func NewValidationError() *ValidationError {
	return &ValidationError{
		fieldErrors: make(map[string][]string),
	}
}

// AddFieldError records a message against a field path. An empty field name
// records a non-field error.
func (e *ValidationError) AddFieldError(field, message string) *ValidationError {
	if field == "" {
		return e.AddNonFieldError(message)
	}
	e.fieldErrors[field] = append(e.fieldErrors[field], message)

	return e
}

// AddNonFieldError records a message not attributable to a single field, such
// as a uniqueness conflict.
func (e *ValidationError) AddNonFieldError(message string) *ValidationError {
	e.nonFieldErrors = append(e.nonFieldErrors, message)

	return e
}

// HasErrors reports whether any message has been recorded.
func (e *ValidationError) HasErrors() bool {
	return len(e.fieldErrors) > 0 || len(e.nonFieldErrors) > 0
}

// FieldErrors returns the recorded per-field messages.
func (e *ValidationError) FieldErrors() map[string][]string {
	return e.fieldErrors
}

// NonFieldErrors returns the recorded non-field messages.
func (e *ValidationError) NonFieldErrors() []string {
	return e.nonFieldErrors
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message()
}

// HTTPCode returns the HTTP status code.
func (e *ValidationError) HTTPCode() int {
	return http.StatusBadRequest
}

// ErrorCode returns the business error code.
func (e *ValidationError) ErrorCode() string {
	return "VALIDATION_FAILED"
}

// Message returns the user-friendly error message.
func (e *ValidationError) Message() string {
	return "Input validation failed"
}

// Details flattens all recorded messages into one human-readable string.
func (e *ValidationError) Details() string {
	parts := make([]string, 0, len(e.nonFieldErrors)+len(e.fieldErrors))
	parts = append(parts, e.nonFieldErrors...)
	for field, messages := range e.fieldErrors {
		parts = append(parts, field+": "+strings.Join(messages, " "))
	}

	return strings.Join(parts, "; ")
}
