package errors

import (
	"net/http"

	"storefront/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Is matches any BaseError carrying the same business code, so copies produced by
// WithDetails still satisfy errors.Is against the predefined values.
func (e *BaseError) Is(target error) bool {
	var other *BaseError
	if !errors.As(target, &other) {
		return false
	}

	return other.errorCode == e.errorCode
}

// WithDetails adds detailed error information
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
	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"user not found",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"this email is already registered",
		"",
	)

	ErrUserCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_CREATION_FAILED",
		"failed to create user",
		"",
	)

	// Admin-related errors
	ErrAdminNotFound = NewBaseError(
		http.StatusNotFound,
		"ADMIN_NOT_FOUND",
		"admin not found",
		"",
	)

	ErrAdminAlreadyExists = NewBaseError(
		http.StatusConflict,
		"ADMIN_ALREADY_EXISTS",
		"an admin with this email already exists",
		"",
	)

	ErrSelfLockout = NewBaseError(
		http.StatusForbidden,
		"SELF_LOCKOUT",
		"a super admin cannot disable or demote itself",
		"",
	)

	ErrRecoveryCodeInvalid = NewBaseError(
		http.StatusUnauthorized,
		"RECOVERY_CODE_INVALID",
		"invalid recovery code",
		"",
	)

	// Authentication-related errors
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"authentication required",
		"",
	)

	ErrSessionInvalid = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_INVALID",
		"invalid or expired session",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"invalid email or password",
		"",
	)

	ErrAccountDisabled = NewBaseError(
		http.StatusForbidden,
		"ACCOUNT_DISABLED",
		"this account is not active",
		"",
	)

	ErrSetupTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"SETUP_TOKEN_INVALID",
		"invalid or expired password setup link",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"password processing failed",
		"",
	)

	ErrPasswordStrength = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_STRENGTH",
		"password does not meet the strength requirements",
		"",
	)

	// Slug-related errors
	ErrSlugInvalidFormat = NewBaseError(
		http.StatusBadRequest,
		"SLUG_INVALID_FORMAT",
		"slug must contain only lowercase letters, digits and hyphens",
		"",
	)

	ErrSlugReserved = NewBaseError(
		http.StatusConflict,
		"SLUG_RESERVED",
		"this slug is reserved",
		"",
	)

	ErrSlugTaken = NewBaseError(
		http.StatusConflict,
		"SLUG_TAKEN",
		"this slug is already in use",
		"",
	)

	ErrSlugConflict = NewBaseError(
		http.StatusConflict,
		"SLUG_CONFLICT",
		"this slug was claimed by another store",
		"",
	)

	ErrSlugExhausted = NewBaseError(
		http.StatusConflict,
		"SLUG_EXHAUSTED",
		"no free slug could be allocated for this name",
		"",
	)

	// Application-related errors
	ErrApplicationNotFound = NewBaseError(
		http.StatusNotFound,
		"APPLICATION_NOT_FOUND",
		"application not found",
		"",
	)

	ErrApplicationDuplicatePending = NewBaseError(
		http.StatusConflict,
		"APPLICATION_DUPLICATE_PENDING",
		"a pending application already exists for this email",
		"",
	)

	ErrApplicationAlreadyApproved = NewBaseError(
		http.StatusConflict,
		"APPLICATION_ALREADY_APPROVED",
		"application has already been approved",
		"",
	)

	ErrApplicationAlreadyTerminal = NewBaseError(
		http.StatusConflict,
		"APPLICATION_ALREADY_TERMINAL",
		"application has already been reviewed",
		"",
	)

	ErrApplicationNotTerminal = NewBaseError(
		http.StatusConflict,
		"APPLICATION_NOT_TERMINAL",
		"only reviewed applications can be purged",
		"",
	)

	// Store and reference data errors
	ErrStoreNotFound = NewBaseError(
		http.StatusNotFound,
		"STORE_NOT_FOUND",
		"store not found",
		"",
	)

	ErrCategoryNotFound = NewBaseError(
		http.StatusNotFound,
		"CATEGORY_NOT_FOUND",
		"category not found",
		"",
	)

	ErrPlanNotFound = NewBaseError(
		http.StatusNotFound,
		"PLAN_NOT_FOUND",
		"subscription plan not found",
		"",
	)

	ErrRestrictedSlugNotFound = NewBaseError(
		http.StatusNotFound,
		"RESTRICTED_SLUG_NOT_FOUND",
		"restricted slug not found",
		"",
	)

	ErrRestrictedSlugExists = NewBaseError(
		http.StatusConflict,
		"RESTRICTED_SLUG_EXISTS",
		"this word is already restricted",
		"",
	)

	// Document errors
	ErrDocumentRejected = NewBaseError(
		http.StatusBadRequest,
		"DOCUMENT_REJECTED",
		"document was rejected",
		"",
	)

	ErrDocumentTooLarge = NewBaseError(
		http.StatusRequestEntityTooLarge,
		"DOCUMENT_TOO_LARGE",
		"document exceeds the maximum size",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"database transaction failed",
		"",
	)

	// General errors
	ErrDependencyUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"DEPENDENCY_UNAVAILABLE",
		"a downstream service is unavailable",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"resource conflict",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
