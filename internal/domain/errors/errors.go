package errors

import (
	"net/http"

	"vendorwatch/internal/errors"
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

// Is matches by business error code, so detail-carrying copies made with
// WithDetails still compare equal to their predefined error.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)

	return ok && t.errorCode == e.errorCode
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
	// Property-related errors
	ErrPropertyNotFound = NewBaseError(
		http.StatusNotFound,
		"PROPERTY_NOT_FOUND",
		"property not found",
		"",
	)

	ErrContactNotFound = NewBaseError(
		http.StatusNotFound,
		"CONTACT_NOT_FOUND",
		"contact not found",
		"",
	)

	ErrContractNotFound = NewBaseError(
		http.StatusNotFound,
		"CONTRACT_NOT_FOUND",
		"contract not found",
		"",
	)

	ErrDocumentNotFound = NewBaseError(
		http.StatusNotFound,
		"DOCUMENT_NOT_FOUND",
		"document not found",
		"",
	)

	ErrInvalidStatus = NewBaseError(
		http.StatusBadRequest,
		"INVALID_STATUS",
		"unknown property status",
		"",
	)

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
		"this email address is already registered",
		"",
	)

	ErrInvalidRole = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ROLE",
		"unknown role",
		"",
	)

	ErrInvalidScope = NewBaseError(
		http.StatusBadRequest,
		"INVALID_SCOPE",
		"unknown scope type",
		"",
	)

	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"incorrect email or password",
		"",
	)

	ErrRefreshTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_INVALID",
		"invalid or expired refresh token",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"password processing failed",
		"",
	)

	// Import-related errors
	ErrImportEmpty = NewBaseError(
		http.StatusBadRequest,
		"IMPORT_EMPTY",
		"the uploaded file contains no property rows",
		"",
	)

	ErrImportHeaderMismatch = NewBaseError(
		http.StatusBadRequest,
		"IMPORT_HEADER_MISMATCH",
		"the uploaded file is missing required columns",
		"",
	)

	ErrImportTooLarge = NewBaseError(
		http.StatusRequestEntityTooLarge,
		"IMPORT_TOO_LARGE",
		"the uploaded file exceeds the import size limit",
		"",
	)

	// Wizard-related errors
	ErrWizardStepIncomplete = NewBaseError(
		http.StatusBadRequest,
		"WIZARD_STEP_INCOMPLETE",
		"the current step is missing required fields",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	// General errors
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

// DatastoreExecuteError represents a document-store execution error,
// implementing the AppError interface
type DatastoreExecuteError struct {
	err     error
	details string
}

// NewDatastoreExecuteError creates a datastore-related error
func NewDatastoreExecuteError(err error, details string) AppError {
	return &DatastoreExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatastoreExecuteError) Error() string {
	return errors.Wrap(e.err, "datastore execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatastoreExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatastoreExecuteError) ErrorCode() string {
	return "DATASTORE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatastoreExecuteError) Message() string {
	return "datastore execution failed"
}

// Details returns detailed error information
func (e *DatastoreExecuteError) Details() string {
	return e.details
}
