package apperror

import "net/http"

// AppError is a custom error type that includes an HTTP status code and an optional wrapped error.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Shorthands for the error taxonomy shared by all modules.
func NotFound(message string) *AppError   { return New(http.StatusNotFound, message) }
func Conflict(message string) *AppError   { return New(http.StatusConflict, message) }
func BadRequest(message string) *AppError { return New(http.StatusBadRequest, message) }
func Forbidden(message string) *AppError  { return New(http.StatusForbidden, message) }
