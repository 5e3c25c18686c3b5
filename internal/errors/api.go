package errors

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// statusForType maps dataset error kinds to HTTP status codes. An empty
// dataset is a conflict with the server's current state rather than a bad
// request, so it maps to 409.
func statusForType(t ErrorType) int {
	switch t {
	case ErrTypeEmptyDataset:
		return http.StatusConflict
	case ErrTypeNoMatchingItems, ErrTypeNotFound:
		return http.StatusNotFound
	case ErrTypeValidation:
		return http.StatusBadRequest
	case ErrTypeParsing:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// FromError converts any error into an APIError. AppError kinds keep their
// code and message; anything else becomes an opaque 500.
func FromError(err error) *APIError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return New(statusForType(appErr.Type), string(appErr.Type), appErr.Message)
	}
	return New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   *APIError `json:"error"`
}

// NewErrorResponse creates a new error response
func NewErrorResponse(err *APIError) *ErrorResponse {
	return &ErrorResponse{
		Success: false,
		Error:   err,
	}
}

// Render implements the render.Renderer interface
func (e *ErrorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return e.Error.Render(w, r)
}
