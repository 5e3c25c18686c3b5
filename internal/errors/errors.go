package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeEmptyDataset    ErrorType = "EMPTY_DATASET"
	ErrTypeNoMatchingItems ErrorType = "NO_MATCHING_ITEMS"
	ErrTypeNotFound        ErrorType = "NOT_FOUND"
	ErrTypeValidation      ErrorType = "VALIDATION"
	ErrTypeParsing         ErrorType = "PARSING"
	ErrTypeStorage         ErrorType = "STORAGE"
	ErrTypeConfig          ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Helper constructors for the dataset error kinds

// NewEmptyDatasetError signals a query against a dataset with no loaded records.
func NewEmptyDatasetError(operation string) *AppError {
	return NewAppError(ErrTypeEmptyDataset, fmt.Sprintf("%s requires a loaded dataset", operation), nil)
}

// NewNoMatchingItemsError signals a statistics query with an empty match set.
func NewNoMatchingItemsError(message string) *AppError {
	return NewAppError(ErrTypeNoMatchingItems, message, nil)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// TypeOf returns the ErrorType of err if it is (or wraps) an AppError,
// or the empty string otherwise.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// Kind predicates so callers can branch through wrapped chains.

// IsEmptyDataset reports whether err carries the EMPTY_DATASET kind.
func IsEmptyDataset(err error) bool {
	return TypeOf(err) == ErrTypeEmptyDataset
}

// IsNoMatchingItems reports whether err carries the NO_MATCHING_ITEMS kind.
func IsNoMatchingItems(err error) bool {
	return TypeOf(err) == ErrTypeNoMatchingItems
}

// IsNotFound reports whether err carries the NOT_FOUND kind.
func IsNotFound(err error) bool {
	return TypeOf(err) == ErrTypeNotFound
}

// IsValidation reports whether err carries the VALIDATION kind.
func IsValidation(err error) bool {
	return TypeOf(err) == ErrTypeValidation
}

// IsParsing reports whether err carries the PARSING kind.
func IsParsing(err error) bool {
	return TypeOf(err) == ErrTypeParsing
}
