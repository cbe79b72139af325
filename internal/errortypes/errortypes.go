// Package errortypes provides typed application errors for paperembed.
//
// Every failure in this program is fatal: nothing is retried and nothing is
// recovered. The types here exist so the CLI can map a failure to an exit
// status and message, and so tests can assert what kind of failure occurred
// without matching message text.
package errortypes

import (
	"errors"
	"fmt"
)

// ErrorType classifies the failure.
type ErrorType string

const (
	// ErrorTypeStoreNotFound means the paper database could not be located.
	ErrorTypeStoreNotFound ErrorType = "store_not_found"

	// ErrorTypeRecordNotFound means a requested paper does not exist.
	ErrorTypeRecordNotFound ErrorType = "record_not_found"

	// ErrorTypeEmptyContent means a paper has neither title nor abstract.
	ErrorTypeEmptyContent ErrorType = "empty_content"

	// ErrorTypeModelLoad means the embedding model could not be resolved.
	ErrorTypeModelLoad ErrorType = "model_load"

	// ErrorTypeModelRuntime means the model failed while encoding.
	ErrorTypeModelRuntime ErrorType = "model_runtime"

	// ErrorTypeDependencyMissing means no embedding backend is available.
	ErrorTypeDependencyMissing ErrorType = "dependency_missing"

	// ErrorTypeDatabase indicates a SQLite-level failure.
	ErrorTypeDatabase ErrorType = "database"

	// ErrorTypeConfig indicates a configuration failure.
	ErrorTypeConfig ErrorType = "config"
)

// AppError wraps an underlying error with its classification and a message.
type AppError struct {
	Err     error
	Type    ErrorType
	Message string
	Fields  map[string]interface{}
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Message != "" && e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap supports errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithField attaches structured context to the error.
func (e *AppError) WithField(key string, value interface{}) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

func newAppError(errType ErrorType, err error, message string) *AppError {
	return &AppError{
		Err:     err,
		Type:    errType,
		Message: message,
	}
}

// StoreNotFound creates a store-not-found error.
func StoreNotFound(err error, message string) *AppError {
	return newAppError(ErrorTypeStoreNotFound, err, message)
}

// RecordNotFound creates a record-not-found error.
func RecordNotFound(err error, message string) *AppError {
	return newAppError(ErrorTypeRecordNotFound, err, message)
}

// EmptyContent creates an empty-content error.
func EmptyContent(err error, message string) *AppError {
	return newAppError(ErrorTypeEmptyContent, err, message)
}

// ModelLoad creates a model-load error.
func ModelLoad(err error, message string) *AppError {
	return newAppError(ErrorTypeModelLoad, err, message)
}

// ModelRuntime creates a model-runtime error.
func ModelRuntime(err error, message string) *AppError {
	return newAppError(ErrorTypeModelRuntime, err, message)
}

// DependencyMissing creates a dependency-missing error.
func DependencyMissing(err error, message string) *AppError {
	return newAppError(ErrorTypeDependencyMissing, err, message)
}

// Database creates a database error.
func Database(err error, message string) *AppError {
	return newAppError(ErrorTypeDatabase, err, message)
}

// Config creates a configuration error.
func Config(err error, message string) *AppError {
	return newAppError(ErrorTypeConfig, err, message)
}

// TypeOf returns the classification of err, or "" for untyped errors.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsStoreNotFound reports whether err is a store-not-found error.
func IsStoreNotFound(err error) bool {
	return TypeOf(err) == ErrorTypeStoreNotFound
}

// IsRecordNotFound reports whether err is a record-not-found error.
func IsRecordNotFound(err error) bool {
	return TypeOf(err) == ErrorTypeRecordNotFound
}

// IsEmptyContent reports whether err is an empty-content error.
func IsEmptyContent(err error) bool {
	return TypeOf(err) == ErrorTypeEmptyContent
}

// IsModelLoad reports whether err is a model-load error.
func IsModelLoad(err error) bool {
	return TypeOf(err) == ErrorTypeModelLoad
}

// IsModelRuntime reports whether err is a model-runtime error.
func IsModelRuntime(err error) bool {
	return TypeOf(err) == ErrorTypeModelRuntime
}

// IsDependencyMissing reports whether err is a dependency-missing error.
func IsDependencyMissing(err error) bool {
	return TypeOf(err) == ErrorTypeDependencyMissing
}
