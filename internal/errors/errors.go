package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid           = "CONFIG_INVALID"
	CodeInvalidInput            = "INVALID_INPUT"
	CodeIngestionFailed         = "INGESTION_FAILED"
	CodeMissingDateColumn       = "MISSING_DATE_COLUMN"
	CodeInsufficientCategorical = "INSUFFICIENT_CATEGORICAL_COLUMNS"
	CodeAnalysisFailed          = "ANALYSIS_FAILED"
	CodeNotFound                = "NOT_FOUND"
	CodeInternalError           = "INTERNAL_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func IngestionFailed(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeIngestionFailed,
		Message: message,
		Cause:   cause,
	}
}

// MissingDateColumn is returned when time-series mode is requested but no
// column name contains the substring "date".
func MissingDateColumn() *AppError {
	return New(CodeMissingDateColumn, "no date column found: time-series analysis requires a column whose name contains \"date\"")
}

// InsufficientCategoricalColumns is returned when chi-square mode is requested
// with fewer than two text-typed columns available.
func InsufficientCategoricalColumns(found int) *AppError {
	return New(CodeInsufficientCategorical, fmt.Sprintf("chi-square test requires at least 2 categorical columns, found %d", found))
}

func AnalysisFailed(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeAnalysisFailed,
		Message: message,
		Cause:   cause,
	}
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
