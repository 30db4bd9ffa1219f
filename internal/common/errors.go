package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error codes
const (
	CodeDocumentRead = "DOCUMENT_READ_ERROR"
	CodeConfig       = "CONFIG_ERROR"
	CodeOutput       = "OUTPUT_ERROR"
	CodeValidation   = "VALIDATION_ERROR"
)

// Common application errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrDocumentRead  = errors.New("document unreadable")
	ErrConfiguration = errors.New("configuration error")
	ErrValidation    = errors.New("validation failed")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewDocumentReadError marks a per-document failure: the batch logs it and moves on.
func NewDocumentReadError(path string, cause error) *AppError {
	if cause == nil {
		cause = ErrDocumentRead
	} else {
		cause = fmt.Errorf("%w: %w", ErrDocumentRead, cause)
	}
	return NewAppError(CodeDocumentRead, path, cause)
}

// NewConfigError marks a fatal configuration problem detected before any document is processed.
func NewConfigError(message string, cause error) *AppError {
	if cause == nil {
		cause = ErrConfiguration
	} else {
		cause = fmt.Errorf("%w: %w", ErrConfiguration, cause)
	}
	return NewAppError(CodeConfig, message, cause)
}

// NewOutputError marks a failed write of an output file.
func NewOutputError(path string, cause error) *AppError {
	return NewAppError(CodeOutput, path, cause)
}

// IsConfigError reports whether err is (or wraps) a configuration error.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsDocumentReadError reports whether err is (or wraps) a document read error.
func IsDocumentReadError(err error) bool {
	return errors.Is(err, ErrDocumentRead)
}
