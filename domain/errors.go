package domain

import (
	"errors"
	"fmt"
)

// Error codes used across the review engine
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeFileNotFound      = "FILE_NOT_FOUND"
	ErrCodeParseError        = "PARSE_ERROR"
	ErrCodeIOError           = "IO_ERROR"
	ErrCodeAnalysisError     = "ANALYSIS_ERROR"
	ErrCodeConfigError       = "CONFIG_ERROR"
	ErrCodeOutputError       = "OUTPUT_ERROR"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e DomainError) Unwrap() error {
	return e.Cause
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) error {
	return DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewFileNotFoundError creates a path error for a missing target or a
// target without eligible source files
func NewFileNotFoundError(path string, cause error) error {
	return NewDomainError(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path), cause)
}

// NewNoSourceFilesError reports a directory that holds no eligible files
func NewNoSourceFilesError(path string) error {
	return NewDomainError(ErrCodeFileNotFound, fmt.Sprintf("no Python files found in %s", path), nil)
}

// NewParseError creates a parse error for a single file
func NewParseError(filename string, cause error) error {
	return NewDomainError(ErrCodeParseError, fmt.Sprintf("failed to parse %s", filename), cause)
}

// NewIOError creates an error for an unreadable file
func NewIOError(filename string, cause error) error {
	return NewDomainError(ErrCodeIOError, fmt.Sprintf("failed to read %s", filename), cause)
}

// NewAnalysisError creates an analysis error
func NewAnalysisError(message string, cause error) error {
	return NewDomainError(ErrCodeAnalysisError, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewOutputError creates an output error
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

// NewUnsupportedFormatError creates an unsupported format error
func NewUnsupportedFormatError(format string) error {
	return NewDomainError(ErrCodeUnsupportedFormat, fmt.Sprintf("unsupported output format: %s", format), nil)
}

// ErrorCode extracts the domain code from err, or "" when err is not a DomainError
func ErrorCode(err error) string {
	var de DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ErrorMessage returns the message of a DomainError without its code, or
// err.Error() for any other error
func ErrorMessage(err error) string {
	var de DomainError
	if errors.As(err, &de) {
		if de.Cause != nil {
			return fmt.Sprintf("%s: %v", de.Message, de.Cause)
		}
		return de.Message
	}
	return err.Error()
}

// IsPathError reports whether err rejects the whole target path
func IsPathError(err error) bool {
	code := ErrorCode(err)
	return code == ErrCodeFileNotFound || code == ErrCodeInvalidInput
}

// IsFileSkipError reports whether err only affects a single file, which is
// skipped while the rest of the scan continues
func IsFileSkipError(err error) bool {
	code := ErrorCode(err)
	return code == ErrCodeParseError || code == ErrCodeIOError
}
