// Package errors provides custom error types for the promotrack system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the promotrack system
var (
	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrFeedUnavailable indicates that an upstream feed is temporarily unavailable
	ErrFeedUnavailable = errors.New("feed unavailable")

	// ErrMalformedFeed indicates that upstream feed content could not be decoded
	ErrMalformedFeed = errors.New("malformed feed")
)

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// FeedError represents an error from an upstream feed endpoint
type FeedError struct {
	Feed       string // Feed name, e.g. "gachas"
	Locale     string // Locale code, e.g. "jp"
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *FeedError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("feed error from %s/%s (status %d): %s", e.Locale, e.Feed, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("feed error from %s/%s: %s", e.Locale, e.Feed, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *FeedError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *FeedError) Is(target error) bool {
	return target == ErrFeedUnavailable
}

// NewFeedError creates a new FeedError
func NewFeedError(locale, feed string, statusCode int, message string) *FeedError {
	return &FeedError{
		Feed:       feed,
		Locale:     locale,
		StatusCode: statusCode,
		Message:    message,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedFeed
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "rename"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "load", "save", "merge", "fetch"
	Resource  string // "snapshot", "catalog", "banner", "event", "card"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsMalformedFeed checks if an error indicates undecodable feed content
func IsMalformedFeed(err error) bool {
	return errors.Is(err, ErrMalformedFeed)
}

// IsFeedUnavailable checks if an error indicates feed unavailability
func IsFeedUnavailable(err error) bool {
	return errors.Is(err, ErrFeedUnavailable)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
