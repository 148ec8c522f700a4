// Package errors defines the error taxonomy shared across streamkit packages.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Common error types used across the streamkit library

var (
	// ErrCompleted indicates that an item was offered to a channel after
	// its completion was signaled
	ErrCompleted = errors.New("channel already completed")

	// ErrInvalidState indicates that a lifecycle method was called in a
	// state that forbids it (for example, starting a session twice)
	ErrInvalidState = errors.New("invalid state")

	// ErrFaulted indicates that a producer failed unexpectedly and the
	// failure was recorded as the channel's terminal error
	ErrFaulted = errors.New("stream faulted")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// IsCancellation returns true if the error represents cooperative
// cancellation rather than a fault. Cancellation is carried by the
// context errors, never by a custom sentinel.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Fault wraps an unexpected producer error so callers can classify it
// with errors.Is(err, ErrFaulted) while retaining the cause.
func Fault(cause error) error {
	if cause == nil {
		return nil
	}
	return &faultError{cause: cause}
}

type faultError struct {
	cause error
}

func (e *faultError) Error() string { return "stream faulted: " + e.cause.Error() }

func (e *faultError) Is(target error) bool { return target == ErrFaulted }

func (e *faultError) Unwrap() error { return e.cause }

// ValidationError describes a rejected configuration or request field.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// NewValidationError creates a ValidationError for the given module and field.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a remediation hint and returns the error for chaining.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap allows errors.Is(err, ErrInvalidConfiguration) to match.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}
