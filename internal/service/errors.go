package service

import (
	"errors"
	"fmt"
)

var (
	// ErrExternalService is returned when an external service call fails.
	ErrExternalService = errors.New("external service error")
	// ErrCompletionUnavailable is returned when the completion endpoint fails or answers
	// with something that cannot be decoded. It matches ErrExternalService.
	ErrCompletionUnavailable = fmt.Errorf("completion unavailable: %w", ErrExternalService)
	// ErrBusy is returned when a response is requested while another one is in flight.
	ErrBusy = errors.New("a response is already being generated")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func completionUnavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrCompletionUnavailable, err)
}
