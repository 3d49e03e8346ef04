package gate

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLimit is returned when a gate is created with a non-positive limit.
	ErrInvalidLimit = errors.New("gate limit must be positive")

	// ErrInvalidInterval is returned when a scheduler is created with a non-positive interval.
	ErrInvalidInterval = errors.New("scheduler interval must be positive")

	// ErrInterruptedWait is returned when the caller's context ends while it waits for quota.
	ErrInterruptedWait = errors.New("interrupted while waiting for quota")

	// ErrClosed is returned by Acquire once the gate has been closed.
	ErrClosed = errors.New("gate is closed")
)

func NewInvalidLimitError(limit int) error {
	return fmt.Errorf("%w, got %d", ErrInvalidLimit, limit)
}

func NewInvalidIntervalError(interval any) error {
	return fmt.Errorf("%w, got %v", ErrInvalidInterval, interval)
}

// NewInterruptedWaitError wraps both ErrInterruptedWait and the context cause.
func NewInterruptedWaitError(cause error) error {
	return fmt.Errorf("%w: %w", ErrInterruptedWait, cause)
}
