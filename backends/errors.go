package backends

import (
	"errors"
	"fmt"
)

var (
	// ErrBackendNotFound is returned when attempting to create a backend with an unknown name.
	ErrBackendNotFound = errors.New("backend not found")

	// ErrInvalidConfig is returned when the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid backend configuration")
)

func NewBackendNotFoundError(name string) error {
	return fmt.Errorf("%w: %q", ErrBackendNotFound, name)
}

func NewInvalidConfigError(backend string, config any) error {
	return fmt.Errorf("%w: %s backend cannot use %T", ErrInvalidConfig, backend, config)
}
