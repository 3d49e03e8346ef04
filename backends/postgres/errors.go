package postgres

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConnString   = errors.New("invalid postgres connection string")
	ErrPingFailed          = errors.New("failed to ping postgres server")
	ErrPoolCreationFailed  = errors.New("failed to create connection pool")
	ErrTableCreationFailed = errors.New("failed to create receipts table")

	ErrSetFailed    = errors.New("failed to set key")
	ErrGetFailed    = errors.New("failed to get key")
	ErrDeleteFailed = errors.New("failed to delete key")
)

func NewInvalidConnStringError(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidConnString, err)
}

func NewPingFailedError(err error) error {
	return fmt.Errorf("%w: %w", ErrPingFailed, err)
}

func NewPoolCreationFailedError(err error) error {
	return fmt.Errorf("%w: %w", ErrPoolCreationFailed, err)
}

func NewTableCreationFailedError(err error) error {
	return fmt.Errorf("%w: %w", ErrTableCreationFailed, err)
}

func NewGetFailedError(key string, err error) error {
	return fmt.Errorf("%w '%s' from postgres: %w", ErrGetFailed, key, err)
}

func NewSetFailedError(key string, err error) error {
	return fmt.Errorf("%w '%s' in postgres: %w", ErrSetFailed, key, err)
}

func NewDeleteFailedError(key string, err error) error {
	return fmt.Errorf("%w '%s' from postgres: %w", ErrDeleteFailed, key, err)
}
