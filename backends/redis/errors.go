package redis

import (
	"errors"
	"fmt"
)

var (
	ErrConnectionFailed = errors.New("failed to connect to redis")
	ErrGetFailed        = errors.New("failed to get key")
	ErrSetFailed        = errors.New("failed to set key")
	ErrDeleteFailed     = errors.New("failed to delete key")
	ErrCloseFailed      = errors.New("failed to close redis connection")
)

func NewConnectionFailedError(addr string, err error) error {
	return fmt.Errorf("%w at %s: %w", ErrConnectionFailed, addr, err)
}

func NewGetFailedError(key string, err error) error {
	return fmt.Errorf("%w '%s': %w", ErrGetFailed, key, err)
}

func NewSetFailedError(key string, err error) error {
	return fmt.Errorf("%w '%s': %w", ErrSetFailed, key, err)
}

func NewDeleteFailedError(key string, err error) error {
	return fmt.Errorf("%w '%s': %w", ErrDeleteFailed, key, err)
}

func NewCloseFailedError(err error) error {
	return fmt.Errorf("%w: %w", ErrCloseFailed, err)
}
