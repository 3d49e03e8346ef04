package backends

import (
	"context"
	"time"
)

// Backend defines the key/value storage used by the receipt journal
type Backend interface {
	// Get retrieves a value from storage. A missing or expired key yields "" and no error.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a value with expiration. Zero expiration means the key never expires.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Delete removes a key from storage
	Delete(ctx context.Context, key string) error

	// Close releases resources used by the storage backend
	Close() error
}
