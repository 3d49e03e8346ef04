package receipts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ajiwo/crptapi/backends"
	"github.com/ajiwo/crptapi/utils"
	"github.com/ajiwo/crptapi/utils/builderpool"
	"github.com/google/uuid"
)

const (
	keyPrefix           = "receipt:"
	maxDocumentIDLength = 128
)

// DefaultTTL is how long receipts are kept when no TTL is configured
const DefaultTTL = 7 * 24 * time.Hour

var (
	ErrNilBackend        = errors.New("receipt journal backend cannot be nil")
	ErrInvalidDocumentID = errors.New("invalid receipt document id")
	ErrReceiptNotFound   = errors.New("receipt not found")
	ErrCorruptedReceipt  = errors.New("stored receipt cannot be decoded")
)

// Journal stores the latest receipt per document id in a backend
type Journal struct {
	backend backends.Backend
	ttl     time.Duration
	now     func() time.Time
}

// NewJournal creates a journal on top of backend. ttl <= 0 selects DefaultTTL.
func NewJournal(backend backends.Backend, ttl time.Duration) (*Journal, error) {
	if backend == nil {
		return nil, ErrNilBackend
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Journal{
		backend: backend,
		ttl:     ttl,
		now:     time.Now,
	}, nil
}

// Record stores r, filling in ID and SubmittedAt when unset, and returns the stored receipt
func (j *Journal) Record(ctx context.Context, r Receipt) (Receipt, error) {
	if err := validateDocumentID(r.DocumentID); err != nil {
		return Receipt{}, err
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.SubmittedAt.IsZero() {
		r.SubmittedAt = j.now().UTC()
	}

	data, err := json.Marshal(r)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to encode receipt for %q: %w", r.DocumentID, err)
	}

	if err := j.backend.Set(ctx, buildKey(r.DocumentID), string(data), j.ttl); err != nil {
		return Receipt{}, fmt.Errorf("failed to record receipt for %q: %w", r.DocumentID, err)
	}
	return r, nil
}

// Lookup returns the latest receipt for documentID
func (j *Journal) Lookup(ctx context.Context, documentID string) (Receipt, error) {
	if err := validateDocumentID(documentID); err != nil {
		return Receipt{}, err
	}

	raw, err := j.backend.Get(ctx, buildKey(documentID))
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to look up receipt for %q: %w", documentID, err)
	}
	if raw == "" {
		return Receipt{}, fmt.Errorf("%w: %q", ErrReceiptNotFound, documentID)
	}

	var r Receipt
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return Receipt{}, fmt.Errorf("%w: %q: %w", ErrCorruptedReceipt, documentID, err)
	}
	return r, nil
}

// Forget removes the receipt for documentID
func (j *Journal) Forget(ctx context.Context, documentID string) error {
	if err := validateDocumentID(documentID); err != nil {
		return err
	}
	return j.backend.Delete(ctx, buildKey(documentID))
}

// Close closes the underlying backend
func (j *Journal) Close() error {
	return j.backend.Close()
}

func buildKey(documentID string) string {
	return builderpool.Join(keyPrefix, documentID)
}

func validateDocumentID(documentID string) error {
	if err := utils.ValidateKeyPart(documentID, "document id", maxDocumentIDLength); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocumentID, err)
	}
	return nil
}
