package receipts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ajiwo/crptapi/backends"
	"github.com/ajiwo/crptapi/backends/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBackend struct {
	backends.Backend
}

func (f *failingBackend) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return errors.New("backend down")
}

func TestNewJournal(t *testing.T) {
	_, err := NewJournal(nil, time.Hour)
	assert.ErrorIs(t, err, ErrNilBackend)

	j, err := NewJournal(memory.New(), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, j.ttl)
}

func TestJournal_RecordAndLookup(t *testing.T) {
	backend := memory.New()
	j, err := NewJournal(backend, time.Hour)
	require.NoError(t, err)
	ctx := t.Context()

	stored, err := j.Record(ctx, Receipt{
		DocumentID:   "doc-1",
		DocumentType: "LP_INTRODUCE_GOODS",
		StatusCode:   200,
		Body:         `{"value":"ok"}`,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.SubmittedAt.IsZero())
	assert.True(t, stored.Accepted())

	raw, err := backend.Get(ctx, "receipt:doc-1")
	require.NoError(t, err)
	assert.Contains(t, raw, `"doc_id":"doc-1"`)

	got, err := j.Lookup(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
	assert.Equal(t, 200, got.StatusCode)
	assert.Equal(t, `{"value":"ok"}`, got.Body)
	assert.True(t, stored.SubmittedAt.Equal(got.SubmittedAt))
}

func TestJournal_RecordKeepsLatest(t *testing.T) {
	j, err := NewJournal(memory.New(), time.Hour)
	require.NoError(t, err)
	ctx := t.Context()

	_, err = j.Record(ctx, Receipt{DocumentID: "doc-2", StatusCode: 500})
	require.NoError(t, err)
	_, err = j.Record(ctx, Receipt{DocumentID: "doc-2", StatusCode: 201})
	require.NoError(t, err)

	got, err := j.Lookup(ctx, "doc-2")
	require.NoError(t, err)
	assert.Equal(t, 201, got.StatusCode)
}

func TestJournal_Errors(t *testing.T) {
	backend := memory.New()
	j, err := NewJournal(backend, time.Hour)
	require.NoError(t, err)
	ctx := t.Context()

	_, err = j.Record(ctx, Receipt{StatusCode: 200})
	assert.ErrorIs(t, err, ErrInvalidDocumentID)

	_, err = j.Lookup(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidDocumentID)

	_, err = j.Record(ctx, Receipt{DocumentID: "has space", StatusCode: 200})
	assert.ErrorIs(t, err, ErrInvalidDocumentID)

	_, err = j.Lookup(ctx, "missing")
	assert.ErrorIs(t, err, ErrReceiptNotFound)

	require.NoError(t, backend.Set(ctx, "receipt:broken", "{not json", time.Hour))
	_, err = j.Lookup(ctx, "broken")
	assert.ErrorIs(t, err, ErrCorruptedReceipt)

	failing, err := NewJournal(&failingBackend{}, time.Hour)
	require.NoError(t, err)
	_, err = failing.Record(ctx, Receipt{DocumentID: "doc-3"})
	assert.ErrorContains(t, err, "backend down")
}

func TestJournal_Forget(t *testing.T) {
	j, err := NewJournal(memory.New(), time.Hour)
	require.NoError(t, err)
	ctx := t.Context()

	_, err = j.Record(ctx, Receipt{DocumentID: "doc-4", StatusCode: 200})
	require.NoError(t, err)
	require.NoError(t, j.Forget(ctx, "doc-4"))

	_, err = j.Lookup(ctx, "doc-4")
	assert.ErrorIs(t, err, ErrReceiptNotFound)
	assert.ErrorIs(t, j.Forget(ctx, ""), ErrInvalidDocumentID)
}
