package memory

import (
	"testing"
	"time"

	"github.com/ajiwo/crptapi/backends"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackend_GetSet(t *testing.T) {
	storage := New()
	ctx := t.Context()

	t.Run("Get non-existent key", func(t *testing.T) {
		val, err := storage.Get(ctx, "nonexistent")
		require.NoError(t, err)
		require.Equal(t, "", val)
	})

	t.Run("Get existing value", func(t *testing.T) {
		require.NoError(t, storage.Set(ctx, "testkey", "testvalue", time.Hour))

		val, err := storage.Get(ctx, "testkey")
		require.NoError(t, err)
		require.Equal(t, "testvalue", val)
	})

	t.Run("Overwrite value", func(t *testing.T) {
		require.NoError(t, storage.Set(ctx, "testkey", "other", time.Hour))

		val, err := storage.Get(ctx, "testkey")
		require.NoError(t, err)
		require.Equal(t, "other", val)
	})

	t.Run("Get expired value", func(t *testing.T) {
		require.NoError(t, storage.Set(ctx, "expiredkey", "expiredvalue", 10*time.Millisecond))
		time.Sleep(20 * time.Millisecond)

		val, err := storage.Get(ctx, "expiredkey")
		require.NoError(t, err)
		require.Equal(t, "", val)
	})

	t.Run("Zero expiration never expires", func(t *testing.T) {
		require.NoError(t, storage.Set(ctx, "forever", "v", 0))
		time.Sleep(5 * time.Millisecond)

		val, err := storage.Get(ctx, "forever")
		require.NoError(t, err)
		require.Equal(t, "v", val)
	})
}

func TestBackend_Delete(t *testing.T) {
	storage := New()
	ctx := t.Context()

	require.NoError(t, storage.Set(ctx, "k", "v", time.Hour))
	require.NoError(t, storage.Delete(ctx, "k"))
	require.NoError(t, storage.Delete(ctx, "missing"))

	val, err := storage.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "", val)
}

func TestBackend_Close(t *testing.T) {
	storage := New()
	ctx := t.Context()

	require.NoError(t, storage.Set(ctx, "a", "1", time.Hour))
	require.NoError(t, storage.Set(ctx, "b", "2", time.Hour))
	assert.Equal(t, 2, storage.Len())

	require.NoError(t, storage.Close())
	assert.Equal(t, 0, storage.Len())
}

func TestRegistered(t *testing.T) {
	backend, err := backends.Create("memory", nil)
	require.NoError(t, err)
	assert.IsType(t, &Backend{}, backend)
	assert.Contains(t, backends.Names(), "memory")
}
