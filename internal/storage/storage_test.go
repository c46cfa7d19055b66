package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestFileStore_PutGetRoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	key, err := store.Put(ctx, []byte("resume bytes"))
	require.NoError(t, err)
	assert.Equal(t, Key([]byte("resume bytes")), key)

	data, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("resume bytes"), data)
}

func TestFileStore_PutIsIdempotent(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	first, err := store.Put(ctx, []byte("same content"))
	require.NoError(t, err)
	second, err := store.Put(ctx, []byte("same content"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFileStore_GetMissing(t *testing.T) {
	store := newStore(t)

	_, err := store.Get(context.Background(), Key([]byte("never stored")))

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestFileStore_Exists(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	key, err := store.Put(ctx, []byte("blob"))
	require.NoError(t, err)

	ok, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, Key([]byte("other")))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_Delete(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	key, err := store.Put(ctx, []byte("blob"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, key))

	ok, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting again is not an error.
	assert.NoError(t, store.Delete(ctx, key))
}

func TestKey_Deterministic(t *testing.T) {
	assert.Equal(t, Key([]byte("abc")), Key([]byte("abc")))
	assert.NotEqual(t, Key([]byte("abc")), Key([]byte("abd")))
	assert.Len(t, Key([]byte("abc")), 64)
}
