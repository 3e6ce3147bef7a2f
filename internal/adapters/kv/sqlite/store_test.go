package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bnema/dear-my-friend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "store.db")
	store, err := NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "dear-my-friend-view-mode", `"mentor"`))
	require.NoError(t, store.Put(ctx, "dear-my-friend-view-mode", `"apprentice"`))

	got, err := store.Get(ctx, "dear-my-friend-view-mode")
	require.NoError(t, err)
	assert.Equal(t, `"apprentice"`, got)
}

func TestStoreMissingKey(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "absent")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)

	err = store.Delete(context.Background(), "absent")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStoreDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "a", "1"))

	require.NoError(t, store.Delete(ctx, "a"))

	_, err := store.Get(ctx, "a")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, store.Put(context.Background(), "dear-my-friend-tutorial-completed", "true"))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.Get(context.Background(), "dear-my-friend-tutorial-completed")
	require.NoError(t, err)
	assert.Equal(t, "true", got)
}
