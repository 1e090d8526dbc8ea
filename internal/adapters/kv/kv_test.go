package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/SscSPs/rjb_tranz/internal/core/ports/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, store repositories.KVStore) {
	t.Helper()
	ctx := context.Background()

	_, found, err := store.Get(ctx, "kv:settings")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "kv:settings", `{"autoRefresh":true}`))
	require.NoError(t, store.Set(ctx, "kv:settings", `{"autoRefresh":false}`))
	v, found, err := store.Get(ctx, "kv:settings")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"autoRefresh":false}`, v)

	require.NoError(t, store.Delete(ctx, "kv:settings"))
	require.NoError(t, store.Delete(ctx, "kv:missing"))
	_, found, err = store.Get(ctx, "kv:settings")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kv.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)
	exerciseStore(t, store)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), "kv:wizard:abc", `{"step":"review"}`))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	v, found, err := reopened.Get(context.Background(), "kv:wizard:abc")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"step":"review"}`, v)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err := NewFileStore(path)
	assert.Error(t, err)
}
