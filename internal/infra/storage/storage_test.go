package storage

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"dashcam/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func newMemStore(t *testing.T) repository.KeyValueStore {
	t.Helper()

	store := NewBucketStore(memblob.OpenBucket(nil), slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestBlobStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(t)

	_, err := store.Get(ctx, "session_token")
	assert.True(t, errors.Is(err, repository.ErrKeyNotFound))

	require.NoError(t, store.Set(ctx, "session_token", "abc"))
	got, err := store.Get(ctx, "session_token")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	require.NoError(t, store.Set(ctx, "session_token", "def"))
	got, err = store.Get(ctx, "session_token")
	require.NoError(t, err)
	assert.Equal(t, "def", got)

	require.NoError(t, store.Delete(ctx, "session_token"))
	_, err = store.Get(ctx, "session_token")
	assert.True(t, errors.Is(err, repository.ErrKeyNotFound))

	// deleting again is fine
	require.NoError(t, store.Delete(ctx, "session_token"))
}

func TestNewBlobStore_FileBucketCreatesDir(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "prefs")

	store, err := NewBlobStore(ctx, "file://"+filepath.ToSlash(dir), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(ctx, "auto_detect_enabled", "true"))
	got, err := store.Get(ctx, "auto_detect_enabled")
	require.NoError(t, err)
	assert.Equal(t, "true", got)
}

func TestSealedStore_RoundTripAndAtRestEncryption(t *testing.T) {
	ctx := context.Background()
	inner := newMemStore(t)

	sealed, err := NewSealedStore(inner, []byte("passphrase"))
	require.NoError(t, err)

	require.NoError(t, sealed.Set(ctx, "session_token", "secret-token"))

	raw, err := inner.Get(ctx, "session_token")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(raw, sealedPrefix))
	assert.NotContains(t, raw, "secret-token")

	got, err := sealed.Get(ctx, "session_token")
	require.NoError(t, err)
	assert.Equal(t, "secret-token", got)
}

func TestSealedStore_RejectsForeignKeyAndSwappedValues(t *testing.T) {
	ctx := context.Background()
	inner := newMemStore(t)

	sealed, err := NewSealedStore(inner, []byte("passphrase"))
	require.NoError(t, err)
	require.NoError(t, sealed.Set(ctx, "session_token", "secret-token"))

	other, err := NewSealedStore(inner, []byte("another passphrase"))
	require.NoError(t, err)
	_, err = other.Get(ctx, "session_token")
	assert.True(t, errors.Is(err, ErrSealedValueCorrupt))

	raw, err := inner.Get(ctx, "session_token")
	require.NoError(t, err)
	require.NoError(t, inner.Set(ctx, "provider_access_token", raw))
	_, err = sealed.Get(ctx, "provider_access_token")
	assert.True(t, errors.Is(err, ErrSealedValueCorrupt))
}

func TestSealedStore_MissingKeyPassesThrough(t *testing.T) {
	sealed, err := NewSealedStore(newMemStore(t), []byte("k"))
	require.NoError(t, err)

	_, err = sealed.Get(context.Background(), "nothing")
	assert.True(t, errors.Is(err, repository.ErrKeyNotFound))
}

func TestNewSealedStore_EmptySecret(t *testing.T) {
	_, err := NewSealedStore(newMemStore(t), nil)
	assert.Error(t, err)
}

func TestLoadOrCreateKeyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "store.key")

	first, err := LoadOrCreateKeyFile(path)
	require.NoError(t, err)
	assert.Len(t, first, 32)

	second, err := LoadOrCreateKeyFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
