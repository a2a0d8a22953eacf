package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"dashcam/config"
	"dashcam/internal/domain/repository"
	"dashcam/internal/infra/persistence/preference"
	"dashcam/internal/infra/storage"

	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.OAuth.Provider = "kakao"
	cfg.Reports.DefaultLimit = 20

	return cfg
}

// newTestPrefs returns a preference repository over an in-memory bucket
func newTestPrefs(t *testing.T) repository.PreferenceRepository {
	t.Helper()

	store := storage.NewBucketStore(memblob.OpenBucket(nil), newDiscardLogger())
	t.Cleanup(func() { _ = store.Close() })

	return preference.NewPreferenceRepository(store)
}

func signIn(t *testing.T, prefs repository.PreferenceRepository, token string) {
	t.Helper()

	require.NoError(t, prefs.SetSessionToken(context.Background(), token))
}

func requireAbsent(t *testing.T, get func(context.Context) (string, error)) {
	t.Helper()

	_, err := get(context.Background())
	require.ErrorIs(t, err, repository.ErrPreferenceNotFound)
}
