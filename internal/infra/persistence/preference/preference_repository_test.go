package preference

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"dashcam/internal/domain/entity"
	"dashcam/internal/domain/repository"
	"dashcam/internal/infra/storage"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

type repoFixtures struct {
	repo  repository.PreferenceRepository
	store repository.KeyValueStore
}

func createTestRepository(t *testing.T) repoFixtures {
	store := storage.NewBucketStore(memblob.OpenBucket(nil), slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = store.Close() })

	return repoFixtures{
		repo:  NewPreferenceRepository(store),
		store: store,
	}
}

func TestPreferenceRepository_SessionToken(t *testing.T) {
	fx := createTestRepository(t)
	ctx := context.Background()

	_, err := fx.repo.SessionToken(ctx)
	assert.True(t, errors.Is(err, repository.ErrPreferenceNotFound))

	require.NoError(t, fx.repo.SetSessionToken(ctx, "session-1"))
	token, err := fx.repo.SessionToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "session-1", token)

	raw, err := fx.store.Get(ctx, KeySessionToken)
	require.NoError(t, err)
	assert.Equal(t, "session-1", raw)

	require.NoError(t, fx.repo.DeleteSessionToken(ctx))
	_, err = fx.repo.SessionToken(ctx)
	assert.True(t, errors.Is(err, repository.ErrPreferenceNotFound))
}

func TestPreferenceRepository_SessionProvider(t *testing.T) {
	fx := createTestRepository(t)
	ctx := context.Background()

	require.NoError(t, fx.repo.SetSessionProvider(ctx, entity.ProviderTypeKakao))
	provider, err := fx.repo.SessionProvider(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.ProviderTypeKakao, provider)
}

func TestPreferenceRepository_FlagDefaults(t *testing.T) {
	fx := createTestRepository(t)
	ctx := context.Background()

	autoDetect, err := fx.repo.AutoDetect(ctx)
	require.NoError(t, err)
	assert.False(t, autoDetect)

	notifications, err := fx.repo.Notifications(ctx)
	require.NoError(t, err)
	assert.True(t, notifications)

	require.NoError(t, fx.repo.SetAutoDetect(ctx, true))
	require.NoError(t, fx.repo.SetNotifications(ctx, false))

	autoDetect, err = fx.repo.AutoDetect(ctx)
	require.NoError(t, err)
	assert.True(t, autoDetect)

	notifications, err = fx.repo.Notifications(ctx)
	require.NoError(t, err)
	assert.False(t, notifications)
}

func TestPreferenceRepository_UnparsableFlagFallsBack(t *testing.T) {
	fx := createTestRepository(t)
	ctx := context.Background()

	require.NoError(t, fx.store.Set(ctx, KeyNotifications, "maybe"))
	notifications, err := fx.repo.Notifications(ctx)
	require.NoError(t, err)
	assert.True(t, notifications)
}

func TestPreferenceRepository_NewReportIDs(t *testing.T) {
	fx := createTestRepository(t)
	ctx := context.Background()

	ids, err := fx.repo.NewReportIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, fx.repo.SetNewReportIDs(ctx, []string{"r1", "r2"}))

	raw, err := fx.store.Get(ctx, KeyNewReportIDs)
	require.NoError(t, err)
	assert.JSONEq(t, `["r1","r2"]`, raw)

	ids, err = fx.repo.NewReportIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2"}, ids)

	require.NoError(t, fx.repo.SetNewReportIDs(ctx, nil))
	raw, err = fx.store.Get(ctx, KeyNewReportIDs)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestPreferenceRepository_NewReportIDs_Corrupt(t *testing.T) {
	fx := createTestRepository(t)
	ctx := context.Background()

	require.NoError(t, fx.store.Set(ctx, KeyNewReportIDs, "not json"))
	_, err := fx.repo.NewReportIDs(ctx)
	assert.Error(t, err)
}

func TestPreferenceRepository_PendingDeepLinkAndMarker(t *testing.T) {
	fx := createTestRepository(t)
	ctx := context.Background()

	require.NoError(t, fx.repo.SetPendingDeepLink(ctx, "dashcam://oauth/kakao?code=abc"))
	link, err := fx.repo.PendingDeepLink(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dashcam://oauth/kakao?code=abc", link)
	require.NoError(t, fx.repo.DeletePendingDeepLink(ctx))
	_, err = fx.repo.PendingDeepLink(ctx)
	assert.True(t, errors.Is(err, repository.ErrPreferenceNotFound))

	require.NoError(t, fx.repo.SetPushTokenMarker(ctx, "fcm-1"))
	marker, err := fx.repo.PushTokenMarker(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fcm-1", marker)
}
