// Package preference maps typed preferences onto a flat key-value store.
package preference

import (
	"context"
	"encoding/json"
	"strconv"

	"dashcam/internal/domain/entity"
	"dashcam/internal/domain/repository"
	"dashcam/internal/errors"
)

// Keys persisted in the store. They are part of the on-disk format.
const (
	KeySessionToken    = "session_token"
	KeyProviderToken   = "provider_access_token"
	KeySessionProvider = "session_provider"
	KeyPendingDeepLink = "pending_deep_link"
	KeyAutoDetect      = "auto_detect_enabled"
	KeyNotifications   = "notifications_enabled"
	KeyNewReportIDs    = "new_report_ids"
	KeyPushTokenMarker = "fcm_registered_token"
)

const (
	defaultAutoDetect    = false
	defaultNotifications = true
)

type preferenceRepository struct {
	store repository.KeyValueStore
}

// NewPreferenceRepository creates a typed preference repository over store
func NewPreferenceRepository(store repository.KeyValueStore) repository.PreferenceRepository {
	return &preferenceRepository{store: store}
}

func (r *preferenceRepository) getString(ctx context.Context, key string) (string, error) {
	value, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return "", repository.ErrPreferenceNotFound
		}

		return "", errors.Wrapf(err, "get %s", key)
	}

	return value, nil
}

func (r *preferenceRepository) setString(ctx context.Context, key, value string) error {
	return errors.Wrapf(r.store.Set(ctx, key, value), "set %s", key)
}

func (r *preferenceRepository) delete(ctx context.Context, key string) error {
	return errors.Wrapf(r.store.Delete(ctx, key), "delete %s", key)
}

func (r *preferenceRepository) getBool(ctx context.Context, key string, fallback bool) (bool, error) {
	value, err := r.getString(ctx, key)
	if errors.Is(err, repository.ErrPreferenceNotFound) {
		return fallback, nil
	}
	if err != nil {
		return fallback, err
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		// unreadable flags fall back rather than wedge the caller
		return fallback, nil //nolint:nilerr
	}

	return parsed, nil
}

func (r *preferenceRepository) SessionToken(ctx context.Context) (string, error) {
	return r.getString(ctx, KeySessionToken)
}

func (r *preferenceRepository) SetSessionToken(ctx context.Context, token string) error {
	return r.setString(ctx, KeySessionToken, token)
}

func (r *preferenceRepository) DeleteSessionToken(ctx context.Context) error {
	return r.delete(ctx, KeySessionToken)
}

func (r *preferenceRepository) ProviderToken(ctx context.Context) (string, error) {
	return r.getString(ctx, KeyProviderToken)
}

func (r *preferenceRepository) SetProviderToken(ctx context.Context, token string) error {
	return r.setString(ctx, KeyProviderToken, token)
}

func (r *preferenceRepository) DeleteProviderToken(ctx context.Context) error {
	return r.delete(ctx, KeyProviderToken)
}

func (r *preferenceRepository) SessionProvider(ctx context.Context) (entity.ProviderType, error) {
	value, err := r.getString(ctx, KeySessionProvider)
	if err != nil {
		return "", err
	}

	return entity.ProviderType(value), nil
}

func (r *preferenceRepository) SetSessionProvider(ctx context.Context, provider entity.ProviderType) error {
	return r.setString(ctx, KeySessionProvider, provider.String())
}

func (r *preferenceRepository) DeleteSessionProvider(ctx context.Context) error {
	return r.delete(ctx, KeySessionProvider)
}

func (r *preferenceRepository) PendingDeepLink(ctx context.Context) (string, error) {
	return r.getString(ctx, KeyPendingDeepLink)
}

func (r *preferenceRepository) SetPendingDeepLink(ctx context.Context, rawURL string) error {
	return r.setString(ctx, KeyPendingDeepLink, rawURL)
}

func (r *preferenceRepository) DeletePendingDeepLink(ctx context.Context) error {
	return r.delete(ctx, KeyPendingDeepLink)
}

func (r *preferenceRepository) AutoDetect(ctx context.Context) (bool, error) {
	return r.getBool(ctx, KeyAutoDetect, defaultAutoDetect)
}

func (r *preferenceRepository) SetAutoDetect(ctx context.Context, enabled bool) error {
	return r.setString(ctx, KeyAutoDetect, strconv.FormatBool(enabled))
}

func (r *preferenceRepository) Notifications(ctx context.Context) (bool, error) {
	return r.getBool(ctx, KeyNotifications, defaultNotifications)
}

func (r *preferenceRepository) SetNotifications(ctx context.Context, enabled bool) error {
	return r.setString(ctx, KeyNotifications, strconv.FormatBool(enabled))
}

func (r *preferenceRepository) NewReportIDs(ctx context.Context) ([]string, error) {
	value, err := r.getString(ctx, KeyNewReportIDs)
	if errors.Is(err, repository.ErrPreferenceNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	ids := []string{}
	if err := json.Unmarshal([]byte(value), &ids); err != nil {
		return nil, errors.Wrapf(err, "decode %s", KeyNewReportIDs)
	}

	return ids, nil
}

func (r *preferenceRepository) SetNewReportIDs(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}

	data, err := json.Marshal(ids)
	if err != nil {
		return errors.Wrapf(err, "encode %s", KeyNewReportIDs)
	}

	return r.setString(ctx, KeyNewReportIDs, string(data))
}

func (r *preferenceRepository) PushTokenMarker(ctx context.Context) (string, error) {
	return r.getString(ctx, KeyPushTokenMarker)
}

func (r *preferenceRepository) SetPushTokenMarker(ctx context.Context, token string) error {
	return r.setString(ctx, KeyPushTokenMarker, token)
}

func (r *preferenceRepository) DeletePushTokenMarker(ctx context.Context) error {
	return r.delete(ctx, KeyPushTokenMarker)
}
