package repository

import (
	"context"
	"errors"

	"dashcam/internal/domain/entity"
)

// ErrPreferenceNotFound is returned by typed getters when nothing is stored for the preference
var ErrPreferenceNotFound = errors.New("preference not found")

// PreferenceRepository exposes one typed accessor per persisted key.
//
// Composite updates such as writing a new session (token, provider token, provider) are a
// sequence of single-key writes and are not atomic as a unit: a crash between them can leave a
// session token without its provider token. Readers must tolerate that window.
type PreferenceRepository interface {
	SessionToken(ctx context.Context) (string, error)
	SetSessionToken(ctx context.Context, token string) error
	DeleteSessionToken(ctx context.Context) error

	ProviderToken(ctx context.Context) (string, error)
	SetProviderToken(ctx context.Context, token string) error
	DeleteProviderToken(ctx context.Context) error

	SessionProvider(ctx context.Context) (entity.ProviderType, error)
	SetSessionProvider(ctx context.Context, provider entity.ProviderType) error
	DeleteSessionProvider(ctx context.Context) error

	PendingDeepLink(ctx context.Context) (string, error)
	SetPendingDeepLink(ctx context.Context, rawURL string) error
	DeletePendingDeepLink(ctx context.Context) error

	// AutoDetect defaults to false when unset
	AutoDetect(ctx context.Context) (bool, error)
	SetAutoDetect(ctx context.Context, enabled bool) error

	// Notifications defaults to true when unset
	Notifications(ctx context.Context) (bool, error)
	SetNotifications(ctx context.Context, enabled bool) error

	// NewReportIDs returns an empty slice when unset
	NewReportIDs(ctx context.Context) ([]string, error)
	SetNewReportIDs(ctx context.Context, ids []string) error

	PushTokenMarker(ctx context.Context) (string, error)
	SetPushTokenMarker(ctx context.Context, token string) error
	DeletePushTokenMarker(ctx context.Context) error
}
