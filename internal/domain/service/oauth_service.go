package service

import (
	"context"
	"net/url"

	"dashcam/internal/domain/entity"
)

// ProviderAuthenticator is the provider SDK capability: it signs the user in with the
// third-party provider and hands back the provider's access token.
type ProviderAuthenticator interface {
	// Provider returns the OAuth provider type
	Provider() entity.ProviderType

	// AccessToken runs the provider sign-in and returns the provider access token
	AccessToken(ctx context.Context) (string, error)

	// AuthorizationURL returns the provider consent URL for the given state
	AuthorizationURL(state string) string

	// Unlink revokes the app's link with the provider account for the given access token
	Unlink(ctx context.Context, accessToken string) error
}

// RedirectReceiver captures one OAuth redirect addressed to this client
type RedirectReceiver interface {
	// RedirectURL is the address the provider must redirect to
	RedirectURL() string

	// Await blocks until a redirect arrives or ctx ends and returns the full redirect URL
	Await(ctx context.Context) (*url.URL, error)
}
