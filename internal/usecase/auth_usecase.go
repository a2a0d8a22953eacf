package usecase

import (
	"context"

	"dashcam/internal/domain/entity"
)

// AuthUsecase turns provider credentials into a persisted backend session and manages its end
type AuthUsecase interface {
	// LoginWithProvider signs in with the platform's provider and exchanges the resulting token
	LoginWithProvider(ctx context.Context) (*entity.Session, error)

	// ExchangeProviderToken trades a provider access token for a session token and persists both.
	// Storage is untouched when the exchange fails.
	ExchangeProviderToken(ctx context.Context, provider entity.ProviderType, accessToken string) (*entity.Session, error)

	// ExchangeCode trades an authorization code for a session token and persists it
	ExchangeCode(ctx context.Context, provider entity.ProviderType, code string) (*entity.Session, error)

	// Logout removes every stored credential
	Logout(ctx context.Context) error

	// Withdraw deletes the backend account, unlinks the provider and wipes local state
	Withdraw(ctx context.Context) error

	CurrentUser(ctx context.Context) (*entity.User, error)

	// SessionStatus describes the stored session without contacting the backend
	SessionStatus(ctx context.Context) (*entity.SessionInfo, error)
}
