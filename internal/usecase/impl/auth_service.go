// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "dashcam/internal/delivery/context"
	"dashcam/internal/domain/entity"
	domainerrors "dashcam/internal/domain/errors"
	"dashcam/internal/domain/repository"
	"dashcam/internal/domain/service"
	"dashcam/internal/errors"
	"dashcam/internal/usecase"

	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	api           service.BackendAPI
	prefs         repository.PreferenceRepository
	authenticator service.ProviderAuthenticator
	inspector     service.TokenInspector
	logger        *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	API           service.BackendAPI
	Prefs         repository.PreferenceRepository
	Authenticator service.ProviderAuthenticator
	Inspector     service.TokenInspector
	Logger        *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		api:           params.API,
		prefs:         params.Prefs,
		authenticator: params.Authenticator,
		inspector:     params.Inspector,
		logger:        params.Logger,
	}
}

func (s *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// LoginWithProvider runs the provider sign-in, then the token exchange
func (s *authService) LoginWithProvider(ctx context.Context) (*entity.Session, error) {
	accessToken, err := s.authenticator.AccessToken(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "provider sign-in failed")
	}

	return s.ExchangeProviderToken(ctx, s.authenticator.Provider(), accessToken)
}

// ExchangeProviderToken trades accessToken for a session token. Nothing is written unless the backend
// returned a token.
func (s *authService) ExchangeProviderToken(ctx context.Context, provider entity.ProviderType, accessToken string) (*entity.Session, error) {
	if provider == "" {
		return nil, errors.New("provider is required")
	}
	if strings.TrimSpace(accessToken) == "" {
		return nil, errors.New("provider access token is empty")
	}

	token, err := s.api.ExchangeProviderToken(ctx, provider, accessToken)
	if err != nil {
		s.log(ctx).Warn("Provider token exchange failed",
			slog.String("provider", provider.String()),
			slog.Any("error", err))

		return nil, err
	}

	session := &entity.Session{Token: token, ProviderToken: accessToken, Provider: provider}
	if err := s.persist(ctx, session); err != nil {
		return nil, err
	}

	s.log(ctx).Info("Signed in", slog.String("provider", provider.String()))

	return session, nil
}

// ExchangeCode trades an authorization code for a session token
func (s *authService) ExchangeCode(ctx context.Context, provider entity.ProviderType, code string) (*entity.Session, error) {
	if provider == "" {
		return nil, errors.New("provider is required")
	}
	if strings.TrimSpace(code) == "" {
		return nil, errors.New("authorization code is empty")
	}

	token, err := s.api.ExchangeAuthorizationCode(ctx, provider, code)
	if err != nil {
		s.log(ctx).Warn("Authorization code exchange failed",
			slog.String("provider", provider.String()),
			slog.Any("error", err))

		return nil, err
	}

	session := &entity.Session{Token: token, Provider: provider}
	if err := s.persist(ctx, session); err != nil {
		return nil, err
	}

	s.log(ctx).Info("Signed in with authorization code", slog.String("provider", provider.String()))

	return session, nil
}

// persist writes the session token first so a partial write still leaves a usable session
func (s *authService) persist(ctx context.Context, session *entity.Session) error {
	if err := s.prefs.SetSessionToken(ctx, session.Token); err != nil {
		return errors.Wrap(err, "store session token")
	}

	if session.ProviderToken != "" {
		if err := s.prefs.SetProviderToken(ctx, session.ProviderToken); err != nil {
			return errors.Wrap(err, "store provider token")
		}
	} else if err := s.prefs.DeleteProviderToken(ctx); err != nil {
		return errors.Wrap(err, "drop stale provider token")
	}

	if err := s.prefs.SetSessionProvider(ctx, session.Provider); err != nil {
		return errors.Wrap(err, "store session provider")
	}

	return nil
}

// Logout deletes every credential key. Each delete is attempted; the first failure is returned.
func (s *authService) Logout(ctx context.Context) error {
	err := errors.First(
		s.prefs.DeleteSessionToken(ctx),
		s.prefs.DeleteProviderToken(ctx),
		s.prefs.DeleteSessionProvider(ctx),
	)
	if err != nil {
		return errors.Wrap(err, "clear credentials")
	}

	s.log(ctx).Info("Signed out")

	return nil
}

// Withdraw deletes the account. Local state is only wiped after the backend accepted the deletion.
func (s *authService) Withdraw(ctx context.Context) error {
	if err := requireSession(ctx, s.prefs, "withdraw"); err != nil {
		return err
	}

	if err := s.api.DeleteAccount(ctx); err != nil {
		return err
	}

	s.unlinkProvider(ctx)

	err := errors.First(
		s.prefs.DeleteSessionToken(ctx),
		s.prefs.DeleteProviderToken(ctx),
		s.prefs.DeleteSessionProvider(ctx),
		s.prefs.DeletePushTokenMarker(ctx),
		s.prefs.SetNewReportIDs(ctx, []string{}),
	)
	if err != nil {
		return errors.Wrap(err, "clear local state after withdrawal")
	}

	s.log(ctx).Info("Account withdrawn")

	return nil
}

// unlinkProvider is best effort: the account is already gone on the backend
func (s *authService) unlinkProvider(ctx context.Context) {
	logger := s.log(ctx)

	providerToken, err := s.prefs.ProviderToken(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrPreferenceNotFound) {
			logger.Warn("Reading provider token failed, skipping unlink", slog.Any("error", err))
		}

		return
	}

	provider, err := s.prefs.SessionProvider(ctx)
	if err == nil && provider != s.authenticator.Provider() {
		logger.Debug("Session provider differs from configured provider, skipping unlink",
			slog.String("session_provider", provider.String()))

		return
	}

	if err := s.authenticator.Unlink(ctx, providerToken); err != nil {
		logger.Warn("Provider unlink failed", slog.Any("error", err))
	}
}

// CurrentUser fetches the signed-in user's profile
func (s *authService) CurrentUser(ctx context.Context) (*entity.User, error) {
	if err := requireSession(ctx, s.prefs, "current user"); err != nil {
		return nil, err
	}

	return s.api.CurrentUser(ctx)
}

// SessionStatus reports what is known locally about the session
func (s *authService) SessionStatus(ctx context.Context) (*entity.SessionInfo, error) {
	token, err := s.prefs.SessionToken(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrPreferenceNotFound) {
			return &entity.SessionInfo{}, nil
		}

		return nil, errors.Wrap(err, "read session token")
	}

	info := s.inspector.Inspect(token)

	provider, err := s.prefs.SessionProvider(ctx)
	switch {
	case err == nil:
		info.Provider = provider
	case !errors.Is(err, repository.ErrPreferenceNotFound):
		return nil, errors.Wrap(err, "read session provider")
	}

	return &info, nil
}

// requireSession fails with a missing-credential error when no session token is stored
func requireSession(ctx context.Context, prefs repository.PreferenceRepository, op string) error {
	token, err := prefs.SessionToken(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrPreferenceNotFound) {
			return domainerrors.NewMissingCredentialError(op)
		}

		return errors.Wrap(err, "read session token")
	}
	if token == "" {
		return domainerrors.NewMissingCredentialError(op)
	}

	return nil
}
