// Package oauth signs the user in with a third-party provider through the authorization code flow.
package oauth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"dashcam/config"
	"dashcam/internal/domain/entity"
	"dashcam/internal/domain/service"
	"dashcam/internal/errors"

	"golang.org/x/oauth2"
)

var (
	// ErrAuthorizationDenied is returned when the provider redirects back with an error parameter
	ErrAuthorizationDenied = errors.New("authorization denied by provider")
	// ErrStateMismatch is returned when the redirect carries a state this client did not issue
	ErrStateMismatch = errors.New("oauth state mismatch")
	// ErrMissingCode is returned when the redirect has no authorization code
	ErrMissingCode = errors.New("authorization code missing from redirect")
	// ErrEmptyAccessToken is returned when the provider token endpoint answers without a token
	ErrEmptyAccessToken = errors.New("provider returned an empty access token")
)

// Prompter shows the consent URL to the user
type Prompter interface {
	PromptAuthorization(ctx context.Context, authURL string) error
}

type endpoint struct {
	auth, token, unlink string
}

var knownEndpoints = map[entity.ProviderType]endpoint{
	entity.ProviderTypeKakao: {
		auth:   "https://kauth.kakao.com/oauth/authorize",
		token:  "https://kauth.kakao.com/oauth/token",
		unlink: "https://kapi.kakao.com/v1/user/unlink",
	},
	entity.ProviderTypeGoogle: {
		auth:  "https://accounts.google.com/o/oauth2/v2/auth",
		token: "https://oauth2.googleapis.com/token",
	},
	entity.ProviderTypeNaver: {
		auth:  "https://nid.naver.com/oauth2.0/authorize",
		token: "https://nid.naver.com/oauth2.0/token",
	},
}

// Authenticator runs the code flow: show consent URL, wait for the redirect, exchange the code.
// The redirect source decides the platform flavour (loopback server or pasted URL).
type Authenticator struct {
	provider   entity.ProviderType
	oauth      *oauth2.Config
	unlinkURL  string
	receiver   service.RedirectReceiver
	prompter   Prompter
	httpClient *http.Client
	logger     *slog.Logger
}

// NewAuthenticator builds an Authenticator from the oauth section of the config.
// Endpoints left empty fall back to the provider's well-known addresses.
func NewAuthenticator(
	cfg config.OAuthConfig,
	receiver service.RedirectReceiver,
	prompter Prompter,
	httpClient *http.Client,
	logger *slog.Logger,
) (*Authenticator, error) {
	provider, ok := entity.ParseProviderType(cfg.Provider)
	if !ok {
		return nil, errors.Errorf("invalid oauth provider %q", cfg.Provider)
	}

	known := knownEndpoints[provider]
	authURL := firstNonEmpty(cfg.AuthURL, known.auth)
	tokenURL := firstNonEmpty(cfg.TokenURL, known.token)
	if authURL == "" || tokenURL == "" {
		return nil, errors.Errorf("oauth endpoints for provider %q must be configured", provider)
	}

	redirectURL := cfg.RedirectURL
	if redirectURL == "" && receiver != nil {
		redirectURL = receiver.RedirectURL()
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Authenticator{
		provider: provider,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
			RedirectURL: redirectURL,
			Scopes:      cfg.Scopes,
		},
		unlinkURL:  firstNonEmpty(cfg.UnlinkURL, known.unlink),
		receiver:   receiver,
		prompter:   prompter,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Provider returns the configured provider
func (a *Authenticator) Provider() entity.ProviderType {
	return a.provider
}

// AuthorizationURL returns the consent URL carrying state
func (a *Authenticator) AuthorizationURL(state string) string {
	return a.oauth.AuthCodeURL(state)
}

// AccessToken drives one sign-in and returns the provider access token
func (a *Authenticator) AccessToken(ctx context.Context) (string, error) {
	if a.receiver == nil || a.prompter == nil {
		return "", errors.New("authenticator has no redirect receiver")
	}

	state, err := GenerateState()
	if err != nil {
		return "", err
	}

	if err := a.prompter.PromptAuthorization(ctx, a.AuthorizationURL(state)); err != nil {
		return "", errors.Wrap(err, "prompt authorization")
	}

	redirect, err := a.receiver.Await(ctx)
	if err != nil {
		return "", errors.Wrap(err, "await oauth redirect")
	}

	code, err := CodeFromRedirect(redirect, state)
	if err != nil {
		return "", err
	}

	token, err := a.oauth.Exchange(context.WithValue(ctx, oauth2.HTTPClient, a.httpClient), code)
	if err != nil {
		return "", errors.Wrapf(err, "exchange %s authorization code", a.provider)
	}
	if token.AccessToken == "" {
		return "", errors.WithStack(ErrEmptyAccessToken)
	}

	a.logger.Info("Provider sign-in completed", slog.String("provider", string(a.provider)))

	return token.AccessToken, nil
}

// Unlink asks the provider to drop the app link for accessToken. Providers without an unlink
// endpoint are a no-op.
func (a *Authenticator) Unlink(ctx context.Context, accessToken string) error {
	if a.unlinkURL == "" {
		a.logger.Debug("Provider has no unlink endpoint", slog.String("provider", string(a.provider)))

		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.unlinkURL, nil)
	if err != nil {
		return errors.Wrap(err, "build unlink request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "unlink %s account", a.provider)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return errors.Errorf("unlink %s account failed with status %d: %s", a.provider, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}

// CodeFromRedirect validates a provider redirect and extracts its authorization code.
// An empty expectedState skips the state check.
func CodeFromRedirect(redirect *url.URL, expectedState string) (string, error) {
	if redirect == nil {
		return "", errors.WithStack(ErrMissingCode)
	}

	query := redirect.Query()
	if reason := query.Get("error"); reason != "" {
		if desc := query.Get("error_description"); desc != "" {
			reason += ": " + desc
		}

		return "", errors.Wrap(ErrAuthorizationDenied, reason)
	}

	if expectedState != "" && query.Get("state") != expectedState {
		return "", errors.WithStack(ErrStateMismatch)
	}

	code := query.Get("code")
	if code == "" {
		return "", errors.WithStack(ErrMissingCode)
	}

	return code, nil
}

// GenerateState returns a random hex state value for CSRF protection
func GenerateState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "generate oauth state")
	}

	return hex.EncodeToString(buf), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}
