package impl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"dashcam/config"
	"dashcam/internal/domain/entity"
	"dashcam/internal/domain/repository"
	"dashcam/internal/errors"
	"dashcam/internal/usecase"

	"go.uber.org/fx"
)

const deepLinkProviderMarker = "oauth"

// deepLinkService implements the DeepLinkUsecase interface.
type deepLinkService struct {
	auth            usecase.AuthUsecase
	prefs           repository.PreferenceRepository
	defaultProvider entity.ProviderType
	logger          *slog.Logger

	// mu allows one exchange at a time; state is readable without it
	mu    sync.Mutex
	state atomic.Int32
}

// DeepLinkServiceParams holds dependencies for DeepLinkService, injected by Fx.
type DeepLinkServiceParams struct {
	fx.In

	Auth   usecase.AuthUsecase
	Prefs  repository.PreferenceRepository
	Config *config.Config
	Logger *slog.Logger
}

// NewDeepLinkService is the constructor for deepLinkService.
func NewDeepLinkService(params DeepLinkServiceParams) usecase.DeepLinkUsecase {
	provider, _ := entity.ParseProviderType(params.Config.OAuth.Provider)

	return &deepLinkService{
		auth:            params.Auth,
		prefs:           params.Prefs,
		defaultProvider: provider,
		logger:          params.Logger,
	}
}

// State returns the current handler state
func (s *deepLinkService) State() usecase.DeepLinkState {
	return usecase.DeepLinkState(s.state.Load())
}

func (s *deepLinkService) setState(state usecase.DeepLinkState) {
	s.state.Store(int32(state))
}

// Resume processes a link left behind by an earlier run
func (s *deepLinkService) Resume(ctx context.Context) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rawURL, err := s.prefs.PendingDeepLink(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrPreferenceNotFound) {
			s.setState(usecase.DeepLinkIdle)

			return nil, nil
		}

		return nil, errors.Wrap(err, "read pending deep link")
	}

	s.logger.Info("Resuming pending deep link")

	return s.process(ctx, rawURL)
}

// Handle persists rawURL before exchanging it so an interrupted exchange can be resumed
func (s *deepLinkService) Handle(ctx context.Context, rawURL string) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.prefs.SetPendingDeepLink(ctx, rawURL); err != nil {
		return nil, errors.Wrap(err, "persist deep link")
	}

	return s.process(ctx, rawURL)
}

// process must be called with mu held
func (s *deepLinkService) process(ctx context.Context, rawURL string) (*entity.Session, error) {
	s.setState(usecase.DeepLinkProcessing)

	provider, code, err := s.parse(rawURL)
	if err != nil {
		// such a link can never succeed, so it is not kept for resume
		if delErr := s.prefs.DeletePendingDeepLink(ctx); delErr != nil {
			s.logger.Warn("Dropping invalid deep link failed", slog.Any("error", delErr))
		}
		s.setState(usecase.DeepLinkIdle)

		return nil, err
	}

	session, err := s.auth.ExchangeCode(ctx, provider, code)
	if err != nil {
		s.setState(usecase.DeepLinkPendingResume)

		return nil, err
	}

	if err := s.prefs.DeletePendingDeepLink(ctx); err != nil {
		// the session is stored; a leftover link only costs one failed retry later
		s.logger.Warn("Clearing handled deep link failed", slog.Any("error", err))
		s.setState(usecase.DeepLinkPendingResume)

		return session, nil
	}

	s.setState(usecase.DeepLinkIdle)

	return session, nil
}

// parse extracts the provider and code from a redirect link
func (s *deepLinkService) parse(rawURL string) (entity.ProviderType, string, error) {
	link, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", "", errors.Wrap(usecase.ErrInvalidDeepLink, err.Error())
	}

	query := link.Query()
	if reason := query.Get("error"); reason != "" {
		return "", "", errors.Wrapf(usecase.ErrInvalidDeepLink, "provider returned %s", reason)
	}

	code := query.Get("code")
	if code == "" {
		return "", "", errors.WithStack(usecase.ErrInvalidDeepLink)
	}

	provider := providerFromLink(link)
	if provider == "" {
		provider = s.defaultProvider
	}
	if provider == "" {
		return "", "", errors.Wrap(usecase.ErrInvalidDeepLink, "no provider in link and none configured")
	}

	return provider, code, nil
}

// providerFromLink returns the segment following "oauth" in host or path, e.g. dashcam://oauth/kakao
func providerFromLink(link *url.URL) entity.ProviderType {
	segments := make([]string, 0, 4)
	if link.Host != "" {
		segments = append(segments, link.Host)
	}
	for _, segment := range strings.Split(link.Path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}

	for i := 0; i < len(segments)-1; i++ {
		if !strings.EqualFold(segments[i], deepLinkProviderMarker) {
			continue
		}
		next := strings.ToLower(segments[i+1])
		if next == "callback" || next == "code-callback" {
			continue
		}
		if provider, ok := entity.ParseProviderType(next); ok {
			return provider
		}
	}

	return ""
}
