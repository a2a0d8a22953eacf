// Package platform selects the target-specific capabilities: how the provider sign-in is
// completed and where preferences are stored.
package platform

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"dashcam/config"
	"dashcam/internal/domain/repository"
	"dashcam/internal/domain/service"
	"dashcam/internal/errors"
	"dashcam/internal/infra/auth/oauth"
	"dashcam/internal/infra/storage"

	"go.uber.org/fx"
)

const (
	// KindNative listens for the redirect on loopback and seals the store
	KindNative = "native"
	// KindWeb takes a pasted redirect and keeps the store as plain blobs
	KindWeb = "web"
)

// Params holds dependencies for New, injected by Fx
type Params struct {
	fx.In
	fx.Lifecycle

	Context          context.Context
	Config           *config.Config
	Logger           *slog.Logger
	Prompter         oauth.Prompter
	LoopbackReceiver service.RedirectReceiver `name:"loopback"`
	PasteReceiver    service.RedirectReceiver `name:"paste"`
	HTTPClient       *http.Client             `name:"oauth" optional:"true"`
}

// Options describes one platform build without Fx
type Options struct {
	Config   *config.Config
	Logger   *slog.Logger
	Prompter oauth.Prompter
	// Receiver completes the redirect for the selected kind
	Receiver   service.RedirectReceiver
	HTTPClient *http.Client
}

type platform struct {
	name          string
	authenticator service.ProviderAuthenticator
	store         repository.KeyValueStore
}

// New builds the platform named by platform.kind and closes its store on stop
func New(params Params) (service.Platform, error) {
	receiver := params.LoopbackReceiver
	if strings.EqualFold(params.Config.Platform.Kind, KindWeb) {
		receiver = params.PasteReceiver
	}

	p, err := Build(params.Context, Options{
		Config:     params.Config,
		Logger:     params.Logger,
		Prompter:   params.Prompter,
		Receiver:   receiver,
		HTTPClient: params.HTTPClient,
	})
	if err != nil {
		return nil, err
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return p.Store().Close()
		},
	})

	return p, nil
}

// Build opens the store and authenticator for opts.Config.Platform.Kind
func Build(ctx context.Context, opts Options) (service.Platform, error) {
	kind := strings.ToLower(strings.TrimSpace(opts.Config.Platform.Kind))

	switch kind {
	case KindNative, KindWeb:
	default:
		return nil, errors.Errorf("unknown platform kind %q", opts.Config.Platform.Kind)
	}

	store, err := storage.NewBlobStore(ctx, opts.Config.Store.URL, opts.Logger)
	if err != nil {
		return nil, err
	}

	if kind == KindNative {
		secret, err := storeSecret(opts.Config.Store)
		if err != nil {
			_ = store.Close()

			return nil, err
		}

		store, err = storage.NewSealedStore(store, secret)
		if err != nil {
			return nil, err
		}
	}

	authenticator, err := oauth.NewAuthenticator(opts.Config.OAuth, opts.Receiver, opts.Prompter, opts.HTTPClient, opts.Logger)
	if err != nil {
		_ = store.Close()

		return nil, err
	}

	opts.Logger.Debug("Platform selected", slog.String("kind", kind), slog.String("provider", authenticator.Provider().String()))

	return &platform{
		name:          kind,
		authenticator: authenticator,
		store:         store,
	}, nil
}

func storeSecret(cfg config.StoreConfig) ([]byte, error) {
	if cfg.EncryptionKey != "" {
		return []byte(cfg.EncryptionKey), nil
	}
	if cfg.KeyFile == "" {
		return nil, errors.New("native platform needs store.encryptionKey or store.keyFile")
	}

	return storage.LoadOrCreateKeyFile(cfg.KeyFile)
}

// Name returns the platform kind
func (p *platform) Name() string {
	return p.name
}

// Authenticator returns the provider sign-in capability
func (p *platform) Authenticator() service.ProviderAuthenticator {
	return p.authenticator
}

// Store returns the preference key-value store
func (p *platform) Store() repository.KeyValueStore {
	return p.store
}
