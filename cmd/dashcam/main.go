package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"dashcam/config"
	"dashcam/internal/delivery/callback"
	deliverycontext "dashcam/internal/delivery/context"
	"dashcam/internal/domain/repository"
	"dashcam/internal/domain/service"
	"dashcam/internal/errors"
	"dashcam/internal/infra/api"
	"dashcam/internal/infra/auth"
	"dashcam/internal/infra/auth/oauth"
	logs "dashcam/internal/infra/log"
	"dashcam/internal/infra/persistence/preference"
	"dashcam/internal/infra/platform"
	"dashcam/internal/infra/qrcode"
	"dashcam/internal/usecase"
	"dashcam/internal/usecase/impl"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// app is everything a subcommand can reach once the graph is started
type app struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Platform  service.Platform
	QRCode    service.QRCodeService
	Auth      usecase.AuthUsecase
	DeepLinks usecase.DeepLinkUsecase
	Reports   usecase.ReportUsecase
	Uploads   usecase.UploadUsecase
	Devices   usecase.DeviceUsecase

	Out io.Writer `name:"stdout"`
}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, name string, args []string) error {
	cmd, ok := findCommand(name)
	if !ok {
		printUsage(os.Stderr)

		return errors.Errorf("unknown subcommand %q", name)
	}

	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: dashcam %s %s\n\n%s\n\n", cmd.name, cmd.usage, cmd.summary)
		fs.PrintDefaults()
	}
	action := cmd.setup(fs)
	if err := fs.Parse(args); err != nil {
		return errors.Wrapf(err, "parse %s flags", cmd.name)
	}

	var a app
	fxApp := fx.New(
		injectInfra(ctx),
		injectService(),
		injectRepo(),
		injectUsecase(),
		fx.Populate(&a),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			l := &fxevent.SlogLogger{Logger: logger}
			l.UseLogLevel(slog.LevelDebug)

			return l
		}),
	)
	if err := fxApp.Start(ctx); err != nil {
		return errors.Wrap(err, "start")
	}
	defer func() {
		if err := fxApp.Stop(context.Background()); err != nil {
			a.Logger.Warn("Shutdown failed", slog.Any("error", err))
		}
	}()

	ctx = deliverycontext.WithLogger(ctx, a.Logger.With(slog.String("command", cmd.name)))

	if cmd.resumeLinks {
		resumePendingLink(ctx, &a)
	}

	return action(ctx, &a, fs.Args())
}

func injectInfra(ctx context.Context) fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		func() context.Context { return ctx },
		fx.Annotate(
			func() io.Writer { return os.Stdout },
			fx.ResultTags(`name:"stdout"`),
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newQRCodeService,
			auth.NewTokenInspector,
			newPrompter,
			fx.Annotate(
				callback.NewServer,
				fx.As(new(service.RedirectReceiver)),
				fx.ResultTags(`name:"loopback"`),
			),
			fx.Annotate(
				newPasteReceiver,
				fx.ParamTags(``, `name:"loopback"`),
				fx.ResultTags(`name:"paste"`),
			),
			platform.New,
			func(p service.Platform) service.ProviderAuthenticator { return p.Authenticator() },
			api.NewClient,
			api.NewBackendAPI,
		),
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			func(p service.Platform) repository.KeyValueStore { return p.Store() },
			preference.NewPreferenceRepository,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewDeepLinkService,
			impl.NewReportService,
			impl.NewUploadService,
			impl.NewDeviceService,
		),
	)
}

func newQRCodeService(cfg *config.Config) service.QRCodeService {
	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

// newPrompter shows consent URLs on stderr so stdout carries only command output
func newPrompter(qr service.QRCodeService, logger *slog.Logger) oauth.Prompter {
	return callback.NewTerminalPrompter(os.Stderr, qr, logger)
}

func newPasteReceiver(cfg *config.Config, loopback service.RedirectReceiver) service.RedirectReceiver {
	redirectURL := cfg.OAuth.RedirectURL
	if redirectURL == "" {
		redirectURL = loopback.RedirectURL()
	}

	return callback.NewPasteReceiver(os.Stdin, os.Stderr, redirectURL)
}

// resumePendingLink finishes a sign-in interrupted before its code was exchanged
func resumePendingLink(ctx context.Context, a *app) {
	session, err := a.DeepLinks.Resume(ctx)
	if err != nil {
		a.Logger.Warn("Pending sign-in could not be completed", slog.Any("error", err))

		return
	}
	if session != nil {
		fmt.Fprintf(os.Stderr, "Completed pending sign-in with %s\n", session.Provider)
	}
}
