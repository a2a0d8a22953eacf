package impl

import (
	"context"
	"log/slog"
	"strings"

	"dashcam/config"
	deliverycontext "dashcam/internal/delivery/context"
	"dashcam/internal/domain/entity"
	domainerrors "dashcam/internal/domain/errors"
	"dashcam/internal/domain/repository"
	"dashcam/internal/domain/service"
	"dashcam/internal/errors"
	"dashcam/internal/usecase"

	"go.uber.org/fx"
)

// reportService implements the ReportUsecase interface.
type reportService struct {
	api          service.BackendAPI
	prefs        repository.PreferenceRepository
	defaultLimit int
	logger       *slog.Logger
}

// ReportServiceParams holds dependencies for ReportService, injected by Fx.
type ReportServiceParams struct {
	fx.In

	API    service.BackendAPI
	Prefs  repository.PreferenceRepository
	Config *config.Config
	Logger *slog.Logger
}

// NewReportService is the constructor for reportService.
func NewReportService(params ReportServiceParams) usecase.ReportUsecase {
	return &reportService{
		api:          params.API,
		prefs:        params.Prefs,
		defaultLimit: params.Config.Reports.DefaultLimit,
		logger:       params.Logger,
	}
}

// ListReports fetches the newest reports up to limit
func (s *reportService) ListReports(ctx context.Context, limit int) ([]entity.ReportSummary, error) {
	if err := requireSession(ctx, s.prefs, "list reports"); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = s.defaultLimit
	}

	return s.api.ListReports(ctx, limit)
}

// GetReport fetches one report
func (s *reportService) GetReport(ctx context.Context, id entity.ReportID) (*entity.ReportDetail, error) {
	if strings.TrimSpace(string(id)) == "" {
		return nil, errors.New("report id is required")
	}
	if err := requireSession(ctx, s.prefs, "get report"); err != nil {
		return nil, err
	}

	return s.api.GetReport(ctx, id)
}

// LoadList folds a list fetch into a view state
func (s *reportService) LoadList(ctx context.Context, limit int) usecase.ViewState {
	reports, err := s.ListReports(ctx, limit)
	if err != nil {
		return s.failure(ctx, "list", err)
	}
	if len(reports) == 0 {
		return usecase.Empty{}
	}

	return usecase.Ready{Reports: reports}
}

// LoadDetail folds a detail fetch into a view state
func (s *reportService) LoadDetail(ctx context.Context, id entity.ReportID) usecase.ViewState {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return s.failure(ctx, "detail", err)
	}

	return usecase.DetailReady{Report: report}
}

func (s *reportService) failure(ctx context.Context, view string, err error) usecase.ViewState {
	if domainerrors.IsUnauthorized(err) {
		return usecase.Unauthenticated{}
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Warn("Report view failed",
		slog.String("view", view),
		slog.String("kind", domainerrors.KindOf(err).String()),
		slog.Any("error", err))

	return usecase.Failed{Reason: domainerrors.UserMessage(err), Err: err}
}
