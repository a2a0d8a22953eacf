package impl

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"dashcam/internal/domain/entity"
	"dashcam/internal/domain/repository"
	"dashcam/internal/domain/service"
	"dashcam/internal/errors"
	"dashcam/internal/usecase"

	"go.uber.org/fx"
)

// deviceService implements the DeviceUsecase interface.
type deviceService struct {
	api    service.BackendAPI
	prefs  repository.PreferenceRepository
	logger *slog.Logger
}

// DeviceServiceParams holds dependencies for DeviceService, injected by Fx.
type DeviceServiceParams struct {
	fx.In

	API    service.BackendAPI
	Prefs  repository.PreferenceRepository
	Logger *slog.Logger
}

// NewDeviceService creates a new device service instance
func NewDeviceService(params DeviceServiceParams) usecase.DeviceUsecase {
	return &deviceService{
		api:    params.API,
		prefs:  params.Prefs,
		logger: params.Logger,
	}
}

// RegisterPushToken registers token once; repeated calls with the same token are no-ops
func (s *deviceService) RegisterPushToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("push token is empty")
	}
	if err := requireSession(ctx, s.prefs, "register push token"); err != nil {
		return err
	}

	marker, err := s.prefs.PushTokenMarker(ctx)
	switch {
	case err == nil && marker == token:
		s.logger.Debug("Push token already registered")

		return nil
	case err != nil && !errors.Is(err, repository.ErrPreferenceNotFound):
		return errors.Wrap(err, "read push token marker")
	}

	if err := s.api.RegisterPushToken(ctx, token); err != nil {
		return err
	}

	if err := s.prefs.SetPushTokenMarker(ctx, token); err != nil {
		return errors.Wrap(err, "store push token marker")
	}

	s.logger.Info("Push token registered")

	return nil
}

// HandlePush adds the pushed report id to the inbox
func (s *deviceService) HandlePush(ctx context.Context, data map[string]string) (bool, error) {
	id := strings.TrimSpace(data[usecase.PushDataReportID])
	if id == "" {
		return false, nil
	}

	enabled, err := s.prefs.Notifications(ctx)
	if err != nil {
		return false, errors.Wrap(err, "read notification preference")
	}
	if !enabled {
		s.logger.Debug("Notifications disabled, ignoring push", slog.String("report_id", id))

		return false, nil
	}

	ids, err := s.prefs.NewReportIDs(ctx)
	if err != nil {
		return false, errors.Wrap(err, "read new reports")
	}
	if slices.Contains(ids, id) {
		return false, nil
	}

	if err := s.prefs.SetNewReportIDs(ctx, append(ids, id)); err != nil {
		return false, errors.Wrap(err, "store new reports")
	}

	return true, nil
}

// NewReports returns report ids that arrived by push and were not opened yet
func (s *deviceService) NewReports(ctx context.Context) ([]string, error) {
	ids, err := s.prefs.NewReportIDs(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "read new reports")
	}

	return ids, nil
}

// AcknowledgeReport removes id from the inbox
func (s *deviceService) AcknowledgeReport(ctx context.Context, id entity.ReportID) error {
	ids, err := s.prefs.NewReportIDs(ctx)
	if err != nil {
		return errors.Wrap(err, "read new reports")
	}

	remaining := slices.DeleteFunc(ids, func(v string) bool { return v == string(id) })

	return errors.Wrap(s.prefs.SetNewReportIDs(ctx, remaining), "store new reports")
}

// Preferences returns the local toggles with their defaults applied
func (s *deviceService) Preferences(ctx context.Context) (*entity.Preferences, error) {
	autoDetect, err := s.prefs.AutoDetect(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "read auto-detect preference")
	}

	notifications, err := s.prefs.Notifications(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "read notification preference")
	}

	return &entity.Preferences{AutoDetect: autoDetect, Notifications: notifications}, nil
}

// SetAutoDetect stores the auto-detect toggle
func (s *deviceService) SetAutoDetect(ctx context.Context, enabled bool) error {
	return errors.Wrap(s.prefs.SetAutoDetect(ctx, enabled), "store auto-detect preference")
}

// SetNotifications stores the notification toggle
func (s *deviceService) SetNotifications(ctx context.Context, enabled bool) error {
	return errors.Wrap(s.prefs.SetNotifications(ctx, enabled), "store notification preference")
}
