package usecase

import (
	"context"

	"dashcam/internal/domain/entity"
)

// PushDataReportID is the data key naming the report a push refers to
const PushDataReportID = "reportId"

// DeviceUsecase covers push registration, the new-report inbox and local toggles
type DeviceUsecase interface {
	// RegisterPushToken sends token to the backend unless it was already registered
	RegisterPushToken(ctx context.Context, token string) error

	// HandlePush records the report named in data as new when notifications are enabled.
	// It reports whether anything was recorded.
	HandlePush(ctx context.Context, data map[string]string) (bool, error)

	NewReports(ctx context.Context) ([]string, error)
	AcknowledgeReport(ctx context.Context, id entity.ReportID) error

	Preferences(ctx context.Context) (*entity.Preferences, error)
	SetAutoDetect(ctx context.Context, enabled bool) error
	SetNotifications(ctx context.Context, enabled bool) error
}
