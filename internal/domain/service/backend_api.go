package service

import (
	"context"
	"io"

	"dashcam/internal/domain/entity"
)

// BackendAPI is the typed surface of the analysis backend.
// Every method returns a *errors.ClientError from dashcam/internal/domain/errors on failure.
type BackendAPI interface {
	// ExchangeProviderToken trades a provider access token for a session token
	ExchangeProviderToken(ctx context.Context, provider entity.ProviderType, accessToken string) (string, error)

	// ExchangeAuthorizationCode trades an OAuth authorization code for a session token
	ExchangeAuthorizationCode(ctx context.Context, provider entity.ProviderType, code string) (string, error)

	CurrentUser(ctx context.Context) (*entity.User, error)
	DeleteAccount(ctx context.Context) error

	// ListReports returns the user's reports; limit <= 0 means unbounded
	ListReports(ctx context.Context, limit int) ([]entity.ReportSummary, error)
	GetReport(ctx context.Context, id entity.ReportID) (*entity.ReportDetail, error)

	RequestPresignedUpload(ctx context.Context, fileName, contentType string) (*entity.PresignedUpload, error)

	// PutObject streams body to a presigned URL. No session header is attached.
	PutObject(ctx context.Context, presignedURL, contentType string, size int64, body io.Reader) error

	NotifyUploadComplete(ctx context.Context, fileName, s3Key, contentType string, size int64) (*entity.UploadReceipt, error)

	RegisterPushToken(ctx context.Context, token string) error
}
