package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dashcam/internal/domain/entity"
	domainerrors "dashcam/internal/domain/errors"
	"dashcam/internal/domain/service"
	"dashcam/internal/errors"

	"go.uber.org/fx"
)

const (
	pathProviderCallback = "/oauth/%s/callback"
	pathCodeCallback     = "/oauth/%s/code-callback"
	pathCurrentUser      = "/api/user/me"
	pathDeleteAccount    = "/api/user/delete"
	pathReports          = "/api/my/reports"
	pathPresigned        = "/api/s3/presigned"
	pathUploadNotify     = "/api/videos/upload-notify/manual"
	pathPushToken        = "/api/auth/devices/fcm"
)

// BackendParams holds dependencies for the backend API, injected by Fx
type BackendParams struct {
	fx.In

	Client *Client
	Logger *slog.Logger
	// StorageClient is used for presigned PUTs; it never carries the session token
	StorageClient *http.Client `name:"storage" optional:"true"`
}

type backendAPI struct {
	client        *Client
	storageClient *http.Client
	logger        *slog.Logger
}

// NewBackendAPI creates the typed backend surface on top of client
func NewBackendAPI(params BackendParams) service.BackendAPI {
	storageClient := params.StorageClient
	if storageClient == nil {
		storageClient = &http.Client{}
	}

	return &backendAPI{
		client:        params.Client,
		storageClient: storageClient,
		logger:        params.Logger,
	}
}

type tokenExchangeResponse struct {
	AuthToken string `json:"authToken"`
	Token     string `json:"token"`
}

func (r tokenExchangeResponse) sessionToken() string {
	if r.AuthToken != "" {
		return r.AuthToken
	}

	return r.Token
}

// ExchangeProviderToken posts the provider access token and returns the session token
func (b *backendAPI) ExchangeProviderToken(ctx context.Context, provider entity.ProviderType, accessToken string) (string, error) {
	path := providerPath(pathProviderCallback, provider)

	var resp tokenExchangeResponse
	if err := b.client.Post(ctx, path, map[string]string{"accessToken": accessToken}, &resp); err != nil {
		return "", err
	}

	token := resp.sessionToken()
	if token == "" {
		return "", domainerrors.NewInvalidResponseError(http.MethodPost+" "+path, errors.New("authToken missing"))
	}

	return token, nil
}

// ExchangeAuthorizationCode posts an authorization code and returns the session token
func (b *backendAPI) ExchangeAuthorizationCode(ctx context.Context, provider entity.ProviderType, code string) (string, error) {
	path := providerPath(pathCodeCallback, provider)

	var resp tokenExchangeResponse
	if err := b.client.Post(ctx, path, map[string]string{"code": code}, &resp); err != nil {
		return "", err
	}

	token := resp.sessionToken()
	if token == "" {
		return "", domainerrors.NewInvalidResponseError(http.MethodPost+" "+path, errors.New("authToken missing"))
	}

	return token, nil
}

// CurrentUser returns the signed-in account
func (b *backendAPI) CurrentUser(ctx context.Context) (*entity.User, error) {
	var user entity.User
	if err := b.client.Get(ctx, pathCurrentUser, nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// DeleteAccount deletes the signed-in account on the backend
func (b *backendAPI) DeleteAccount(ctx context.Context) error {
	return b.client.Delete(ctx, pathDeleteAccount, nil)
}

// ListReports returns report summaries; limit <= 0 requests the full list
func (b *backendAPI) ListReports(ctx context.Context, limit int) ([]entity.ReportSummary, error) {
	var query url.Values
	if limit > 0 {
		query = url.Values{"limit": []string{strconv.Itoa(limit)}}
	}

	var raw json.RawMessage
	if err := b.client.Get(ctx, pathReports, query, &raw); err != nil {
		return nil, err
	}

	reports, err := decodeReportList(raw)
	if err != nil {
		return nil, domainerrors.NewInvalidResponseError(http.MethodGet+" "+pathReports, err)
	}

	// the bounded endpoint is advisory on some deployments
	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}

	return reports, nil
}

// GetReport returns one report by id
func (b *backendAPI) GetReport(ctx context.Context, id entity.ReportID) (*entity.ReportDetail, error) {
	if strings.TrimSpace(id.String()) == "" {
		return nil, errors.New("report id is required")
	}

	path := pathReports + "/" + url.PathEscape(id.String())

	var detail entity.ReportDetail
	if err := b.client.Get(ctx, path, nil, &detail); err != nil {
		return nil, err
	}
	if detail.ID == "" {
		detail.ID = id
	}

	return &detail, nil
}

// RequestPresignedUpload asks for a single-use write URL
func (b *backendAPI) RequestPresignedUpload(ctx context.Context, fileName, contentType string) (*entity.PresignedUpload, error) {
	body := map[string]string{
		"fileName":    fileName,
		"contentType": contentType,
	}

	var presigned entity.PresignedUpload
	if err := b.client.Post(ctx, pathPresigned, body, &presigned); err != nil {
		return nil, err
	}

	if err := Validator().Struct(&presigned); err != nil {
		return nil, domainerrors.NewInvalidResponseError(http.MethodPost+" "+pathPresigned, err)
	}

	return &presigned, nil
}

// PutObject streams body to the presigned URL with an exact Content-Length
func (b *backendAPI) PutObject(ctx context.Context, presignedURL, contentType string, size int64, body io.Reader) error {
	const op = "PUT object"

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, presignedURL, body)
	if err != nil {
		return errors.Wrap(err, "build presigned put")
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", contentType)

	start := time.Now()
	resp, err := b.storageClient.Do(req)
	if err != nil {
		return domainerrors.NewTransportError(op, err)
	}
	defer resp.Body.Close()

	payload, _ := io.ReadAll(io.LimitReader(resp.Body, maxDetailLength))

	b.logger.Debug("Object upload finished",
		slog.Int("status", resp.StatusCode),
		slog.Int64("size", size),
		slog.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domainerrors.NewHTTPStatusError(op, resp.StatusCode, "", excerpt(strings.TrimSpace(string(payload))))
	}

	return nil
}

type uploadNotifyResponse struct {
	VideoID        entity.FlexibleString `json:"videoId"`
	FileID         entity.FlexibleString `json:"fileId"`
	FileType       string                `json:"fileType"`
	AnalysisStatus string                `json:"analysisStatus"`
}

// NotifyUploadComplete tells the backend the object is in place and returns its receipt
func (b *backendAPI) NotifyUploadComplete(ctx context.Context, fileName, s3Key, contentType string, size int64) (*entity.UploadReceipt, error) {
	body := struct {
		FileName    string `json:"fileName"`
		S3Key       string `json:"s3Key"`
		ContentType string `json:"contentType"`
		Size        int64  `json:"size"`
	}{
		FileName:    fileName,
		S3Key:       s3Key,
		ContentType: contentType,
		Size:        size,
	}

	var resp uploadNotifyResponse
	if err := b.client.Post(ctx, pathUploadNotify, body, &resp); err != nil {
		return nil, err
	}

	id := string(resp.VideoID)
	if id == "" {
		id = string(resp.FileID)
	}
	if id == "" {
		return nil, domainerrors.NewInvalidResponseError(http.MethodPost+" "+pathUploadNotify, errors.New("videoId and fileId missing"))
	}

	return &entity.UploadReceipt{
		ID:             id,
		S3Key:          s3Key,
		FileType:       resp.FileType,
		AnalysisStatus: resp.AnalysisStatus,
	}, nil
}

// RegisterPushToken registers this device's FCM token with the backend
func (b *backendAPI) RegisterPushToken(ctx context.Context, token string) error {
	return b.client.Post(ctx, pathPushToken, map[string]string{"token": token}, nil)
}

func providerPath(pattern string, provider entity.ProviderType) string {
	return strings.Replace(pattern, "%s", url.PathEscape(provider.String()), 1)
}
