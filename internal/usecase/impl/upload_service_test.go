package impl

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"dashcam/internal/domain/entity"
	domainerrors "dashcam/internal/domain/errors"
	"dashcam/internal/domain/repository"
	mockService "dashcam/internal/mocks/service"
	"dashcam/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// uploadServiceFixtures holds all test dependencies for upload service tests.
type uploadServiceFixtures struct {
	service usecase.UploadUsecase
	api     *mockService.MockBackendAPI
	prefs   repository.PreferenceRepository
}

func createTestUploadService(t *testing.T) uploadServiceFixtures {
	backend := mockService.NewMockBackendAPI(t)
	prefs := newTestPrefs(t)
	signIn(t, prefs, "session")

	return uploadServiceFixtures{
		service: NewUploadService(UploadServiceParams{API: backend, Prefs: prefs, Logger: newDiscardLogger()}),
		api:     backend,
		prefs:   prefs,
	}
}

func videoFile(size int) entity.UploadFile {
	return entity.UploadFile{
		Name:        "clips/2026-10-01_crash.mp4",
		ContentType: "video/mp4",
		Size:        int64(size),
		Body:        bytes.NewReader(bytes.Repeat([]byte{0x42}, size)),
	}
}

// readSlowly drains body in small chunks so progress is reported many times
func readSlowly(body io.Reader) error {
	_, err := io.CopyBuffer(io.Discard, struct{ io.Reader }{body}, make([]byte, 37))

	return err
}

func collect(stream *usecase.UploadStream) []usecase.UploadEvent {
	var events []usecase.UploadEvent
	for ev := range stream.Events() {
		events = append(events, ev)
	}

	return events
}

func TestUploadService_ProgressThenNotify(t *testing.T) {
	fx := createTestUploadService(t)
	ctx := context.Background()

	var steps []string
	fx.api.EXPECT().
		RequestPresignedUpload(mock.Anything, "2026-10-01_crash.mp4", "video/mp4").
		Run(func(context.Context, string, string) { steps = append(steps, "presign") }).
		Return(&entity.PresignedUpload{PresignedURL: "https://bucket.example/put?sig=1", S3Key: "videos/k1"}, nil)
	fx.api.EXPECT().
		PutObject(mock.Anything, "https://bucket.example/put?sig=1", "video/mp4", int64(1000), mock.Anything).
		RunAndReturn(func(_ context.Context, _, _ string, _ int64, body io.Reader) error {
			steps = append(steps, "put")

			return readSlowly(body)
		})
	fx.api.EXPECT().
		NotifyUploadComplete(mock.Anything, "2026-10-01_crash.mp4", "videos/k1", "video/mp4", int64(1000)).
		Run(func(context.Context, string, string, string, int64) { steps = append(steps, "notify") }).
		Return(&entity.UploadReceipt{ID: "v-9", S3Key: "videos/k1"}, nil)

	events := collect(fx.service.Upload(ctx, videoFile(1000)))
	require.NotEmpty(t, events)

	last := -1
	sawHundred := false
	for i, ev := range events[:len(events)-1] {
		progress, ok := ev.(usecase.UploadProgress)
		require.True(t, ok, "event %d should be progress, got %T", i, ev)
		assert.GreaterOrEqual(t, progress.Percent, 0)
		assert.LessOrEqual(t, progress.Percent, 100)
		assert.Greater(t, progress.Percent, last, "progress must strictly increase when emitted")
		last = progress.Percent
		sawHundred = sawHundred || progress.Percent == 100
	}
	assert.True(t, sawHundred)
	assert.Equal(t, 100, last)
	assert.Greater(t, len(events), 5)

	completed, ok := events[len(events)-1].(usecase.UploadCompleted)
	require.True(t, ok)
	assert.Equal(t, "v-9", completed.Receipt.ID)
	assert.Equal(t, []string{"presign", "put", "notify"}, steps)
}

func TestUploadService_PresignFailureStops(t *testing.T) {
	fx := createTestUploadService(t)

	fx.api.EXPECT().
		RequestPresignedUpload(mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domainerrors.NewHTTPStatusError("POST /api/s3/presigned", http.StatusInternalServerError, "", ""))

	events := collect(fx.service.Upload(context.Background(), videoFile(10)))
	require.Len(t, events, 1)

	failed, ok := events[0].(usecase.UploadFailed)
	require.True(t, ok)
	assert.Equal(t, usecase.StagePresign, failed.Stage)
	assert.ErrorIs(t, failed.Err, domainerrors.ErrHTTPStatus)

	fx.api.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	fx.api.AssertNotCalled(t, "NotifyUploadComplete", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_TransferFailureSkipsNotify(t *testing.T) {
	fx := createTestUploadService(t)

	fx.api.EXPECT().
		RequestPresignedUpload(mock.Anything, mock.Anything, mock.Anything).
		Return(&entity.PresignedUpload{PresignedURL: "https://bucket.example/put", S3Key: "k"}, nil)
	fx.api.EXPECT().
		PutObject(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domainerrors.NewHTTPStatusError("PUT presigned", http.StatusForbidden, "", "expired"))

	events := collect(fx.service.Upload(context.Background(), videoFile(10)))

	failed, ok := events[len(events)-1].(usecase.UploadFailed)
	require.True(t, ok)
	assert.Equal(t, usecase.StageTransfer, failed.Stage)
	for _, ev := range events {
		if p, ok := ev.(usecase.UploadProgress); ok {
			assert.Less(t, p.Percent, 100)
		}
	}
	fx.api.AssertNotCalled(t, "NotifyUploadComplete", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_StreamIsLazyAndSingleUse(t *testing.T) {
	fx := createTestUploadService(t)

	stream := fx.service.Upload(context.Background(), videoFile(0))
	fx.api.AssertNotCalled(t, "RequestPresignedUpload", mock.Anything, mock.Anything, mock.Anything)

	first := collect(stream)
	require.Len(t, first, 1)
	failed := first[0].(usecase.UploadFailed)
	assert.Equal(t, usecase.StageValidate, failed.Stage)

	second := collect(stream)
	require.Len(t, second, 1)
	assert.ErrorIs(t, second[0].(usecase.UploadFailed).Err, usecase.ErrStreamConsumed)
}

func TestUploadService_BreakCancelsPipeline(t *testing.T) {
	fx := createTestUploadService(t)

	putCtx := make(chan context.Context, 1)
	fx.api.EXPECT().
		RequestPresignedUpload(mock.Anything, mock.Anything, mock.Anything).
		Return(&entity.PresignedUpload{PresignedURL: "https://bucket.example/put", S3Key: "k"}, nil)
	fx.api.EXPECT().
		PutObject(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _, _ string, _ int64, body io.Reader) error {
			putCtx <- ctx
			if err := readSlowly(body); err != nil {
				return err
			}
			<-ctx.Done()

			return ctx.Err()
		})

	for ev := range fx.service.Upload(context.Background(), videoFile(1000)).Events() {
		if _, ok := ev.(usecase.UploadProgress); ok {
			break
		}
	}

	ctx := <-putCtx
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	fx.api.AssertNotCalled(t, "NotifyUploadComplete", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_RequiresSession(t *testing.T) {
	backend := mockService.NewMockBackendAPI(t)
	service := NewUploadService(UploadServiceParams{API: backend, Prefs: newTestPrefs(t), Logger: newDiscardLogger()})

	receipt, err := service.Upload(context.Background(), videoFile(10)).Wait()
	assert.Nil(t, receipt)
	assert.ErrorIs(t, err, domainerrors.ErrMissingCredential)
}

func TestPrepareUploadFile_DetectsContentType(t *testing.T) {
	byExt, err := prepareUploadFile(entity.UploadFile{Name: "/tmp/rec/CLIP.MP4", Size: 4, Body: strings.NewReader("data")})
	require.NoError(t, err)
	assert.Equal(t, "CLIP.MP4", byExt.Name)
	assert.Equal(t, "video/mp4", byExt.ContentType)

	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)
	sniffed, err := prepareUploadFile(entity.UploadFile{Name: "frame", Size: int64(len(png)), Body: bytes.NewReader(png)})
	require.NoError(t, err)
	assert.Equal(t, "image/png", sniffed.ContentType)

	rest, err := io.ReadAll(sniffed.Body)
	require.NoError(t, err)
	assert.Equal(t, png, rest, "sniffing must not consume the body")

	explicit, err := prepareUploadFile(entity.UploadFile{Name: "x.bin", ContentType: "application/x-dashcam", Size: 1, Body: strings.NewReader("x")})
	require.NoError(t, err)
	assert.Equal(t, "application/x-dashcam", explicit.ContentType)
}
