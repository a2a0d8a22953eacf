package impl

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	deliverycontext "dashcam/internal/delivery/context"
	"dashcam/internal/domain/entity"
	"dashcam/internal/domain/repository"
	"dashcam/internal/domain/service"
	"dashcam/internal/errors"
	"dashcam/internal/usecase"

	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"
)

const sniffLength = 512

// dashcam container formats; the system mime table often lacks them
var videoTypes = map[string]string{
	".mp4": "video/mp4",
	".mov": "video/quicktime",
	".avi": "video/x-msvideo",
	".mkv": "video/x-matroska",
	".ts":  "video/mp2t",
	".3gp": "video/3gpp",
}

// uploadService implements the UploadUsecase interface.
type uploadService struct {
	api      service.BackendAPI
	prefs    repository.PreferenceRepository
	validate *validator.Validate
	logger   *slog.Logger
}

// UploadServiceParams holds dependencies for UploadService, injected by Fx.
type UploadServiceParams struct {
	fx.In

	API    service.BackendAPI
	Prefs  repository.PreferenceRepository
	Logger *slog.Logger
}

// NewUploadService is the constructor for uploadService.
func NewUploadService(params UploadServiceParams) usecase.UploadUsecase {
	return &uploadService{
		api:      params.API,
		prefs:    params.Prefs,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   params.Logger,
	}
}

// Upload returns a stream that runs presign, transfer and notify when iterated
func (s *uploadService) Upload(ctx context.Context, file entity.UploadFile) *usecase.UploadStream {
	return usecase.NewUploadStream(ctx, func(ctx context.Context, emit func(usecase.UploadEvent) bool) usecase.UploadEvent {
		return s.run(ctx, file, emit)
	})
}

func (s *uploadService) run(ctx context.Context, file entity.UploadFile, emit func(usecase.UploadEvent) bool) usecase.UploadEvent {
	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	if err := requireSession(ctx, s.prefs, "upload"); err != nil {
		return usecase.UploadFailed{Err: err, Stage: usecase.StageValidate}
	}

	file, err := prepareUploadFile(file)
	if err != nil {
		return usecase.UploadFailed{Err: err, Stage: usecase.StageValidate}
	}
	if err := s.validate.Struct(file); err != nil {
		return usecase.UploadFailed{Err: errors.Wrap(err, "invalid upload file"), Stage: usecase.StageValidate}
	}

	presigned, err := s.api.RequestPresignedUpload(ctx, file.Name, file.ContentType)
	if err != nil {
		logger.Warn("Presign failed", slog.String("file", file.Name), slog.Any("error", err))

		return usecase.UploadFailed{Err: err, Stage: usecase.StagePresign}
	}

	progress := newProgressEmitter(emit, file.Size)
	progress.start()
	err = s.api.PutObject(ctx, presigned.PresignedURL, file.ContentType, file.Size, &progressReader{r: file.Body, progress: progress})
	progress.close()
	if err != nil {
		logger.Warn("Object transfer failed", slog.String("file", file.Name), slog.Any("error", err))

		return usecase.UploadFailed{Err: err, Stage: usecase.StageTransfer}
	}

	if !emit(usecase.UploadProgress{Percent: 100}) {
		return usecase.UploadFailed{Err: errors.WithStack(context.Cause(ctx)), Stage: usecase.StageTransfer}
	}

	receipt, err := s.api.NotifyUploadComplete(ctx, file.Name, presigned.S3Key, file.ContentType, file.Size)
	if err != nil {
		logger.Warn("Upload notify failed", slog.String("s3_key", presigned.S3Key), slog.Any("error", err))

		return usecase.UploadFailed{Err: err, Stage: usecase.StageNotify}
	}

	logger.Info("Upload completed",
		slog.String("file", file.Name),
		slog.String("s3_key", presigned.S3Key),
		slog.String("id", receipt.ID))

	return usecase.UploadCompleted{Receipt: receipt}
}

// prepareUploadFile strips directories from the name and fills in a missing content type
func prepareUploadFile(file entity.UploadFile) (entity.UploadFile, error) {
	file.Name = filepath.Base(strings.TrimSpace(file.Name))
	if file.Name == "." || file.Name == string(filepath.Separator) {
		file.Name = ""
	}

	if file.ContentType != "" || file.Body == nil {
		return file, nil
	}

	ext := strings.ToLower(filepath.Ext(file.Name))
	if video, ok := videoTypes[ext]; ok {
		file.ContentType = video

		return file, nil
	}
	if byExt := mime.TypeByExtension(ext); byExt != "" {
		file.ContentType = byExt

		return file, nil
	}

	buffered := bufio.NewReaderSize(file.Body, sniffLength)
	head, err := buffered.Peek(sniffLength)
	if err != nil && !errors.IsAny(err, io.EOF, bufio.ErrBufferFull) {
		return file, errors.Wrap(err, "read file header")
	}
	file.ContentType = http.DetectContentType(head)
	file.Body = buffered

	return file, nil
}

// progressEmitter turns byte counts into whole percents. In-flight progress stops at 99;
// 100 is reserved for a confirmed transfer.
type progressEmitter struct {
	mu     sync.Mutex
	emit   func(usecase.UploadEvent) bool
	total  int64
	sent   int64
	last   int
	closed bool
}

func newProgressEmitter(emit func(usecase.UploadEvent) bool, total int64) *progressEmitter {
	return &progressEmitter{emit: emit, total: total, last: -1}
}

func (p *progressEmitter) start() {
	p.report(0)
}

func (p *progressEmitter) add(n int) {
	p.report(int64(n))
}

func (p *progressEmitter) report(n int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	p.sent += n
	percent := 0
	if p.total > 0 {
		percent = int(p.sent * 100 / p.total)
	}
	percent = min(percent, 99)

	if percent > p.last {
		p.last = percent
		if !p.emit(usecase.UploadProgress{Percent: percent}) {
			p.closed = true
		}
	}
}

// close stops progress; reads still draining from the transport after this are not reported
func (p *progressEmitter) close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
}

type progressReader struct {
	r        io.Reader
	progress *progressEmitter
}

func (r *progressReader) Read(b []byte) (int, error) {
	n, err := r.r.Read(b)
	if n > 0 {
		r.progress.add(n)
	}

	return n, err
}
