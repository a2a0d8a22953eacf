package usecase

import (
	"context"
	"errors"
	"iter"
	"sync/atomic"

	"dashcam/internal/domain/entity"
)

// ErrStreamConsumed is reported by an UploadStream iterated a second time
var ErrStreamConsumed = errors.New("upload stream already consumed")

// UploadStage names the pipeline step an upload failed in
type UploadStage string

const (
	StageValidate UploadStage = "validate"
	StagePresign  UploadStage = "presign"
	StageTransfer UploadStage = "transfer"
	StageNotify   UploadStage = "notify"
)

// UploadEvent is one of UploadProgress, UploadCompleted or UploadFailed
type UploadEvent interface {
	uploadEvent()
}

// UploadProgress reports the transferred share of the file in whole percent
type UploadProgress struct {
	Percent int
}

// UploadCompleted is the terminal success event
type UploadCompleted struct {
	Receipt *entity.UploadReceipt
}

// UploadFailed is the terminal failure event
type UploadFailed struct {
	Err   error
	Stage UploadStage
}

func (UploadProgress) uploadEvent()  {}
func (UploadCompleted) uploadEvent() {}
func (UploadFailed) uploadEvent()    {}

// UploadUsecase sends a recording through presign, transfer and notify
type UploadUsecase interface {
	// Upload prepares the pipeline. Nothing runs until the returned stream is iterated.
	Upload(ctx context.Context, file entity.UploadFile) *UploadStream
}

// UploadRunner executes one pipeline. emit returns false once the consumer is gone.
// The returned event is the terminal one.
type UploadRunner func(ctx context.Context, emit func(UploadEvent) bool) UploadEvent

// UploadStream is a lazy single-use sequence of upload events ending in exactly one terminal event
type UploadStream struct {
	ctx      context.Context
	run      UploadRunner
	consumed atomic.Bool
}

// NewUploadStream wraps run; it starts on the first iteration of Events
func NewUploadStream(ctx context.Context, run UploadRunner) *UploadStream {
	return &UploadStream{ctx: ctx, run: run}
}

// Events starts the pipeline. Breaking out of the loop cancels it.
// Iterating a second time yields a single UploadFailed carrying ErrStreamConsumed.
func (s *UploadStream) Events() iter.Seq[UploadEvent] {
	return func(yield func(UploadEvent) bool) {
		if !s.consumed.CompareAndSwap(false, true) {
			yield(UploadFailed{Err: ErrStreamConsumed, Stage: StageValidate})

			return
		}

		ctx, cancel := context.WithCancel(s.ctx)
		defer cancel()

		events := make(chan UploadEvent)
		go func() {
			defer close(events)

			send := func(ev UploadEvent) bool {
				select {
				case events <- ev:
					return true
				case <-ctx.Done():
					return false
				}
			}
			// the consumer reads until close, so the terminal event is never lost
			events <- s.run(ctx, send)
		}()

		for ev := range events {
			if !yield(ev) {
				cancel()
				for range events {
				}

				return
			}
		}
	}
}

// Wait drains the stream and returns the receipt or the failure
func (s *UploadStream) Wait() (*entity.UploadReceipt, error) {
	for ev := range s.Events() {
		switch e := ev.(type) {
		case UploadCompleted:
			return e.Receipt, nil
		case UploadFailed:
			return nil, e.Err
		}
	}

	return nil, context.Canceled
}
