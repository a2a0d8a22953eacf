package usecase

import (
	"context"
	"errors"

	"dashcam/internal/domain/entity"
)

// ErrInvalidDeepLink is returned for redirect links that can never be exchanged
var ErrInvalidDeepLink = errors.New("deep link carries no usable authorization code")

// DeepLinkState is the position of the deep link handler
type DeepLinkState int32

const (
	DeepLinkIdle DeepLinkState = iota
	DeepLinkPendingResume
	DeepLinkProcessing
)

// String returns the state name
func (s DeepLinkState) String() string {
	switch s {
	case DeepLinkIdle:
		return "idle"
	case DeepLinkPendingResume:
		return "pending-resume"
	case DeepLinkProcessing:
		return "processing"
	default:
		return "unknown"
	}
}

// DeepLinkUsecase finishes sign-ins that come back as redirect links.
// A link is persisted before it is processed and removed only once its code was exchanged.
type DeepLinkUsecase interface {
	// Resume retries a persisted link. It returns a nil session when nothing is pending.
	Resume(ctx context.Context) (*entity.Session, error)

	// Handle persists rawURL and exchanges its code
	Handle(ctx context.Context, rawURL string) (*entity.Session, error)

	State() DeepLinkState
}
