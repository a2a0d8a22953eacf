package usecase

import (
	"context"

	"dashcam/internal/domain/entity"
)

// ViewState is what a report screen shows. Exactly one of the types below.
type ViewState interface {
	viewState()
}

// Loading is shown while a fetch is in flight
type Loading struct{}

// Unauthenticated means there is no session to fetch with
type Unauthenticated struct{}

// Empty is a successful list fetch with no reports
type Empty struct{}

// Ready holds a non-empty report list
type Ready struct {
	Reports []entity.ReportSummary
}

// DetailReady holds one report
type DetailReady struct {
	Report *entity.ReportDetail
}

// Failed carries a displayable reason and the underlying error
type Failed struct {
	Reason string
	Err    error
}

func (Loading) viewState()         {}
func (Unauthenticated) viewState() {}
func (Empty) viewState()           {}
func (Ready) viewState()           {}
func (DetailReady) viewState()     {}
func (Failed) viewState()          {}

// ReportUsecase fetches analysis reports for the signed-in user
type ReportUsecase interface {
	// ListReports returns at most limit reports; limit <= 0 uses the configured default
	ListReports(ctx context.Context, limit int) ([]entity.ReportSummary, error)
	GetReport(ctx context.Context, id entity.ReportID) (*entity.ReportDetail, error)

	// LoadList and LoadDetail fold the outcome into a ViewState and never fail
	LoadList(ctx context.Context, limit int) ViewState
	LoadDetail(ctx context.Context, id entity.ReportID) ViewState
}
