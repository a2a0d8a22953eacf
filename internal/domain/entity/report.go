package entity

import (
	"strconv"

	"github.com/pkg/errors"
)

// ReportID identifies a report. The backend sends it either as a JSON string or a number.
type ReportID string

// UnmarshalJSON accepts "abc", 42 and null
func (id *ReportID) UnmarshalJSON(data []byte) error {
	var s FlexibleString
	if err := s.UnmarshalJSON(data); err != nil {
		return errors.Wrap(err, "report id")
	}
	*id = ReportID(s)

	return nil
}

// String returns the id as text
func (id ReportID) String() string {
	return string(id)
}

// FaultRatio is the fault split between the recording vehicle and the other party, in percent.
type FaultRatio struct {
	Self  int `json:"self"`
	Other int `json:"other"`
}

// String renders the ratio as "self:other"
func (r FaultRatio) String() string {
	return strconv.Itoa(r.Self) + ":" + strconv.Itoa(r.Other)
}

// ReportSummary is a list entry for an AI-generated accident report.
type ReportSummary struct {
	ID           ReportID    `json:"id"`
	Title        string      `json:"title"`
	AccidentType string      `json:"accidentType"`
	CreatedAt    Timestamp   `json:"createdAt"`
	FaultRatio   *FaultRatio `json:"faultRatio,omitempty"`
	ThumbnailURL *string     `json:"thumbnailUrl,omitempty"`
}

// LawReference is a statute cited by a report.
type LawReference struct {
	Title   string `json:"title"`
	Article string `json:"article,omitempty"`
	Content string `json:"content,omitempty"`
}

// Precedent is a court case cited by a report.
type Precedent struct {
	CaseNumber string `json:"caseNumber"`
	Court      string `json:"court,omitempty"`
	Summary    string `json:"summary,omitempty"`
}

// Evidence points at material the analysis relied on, such as key frames.
type Evidence struct {
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}

// ReportDetail is the full report, a superset of ReportSummary.
type ReportDetail struct {
	ReportSummary

	Summary    string         `json:"summary,omitempty"`
	Laws       []LawReference `json:"laws,omitempty"`
	Precedents []Precedent    `json:"precedents,omitempty"`
	Evidence   []Evidence     `json:"evidence,omitempty"`
	VideoURL   *string        `json:"videoUrl,omitempty"`
}
