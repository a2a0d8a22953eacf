package api

import (
	"bytes"
	"encoding/json"

	"dashcam/internal/domain/entity"
	"dashcam/internal/errors"
)

// reportListEnvelope is the object form of the report list response
type reportListEnvelope struct {
	Reports []entity.ReportSummary `json:"reports"`
}

// decodeReportList accepts a bare array, {"reports": [...]} or an object without reports (empty list)
func decodeReportList(raw json.RawMessage) ([]entity.ReportSummary, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []entity.ReportSummary{}, nil
	}

	switch trimmed[0] {
	case '[':
		reports := []entity.ReportSummary{}
		if err := json.Unmarshal(trimmed, &reports); err != nil {
			return nil, errors.Wrap(err, "decode report array")
		}

		return reports, nil
	case '{':
		var envelope reportListEnvelope
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, errors.Wrap(err, "decode report envelope")
		}
		if envelope.Reports == nil {
			return []entity.ReportSummary{}, nil
		}

		return envelope.Reports, nil
	default:
		return nil, errors.Errorf("unexpected report list payload starting with %q", trimmed[0])
	}
}
