package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ReportID
	}{
		{"string id", `"r-1"`, "r-1"},
		{"integer id", `42`, "42"},
		{"null id", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ReportID
			require.NoError(t, json.Unmarshal([]byte(tt.input), &id))
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestReportID_UnmarshalJSON_Invalid(t *testing.T) {
	var id ReportID
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &id))
}

func TestReportDetail_EmbedsSummaryFields(t *testing.T) {
	body := `{"id":7,"title":"Intersection","accidentType":"side-collision","faultRatio":{"self":30,"other":70},"laws":[{"title":"Road Traffic Act","article":"25"}]}`

	var detail ReportDetail
	require.NoError(t, json.Unmarshal([]byte(body), &detail))

	assert.Equal(t, ReportID("7"), detail.ID)
	assert.Equal(t, "Intersection", detail.Title)
	require.NotNil(t, detail.FaultRatio)
	assert.Equal(t, "30:70", detail.FaultRatio.String())
	require.Len(t, detail.Laws, 1)
	assert.Equal(t, "25", detail.Laws[0].Article)
}

func TestParseProviderType(t *testing.T) {
	p, ok := ParseProviderType(" Kakao ")
	assert.True(t, ok)
	assert.Equal(t, ProviderTypeKakao, p)

	_, ok = ParseProviderType("../etc")
	assert.False(t, ok)

	_, ok = ParseProviderType("")
	assert.False(t, ok)
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339", `"2024-05-01T12:30:00+09:00"`, time.Date(2024, 5, 1, 3, 30, 0, 0, time.UTC)},
		{"local date time", `"2024-05-01T12:30:00.250"`, time.Date(2024, 5, 1, 12, 30, 0, 250000000, time.UTC)},
		{"epoch millis", `1714566600000`, time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)},
		{"null", `null`, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.input), &ts))
			assert.True(t, tt.want.Equal(ts.Time), "got %s", ts.Time)
		})
	}
}

func TestTimestamp_UnmarshalJSON_Invalid(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}
