package tui

import (
	"context"
	"testing"
	"time"

	"dashcam/internal/domain/entity"
	"dashcam/internal/usecase"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReports struct {
	list      usecase.ViewState
	detail    usecase.ViewState
	detailIDs []entity.ReportID
}

func (f *fakeReports) ListReports(context.Context, int) ([]entity.ReportSummary, error) {
	return nil, nil
}

func (f *fakeReports) GetReport(context.Context, entity.ReportID) (*entity.ReportDetail, error) {
	return nil, nil
}

func (f *fakeReports) LoadList(context.Context, int) usecase.ViewState {
	return f.list
}

func (f *fakeReports) LoadDetail(_ context.Context, id entity.ReportID) usecase.ViewState {
	f.detailIDs = append(f.detailIDs, id)

	return f.detail
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sampleReports() []entity.ReportSummary {
	return []entity.ReportSummary{
		{ID: "r1", Title: "Intersection collision", AccidentType: "side", FaultRatio: &entity.FaultRatio{Self: 30, Other: 70}},
		{ID: "r2", Title: "Lane change", AccidentType: "rear"},
		{ID: "r3", Title: "Parking lot", AccidentType: "parked"},
	}
}

func newTestBrowser(reports *fakeReports, unread []string, onOpen func(entity.ReportID)) Browser {
	b := NewBrowser(context.Background(), reports, 20, unread, onOpen)
	b.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }

	return b
}

func update(t *testing.T, m tea.Model, msg tea.Msg) (Browser, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	b, ok := next.(Browser)
	require.True(t, ok)

	return b, cmd
}

func TestBrowser_StartsLoading(t *testing.T) {
	t.Parallel()

	b := newTestBrowser(&fakeReports{list: usecase.Empty{}}, nil, nil)

	assert.NotNil(t, b.Init())
	assert.Contains(t, b.View(), "Loading reports")
}

func TestBrowser_ListStates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		state    usecase.ViewState
		expected string
	}{
		{name: "unauthenticated", state: usecase.Unauthenticated{}, expected: "Not signed in"},
		{name: "empty", state: usecase.Empty{}, expected: "No reports yet"},
		{name: "failed", state: usecase.Failed{Reason: "server unavailable"}, expected: "server unavailable"},
		{name: "ready", state: usecase.Ready{Reports: sampleReports()}, expected: "Lane change"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reports := &fakeReports{list: tt.state}
			b := newTestBrowser(reports, nil, nil)

			msg := b.loadList()()
			b, _ = update(t, b, msg)

			assert.Contains(t, b.View(), tt.expected)
		})
	}
}

func TestBrowser_ReadyRowsShowFaultAndNewMarker(t *testing.T) {
	t.Parallel()

	b := newTestBrowser(&fakeReports{}, []string{"r2"}, nil)
	b, _ = update(t, b, listLoadedMsg{state: usecase.Ready{Reports: sampleReports()}})

	view := b.View()
	assert.Contains(t, view, "30:70")
	assert.Contains(t, view, "NEW")
	assert.Contains(t, view, "Intersection collision")
}

func TestBrowser_NavigationIsBounded(t *testing.T) {
	t.Parallel()

	b := newTestBrowser(&fakeReports{}, nil, nil)
	b, _ = update(t, b, listLoadedMsg{state: usecase.Ready{Reports: sampleReports()}})

	b, _ = update(t, b, key("k"))
	assert.Equal(t, 0, b.cursor)

	for range 5 {
		b, _ = update(t, b, key("j"))
	}
	assert.Equal(t, 2, b.cursor)

	b, _ = update(t, b, key("g"))
	assert.Equal(t, 0, b.cursor)

	b, _ = update(t, b, key("G"))
	assert.Equal(t, 2, b.cursor)
}

func TestBrowser_OpenDetailAndBack(t *testing.T) {
	t.Parallel()

	detail := &entity.ReportDetail{
		ReportSummary: entity.ReportSummary{ID: "r2", Title: "Lane change"},
		Summary:       "The other vehicle changed lanes without signalling.",
		Laws:          []entity.LawReference{{Title: "Road Traffic Act", Article: "Art. 19"}},
		Precedents:    []entity.Precedent{{CaseNumber: "2019Da1234", Court: "Supreme Court"}},
	}
	reports := &fakeReports{detail: usecase.DetailReady{Report: detail}}

	var opened []entity.ReportID
	b := newTestBrowser(reports, []string{"r2"}, func(id entity.ReportID) { opened = append(opened, id) })
	b, _ = update(t, b, tea.WindowSizeMsg{Width: 100, Height: 40})
	b, _ = update(t, b, listLoadedMsg{state: usecase.Ready{Reports: sampleReports()}})
	b, _ = update(t, b, key("down"))

	b, cmd := update(t, b, key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, screenDetail, b.screen)
	assert.Contains(t, b.View(), "Loading report")

	b, _ = update(t, b, cmd())
	assert.Equal(t, []entity.ReportID{"r2"}, reports.detailIDs)
	assert.Equal(t, []entity.ReportID{"r2"}, opened)

	view := b.View()
	assert.Contains(t, view, "Lane change")
	assert.Contains(t, view, "Road Traffic Act Art. 19")
	assert.Contains(t, view, "2019Da1234 (Supreme Court)")

	b, _ = update(t, b, key("esc"))
	assert.Equal(t, screenList, b.screen)
	assert.NotContains(t, b.View(), "NEW")
}

func TestBrowser_ReloadAndQuit(t *testing.T) {
	t.Parallel()

	reports := &fakeReports{list: usecase.Empty{}}
	b := newTestBrowser(reports, nil, nil)
	b, _ = update(t, b, listLoadedMsg{state: usecase.Ready{Reports: sampleReports()}})

	b, cmd := update(t, b, key("r"))
	require.NotNil(t, cmd)
	assert.Contains(t, b.View(), "Loading reports")

	b, _ = update(t, b, cmd())
	assert.Contains(t, b.View(), "No reports yet")

	_, cmd = update(t, b, key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRenderReport_SkipsEmptySections(t *testing.T) {
	t.Parallel()

	out := RenderReport(&entity.ReportDetail{ReportSummary: entity.ReportSummary{Title: "x"}}, 80)

	assert.NotContains(t, out, "Applicable law")
	assert.NotContains(t, out, "Precedents")
	assert.NotContains(t, out, "Evidence")
}
