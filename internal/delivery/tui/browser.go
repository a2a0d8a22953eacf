// Package tui renders reports and uploads in the terminal with bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dashcam/internal/domain/entity"
	"dashcam/internal/usecase"
	"dashcam/internal/util"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type screen int

const (
	screenList screen = iota
	screenDetail
)

type listLoadedMsg struct{ state usecase.ViewState }

type detailLoadedMsg struct {
	id    entity.ReportID
	state usecase.ViewState
}

// Browser lists the user's reports and opens one on enter
type Browser struct {
	ctx     context.Context
	reports usecase.ReportUsecase
	limit   int
	// unread holds report ids that arrived by push; opening one calls onOpen
	unread map[string]bool
	onOpen func(entity.ReportID)
	now    func() time.Time

	screen   screen
	list     usecase.ViewState
	detail   usecase.ViewState
	cursor   int
	offset   int
	width    int
	height   int
	spinner  spinner.Model
	viewport viewport.Model
}

// NewBrowser creates a browser over reports. onOpen may be nil.
func NewBrowser(ctx context.Context, reports usecase.ReportUsecase, limit int, unread []string, onOpen func(entity.ReportID)) Browser {
	marks := make(map[string]bool, len(unread))
	for _, id := range unread {
		marks[id] = true
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Browser{
		ctx:      ctx,
		reports:  reports,
		limit:    limit,
		unread:   marks,
		onOpen:   onOpen,
		now:      time.Now,
		list:     usecase.Loading{},
		width:    100,
		height:   30,
		spinner:  sp,
		viewport: viewport.New(100, 24),
	}
}

func (m Browser) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadList())
}

func (m Browser) loadList() tea.Cmd {
	return func() tea.Msg {
		return listLoadedMsg{state: m.reports.LoadList(m.ctx, m.limit)}
	}
}

func (m Browser) loadDetail(id entity.ReportID) tea.Cmd {
	return func() tea.Msg {
		return detailLoadedMsg{id: id, state: m.reports.LoadDetail(m.ctx, id)}
	}
}

func (m Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-4)
		m.clampOffset()

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case listLoadedMsg:
		m.list = msg.state
		m.cursor = 0
		m.offset = 0

		return m, nil

	case detailLoadedMsg:
		m.detail = msg.state
		if ready, ok := msg.state.(usecase.DetailReady); ok {
			m.viewport.SetContent(RenderReport(ready.Report, m.width))
			m.viewport.GotoTop()
			if m.unread[string(msg.id)] {
				delete(m.unread, string(msg.id))
				if m.onOpen != nil {
					m.onOpen(msg.id)
				}
			}
		}

		return m, nil

	case tea.KeyMsg:
		if m.screen == screenDetail {
			return m.updateDetail(msg)
		}

		return m.updateList(msg)
	}

	return m, nil
}

func (m Browser) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	reports := m.listed()

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.clampOffset()
		}

	case "down", "j":
		if m.cursor < len(reports)-1 {
			m.cursor++
			m.clampOffset()
		}

	case "home", "g":
		m.cursor = 0
		m.clampOffset()

	case "end", "G":
		m.cursor = max(0, len(reports)-1)
		m.clampOffset()

	case "r":
		m.list = usecase.Loading{}

		return m, m.loadList()

	case "enter":
		if len(reports) > 0 {
			m.screen = screenDetail
			m.detail = usecase.Loading{}

			return m, m.loadDetail(reports[m.cursor].ID)
		}
	}

	return m, nil
}

func (m Browser) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace", "left", "h":
		m.screen = screenList

		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

func (m Browser) listed() []entity.ReportSummary {
	if ready, ok := m.list.(usecase.Ready); ok {
		return ready.Reports
	}

	return nil
}

func (m Browser) visibleRows() int {
	return max(1, m.height-5)
}

func (m *Browser) clampOffset() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

func (m Browser) View() string {
	if m.screen == screenDetail {
		return m.viewDetail()
	}

	return m.viewList()
}

func (m Browser) viewList() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Accident reports"))
	b.WriteString("\n\n")

	switch state := m.list.(type) {
	case usecase.Loading:
		b.WriteString(m.spinner.View() + " Loading reports...")
	case usecase.Unauthenticated:
		b.WriteString(errorStyle.Render("Not signed in.") + " Run `dashcam login` first.")
	case usecase.Empty:
		b.WriteString(dimStyle.Render("No reports yet. Upload a recording to get one."))
	case usecase.Failed:
		b.WriteString(errorStyle.Render(state.Reason))
	case usecase.Ready:
		b.WriteString(headerStyle.Render(fmt.Sprintf("%-12s %-10s %-7s %s", "WHEN", "TYPE", "FAULT", "TITLE")))
		b.WriteString("\n")
		end := min(len(state.Reports), m.offset+m.visibleRows())
		for i := m.offset; i < end; i++ {
			row := m.renderRow(state.Reports[i])
			if i == m.cursor {
				row = selectedStyle.Render(row)
			} else {
				row = normalStyle.Render(row)
			}
			b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Left, row))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ move · enter open · r reload · q quit"))

	return b.String()
}

func (m Browser) renderRow(r entity.ReportSummary) string {
	date := util.FormatAge(r.CreatedAt.Time, m.now())

	fault := "-"
	if r.FaultRatio != nil {
		fault = r.FaultRatio.String()
	}

	title := r.Title
	if m.unread[string(r.ID)] {
		title = newTag.Render("NEW") + " " + title
	}

	return fmt.Sprintf("%-12s %-10s %-7s %s", date, truncate(r.AccidentType, 10), fault, title)
}

func (m Browser) viewDetail() string {
	switch state := m.detail.(type) {
	case usecase.Loading:
		return m.spinner.View() + " Loading report..."
	case usecase.Unauthenticated:
		return errorStyle.Render("Not signed in.") + "\n\n" + helpStyle.Render("esc back")
	case usecase.Failed:
		return errorStyle.Render(state.Reason) + "\n\n" + helpStyle.Render("esc back")
	case usecase.DetailReady:
		return titleStyle.Render(state.Report.Title) + "\n" +
			m.viewport.View() + "\n" +
			helpStyle.Render("↑/↓ scroll · esc back · q quit")
	}

	return ""
}

// RenderReport lays out a report as plain scrollable text
func RenderReport(r *entity.ReportDetail, width int) string {
	wrap := lipgloss.NewStyle().Width(max(20, width-2))

	var b strings.Builder
	if r.AccidentType != "" {
		b.WriteString(dimStyle.Render("Type: ") + r.AccidentType + "\n")
	}
	if !r.CreatedAt.IsZero() {
		b.WriteString(dimStyle.Render("Date: ") + r.CreatedAt.Format("2006-01-02 15:04") + "\n")
	}
	if r.FaultRatio != nil {
		b.WriteString(dimStyle.Render("Fault (you:other): ") + faultStyle.Render(r.FaultRatio.String()) + "\n")
	}
	if r.VideoURL != nil && *r.VideoURL != "" {
		b.WriteString(dimStyle.Render("Video: ") + *r.VideoURL + "\n")
	}

	if r.Summary != "" {
		b.WriteString(sectionStyle.Render("Summary") + "\n")
		b.WriteString(wrap.Render(r.Summary) + "\n")
	}

	if len(r.Laws) > 0 {
		b.WriteString(sectionStyle.Render("Applicable law") + "\n")
		for _, law := range r.Laws {
			heading := law.Title
			if law.Article != "" {
				heading += " " + law.Article
			}
			b.WriteString("• " + heading + "\n")
			if law.Content != "" {
				b.WriteString(wrap.Render("  "+law.Content) + "\n")
			}
		}
	}

	if len(r.Precedents) > 0 {
		b.WriteString(sectionStyle.Render("Precedents") + "\n")
		for _, p := range r.Precedents {
			heading := p.CaseNumber
			if p.Court != "" {
				heading += " (" + p.Court + ")"
			}
			b.WriteString("• " + heading + "\n")
			if p.Summary != "" {
				b.WriteString(wrap.Render("  "+p.Summary) + "\n")
			}
		}
	}

	if len(r.Evidence) > 0 {
		b.WriteString(sectionStyle.Render("Evidence") + "\n")
		for _, e := range r.Evidence {
			line := "• " + e.Label
			if e.URL != "" {
				line += " " + dimStyle.Render(e.URL)
			}
			b.WriteString(line + "\n")
		}
	}

	return b.String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n-1]) + "…"
}
