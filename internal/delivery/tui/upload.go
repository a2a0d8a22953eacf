package tui

import (
	"context"
	"fmt"
	"strings"

	"dashcam/internal/domain/entity"
	"dashcam/internal/errors"
	"dashcam/internal/usecase"
	"dashcam/internal/util"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

var errUploadAbandoned = errors.New("upload cancelled")

type uploadEventMsg struct{ event usecase.UploadEvent }

// Upload shows a progress bar while an UploadStream runs
type Upload struct {
	name    string
	size    int64
	events  <-chan usecase.UploadEvent
	stop    chan struct{}
	cancel  context.CancelFunc
	bar     progress.Model
	percent int

	receipt *entity.UploadReceipt
	failed  *usecase.UploadFailed
	done    bool
}

// NewUpload starts consuming stream. The stream is iterated on a background goroutine
// and its events are delivered as messages. cancel must cancel the stream's context.
func NewUpload(name string, size int64, stream *usecase.UploadStream, cancel context.CancelFunc) *Upload {
	events := make(chan usecase.UploadEvent)
	stop := make(chan struct{})

	go func() {
		defer close(events)
		for ev := range stream.Events() {
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	return &Upload{
		name:   name,
		size:   size,
		events: events,
		stop:   stop,
		cancel: cancel,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(50)),
	}
}

// Receipt is set once the upload completed
func (m *Upload) Receipt() *entity.UploadReceipt { return m.receipt }

// Err is set once the upload failed or was abandoned
func (m *Upload) Err() error {
	if m.failed != nil {
		return m.failed.Err
	}

	return nil
}

func (m *Upload) Init() tea.Cmd {
	return m.next()
}

func (m *Upload) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return nil
		}

		return uploadEventMsg{event: ev}
	}
}

func (m *Upload) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = min(80, max(10, msg.Width-4))

		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || (m.done && msg.String() == "q") {
			m.abandon()

			return m, tea.Quit
		}

		return m, nil

	case uploadEventMsg:
		switch ev := msg.event.(type) {
		case usecase.UploadProgress:
			m.percent = ev.Percent

			return m, m.next()
		case usecase.UploadCompleted:
			m.percent = 100
			m.receipt = ev.Receipt
			m.done = true

			return m, tea.Quit
		case usecase.UploadFailed:
			m.failed = &ev
			m.done = true

			return m, tea.Quit
		}
	}

	return m, nil
}

// Close stops consuming the stream if it has not finished; Err then reports the abandonment
func (m *Upload) Close() {
	m.abandon()
}

func (m *Upload) abandon() {
	if !m.done {
		m.cancel()
		close(m.stop)
		m.done = true
		m.failed = &usecase.UploadFailed{Err: errUploadAbandoned, Stage: usecase.StageTransfer}
	}
}

func (m *Upload) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Uploading " + m.name))
	b.WriteString(" " + dimStyle.Render(util.FormatBytes(m.size)))
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(float64(m.percent) / 100))
	b.WriteString("\n\n")

	switch {
	case m.receipt != nil:
		b.WriteString(faultStyle.Render("Upload complete."))
		if m.receipt.ID != "" {
			b.WriteString(fmt.Sprintf(" Video %s is %s.", m.receipt.ID, statusOrQueued(m.receipt.AnalysisStatus)))
		}
	case m.failed != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Upload failed during %s: %v", m.failed.Stage, m.failed.Err)))
	default:
		b.WriteString(helpStyle.Render("ctrl+c cancel"))
	}
	b.WriteString("\n")

	return b.String()
}

func statusOrQueued(status string) string {
	if status == "" {
		return "queued for analysis"
	}

	return strings.ToLower(status)
}
