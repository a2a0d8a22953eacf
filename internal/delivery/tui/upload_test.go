package tui

import (
	"context"
	"testing"

	"dashcam/internal/domain/entity"
	"dashcam/internal/errors"
	"dashcam/internal/usecase"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drive feeds the model its own commands until the stream ends
func drive(t *testing.T, m *Upload) {
	t.Helper()

	cmd := m.Init()
	for cmd != nil {
		msg := cmd()
		if _, ok := msg.(uploadEventMsg); !ok {
			return
		}
		_, cmd = m.Update(msg)
	}
}

func TestUpload_Completed(t *testing.T) {
	t.Parallel()

	stream := usecase.NewUploadStream(context.Background(), func(_ context.Context, emit func(usecase.UploadEvent) bool) usecase.UploadEvent {
		for _, p := range []int{0, 50, 100} {
			emit(usecase.UploadProgress{Percent: p})
		}

		return usecase.UploadCompleted{Receipt: &entity.UploadReceipt{ID: "v-9", AnalysisStatus: "PENDING"}}
	})

	m := NewUpload("clip.mp4", 2048, stream, func() {})
	drive(t, m)

	require.NotNil(t, m.Receipt())
	assert.Equal(t, "v-9", m.Receipt().ID)
	assert.NoError(t, m.Err())
	assert.Equal(t, 100, m.percent)

	view := m.View()
	assert.Contains(t, view, "Upload complete")
	assert.Contains(t, view, "pending")
	assert.Contains(t, view, "2.0 KB")
}

func TestUpload_Failed(t *testing.T) {
	t.Parallel()

	boom := errors.New("presign rejected")
	stream := usecase.NewUploadStream(context.Background(), func(context.Context, func(usecase.UploadEvent) bool) usecase.UploadEvent {
		return usecase.UploadFailed{Err: boom, Stage: usecase.StagePresign}
	})

	m := NewUpload("clip.mp4", 10, stream, func() {})
	drive(t, m)

	assert.Nil(t, m.Receipt())
	assert.ErrorIs(t, m.Err(), boom)
	assert.Contains(t, m.View(), "Upload failed during presign")
}

func TestUpload_CtrlCAbandonsStream(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancelled := make(chan struct{})
	stream := usecase.NewUploadStream(ctx, func(ctx context.Context, emit func(usecase.UploadEvent) bool) usecase.UploadEvent {
		emit(usecase.UploadProgress{Percent: 0})
		<-ctx.Done()
		close(cancelled)

		return usecase.UploadFailed{Err: ctx.Err(), Stage: usecase.StageTransfer}
	})

	m := NewUpload("clip.mp4", 10, stream, cancel)
	_, cmd := m.Update(m.Init()())
	require.NotNil(t, cmd)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.ErrorIs(t, m.Err(), errUploadAbandoned)

	<-cancelled
}

func TestUpload_CloseAfterCompletionKeepsReceipt(t *testing.T) {
	t.Parallel()

	stream := usecase.NewUploadStream(context.Background(), func(context.Context, func(usecase.UploadEvent) bool) usecase.UploadEvent {
		return usecase.UploadCompleted{Receipt: &entity.UploadReceipt{ID: "v-1"}}
	})

	m := NewUpload("clip.mp4", 10, stream, func() {})
	drive(t, m)
	m.Close()

	assert.NoError(t, m.Err())
	require.NotNil(t, m.Receipt())
}
