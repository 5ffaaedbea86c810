package tui_test

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.trai.ch/uifirst/internal/adapters/tui"
	"go.trai.ch/uifirst/internal/core/domain"
)

func TestPresenter_Lifecycle(t *testing.T) {
	model := tui.NewModel(io.Discard)
	presenter := tui.NewPresenter(
		&model,
		tea.WithInput(strings.NewReader("")),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
		tea.WithoutRenderer(),
	)

	require.NoError(t, presenter.Start(context.Background()))
	presenter.OnFrame(domain.FrameReport{Frame: 1, Posted: []domain.NodeID{10}})
	require.NoError(t, presenter.Stop())
	require.NoError(t, presenter.Wait())

	require.Equal(t, 1, model.Frames)
	require.Equal(t, 1, model.Totals.Posted)
}
