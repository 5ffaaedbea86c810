package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"testing/synctest"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/uifirst/internal/adapters/scene"
	"go.trai.ch/uifirst/internal/adapters/store"
	"go.trai.ch/uifirst/internal/app"
	"go.trai.ch/uifirst/internal/core/domain"
	"go.trai.ch/uifirst/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader    *mocks.MockConfigLoader
	watcher   *mocks.MockConfigWatcher
	scripts   *mocks.MockScriptLoader
	store     *mocks.MockReportStore
	inspector *mocks.MockInspector
	logger    *mocks.MockLogger
	out       *bytes.Buffer
	app       *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Complete(gomock.Any()).AnyTimes()
	vertex.EXPECT().Cached().AnyTimes()
	recorder := mocks.NewMockTaskRecorder(ctrl)
	recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return(vertex).AnyTimes()

	f := &fixture{
		loader:    mocks.NewMockConfigLoader(ctrl),
		watcher:   mocks.NewMockConfigWatcher(ctrl),
		scripts:   mocks.NewMockScriptLoader(ctrl),
		store:     mocks.NewMockReportStore(ctrl),
		inspector: mocks.NewMockInspector(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		out:       new(bytes.Buffer),
	}
	f.app = app.New(f.loader, f.watcher, f.scripts, f.store, f.inspector, recorder, f.logger).
		WithOutput(f.out).
		WithTeaOptions(
			tea.WithInput(strings.NewReader("")),
			tea.WithOutput(io.Discard),
			tea.WithoutSignalHandler(),
			tea.WithoutRenderer(),
		)
	return f
}

func loadScript(t *testing.T) (*domain.Script, []byte) {
	t.Helper()
	raw, err := os.ReadFile("testdata/leash.yaml")
	require.NoError(t, err)
	script, err := scene.Parse(raw)
	require.NoError(t, err)
	return script, raw
}

func testConfig() domain.Config {
	cfg := domain.DefaultConfig()
	cfg.Workers = 2
	return cfg
}

func (f *fixture) expectLoad(t *testing.T) []byte {
	t.Helper()
	script, raw := loadScript(t)
	f.loader.EXPECT().Load("uifirst.yaml").Return(testConfig(), nil)
	f.scripts.EXPECT().Load("leash.yaml").Return(script, raw, nil)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return raw
}

func TestApp_Replay(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectLoad(t)

		err := f.app.Replay(context.Background(), "leash.yaml", app.ReplayOptions{
			ConfigPath: "uifirst.yaml",
			OutputMode: "linear",
		})
		require.NoError(t, err)

		out := f.out.String()
		assert.Contains(t, out, "frame 2 mode=single")
		assert.Contains(t, out, "→ posted 10")
		assert.Contains(t, out, "→ completed 10")
		assert.Contains(t, out, "replayed 3 frames: posted=2 purged=0 completed=1")
	})
}

func TestApp_Replay_JSON(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectLoad(t)

		err := f.app.Replay(context.Background(), "leash.yaml", app.ReplayOptions{
			ConfigPath: "uifirst.yaml",
			OutputMode: "json",
		})
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(f.out.String()), "\n")
		require.Len(t, lines, 3)
		var rep domain.FrameReport
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &rep))
		assert.Equal(t, uint64(2), rep.Frame)
		assert.Equal(t, []domain.NodeID{10}, rep.Posted)
		assert.Positive(t, rep.Phases)
	})
}

func TestApp_Replay_TUI(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectLoad(t)

		err := f.app.Replay(context.Background(), "leash.yaml", app.ReplayOptions{
			ConfigPath: "uifirst.yaml",
			OutputMode: "tui",
		})
		require.NoError(t, err)
		assert.Empty(t, f.out.String())
	})
}

func TestApp_Replay_Save(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		raw := f.expectLoad(t)

		var saved domain.Run
		f.store.EXPECT().Put(gomock.Any()).DoAndReturn(func(run domain.Run) error {
			saved = run
			return nil
		})

		err := f.app.Replay(context.Background(), "leash.yaml", app.ReplayOptions{
			ConfigPath: "uifirst.yaml",
			OutputMode: "linear",
			Save:       true,
		})
		require.NoError(t, err)

		assert.Equal(t, "leash", saved.Script)
		assert.Equal(t, store.Digest(raw), saved.Digest)
		assert.Len(t, saved.Frames, 3)
	})
}

func TestApp_Replay_SaveError(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectLoad(t)
		f.store.EXPECT().Put(gomock.Any()).Return(errors.New("disk full"))

		err := f.app.Replay(context.Background(), "leash.yaml", app.ReplayOptions{
			ConfigPath: "uifirst.yaml",
			OutputMode: "linear",
			Save:       true,
		})
		require.ErrorContains(t, err, "disk full")
	})
}

func TestApp_Replay_ConfigError(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load("uifirst.yaml").Return(domain.Config{}, errors.New("bad config"))

	err := f.app.Replay(context.Background(), "leash.yaml", app.ReplayOptions{ConfigPath: "uifirst.yaml"})
	require.ErrorContains(t, err, "failed to load configuration")
	require.ErrorContains(t, err, "bad config")
}

func TestApp_Replay_ScriptError(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load("uifirst.yaml").Return(testConfig(), nil)
	f.scripts.EXPECT().Load("missing.yaml").Return(nil, nil, domain.ErrScriptReadFailed)

	err := f.app.Replay(context.Background(), "missing.yaml", app.ReplayOptions{ConfigPath: "uifirst.yaml"})
	require.ErrorContains(t, err, "failed to load scene script")
}

func TestApp_Replay_Cancelled(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectLoad(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := f.app.Replay(ctx, "leash.yaml", app.ReplayOptions{
			ConfigPath: "uifirst.yaml",
			OutputMode: "linear",
		})
		require.ErrorIs(t, err, domain.ErrReplayFailed)
		require.ErrorIs(t, err, context.Canceled)
	})
}
