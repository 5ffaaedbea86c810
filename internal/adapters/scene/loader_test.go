package scene_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/uifirst/internal/adapters/scene"
	"go.trai.ch/uifirst/internal/core/domain"
)

func TestLoader_Load(t *testing.T) {
	path := filepath.Join("testdata", "fling.yaml")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	script, data, err := scene.NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, raw, data)

	assert.Equal(t, "fling", script.Name)
	assert.Equal(t, 16*time.Millisecond, script.FrameInterval)
	assert.Equal(t, 2*time.Millisecond, script.RenderDelay)
	require.Len(t, script.Frames, 2)

	first, second := script.Frames[0], script.Frames[1]
	assert.Equal(t, uint64(1), first.Number)
	assert.Equal(t, uint64(2), second.Number)
	assert.Equal(t, 16*time.Millisecond, second.Time.Sub(first.Time))

	require.Len(t, first.Events, 1)
	assert.Equal(t, domain.SceneEvent{
		Kind:     domain.EventResponse,
		UniqueID: 7,
		AppPid:   100,
		SceneID:  "APP_LIST_FLING",
	}, first.Events[0])
	assert.Empty(t, second.Events)

	require.Len(t, first.Screens, 1)
	assert.True(t, first.Screens[0].PoweredOn)
	assert.Equal(t, domain.GamutDisplayP3, first.Screens[0].Gamut)
	assert.Equal(t, domain.NodeID(20), first.FocusNodeID)

	require.Len(t, first.Nodes, 2)
	leash := first.Nodes[0]
	assert.Equal(t, domain.KindLeashWindow, leash.Kind)
	assert.True(t, leash.OnTree)
	assert.True(t, leash.ShouldPaint)
	assert.True(t, leash.Animating)
	assert.Equal(t, domain.NodeID(10), leash.InstanceRootID)
	assert.Equal(t, []domain.NodeID{11}, leash.Children)
	assert.Equal(t, domain.GravityResize, leash.Window.Gravity)
	assert.Equal(t, domain.Rect{Width: 100, Height: 200}, leash.DirtyRect)

	app := first.Nodes[1]
	assert.Equal(t, domain.KindAppWindow, app.Kind)
	assert.Equal(t, domain.GamutBT2020, app.ColorGamut)
	assert.Equal(t, domain.Region{{Width: 100, Height: 200}}, app.VisibleRegion)
	assert.Equal(t, domain.Rect{Width: 10, Height: 10}, app.Window.OldDirtyRect)
}

func TestLoader_Load_Missing(t *testing.T) {
	_, _, err := scene.NewLoader().Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrScriptReadFailed.Error())
}

func TestParse_Defaults(t *testing.T) {
	script, err := scene.Parse([]byte("frames:\n  - nodes:\n      - id: 3\n        onTree: false\n"))
	require.NoError(t, err)

	assert.Equal(t, scene.DefaultFrameInterval, script.FrameInterval)
	assert.Equal(t, scene.DefaultRenderDelay, script.RenderDelay)
	require.Len(t, script.Frames, 1)
	assert.Equal(t, domain.KindUnknown, script.Frames[0].Nodes[0].Kind)
	assert.False(t, script.Frames[0].Nodes[0].OnTree)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed", content: "frames: ["},
		{name: "no frames", content: "name: empty"},
		{name: "bad interval", content: "frameInterval: fast\nframes: [{}]"},
		{name: "unknown kind", content: "frames:\n  - nodes: [{id: 1, kind: dialog}]"},
		{name: "unknown gamut", content: "frames:\n  - screens: [{id: 1, gamut: cmyk}]"},
		{name: "unknown switch", content: "frames:\n  - nodes: [{id: 1, switch: maybe}]"},
		{name: "unknown gravity", content: "frames:\n  - nodes: [{id: 1, window: {gravity: up}}]"},
		{name: "unknown event", content: "frames:\n  - events: [{kind: cancel}]"},
		{name: "unknown animate scene", content: "frames:\n  - animateScene: spin"},
		{name: "zero id", content: "frames:\n  - nodes: [{name: x}]"},
		{name: "duplicate id", content: "frames:\n  - nodes: [{id: 1}, {id: 1}]"},
		{name: "missing child", content: "frames:\n  - nodes: [{id: 1, children: [2]}]"},
		{name: "parent mismatch", content: "frames:\n  - nodes: [{id: 1, children: [2]}, {id: 2, parent: 3}]"},
		{name: "cycle", content: "frames:\n  - nodes: [{id: 1, parent: 2, children: [2]}, {id: 2, parent: 1, children: [1]}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scene.Parse([]byte(tt.content))
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrScriptInvalid.Error())
		})
	}
}
