package uifirst_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/uifirst/internal/core/domain"
	"go.trai.ch/uifirst/internal/core/ports"
	"go.trai.ch/uifirst/internal/core/ports/mocks"
	"go.trai.ch/uifirst/internal/engine/uifirst"
	"go.uber.org/mock/gomock"
)

var epoch = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	displayID domain.NodeID = 1
	leashID   domain.NodeID = 10
	appID     domain.NodeID = 11
	windowA   domain.NodeID = 20
	windowB   domain.NodeID = 30
	cardID    domain.NodeID = 40
	entryView domain.NodeID = 5
)

// fakePool accepts tasks up to its capacity and completes them only when a
// test calls finish.
type fakePool struct {
	capacity    int
	saturated   bool
	tasks       []domain.RenderTask
	completions chan domain.Completion
	released    int
}

func newFakePool(capacity int) *fakePool {
	return &fakePool{
		capacity:    capacity,
		completions: make(chan domain.Completion, 64),
	}
}

func (p *fakePool) Submit(_ context.Context, task domain.RenderTask) error {
	if p.saturated {
		return domain.ErrPoolSaturated
	}
	p.tasks = append(p.tasks, task)
	return nil
}

func (p *fakePool) Completions() <-chan domain.Completion { return p.completions }
func (p *fakePool) Capacity() int                         { return p.capacity }
func (p *fakePool) ReleaseIdle()                          { p.released++ }
func (p *fakePool) Close() error                          { return nil }

func (p *fakePool) lastTask(t *testing.T, id domain.NodeID) domain.RenderTask {
	t.Helper()
	for i := len(p.tasks) - 1; i >= 0; i-- {
		if p.tasks[i].NodeID == id {
			return p.tasks[i]
		}
	}
	require.Failf(t, "no task", "node %d was never submitted", id)
	return domain.RenderTask{}
}

// finish reports the last task of id as completed with status.
func (p *fakePool) finish(t *testing.T, id domain.NodeID, status domain.ProcessStatus) {
	t.Helper()
	task := p.lastTask(t, id)
	c := domain.Completion{NodeID: id, Generation: task.Generation, Status: status}
	if status == domain.StatusDone {
		c.Surface = &domain.Surface{
			NodeID:        id,
			Generation:    task.Generation,
			Size:          task.Params.Size,
			Gamut:         task.Params.TargetGamut,
			ContentHash:   task.Generation,
			DrawnSurfaces: task.SubSurfaces,
		}
	}
	p.completions <- c
}

func newTestManager(t *testing.T, cfg domain.Config, pool ports.WorkerPool) *uifirst.Manager {
	t.Helper()
	ctrl := gomock.NewController(t)

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()

	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		},
	).AnyTimes()

	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Complete(gomock.Any()).AnyTimes()
	vertex.EXPECT().Cached().AnyTimes()
	recorder := mocks.NewMockTaskRecorder(ctrl)
	recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return(vertex).AnyTimes()

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	return uifirst.NewManager(cfg, pool, tracer, recorder, logger)
}

func multiConfig() domain.Config {
	cfg := domain.DefaultConfig()
	cfg.Mode = domain.ModeMulti
	return cfg
}

func newFrame(n uint64, nodes ...domain.SurfaceNode) *domain.Frame {
	return &domain.Frame{
		Number:  n,
		Time:    epoch.Add(time.Duration(n) * 16 * time.Millisecond),
		Screens: []domain.Screen{{ID: 1, PoweredOn: true}},
		Nodes:   nodes,
	}
}

func displayNode(children ...domain.NodeID) domain.SurfaceNode {
	return domain.SurfaceNode{ID: displayID, Name: "display", OnTree: true, Children: children}
}

func leashNode(animating bool) domain.SurfaceNode {
	return domain.SurfaceNode{
		ID:          leashID,
		ParentID:    displayID,
		ScreenID:    1,
		Name:        "leash",
		Kind:        domain.KindLeashWindow,
		FirstLevel:  true,
		OnTree:      true,
		ShouldPaint: true,
		Animating:   animating,
		Children:    []domain.NodeID{appID},
		Window:      domain.WindowInfo{Size: domain.Size{Width: 100, Height: 200}},
	}
}

func appNode() domain.SurfaceNode {
	return domain.SurfaceNode{
		ID:       appID,
		ParentID: leashID,
		ScreenID: 1,
		Name:     "app",
		Kind:     domain.KindAppWindow,
		Pid:      100,
		OnTree:   true,
		Window:   domain.WindowInfo{Size: domain.Size{Width: 100, Height: 200}},
	}
}

func leashFrame(n uint64, animating bool) *domain.Frame {
	return newFrame(n, displayNode(leashID), leashNode(animating), appNode())
}

func windowNode(id domain.NodeID, dirty bool) domain.SurfaceNode {
	n := domain.SurfaceNode{
		ID:            id,
		ParentID:      displayID,
		ScreenID:      1,
		Name:          "window",
		Kind:          domain.KindAppWindow,
		Pid:           int32(id),
		FirstLevel:    true,
		OnTree:        true,
		ShouldPaint:   true,
		VisibleRegion: domain.Region{{Width: 100, Height: 100}},
		Window:        domain.WindowInfo{Size: domain.Size{Width: 100, Height: 100}},
	}
	if dirty {
		n.DirtyRect = domain.Rect{Width: 10, Height: 10}
	}
	return n
}

func windowFrame(n uint64, dirty bool, ids ...domain.NodeID) *domain.Frame {
	nodes := []domain.SurfaceNode{displayNode(ids...)}
	for _, id := range ids {
		nodes = append(nodes, windowNode(id, dirty))
	}
	return newFrame(n, nodes...)
}

func TestManager_LeashNeedsTwoAnimatedFrames(t *testing.T) {
	t.Parallel()

	pool := newFakePool(4)
	m := newTestManager(t, domain.DefaultConfig(), pool)
	ctx := context.Background()

	rep := m.RunFrame(ctx, leashFrame(1, true))
	assert.Empty(t, rep.Posted)
	sub, ok := m.Subtree(leashID)
	require.True(t, ok)
	assert.Equal(t, domain.CacheNone, sub.LastFrameCacheType)
	assert.Equal(t, domain.StatusUnknown, m.NodeStatus(leashID))

	rep = m.RunFrame(ctx, leashFrame(2, true))
	assert.Equal(t, []domain.NodeID{leashID}, rep.Posted)
	assert.Equal(t, domain.CacheLeashWindow, sub.LastFrameCacheType)
	assert.Equal(t, domain.StatusDoing, m.NodeStatus(leashID))

	rep = m.RunFrame(ctx, leashFrame(3, false))
	assert.Empty(t, rep.Posted)
	assert.Equal(t, domain.CacheNone, sub.LastFrameCacheType)
	assert.Equal(t, domain.CacheNone, sub.CacheType)

	// The worker still owns the subtree, so the reset waits for its report.
	assert.Equal(t, domain.StatusDoing, m.NodeStatus(leashID))
	pool.finish(t, leashID, domain.StatusDone)
	m.RunFrame(ctx, leashFrame(4, false))
	assert.Equal(t, domain.StatusUnknown, m.NodeStatus(leashID))
	_, valid := m.CompletedSurface(leashID)
	assert.False(t, valid)
}

func TestManager_SingleAnimatedFrameNeverEnables(t *testing.T) {
	t.Parallel()

	pool := newFakePool(4)
	m := newTestManager(t, domain.DefaultConfig(), pool)
	ctx := context.Background()

	m.RunFrame(ctx, leashFrame(1, true))
	rep := m.RunFrame(ctx, leashFrame(2, false))

	assert.Empty(t, rep.Posted)
	assert.Empty(t, pool.tasks)
	sub, ok := m.Subtree(leashID)
	require.True(t, ok)
	assert.Equal(t, domain.CacheNone, sub.CacheType)
	assert.False(t, sub.SubThreadAssignable)
}

func TestManager_FocusedWindowIsNeverPending(t *testing.T) {
	t.Parallel()

	pool := newFakePool(4)
	m := newTestManager(t, domain.DefaultConfig(), pool)
	ctx := context.Background()

	for n := uint64(1); n <= 4; n++ {
		frame := leashFrame(n, true)
		frame.FocusLeashID = leashID
		frame.Nodes[1].Switch = domain.SwitchForceEnable

		rep := m.RunFrame(ctx, frame)
		assert.Empty(t, rep.Posted)
		assert.NotContains(t, m.PendingIDs(), leashID)
	}
	_, ok := m.Subtree(leashID)
	assert.False(t, ok)
}

func TestManager_WindowsThreshold(t *testing.T) {
	t.Parallel()

	cfg := multiConfig()
	cfg.WindowsThreshold = 1
	pool := newFakePool(4)
	m := newTestManager(t, cfg, pool)
	ctx := context.Background()

	m.RunFrame(ctx, windowFrame(1, true, windowA, windowB))
	frame := windowFrame(2, true, windowA, windowB)
	rep := m.RunFrame(ctx, frame)

	assert.Equal(t, []domain.NodeID{windowA}, rep.Posted)
	assert.Equal(t, 1, rep.WindowCount)
	assert.True(t, m.Classifier().IsExceededWindowsThreshold(&frame.Nodes[2]))

	// The focused window is never counted against the cap.
	frame.FocusNodeID = windowB
	assert.False(t, m.Classifier().IsExceededWindowsThreshold(&frame.Nodes[2]))

	// Once the first window leaves, the second needs its own debounce frame.
	m.RunFrame(ctx, windowFrame(3, true, windowB))
	rep = m.RunFrame(ctx, windowFrame(4, true, windowB))
	assert.Equal(t, []domain.NodeID{windowB}, rep.Posted)
}

func TestManager_WindowsThresholdKeepsSlotHolder(t *testing.T) {
	t.Parallel()

	cfg := multiConfig()
	cfg.WindowsThreshold = 1
	pool := newFakePool(4)
	m := newTestManager(t, cfg, pool)
	ctx := context.Background()

	m.RunFrame(ctx, windowFrame(1, true, windowB))
	rep := m.RunFrame(ctx, windowFrame(2, true, windowB))
	require.Equal(t, []domain.NodeID{windowB}, rep.Posted)

	// A newcomer earlier in the tree does not take the slot of the cached window.
	m.RunFrame(ctx, windowFrame(3, true, windowA, windowB))
	pool.finish(t, windowB, domain.StatusDone)
	rep = m.RunFrame(ctx, windowFrame(4, true, windowA, windowB))

	assert.Equal(t, []domain.NodeID{windowB}, rep.Posted)
	assert.Equal(t, 1, rep.WindowCount)
	b, ok := m.Subtree(windowB)
	require.True(t, ok)
	assert.Equal(t, domain.CacheNonFocusWindow, b.CacheType)
	if a, ok := m.Subtree(windowA); ok {
		assert.Equal(t, domain.CacheNone, a.CacheType)
	}

	// The slot frees once the holder leaves the tree.
	m.RunFrame(ctx, windowFrame(5, true, windowA))
	rep = m.RunFrame(ctx, windowFrame(6, true, windowA))
	assert.Equal(t, []domain.NodeID{windowA}, rep.Posted)
	assert.Equal(t, 1, rep.WindowCount)
}

const (
	rightID domain.NodeID = 50
	videoID domain.NodeID = 60
)

// focusFrame lays out [windowA, focused windowB, rightID, videoID] under
// the display.
func focusFrame(n uint64) *domain.Frame {
	f := windowFrame(n, true, windowA, windowB, rightID, videoID)
	f.FocusNodeID = windowB
	f.Nodes[4].Name = "hipreview-player"
	return f
}

func TestManager_FocusNeighboursDispatchFirst(t *testing.T) {
	t.Parallel()

	pool := newFakePool(1)
	m := newTestManager(t, multiConfig(), pool)
	ctx := context.Background()

	m.RunFrame(ctx, focusFrame(1))
	rep := m.RunFrame(ctx, focusFrame(2))

	// Both neighbours share the focus class; the later insertion goes first.
	assert.Equal(t, []domain.NodeID{rightID}, rep.Posted)
	assert.Equal(t, []domain.NodeID{windowA, videoID}, rep.Demoted)
	assert.NotContains(t, m.PendingIDs(), windowB)

	want := map[domain.NodeID]domain.Priority{
		windowA: domain.PriorityFocusNode,
		rightID: domain.PriorityFocusNode,
		videoID: domain.PriorityVideo,
	}
	for id, priority := range want {
		sub, ok := m.Subtree(id)
		require.True(t, ok)
		assert.Equal(t, priority, sub.Priority, "node %d", id)
		assert.True(t, sub.HighPostPriority, "node %d", id)
	}
	assert.True(t, pool.lastTask(t, rightID).HighPriority)
}

func TestManager_HighPostWithoutFocus(t *testing.T) {
	t.Parallel()

	ids := []domain.NodeID{20, 30, 50, 60, 70, 80}
	pool := newFakePool(len(ids))
	m := newTestManager(t, multiConfig(), pool)
	ctx := context.Background()

	m.RunFrame(ctx, windowFrame(1, true, ids...))
	rep := m.RunFrame(ctx, windowFrame(2, true, ids...))
	require.Len(t, rep.Posted, len(ids))
	for _, id := range ids {
		pool.finish(t, id, domain.StatusDone)
	}

	// Every window now holds a cache, so all sort as low priority.
	rep = m.RunFrame(ctx, windowFrame(3, true, ids...))
	require.Len(t, rep.Posted, len(ids))

	// Later insertions sort first; only the first five are marked.
	first, ok := m.Subtree(ids[0])
	require.True(t, ok)
	assert.Equal(t, domain.PriorityLow, first.Priority)
	assert.False(t, first.HighPostPriority)
	assert.False(t, pool.lastTask(t, ids[0]).HighPriority)
	for _, id := range ids[1:] {
		sub, _ := m.Subtree(id)
		assert.True(t, sub.HighPostPriority, "node %d", id)
		assert.True(t, pool.lastTask(t, id).HighPriority, "node %d", id)
	}
}

func TestManager_HighPostDisabledWithoutOptSchedule(t *testing.T) {
	t.Parallel()

	cfg := multiConfig()
	cfg.OptSchedule = false
	pool := newFakePool(1)
	m := newTestManager(t, cfg, pool)
	ctx := context.Background()

	m.RunFrame(ctx, focusFrame(1))
	m.RunFrame(ctx, focusFrame(2))

	sub, ok := m.Subtree(videoID)
	require.True(t, ok)
	assert.Equal(t, domain.PriorityVideo, sub.Priority)
	assert.False(t, sub.HighPostPriority)
}

func TestManager_ReuseCountTracksConsecutivePurges(t *testing.T) {
	t.Parallel()

	pool := newFakePool(4)
	m := newTestManager(t, multiConfig(), pool)
	ctx := context.Background()

	m.RunFrame(ctx, windowFrame(1, true, windowA))
	m.RunFrame(ctx, windowFrame(2, true, windowA))
	pool.finish(t, windowA, domain.StatusDone)

	rep := m.RunFrame(ctx, windowFrame(3, false, windowA))
	assert.Equal(t, []domain.NodeID{windowA}, rep.Completed)
	assert.Equal(t, []domain.NodeID{windowA}, rep.Purged)
	sub, _ := m.Subtree(windowA)
	assert.Equal(t, 1, sub.ReuseCount)

	rep = m.RunFrame(ctx, windowFrame(4, false, windowA))
	assert.Equal(t, []domain.NodeID{windowA}, rep.Purged)
	assert.Equal(t, 2, sub.ReuseCount)

	rep = m.RunFrame(ctx, windowFrame(5, true, windowA))
	assert.Empty(t, rep.Purged)
	assert.Equal(t, []domain.NodeID{windowA}, rep.Posted)
	assert.Equal(t, 0, sub.ReuseCount)
}

func TestManager_PurgeKeepsSurfaceAndStatus(t *testing.T) {
	t.Parallel()

	pool := newFakePool(4)
	m := newTestManager(t, multiConfig(), pool)
	ctx := context.Background()

	m.RunFrame(ctx, windowFrame(1, true, windowA))
	m.RunFrame(ctx, windowFrame(2, true, windowA))
	pool.finish(t, windowA, domain.StatusDone)
	m.RunFrame(ctx, windowFrame(3, false, windowA))

	before, ok := m.CompletedSurface(windowA)
	require.True(t, ok)
	require.Equal(t, domain.StatusDone, m.NodeStatus(windowA))

	rep := m.RunFrame(ctx, windowFrame(4, false, windowA))
	require.Equal(t, []domain.NodeID{windowA}, rep.Purged)

	after, ok := m.CompletedSurface(windowA)
	require.True(t, ok)
	assert.Same(t, before, after)
	assert.Equal(t, domain.StatusDone, m.NodeStatus(windowA))
	assert.Len(t, pool.tasks, 1)
}

func TestManager_CompletionAfterTeardownIsDiscarded(t *testing.T) {
	t.Parallel()

	pool := newFakePool(4)
	m := newTestManager(t, domain.DefaultConfig(), pool)
	ctx := context.Background()

	m.RunFrame(ctx, leashFrame(1, true))
	m.RunFrame(ctx, leashFrame(2, true))
	require.Equal(t, []domain.NodeID{leashID}, m.ProcessingIDs())

	m.RunFrame(ctx, newFrame(3, displayNode()))
	assert.Empty(t, m.ProcessingIDs())
	assert.Equal(t, domain.StatusUnknown, m.NodeStatus(leashID))
	_, ok := m.Subtree(leashID)
	assert.False(t, ok)

	pool.finish(t, leashID, domain.StatusDone)
	rep := m.RunFrame(ctx, newFrame(4, displayNode()))
	assert.Equal(t, []domain.NodeID{leashID}, rep.Discarded)
	assert.Empty(t, rep.Completed)
	assert.Empty(t, m.ProcessingIDs())
	assert.Empty(t, m.PendingIDs())
	_, ok = m.CompletedSurface(leashID)
	assert.False(t, ok)
}

func TestManager_DemotesWhenPoolIsFull(t *testing.T) {
	t.Parallel()

	pool := newFakePool(1)
	m := newTestManager(t, multiConfig(), pool)
	ctx := context.Background()

	m.RunFrame(ctx, windowFrame(1, true, windowA, windowB))
	rep := m.RunFrame(ctx, windowFrame(2, true, windowA, windowB))

	// Same class, so the later insertion dispatches first.
	assert.Equal(t, []domain.NodeID{windowB}, rep.Posted)
	assert.Equal(t, []domain.NodeID{windowA}, rep.Demoted)
	assert.Equal(t, domain.StatusWaiting, m.NodeStatus(windowA))

	m.RunFrame(ctx, windowFrame(3, true, windowA, windowB))
	m.RunFrame(ctx, windowFrame(4, true, windowA, windowB))
	sub, _ := m.Subtree(windowA)
	assert.Equal(t, 3, sub.SkipCount)

	m.RunFrame(ctx, windowFrame(5, true, windowA, windowB))
	assert.Greater(t, sub.PostOrder, uint64(1)<<32)
}

func TestManager_DemotesWhenSubmitSaturates(t *testing.T) {
	t.Parallel()

	pool := newFakePool(4)
	pool.saturated = true
	m := newTestManager(t, domain.DefaultConfig(), pool)
	ctx := context.Background()

	m.RunFrame(ctx, leashFrame(1, true))
	rep := m.RunFrame(ctx, leashFrame(2, true))

	assert.Empty(t, rep.Posted)
	assert.Equal(t, []domain.NodeID{leashID}, rep.Demoted)
	assert.Equal(t, domain.StatusWaiting, m.NodeStatus(leashID))
	assert.Empty(t, m.ProcessingIDs())
}

func TestManager_PostTwiceFails(t *testing.T) {
	t.Parallel()

	pool := newFakePool(4)
	m := newTestManager(t, domain.DefaultConfig(), pool)
	ctx := context.Background()

	m.RunFrame(ctx, leashFrame(1, true))
	m.RunFrame(ctx, leashFrame(2, true))

	err := m.Post(ctx, leashID)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrPostTwice.Error())
	assert.Len(t, pool.tasks, 1)
}

func TestManager_InFlightSubtreeIsForceDrawn(t *testing.T) {
	t.Parallel()

	pool := newFakePool(4)
	m := newTestManager(t, multiConfig(), pool)
	ctx := context.Background()

	m.RunFrame(ctx, windowFrame(1, true, windowA))
	m.RunFrame(ctx, windowFrame(2, true, windowA))
	pool.finish(t, windowA, domain.StatusDone)
	m.RunFrame(ctx, windowFrame(3, true, windowA))
	require.Equal(t, []domain.NodeID{windowA}, m.ProcessingIDs())

	// Still in flight: kept out of dispatch, then redrawn even with a clean frame.
	rep := m.RunFrame(ctx, windowFrame(4, true, windowA))
	assert.Empty(t, rep.Posted)
	pool.finish(t, windowA, domain.StatusDone)

	rep = m.RunFrame(ctx, windowFrame(5, false, windowA))
	assert.Empty(t, rep.Purged)
	assert.Equal(t, []domain.NodeID{windowA}, rep.Posted)
}

func TestManager_SkippedCompletionIsRedrawn(t *testing.T) {
	t.Parallel()

	pool := newFakePool(4)
	m := newTestManager(t, multiConfig(), pool)
	ctx := context.Background()

	m.RunFrame(ctx, windowFrame(1, true, windowA))
	m.RunFrame(ctx, windowFrame(2, true, windowA))
	pool.finish(t, windowA, domain.StatusDone)
	m.RunFrame(ctx, windowFrame(3, true, windowA))
	pool.finish(t, windowA, domain.StatusSkipped)

	rep := m.RunFrame(ctx, windowFrame(4, false, windowA))
	assert.Equal(t, []domain.NodeID{windowA}, rep.Skipped)
	assert.Empty(t, rep.Purged)
	assert.Equal(t, []domain.NodeID{windowA}, rep.Posted)
}

func TestManager_ParamsFrozenWhileProcessing(t *testing.T) {
	t.Parallel()

	pool := newFakePool(4)
	m := newTestManager(t, domain.DefaultConfig(), pool)
	ctx := context.Background()

	m.RunFrame(ctx, leashFrame(1, true))
	m.RunFrame(ctx, leashFrame(2, true))
	assert.Positive(t, m.Deferred(leashID))

	params, ok := m.Params(leashID)
	require.True(t, ok)
	assert.Equal(t, domain.CacheLeashWindow, params.CacheType)
	assert.True(t, params.WaitFirstFrame)

	resized := leashFrame(3, true)
	resized.Nodes[1].Window.Size = domain.Size{Width: 150, Height: 300}
	m.RunFrame(ctx, resized)

	params, _ = m.Params(leashID)
	assert.Equal(t, domain.Size{Width: 100, Height: 200}, params.Size)

	pool.finish(t, leashID, domain.StatusDone)
	pool.saturated = true
	resized = leashFrame(4, true)
	resized.Nodes[1].Window.Size = domain.Size{Width: 150, Height: 300}
	m.RunFrame(ctx, resized)

	params, _ = m.Params(leashID)
	assert.Equal(t, domain.Size{Width: 150, Height: 300}, params.Size)
	assert.Zero(t, m.Deferred(leashID))
}

func TestManager_FirstFrameGate(t *testing.T) {
	t.Parallel()

	pool := newFakePool(4)
	m := newTestManager(t, domain.DefaultConfig(), pool)
	ctx := context.Background()

	m.RunFrame(ctx, leashFrame(1, true))
	m.RunFrame(ctx, leashFrame(2, true))
	assert.True(t, m.WaitFirstFrame(appID))

	task := pool.lastTask(t, leashID)
	assert.Equal(t, []domain.NodeID{appID}, task.SubSurfaces)

	pool.finish(t, leashID, domain.StatusDone)
	rep := m.RunFrame(ctx, leashFrame(3, true))
	assert.Equal(t, []domain.NodeID{leashID}, rep.Completed)
	assert.False(t, m.WaitFirstFrame(appID))
}

func TestManager_FirstFrameGateReleasedOnDisable(t *testing.T) {
	t.Parallel()

	pool := newFakePool(4)
	m := newTestManager(t, domain.DefaultConfig(), pool)
	ctx := context.Background()

	m.RunFrame(ctx, leashFrame(1, true))
	m.RunFrame(ctx, leashFrame(2, true))
	require.True(t, m.WaitFirstFrame(appID))

	m.RunFrame(ctx, leashFrame(3, false))
	assert.False(t, m.WaitFirstFrame(appID))
}

func TestManager_FirstFrameGateDroppedWithChild(t *testing.T) {
	t.Parallel()

	pool := newFakePool(4)
	m := newTestManager(t, domain.DefaultConfig(), pool)
	ctx := context.Background()

	m.RunFrame(ctx, leashFrame(1, true))
	m.RunFrame(ctx, leashFrame(2, true))
	require.True(t, m.WaitFirstFrame(appID))

	// The main window goes away while the leash stays cached.
	leash := leashNode(true)
	leash.Children = nil
	m.RunFrame(ctx, newFrame(3, displayNode(leashID), leash))

	sub, ok := m.Subtree(leashID)
	require.True(t, ok)
	assert.Equal(t, domain.CacheLeashWindow, sub.CacheType)
	assert.False(t, m.WaitFirstFrame(appID))
}

func cardNode() domain.SurfaceNode {
	return domain.SurfaceNode{
		ID:             cardID,
		ParentID:       displayID,
		InstanceRootID: entryView,
		ScreenID:       1,
		Name:           "ArkTSCardNode_weather",
		Kind:           domain.KindAbilityComponent,
		OnTree:         true,
		ShouldPaint:    true,
		Window:         domain.WindowInfo{Size: domain.Size{Width: 50, Height: 50}},
	}
}

func cardFrame(n uint64) *domain.Frame {
	f := newFrame(n, displayNode(cardID), cardNode())
	f.EntryViewID = entryView
	return f
}

func TestManager_CardCompletionForcesUpdate(t *testing.T) {
	t.Parallel()

	pool := newFakePool(4)
	m := newTestManager(t, domain.DefaultConfig(), pool)
	ctx := context.Background()

	m.RunFrame(ctx, cardFrame(1))
	rep := m.RunFrame(ctx, cardFrame(2))
	require.Equal(t, []domain.NodeID{cardID}, rep.Posted)
	assert.True(t, m.WaitFirstFrame(cardID))

	pool.finish(t, cardID, domain.StatusDone)
	rep = m.RunFrame(ctx, cardFrame(3))
	assert.Equal(t, []domain.NodeID{cardID}, rep.ForceUpdate)
	assert.False(t, m.WaitFirstFrame(cardID))
}

func TestManager_CardInsidePendingLeashIsExcluded(t *testing.T) {
	t.Parallel()

	pool := newFakePool(4)
	m := newTestManager(t, domain.DefaultConfig(), pool)
	ctx := context.Background()

	frame := func(n uint64) *domain.Frame {
		leash := leashNode(true)
		leash.Children = []domain.NodeID{appID}
		app := appNode()
		app.Children = []domain.NodeID{cardID}
		card := cardNode()
		card.ParentID = appID
		f := newFrame(n, displayNode(leashID), leash, app, card)
		f.EntryViewID = entryView
		return f
	}

	m.RunFrame(ctx, frame(1))
	rep := m.RunFrame(ctx, frame(2))
	assert.Equal(t, []domain.NodeID{leashID}, rep.Posted)
}

func TestManager_ListFlingDisablesLeash(t *testing.T) {
	t.Parallel()

	pool := newFakePool(4)
	m := newTestManager(t, domain.DefaultConfig(), pool)
	ctx := context.Background()

	m.RunFrame(ctx, leashFrame(1, true))
	m.RunFrame(ctx, leashFrame(2, true))
	sub, _ := m.Subtree(leashID)
	require.Equal(t, domain.CacheLeashWindow, sub.CacheType)

	fling := leashFrame(3, true)
	fling.Time = epoch.Add(300 * time.Millisecond)
	fling.Events = []domain.SceneEvent{{
		Kind:     domain.EventResponse,
		UniqueID: 1,
		AppPid:   100,
		SceneID:  "APP_LIST_FLING",
	}}
	m.RunFrame(ctx, fling)
	assert.Equal(t, domain.CacheNone, sub.CacheType)

	// The event expires and the leash qualifies again after its debounce frame.
	later := leashFrame(4, true)
	later.Time = epoch.Add(900 * time.Millisecond)
	m.RunFrame(ctx, later)
	later = leashFrame(5, true)
	later.Time = epoch.Add(916 * time.Millisecond)
	m.RunFrame(ctx, later)
	assert.Equal(t, domain.CacheLeashWindow, sub.CacheType)
}

func TestManager_EvictsOverusedSurface(t *testing.T) {
	t.Parallel()

	cfg := multiConfig()
	cfg.ClearCacheThreshold = 2
	pool := newFakePool(4)
	m := newTestManager(t, cfg, pool)
	ctx := context.Background()

	m.RunFrame(ctx, windowFrame(1, true, windowA))
	m.RunFrame(ctx, windowFrame(2, true, windowA))
	pool.finish(t, windowA, domain.StatusDone)
	m.RunFrame(ctx, windowFrame(3, false, windowA))
	m.RunFrame(ctx, windowFrame(4, false, windowA))

	rep := m.RunFrame(ctx, windowFrame(5, false, windowA))
	assert.Equal(t, []domain.NodeID{windowA}, rep.Evicted)
	assert.Equal(t, []domain.NodeID{windowA}, rep.Posted)
	_, ok := m.CompletedSurface(windowA)
	assert.False(t, ok)
}

func TestManager_ReleasesIdleWorkersOnce(t *testing.T) {
	t.Parallel()

	pool := newFakePool(4)
	m := newTestManager(t, domain.DefaultConfig(), pool)
	ctx := context.Background()

	var released []bool
	for n := uint64(1); n <= 5; n++ {
		rep := m.RunFrame(ctx, newFrame(n, displayNode()))
		released = append(released, rep.IdleReleased)
	}
	assert.Equal(t, []bool{false, false, true, false, false}, released)
	assert.Equal(t, 1, pool.released)
}

func TestManager_DisablingConfigTearsDownSubtrees(t *testing.T) {
	t.Parallel()

	pool := newFakePool(4)
	m := newTestManager(t, domain.DefaultConfig(), pool)
	ctx := context.Background()

	m.RunFrame(ctx, leashFrame(1, true))
	m.RunFrame(ctx, leashFrame(2, true))

	cfg := domain.DefaultConfig()
	cfg.Enabled = false
	m.UpdateConfig(cfg)

	rep := m.RunFrame(ctx, leashFrame(3, true))
	assert.Empty(t, rep.Posted)
	assert.Empty(t, m.ProcessingIDs())
	_, ok := m.Subtree(leashID)
	assert.False(t, ok)
}

func TestManager_SnapshotIsPublished(t *testing.T) {
	t.Parallel()

	pool := newFakePool(4)
	m := newTestManager(t, domain.DefaultConfig(), pool)
	ctx := context.Background()

	m.RunFrame(ctx, leashFrame(1, true))
	rep := m.RunFrame(ctx, leashFrame(2, true))

	snap := m.Snapshot()
	assert.Equal(t, rep, snap)
	require.Len(t, snap.Nodes, 1)
	assert.Equal(t, "leash-window", snap.Nodes[0].CacheType)
	assert.Equal(t, domain.ModeSingle, snap.Mode)
}
