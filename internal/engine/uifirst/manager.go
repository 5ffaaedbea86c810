// Package uifirst schedules window subtrees for off-main-thread rendering
// into reusable cache surfaces.
package uifirst

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.trai.ch/uifirst/internal/core/domain"
	"go.trai.ch/uifirst/internal/core/ports"
	"go.trai.ch/uifirst/internal/engine/paramsync"
	"go.trai.ch/zerr"
)

// idleReleaseFrames is the number of consecutive idle frames after which
// worker resources are released.
const idleReleaseFrames = 3

type task struct {
	generation  uint64
	sub         *Subtree
	vertex      ports.Vertex
	isCard      bool
	subSurfaces []domain.NodeID
}

// view is the state published to readers outside the frame goroutine.
type view struct {
	report   domain.FrameReport
	statuses map[domain.NodeID]domain.ProcessStatus
	surfaces map[domain.NodeID]*domain.Surface
	slots    map[domain.NodeID]*paramsync.Slot[domain.CacheParams]
	gates    map[domain.NodeID]struct{}
}

// Manager is the per-compositor scheduler context. RunFrame must be called
// from a single goroutine; the read accessors are safe from any goroutine.
type Manager struct {
	pool     ports.WorkerPool
	tracer   ports.Tracer
	recorder ports.TaskRecorder
	logger   ports.Logger

	cfg        domain.Config
	classifier *Classifier
	purger     *Purger
	evictor    *Evictor
	color      *ColorSync
	events     *eventTracker
	scenes     *animateScenes
	params     *paramsync.Syncer[domain.CacheParams]

	subtrees     map[domain.NodeID]*Subtree
	pendingPost  map[domain.NodeID]*Subtree
	pendingCard  map[domain.NodeID]*Subtree
	processing   map[domain.NodeID]*task
	skipped      map[domain.NodeID]struct{}
	pendingReset map[domain.NodeID]struct{}
	gates        map[domain.NodeID]domain.NodeID

	frame      *domain.Frame
	now        time.Time
	postOrder  uint64
	generation uint64
	idleFrames int

	cfgMu   sync.Mutex
	nextCfg *domain.Config

	mu   sync.RWMutex
	view view
}

// NewManager creates a Manager with the given configuration.
func NewManager(
	cfg domain.Config,
	pool ports.WorkerPool,
	tracer ports.Tracer,
	recorder ports.TaskRecorder,
	logger ports.Logger,
) *Manager {
	m := &Manager{
		pool:         pool,
		tracer:       tracer,
		recorder:     recorder,
		logger:       logger,
		cfg:          cfg,
		purger:       NewPurger(cfg),
		evictor:      NewEvictor(cfg),
		color:        NewColorSync(cfg),
		events:       newEventTracker(),
		scenes:       &animateScenes{},
		params:       paramsync.New(domain.PartialParams),
		subtrees:     make(map[domain.NodeID]*Subtree),
		pendingPost:  make(map[domain.NodeID]*Subtree),
		pendingCard:  make(map[domain.NodeID]*Subtree),
		processing:   make(map[domain.NodeID]*task),
		skipped:      make(map[domain.NodeID]struct{}),
		pendingReset: make(map[domain.NodeID]struct{}),
		gates:        make(map[domain.NodeID]domain.NodeID),
	}
	m.classifier = newClassifier(cfg, m.subtrees, m.events, m.scenes)
	return m
}

// UpdateConfig schedules cfg to take effect at the start of the next frame.
func (m *Manager) UpdateConfig(cfg domain.Config) {
	m.cfgMu.Lock()
	defer m.cfgMu.Unlock()
	m.nextCfg = &cfg
}

func (m *Manager) applyPendingConfig() {
	m.cfgMu.Lock()
	next := m.nextCfg
	m.nextCfg = nil
	m.cfgMu.Unlock()
	if next == nil {
		return
	}

	m.cfg = *next
	m.classifier.cfg = *next
	m.purger.cfg = *next
	m.evictor.cfg = *next
	m.color.cfg = *next
	m.logger.Info(fmt.Sprintf("uifirst config applied: enabled=%t mode=%s", next.Enabled, next.Mode))

	if !next.Enabled {
		for _, id := range m.sortedSubtreeIDs() {
			m.teardown(id)
		}
	}
}

// RunFrame runs one scheduling pass over frame and returns what it decided.
func (m *Manager) RunFrame(ctx context.Context, frame *domain.Frame) domain.FrameReport {
	m.applyPendingConfig()

	ctx, span := m.tracer.Start(ctx, "uifirst.frame", ports.WithRoot())
	defer span.End()
	span.SetAttribute("uifirst.frame", frame.Number)

	m.frame = frame
	m.now = frame.Time
	m.postOrder = 0
	rep := domain.FrameReport{Frame: frame.Number}

	m.phase(ctx, "uifirst.done", func() {
		m.drainCompletions(&rep)
		m.classifier.Prepare(frame)
		rep.Mode = m.classifier.Mode()
		m.teardownRemoved()
		rep.Evicted = m.evictor.ProcessMarked(m.subtrees, m.busy)
	})

	m.phase(ctx, "uifirst.events", func() {
		m.prepareEvents(frame)
	})

	m.phase(ctx, "uifirst.classify", func() {
		clear(m.pendingPost)
		clear(m.pendingCard)
		m.classifyNodes(frame)
		m.excludeCardsInLeash()
		rep.WindowCount = m.classifier.WindowCount()
	})

	var sorted []*Subtree
	m.phase(ctx, "uifirst.purge", func() {
		m.dropInFlight()
		m.syncColor()
		m.purgePending(ctx, &rep)
		sorted = m.sortedPending()
	})

	m.phase(ctx, "uifirst.dispatch", func() {
		m.markHighPost(sorted)
		m.dispatch(ctx, sorted, &rep)
		m.releaseIdle(&rep)
	})

	m.phase(ctx, "uifirst.commit", func() {
		m.commitParams(&rep)
	})

	rep.Nodes = m.nodeReports()
	m.publish(rep)
	return rep
}

func (m *Manager) phase(ctx context.Context, name string, fn func()) {
	_, span := m.tracer.Start(ctx, name)
	defer span.End()
	fn()
}

// drainCompletions applies every completion that arrived since the last
// frame without blocking.
func (m *Manager) drainCompletions(rep *domain.FrameReport) {
	ch := m.pool.Completions()
	for {
		select {
		case c, ok := <-ch:
			if !ok {
				return
			}
			m.complete(c, rep)
		default:
			return
		}
	}
}

func (m *Manager) complete(c domain.Completion, rep *domain.FrameReport) {
	t, ok := m.processing[c.NodeID]
	if !ok || t.generation != c.Generation {
		rep.Discarded = append(rep.Discarded, c.NodeID)
		return
	}
	delete(m.processing, c.NodeID)
	sub := t.sub
	sub.LastWorker = c.Worker

	if c.Err != nil {
		err := zerr.With(zerr.Wrap(c.Err, domain.ErrRenderFailed.Error()), "node", uint64(c.NodeID))
		m.logger.Error(err)
		t.vertex.Complete(err)
		sub.resetCache()
		delete(m.pendingReset, sub.ID)
		return
	}

	if err := sub.transition(c.Status); err != nil {
		m.logger.Error(err)
		sub.resetCache()
	} else {
		switch c.Status {
		case domain.StatusDone:
			sub.Surface = c.Surface
			sub.SurfaceValid = c.Surface != nil
			sub.ReuseCount = 0
			m.evictor.Forget(sub.ID)
			m.openFirstFrameGate(sub.ID, c.Surface)
			rep.Completed = append(rep.Completed, sub.ID)
			if t.isCard {
				rep.ForceUpdate = append(rep.ForceUpdate, sub.ID)
			}
		case domain.StatusSkipped:
			m.skipped[sub.ID] = struct{}{}
			rep.Skipped = append(rep.Skipped, sub.ID)
		default:
		}
	}
	t.vertex.Complete(nil)

	if _, ok := m.pendingReset[sub.ID]; ok {
		delete(m.pendingReset, sub.ID)
		sub.resetCache()
	}
}

// teardownRemoved destroys the subtrees whose node left the tree.
func (m *Manager) teardownRemoved() {
	for _, id := range m.sortedSubtreeIDs() {
		if node, ok := m.classifier.Node(id); ok && node.OnTree {
			continue
		}
		m.teardown(id)
	}
	m.dropStaleGates()
}

// teardown forgets id entirely. An in-flight task is released; its
// completion fails the identity check and is discarded.
func (m *Manager) teardown(id domain.NodeID) {
	if t, ok := m.processing[id]; ok {
		delete(m.processing, id)
		t.vertex.Complete(nil)
		m.params.Discard(id)
	}
	m.params.Remove(id)
	m.releaseFirstFrameGate(id)
	delete(m.gates, id)
	m.classifier.decreaseWindowCount(id)
	m.purger.Forget(id)
	m.evictor.Forget(id)
	delete(m.pendingPost, id)
	delete(m.pendingCard, id)
	delete(m.skipped, id)
	delete(m.pendingReset, id)
	delete(m.subtrees, id)
}

func (m *Manager) prepareEvents(frame *domain.Frame) {
	for _, ev := range frame.Events {
		switch ev.Kind {
		case domain.EventResponse:
			m.events.OnEventResponse(ev, m.now)
		case domain.EventComplete:
			m.events.OnEventComplete(ev, m.now)
		}
	}
	m.events.Prepare(m.now)
	m.scenes.apply(frame.AnimateScene)
}

// classifyNodes walks the frame in pre-order, so every parent's animation
// state is known before its descendants are classified.
func (m *Manager) classifyNodes(frame *domain.Frame) {
	animating := make(map[domain.NodeID]bool, len(frame.Nodes))
	for i := range frame.Nodes {
		node := &frame.Nodes[i]
		if !node.OnTree {
			continue
		}
		ancestor := animating[node.ParentID]
		animating[node.ID] = ancestor || node.Animating
		m.updateNode(node, ancestor)
	}
}

// dropInFlight keeps subtrees a worker still owns out of this frame's
// dispatch. Their content changed under the worker, so the next render may
// not be purged.
func (m *Manager) dropInFlight() {
	for id := range m.processing {
		for _, pending := range []map[domain.NodeID]*Subtree{m.pendingPost, m.pendingCard} {
			if sub, ok := pending[id]; ok {
				delete(pending, id)
				sub.ForceDrawWithSkipped = true
			}
		}
	}
}

func (m *Manager) syncColor() {
	for _, pending := range []map[domain.NodeID]*Subtree{m.pendingPost, m.pendingCard} {
		for id, sub := range pending {
			node, ok := m.classifier.Node(id)
			if !ok {
				continue
			}
			screen, ok := m.frame.Screen(node.ScreenID)
			if !ok {
				continue
			}
			if m.color.Sync(sub, node, screen) {
				m.logger.Warn(fmt.Sprintf("uifirst color space changed for %s (%d), cache cleared", sub.Name, id))
			}
		}
	}
}

func (m *Manager) purgePending(ctx context.Context, rep *domain.FrameReport) {
	for _, pending := range []map[domain.NodeID]*Subtree{m.pendingPost, m.pendingCard} {
		ids := make([]domain.NodeID, 0, len(pending))
		for id := range pending {
			ids = append(ids, id)
		}
		slices.Sort(ids)

		for _, id := range ids {
			sub := pending[id]
			node, ok := m.classifier.Node(id)
			if !ok {
				continue
			}
			subs := m.subSurfaces(node)
			screen, screenKnown := m.frame.Screen(node.ScreenID)
			in := PurgeInput{
				Mode:        m.classifier.Mode(),
				Now:         m.now,
				Screen:      screen,
				ScreenKnown: screenKnown,
				SubSurfaces: subs,
			}
			if !m.purger.ShouldPurge(sub, node, in) {
				sub.ReuseCount = 0
				continue
			}
			delete(pending, id)
			mergeSkippedDirty(sub, node, subs)
			sub.StaticContent = node.StaticContent
			if sub.HasValidSurface() {
				m.evictor.Track(sub, m.classifier.Mode())
				m.recorder.Record(ctx, vertexName(sub)).Cached()
			}
			rep.Purged = append(rep.Purged, id)
		}
	}
}

func (m *Manager) sortedPending() []*Subtree {
	out := make([]*Subtree, 0, len(m.pendingPost)+len(m.pendingCard))
	for _, pending := range []map[domain.NodeID]*Subtree{m.pendingPost, m.pendingCard} {
		for id, sub := range pending {
			if node, ok := m.classifier.Node(id); ok {
				sub.Priority = m.basePriority(sub, node)
			}
			out = append(out, sub)
		}
	}
	return sortPending(out)
}

// dispatch hands the sorted subtrees to the worker pool. Subtrees that do
// not fit are demoted to synchronous rendering for this frame.
func (m *Manager) dispatch(ctx context.Context, sorted []*Subtree, rep *domain.FrameReport) {
	for _, sub := range sorted {
		if err := sub.transition(domain.StatusWaiting); err != nil {
			m.logger.Error(err)
			continue
		}
		if len(m.processing) >= m.pool.Capacity() {
			m.demote(sub, rep)
			continue
		}
		err := m.post(ctx, sub)
		switch {
		case err == nil:
			rep.Posted = append(rep.Posted, sub.ID)
		case errors.Is(err, domain.ErrPoolSaturated):
			m.demote(sub, rep)
		default:
			m.logger.Error(err)
			m.demote(sub, rep)
		}
	}
}

func (m *Manager) demote(sub *Subtree, rep *domain.FrameReport) {
	sub.SkipCount++
	rep.Demoted = append(rep.Demoted, sub.ID)
}

// post submits one subtree. Posting a subtree a worker still owns is an
// error.
func (m *Manager) post(ctx context.Context, sub *Subtree) error {
	if _, busy := m.processing[sub.ID]; busy {
		return zerr.With(domain.ErrPostTwice, "node", uint64(sub.ID))
	}
	node, ok := m.classifier.Node(sub.ID)
	if !ok {
		return zerr.With(domain.ErrIllegalTransition, "node", uint64(sub.ID))
	}

	m.generation++
	subs := m.subSurfaces(node)
	ids := make([]domain.NodeID, 0, len(subs))
	for _, s := range subs {
		ids = append(ids, s.ID)
	}
	t := domain.RenderTask{
		NodeID:       sub.ID,
		Name:         sub.Name,
		Generation:   m.generation,
		Params:       m.paramsFor(sub, node),
		SubSurfaces:  ids,
		HighPriority: sub.HighPostPriority,
	}
	if sub.HasValidSurface() && sub.SkippedDirty.IsEmpty() {
		t.PreviousHash = sub.Surface.ContentHash
	}

	if err := m.pool.Submit(ctx, t); err != nil {
		return err
	}
	if err := sub.transition(domain.StatusDoing); err != nil {
		return err
	}

	m.processing[sub.ID] = &task{
		generation:  m.generation,
		sub:         sub,
		vertex:      m.recorder.Record(ctx, vertexName(sub)),
		isCard:      sub.CacheType == domain.CacheArkTsCard,
		subSurfaces: ids,
	}
	sub.SkipCount = 0
	sub.SkippedDirty = domain.Rect{}
	sub.StaticContent = node.StaticContent
	return nil
}

// releaseIdle frees worker resources once the scheduler has been idle for a
// few frames.
func (m *Manager) releaseIdle(rep *domain.FrameReport) {
	if len(rep.Posted) > 0 || len(m.processing) > 0 || m.params.DeferredRoots() > 0 {
		m.idleFrames = 0
		return
	}
	m.idleFrames++
	if m.idleFrames == idleReleaseFrames {
		m.pool.ReleaseIdle()
		rep.IdleReleased = true
	}
}

func (m *Manager) busy(id domain.NodeID) bool {
	if _, ok := m.processing[id]; ok {
		return true
	}
	_, post := m.pendingPost[id]
	_, card := m.pendingCard[id]
	return post || card
}

func (m *Manager) sortedSubtreeIDs() []domain.NodeID {
	ids := make([]domain.NodeID, 0, len(m.subtrees))
	for id := range m.subtrees {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (m *Manager) nodeReports() []domain.NodeReport {
	ids := m.sortedSubtreeIDs()
	out := make([]domain.NodeReport, 0, len(ids))
	for _, id := range ids {
		sub := m.subtrees[id]
		r := domain.NodeReport{
			ID:         id,
			Name:       sub.Name,
			CacheType:  sub.CacheType.String(),
			Status:     sub.Status,
			ReuseCount: sub.ReuseCount,
		}
		if sub.IsEnabled() {
			r.Priority = sub.Priority.String()
			r.Gamut = sub.TargetGamut.String()
		}
		out = append(out, r)
	}
	return out
}

func (m *Manager) publish(rep domain.FrameReport) {
	v := view{
		report:   rep,
		statuses: make(map[domain.NodeID]domain.ProcessStatus, len(m.subtrees)),
		surfaces: make(map[domain.NodeID]*domain.Surface),
		slots:    m.params.Slots(),
		gates:    make(map[domain.NodeID]struct{}, len(m.gates)),
	}
	for id, sub := range m.subtrees {
		v.statuses[id] = sub.Status
		if sub.HasValidSurface() {
			v.surfaces[id] = sub.Surface
		}
	}
	for id := range m.gates {
		v.gates[id] = struct{}{}
	}

	m.mu.Lock()
	m.view = v
	m.mu.Unlock()
}

// Snapshot returns the report of the last completed frame.
func (m *Manager) Snapshot() domain.FrameReport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.view.report
}

// NodeStatus returns the process status of id as of the last frame.
func (m *Manager) NodeStatus(id domain.NodeID) domain.ProcessStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if status, ok := m.view.statuses[id]; ok {
		return status
	}
	return domain.StatusUnknown
}

// CompletedSurface returns the cached surface of id and whether it is valid.
func (m *Manager) CompletedSurface(id domain.NodeID) (*domain.Surface, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.view.surfaces[id]
	return s, ok
}

// Params returns the committed render parameters of id.
func (m *Manager) Params(id domain.NodeID) (domain.CacheParams, bool) {
	m.mu.RLock()
	slot, ok := m.view.slots[id]
	m.mu.RUnlock()
	if !ok {
		return domain.CacheParams{}, false
	}
	return slot.Active(), true
}

// TargetGamut returns the committed color gamut of id.
func (m *Manager) TargetGamut(id domain.NodeID) domain.ColorGamut {
	p, _ := m.Params(id)
	return p.TargetGamut
}

// ChildrenDirtyRect returns the committed dirty union of the windows cached
// inside id.
func (m *Manager) ChildrenDirtyRect(id domain.NodeID) domain.Rect {
	p, _ := m.Params(id)
	return p.ChildrenDirtyRect
}

// WaitFirstFrame reports whether id must not be presented until its first
// cached frame lands.
func (m *Manager) WaitFirstFrame(id domain.NodeID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.view.gates[id]
	return ok
}

func vertexName(sub *Subtree) string {
	return fmt.Sprintf("%s#%d", sub.Name, sub.ID)
}
