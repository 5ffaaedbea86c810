package uifirst

import (
	"time"

	"go.trai.ch/uifirst/internal/core/domain"
)

// frameRateNodeLimit is the processed-node count above which a cached leash
// window is cheap enough to reuse while frames are being dropped.
const frameRateNodeLimit = 5

// behindWindowEntry records when a subtree first became eligible for
// behind-window purge. A missing entry marks the first eligible frame.
type behindWindowEntry struct {
	curTime time.Time
}

// PurgeInput carries the frame state a purge decision depends on.
type PurgeInput struct {
	Mode        domain.Mode
	Now         time.Time
	Screen      domain.Screen
	ScreenKnown bool
	Processing  bool
	SubSurfaces []*domain.SurfaceNode
}

// Purger decides whether a pending subtree can reuse its cached surface
// instead of being re-rendered.
type Purger struct {
	cfg    domain.Config
	behind map[domain.NodeID]behindWindowEntry
}

// NewPurger creates a Purger for cfg.
func NewPurger(cfg domain.Config) *Purger {
	return &Purger{
		cfg:    cfg,
		behind: make(map[domain.NodeID]behindWindowEntry),
	}
}

// ShouldPurge reports whether sub is dropped from the pending set this frame.
// A force-drawn subtree is never purged; the flag is consumed by the call.
func (p *Purger) ShouldPurge(sub *Subtree, node *domain.SurfaceNode, in PurgeInput) bool {
	forceDraw := sub.ForceDrawWithSkipped
	sub.ForceDrawWithSkipped = false

	if !node.OnTree && !in.Processing {
		return true
	}
	if forceDraw {
		return false
	}
	if in.ScreenKnown && !in.Screen.PoweredOn && !in.Screen.ProcessOneMoreFrame {
		return true
	}
	if !sub.HasValidSurface() {
		return false
	}

	staticContent := sub.StaticContent && node.StaticContent
	if p.cfg.PurgeEnabled && !in.Processing && (staticContent || p.visibleDirtyEmpty(node, in)) {
		return true
	}
	if p.frameRateControl(sub, node, in) {
		return true
	}
	return p.behindWindow(sub, node, in)
}

// visibleDirtyEmpty reports whether neither the node nor any of its
// sub-surfaces has a dirty rectangle inside its visible region.
func (p *Purger) visibleDirtyEmpty(node *domain.SurfaceNode, in PurgeInput) bool {
	if in.Mode != domain.ModeMulti {
		return false
	}
	if !node.VisibleRegion.IntersectRect(node.DirtyRect).IsEmpty() {
		return false
	}
	for _, s := range in.SubSurfaces {
		if !s.VisibleRegion.IntersectRect(s.DirtyRect).IsEmpty() {
			return false
		}
	}
	return true
}

func (p *Purger) frameRateControl(sub *Subtree, node *domain.SurfaceNode, in PurgeInput) bool {
	if !p.cfg.FrameRateControl || !p.cfg.PurgeEnabled || in.Processing {
		return false
	}
	if sub.LastFrameCacheType != domain.CacheLeashWindow || !node.FrameDropHint {
		return false
	}
	s := sub.Surface
	return !s.Transparent && s.ProcessedNodes > frameRateNodeLimit
}

// behindWindow applies the grace period to subtrees whose visible area lies
// entirely outside any behind-window region. The first eligible frame only
// records the time.
func (p *Purger) behindWindow(sub *Subtree, node *domain.SurfaceNode, in PurgeInput) bool {
	eligible := in.Mode == domain.ModeMulti && p.cfg.BehindWindowEnabled && p.cfg.PurgeEnabled &&
		sub.LastFrameCacheType == domain.CacheNonFocusWindow && isBehindWindowOcclusion(node, in.SubSurfaces)
	if !eligible {
		delete(p.behind, sub.ID)
		return false
	}

	entry, ok := p.behind[sub.ID]
	if !ok {
		p.behind[sub.ID] = behindWindowEntry{curTime: in.Now}
		return false
	}
	return in.Now.Sub(entry.curTime) >= p.cfg.BehindWindowGrace
}

// Forget drops the grace entry of id.
func (p *Purger) Forget(id domain.NodeID) {
	delete(p.behind, id)
}

// Pending reports whether id has a grace entry.
func (p *Purger) Pending(id domain.NodeID) bool {
	_, ok := p.behind[id]
	return ok
}

func isBehindWindowOcclusion(node *domain.SurfaceNode, subs []*domain.SurfaceNode) bool {
	visible := node.VisibleRegion
	behind := node.BehindWindowRegion
	if behind.IsEmpty() && !visible.IsEmpty() {
		return true
	}
	for _, s := range subs {
		if behind.Or(s.BehindWindowRegion).IsEmpty() && !visible.Or(s.VisibleRegion).IsEmpty() {
			return true
		}
	}
	return false
}

// mergeSkippedDirty accumulates the dirty rectangles a purge skipped so the
// next render repaints them.
func mergeSkippedDirty(sub *Subtree, node *domain.SurfaceNode, subs []*domain.SurfaceNode) {
	sub.SkippedDirty = sub.SkippedDirty.Join(node.DirtyRect)
	for _, s := range subs {
		sub.SkippedDirty = sub.SkippedDirty.Join(s.DirtyRect)
	}
}
