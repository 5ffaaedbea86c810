package uifirst

import (
	"slices"

	"go.trai.ch/uifirst/internal/core/domain"
)

// MaxClearCacheNodes caps how many surfaces can wait for eviction at once.
const MaxClearCacheNodes = 500

// Evictor releases cached surfaces that have been reused for too long
// without a re-render.
type Evictor struct {
	cfg    domain.Config
	marked map[domain.NodeID]struct{}
}

// NewEvictor creates an Evictor for cfg.
func NewEvictor(cfg domain.Config) *Evictor {
	return &Evictor{
		cfg:    cfg,
		marked: make(map[domain.NodeID]struct{}),
	}
}

func (e *Evictor) enabled(mode domain.Mode) bool {
	return mode == domain.ModeMulti && e.cfg.ClearCacheThreshold > 0
}

// Track counts one reuse of sub's surface and reports whether it was marked
// for eviction.
func (e *Evictor) Track(sub *Subtree, mode domain.Mode) bool {
	if !sub.HasValidSurface() {
		return false
	}
	sub.ReuseCount++
	if !e.enabled(mode) || sub.ReuseCount < e.cfg.ClearCacheThreshold {
		return false
	}
	if _, ok := e.marked[sub.ID]; ok {
		return true
	}
	if len(e.marked) >= MaxClearCacheNodes {
		return false
	}
	e.marked[sub.ID] = struct{}{}
	return true
}

// ProcessMarked releases every marked surface whose subtree is idle and
// returns the evicted ids in ascending order. busy reports whether a subtree
// is processing or pending this frame; busy subtrees stay marked.
func (e *Evictor) ProcessMarked(subtrees map[domain.NodeID]*Subtree, busy func(domain.NodeID) bool) []domain.NodeID {
	var evicted []domain.NodeID
	for id := range e.marked {
		sub, ok := subtrees[id]
		if !ok {
			delete(e.marked, id)
			continue
		}
		if busy(id) {
			continue
		}
		delete(e.marked, id)
		sub.Surface = nil
		sub.SurfaceValid = false
		sub.ReuseCount = 0
		evicted = append(evicted, id)
	}
	slices.Sort(evicted)
	return evicted
}

// Forget drops the mark of id.
func (e *Evictor) Forget(id domain.NodeID) {
	delete(e.marked, id)
}

// Marked returns the number of subtrees waiting for eviction.
func (e *Evictor) Marked() int {
	return len(e.marked)
}
