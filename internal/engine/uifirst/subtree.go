package uifirst

import (
	"time"

	"go.trai.ch/uifirst/internal/core/domain"
	"go.trai.ch/zerr"
)

// Subtree is the scheduler-side state of a window subtree that is, or recently
// was, eligible for off-main-thread caching.
type Subtree struct {
	ID             domain.NodeID
	Name           string
	Kind           domain.NodeKind
	InstanceRootID domain.NodeID

	CacheType          domain.CacheType
	LastFrameCacheType domain.CacheType

	Status       domain.ProcessStatus
	Surface      *domain.Surface
	SurfaceValid bool
	ReuseCount   int

	SubThreadAssignable bool
	NeedCacheSurface    bool

	Priority         domain.Priority
	PostOrder        uint64
	SkipCount        int
	HighPostPriority bool

	StartTime time.Time

	TargetGamut domain.ColorGamut
	ScreenID    domain.ScreenID
	HDRPresent  bool

	ForceDrawWithSkipped bool
	StaticContent        bool
	ChildrenDirtyRect    domain.Rect
	SkippedDirty         domain.Rect

	// LastWorker is the worker index that produced the last completion.
	LastWorker int
	// ToBeCaptured is set on leash windows during a recents animation.
	ToBeCaptured bool
}

func newSubtree(node *domain.SurfaceNode) *Subtree {
	return &Subtree{
		ID:             node.ID,
		Name:           node.Name,
		Kind:           node.Kind,
		InstanceRootID: node.InstanceRootID,
		Status:         domain.StatusUnknown,
		TargetGamut:    domain.GamutSRGB,
		ScreenID:       node.ScreenID,
		LastWorker:     -1,
	}
}

var legalEdges = map[domain.ProcessStatus][]domain.ProcessStatus{
	domain.StatusUnknown: {domain.StatusWaiting},
	domain.StatusWaiting: {domain.StatusDoing},
	domain.StatusDoing:   {domain.StatusDone, domain.StatusSkipped},
	domain.StatusDone:    {domain.StatusWaiting},
	domain.StatusSkipped: {domain.StatusWaiting},
}

// CanTransition reports whether from -> to is a legal status edge. Any state
// may fall back to Unknown.
func CanTransition(from, to domain.ProcessStatus) bool {
	if to == domain.StatusUnknown {
		return true
	}
	for _, next := range legalEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s *Subtree) transition(to domain.ProcessStatus) error {
	if s.Status == to && to == domain.StatusWaiting {
		return nil
	}
	if !CanTransition(s.Status, to) {
		return zerr.With(zerr.With(zerr.With(domain.ErrIllegalTransition,
			"node", uint64(s.ID)), "from", string(s.Status)), "to", string(to))
	}
	s.Status = to
	return nil
}

// IsEnabled reports whether the subtree is currently cached off the main thread.
func (s *Subtree) IsEnabled() bool {
	return s.CacheType != domain.CacheNone
}

// HasValidSurface reports whether a completed surface can be presented.
func (s *Subtree) HasValidSurface() bool {
	return s.SurfaceValid && s.Surface != nil
}

func (s *Subtree) resetCache() {
	s.Status = domain.StatusUnknown
	s.Surface = nil
	s.SurfaceValid = false
	s.ReuseCount = 0
	s.SkipCount = 0
	s.ForceDrawWithSkipped = false
	s.SkippedDirty = domain.Rect{}
}
