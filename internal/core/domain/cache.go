package domain

// CacheType records why a subtree is cached off the main thread.
type CacheType uint8

const (
	// CacheNone means the subtree renders synchronously.
	CacheNone CacheType = iota
	// CacheLeashWindow caches an animating leash window.
	CacheLeashWindow
	// CacheArkTsCard caches a whitelisted card.
	CacheArkTsCard
	// CacheNonFocusWindow caches a window that does not hold input focus.
	CacheNonFocusWindow
)

var cacheTypeNames = [...]string{
	CacheNone:           "none",
	CacheLeashWindow:    "leash-window",
	CacheArkTsCard:      "card",
	CacheNonFocusWindow: "non-focus-window",
}

func (c CacheType) String() string {
	if int(c) < len(cacheTypeNames) {
		return cacheTypeNames[c]
	}
	return "none"
}

// ProcessStatus is the worker-side progress of a cached subtree.
type ProcessStatus string

const (
	// StatusUnknown is the initial state and the state after invalidation.
	StatusUnknown ProcessStatus = "Unknown"
	// StatusWaiting means the subtree is pending dispatch.
	StatusWaiting ProcessStatus = "Waiting"
	// StatusDoing means a worker owns the subtree.
	StatusDoing ProcessStatus = "Doing"
	// StatusDone means the worker published a new surface.
	StatusDone ProcessStatus = "Done"
	// StatusSkipped means the worker republished the previous surface.
	StatusSkipped ProcessStatus = "Skipped"
)

// Priority orders dispatch. Lower values dispatch first.
type Priority uint8

const (
	PriorityMain Priority = iota
	PriorityFocusNode
	PriorityVideo
	PriorityHigh
	PriorityLow
)

var priorityNames = [...]string{
	PriorityMain:      "main",
	PriorityFocusNode: "focus",
	PriorityVideo:     "video",
	PriorityHigh:      "high",
	PriorityLow:       "low",
}

func (p Priority) String() string {
	if int(p) < len(priorityNames) {
		return priorityNames[p]
	}
	return "low"
}

// Mode selects which window policy applies.
type Mode string

const (
	ModeSingle Mode = "single"
	ModeMulti  Mode = "multi"
	// ModeHybrid behaves as multi while free multi-window is on and as
	// single otherwise.
	ModeHybrid Mode = "hybrid"
)

// Resolve returns the effective mode for the given free multi-window state.
func (m Mode) Resolve(freeMultiWindow bool) Mode {
	switch m {
	case ModeMulti:
		return ModeMulti
	case ModeHybrid:
		if freeMultiWindow {
			return ModeMulti
		}
		return ModeSingle
	default:
		return ModeSingle
	}
}

// Surface is the handle of an off-screen cache bitmap. The worker that
// produced it and the compositor share it read-only once published.
type Surface struct {
	NodeID         NodeID     `json:"nodeId"`
	Generation     uint64     `json:"generation"`
	Size           Size       `json:"size"`
	Gamut          ColorGamut `json:"gamut"`
	FP16           bool       `json:"fp16"`
	ContentHash    uint64     `json:"contentHash"`
	ProcessedNodes int        `json:"processedNodes"`
	Transparent    bool       `json:"transparent"`
	DrawnSurfaces  []NodeID   `json:"drawnSurfaces,omitempty"`
}

// Drew reports whether id was drawn into the surface.
func (s *Surface) Drew(id NodeID) bool {
	if s == nil {
		return false
	}
	for _, d := range s.DrawnSurfaces {
		if d == id {
			return true
		}
	}
	return false
}

// CacheParams are the per-node render parameters handed from the frame
// thread to workers and the compositor.
type CacheParams struct {
	NodeID            NodeID
	CacheType         CacheType
	NeedCacheSurface  bool
	Priority          Priority
	Size              Size
	DirtyRect         Rect
	ChildrenDirtyRect Rect
	TargetGamut       ColorGamut
	ScreenID          ScreenID
	HDRPresent        bool
	WaitFirstFrame    bool
}

// PartialParams merges into active the staged fields that may change while a
// worker is drawing the node. Geometry and color stay frozen until the worker
// reports back.
func PartialParams(active, staged CacheParams) CacheParams {
	active.CacheType = staged.CacheType
	active.NeedCacheSurface = staged.NeedCacheSurface
	active.Priority = staged.Priority
	active.WaitFirstFrame = staged.WaitFirstFrame
	return active
}

// RenderTask is one unit of work handed to the worker pool.
type RenderTask struct {
	NodeID       NodeID
	Name         string
	Generation   uint64
	Params       CacheParams
	SubSurfaces  []NodeID
	PreviousHash uint64
	HighPriority bool
}

// Completion is reported by a worker when a task finishes.
type Completion struct {
	NodeID     NodeID
	Generation uint64
	Status     ProcessStatus
	Surface    *Surface
	Worker     int
	Err        error
}
