package uifirst

import (
	"math"
	"strings"
	"time"

	"go.trai.ch/uifirst/internal/core/domain"
)

// animateScenes tracks the system animations that change eligibility.
type animateScenes struct {
	recents          bool
	missionCenter    bool
	splitScreen      bool
	snapshotRotation bool
}

func (a *animateScenes) apply(scene domain.AnimateScene) {
	switch scene {
	case domain.SceneEnterRecents:
		a.recents = true
	case domain.SceneExitRecents:
		a.recents = false
	case domain.SceneEnterMissionCenter:
		a.missionCenter = true
	case domain.SceneExitMissionCenter:
		a.missionCenter = false
	case domain.SceneEnterSplitScreen:
		a.splitScreen = true
	case domain.SceneExitSplitScreen:
		a.splitScreen = false
	case domain.SceneSnapshotRotation:
		a.snapshotRotation = true
	case domain.SceneOthers:
		a.snapshotRotation = false
	case domain.SceneNone:
	}
}

// Classifier decides, per frame and per node, which cache type a subtree
// qualifies for. It is reset with Prepare at the start of every frame.
type Classifier struct {
	cfg      domain.Config
	mode     domain.Mode
	frame    *domain.Frame
	nodes    map[domain.NodeID]*domain.SurfaceNode
	subtrees map[domain.NodeID]*Subtree
	events   *eventTracker
	scenes   *animateScenes

	// windows holds the non-focus windows occupying a threshold slot. A
	// window keeps its slot from enable until disable or teardown.
	windows map[domain.NodeID]struct{}
}

func newClassifier(cfg domain.Config, subtrees map[domain.NodeID]*Subtree, events *eventTracker, scenes *animateScenes) *Classifier {
	return &Classifier{
		cfg:      cfg,
		mode:     cfg.Mode.Resolve(false),
		nodes:    make(map[domain.NodeID]*domain.SurfaceNode),
		subtrees: subtrees,
		events:   events,
		scenes:   scenes,
		windows:  make(map[domain.NodeID]struct{}),
	}
}

// Prepare indexes the frame.
func (c *Classifier) Prepare(frame *domain.Frame) {
	c.frame = frame
	c.mode = c.cfg.Mode.Resolve(frame.FreeMultiWindow)
	clear(c.nodes)
	for i := range frame.Nodes {
		n := &frame.Nodes[i]
		c.nodes[n.ID] = n
	}
}

// Mode returns the effective mode of the current frame.
func (c *Classifier) Mode() domain.Mode {
	return c.mode
}

// Node looks up a node of the current frame.
func (c *Classifier) Node(id domain.NodeID) (*domain.SurfaceNode, bool) {
	n, ok := c.nodes[id]
	return n, ok
}

// WindowCount returns the number of non-focus windows holding a threshold
// slot.
func (c *Classifier) WindowCount() int {
	return len(c.windows)
}

// Classify returns the cache type node qualifies for this frame. The result
// is the raw classification; debounce and state changes are applied by the
// manager.
func (c *Classifier) Classify(node *domain.SurfaceNode, ancestorHasAnimation bool) domain.CacheType {
	if !c.cfg.Enabled || node.Unsupported || node.Switch == domain.SwitchForceDisable || node.ProtectedLayer {
		return domain.CacheNone
	}
	if c.IsFocused(node) {
		return domain.CacheNone
	}
	if node.IsLeash() && node.Switch == domain.SwitchForceEnable {
		if c.mode == domain.ModeMulti {
			return domain.CacheNonFocusWindow
		}
		return domain.CacheLeashWindow
	}
	if c.isLeashWindowCache(node, ancestorHasAnimation) {
		return domain.CacheLeashWindow
	}
	if c.isNonFocusWindowCache(node, ancestorHasAnimation) {
		return domain.CacheNonFocusWindow
	}
	if c.isArkTsCardCache(node) {
		return domain.CacheArkTsCard
	}
	return domain.CacheNone
}

// IsFocused reports whether node is the input-focused window or its leash.
func (c *Classifier) IsFocused(node *domain.SurfaceNode) bool {
	if c.frame == nil || node.ID == domain.InvalidNodeID {
		return false
	}
	return node.ID == c.frame.FocusNodeID || node.ID == c.frame.FocusLeashID
}

func (c *Classifier) isLeashWindowCache(node *domain.SurfaceNode, animation bool) bool {
	if c.mode == domain.ModeMulti || !node.FirstLevel || c.inCardWhitelist(node) {
		return false
	}
	if !node.IsLeash() {
		return false
	}
	if c.events.DisablesLeash(node.ID, c.appPids(node), c.startTime(node.ID)) {
		return false
	}
	if c.hasTransparentFilter(node) {
		return false
	}
	if !(node.Animating || animation || node.ForceFlag) {
		return false
	}
	if c.rotating(node) {
		return false
	}
	if !c.IsCacheSizeValid(node) {
		return false
	}
	for _, child := range c.children(node) {
		if child.Kind == domain.KindSceneBoard || child.Kind == domain.KindSelfDrawing {
			return false
		}
	}
	return true
}

func (c *Classifier) isNonFocusWindowCache(node *domain.SurfaceNode, animation bool) bool {
	if c.IsExceededWindowsThreshold(node) {
		return false
	}
	if c.mode != domain.ModeMulti || !node.FirstLevel || c.inCardWhitelist(node) {
		return false
	}
	if !node.IsLeash() && node.Kind != domain.KindAppWindow {
		return false
	}
	if node.Kind == domain.KindSceneBoard || node.Kind == domain.KindSelfDrawing {
		return false
	}
	if node.IsLeash() && (c.scenes.missionCenter || c.scenes.splitScreen) && !c.containsMainWindow(node) {
		return false
	}
	if !c.IsCacheSizeValid(node) {
		return false
	}
	return c.subAssignable(node)
}

func (c *Classifier) isArkTsCardCache(node *domain.SurfaceNode) bool {
	if !c.cfg.CardEnabled || c.mode != domain.ModeSingle {
		return false
	}
	if node.Kind != domain.KindAbilityComponent || !strings.Contains(node.Name, cardNameFragment) {
		return false
	}
	if node.Card.ForceDisabled || !c.inCardWhitelist(node) {
		return false
	}
	return node.ShouldPaint
}

// subAssignable reports whether a worker can draw the subtree without
// missing overdraw, rotation, or protected content.
func (c *Classifier) subAssignable(node *domain.SurfaceNode) bool {
	return !c.hasTransparentFilter(node) && !c.rotating(node) && !node.ProtectedLayer
}

// IsCacheSizeValid reports whether the last cached surface can still stand
// in for node at its current size.
func (c *Classifier) IsCacheSizeValid(node *domain.SurfaceNode) bool {
	sub, ok := c.subtrees[node.ID]
	if !ok || sub.LastFrameCacheType == domain.CacheNone {
		return true
	}
	if node.Window.Gravity.IsResize() {
		return true
	}
	cur := node.Window.Size
	if cur.IsZero() {
		return true
	}
	last := node.Window.LastCacheSize
	if sub.HasValidSurface() {
		last = sub.Surface.Size
	}
	if last.IsZero() {
		return true
	}
	rw := float64(last.Width / cur.Width)
	rh := float64(last.Height / cur.Height)
	return math.Abs(rw-rh) <= c.cfg.SizeChangedThreshold
}

// IsExceededWindowsThreshold reports whether another non-focus window would
// exceed the configured cap. The focused window is never counted, and a
// window already holding a slot keeps it.
func (c *Classifier) IsExceededWindowsThreshold(node *domain.SurfaceNode) bool {
	if c.cfg.WindowsThreshold <= 0 {
		return false
	}
	if c.IsFocused(node) {
		return false
	}
	if _, ok := c.windows[node.ID]; ok {
		return false
	}
	return len(c.windows) >= c.cfg.WindowsThreshold
}

func (c *Classifier) increaseWindowCount(node *domain.SurfaceNode) {
	if c.IsFocused(node) || node.Kind == domain.KindAbilityComponent {
		return
	}
	c.windows[node.ID] = struct{}{}
}

func (c *Classifier) decreaseWindowCount(id domain.NodeID) {
	delete(c.windows, id)
}

func (c *Classifier) inCardWhitelist(node *domain.SurfaceNode) bool {
	root := node.InstanceRootID
	if root == domain.InvalidNodeID || c.frame == nil {
		return false
	}
	return root == c.frame.EntryViewID || root == c.frame.NegativeScreenID
}

func (c *Classifier) rotating(node *domain.SurfaceNode) bool {
	if node.Rotating || c.scenes.snapshotRotation {
		return true
	}
	return c.frame != nil && c.frame.Rotating
}

func (c *Classifier) hasTransparentFilter(node *domain.SurfaceNode) bool {
	if node.HasTransparentFilter() {
		return true
	}
	if !node.IsLeash() {
		return false
	}
	for _, child := range c.children(node) {
		if child.Kind.IsMainWindow() && child.HasTransparentFilter() {
			return true
		}
	}
	return false
}

func (c *Classifier) containsMainWindow(node *domain.SurfaceNode) bool {
	for _, child := range c.children(node) {
		if child.Kind.IsMainWindow() {
			return true
		}
	}
	return false
}

func (c *Classifier) hasStartingWindow(node *domain.SurfaceNode) bool {
	if node.Window.HasStartingWindow {
		return true
	}
	for _, child := range c.children(node) {
		if child.Kind == domain.KindStartingWindow {
			return true
		}
	}
	return false
}

// appPids collects the pids whose app events can disable node.
func (c *Classifier) appPids(node *domain.SurfaceNode) []int32 {
	if node.Kind == domain.KindAppWindow {
		return []int32{node.Pid}
	}
	var pids []int32
	if node.IsLeash() {
		for _, child := range c.children(node) {
			if child.Kind == domain.KindAppWindow {
				pids = append(pids, child.Pid)
			}
		}
	}
	return pids
}

func (c *Classifier) children(node *domain.SurfaceNode) []*domain.SurfaceNode {
	out := make([]*domain.SurfaceNode, 0, len(node.Children))
	for _, id := range node.Children {
		if child, ok := c.nodes[id]; ok {
			out = append(out, child)
		}
	}
	return out
}

func (c *Classifier) startTime(id domain.NodeID) time.Time {
	if sub, ok := c.subtrees[id]; ok {
		return sub.StartTime
	}
	return time.Time{}
}
