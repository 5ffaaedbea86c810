package domain

import "strings"

// NodeID identifies a render node for its whole lifetime.
type NodeID uint64

// InvalidNodeID is never assigned to a live node.
const InvalidNodeID NodeID = 0

// ScreenID identifies a screen.
type ScreenID uint64

// NodeKind tags the variant of a SurfaceNode.
type NodeKind uint8

const (
	// KindUnknown is any node the scheduler does not reason about.
	KindUnknown NodeKind = iota
	// KindLeashWindow groups a main window with its decorations.
	KindLeashWindow
	// KindAppWindow is an application main window.
	KindAppWindow
	// KindStartingWindow is the placeholder shown while an app launches.
	KindStartingWindow
	// KindAbilityComponent hosts embedded content such as cards.
	KindAbilityComponent
	// KindSelfDrawing is a surface whose content is produced outside the tree.
	KindSelfDrawing
	// KindSceneBoard is a system scene-board window.
	KindSceneBoard
)

var nodeKindNames = [...]string{
	KindUnknown:          "unknown",
	KindLeashWindow:      "leash",
	KindAppWindow:        "app",
	KindStartingWindow:   "starting",
	KindAbilityComponent: "ability",
	KindSelfDrawing:      "self-drawing",
	KindSceneBoard:       "scene-board",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "unknown"
}

// ParseNodeKind resolves the name produced by String.
func ParseNodeKind(s string) (NodeKind, bool) {
	for k, name := range nodeKindNames {
		if name == s {
			return NodeKind(k), true
		}
	}
	return KindUnknown, false
}

// IsMainWindow reports whether the kind is drawn as a main window inside a leash.
func (k NodeKind) IsMainWindow() bool {
	return k == KindAppWindow || k == KindStartingWindow
}

// Gravity describes how buffer content is fitted to the node bounds.
type Gravity uint8

const (
	GravityCenter Gravity = iota
	GravityTop
	GravityBottom
	GravityLeft
	GravityRight
	GravityTopLeft
	GravityTopRight
	GravityBottomLeft
	GravityBottomRight
	GravityResize
	GravityResizeAspect
	GravityResizeAspectTopLeft
	GravityResizeAspectBottomRight
	GravityResizeAspectFill
	GravityResizeAspectFillTopLeft
	GravityResizeAspectFillBottomRight
)

// IsResize reports whether content is rescaled to the bounds, in which case a
// cached surface of a different size can still be presented.
func (g Gravity) IsResize() bool {
	return g >= GravityResize && g <= GravityResizeAspectFillBottomRight
}

// Switch is the per-node UI-first override.
type Switch uint8

const (
	SwitchDefault Switch = iota
	SwitchForceDisable
	SwitchForceEnable
)

// Size is a width/height pair in pixels.
type Size struct {
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// IsZero reports whether either dimension is zero.
func (s Size) IsZero() bool {
	return s.Width == 0 || s.Height == 0
}

// WindowInfo is the payload carried by window-like kinds.
type WindowInfo struct {
	Size          Size
	LastCacheSize Size
	Gravity       Gravity
	// Transparent together with ChildHasVisibleFilter means a filtered child
	// may draw outside the window bounds.
	Transparent           bool
	ChildHasVisibleFilter bool
	OldDirtyRect          Rect
	HasStartingWindow     bool
}

// CardInfo is the payload carried by ability components.
type CardInfo struct {
	ForceDisabled bool
}

// SurfaceNode is the per-frame snapshot of a scene-graph surface that the
// scheduler consumes. The scene graph owns the node; the scheduler only keeps
// its ID.
type SurfaceNode struct {
	ID             NodeID
	ParentID       NodeID
	InstanceRootID NodeID
	ScreenID       ScreenID
	Name           string
	Kind           NodeKind
	Pid            int32

	FirstLevel  bool
	OnTree      bool
	Children    []NodeID
	SubSurfaces []NodeID

	Animating      bool
	Rotating       bool
	Switch         Switch
	Unsupported    bool
	ProtectedLayer bool
	ForceFlag      bool
	ShouldPaint    bool
	SkipDraw       bool
	StaticContent  bool
	FrameDropHint  bool

	DirtyRect          Rect
	VisibleRegion      Region
	BehindWindowRegion Region

	ColorGamut ColorGamut
	HDRPresent bool

	Window WindowInfo
	Card   CardInfo
}

// IsLeash reports whether the node is a leash window.
func (n *SurfaceNode) IsLeash() bool { return n.Kind == KindLeashWindow }

// HasTransparentFilter reports the transparent window plus visible-filter child
// combination whose overdraw a cache would miss.
func (n *SurfaceNode) HasTransparentFilter() bool {
	return n.Window.Transparent && n.Window.ChildHasVisibleFilter
}

// MatchesAny reports whether the node name contains any of the given hints.
func (n *SurfaceNode) MatchesAny(hints []string) bool {
	for _, h := range hints {
		if h != "" && strings.Contains(n.Name, h) {
			return true
		}
	}
	return false
}
