package domain

import "time"

// EventKind distinguishes the two notifications an app sends for a scene.
type EventKind uint8

const (
	// EventResponse marks the start of an app scene.
	EventResponse EventKind = iota
	// EventComplete marks its end.
	EventComplete
)

// SceneEvent is an app-reported interaction such as a list fling.
type SceneEvent struct {
	Kind     EventKind
	UniqueID int64
	AppPid   int32
	SceneID  string
}

// AnimateScene is a system-wide animation reported by the window manager.
type AnimateScene uint8

const (
	SceneNone AnimateScene = iota
	SceneEnterRecents
	SceneExitRecents
	SceneEnterMissionCenter
	SceneExitMissionCenter
	SceneEnterSplitScreen
	SceneExitSplitScreen
	SceneSnapshotRotation
	SceneOthers
)

var animateSceneNames = map[string]AnimateScene{
	"":                     SceneNone,
	"enter-recents":        SceneEnterRecents,
	"exit-recents":         SceneExitRecents,
	"enter-mission-center": SceneEnterMissionCenter,
	"exit-mission-center":  SceneExitMissionCenter,
	"enter-split-screen":   SceneEnterSplitScreen,
	"exit-split-screen":    SceneExitSplitScreen,
	"snapshot-rotation":    SceneSnapshotRotation,
	"others":               SceneOthers,
}

// ParseAnimateScene resolves a scene name used in scripts.
func ParseAnimateScene(s string) (AnimateScene, bool) {
	scene, ok := animateSceneNames[s]
	return scene, ok
}

// Frame is everything the scheduler consumes from the scene graph for one
// vsync. Nodes are in pre-order, so a parent precedes its descendants.
type Frame struct {
	Number uint64
	Time   time.Time

	Screens []Screen
	Nodes   []SurfaceNode

	FocusNodeID      NodeID
	FocusLeashID     NodeID
	EntryViewID      NodeID
	NegativeScreenID NodeID
	ScenePid         int32

	FreeMultiWindow bool
	Rotating        bool

	Events       []SceneEvent
	AnimateScene AnimateScene
}

// Screen returns the screen with the given id.
func (f *Frame) Screen(id ScreenID) (Screen, bool) {
	for _, s := range f.Screens {
		if s.ID == id {
			return s, true
		}
	}
	return Screen{}, false
}

// Script is a recorded sequence of frames replayed against the scheduler.
type Script struct {
	Name          string
	FrameInterval time.Duration
	// RenderDelay is how long the software renderer spends per task.
	RenderDelay time.Duration
	Frames      []Frame
}
