package scene

import "go.trai.ch/uifirst/internal/core/domain"

// ScriptDTO is the on-disk layout of a frame script.
type ScriptDTO struct {
	Name          string     `yaml:"name"`
	FrameInterval string     `yaml:"frameInterval"`
	RenderDelay   string     `yaml:"renderDelay"`
	Frames        []FrameDTO `yaml:"frames"`
}

// FrameDTO describes one vsync. Repeat emits the frame that many times;
// events are only delivered with the first copy.
type FrameDTO struct {
	Repeat          int         `yaml:"repeat"`
	Screens         []ScreenDTO `yaml:"screens"`
	Focus           uint64      `yaml:"focus"`
	FocusLeash      uint64      `yaml:"focusLeash"`
	EntryView       uint64      `yaml:"entryView"`
	NegativeScreen  uint64      `yaml:"negativeScreen"`
	ScenePid        int32       `yaml:"scenePid"`
	FreeMultiWindow bool        `yaml:"freeMultiWindow"`
	Rotating        bool        `yaml:"rotating"`
	AnimateScene    string      `yaml:"animateScene"`
	Events          []EventDTO  `yaml:"events"`
	Nodes           []NodeDTO   `yaml:"nodes"`
}

// ScreenDTO describes a screen.
type ScreenDTO struct {
	ID                  uint64 `yaml:"id"`
	PoweredOn           *bool  `yaml:"poweredOn"`
	ProcessOneMoreFrame bool   `yaml:"processOneMoreFrame"`
	Gamut               string `yaml:"gamut"`
	HDR                 bool   `yaml:"hdr"`
	ScRGB               bool   `yaml:"scRGB"`
	GamutAuthoritative  bool   `yaml:"gamutAuthoritative"`
}

// EventDTO describes an app scene notification.
type EventDTO struct {
	Kind  string `yaml:"kind"`
	ID    int64  `yaml:"id"`
	Pid   int32  `yaml:"pid"`
	Scene string `yaml:"scene"`
}

// NodeDTO describes a surface node. Nodes are on tree and painted unless
// stated otherwise.
type NodeDTO struct {
	ID           uint64 `yaml:"id"`
	Parent       uint64 `yaml:"parent"`
	InstanceRoot uint64 `yaml:"instanceRoot"`
	Screen       uint64 `yaml:"screen"`
	Name         string `yaml:"name"`
	Kind         string `yaml:"kind"`
	Pid          int32  `yaml:"pid"`

	FirstLevel  bool     `yaml:"firstLevel"`
	OnTree      *bool    `yaml:"onTree"`
	Children    []uint64 `yaml:"children"`
	SubSurfaces []uint64 `yaml:"subSurfaces"`

	Animating      bool   `yaml:"animating"`
	Rotating       bool   `yaml:"rotating"`
	Switch         string `yaml:"switch"`
	Unsupported    bool   `yaml:"unsupported"`
	ProtectedLayer bool   `yaml:"protectedLayer"`
	ForceFlag      bool   `yaml:"forceFlag"`
	ShouldPaint    *bool  `yaml:"shouldPaint"`
	SkipDraw       bool   `yaml:"skipDraw"`
	StaticContent  bool   `yaml:"staticContent"`
	FrameDropHint  bool   `yaml:"frameDropHint"`

	Dirty        domain.Rect   `yaml:"dirty"`
	Visible      domain.Region `yaml:"visible"`
	BehindWindow domain.Region `yaml:"behindWindow"`

	Gamut string `yaml:"gamut"`
	HDR   bool   `yaml:"hdr"`

	Window *WindowDTO `yaml:"window"`
	Card   *CardDTO   `yaml:"card"`
}

// WindowDTO describes the window payload.
type WindowDTO struct {
	Size                  domain.Size `yaml:"size"`
	LastCacheSize         domain.Size `yaml:"lastCacheSize"`
	Gravity               string      `yaml:"gravity"`
	Transparent           bool        `yaml:"transparent"`
	ChildHasVisibleFilter bool        `yaml:"childHasVisibleFilter"`
	OldDirty              domain.Rect `yaml:"oldDirty"`
	HasStartingWindow     bool        `yaml:"hasStartingWindow"`
}

// CardDTO describes the card payload.
type CardDTO struct {
	ForceDisabled bool `yaml:"forceDisabled"`
}
