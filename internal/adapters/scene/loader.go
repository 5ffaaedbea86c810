// Package scene loads recorded frame scripts for replay.
package scene

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"go.trai.ch/uifirst/internal/core/domain"
	"go.trai.ch/uifirst/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFrameInterval is one vsync at 60Hz.
	DefaultFrameInterval = 16 * time.Millisecond
	// DefaultRenderDelay is the time a worker spends per task when the
	// script does not say.
	DefaultRenderDelay = 4 * time.Millisecond
)

var _ ports.ScriptLoader = (*Loader)(nil)

// Loader implements ports.ScriptLoader for YAML scripts.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses the script at path. The raw bytes are returned with
// it so callers can address stored reports by script content.
func (l *Loader) Load(path string) (*domain.Script, []byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, nil, zerr.With(zerr.Wrap(err, domain.ErrScriptReadFailed.Error()), "path", path)
	}
	script, err := Parse(data)
	if err != nil {
		return nil, nil, zerr.With(err, "path", path)
	}
	return script, data, nil
}

// Parse decodes a script document.
func Parse(data []byte) (*domain.Script, error) {
	var dto ScriptDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.Wrap(err, domain.ErrScriptInvalid.Error())
	}
	return dto.toDomain()
}

func (s *ScriptDTO) toDomain() (*domain.Script, error) {
	script := &domain.Script{
		Name:          s.Name,
		FrameInterval: DefaultFrameInterval,
		RenderDelay:   DefaultRenderDelay,
	}

	var errs []error
	if s.FrameInterval != "" {
		d, err := time.ParseDuration(s.FrameInterval)
		if err != nil || d <= 0 {
			errs = append(errs, invalid("frameInterval", s.FrameInterval))
		} else {
			script.FrameInterval = d
		}
	}
	if s.RenderDelay != "" {
		d, err := time.ParseDuration(s.RenderDelay)
		if err != nil || d < 0 {
			errs = append(errs, invalid("renderDelay", s.RenderDelay))
		} else {
			script.RenderDelay = d
		}
	}
	if len(s.Frames) == 0 {
		errs = append(errs, invalid("frames", "empty"))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	epoch := time.Unix(0, 0).UTC()
	for i := range s.Frames {
		frame, err := s.Frames[i].toDomain()
		if err != nil {
			errs = append(errs, zerr.With(err, "frame", i))
			continue
		}
		repeat := max(s.Frames[i].Repeat, 1)
		for r := range repeat {
			f := frame
			f.Nodes = slices.Clone(frame.Nodes)
			if r > 0 {
				f.Events = nil
			}
			f.Number = uint64(len(script.Frames)) + 1
			f.Time = epoch.Add(time.Duration(len(script.Frames)) * script.FrameInterval)
			script.Frames = append(script.Frames, f)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return script, nil
}

func (f *FrameDTO) toDomain() (domain.Frame, error) {
	frame := domain.Frame{
		FocusNodeID:      domain.NodeID(f.Focus),
		FocusLeashID:     domain.NodeID(f.FocusLeash),
		EntryViewID:      domain.NodeID(f.EntryView),
		NegativeScreenID: domain.NodeID(f.NegativeScreen),
		ScenePid:         f.ScenePid,
		FreeMultiWindow:  f.FreeMultiWindow,
		Rotating:         f.Rotating,
	}

	scene, ok := domain.ParseAnimateScene(f.AnimateScene)
	if !ok {
		return domain.Frame{}, invalid("animateScene", f.AnimateScene)
	}
	frame.AnimateScene = scene

	for _, s := range f.Screens {
		screen, err := s.toDomain()
		if err != nil {
			return domain.Frame{}, err
		}
		frame.Screens = append(frame.Screens, screen)
	}

	for _, e := range f.Events {
		event := domain.SceneEvent{UniqueID: e.ID, AppPid: e.Pid, SceneID: e.Scene}
		switch e.Kind {
		case "response":
			event.Kind = domain.EventResponse
		case "complete":
			event.Kind = domain.EventComplete
		default:
			return domain.Frame{}, invalid("events.kind", e.Kind)
		}
		frame.Events = append(frame.Events, event)
	}

	seen := make(map[uint64]struct{}, len(f.Nodes))
	for _, n := range f.Nodes {
		if n.ID == 0 {
			return domain.Frame{}, invalid("nodes.id", n.ID)
		}
		if _, dup := seen[n.ID]; dup {
			return domain.Frame{}, invalid("nodes.id", n.ID)
		}
		seen[n.ID] = struct{}{}

		node, err := n.toDomain()
		if err != nil {
			return domain.Frame{}, zerr.With(err, "node", n.ID)
		}
		frame.Nodes = append(frame.Nodes, node)
	}
	if err := domain.ValidateTree(frame.Nodes); err != nil {
		return domain.Frame{}, zerr.Wrap(err, domain.ErrScriptInvalid.Error())
	}
	return frame, nil
}

func (s *ScreenDTO) toDomain() (domain.Screen, error) {
	gamut, err := parseGamut(s.Gamut)
	if err != nil {
		return domain.Screen{}, err
	}
	return domain.Screen{
		ID:                  domain.ScreenID(s.ID),
		PoweredOn:           s.PoweredOn == nil || *s.PoweredOn,
		ProcessOneMoreFrame: s.ProcessOneMoreFrame,
		Gamut:               gamut,
		HDROn:               s.HDR,
		ScRGB:               s.ScRGB,
		GamutAuthoritative:  s.GamutAuthoritative,
	}, nil
}

func (n *NodeDTO) toDomain() (domain.SurfaceNode, error) {
	kind, ok := domain.ParseNodeKind(n.Kind)
	if !ok && n.Kind != "" {
		return domain.SurfaceNode{}, invalid("kind", n.Kind)
	}
	sw, ok := switches[n.Switch]
	if !ok {
		return domain.SurfaceNode{}, invalid("switch", n.Switch)
	}
	gamut, err := parseGamut(n.Gamut)
	if err != nil {
		return domain.SurfaceNode{}, err
	}

	node := domain.SurfaceNode{
		ID:                 domain.NodeID(n.ID),
		ParentID:           domain.NodeID(n.Parent),
		InstanceRootID:     domain.NodeID(n.InstanceRoot),
		ScreenID:           domain.ScreenID(n.Screen),
		Name:               n.Name,
		Kind:               kind,
		Pid:                n.Pid,
		FirstLevel:         n.FirstLevel,
		OnTree:             n.OnTree == nil || *n.OnTree,
		Children:           nodeIDs(n.Children),
		SubSurfaces:        nodeIDs(n.SubSurfaces),
		Animating:          n.Animating,
		Rotating:           n.Rotating,
		Switch:             sw,
		Unsupported:        n.Unsupported,
		ProtectedLayer:     n.ProtectedLayer,
		ForceFlag:          n.ForceFlag,
		ShouldPaint:        n.ShouldPaint == nil || *n.ShouldPaint,
		SkipDraw:           n.SkipDraw,
		StaticContent:      n.StaticContent,
		FrameDropHint:      n.FrameDropHint,
		DirtyRect:          n.Dirty,
		VisibleRegion:      n.Visible,
		BehindWindowRegion: n.BehindWindow,
		ColorGamut:         gamut,
		HDRPresent:         n.HDR,
	}
	if node.InstanceRootID == domain.InvalidNodeID {
		node.InstanceRootID = node.ID
	}

	if w := n.Window; w != nil {
		gravity, ok := gravities[w.Gravity]
		if !ok {
			return domain.SurfaceNode{}, invalid("window.gravity", w.Gravity)
		}
		node.Window = domain.WindowInfo{
			Size:                  w.Size,
			LastCacheSize:         w.LastCacheSize,
			Gravity:               gravity,
			Transparent:           w.Transparent,
			ChildHasVisibleFilter: w.ChildHasVisibleFilter,
			OldDirtyRect:          w.OldDirty,
			HasStartingWindow:     w.HasStartingWindow,
		}
	}
	if n.Card != nil {
		node.Card = domain.CardInfo{ForceDisabled: n.Card.ForceDisabled}
	}
	return node, nil
}

var switches = map[string]domain.Switch{
	"":              domain.SwitchDefault,
	"default":       domain.SwitchDefault,
	"force-disable": domain.SwitchForceDisable,
	"force-enable":  domain.SwitchForceEnable,
}

var gravities = map[string]domain.Gravity{
	"":                                domain.GravityCenter,
	"center":                          domain.GravityCenter,
	"top":                             domain.GravityTop,
	"bottom":                          domain.GravityBottom,
	"left":                            domain.GravityLeft,
	"right":                           domain.GravityRight,
	"top-left":                        domain.GravityTopLeft,
	"top-right":                       domain.GravityTopRight,
	"bottom-left":                     domain.GravityBottomLeft,
	"bottom-right":                    domain.GravityBottomRight,
	"resize":                          domain.GravityResize,
	"resize-aspect":                   domain.GravityResizeAspect,
	"resize-aspect-top-left":          domain.GravityResizeAspectTopLeft,
	"resize-aspect-bottom-right":      domain.GravityResizeAspectBottomRight,
	"resize-aspect-fill":              domain.GravityResizeAspectFill,
	"resize-aspect-fill-top-left":     domain.GravityResizeAspectFillTopLeft,
	"resize-aspect-fill-bottom-right": domain.GravityResizeAspectFillBottomRight,
}

func parseGamut(s string) (domain.ColorGamut, error) {
	if s == "" {
		return domain.GamutSRGB, nil
	}
	g, ok := domain.ParseColorGamut(s)
	if !ok {
		return domain.GamutSRGB, invalid("gamut", s)
	}
	return g, nil
}

func nodeIDs(ids []uint64) []domain.NodeID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]domain.NodeID, len(ids))
	for i, id := range ids {
		out[i] = domain.NodeID(id)
	}
	return out
}

func invalid(field string, value any) error {
	return zerr.With(zerr.With(domain.ErrScriptInvalid, "field", field), "value", fmt.Sprint(value))
}
