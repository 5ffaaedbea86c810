package uifirst

import (
	"slices"

	"go.trai.ch/uifirst/internal/core/domain"
)

// paramsFor builds the render parameters of sub as of this frame.
func (m *Manager) paramsFor(sub *Subtree, node *domain.SurfaceNode) domain.CacheParams {
	return domain.CacheParams{
		NodeID:            sub.ID,
		CacheType:         sub.CacheType,
		NeedCacheSurface:  sub.NeedCacheSurface,
		Priority:          sub.Priority,
		Size:              node.Window.Size,
		DirtyRect:         node.DirtyRect.Join(sub.SkippedDirty),
		ChildrenDirtyRect: sub.ChildrenDirtyRect,
		TargetGamut:       sub.TargetGamut,
		ScreenID:          sub.ScreenID,
		HDRPresent:        sub.HDRPresent,
		WaitFirstFrame:    m.ownsGate(sub.ID),
	}
}

// stageParams writes this frame's parameters of every subtree and of the
// surfaces drawn into its cache.
func (m *Manager) stageParams() {
	ids := make([]domain.NodeID, 0, len(m.subtrees))
	for id := range m.subtrees {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		sub := m.subtrees[id]
		node, ok := m.classifier.Node(id)
		if !ok {
			continue
		}
		params := m.paramsFor(sub, node)
		m.params.Stage(id, id, func(p *domain.CacheParams) { *p = params })
		if !sub.IsEnabled() {
			continue
		}
		for _, child := range m.subSurfaces(node) {
			m.params.Stage(child.ID, id, func(p *domain.CacheParams) {
				p.NodeID = child.ID
				p.Size = child.Window.Size
				p.DirtyRect = child.DirtyRect
				p.ScreenID = child.ScreenID
				p.TargetGamut = sub.TargetGamut
			})
		}
	}
}

// commitParams registers every in-flight subtree with the syncer, replays
// the commits of subtrees that came back, and publishes the rest.
func (m *Manager) commitParams(rep *domain.FrameReport) {
	m.params.ResetProcessing()
	for id, t := range m.processing {
		m.params.SetProcessing(id, t.subSurfaces, t.isCard)
	}
	m.params.Restore()
	m.stageParams()
	rep.Deferred = m.params.Commit()
}
