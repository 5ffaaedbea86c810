package uifirst

import "go.trai.ch/uifirst/internal/core/domain"

// armFirstFrameGate holds back the presentation of a freshly enabled subtree
// until a worker has produced its first cache.
func (m *Manager) armFirstFrameGate(sub *Subtree, node *domain.SurfaceNode) {
	switch sub.CacheType {
	case domain.CacheLeashWindow:
		if !m.cfg.StartingWindowCache {
			return
		}
		for _, child := range m.classifier.children(node) {
			if child.Kind.IsMainWindow() {
				m.gates[child.ID] = sub.ID
			}
		}
	case domain.CacheArkTsCard:
		if m.events.SkipFirstWait() {
			return
		}
		m.gates[sub.ID] = sub.ID
	case domain.CacheNone, domain.CacheNonFocusWindow:
	}
}

// releaseFirstFrameGate drops every gate owned by owner.
func (m *Manager) releaseFirstFrameGate(owner domain.NodeID) {
	for id, o := range m.gates {
		if o == owner {
			delete(m.gates, id)
		}
	}
}

// dropStaleGates releases the gates of nodes that left the tree while their
// owner stayed cached.
func (m *Manager) dropStaleGates() {
	for id := range m.gates {
		if node, ok := m.classifier.Node(id); !ok || !node.OnTree {
			delete(m.gates, id)
		}
	}
}

// openFirstFrameGate releases the gates satisfied by a completed surface.
func (m *Manager) openFirstFrameGate(owner domain.NodeID, surface *domain.Surface) {
	for id, o := range m.gates {
		if o == owner && (id == owner || surface.Drew(id)) {
			delete(m.gates, id)
		}
	}
}

func (m *Manager) ownsGate(owner domain.NodeID) bool {
	for _, o := range m.gates {
		if o == owner {
			return true
		}
	}
	return false
}

// childrenDirtyRect unions the previous dirty rectangles of the main windows
// drawn inside a leash window.
func (m *Manager) childrenDirtyRect(node *domain.SurfaceNode) domain.Rect {
	var rect domain.Rect
	if !node.IsLeash() {
		return rect
	}
	for _, child := range m.classifier.children(node) {
		if child.Kind.IsMainWindow() {
			rect = rect.Join(child.Window.OldDirtyRect)
		}
	}
	return rect
}

// subSurfaces returns the surfaces drawn into the cache of node: its declared
// sub-surfaces plus any main window child.
func (m *Manager) subSurfaces(node *domain.SurfaceNode) []*domain.SurfaceNode {
	seen := make(map[domain.NodeID]struct{}, len(node.SubSurfaces))
	var out []*domain.SurfaceNode
	add := func(id domain.NodeID) {
		if _, ok := seen[id]; ok || id == node.ID {
			return
		}
		if n, ok := m.classifier.Node(id); ok {
			seen[id] = struct{}{}
			out = append(out, n)
		}
	}
	for _, id := range node.SubSurfaces {
		add(id)
	}
	for _, child := range m.classifier.children(node) {
		if child.Kind.IsMainWindow() {
			add(child.ID)
		}
	}
	return out
}
