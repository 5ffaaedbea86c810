package uifirst

import (
	"fmt"
	"time"

	"go.trai.ch/uifirst/internal/core/domain"
)

// updateNode classifies node and applies the resulting cache type. Subtree
// state is created lazily the first frame a node classifies as cacheable.
func (m *Manager) updateNode(node *domain.SurfaceNode, ancestorHasAnimation bool) {
	kind := m.classifier.Classify(node, ancestorHasAnimation)
	sub, ok := m.subtrees[node.ID]
	if !ok {
		if kind == domain.CacheNone {
			return
		}
		sub = newSubtree(node)
		m.subtrees[node.ID] = sub
	}
	sub.Name = node.Name
	sub.InstanceRootID = node.InstanceRootID

	switch kind {
	case domain.CacheNone:
		m.stateChange(sub, node, domain.CacheNone)
	case domain.CacheLeashWindow:
		if m.cfg.StartingWindowCache && sub.LastFrameCacheType == domain.CacheNone &&
			m.classifier.hasStartingWindow(node) {
			m.stateChange(sub, node, domain.CacheLeashWindow)
			return
		}
		m.processFirstFrameCache(sub, node, kind)
	case domain.CacheArkTsCard, domain.CacheNonFocusWindow:
		m.processFirstFrameCache(sub, node, kind)
	}
}

// processFirstFrameCache renders the first eligible frame on the frame
// thread and only hands the subtree to a worker from the next frame on.
func (m *Manager) processFirstFrameCache(sub *Subtree, node *domain.SurfaceNode, kind domain.CacheType) {
	if sub.LastFrameCacheType == domain.CacheNone && !sub.SubThreadAssignable {
		m.stateChange(sub, node, domain.CacheNone)
		if node.ShouldPaint && !node.SkipDraw {
			sub.SubThreadAssignable = true
			sub.NeedCacheSurface = true
		}
		return
	}
	m.stateChange(sub, node, kind)
}

// stateChange moves sub from last frame's cache type to current. Switching
// directly between two cache types is not supported and disables the cache.
func (m *Manager) stateChange(sub *Subtree, node *domain.SurfaceNode, current domain.CacheType) {
	last := sub.LastFrameCacheType
	if last != domain.CacheNone && last != current {
		current = domain.CacheNone
	}

	switch {
	case last == domain.CacheNone && current != domain.CacheNone:
		m.logger.Info(fmt.Sprintf("uifirst enable %s (%d) as %s", sub.Name, sub.ID, current))
		sub.CacheType = current
		sub.StartTime = m.now
		sub.SubThreadAssignable = true
		sub.NeedCacheSurface = false
		delete(m.pendingReset, sub.ID)
		m.enqueue(sub, node)
		m.armFirstFrameGate(sub, node)
		m.classifier.increaseWindowCount(node)
	case last == domain.CacheNone:
		sub.SubThreadAssignable = false
		sub.NeedCacheSurface = false
	case current != domain.CacheNone:
		m.enqueue(sub, node)
		m.classifier.increaseWindowCount(node)
	default:
		m.logger.Info(fmt.Sprintf("uifirst disable %s (%d)", sub.Name, sub.ID))
		m.disable(sub)
	}
	sub.LastFrameCacheType = current
}

// disable turns the cache of sub off. A subtree still owned by a worker keeps
// its surface until the worker reports back.
func (m *Manager) disable(sub *Subtree) {
	sub.CacheType = domain.CacheNone
	sub.StartTime = time.Time{}
	sub.SubThreadAssignable = false
	sub.NeedCacheSurface = false
	sub.ToBeCaptured = false
	m.releaseFirstFrameGate(sub.ID)
	m.classifier.decreaseWindowCount(sub.ID)
	m.purger.Forget(sub.ID)
	m.evictor.Forget(sub.ID)
	delete(m.pendingPost, sub.ID)
	delete(m.pendingCard, sub.ID)
	delete(m.skipped, sub.ID)

	if _, busy := m.processing[sub.ID]; busy {
		m.pendingReset[sub.ID] = struct{}{}
		return
	}
	sub.resetCache()
}

// enqueue adds sub to the pending set that matches its cache type.
func (m *Manager) enqueue(sub *Subtree, node *domain.SurfaceNode) {
	if sub.CacheType == domain.CacheArkTsCard {
		m.pendingCard[sub.ID] = sub
	} else {
		m.pendingPost[sub.ID] = sub
	}
	if sub.CacheType == domain.CacheLeashWindow {
		sub.ChildrenDirtyRect = m.childrenDirtyRect(node)
		sub.ToBeCaptured = m.scenes.recents
	}
	if _, ok := m.skipped[sub.ID]; ok {
		sub.ForceDrawWithSkipped = true
		delete(m.skipped, sub.ID)
	}
	sub.PostOrder = m.nextPostOrder(sub)
}

// excludeCardsInLeash drops pending cards that will be drawn as part of a
// pending leash window cache.
func (m *Manager) excludeCardsInLeash() {
	for id := range m.pendingCard {
		node, ok := m.classifier.Node(id)
		if !ok {
			continue
		}
		for parent := node.ParentID; parent != domain.InvalidNodeID; {
			if sub, ok := m.pendingPost[parent]; ok && sub.CacheType == domain.CacheLeashWindow {
				delete(m.pendingCard, id)
				break
			}
			p, ok := m.classifier.Node(parent)
			if !ok {
				break
			}
			parent = p.ParentID
		}
	}
}
