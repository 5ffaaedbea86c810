package uifirst

import (
	"cmp"
	"slices"

	"go.trai.ch/uifirst/internal/core/domain"
)

const (
	// skipPriorityThreshold is the number of demoted frames after which a
	// subtree is pushed ahead of its priority class.
	skipPriorityThreshold = 3
	skipPriorityBoost     = uint64(1) << 32
	// highPriorityPostMax bounds the high-post marking when no window holds focus.
	highPriorityPostMax = 6
)

// basePriority assigns the dispatch class of sub for this frame.
func (m *Manager) basePriority(sub *Subtree, node *domain.SurfaceNode) domain.Priority {
	switch {
	case m.isFocusAdjacent(node):
		return domain.PriorityFocusNode
	case node.MatchesAny(m.cfg.HighPriorityHints):
		return domain.PriorityVideo
	case sub.Status == domain.StatusWaiting:
		return domain.PriorityHigh
	case sub.HasValidSurface():
		return domain.PriorityLow
	default:
		return domain.PriorityHigh
	}
}

// isFocusAdjacent reports whether node sits directly next to the focused
// leash (or focused window) under the same parent.
func (m *Manager) isFocusAdjacent(node *domain.SurfaceNode) bool {
	focusID := m.frame.FocusLeashID
	if focusID == domain.InvalidNodeID {
		focusID = m.frame.FocusNodeID
	}
	if focusID == domain.InvalidNodeID || focusID == node.ID {
		return false
	}
	focus, ok := m.classifier.Node(focusID)
	if !ok || focus.ParentID != node.ParentID {
		return false
	}
	parent, ok := m.classifier.Node(node.ParentID)
	if !ok {
		return false
	}
	fi := slices.Index(parent.Children, focusID)
	ni := slices.Index(parent.Children, node.ID)
	if fi < 0 || ni < 0 {
		return false
	}
	return fi-ni == 1 || ni-fi == 1
}

// nextPostOrder hands out the insertion order of sub, raised once the
// subtree has been demoted often enough.
func (m *Manager) nextPostOrder(sub *Subtree) uint64 {
	m.postOrder++
	order := m.postOrder
	if m.cfg.OptSchedule && sub.SkipCount >= skipPriorityThreshold {
		order += skipPriorityBoost
	}
	return order
}

// sortPending orders the subtrees for dispatch: priority ascending, then
// post order descending, then node id ascending.
func sortPending(pending []*Subtree) []*Subtree {
	slices.SortFunc(pending, func(a, b *Subtree) int {
		if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
			return c
		}
		if c := cmp.Compare(b.PostOrder, a.PostOrder); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return pending
}

// markHighPost flags the subtrees whose tasks should run ahead of others.
func (m *Manager) markHighPost(sorted []*Subtree) {
	hasFocus := m.frame.FocusNodeID != domain.InvalidNodeID || m.frame.FocusLeashID != domain.InvalidNodeID
	for i, sub := range sorted {
		sub.HighPostPriority = false
		if !m.cfg.OptSchedule {
			continue
		}
		if sub.Priority < domain.PriorityLow {
			sub.HighPostPriority = true
			continue
		}
		if !hasFocus && i < highPriorityPostMax-1 {
			sub.HighPostPriority = true
		}
	}
}
