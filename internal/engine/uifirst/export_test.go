package uifirst

import (
	"context"
	"slices"

	"go.trai.ch/uifirst/internal/core/domain"
)

// Subtree returns the scheduler state of id.
// This is exported for testing purposes only.
func (m *Manager) Subtree(id domain.NodeID) (*Subtree, bool) {
	s, ok := m.subtrees[id]
	return s, ok
}

// PendingIDs returns the ids left in either pending set after the last frame.
func (m *Manager) PendingIDs() []domain.NodeID {
	var ids []domain.NodeID
	for id := range m.pendingPost {
		ids = append(ids, id)
	}
	for id := range m.pendingCard {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ProcessingIDs returns the ids a worker currently owns.
func (m *Manager) ProcessingIDs() []domain.NodeID {
	var ids []domain.NodeID
	for id := range m.processing {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Classifier exposes the classifier used by the last frame.
func (m *Manager) Classifier() *Classifier {
	return m.classifier
}

// Post dispatches id outside of RunFrame.
func (m *Manager) Post(ctx context.Context, id domain.NodeID) error {
	return m.post(ctx, m.subtrees[id])
}

// Deferred returns how many parameter commits wait under root.
func (m *Manager) Deferred(root domain.NodeID) int {
	return m.params.Deferred(root)
}

// Transition moves the subtree along a status edge.
func (s *Subtree) Transition(to domain.ProcessStatus) error {
	return s.transition(to)
}

// NewTestSubtree creates subtree state for node.
func NewTestSubtree(node *domain.SurfaceNode) *Subtree {
	return newSubtree(node)
}

// NewTestClassifier creates a classifier prepared for frame. A nil frame
// leaves it unprepared.
func NewTestClassifier(cfg domain.Config, subtrees map[domain.NodeID]*Subtree, frame *domain.Frame) *Classifier {
	c := newClassifier(cfg, subtrees, newEventTracker(), &animateScenes{})
	if frame != nil {
		c.Prepare(frame)
	}
	return c
}

// SortPending exposes the dispatch ordering.
func SortPending(pending []*Subtree) []*Subtree {
	return sortPending(pending)
}
