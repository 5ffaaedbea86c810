package paramsync

import (
	"maps"
	"slices"
	"sync/atomic"

	"go.trai.ch/uifirst/internal/core/domain"
)

// MergeFunc projects the staged fields that may be published while a worker
// still holds the node.
type MergeFunc[T any] func(active, staged T) T

type entry[T any] struct {
	id     domain.NodeID
	staged T
}

// Syncer commits staged parameters once per frame, deferring nodes whose
// subtree is owned by a worker. Everything except Slot.Active must be called
// from the frame thread.
type Syncer[T any] struct {
	slots   map[domain.NodeID]*Slot[T]
	pending []domain.NodeID
	queued  map[domain.NodeID]struct{}

	skip    map[domain.NodeID]struct{}
	partial map[domain.NodeID]struct{}
	card    map[domain.NodeID]struct{}

	deferred map[domain.NodeID][]entry[T]
	replay   []entry[T]

	merge      MergeFunc[T]
	generation atomic.Uint64
}

// New creates an empty Syncer. merge is applied to roots that are partially synced.
func New[T any](merge MergeFunc[T]) *Syncer[T] {
	return &Syncer[T]{
		slots:    make(map[domain.NodeID]*Slot[T]),
		queued:   make(map[domain.NodeID]struct{}),
		skip:     make(map[domain.NodeID]struct{}),
		partial:  make(map[domain.NodeID]struct{}),
		card:     make(map[domain.NodeID]struct{}),
		deferred: make(map[domain.NodeID][]entry[T]),
		merge:    merge,
	}
}

// Slot returns the slot of id, or nil.
func (s *Syncer[T]) Slot(id domain.NodeID) *Slot[T] {
	return s.slots[id]
}

// Stage mutates the staging copy of id and queues it for the next commit.
// root is the node whose worker ownership governs id; pass id itself for a
// node that roots its own subtree.
func (s *Syncer[T]) Stage(id, root domain.NodeID, fn func(*T)) {
	slot, ok := s.slots[id]
	if !ok {
		var zero T
		slot = NewSlot(zero)
		s.slots[id] = slot
	}
	if root == domain.InvalidNodeID {
		root = id
	}
	slot.root = root
	slot.Stage(fn)
	if _, ok := s.queued[id]; !ok {
		s.queued[id] = struct{}{}
		s.pending = append(s.pending, id)
	}
}

// Slots returns a copy of the slot index. The slots themselves are shared, so
// readers on other goroutines can call Active on them.
func (s *Syncer[T]) Slots() map[domain.NodeID]*Slot[T] {
	return maps.Clone(s.slots)
}

// Active returns the published value of id.
func (s *Syncer[T]) Active(id domain.NodeID) (T, bool) {
	slot, ok := s.slots[id]
	if !ok {
		var zero T
		return zero, false
	}
	return slot.Active(), true
}

// ResetProcessing clears the skip sets. It is called at the start of every
// frame before the in-flight roots are registered again.
func (s *Syncer[T]) ResetProcessing() {
	clear(s.skip)
	clear(s.partial)
	clear(s.card)
}

// SetProcessing registers root as owned by a worker. Card roots are held in
// their own set. Other roots are partially synced and their sub-surfaces are
// skipped entirely.
func (s *Syncer[T]) SetProcessing(root domain.NodeID, subSurfaces []domain.NodeID, isCard bool) {
	if isCard {
		s.card[root] = struct{}{}
		return
	}
	s.partial[root] = struct{}{}
	for _, id := range subSurfaces {
		s.skip[id] = struct{}{}
	}
}

// Holds reports whether root is in any skip set.
func (s *Syncer[T]) Holds(root domain.NodeID) bool {
	_, skip := s.skip[root]
	_, partial := s.partial[root]
	_, card := s.card[root]
	return skip || partial || card
}

// Commit publishes replayed entries first, then every queued node that is not
// held by a worker. Held nodes are deferred under their root. It returns the
// number of nodes deferred in this pass.
func (s *Syncer[T]) Commit() int {
	gen := s.generation.Add(1)

	for _, e := range s.replay {
		if slot, ok := s.slots[e.id]; ok {
			slot.publish(e.staged, gen)
		}
	}
	s.replay = s.replay[:0]

	deferredCount := 0
	for _, id := range s.pending {
		delete(s.queued, id)
		slot, ok := s.slots[id]
		if !ok {
			continue
		}
		root := slot.root
		_, rootPartial := s.partial[root]
		_, rootCard := s.card[root]
		_, rootSkip := s.skip[root]

		switch {
		case rootPartial || rootCard:
			s.deferred[root] = append(s.deferred[root], entry[T]{id: id, staged: slot.Staged()})
			deferredCount++
			if id == root && s.merge != nil {
				slot.publish(s.merge(slot.Active(), slot.Staged()), gen)
			}
		case rootSkip:
			s.deferred[root] = append(s.deferred[root], entry[T]{id: id, staged: slot.Staged()})
			deferredCount++
		default:
			slot.commit(gen)
		}
	}
	s.pending = s.pending[:0]
	return deferredCount
}

// Restore moves the deferred entries of every root no longer held by a
// worker into the replay queue, preserving their order. It returns the
// restored roots in ascending order.
func (s *Syncer[T]) Restore() []domain.NodeID {
	var restored []domain.NodeID
	for root := range s.deferred {
		if !s.Holds(root) {
			restored = append(restored, root)
		}
	}
	slices.Sort(restored)
	for _, root := range restored {
		s.replay = append(s.replay, s.deferred[root]...)
		delete(s.deferred, root)
	}
	return restored
}

// Discard drops everything deferred under root without replaying it. It is
// used when the root is torn down while a worker still owns it.
func (s *Syncer[T]) Discard(root domain.NodeID) int {
	n := len(s.deferred[root])
	delete(s.deferred, root)
	delete(s.partial, root)
	delete(s.card, root)
	return n
}

// Remove forgets id entirely.
func (s *Syncer[T]) Remove(id domain.NodeID) {
	delete(s.slots, id)
	delete(s.queued, id)
	s.pending = slices.DeleteFunc(s.pending, func(p domain.NodeID) bool { return p == id })
	s.replay = slices.DeleteFunc(s.replay, func(e entry[T]) bool { return e.id == id })
}

// Deferred returns the number of entries waiting under root.
func (s *Syncer[T]) Deferred(root domain.NodeID) int {
	return len(s.deferred[root])
}

// DeferredRoots returns how many roots hold deferred entries.
func (s *Syncer[T]) DeferredRoots() int {
	return len(s.deferred)
}

// Generation returns the number of commit passes so far.
func (s *Syncer[T]) Generation() uint64 {
	return s.generation.Load()
}
