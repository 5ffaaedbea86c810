// Package paramsync hands per-node render parameters from the frame thread to
// workers and the compositor through a staging/active double buffer.
package paramsync

import (
	"sync/atomic"

	"go.trai.ch/uifirst/internal/core/domain"
)

// Slot is the two-slot buffer of a single node. Staging is owned by the frame
// thread. Active may be read from any goroutine.
type Slot[T any] struct {
	staging    T
	dirty      bool
	root       domain.NodeID
	active     atomic.Pointer[T]
	generation atomic.Uint64
}

// NewSlot creates a slot whose staging and active copies both hold initial.
func NewSlot[T any](initial T) *Slot[T] {
	s := &Slot[T]{staging: initial}
	v := initial
	s.active.Store(&v)
	return s
}

// Stage mutates the staging copy and marks the slot dirty.
func (s *Slot[T]) Stage(fn func(*T)) {
	fn(&s.staging)
	s.dirty = true
}

// Staged returns a copy of the staging value.
func (s *Slot[T]) Staged() T {
	return s.staging
}

// Dirty reports whether staging changed since the last full commit.
func (s *Slot[T]) Dirty() bool {
	return s.dirty
}

// Active returns the last published value.
func (s *Slot[T]) Active() T {
	return *s.active.Load()
}

// Generation returns the commit generation of the last publish.
func (s *Slot[T]) Generation() uint64 {
	return s.generation.Load()
}

func (s *Slot[T]) publish(v T, gen uint64) {
	s.active.Store(&v)
	s.generation.Store(gen)
}

func (s *Slot[T]) commit(gen uint64) {
	s.publish(s.staging, gen)
	s.dirty = false
}
