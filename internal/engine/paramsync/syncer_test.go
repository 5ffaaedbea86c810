package paramsync_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/uifirst/internal/core/domain"
	"go.trai.ch/uifirst/internal/engine/paramsync"
)

type params struct {
	Flag  int
	Width int
}

func mergeFlag(active, staged params) params {
	active.Flag = staged.Flag
	return active
}

func TestSyncer_CommitPublishesStaged(t *testing.T) {
	s := paramsync.New(mergeFlag)

	s.Stage(1, 1, func(p *params) { p.Width = 100 })
	active, ok := s.Active(1)
	require.True(t, ok)
	assert.Equal(t, 0, active.Width, "staging must not leak before commit")

	deferred := s.Commit()
	assert.Equal(t, 0, deferred)

	active, _ = s.Active(1)
	assert.Equal(t, 100, active.Width)
	assert.Equal(t, uint64(1), s.Slot(1).Generation())
	assert.False(t, s.Slot(1).Dirty())
}

func TestSyncer_ProcessingRootIsPartiallySynced(t *testing.T) {
	s := paramsync.New(mergeFlag)
	s.Stage(1, 1, func(p *params) { p.Width = 100 })
	s.Commit()

	s.SetProcessing(1, []domain.NodeID{2}, false)
	s.Stage(1, 1, func(p *params) {
		p.Flag = 7
		p.Width = 50
	})
	s.Stage(2, 2, func(p *params) { p.Width = 30 })
	s.Stage(3, 3, func(p *params) { p.Width = 10 })

	deferred := s.Commit()
	assert.Equal(t, 2, deferred)

	root, _ := s.Active(1)
	assert.Equal(t, 7, root.Flag, "partial fields commit while processing")
	assert.Equal(t, 100, root.Width, "geometry stays frozen while processing")

	sub, _ := s.Active(2)
	assert.Equal(t, 0, sub.Width, "sub-surfaces are fully deferred")

	other, _ := s.Active(3)
	assert.Equal(t, 10, other.Width)

	assert.Equal(t, 1, s.Deferred(1))
	assert.Equal(t, 1, s.Deferred(2))
}

func TestSyncer_RestoreReplaysInOrder(t *testing.T) {
	s := paramsync.New(mergeFlag)
	s.SetProcessing(1, nil, true)

	// Two frames of staging while the card is in flight.
	s.Stage(5, 1, func(p *params) { p.Width = 1 })
	s.Commit()
	s.Stage(5, 1, func(p *params) { p.Width = 2 })
	s.Commit()
	require.Equal(t, 2, s.Deferred(1))

	// Still held: nothing restored.
	assert.Empty(t, s.Restore())

	s.ResetProcessing()
	restored := s.Restore()
	assert.Equal(t, []domain.NodeID{1}, restored)
	assert.Equal(t, 0, s.DeferredRoots())

	active, _ := s.Active(5)
	assert.Equal(t, 0, active.Width, "replay waits for the next commit pass")

	s.Commit()
	active, _ = s.Active(5)
	assert.Equal(t, 2, active.Width)
}

func TestSyncer_DiscardDropsDeferred(t *testing.T) {
	s := paramsync.New(mergeFlag)
	s.SetProcessing(1, []domain.NodeID{2}, false)
	s.Stage(2, 2, func(p *params) { p.Width = 9 })
	s.Commit()
	require.Equal(t, 1, s.Deferred(2))

	s.Stage(1, 1, func(p *params) { p.Width = 4 })
	s.Commit()
	require.Equal(t, 1, s.Deferred(1))

	assert.Equal(t, 1, s.Discard(1))
	assert.Equal(t, 0, s.Deferred(1))
	assert.False(t, s.Holds(1))

	s.Remove(2)
	_, ok := s.Active(2)
	assert.False(t, ok)
}

func TestSlot_ActiveIsSafeForConcurrentReaders(t *testing.T) {
	s := paramsync.New[params](nil)
	s.Stage(1, 1, func(p *params) { p.Width = 1 })
	s.Commit()
	slot := s.Slot(1)

	var wg sync.WaitGroup
	for range 4 {
		wg.Go(func() {
			for range 1000 {
				_ = slot.Active().Width
			}
		})
	}
	for i := range 100 {
		s.Stage(1, 1, func(p *params) { p.Width = i })
		s.Commit()
	}
	wg.Wait()

	assert.Equal(t, 99, slot.Active().Width)
	assert.Equal(t, uint64(101), s.Generation())
}
