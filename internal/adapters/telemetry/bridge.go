package telemetry

import (
	"context"
	"maps"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// FrameSpanName is the span wrapping one scheduling pass.
const FrameSpanName = "uifirst.frame"

const phasePrefix = "uifirst."

// PhaseStat aggregates the ended spans of one phase.
type PhaseStat struct {
	Count  int
	Failed int
	Total  time.Duration
}

// Bridge implements sdktrace.SpanProcessor. It counts the phase spans of the
// current frame and keeps running totals per phase name.
type Bridge struct {
	mu      sync.Mutex
	pending int
	stats   map[string]PhaseStat
}

// NewBridge returns a new Bridge.
func NewBridge() *Bridge {
	return &Bridge{stats: make(map[string]PhaseStat)}
}

// OnStart does nothing.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd records a finished phase span.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	name := s.Name()
	if !strings.HasPrefix(name, phasePrefix) || name == FrameSpanName {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending++
	st := b.stats[name]
	st.Count++
	st.Total += s.EndTime().Sub(s.StartTime())
	if s.Status().Code == codes.Error {
		st.Failed++
	}
	b.stats[name] = st
}

// TakePhases returns the number of phases ended since the last call.
func (b *Bridge) TakePhases() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := b.pending
	b.pending = 0
	return n
}

// Stats returns a copy of the per-phase totals.
func (b *Bridge) Stats() map[string]PhaseStat {
	b.mu.Lock()
	defer b.mu.Unlock()
	return maps.Clone(b.stats)
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
