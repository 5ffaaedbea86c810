// Package raster provides a deterministic software renderer for cache
// surfaces.
package raster

import (
	"context"
	"encoding/binary"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/uifirst/internal/core/domain"
	"go.trai.ch/uifirst/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SubtreeRenderer = (*Renderer)(nil)

// Renderer draws a subtree by hashing what would be painted. The content
// hash depends on the geometry and color of the surface, and on the
// generation whenever the subtree has a dirty region, so an undamaged
// subtree reproduces its previous hash.
type Renderer struct {
	delay time.Duration

	mu   sync.Mutex
	free []*xxhash.Digest
}

// NewRenderer creates a renderer that spends delay on every task.
func NewRenderer(delay time.Duration) *Renderer {
	return &Renderer{delay: delay}
}

// Render draws task into a new surface.
func (r *Renderer) Render(ctx context.Context, task *domain.RenderTask) (*domain.Surface, error) {
	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, zerr.With(zerr.Wrap(ctx.Err(), domain.ErrRenderFailed.Error()), "node", uint64(task.NodeID))
		case <-timer.C:
		}
	}

	params := task.Params

	d := r.acquire()
	defer r.release(d)

	writeUint(d, uint64(task.NodeID))
	writeUint(d, uint64(params.Size.Width))
	writeUint(d, uint64(params.Size.Height))
	writeUint(d, uint64(params.TargetGamut))
	writeBool(d, params.HDRPresent)
	for _, id := range task.SubSurfaces {
		writeUint(d, uint64(id))
	}
	_, _ = d.Write([]byte{0})

	damage := params.DirtyRect.Join(params.ChildrenDirtyRect)
	if !damage.IsEmpty() {
		writeUint(d, task.Generation)
		writeRect(d, damage)
	}

	return &domain.Surface{
		NodeID:         task.NodeID,
		Generation:     task.Generation,
		Size:           params.Size,
		Gamut:          params.TargetGamut,
		FP16:           params.HDRPresent,
		ContentHash:    d.Sum64(),
		ProcessedNodes: 1 + len(task.SubSurfaces),
		DrawnSurfaces:  append([]domain.NodeID(nil), task.SubSurfaces...),
	}, nil
}

// ReleaseIdle drops the digests kept for reuse.
func (r *Renderer) ReleaseIdle() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.free = nil
}

// Idle returns the number of digests kept for reuse.
func (r *Renderer) Idle() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.free)
}

func (r *Renderer) acquire() *xxhash.Digest {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n := len(r.free); n > 0 {
		d := r.free[n-1]
		r.free = r.free[:n-1]
		d.Reset()
		return d
	}
	return xxhash.New()
}

func (r *Renderer) release(d *xxhash.Digest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.free = append(r.free, d)
}

func writeUint(d *xxhash.Digest, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, _ = d.Write(buf[:])
}

func writeBool(d *xxhash.Digest, v bool) {
	if v {
		_, _ = d.Write([]byte{1})
		return
	}
	_, _ = d.Write([]byte{0})
}

func writeRect(d *xxhash.Digest, r domain.Rect) {
	writeUint(d, uint64(uint32(r.Left))<<32|uint64(uint32(r.Top)))
	writeUint(d, uint64(uint32(r.Width))<<32|uint64(uint32(r.Height)))
}
