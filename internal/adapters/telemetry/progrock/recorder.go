// Package progrock records render tasks as progrock vertices.
package progrock

import (
	"context"
	"fmt"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/uifirst/internal/core/ports"
)

var _ ports.TaskRecorder = (*Recorder)(nil)

// Recorder implements ports.TaskRecorder on a progrock tape.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder

	mu   sync.Mutex
	runs map[string]int
}

// New creates a new Recorder with a default tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:    w,
		rec:  progrock.NewRecorder(w),
		runs: make(map[string]int),
	}
}

// Record starts a vertex for one dispatch of the named task. Repeated
// dispatches of the same subtree get distinct digests.
func (r *Recorder) Record(_ context.Context, name string) ports.Vertex {
	r.mu.Lock()
	r.runs[name]++
	run := r.runs[name]
	r.mu.Unlock()

	d := digest.FromString(fmt.Sprintf("%s/%d", name, run))
	return &Vertex{vertex: r.rec.Vertex(d, name)}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
