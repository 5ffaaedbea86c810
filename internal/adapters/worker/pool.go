// Package worker runs subtree render tasks on a bounded set of goroutines.
package worker

import (
	"context"
	"sync"

	"go.trai.ch/uifirst/internal/core/domain"
	"go.trai.ch/uifirst/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.WorkerPool = (*Pool)(nil)

// idleReleaser is implemented by renderers that keep scratch memory between
// tasks.
type idleReleaser interface {
	ReleaseIdle()
}

// Pool implements ports.WorkerPool on an errgroup. The slots channel bounds
// it to size tasks. Submit never blocks: a full pool rejects the task.
type Pool struct {
	renderer ports.SubtreeRenderer

	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	// slots holds the indices of idle workers. A slot is back before the
	// completion of its task is delivered.
	slots       chan int
	completions chan domain.Completion

	mu     sync.Mutex
	closed bool
}

// NewPool starts a pool of size workers drawing with renderer.
func NewPool(renderer ports.SubtreeRenderer, size int) *Pool {
	size = max(size, 1)
	ctx, cancel := context.WithCancel(context.Background())

	g := &errgroup.Group{}

	slots := make(chan int, size)
	for i := range size {
		slots <- i
	}

	return &Pool{
		renderer:    renderer,
		ctx:         ctx,
		cancel:      cancel,
		group:       g,
		slots:       slots,
		completions: make(chan domain.Completion, 4*size),
	}
}

// Submit hands task to an idle worker.
func (p *Pool) Submit(ctx context.Context, task domain.RenderTask) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return zerr.With(domain.ErrPoolClosed, "node", uint64(task.NodeID))
	}

	var worker int
	select {
	case worker = <-p.slots:
	default:
		return domain.ErrPoolSaturated
	}

	// Tasks stop with the pool, not with the frame that submitted them.
	taskCtx, stop := context.WithCancel(context.WithoutCancel(ctx))
	unregister := context.AfterFunc(p.ctx, stop)
	p.group.Go(func() error {
		c := p.run(taskCtx, worker, task)
		unregister()
		stop()
		p.slots <- worker

		if p.ctx.Err() != nil {
			return nil
		}
		select {
		case p.completions <- c:
		case <-p.ctx.Done():
		}
		return nil
	})
	return nil
}

func (p *Pool) run(ctx context.Context, worker int, task domain.RenderTask) domain.Completion {
	c := domain.Completion{
		NodeID:     task.NodeID,
		Generation: task.Generation,
		Worker:     worker,
	}

	surface, err := p.renderer.Render(ctx, &task)
	switch {
	case err != nil:
		c.Err = err
	case task.PreviousHash != 0 && surface.ContentHash == task.PreviousHash:
		c.Status = domain.StatusSkipped
	default:
		c.Status = domain.StatusDone
		c.Surface = surface
	}
	return c
}

// Completions delivers one result per accepted task. It is closed by Close.
func (p *Pool) Completions() <-chan domain.Completion {
	return p.completions
}

// Capacity returns the number of workers.
func (p *Pool) Capacity() int {
	return cap(p.slots)
}

// ReleaseIdle lets the renderer drop its scratch memory.
func (p *Pool) ReleaseIdle() {
	if r, ok := p.renderer.(idleReleaser); ok {
		r.ReleaseIdle()
	}
}

// Close rejects further work, cancels running tasks and waits for them.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	p.cancel()
	err := p.group.Wait()
	close(p.completions)
	return err
}
