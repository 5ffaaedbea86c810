package ports

import (
	"context"

	"go.trai.ch/uifirst/internal/core/domain"
)

// WorkerPool runs render tasks off the frame thread.
//
//go:generate go run go.uber.org/mock/mockgen -source=worker.go -destination=mocks/mock_worker.go -package=mocks
type WorkerPool interface {
	// Submit hands a task to a worker without blocking. It returns
	// domain.ErrPoolSaturated when every slot is busy.
	Submit(ctx context.Context, task domain.RenderTask) error

	// Completions delivers one result per accepted task.
	Completions() <-chan domain.Completion

	// Capacity is the number of tasks that may run at once.
	Capacity() int

	// ReleaseIdle drops resources held by idle workers.
	ReleaseIdle()

	// Close stops accepting work and waits for running tasks.
	Close() error
}
