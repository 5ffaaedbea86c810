package ports

import (
	"context"

	"go.trai.ch/uifirst/internal/core/domain"
)

// SubtreeRenderer draws a window subtree into an off-screen cache surface.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type SubtreeRenderer interface {
	// Render draws the task's subtree. It returns the previous surface's hash
	// unchanged when no pixel differs, which the caller reports as a skip.
	Render(ctx context.Context, task *domain.RenderTask) (*domain.Surface, error)
}
