package ports

import (
	"context"

	"go.trai.ch/uifirst/internal/core/domain"
)

// Presenter displays frame reports as they are produced.
// It lets the same replay drive either an interactive TUI or plain text.
//
//go:generate go run go.uber.org/mock/mockgen -source=presenter.go -destination=mocks/mock_presenter.go -package=mocks
type Presenter interface {
	// Start initializes the presenter. Asynchronous presenters may launch goroutines.
	Start(ctx context.Context) error

	// OnFrame is called once per scheduled frame.
	OnFrame(report domain.FrameReport)

	// Stop flushes buffered output and stops accepting reports.
	Stop() error

	// Wait blocks until the presenter has fully terminated.
	Wait() error
}
