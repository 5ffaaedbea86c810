package ports

import (
	"context"

	"go.trai.ch/uifirst/internal/core/domain"
)

// StatusSource exposes the scheduler's latest frame to out-of-band readers.
//
//go:generate go run go.uber.org/mock/mockgen -source=inspector.go -destination=mocks/mock_inspector.go -package=mocks
type StatusSource interface {
	// Snapshot returns a copy of the most recent frame report.
	Snapshot() domain.FrameReport
	// NodeStatus returns the process status of one node.
	NodeStatus(id domain.NodeID) domain.ProcessStatus
}

// InspectorClient queries a running inspector.
type InspectorClient interface {
	// Status fetches the latest frame report.
	Status(ctx context.Context) (domain.FrameReport, error)
	// NodeStatus fetches the process status of one node.
	NodeStatus(ctx context.Context, id domain.NodeID) (domain.ProcessStatus, error)
	// Close releases the connection.
	Close() error
}

// Inspector serves and queries scheduler state out of process.
type Inspector interface {
	// Serve exposes source on socketPath until ctx is done.
	Serve(ctx context.Context, socketPath string, source StatusSource) error
	// Dial connects to an inspector listening on socketPath.
	Dial(socketPath string) (InspectorClient, error)
}
