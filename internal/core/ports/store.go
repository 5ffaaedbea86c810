package ports

import "go.trai.ch/uifirst/internal/core/domain"

// ReportStore defines the interface for storing and retrieving replay results.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ReportStore interface {
	// Get retrieves the run stored under digest.
	// Returns nil, nil if not found.
	Get(digest string) (*domain.Run, error)

	// Put stores the run under its digest.
	Put(run domain.Run) error
}
