package ports

import (
	"context"

	"go.trai.ch/uifirst/internal/core/domain"
)

// ConfigLoader defines the interface for loading scheduler configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path. A missing file yields the defaults.
	Load(path string) (domain.Config, error)
}

// ConfigWatcher reloads configuration when its file changes.
type ConfigWatcher interface {
	// Watch blocks until ctx is done, calling onChange with every
	// successfully reloaded configuration.
	Watch(ctx context.Context, path string, onChange func(domain.Config)) error
}
