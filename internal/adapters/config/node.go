package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/uifirst/internal/adapters/logger"
	"go.trai.ch/uifirst/internal/core/ports"
)

const (
	// LoaderNodeID is the unique identifier for the config loader Graft node.
	LoaderNodeID graft.ID = "adapter.config_loader"
	// WatcherNodeID is the unique identifier for the config watcher Graft node.
	WatcherNodeID graft.ID = "adapter.config_watcher"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        LoaderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[ports.ConfigWatcher]{
		ID:        WatcherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{LoaderNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigWatcher, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewWatcher(loader, log), nil
		},
	})
}
