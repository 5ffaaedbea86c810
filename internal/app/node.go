package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/uifirst/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/uifirst/internal/adapters/inspect"            //nolint:depguard // Wired in app layer
	"go.trai.ch/uifirst/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/uifirst/internal/adapters/scene"              //nolint:depguard // Wired in app layer
	"go.trai.ch/uifirst/internal/adapters/store"              //nolint:depguard // Wired in app layer
	"go.trai.ch/uifirst/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/uifirst/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.LoaderNodeID,
			config.WatcherNodeID,
			scene.NodeID,
			store.NodeID,
			inspect.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	watcher, err := graft.Dep[ports.ConfigWatcher](ctx)
	if err != nil {
		return nil, err
	}

	scripts, err := graft.Dep[ports.ScriptLoader](ctx)
	if err != nil {
		return nil, err
	}

	reports, err := graft.Dep[ports.ReportStore](ctx)
	if err != nil {
		return nil, err
	}

	inspector, err := graft.Dep[ports.Inspector](ctx)
	if err != nil {
		return nil, err
	}

	recorder, err := graft.Dep[ports.TaskRecorder](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, watcher, scripts, reports, inspector, recorder, log), nil
}
