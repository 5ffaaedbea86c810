package inspect

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/uifirst/internal/adapters/telemetry"
	"go.trai.ch/uifirst/internal/core/ports"
)

// NodeID is the unique identifier for the inspector Graft node.
const NodeID graft.ID = "adapter.inspect"

func init() {
	graft.Register(graft.Node[ports.Inspector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{telemetry.TracerNodeID},
		Run: func(ctx context.Context) (ports.Inspector, error) {
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return NewConnector(tracer), nil
		},
	})
}
