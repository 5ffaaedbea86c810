package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/uifirst/internal/core/ports"
)

// TracerNodeID is the unique identifier for the Telemetry adapter Graft node.
// It provides the tracer used outside replay runs, which build their own.
const TracerNodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Tracer, error) {
			return NewOTelTracer("uifirst"), nil
		},
	})
}
