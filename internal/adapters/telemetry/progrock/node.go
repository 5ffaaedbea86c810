package progrock

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/uifirst/internal/core/ports"
)

// NodeID is the unique identifier for the task recorder Graft node.
const NodeID graft.ID = "adapter.recorder"

func init() {
	graft.Register(graft.Node[ports.TaskRecorder]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.TaskRecorder, error) {
			return New(), nil
		},
	})
}
