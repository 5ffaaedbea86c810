package scene

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/uifirst/internal/core/ports"
)

// NodeID is the unique identifier for the script loader Graft node.
const NodeID graft.ID = "adapter.scene"

func init() {
	graft.Register(graft.Node[ports.ScriptLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ScriptLoader, error) {
			return NewLoader(), nil
		},
	})
}
