package inspect

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/uifirst/internal/core/ports"
)

var _ ports.Inspector = (*Connector)(nil)

// DefaultSocketPath returns the socket used when none is configured.
func DefaultSocketPath() string {
	return filepath.Join(os.TempDir(), "uifirst", "inspect.sock")
}

// Connector implements ports.Inspector.
type Connector struct {
	tracer ports.Tracer
}

// NewConnector creates a connector whose servers trace with tracer.
func NewConnector(tracer ports.Tracer) *Connector {
	return &Connector{tracer: tracer}
}

// Serve exposes source on socketPath until ctx is done.
func (c *Connector) Serve(ctx context.Context, socketPath string, source ports.StatusSource) error {
	return NewServer(source, c.tracer).Serve(ctx, socketPath)
}

// Dial connects to the inspector on socketPath.
func (c *Connector) Dial(socketPath string) (ports.InspectorClient, error) {
	return Dial(socketPath)
}
