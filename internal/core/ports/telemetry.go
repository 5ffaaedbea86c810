package ports

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
}

// Span represents a unit of work.
type Span interface {
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// SpanConfig holds configuration for a starting span.
type SpanConfig struct {
	// Root starts a new trace instead of nesting under the span in ctx.
	Root bool
}

// SpanOption is a functional option for configuring a span.
type SpanOption func(*SpanConfig)

// WithRoot starts the span as the root of a new trace.
func WithRoot() SpanOption {
	return func(c *SpanConfig) { c.Root = true }
}

// TaskRecorder records the lifecycle of individual render tasks.
type TaskRecorder interface {
	// Record starts a vertex for the named task.
	Record(ctx context.Context, name string) Vertex
	// Close flushes the recording.
	Close() error
}

// Vertex is one recorded task.
type Vertex interface {
	// Complete marks the vertex as finished.
	Complete(err error)
	// Cached marks the vertex as served from an existing cache surface.
	Cached()
}
