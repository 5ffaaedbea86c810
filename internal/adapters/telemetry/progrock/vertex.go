package progrock

import "github.com/vito/progrock"

// Vertex implements ports.Vertex wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

// Complete marks the vertex as finished (successfully or with an error).
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}

// Cached marks the vertex as served from an existing surface.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}
