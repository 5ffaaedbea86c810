package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

// ValidateTree checks that the children and sub-surfaces of every node
// exist, that every child names its parent, and that the tree has no cycles.
func ValidateTree(nodes []SurfaceNode) error {
	index := make(map[NodeID]*SurfaceNode, len(nodes))
	for i := range nodes {
		index[nodes[i].ID] = &nodes[i]
	}

	visited := make(map[NodeID]int, len(nodes)) // 0: unvisited, 1: visiting, 2: visited
	var path []NodeID

	var visit func(n *SurfaceNode) error
	visit = func(n *SurfaceNode) error {
		visited[n.ID] = 1
		path = append(path, n.ID)

		for _, id := range n.SubSurfaces {
			if _, ok := index[id]; !ok {
				return zerr.With(zerr.With(ErrMissingNode, "node", uint64(n.ID)), "sub_surface", uint64(id))
			}
		}

		for _, id := range n.Children {
			child, ok := index[id]
			if !ok {
				return zerr.With(zerr.With(ErrMissingNode, "node", uint64(n.ID)), "child", uint64(id))
			}
			if child.ParentID != n.ID {
				return zerr.With(zerr.With(ErrParentMismatch, "node", uint64(id)), "parent", uint64(child.ParentID))
			}
			switch visited[id] {
			case 1:
				return cycleError(path, id)
			case 0:
				if err := visit(child); err != nil {
					return err
				}
			}
		}

		visited[n.ID] = 2
		path = path[:len(path)-1]
		return nil
	}

	for i := range nodes {
		if visited[nodes[i].ID] == 0 {
			if err := visit(&nodes[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func cycleError(path []NodeID, back NodeID) error {
	start := 0
	for i, id := range path {
		if id == back {
			start = i
			break
		}
	}
	parts := make([]string, 0, len(path)-start+1)
	for _, id := range path[start:] {
		parts = append(parts, fmt.Sprint(uint64(id)))
	}
	parts = append(parts, fmt.Sprint(uint64(back)))
	return zerr.With(ErrCycleDetected, "cycle", strings.Join(parts, " -> "))
}
