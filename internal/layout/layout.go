package layout

import (
	"github.com/npratt/depviz/internal/graph"
)

// Func positions nodes. Implementations return a new slice in which only the
// Position fields differ from the input; edges are read, never modified.
type Func func(nodes []graph.Node, edges []graph.Edge, opts Options) []graph.Node

// Registry maps an algorithm to its implementation.
type Registry map[Algorithm]Func

// DefaultRegistry returns the three built-in algorithms.
func DefaultRegistry() Registry {
	return Registry{
		AlgorithmHierarchical: Hierarchical,
		AlgorithmForce:        Force,
		AlgorithmRadial:       Radial,
	}
}

// Apply runs the algorithm selected by opts. Unknown algorithms fall back to
// the hierarchical layout.
func (r Registry) Apply(nodes []graph.Node, edges []graph.Edge, opts Options) []graph.Node {
	opts = opts.Normalize()
	fn, ok := r[opts.Algorithm]
	if !ok || fn == nil {
		fn = Hierarchical
	}
	return fn(nodes, edges, opts)
}

// cloneNodes returns a copy of nodes safe to reposition.
func cloneNodes(nodes []graph.Node) []graph.Node {
	result := make([]graph.Node, len(nodes))
	copy(result, nodes)
	return result
}
