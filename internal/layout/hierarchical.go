package layout

import (
	"github.com/npratt/depviz/internal/graph"
	"github.com/nulab/autog"
	autoggraph "github.com/nulab/autog/graph"
)

// Node box and margins registered with the layered layout.
const (
	NodeWidth  = 200.0
	NodeHeight = 100.0
	margin     = 20.0
)

// Hierarchical delegates ranking, ordering and positioning to autog's
// layered pipeline. Every node gets the same NodeWidth x NodeHeight box and
// the returned centres are converted to top-left positions. autog lays out
// top to bottom; the other directions are axis transforms of that result.
//
// Connected components are laid out one at a time and packed side by side
// across the rank axis, in order of their first node.
func Hierarchical(nodes []graph.Node, edges []graph.Edge, opts Options) []graph.Node {
	opts = opts.Normalize()
	result := cloneNodes(nodes)
	if len(result) == 0 {
		return result
	}

	horizontal := opts.Direction == DirectionLR || opts.Direction == DirectionRL
	var offset float64
	for _, comp := range components(result, edges) {
		var centres map[string]graph.Position
		if len(comp.edges) == 0 {
			// A lone node has nothing to rank.
			centres = map[string]graph.Position{
				result[comp.nodes[0]].ID: {X: NodeWidth / 2, Y: NodeHeight / 2},
			}
		} else {
			centres = layoutComponent(comp.edges, opts)
		}

		var lo, hi graph.Position
		first := true
		for _, c := range centres {
			tl := graph.Position{X: c.X - NodeWidth/2, Y: c.Y - NodeHeight/2}
			if first {
				lo, hi = tl, tl
				first = false
				continue
			}
			lo.X, lo.Y = min(lo.X, tl.X), min(lo.Y, tl.Y)
			hi.X, hi.Y = max(hi.X, tl.X), max(hi.Y, tl.Y)
		}

		for _, i := range comp.nodes {
			c, ok := centres[result[i].ID]
			if !ok {
				continue
			}
			x := c.X - NodeWidth/2 - lo.X + margin
			y := c.Y - NodeHeight/2 - lo.Y + margin
			if horizontal {
				y += offset
			} else {
				x += offset
			}
			result[i].Position = graph.Position{X: x, Y: y}
		}

		if horizontal {
			offset += hi.Y - lo.Y + NodeHeight + opts.NodeSpacing
		} else {
			offset += hi.X - lo.X + NodeWidth + opts.NodeSpacing
		}
	}
	return result
}

// component is one weakly connected piece of the graph. nodes are indices
// into the node list in input order; edges are deduplicated id pairs in
// input order.
type component struct {
	nodes []int
	edges [][]string
}

// components splits the graph with union-find. Self loops, repeated pairs
// and edges to unknown nodes are dropped since they do not affect ranking.
func components(nodes []graph.Node, edges []graph.Edge) []component {
	index := make(map[string]int, len(nodes))
	parent := make([]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	type pair struct{ a, b int }
	seen := make(map[pair]bool)
	var kept []pair
	for _, e := range edges {
		a, okA := index[e.Source]
		b, okB := index[e.Target]
		if !okA || !okB || a == b || seen[pair{a, b}] {
			continue
		}
		seen[pair{a, b}] = true
		kept = append(kept, pair{a, b})
		if ra, rb := find(a), find(b); ra != rb {
			parent[max(ra, rb)] = min(ra, rb)
		}
	}

	// Roots are the smallest index of each component, so ordering by root
	// orders components by their first node.
	byRoot := make(map[int]int)
	var comps []component
	for i := range nodes {
		r := find(i)
		ci, ok := byRoot[r]
		if !ok {
			ci = len(comps)
			byRoot[r] = ci
			comps = append(comps, component{})
		}
		comps[ci].nodes = append(comps[ci].nodes, i)
	}
	for _, p := range kept {
		ci := byRoot[find(p.a)]
		comps[ci].edges = append(comps[ci].edges, []string{nodes[p.a].ID, nodes[p.b].ID})
	}
	return comps
}

// layoutComponent runs autog on one connected component and returns node
// centres in the requested direction.
func layoutComponent(edges [][]string, opts Options) map[string]graph.Position {
	// autog ranks along y, so horizontal directions swap the box.
	w, h := NodeWidth, NodeHeight
	if opts.Direction == DirectionLR || opts.Direction == DirectionRL {
		w, h = NodeHeight, NodeWidth
	}

	out := autog.Layout(
		autoggraph.EdgeSlice(edges),
		autog.WithNodeFixedSize(w, h),
		autog.WithNodeSpacing(opts.NodeSpacing),
		autog.WithLayerSpacing(opts.RankSpacing),
	)

	centres := make(map[string]graph.Position, len(out.Nodes))
	for _, n := range out.Nodes {
		cx, cy := n.X+n.W/2, n.Y+n.H/2
		var p graph.Position
		switch opts.Direction {
		case DirectionBT:
			p = graph.Position{X: cx, Y: -cy}
		case DirectionLR:
			p = graph.Position{X: cy, Y: cx}
		case DirectionRL:
			p = graph.Position{X: -cy, Y: cx}
		default:
			p = graph.Position{X: cx, Y: cy}
		}
		centres[n.ID] = p
	}
	return centres
}
