package layout

import (
	"math"

	"github.com/npratt/depviz/internal/graph"
)

// Radial places the root at the origin and every other reachable node on a
// circle of radius level*RankSpacing, where level is the undirected BFS
// distance from the root. Each ring starts at the top and is split evenly.
// Unreachable nodes keep their incoming position. Without a root, or with at
// most one node, Radial returns the Hierarchical layout.
func Radial(nodes []graph.Node, edges []graph.Edge, opts Options) []graph.Node {
	opts = opts.Normalize()

	rootIdx := -1
	for i, n := range nodes {
		if n.Data.IsRoot {
			rootIdx = i
			break
		}
	}
	if rootIdx < 0 || len(nodes) <= 1 {
		return Hierarchical(nodes, edges, opts)
	}

	result := cloneNodes(nodes)
	index := make(map[string]int, len(result))
	for i, n := range result {
		index[n.ID] = i
	}

	adjacency := make(map[int][]int, len(result))
	for _, e := range edges {
		a, okA := index[e.Source]
		b, okB := index[e.Target]
		if !okA || !okB || a == b {
			continue
		}
		adjacency[a] = append(adjacency[a], b)
		adjacency[b] = append(adjacency[b], a)
	}

	levels := bfsLevels(rootIdx, adjacency)

	result[rootIdx].Position = graph.Position{X: 0, Y: 0}
	for level := 1; level < len(levels); level++ {
		ring := levels[level]
		radius := float64(level) * opts.RankSpacing
		step := 2 * math.Pi / float64(len(ring))
		for i, idx := range ring {
			angle := -math.Pi/2 + float64(i)*step
			result[idx].Position = graph.Position{
				X: radius * math.Cos(angle),
				Y: radius * math.Sin(angle),
			}
		}
	}
	return result
}

// bfsLevels groups node indices by BFS distance from root. Level 0 holds the
// root only.
func bfsLevels(root int, adjacency map[int][]int) [][]int {
	levels := [][]int{{root}}
	visited := map[int]bool{root: true}
	current := []int{root}

	for len(current) > 0 {
		var next []int
		for _, v := range current {
			for _, w := range adjacency[v] {
				if !visited[w] {
					visited[w] = true
					next = append(next, w)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		levels = append(levels, next)
		current = next
	}
	return levels
}
