// Package graph converts a server-supplied dependency tree into render-ready
// node and edge lists, and evaluates the search/status highlight filter.
package graph

import (
	"math"

	"github.com/npratt/depviz/internal/model"
)

// Seed layout spacing used by Build before any layout algorithm runs.
const (
	SeedColumnWidth = 250.0
	SeedRowHeight   = 150.0
)

// Position is the top-left corner of a node in logical layout units.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Position) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// NodeData is the render payload attached to a node.
type NodeData struct {
	Task          model.Task `json:"task"`
	IsRoot        bool       `json:"isRoot"`
	IsHighlighted bool       `json:"isHighlighted"`
	IsSearchMatch bool       `json:"isSearchMatch"`
	IsSelected    bool       `json:"isSelected"` // edit-mode source node
	EditMode      bool       `json:"editMode"`
}

// Node is a positioned task. Nodes are rebuilt, never mutated in place.
type Node struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

// Edge is a typed, directed edge between two rendered nodes.
type Edge struct {
	ID        string               `json:"id"`
	Source    string               `json:"source"`
	Target    string               `json:"target"`
	Type      model.DependencyType `json:"dependencyType"`
	Color     string               `json:"color"`
	ShowLabel bool                 `json:"showLabel"`
}

// Model is the output of Build.
type Model struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node returns the node with the given id.
func (m Model) Node(id string) (Node, bool) {
	for _, n := range m.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// EdgesAt returns every edge touching the node with the given id.
func (m Model) EdgesAt(id string) []Edge {
	var result []Edge
	for _, e := range m.Edges {
		if e.Source == id || e.Target == id {
			result = append(result, e)
		}
	}
	return result
}

// Bounds returns the smallest rectangle containing every node position.
// An empty model returns zero positions.
func (m Model) Bounds() (min, max Position) {
	return Bounds(m.Nodes)
}

// Bounds returns the smallest rectangle containing every node position.
func Bounds(nodes []Node) (min, max Position) {
	if len(nodes) == 0 {
		return Position{}, Position{}
	}
	min, max = nodes[0].Position, nodes[0].Position
	for _, n := range nodes[1:] {
		min.X = math.Min(min.X, n.Position.X)
		min.Y = math.Min(min.Y, n.Position.Y)
		max.X = math.Max(max.X, n.Position.X)
		max.Y = math.Max(max.Y, n.Position.Y)
	}
	return min, max
}

// Positions returns the node positions keyed by id.
func Positions(nodes []Node) map[string]Position {
	result := make(map[string]Position, len(nodes))
	for _, n := range nodes {
		result[n.ID] = n.Position
	}
	return result
}

// ReusePositions returns a copy of nodes where every node found in previous
// takes its previous position. Nodes not in previous keep their seed.
func ReusePositions(nodes []Node, previous map[string]Position) []Node {
	result := make([]Node, len(nodes))
	copy(result, nodes)
	for i := range result {
		if pos, ok := previous[result[i].ID]; ok {
			result[i].Position = pos
		}
	}
	return result
}
