package graph

import (
	"github.com/npratt/depviz/internal/model"
)

// BuildInput carries everything Build needs. Highlight may be nil, in which
// case every node is highlighted.
type BuildInput struct {
	Tree           *model.DependencyTree
	Types          model.TypeLookup
	SelectedID     string // edit-mode source node id, "" when none
	EditMode       bool
	Highlight      Highlighter
	ShowEdgeLabels bool
}

// direction is the side of the root a relation lives on.
type direction int

const (
	upstream   direction = -1 // tasks the parent depends on
	downstream direction = 1  // tasks depending on the parent
)

// builder holds the per-invocation traversal state.
type builder struct {
	in        BuildInput
	visited   map[string]bool
	edgeSeen  map[string]bool
	pairCount map[string]int
	rowCount  map[int]int // signed level -> nodes placed on that row
	nodes     []Node
	edges     []Edge
}

// Build converts a dependency tree into render-ready nodes and edges.
//
// The tree is walked depth first from the root. A task reachable through
// several paths becomes one node (first visit wins); every distinct
// parent/child relation still becomes an edge. Node positions are seeds only:
// the active layout algorithm overwrites them.
func Build(in BuildInput) Model {
	if in.Tree == nil || in.Tree.Element.ID == "" {
		return Model{}
	}
	if in.Highlight == nil {
		in.Highlight = func(model.Task) Highlight { return Highlight{Highlighted: true} }
	}

	b := &builder{
		in:        in,
		visited:   make(map[string]bool),
		edgeSeen:  make(map[string]bool),
		pairCount: make(map[string]int),
		rowCount:  make(map[int]int),
	}
	b.visit(in.Tree, 0, downstream, true)

	return Model{Nodes: b.nodes, Edges: b.edges}
}

// visit adds the node for entry (if unseen) and walks its relations.
func (b *builder) visit(entry *model.DependencyTree, level int, dir direction, isRoot bool) {
	task := entry.Element
	if b.visited[task.ID] {
		return
	}
	b.visited[task.ID] = true
	b.addNode(task, level, dir, isRoot)

	for i := range entry.Dependencies {
		child := &entry.Dependencies[i]
		if child.Element.ID == "" {
			continue
		}
		// task depends on child: task -> child
		b.addEdges(task.ID, child.Element.ID, child.DependencyType)
		b.visit(child, level+1, upstream, false)
	}
	for i := range entry.Dependents {
		child := &entry.Dependents[i]
		if child.Element.ID == "" {
			continue
		}
		// child depends on task: child -> task
		b.addEdges(child.Element.ID, task.ID, child.DependencyType)
		b.visit(child, level+1, downstream, false)
	}
}

func (b *builder) addNode(task model.Task, level int, dir direction, isRoot bool) {
	row := level * int(dir)
	index := b.rowCount[row]
	b.rowCount[row]++

	hl := b.in.Highlight(task)
	b.nodes = append(b.nodes, Node{
		ID: task.ID,
		Position: Position{
			X: float64(index) * SeedColumnWidth,
			Y: float64(row) * SeedRowHeight,
		},
		Data: NodeData{
			Task:          task,
			IsRoot:        isRoot,
			IsHighlighted: hl.Highlighted,
			IsSearchMatch: hl.SearchMatch,
			IsSelected:    b.in.SelectedID != "" && task.ID == b.in.SelectedID,
			EditMode:      b.in.EditMode,
		},
	})
}

// addEdges emits one edge per recorded type of the source->target pair.
func (b *builder) addEdges(source, target string, hint model.DependencyType) {
	if source == target {
		return
	}
	types := b.in.Types.Types(source, target)
	if len(types) == 0 {
		if hint.IsValid() {
			types = []model.DependencyType{hint}
		} else {
			types = []model.DependencyType{model.DepBlocks}
		}
	}

	pair := model.PairKey(source, target)
	for _, t := range types {
		key := pair + "#" + string(t)
		if b.edgeSeen[key] {
			continue
		}
		b.edgeSeen[key] = true

		id := pair
		if b.pairCount[pair] > 0 {
			id = key
		}
		b.pairCount[pair]++

		b.edges = append(b.edges, Edge{
			ID:        id,
			Source:    source,
			Target:    target,
			Type:      t,
			Color:     t.Info().Color,
			ShowLabel: b.in.ShowEdgeLabels,
		})
	}
}
