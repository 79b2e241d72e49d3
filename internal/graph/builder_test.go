package graph

import (
	"testing"

	"github.com/npratt/depviz/internal/model"
)

func task(id string) model.Task {
	return model.Task{ID: id, Title: "Task " + id, Status: model.StatusOpen, Priority: 3}
}

func leaf(id string) model.DependencyTree {
	return model.DependencyTree{Element: task(id)}
}

func findEdge(edges []Edge, source, target string) (Edge, bool) {
	for _, e := range edges {
		if e.Source == source && e.Target == target {
			return e, true
		}
	}
	return Edge{}, false
}

func TestBuild_EndToEndScenario(t *testing.T) {
	tree := &model.DependencyTree{
		Element:      task("T1"),
		Dependencies: []model.DependencyTree{leaf("T2")},
		Dependents:   []model.DependencyTree{leaf("T3")},
	}
	types := model.TypeLookup{
		"T1->T2": {model.DepBlocks},
		"T3->T1": {model.DepRelatesTo},
	}

	m := Build(BuildInput{Tree: tree, Types: types})

	if len(m.Nodes) != 3 {
		t.Fatalf("len(Nodes) = %d, want 3", len(m.Nodes))
	}
	if len(m.Edges) != 2 {
		t.Fatalf("len(Edges) = %d, want 2", len(m.Edges))
	}

	root, ok := m.Node("T1")
	if !ok || !root.Data.IsRoot {
		t.Errorf("T1 should be the root node: %+v", root)
	}
	for _, id := range []string{"T2", "T3"} {
		n, ok := m.Node(id)
		if !ok {
			t.Errorf("missing node %s", id)
			continue
		}
		if n.Data.IsRoot {
			t.Errorf("%s should not be root", id)
		}
	}

	up, ok := findEdge(m.Edges, "T1", "T2")
	if !ok {
		t.Fatal("missing edge T1->T2")
	}
	if up.Type != model.DepBlocks || up.ID != "T1->T2" {
		t.Errorf("upstream edge = %+v, want id T1->T2 type blocks", up)
	}
	if up.Color != model.DepBlocks.Info().Color {
		t.Errorf("upstream edge colour = %q", up.Color)
	}

	down, ok := findEdge(m.Edges, "T3", "T1")
	if !ok {
		t.Fatal("missing edge T3->T1")
	}
	if down.Type != model.DepRelatesTo {
		t.Errorf("downstream edge type = %q, want relates-to", down.Type)
	}
}

func TestBuild_UpstreamEdgeOrientation(t *testing.T) {
	tree := &model.DependencyTree{
		Element:      task("R"),
		Dependencies: []model.DependencyTree{leaf("D")},
	}

	m := Build(BuildInput{Tree: tree})

	if len(m.Edges) != 1 {
		t.Fatalf("len(Edges) = %d, want 1", len(m.Edges))
	}
	e := m.Edges[0]
	if e.Source != "R" || e.Target != "D" {
		t.Errorf("edge = %s -> %s, want R -> D", e.Source, e.Target)
	}
	if e.Type != model.DepBlocks {
		t.Errorf("untyped relation should default to blocks, got %q", e.Type)
	}
}

func TestBuild_DiamondDedupesNodesButKeepsEdges(t *testing.T) {
	tree := &model.DependencyTree{
		Element: task("R"),
		Dependencies: []model.DependencyTree{
			{Element: task("A"), Dependencies: []model.DependencyTree{leaf("X")}},
			{Element: task("B"), Dependencies: []model.DependencyTree{leaf("X")}},
		},
	}

	m := Build(BuildInput{Tree: tree})

	count := 0
	for _, n := range m.Nodes {
		if n.ID == "X" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("X appears %d times, want 1", count)
	}
	if len(m.Nodes) != 4 {
		t.Errorf("len(Nodes) = %d, want 4", len(m.Nodes))
	}
	if _, ok := findEdge(m.Edges, "A", "X"); !ok {
		t.Error("missing edge A->X")
	}
	if _, ok := findEdge(m.Edges, "B", "X"); !ok {
		t.Error("missing edge B->X")
	}
	if len(m.Edges) != 4 {
		t.Errorf("len(Edges) = %d, want 4", len(m.Edges))
	}
}

func TestBuild_CycleBackToRootTerminates(t *testing.T) {
	tree := &model.DependencyTree{
		Element: task("R"),
		Dependencies: []model.DependencyTree{
			{Element: task("A"), Dependencies: []model.DependencyTree{
				{Element: task("R"), Dependencies: []model.DependencyTree{leaf("A")}},
			}},
		},
	}

	m := Build(BuildInput{Tree: tree})

	if len(m.Nodes) != 2 {
		t.Errorf("len(Nodes) = %d, want 2", len(m.Nodes))
	}
	if _, ok := findEdge(m.Edges, "A", "R"); !ok {
		t.Error("back reference A->R should still be an edge")
	}
}

func TestBuild_TypeResolution(t *testing.T) {
	tree := &model.DependencyTree{
		Element: task("R"),
		Dependencies: []model.DependencyTree{
			{Element: task("A"), DependencyType: model.DepAwaits},
			{Element: task("B"), DependencyType: model.DepAwaits},
			leaf("C"),
		},
	}
	types := model.TypeLookup{"R->B": {model.DepValidates}}

	m := Build(BuildInput{Tree: tree, Types: types})

	want := map[string]model.DependencyType{
		"A": model.DepAwaits,    // tree hint
		"B": model.DepValidates, // lookup wins over hint
		"C": model.DepBlocks,    // default
	}
	for target, wantType := range want {
		e, ok := findEdge(m.Edges, "R", target)
		if !ok {
			t.Errorf("missing edge R->%s", target)
			continue
		}
		if e.Type != wantType {
			t.Errorf("R->%s type = %q, want %q", target, e.Type, wantType)
		}
	}
}

func TestBuild_MultipleTypesPerPairRenderParallelEdges(t *testing.T) {
	tree := &model.DependencyTree{
		Element:      task("R"),
		Dependencies: []model.DependencyTree{leaf("D")},
	}
	types := model.TypeLookup{"R->D": {model.DepBlocks, model.DepReferences}}

	m := Build(BuildInput{Tree: tree, Types: types})

	if len(m.Edges) != 2 {
		t.Fatalf("len(Edges) = %d, want 2", len(m.Edges))
	}
	if m.Edges[0].ID != "R->D" {
		t.Errorf("first edge id = %q, want R->D", m.Edges[0].ID)
	}
	if m.Edges[1].ID != "R->D#references" {
		t.Errorf("second edge id = %q, want R->D#references", m.Edges[1].ID)
	}
}

func TestBuild_SeedPositions(t *testing.T) {
	tree := &model.DependencyTree{
		Element:      task("R"),
		Dependencies: []model.DependencyTree{leaf("U1"), leaf("U2")},
		Dependents:   []model.DependencyTree{leaf("D1")},
	}

	m := Build(BuildInput{Tree: tree})
	pos := Positions(m.Nodes)

	if pos["R"] != (Position{X: 0, Y: 0}) {
		t.Errorf("root seed = %+v, want origin", pos["R"])
	}
	if pos["U1"] != (Position{X: 0, Y: -SeedRowHeight}) {
		t.Errorf("U1 seed = %+v", pos["U1"])
	}
	if pos["U2"] != (Position{X: SeedColumnWidth, Y: -SeedRowHeight}) {
		t.Errorf("U2 seed = %+v", pos["U2"])
	}
	if pos["D1"] != (Position{X: 0, Y: SeedRowHeight}) {
		t.Errorf("D1 seed = %+v", pos["D1"])
	}
}

func TestBuild_EditModeAndSelectionFlags(t *testing.T) {
	tree := &model.DependencyTree{
		Element:      task("R"),
		Dependencies: []model.DependencyTree{leaf("A")},
	}

	m := Build(BuildInput{Tree: tree, SelectedID: "A", EditMode: true, ShowEdgeLabels: true})

	for _, n := range m.Nodes {
		if !n.Data.EditMode {
			t.Errorf("%s: EditMode should echo the global flag", n.ID)
		}
		if n.Data.IsSelected != (n.ID == "A") {
			t.Errorf("%s: IsSelected = %v", n.ID, n.Data.IsSelected)
		}
	}
	if !m.Edges[0].ShowLabel {
		t.Error("ShowLabel should follow the input flag")
	}
}

func TestBuild_AppliesHighlighter(t *testing.T) {
	tree := &model.DependencyTree{
		Element:      model.Task{ID: "R", Title: "Auth service", Status: model.StatusOpen},
		Dependencies: []model.DependencyTree{{Element: model.Task{ID: "A", Title: "Database", Status: model.StatusBlocked}}},
	}

	m := Build(BuildInput{Tree: tree, Highlight: NewFilter("auth").Highlighter()})

	r, _ := m.Node("R")
	a, _ := m.Node("A")
	if !r.Data.IsHighlighted || !r.Data.IsSearchMatch {
		t.Errorf("R flags = %+v, want highlighted search match", r.Data)
	}
	if a.Data.IsHighlighted || a.Data.IsSearchMatch {
		t.Errorf("A flags = %+v, want dimmed", a.Data)
	}
}

func TestBuild_NilTree(t *testing.T) {
	m := Build(BuildInput{})
	if len(m.Nodes) != 0 || len(m.Edges) != 0 {
		t.Errorf("expected empty model, got %+v", m)
	}
}

func TestReusePositions(t *testing.T) {
	nodes := []Node{
		{ID: "A", Position: Position{X: 1, Y: 1}},
		{ID: "B", Position: Position{X: 2, Y: 2}},
	}
	prev := map[string]Position{"A": {X: 100, Y: 200}}

	got := ReusePositions(nodes, prev)

	if got[0].Position != (Position{X: 100, Y: 200}) {
		t.Errorf("A = %+v, want previous position", got[0].Position)
	}
	if got[1].Position != (Position{X: 2, Y: 2}) {
		t.Errorf("B = %+v, want seed position", got[1].Position)
	}
	if nodes[0].Position != (Position{X: 1, Y: 1}) {
		t.Error("input nodes must not be mutated")
	}
}

func TestModel_Bounds(t *testing.T) {
	m := Model{Nodes: []Node{
		{ID: "A", Position: Position{X: -10, Y: 5}},
		{ID: "B", Position: Position{X: 30, Y: -20}},
	}}
	min, max := m.Bounds()
	if min != (Position{X: -10, Y: -20}) || max != (Position{X: 30, Y: 5}) {
		t.Errorf("Bounds = %+v %+v", min, max)
	}
}
