package taskapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/npratt/depviz/internal/model"
)

func newSeededMock() *MockClient {
	m := NewMockClient()
	m.ReadyTasks = []model.Task{
		{ID: "T1", Title: "Root", Status: model.StatusOpen},
		{ID: "T2", Title: "Upstream", Status: model.StatusOpen},
	}
	m.BlockedTasks = []model.Task{
		{ID: "T3", Title: "Downstream", Status: model.StatusBlocked},
		{ID: "T1", Title: "Root", Status: model.StatusOpen},
	}
	m.Seed(
		model.Dependency{SourceID: "T1", TargetID: "T2", Type: model.DepBlocks},
		model.Dependency{SourceID: "T3", TargetID: "T1", Type: model.DepRelatesTo},
	)
	return m
}

// clients returns the mock directly and the same mock behind HTTP.
func clients(t *testing.T, m *MockClient) map[string]Client {
	t.Helper()
	srv := httptest.NewServer(NewMockHandler(m))
	t.Cleanup(srv.Close)
	return map[string]Client{
		"mock": m,
		"http": NewHTTPClient(srv.URL),
	}
}

func TestSelectable_DedupesReadyAndBlocked(t *testing.T) {
	for name, c := range clients(t, newSeededMock()) {
		t.Run(name, func(t *testing.T) {
			tasks, err := Selectable(context.Background(), c)
			if err != nil {
				t.Fatalf("Selectable: %v", err)
			}
			var ids []string
			for _, task := range tasks {
				ids = append(ids, task.ID)
			}
			if len(ids) != 3 || ids[0] != "T1" || ids[1] != "T2" || ids[2] != "T3" {
				t.Errorf("ids = %v, want [T1 T2 T3]", ids)
			}
		})
	}
}

func TestSelectable_PropagatesErrors(t *testing.T) {
	m := newSeededMock()
	m.BlockedError = errors.New("down")
	if _, err := Selectable(context.Background(), m); err == nil {
		t.Error("expected error")
	}
}

func TestMutationRoundTrip(t *testing.T) {
	for name, c := range clients(t, newSeededMock()) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := c.CreateDependency(ctx, "T2", "T3", model.DepValidates); err != nil {
				t.Fatalf("CreateDependency: %v", err)
			}
			list, err := c.Dependencies(ctx, "T2")
			if err != nil {
				t.Fatalf("Dependencies: %v", err)
			}
			if !list.Contains("T2", "T3", model.DepValidates) {
				t.Errorf("created triple missing: %+v", list)
			}

			if err := c.DeleteDependency(ctx, "T2", "T3", model.DepValidates); err != nil {
				t.Fatalf("DeleteDependency: %v", err)
			}
			list, err = c.Dependencies(ctx, "T2")
			if err != nil {
				t.Fatalf("Dependencies: %v", err)
			}
			if list.Contains("T2", "T3", model.DepValidates) {
				t.Errorf("deleted triple still present: %+v", list)
			}
		})
	}
}

func TestMockClient_MutationErrors(t *testing.T) {
	for name, c := range clients(t, newSeededMock()) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			var apiErr *APIError

			_, err := c.CreateDependency(ctx, "T1", "T2", model.DepBlocks)
			if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusConflict {
				t.Errorf("duplicate create: err = %v", err)
			}

			err = c.DeleteDependency(ctx, "T1", "T9", model.DepBlocks)
			if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
				t.Errorf("missing delete: err = %v", err)
			}
		})
	}
}

func TestMockClient_RejectCycles(t *testing.T) {
	m := newSeededMock()
	m.RejectCycles = true

	// T1 -> T2 exists; T2 -> T1 would close a cycle.
	_, err := m.CreateDependency(context.Background(), "T2", "T1", model.DepAwaits)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "dependency would create a cycle" {
		t.Errorf("err = %v", err)
	}
	if len(m.All()) != 2 {
		t.Errorf("dependency set changed: %+v", m.All())
	}
}

func TestMockClient_DerivedTree(t *testing.T) {
	m := newSeededMock()
	m.Seed(model.Dependency{SourceID: "T2", TargetID: "T4", Type: model.DepAwaits})
	// Cycle back to the root must not recurse forever.
	m.Seed(model.Dependency{SourceID: "T4", TargetID: "T1", Type: model.DepReferences})

	for name, c := range clients(t, m) {
		t.Run(name, func(t *testing.T) {
			tree, err := c.Tree(context.Background(), "T1")
			if err != nil {
				t.Fatalf("Tree: %v", err)
			}
			if tree.Element.ID != "T1" {
				t.Fatalf("root = %q", tree.Element.ID)
			}
			if len(tree.Dependencies) != 1 || tree.Dependencies[0].Element.ID != "T2" {
				t.Fatalf("dependencies = %+v", tree.Dependencies)
			}
			t2 := tree.Dependencies[0]
			if t2.DependencyType != model.DepBlocks {
				t.Errorf("T2 hint = %q", t2.DependencyType)
			}
			if len(t2.Dependencies) != 1 || t2.Dependencies[0].Element.ID != "T4" {
				t.Errorf("T2 dependencies = %+v", t2.Dependencies)
			}
			if len(t2.Dependencies[0].Dependencies) != 0 {
				t.Errorf("cycle back to root was expanded: %+v", t2.Dependencies[0].Dependencies)
			}
			// T3 relates to T1, T4 references T1.
			if len(tree.Dependents) != 2 {
				t.Errorf("dependents = %+v", tree.Dependents)
			}
		})
	}
}

func TestMockClient_TreeOverridesAndErrors(t *testing.T) {
	m := newSeededMock()
	canned := &model.DependencyTree{Element: model.Task{ID: "T1", Title: "Canned"}}
	m.TreeResponses["T1"] = canned
	m.TreeErrors["T2"] = errors.New("exploded")

	tree, err := m.Tree(context.Background(), "T1")
	if err != nil || tree != canned {
		t.Errorf("Tree(T1) = %+v, %v", tree, err)
	}
	if _, err := m.Tree(context.Background(), "T2"); err == nil {
		t.Error("expected configured error")
	}
	var apiErr *APIError
	if _, err := m.Tree(context.Background(), "nope"); !errors.As(err, &apiErr) || apiErr.StatusCode != 404 {
		t.Errorf("unknown task err = %v", err)
	}
	if calls := m.GetTreeCalls(); len(calls) != 3 {
		t.Errorf("tree calls = %v", calls)
	}
}

func TestMockClient_RecordsCalls(t *testing.T) {
	m := newSeededMock()
	m.CreateError = errors.New("nope")
	ctx := context.Background()

	_, _ = m.CreateDependency(ctx, "A", "B", model.DepBlocks)
	_ = m.DeleteDependency(ctx, "T1", "T2", model.DepBlocks)

	if got := m.GetCreateCalls(); len(got) != 1 || got[0] != (DependencyCall{"A", "B", model.DepBlocks}) {
		t.Errorf("create calls = %+v", got)
	}
	if got := m.GetDeleteCalls(); len(got) != 1 || got[0] != (DependencyCall{"T1", "T2", model.DepBlocks}) {
		t.Errorf("delete calls = %+v", got)
	}
	if len(m.All()) != 1 {
		t.Errorf("delete did not remove the dependency: %+v", m.All())
	}
}
