package taskapi

import (
	"context"
	"net/http"
	"slices"
	"sync"

	"github.com/npratt/depviz/internal/model"
)

// DependencyCall records a CreateDependency or DeleteDependency call.
type DependencyCall struct {
	SourceID string
	TargetID string
	Type     model.DependencyType
}

// MockClient is an in-memory implementation of Client for testing.
// It records all calls and keeps a dependency set that mutations update, so
// a create followed by a read reflects the change.
type MockClient struct {
	mu sync.Mutex

	// Data
	ReadyTasks   []model.Task
	BlockedTasks []model.Task
	// Tasks backs derived trees. Tasks from ReadyTasks and BlockedTasks are
	// looked up too.
	Tasks map[string]model.Task
	// TreeResponses, when set for an id, is returned as-is instead of a
	// tree derived from the dependency set.
	TreeResponses map[string]*model.DependencyTree
	// MaxDepth bounds derived trees. Zero means 3.
	MaxDepth int
	// RejectCycles makes CreateDependency fail like a server that refuses
	// edges closing a cycle.
	RejectCycles bool

	// Configured errors
	ReadyError        error
	BlockedError      error
	TreeErrors        map[string]error
	DependenciesError error
	CreateError       error
	DeleteError       error

	// Call tracking
	ReadyCalls        int
	BlockedCalls      int
	TreeCalls         []string
	DependenciesCalls []string
	CreateCalls       []DependencyCall
	DeleteCalls       []DependencyCall

	deps []model.Dependency
}

// NewMockClient creates a new MockClient with initialized maps.
func NewMockClient() *MockClient {
	return &MockClient{
		Tasks:         make(map[string]model.Task),
		TreeResponses: make(map[string]*model.DependencyTree),
		TreeErrors:    make(map[string]error),
	}
}

// AddTask registers tasks for derived trees.
func (m *MockClient) AddTask(tasks ...model.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range tasks {
		m.Tasks[t.ID] = t
	}
}

// Seed adds dependencies without recording calls.
func (m *MockClient) Seed(deps ...model.Dependency) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range deps {
		if m.indexLocked(d.SourceID, d.TargetID, d.Type) < 0 {
			m.deps = append(m.deps, d)
		}
	}
}

// All returns a copy of the stored dependency set.
func (m *MockClient) All() []model.Dependency {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.deps)
}

func (m *MockClient) Ready(ctx context.Context) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadyCalls++
	if m.ReadyError != nil {
		return nil, m.ReadyError
	}
	return slices.Clone(m.ReadyTasks), nil
}

func (m *MockClient) Blocked(ctx context.Context) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BlockedCalls++
	if m.BlockedError != nil {
		return nil, m.BlockedError
	}
	return slices.Clone(m.BlockedTasks), nil
}

func (m *MockClient) Tree(ctx context.Context, taskID string) (*model.DependencyTree, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TreeCalls = append(m.TreeCalls, taskID)
	if err := m.TreeErrors[taskID]; err != nil {
		return nil, err
	}
	if tree, ok := m.TreeResponses[taskID]; ok {
		return tree, nil
	}
	task, ok := m.taskLocked(taskID)
	if !ok {
		return nil, &APIError{StatusCode: http.StatusNotFound, Message: "task not found: " + taskID}
	}
	depth := m.MaxDepth
	if depth <= 0 {
		depth = 3
	}
	tree := model.DependencyTree{Element: task}
	path := map[string]bool{taskID: true}
	tree.Dependencies = m.subtreesLocked(taskID, true, depth, path)
	tree.Dependents = m.subtreesLocked(taskID, false, depth, path)
	return &tree, nil
}

// subtreesLocked walks one direction only. path holds the ids on the current
// branch so cycles stop instead of recursing forever.
func (m *MockClient) subtreesLocked(id string, upstream bool, depth int, path map[string]bool) []model.DependencyTree {
	if depth == 0 {
		return nil
	}
	var out []model.DependencyTree
	for _, d := range m.deps {
		var next string
		switch {
		case upstream && d.SourceID == id:
			next = d.TargetID
		case !upstream && d.TargetID == id:
			next = d.SourceID
		default:
			continue
		}
		if path[next] {
			continue
		}
		task, ok := m.taskLocked(next)
		if !ok {
			task = model.Task{ID: next, Title: next, Status: model.StatusOpen}
		}
		path[next] = true
		child := model.DependencyTree{Element: task, DependencyType: d.Type}
		if upstream {
			child.Dependencies = m.subtreesLocked(next, true, depth-1, path)
		} else {
			child.Dependents = m.subtreesLocked(next, false, depth-1, path)
		}
		delete(path, next)
		out = append(out, child)
	}
	return out
}

func (m *MockClient) taskLocked(id string) (model.Task, bool) {
	if t, ok := m.Tasks[id]; ok {
		return t, true
	}
	for _, list := range [][]model.Task{m.ReadyTasks, m.BlockedTasks} {
		for _, t := range list {
			if t.ID == id {
				return t, true
			}
		}
	}
	return model.Task{}, false
}

func (m *MockClient) Dependencies(ctx context.Context, taskID string) (*model.DependencyList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DependenciesCalls = append(m.DependenciesCalls, taskID)
	if m.DependenciesError != nil {
		return nil, m.DependenciesError
	}
	list := &model.DependencyList{
		Dependencies: []model.Dependency{},
		Dependents:   []model.Dependency{},
	}
	for _, d := range m.deps {
		if d.SourceID == taskID {
			list.Dependencies = append(list.Dependencies, d)
		}
		if d.TargetID == taskID {
			list.Dependents = append(list.Dependents, d)
		}
	}
	return list, nil
}

func (m *MockClient) CreateDependency(ctx context.Context, sourceID, targetID string, depType model.DependencyType) (*model.Dependency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, DependencyCall{sourceID, targetID, depType})
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	if err := model.ValidateTriple(sourceID, targetID, depType); err != nil {
		return nil, &APIError{StatusCode: http.StatusBadRequest, Message: err.Error()}
	}
	if m.indexLocked(sourceID, targetID, depType) >= 0 {
		return nil, &APIError{StatusCode: http.StatusConflict, Message: "dependency already exists"}
	}
	if m.RejectCycles && m.reachesLocked(targetID, sourceID) {
		return nil, &APIError{StatusCode: http.StatusConflict, Message: "dependency would create a cycle"}
	}
	dep := model.Dependency{SourceID: sourceID, TargetID: targetID, Type: depType}
	m.deps = append(m.deps, dep)
	return &dep, nil
}

// reachesLocked reports whether to is reachable from from along stored edges.
func (m *MockClient) reachesLocked(from, to string) bool {
	seen := map[string]bool{from: true}
	queue := []string{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			return true
		}
		for _, d := range m.deps {
			if d.SourceID == cur && !seen[d.TargetID] {
				seen[d.TargetID] = true
				queue = append(queue, d.TargetID)
			}
		}
	}
	return false
}

func (m *MockClient) DeleteDependency(ctx context.Context, sourceID, targetID string, depType model.DependencyType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, DependencyCall{sourceID, targetID, depType})
	if m.DeleteError != nil {
		return m.DeleteError
	}
	i := m.indexLocked(sourceID, targetID, depType)
	if i < 0 {
		return &APIError{StatusCode: http.StatusNotFound, Message: "dependency not found"}
	}
	m.deps = slices.Delete(m.deps, i, i+1)
	return nil
}

func (m *MockClient) indexLocked(sourceID, targetID string, depType model.DependencyType) int {
	return slices.IndexFunc(m.deps, func(d model.Dependency) bool {
		return d.SourceID == sourceID && d.TargetID == targetID && d.Type == depType
	})
}

// GetCreateCalls returns a copy of recorded create calls.
func (m *MockClient) GetCreateCalls() []DependencyCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.CreateCalls)
}

// GetDeleteCalls returns a copy of recorded delete calls.
func (m *MockClient) GetDeleteCalls() []DependencyCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.DeleteCalls)
}

// GetTreeCalls returns a copy of recorded tree fetches.
func (m *MockClient) GetTreeCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.TreeCalls)
}

// Compile-time interface check.
var _ Client = (*MockClient)(nil)
var _ Client = (*HTTPClient)(nil)
