// Package taskapi talks to the task service's REST API: task lists for the
// root selector, dependency trees, and dependency mutations.
// It abstracts the transport so the UI and CLI can be tested with MockClient.
package taskapi

import (
	"context"

	"github.com/npratt/depviz/internal/model"
)

// TaskReader lists tasks that can be picked as a graph root.
type TaskReader interface {
	// Ready returns tasks with no open blockers.
	Ready(ctx context.Context) ([]model.Task, error)

	// Blocked returns tasks waiting on other tasks.
	Blocked(ctx context.Context) ([]model.Task, error)
}

// DependencyReader fetches the dependency structure around one task.
type DependencyReader interface {
	// Tree returns the dependency tree rooted at taskID.
	Tree(ctx context.Context, taskID string) (*model.DependencyTree, error)

	// Dependencies returns the typed edges touching taskID.
	Dependencies(ctx context.Context, taskID string) (*model.DependencyList, error)
}

// DependencyWriter creates and removes typed dependencies.
type DependencyWriter interface {
	CreateDependency(ctx context.Context, sourceID, targetID string, depType model.DependencyType) (*model.Dependency, error)
	DeleteDependency(ctx context.Context, sourceID, targetID string, depType model.DependencyType) error
}

// Client combines all task service operations.
type Client interface {
	TaskReader
	DependencyReader
	DependencyWriter
}

// Selectable returns ready and blocked tasks merged and deduplicated by id,
// ready tasks first.
func Selectable(ctx context.Context, r TaskReader) ([]model.Task, error) {
	ready, err := r.Ready(ctx)
	if err != nil {
		return nil, err
	}
	blocked, err := r.Blocked(ctx)
	if err != nil {
		return nil, err
	}
	return model.DedupeTasks(ready, blocked), nil
}
