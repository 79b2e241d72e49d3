// Package testutil holds fixtures shared by tests across packages.
package testutil

import (
	"strconv"

	"github.com/npratt/depviz/internal/model"
	"github.com/npratt/depviz/internal/taskapi"
)

// Task ids in the seeded graph.
const (
	RootID       = "T1"
	UpstreamID   = "T2"
	DownstreamID = "T3"
)

// SeededTasks returns the three tasks of the seeded graph: two ready and
// one blocked.
func SeededTasks() (ready, blocked []model.Task) {
	ready = []model.Task{
		{ID: RootID, Title: "Root task", Status: model.StatusOpen, Priority: 1},
		{ID: UpstreamID, Title: "Upstream work", Status: model.StatusOpen, Priority: 2},
	}
	blocked = []model.Task{
		{ID: DownstreamID, Title: "Downstream fix", Status: model.StatusBlocked, Priority: 3},
	}
	return ready, blocked
}

// SeededDependencies returns the edges of the seeded graph:
// T1 depends on T2 (blocks) and T3 depends on T1 (relates-to).
func SeededDependencies() []model.Dependency {
	return []model.Dependency{
		{SourceID: RootID, TargetID: UpstreamID, Type: model.DepBlocks},
		{SourceID: DownstreamID, TargetID: RootID, Type: model.DepRelatesTo},
	}
}

// SeededClient returns a mock client serving the seeded graph.
func SeededClient() *taskapi.MockClient {
	client := taskapi.NewMockClient()
	client.ReadyTasks, client.BlockedTasks = SeededTasks()
	client.Seed(SeededDependencies()...)
	return client
}

// ChainClient returns a mock client whose tasks form a blocks chain
// C1 -> C2 -> ... -> Cn, all open.
func ChainClient(n int) *taskapi.MockClient {
	client := taskapi.NewMockClient()
	for i := 1; i <= n; i++ {
		client.AddTask(model.Task{ID: chainID(i), Title: "Chain step " + chainID(i), Status: model.StatusOpen})
		if i > 1 {
			client.Seed(model.Dependency{SourceID: chainID(i - 1), TargetID: chainID(i), Type: model.DepBlocks})
		}
	}
	return client
}

func chainID(i int) string {
	return "C" + strconv.Itoa(i)
}
