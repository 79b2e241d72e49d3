// Package model defines the task and dependency types shared by the graph
// engine, the REST client and the terminal UI.
package model

// Status is the lifecycle state of a task.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusBlocked    Status = "blocked"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses returns every known status in display order.
func Statuses() []Status {
	return []Status{StatusOpen, StatusInProgress, StatusBlocked, StatusCompleted, StatusCancelled}
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusBlocked, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Task is the payload carried by a graph node. The graph engine never
// mutates it.
type Task struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Status     Status   `json:"status"`
	Priority   int      `json:"priority"` // 1 = most urgent, 5 = least
	Complexity int      `json:"complexity,omitempty"`
	TaskType   string   `json:"taskType,omitempty"`
	Assignee   string   `json:"assignee,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// DedupeTasks merges task lists by id, keeping the first occurrence and the
// order in which ids were first seen.
func DedupeTasks(lists ...[]Task) []Task {
	seen := make(map[string]bool)
	var result []Task
	for _, list := range lists {
		for _, t := range list {
			if t.ID == "" || seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			result = append(result, t)
		}
	}
	return result
}
