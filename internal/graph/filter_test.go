package graph

import (
	"testing"

	"github.com/npratt/depviz/internal/model"
)

func TestFilter_EmptyHighlightsEverything(t *testing.T) {
	f := NewFilter("")
	tasks := []model.Task{
		{ID: "T1", Title: "One", Status: model.StatusOpen},
		{ID: "T2", Title: "Two", Status: model.StatusCancelled},
	}

	if f.Active() {
		t.Fatal("empty filter should not be active")
	}
	for _, tk := range tasks {
		h := f.Evaluate(tk)
		if !h.Highlighted || h.SearchMatch {
			t.Errorf("%s: %+v, want highlighted without search match", tk.ID, h)
		}
	}
}

func TestFilter_Evaluate(t *testing.T) {
	login := model.Task{ID: "T-100", Title: "Implement Login", Status: model.StatusInProgress}
	db := model.Task{ID: "T-200", Title: "Database schema", Status: model.StatusBlocked}

	tests := []struct {
		name   string
		filter Filter
		task   model.Task
		want   Highlight
	}{
		{"query matches title case-insensitively", NewFilter("login"), login, Highlight{true, true}},
		{"query matches id", NewFilter("t-200"), db, Highlight{true, true}},
		{"query misses", NewFilter("login"), db, Highlight{false, false}},
		{"whitespace query is empty", NewFilter("   "), db, Highlight{true, false}},
		{"status matches", NewFilter("", model.StatusBlocked), db, Highlight{true, false}},
		{"status misses", NewFilter("", model.StatusBlocked), login, Highlight{false, false}},
		{"both must hold for highlight", NewFilter("login", model.StatusBlocked), login, Highlight{false, true}},
		{"both hold", NewFilter("schema", model.StatusBlocked), db, Highlight{true, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Evaluate(tt.task); got != tt.want {
				t.Errorf("Evaluate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFilter_ToggleStatus(t *testing.T) {
	var f Filter
	f.ToggleStatus(model.StatusOpen)
	if !f.Statuses[model.StatusOpen] || !f.Active() {
		t.Fatal("status should be added")
	}
	f.ToggleStatus(model.StatusOpen)
	if f.Active() {
		t.Error("status should be removed")
	}
}

func TestCountMatches(t *testing.T) {
	nodes := []Node{
		{ID: "A", Data: NodeData{IsHighlighted: true}},
		{ID: "B", Data: NodeData{IsSearchMatch: true}},
		{ID: "C"},
	}
	got := CountMatches(nodes)
	if got.Matched != 2 || got.Total != 3 {
		t.Errorf("CountMatches = %+v, want 2 of 3", got)
	}
}
