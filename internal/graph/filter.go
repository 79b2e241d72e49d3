package graph

import (
	"strings"

	"github.com/npratt/depviz/internal/model"
)

// Highlight is the filter verdict for one task.
type Highlight struct {
	Highlighted bool
	SearchMatch bool
}

// Highlighter evaluates a task against the current filter.
type Highlighter func(model.Task) Highlight

// Filter combines a free-text query with a status set. Non-matching nodes are
// dimmed, never removed.
type Filter struct {
	Query    string
	Statuses map[model.Status]bool
}

// NewFilter returns a filter for the given query and statuses.
func NewFilter(query string, statuses ...model.Status) Filter {
	f := Filter{Query: query}
	if len(statuses) > 0 {
		f.Statuses = make(map[model.Status]bool, len(statuses))
		for _, s := range statuses {
			f.Statuses[s] = true
		}
	}
	return f
}

func (f Filter) query() string {
	return strings.TrimSpace(f.Query)
}

// Active reports whether any filter is set.
func (f Filter) Active() bool {
	return f.query() != "" || len(f.Statuses) > 0
}

// MatchesSearch reports whether the task matches the query. An empty query
// matches everything.
func (f Filter) MatchesSearch(t model.Task) bool {
	q := strings.ToLower(f.query())
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), q) || strings.Contains(strings.ToLower(t.ID), q)
}

// MatchesStatus reports whether the task's status is in the filter set. An
// empty set matches everything.
func (f Filter) MatchesStatus(t model.Task) bool {
	if len(f.Statuses) == 0 {
		return true
	}
	return f.Statuses[t.Status]
}

// Evaluate returns the highlight flags for a task.
func (f Filter) Evaluate(t model.Task) Highlight {
	if !f.Active() {
		return Highlight{Highlighted: true}
	}
	search := f.MatchesSearch(t)
	return Highlight{
		Highlighted: search && f.MatchesStatus(t),
		SearchMatch: f.query() != "" && search,
	}
}

// Highlighter returns f.Evaluate as a Highlighter.
func (f Filter) Highlighter() Highlighter {
	return f.Evaluate
}

// ToggleStatus adds or removes a status from the filter set.
func (f *Filter) ToggleStatus(s model.Status) {
	if f.Statuses == nil {
		f.Statuses = make(map[model.Status]bool)
	}
	if f.Statuses[s] {
		delete(f.Statuses, s)
		return
	}
	f.Statuses[s] = true
}

// MatchCount backs the "N of M match" indicator.
type MatchCount struct {
	Matched int
	Total   int
}

// CountMatches counts nodes that are highlighted or search matches.
func CountMatches(nodes []Node) MatchCount {
	mc := MatchCount{Total: len(nodes)}
	for _, n := range nodes {
		if n.Data.IsHighlighted || n.Data.IsSearchMatch {
			mc.Matched++
		}
	}
	return mc
}
