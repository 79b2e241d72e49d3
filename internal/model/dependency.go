package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrSelfLoop is returned when a dependency would point a task at itself.
var ErrSelfLoop = errors.New("a task cannot depend on itself")

// DependencyType categorizes the relationship between two tasks.
type DependencyType string

const (
	DepBlocks      DependencyType = "blocks"
	DepParentChild DependencyType = "parent-child"
	DepRelatesTo   DependencyType = "relates-to"
	DepReferences  DependencyType = "references"
	DepAwaits      DependencyType = "awaits"
	DepValidates   DependencyType = "validates"
	DepAuthoredBy  DependencyType = "authored-by"
	DepAssignedTo  DependencyType = "assigned-to"
)

// TypeInfo is the static display metadata for a dependency type.
type TypeInfo struct {
	Color       string // hex colour used for edges and legend entries
	Description string
}

var typeInfo = map[DependencyType]TypeInfo{
	DepBlocks:      {Color: "#ef4444", Description: "Source cannot start until target is completed"},
	DepParentChild: {Color: "#8b5cf6", Description: "Source is a subtask of target"},
	DepRelatesTo:   {Color: "#3b82f6", Description: "Tasks are related but not ordered"},
	DepReferences:  {Color: "#06b6d4", Description: "Source refers to information in target"},
	DepAwaits:      {Color: "#f59e0b", Description: "Source waits on an external outcome tracked by target"},
	DepValidates:   {Color: "#10b981", Description: "Source verifies the work done in target"},
	DepAuthoredBy:  {Color: "#ec4899", Description: "Source was produced by target"},
	DepAssignedTo:  {Color: "#6b7280", Description: "Source is assigned to the agent tracked by target"},
}

// DependencyTypes returns the eight dependency kinds in canonical order.
// The type picker numbers its choices in this order.
func DependencyTypes() []DependencyType {
	return []DependencyType{
		DepBlocks,
		DepParentChild,
		DepRelatesTo,
		DepReferences,
		DepAwaits,
		DepValidates,
		DepAuthoredBy,
		DepAssignedTo,
	}
}

// IsValid reports whether d is one of the known dependency kinds.
func (d DependencyType) IsValid() bool {
	_, ok := typeInfo[d]
	return ok
}

// Info returns the display metadata for d. Unknown types get a neutral grey.
func (d DependencyType) Info() TypeInfo {
	if info, ok := typeInfo[d]; ok {
		return info
	}
	return TypeInfo{Color: "#9ca3af", Description: "Unknown dependency type"}
}

// ParseDependencyType converts s to a DependencyType.
func ParseDependencyType(s string) (DependencyType, error) {
	d := DependencyType(s)
	if !d.IsValid() {
		return "", fmt.Errorf("unknown dependency type %q", s)
	}
	return d, nil
}

// Dependency is a typed, directed edge between two tasks: Source depends on Target.
// The (SourceID, TargetID, Type) triple is its natural key.
type Dependency struct {
	SourceID  string         `json:"sourceId"`
	TargetID  string         `json:"targetId"`
	Type      DependencyType `json:"type"`
	CreatedAt time.Time      `json:"createdAt,omitzero"`
	CreatedBy string         `json:"createdBy,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Key returns the natural key of the dependency.
func (d Dependency) Key() string {
	return PairKey(d.SourceID, d.TargetID) + "#" + string(d.Type)
}

// Validate checks the dependency before it is submitted.
func (d Dependency) Validate() error {
	return ValidateTriple(d.SourceID, d.TargetID, d.Type)
}

// ValidateTriple checks a (source, target, type) triple before submission.
func ValidateTriple(sourceID, targetID string, depType DependencyType) error {
	if sourceID == "" || targetID == "" {
		return errors.New("source and target ids are required")
	}
	if sourceID == targetID {
		return ErrSelfLoop
	}
	if !depType.IsValid() {
		return fmt.Errorf("unknown dependency type %q", depType)
	}
	return nil
}

// DependencyList is the authoritative, type-tagged edge list for one task.
type DependencyList struct {
	Dependencies []Dependency `json:"dependencies"`
	Dependents   []Dependency `json:"dependents"`
}

// Contains reports whether the list holds the given triple in either direction set.
func (l DependencyList) Contains(sourceID, targetID string, depType DependencyType) bool {
	for _, set := range [][]Dependency{l.Dependencies, l.Dependents} {
		for _, d := range set {
			if d.SourceID == sourceID && d.TargetID == targetID && d.Type == depType {
				return true
			}
		}
	}
	return false
}
