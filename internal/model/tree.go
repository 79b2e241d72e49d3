package model

// DependencyTree is the server-computed structure for one root task.
// Dependencies are upstream (tasks the element depends on), Dependents are
// downstream (tasks depending on the element). Nested entries use the same
// shape.
type DependencyTree struct {
	Element      Task             `json:"element"`
	Dependencies []DependencyTree `json:"dependencies,omitempty"`
	Dependents   []DependencyTree `json:"dependents,omitempty"`

	// DependencyType optionally records the type of the relation that links
	// this entry to its parent. Trees do not always carry it.
	DependencyType DependencyType `json:"dependencyType,omitempty"`
}

// DependencyTreeNode is a nested entry of a DependencyTree.
type DependencyTreeNode = DependencyTree

// PairKey returns the lookup key for an ordered pair of task ids.
func PairKey(sourceID, targetID string) string {
	return sourceID + "->" + targetID
}

// TypeLookup maps an ordered pair key to every dependency type recorded for
// that pair, in the order the server reported them.
type TypeLookup map[string][]DependencyType

// NewTypeLookup builds a TypeLookup from a dependency list. Duplicate triples
// are recorded once.
func NewTypeLookup(list DependencyList) TypeLookup {
	lookup := make(TypeLookup)
	for _, set := range [][]Dependency{list.Dependencies, list.Dependents} {
		for _, d := range set {
			lookup.Add(d.SourceID, d.TargetID, d.Type)
		}
	}
	return lookup
}

// Add records a type for the ordered pair unless it is already present.
func (l TypeLookup) Add(sourceID, targetID string, depType DependencyType) {
	key := PairKey(sourceID, targetID)
	for _, existing := range l[key] {
		if existing == depType {
			return
		}
	}
	l[key] = append(l[key], depType)
}

// Types returns the recorded types for the ordered pair.
func (l TypeLookup) Types(sourceID, targetID string) []DependencyType {
	if l == nil {
		return nil
	}
	return l[PairKey(sourceID, targetID)]
}
