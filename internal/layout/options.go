// Package layout positions graph nodes with one of three interchangeable
// algorithms and persists the user's layout options.
package layout

// Algorithm names a layout algorithm.
type Algorithm string

const (
	AlgorithmHierarchical Algorithm = "hierarchical"
	AlgorithmForce        Algorithm = "force"
	AlgorithmRadial       Algorithm = "radial"
)

// Algorithms returns every algorithm in cycling order.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmHierarchical, AlgorithmForce, AlgorithmRadial}
}

// IsValid reports whether a is a known algorithm.
func (a Algorithm) IsValid() bool {
	switch a {
	case AlgorithmHierarchical, AlgorithmForce, AlgorithmRadial:
		return true
	default:
		return false
	}
}

// Next returns the algorithm after a in cycling order.
func (a Algorithm) Next() Algorithm {
	all := Algorithms()
	for i, candidate := range all {
		if candidate == a {
			return all[(i+1)%len(all)]
		}
	}
	return AlgorithmHierarchical
}

// Direction is the rank direction. Only the hierarchical algorithm uses it.
type Direction string

const (
	DirectionTB Direction = "TB"
	DirectionLR Direction = "LR"
	DirectionBT Direction = "BT"
	DirectionRL Direction = "RL"
)

// Directions returns every direction in cycling order.
func Directions() []Direction {
	return []Direction{DirectionTB, DirectionLR, DirectionBT, DirectionRL}
}

// IsValid reports whether d is a known direction.
func (d Direction) IsValid() bool {
	switch d {
	case DirectionTB, DirectionLR, DirectionBT, DirectionRL:
		return true
	default:
		return false
	}
}

// Next returns the direction after d in cycling order.
func (d Direction) Next() Direction {
	all := Directions()
	for i, candidate := range all {
		if candidate == d {
			return all[(i+1)%len(all)]
		}
	}
	return DirectionTB
}

// Default option values.
const (
	DefaultNodeSpacing = 80.0
	DefaultRankSpacing = 150.0
)

// Options is the user-selected layout configuration.
type Options struct {
	Algorithm   Algorithm `json:"algorithm"`
	Direction   Direction `json:"direction"`
	NodeSpacing float64   `json:"nodeSpacing"`
	RankSpacing float64   `json:"rankSpacing"`
}

// DefaultOptions returns {hierarchical, TB, 80, 150}.
func DefaultOptions() Options {
	return Options{
		Algorithm:   AlgorithmHierarchical,
		Direction:   DirectionTB,
		NodeSpacing: DefaultNodeSpacing,
		RankSpacing: DefaultRankSpacing,
	}
}

// Normalize replaces every invalid field with its default.
func (o Options) Normalize() Options {
	def := DefaultOptions()
	if !o.Algorithm.IsValid() {
		o.Algorithm = def.Algorithm
	}
	if !o.Direction.IsValid() {
		o.Direction = def.Direction
	}
	if !(o.NodeSpacing > 0) {
		o.NodeSpacing = def.NodeSpacing
	}
	if !(o.RankSpacing > 0) {
		o.RankSpacing = def.RankSpacing
	}
	return o
}
