package layout

import (
	"math"
	"math/rand/v2"

	"github.com/npratt/depviz/internal/graph"
)

// ForceParams tunes the force-directed simulation.
//
// The simulation is O(n²) per iteration. With the fixed iteration count it
// is meant for graphs of at most a few hundred nodes.
type ForceParams struct {
	Iterations  int
	Repulsion   float64 // all-pairs strength, divided by distance²
	Spring      float64 // edge spring constant
	Damping     float64 // velocity multiplier per step, < 1
	Jitter      float64 // max random offset added to the initial grid
	MaxVelocity float64 // optional per-step displacement cap, 0 = uncapped
}

// DefaultForceParams returns the standard simulation constants.
func DefaultForceParams() ForceParams {
	return ForceParams{
		Iterations: 50,
		Repulsion:  5000,
		Spring:     0.1,
		Damping:    0.9,
		Jitter:     10,
	}
}

// Force runs the simulation with default parameters and a time-seeded
// random source. Its output is not deterministic.
func Force(nodes []graph.Node, edges []graph.Edge, opts Options) []graph.Node {
	return NewForce(DefaultForceParams(), nil)(nodes, edges, opts)
}

// NewForce returns a force-directed Func. A nil rng uses the global source;
// tests pass a seeded one.
func NewForce(params ForceParams, rng *rand.Rand) Func {
	return func(nodes []graph.Node, edges []graph.Edge, opts Options) []graph.Node {
		return simulate(nodes, edges, opts.Normalize(), params, rng)
	}
}

type body struct {
	x, y   float64
	vx, vy float64
	fx, fy float64
}

func simulate(nodes []graph.Node, edges []graph.Edge, opts Options, p ForceParams, rng *rand.Rand) []graph.Node {
	result := cloneNodes(nodes)
	n := len(result)
	if n == 0 {
		return result
	}

	random := rand.Float64
	if rng != nil {
		random = rng.Float64
	}

	// Grid start so the simulation does not begin from a collapsed state.
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	spacing := opts.RankSpacing
	bodies := make([]body, n)
	grid := make([]graph.Position, n)
	index := make(map[string]int, n)
	for i := range result {
		row, col := i/cols, i%cols
		grid[i] = graph.Position{X: float64(col) * spacing, Y: float64(row) * spacing}
		bodies[i].x = grid[i].X + (random()-0.5)*p.Jitter
		bodies[i].y = grid[i].Y + (random()-0.5)*p.Jitter
		index[result[i].ID] = i
	}

	type spring struct{ a, b int }
	var springs []spring
	for _, e := range edges {
		a, okA := index[e.Source]
		b, okB := index[e.Target]
		if !okA || !okB || a == b {
			continue
		}
		springs = append(springs, spring{a, b})
	}

	for iter := 0; iter < p.Iterations; iter++ {
		for i := range bodies {
			bodies[i].fx, bodies[i].fy = 0, 0
		}

		// Repulsion between every pair.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := bodies[i].x - bodies[j].x
				dy := bodies[i].y - bodies[j].y
				dist := math.Hypot(dx, dy)
				if dist == 0 {
					// Coincident bodies: push apart along a fixed diagonal.
					dx, dy = 1, 1
					dist = math.Sqrt2
				}
				d := math.Max(dist, 1)
				force := p.Repulsion / (d * d)
				ux, uy := dx/dist, dy/dist
				bodies[i].fx += ux * force
				bodies[i].fy += uy * force
				bodies[j].fx -= ux * force
				bodies[j].fy -= uy * force
			}
		}

		// Springs pull (or push) endpoints toward the rest length.
		for _, s := range springs {
			dx := bodies[s.b].x - bodies[s.a].x
			dy := bodies[s.b].y - bodies[s.a].y
			dist := math.Hypot(dx, dy)
			if dist == 0 {
				continue
			}
			d := math.Max(dist, 1)
			force := (d - opts.RankSpacing) * p.Spring
			ux, uy := dx/dist, dy/dist
			bodies[s.a].fx += ux * force
			bodies[s.a].fy += uy * force
			bodies[s.b].fx -= ux * force
			bodies[s.b].fy -= uy * force
		}

		for i := range bodies {
			b := &bodies[i]
			b.vx = (b.vx + b.fx) * p.Damping
			b.vy = (b.vy + b.fy) * p.Damping
			if p.MaxVelocity > 0 {
				if speed := math.Hypot(b.vx, b.vy); speed > p.MaxVelocity {
					b.vx *= p.MaxVelocity / speed
					b.vy *= p.MaxVelocity / speed
				}
			}
			b.x += b.vx
			b.y += b.vy
		}
	}

	for i := range result {
		pos := graph.Position{X: bodies[i].x, Y: bodies[i].y}
		if !pos.IsFinite() {
			pos = grid[i]
		}
		result[i].Position = pos
	}
	return result
}
