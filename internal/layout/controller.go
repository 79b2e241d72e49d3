package layout

import (
	"log/slog"
	"sync"
	"time"

	"github.com/npratt/depviz/internal/graph"
)

// Controller holds the current layout options, persists every change, and
// tracks whether a requested layout is still being computed.
//
// Deferring the computation (so a busy indicator can paint first) is the
// caller's job: call Request, schedule Run for the next frame.
type Controller struct {
	store    Store
	registry Registry
	logger   *slog.Logger

	mu        sync.RWMutex
	opts      Options
	computing bool
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithRegistry replaces the algorithm registry.
func WithRegistry(r Registry) ControllerOption {
	return func(c *Controller) {
		c.registry = r
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController loads options from store (defaults when absent or corrupt).
// A nil store keeps options in memory only.
func NewController(store Store, opts ...ControllerOption) *Controller {
	c := &Controller{
		store:    store,
		registry: DefaultRegistry(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.opts = LoadOptions(store, c.logger)
	return c
}

// Options returns the current options.
func (c *Controller) Options() Options {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.opts
}

// SetOptions normalizes, stores and persists opts. The in-memory value is
// updated even when persisting fails.
func (c *Controller) SetOptions(opts Options) error {
	opts = opts.Normalize()
	c.mu.Lock()
	c.opts = opts
	c.mu.Unlock()

	if err := SaveOptions(c.store, opts); err != nil {
		c.logger.Warn("failed to persist layout options", "error", err)
		return err
	}
	return nil
}

// SetAlgorithm changes the algorithm.
func (c *Controller) SetAlgorithm(a Algorithm) error {
	opts := c.Options()
	opts.Algorithm = a
	return c.SetOptions(opts)
}

// SetDirection changes the direction.
func (c *Controller) SetDirection(d Direction) error {
	opts := c.Options()
	opts.Direction = d
	return c.SetOptions(opts)
}

// CycleAlgorithm advances to the next algorithm and returns it.
func (c *Controller) CycleAlgorithm() (Algorithm, error) {
	next := c.Options().Algorithm.Next()
	return next, c.SetAlgorithm(next)
}

// CycleDirection advances to the next direction and returns it.
func (c *Controller) CycleDirection() (Direction, error) {
	next := c.Options().Direction.Next()
	return next, c.SetDirection(next)
}

// AdjustSpacing scales both spacings by factor. Results below 10 are clamped.
func (c *Controller) AdjustSpacing(factor float64) error {
	opts := c.Options()
	opts.NodeSpacing = clampSpacing(opts.NodeSpacing * factor)
	opts.RankSpacing = clampSpacing(opts.RankSpacing * factor)
	return c.SetOptions(opts)
}

func clampSpacing(v float64) float64 {
	if v < 10 {
		return 10
	}
	return v
}

// Request raises the busy flag. It returns false when a layout is already
// pending, in which case the caller should not schedule another Run.
func (c *Controller) Request() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.computing {
		return false
	}
	c.computing = true
	return true
}

// Computing reports whether a requested layout has not finished.
func (c *Controller) Computing() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.computing
}

// Run computes the layout with the current options and clears the busy flag.
// It always runs to completion.
func (c *Controller) Run(nodes []graph.Node, edges []graph.Edge) []graph.Node {
	defer func() {
		c.mu.Lock()
		c.computing = false
		c.mu.Unlock()
	}()
	return c.Compute(nodes, edges)
}

// Compute runs the layout synchronously without touching the busy flag.
func (c *Controller) Compute(nodes []graph.Node, edges []graph.Edge) []graph.Node {
	opts := c.Options()
	start := time.Now()
	result := c.registry.Apply(nodes, edges, opts)
	c.logger.Debug("layout computed",
		"algorithm", opts.Algorithm,
		"direction", opts.Direction,
		"nodes", len(nodes),
		"edges", len(edges),
		"duration", time.Since(start))
	return result
}
