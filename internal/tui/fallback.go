package tui

import (
	"context"
	"fmt"
	"os"

	"github.com/npratt/depviz/internal/graph"
	"github.com/npratt/depviz/internal/taskapi"
	"golang.org/x/term"
)

// Static rendering size when stdout is not a terminal.
const (
	fallbackWidth  = 120
	fallbackHeight = 30
)

// isTerminal returns true if both stdout and stdin are TTYs.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

// terminalSize returns the current terminal width and height.
// Returns 0, 0 if the terminal size cannot be determined.
func terminalSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0
	}
	return width, height
}

// runSimple provides plain output for non-interactive environments: the
// selectable task list, or one laid-out rendering of the initial root.
func (t *TUI) runSimple(ctx context.Context) error {
	if t.initialRoot == "" {
		tasks, err := taskapi.Selectable(ctx, t.client)
		if err != nil {
			return fmt.Errorf("failed to load tasks: %w", err)
		}
		for _, task := range tasks {
			fmt.Fprintf(t.out, "%s %s %s\n", statusIcon(task.Status), task.ID, safeString(task.Title))
		}
		return nil
	}

	data, err := NewTreeFetcher(t.client, t.logger).Fetch(ctx, t.initialRoot)
	if err != nil {
		return err
	}
	g := graph.Build(graph.BuildInput{
		Tree:           data.Tree,
		Types:          data.Types,
		ShowEdgeLabels: t.cfg.ShowEdgeLabels,
	})
	g.Nodes = t.controller.Compute(g.Nodes, g.Edges)

	width, height := terminalSize()
	if width == 0 || height == 0 {
		width, height = fallbackWidth, fallbackHeight
	}
	canvas := Canvas{Model: g, Density: ParseDensity(t.cfg.Density)}
	rects := canvas.Layout()
	for _, r := range rects {
		width = max(width, r.X+r.W)
		height = max(height, r.Y+r.H)
	}

	fmt.Fprintln(t.out, canvas.Render(width, height))
	for _, e := range g.Edges {
		fmt.Fprintf(t.out, "%s -> %s (%s)\n", e.Source, e.Target, e.Type)
	}
	return nil
}
