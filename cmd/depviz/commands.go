package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/lipgloss"
	"github.com/npratt/depviz/internal/editmode"
	"github.com/npratt/depviz/internal/graph"
	"github.com/npratt/depviz/internal/layout"
	"github.com/npratt/depviz/internal/model"
	"github.com/npratt/depviz/internal/shutdown"
	"github.com/npratt/depviz/internal/taskapi"
	"github.com/npratt/depviz/internal/tui"
	"github.com/spf13/cobra"
)

func (a *app) newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [task-id]",
		Short: "Browse and edit dependency graphs interactively",
		Long: `Open the interactive graph view. With a task id the graph for that
task opens immediately; otherwise pick a root from the task list.

Without a terminal a static rendering is printed instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var root string
			if len(args) == 1 {
				root = args[0]
			}

			logResult := SetupTUILogger(a.cfg.Paths.Log, a.level, a.cfg.LogRotation)
			defer func() { _ = logResult.Close() }()
			logger := logResult.Logger
			logger.Info("depviz starting", "version", version, "api", a.cfg.API.BaseURL, "root", root)

			controller := layout.NewController(
				layout.NewFileStore(a.cfg.Paths.State),
				layout.WithLogger(logger),
			)
			ui := tui.New(a.client(logger),
				tui.WithLogger(logger),
				tui.WithGraphConfig(a.cfg.Graph),
				tui.WithLayoutController(controller),
				tui.WithEditMachine(editmode.New(logger)),
				tui.WithInitialRoot(root),
				tui.WithOutput(cmd.OutOrStdout()),
				tui.WithOnQuit(func() { logger.Info("user quit") }),
			)

			return shutdown.RunWithGracefulShutdown(cmd.Context(), logger, shutdownTimeout, ui.Run,
				func(context.Context) error {
					logger.Info("stopping ui")
					return nil
				})
		},
	}
	cmd.Flags().String(FlagDensity, "", "Node density (compact, standard, detailed)")
	a.bindFlag(cmd.Flags().Lookup(FlagDensity))
	return cmd
}

// layoutOutput is the --json shape of the layout command.
type layoutOutput struct {
	Root    string         `json:"root"`
	Options layout.Options `json:"options"`
	Nodes   []graph.Node   `json:"nodes"`
	Edges   []graph.Edge   `json:"edges"`
}

func (a *app) newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout <task-id>",
		Short: "Compute a layout once and print node positions",
		Long: `Fetch the dependency graph around a task, run one layout pass and
print the result. Options default to the persisted ones; flags override
them for this run only.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.layoutOptions(cmd)
			if err != nil {
				return err
			}

			data, err := tui.NewTreeFetcher(a.client(a.logger), a.logger).Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			g := graph.Build(graph.BuildInput{
				Tree:           data.Tree,
				Types:          data.Types,
				ShowEdgeLabels: a.cfg.Graph.ShowEdgeLabels,
			})
			g.Nodes = layout.DefaultRegistry().Apply(g.Nodes, g.Edges, opts)
			a.logger.Debug("layout computed", "root", args[0], "algorithm", opts.Algorithm, "nodes", len(g.Nodes))

			if jsonOut, _ := cmd.Flags().GetBool(FlagJSON); jsonOut {
				return printJSON(cmd.OutOrStdout(), layoutOutput{
					Root:    args[0],
					Options: opts,
					Nodes:   g.Nodes,
					Edges:   g.Edges,
				})
			}
			printLayout(cmd.OutOrStdout(), opts, g)
			return nil
		},
	}
	f := cmd.Flags()
	f.String(FlagAlgorithm, "", "Layout algorithm (hierarchical, force, radial)")
	f.String(FlagDirection, "", "Rank direction for hierarchical layout (TB, LR, BT, RL)")
	f.Float64(FlagNodeSpacing, 0, "Spacing between nodes in a rank")
	f.Float64(FlagRankSpacing, 0, "Spacing between ranks")
	f.Bool(FlagJSON, false, "Output as JSON")
	return cmd
}

// layoutOptions starts from the persisted options and applies any flags the
// user set. Nothing is written back.
func (a *app) layoutOptions(cmd *cobra.Command) (layout.Options, error) {
	opts := layout.LoadOptions(layout.NewFileStore(a.cfg.Paths.State), a.logger)
	f := cmd.Flags()

	if f.Changed(FlagAlgorithm) {
		s, _ := f.GetString(FlagAlgorithm)
		algo := layout.Algorithm(s)
		if !algo.IsValid() {
			return opts, fmt.Errorf("unknown algorithm %q (want hierarchical, force, or radial)", s)
		}
		opts.Algorithm = algo
	}
	if f.Changed(FlagDirection) {
		s, _ := f.GetString(FlagDirection)
		dir := layout.Direction(s)
		if !dir.IsValid() {
			return opts, fmt.Errorf("unknown direction %q (want TB, LR, BT, or RL)", s)
		}
		opts.Direction = dir
	}
	for _, name := range []string{FlagNodeSpacing, FlagRankSpacing} {
		if !f.Changed(name) {
			continue
		}
		v, _ := f.GetFloat64(name)
		if v <= 0 {
			return opts, fmt.Errorf("--%s must be positive, got %g", name, v)
		}
		if name == FlagNodeSpacing {
			opts.NodeSpacing = v
		} else {
			opts.RankSpacing = v
		}
	}
	return opts.Normalize(), nil
}

func printLayout(w io.Writer, opts layout.Options, g graph.Model) {
	fmt.Fprintf(w, "%s %s (node spacing %g, rank spacing %g)\n",
		opts.Algorithm, opts.Direction, opts.NodeSpacing, opts.RankSpacing)
	for _, n := range g.Nodes {
		marker := " "
		if n.Data.IsRoot {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-12s %8.1f %8.1f  %s\n", marker, n.ID, n.Position.X, n.Position.Y, n.Data.Task.Title)
	}
	for _, e := range g.Edges {
		fmt.Fprintf(w, "%s -> %s (%s)\n", e.Source, e.Target, e.Type)
	}
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func (a *app) newDepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Create or delete typed dependencies",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <source-id> <target-id> <type>",
			Short: "Create a dependency",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runDep(cmd, args, true)
			},
		},
		&cobra.Command{
			Use:     "rm <source-id> <target-id> <type>",
			Aliases: []string{"remove"},
			Short:   "Delete a dependency",
			Args:    cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runDep(cmd, args, false)
			},
		},
	)
	return cmd
}

func (a *app) runDep(cmd *cobra.Command, args []string, create bool) error {
	sourceID, targetID := args[0], args[1]
	depType, err := model.ParseDependencyType(args[2])
	if err != nil {
		return err
	}
	if err := model.ValidateTriple(sourceID, targetID, depType); err != nil {
		return err
	}

	desc := fmt.Sprintf("%s -> %s (%s)", sourceID, targetID, depType)
	client := a.client(a.logger)
	if create {
		_, err = client.CreateDependency(cmd.Context(), sourceID, targetID, depType)
	} else {
		err = client.DeleteDependency(cmd.Context(), sourceID, targetID, depType)
	}
	if err != nil {
		var apiErr *taskapi.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
			return fmt.Errorf("%s rejected: %s", desc, apiErr.Message)
		}
		return err
	}

	verb := "deleted"
	if create {
		verb = "created"
	}
	a.logger.Debug("dependency "+verb, "source", sourceID, "target", targetID, "type", depType)
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, desc)
	return nil
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "types",
		Short:             "List dependency types and their colors",
		Args:              cobra.NoArgs,
		PersistentPreRunE: skipConfig,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			for _, t := range model.DependencyTypes() {
				info := t.Info()
				swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(info.Color)).Render("■")
				fmt.Fprintf(w, "%s %-20s %s  %s\n", swatch, t, info.Color, info.Description)
			}
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		PersistentPreRunE: skipConfig,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "depviz %s\n", version)
		},
	}
}
