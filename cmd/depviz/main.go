package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/npratt/depviz/internal/config"
	"github.com/npratt/depviz/internal/shutdown"
	"github.com/npratt/depviz/internal/taskapi"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var version = "dev"

// How long the TUI gets to exit after a signal.
const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := shutdown.Context(context.Background())
	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// app carries the state shared by every subcommand.
type app struct {
	v      *viper.Viper
	level  *slog.LevelVar
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{v: viper.New(), level: &slog.LevelVar{}}
	a.v.SetEnvPrefix("DEPVIZ")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "depviz",
		Short: "Visualize and edit task dependency graphs",
		Long: `depviz renders the dependency graph around a task and lets you
create or delete typed dependencies against a task service.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd.ErrOrStderr())
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	pf := rootCmd.PersistentFlags()
	pf.Bool(FlagVerbose, false, "Enable debug logging")
	pf.String(FlagConfig, "", "Config file path (default: .depviz/config.yaml)")
	pf.String(FlagAPIURL, "", "Task service base URL")
	pf.String(FlagToken, "", "Bearer token for the task service")
	pf.String(FlagLogFile, "", "TUI debug log path")
	pf.String(FlagStateFile, "", "Persisted layout options path")
	pf.VisitAll(a.bindFlag)

	rootCmd.AddCommand(
		a.newViewCmd(),
		a.newLayoutCmd(),
		a.newDepCmd(),
		newTypesCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// bindFlag binds a flag to its config key so flags override files and env.
func (a *app) bindFlag(f *pflag.Flag) {
	key, ok := flagConfigKeys[f.Name]
	if !ok {
		key = f.Name
	}
	_ = a.v.BindPFlag(key, f)
}

func (a *app) load(errOut io.Writer) error {
	if a.v.GetBool(FlagVerbose) {
		a.level.Set(slog.LevelDebug)
	}
	a.logger = SetupCLILogger(errOut, a.level)

	cfg, err := config.LoadConfig(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger.Debug("config loaded", "api", cfg.API.BaseURL, "state", cfg.Paths.State)
	return nil
}

func (a *app) client(logger *slog.Logger) *taskapi.HTTPClient {
	return taskapi.NewHTTPClient(a.cfg.API.BaseURL,
		taskapi.WithToken(a.cfg.API.Token),
		taskapi.WithTimeout(a.cfg.API.Timeout),
		taskapi.WithLogger(logger),
	)
}

// skipConfig replaces the root pre-run for commands that need no config.
func skipConfig(*cobra.Command, []string) error { return nil }
