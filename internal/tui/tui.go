package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/npratt/depviz/internal/config"
	"github.com/npratt/depviz/internal/editmode"
	"github.com/npratt/depviz/internal/layout"
	"github.com/npratt/depviz/internal/taskapi"
)

// TUI is the interactive dependency graph browser.
type TUI struct {
	client      taskapi.Client
	cfg         config.GraphConfig
	controller  *layout.Controller
	machine     *editmode.Machine
	logger      *slog.Logger
	initialRoot string
	onQuit      func()
	out         io.Writer
}

// Option configures the TUI.
type Option func(*TUI)

// New creates a new TUI over client with the given options.
func New(client taskapi.Client, opts ...Option) *TUI {
	t := &TUI{
		client: client,
		cfg:    config.Default().Graph,
		logger: slog.New(slog.DiscardHandler),
		out:    os.Stdout,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.controller == nil {
		t.controller = layout.NewController(nil, layout.WithLogger(t.logger))
	}
	if t.machine == nil {
		t.machine = editmode.New(t.logger)
	}
	return t
}

// WithLogger sets the logger. The TUI owns the terminal, so it should not
// write to stdout or stderr.
func WithLogger(logger *slog.Logger) Option {
	return func(t *TUI) {
		t.logger = logger
	}
}

// WithGraphConfig sets density, edge label, toast and frame settings.
func WithGraphConfig(cfg config.GraphConfig) Option {
	return func(t *TUI) {
		t.cfg = cfg
	}
}

// WithLayoutController sets the controller holding the persisted layout
// options.
func WithLayoutController(c *layout.Controller) Option {
	return func(t *TUI) {
		t.controller = c
	}
}

// WithEditMachine sets the edit-mode machine.
func WithEditMachine(m *editmode.Machine) Option {
	return func(t *TUI) {
		t.machine = m
	}
}

// WithInitialRoot opens the graph of the given task on start.
func WithInitialRoot(id string) Option {
	return func(t *TUI) {
		t.initialRoot = id
	}
}

// WithOnQuit sets the callback invoked when the user quits.
func WithOnQuit(fn func()) Option {
	return func(t *TUI) {
		t.onQuit = fn
	}
}

// WithOutput sets where the non-interactive fallback writes.
func WithOutput(w io.Writer) Option {
	return func(t *TUI) {
		t.out = w
	}
}

// Run starts the TUI and blocks until it exits. Without a terminal it
// prints a one-shot rendering instead.
func (t *TUI) Run(ctx context.Context) error {
	if !isTerminal() {
		return t.runSimple(ctx)
	}

	m := newModel(t.client, t.cfg, t.controller, t.machine, t.logger, t.initialRoot, t.onQuit)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	// Cancellation from the caller is a normal exit.
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
