package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/npratt/depviz/internal/config"
	"github.com/npratt/depviz/internal/editmode"
	"github.com/npratt/depviz/internal/layout"
	"github.com/npratt/depviz/internal/taskapi"
)

// Layout size constants.
const (
	// selectorCols is the selector column width including its border.
	selectorCols = 34
	// narrowSelectorCols is used below wideCols.
	narrowSelectorCols = 26
	// wideCols is the terminal width from which the wide selector is used.
	wideCols = 110
	// chromeRows is the header line plus the footer line.
	chromeRows = 2
)

// model is the bubbletea model for the TUI.
type model struct {
	client   taskapi.Client
	logger   *slog.Logger
	selector Selector
	pane     GraphPane
	modal    *DetailModal

	initialRoot string
	focus       FocusArea

	width  int
	height int

	onQuit func()
}

// newModel creates a new model. The selector starts focused unless an
// initial root is given.
func newModel(client taskapi.Client, cfg config.GraphConfig, controller *layout.Controller, machine *editmode.Machine, logger *slog.Logger, initialRoot string, onQuit func()) model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := model{
		client:      client,
		logger:      logger,
		selector:    NewSelector(client),
		pane:        NewGraphPane(client, cfg, controller, machine, logger),
		modal:       NewDetailModal(client),
		initialRoot: initialRoot,
		onQuit:      onQuit,
	}
	m.setFocus(FocusSelector)
	return m
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	// Refreshes go through a message so the request id is recorded on the
	// live model, not on this copy.
	cmds := []tea.Cmd{func() tea.Msg { return selectorRefreshMsg{} }}
	if m.initialRoot != "" {
		root := m.initialRoot
		cmds = append(cmds, func() tea.Msg { return RootSelectedMsg{ID: root} })
	}
	return tea.Batch(cmds...)
}

// setFocus moves keyboard focus to area.
func (m *model) setFocus(area FocusArea) {
	m.focus = area
	m.selector.SetFocused(area == FocusSelector)
	m.pane.SetFocused(area == FocusCanvas)
}

// toggleFocus switches between the selector and the canvas.
func (m *model) toggleFocus() {
	if m.focus == FocusSelector {
		m.setFocus(FocusCanvas)
		return
	}
	m.setFocus(FocusSelector)
}

// selectorWidth returns the outer width of the selector column.
func (m model) selectorWidth() int {
	if m.width >= wideCols {
		return selectorCols
	}
	return narrowSelectorCols
}

// updatePaneSizes recalculates component dimensions from the terminal size.
// Both columns are bordered, so inner sizes lose two cells each way.
func (m *model) updatePaneSizes() {
	bodyHeight := m.height - chromeRows
	sw := m.selectorWidth()
	m.selector.SetSize(safeWidth(sw-2), safeHeight(bodyHeight-2))
	m.pane.SetSize(safeWidth(m.width-sw-2), safeHeight(bodyHeight-2))
}
