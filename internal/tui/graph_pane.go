package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/npratt/depviz/internal/config"
	"github.com/npratt/depviz/internal/editmode"
	"github.com/npratt/depviz/internal/graph"
	"github.com/npratt/depviz/internal/layout"
	"github.com/npratt/depviz/internal/model"
	"github.com/npratt/depviz/internal/taskapi"
)

const (
	// graphFetchTimeout bounds one tree + dependency list fetch.
	graphFetchTimeout = 30 * time.Second
	// mutationTimeout bounds one create or delete request.
	mutationTimeout = 15 * time.Second
	// spacingStep is the factor applied by the +/- keys.
	spacingStep = 1.25
)

// GraphPane shows the dependency graph of one root task and routes node
// clicks into the edit-mode machine.
type GraphPane struct {
	client  taskapi.Client
	fetcher *TreeFetcher
	layout  *layout.Controller
	machine *editmode.Machine
	cfg     config.GraphConfig
	logger  *slog.Logger

	spinner   spinner.Model
	search    textinput.Model
	searching bool

	rootID     string
	layoutRoot string // root whose first layout has been requested
	requestID  int    // For staleness detection
	loading    bool
	startedAt  time.Time
	errorMsg   string

	data      *GraphData
	positions map[string]graph.Position // last applied layout
	graph     graph.Model
	filter    graph.Filter
	statusIdx int
	density   NodeDensity

	cursorID string
	edgeIdx  int // index into the cursor node's edges, -1 for none
	deleting bool // a delete request is in flight
	viewport Viewport

	toast   string
	toastID int

	width   int
	height  int
	focused bool
}

// graphResultMsg carries the result of a tree fetch.
type graphResultMsg struct {
	requestID int
	rootID    string
	data      *GraphData
	err       error
}

// layoutFrameMsg fires one frame after a layout was requested so the busy
// indicator can paint before the computation blocks the update loop.
type layoutFrameMsg struct{}

type mutationKind int

const (
	mutationCreate mutationKind = iota
	mutationDelete
)

// mutationResultMsg carries the outcome of a create or delete request.
type mutationResultMsg struct {
	kind     mutationKind
	sourceID string
	targetID string
	depType  model.DependencyType
	err      error
}

// toastExpiredMsg clears the toast it was scheduled for.
type toastExpiredMsg struct {
	id int
}

// GraphOpenModalMsg is emitted when a node is clicked outside edit mode.
type GraphOpenModalMsg struct {
	Task model.Task
}

// NewGraphPane creates a GraphPane. Any nil collaborator except client gets
// a working default.
func NewGraphPane(client taskapi.Client, cfg config.GraphConfig, controller *layout.Controller, machine *editmode.Machine, logger *slog.Logger) GraphPane {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if controller == nil {
		controller = layout.NewController(nil, layout.WithLogger(logger))
	}
	if machine == nil {
		machine = editmode.New(logger)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Busy

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search id or title"
	ti.CharLimit = 100

	return GraphPane{
		client:   client,
		fetcher:  NewTreeFetcher(client, logger),
		layout:   controller,
		machine:  machine,
		cfg:      cfg,
		logger:   logger,
		spinner:  sp,
		search:   ti,
		density:  ParseDensity(cfg.Density),
		edgeIdx:  -1,
		viewport: Viewport{},
	}
}

// Load starts fetching the graph for rootID. Results for any previously
// requested root are dropped on arrival.
func (p *GraphPane) Load(rootID string) tea.Cmd {
	if rootID == "" {
		return nil
	}
	if rootID != p.rootID {
		p.positions = nil
		p.data = nil
		p.graph = graph.Model{}
		p.cursorID = ""
		p.edgeIdx = -1
		p.viewport.OffsetX, p.viewport.OffsetY = 0, 0
		p.layoutRoot = ""
	}
	p.rootID = rootID
	p.requestID++
	p.loading = true
	p.startedAt = time.Now()
	p.errorMsg = ""
	return tea.Batch(p.spinner.Tick, p.fetchCmd(p.requestID, rootID))
}

// fetchCmd returns a command that fetches the graph data in the background.
func (p GraphPane) fetchCmd(requestID int, rootID string) tea.Cmd {
	fetcher := p.fetcher
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), graphFetchTimeout)
		defer cancel()

		data, err := fetcher.Fetch(ctx, rootID)
		return graphResultMsg{requestID: requestID, rootID: rootID, data: data, err: err}
	}
}

// Update handles messages and returns the updated pane and any commands.
func (p GraphPane) Update(msg tea.Msg) (GraphPane, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if p.focused {
			return p.handleKey(msg)
		}
		return p, nil

	case graphResultMsg:
		// Drop stale results
		if msg.requestID != p.requestID || msg.rootID != p.rootID {
			p.logger.Debug("dropping stale graph result", "root", msg.rootID, "request", msg.requestID)
			return p, nil
		}
		p.loading = false
		if msg.err != nil {
			p.logger.Warn("graph fetch failed", "root", msg.rootID, "error", msg.err)
			p.errorMsg = msg.err.Error()
			p.data = nil
			p.graph = graph.Model{}
			return p, nil
		}
		p.errorMsg = ""
		p.data = msg.data
		p.rebuild()
		if p.layoutRoot != p.rootID {
			p.layoutRoot = p.rootID
			cmd := p.requestLayout()
			return p, cmd
		}
		return p, nil

	case layoutFrameMsg:
		p.graph.Nodes = p.layout.Run(p.graph.Nodes, p.graph.Edges)
		p.positions = graph.Positions(p.graph.Nodes)
		p.ensureCursorVisible()
		return p, nil

	case mutationResultMsg:
		return p.handleMutationResult(msg)

	case toastExpiredMsg:
		if msg.id == p.toastID {
			p.toast = ""
		}
		return p, nil

	case spinner.TickMsg:
		if p.loading || p.layout.Computing() || p.machine.Snapshot().Pending {
			var cmd tea.Cmd
			p.spinner, cmd = p.spinner.Update(msg)
			return p, cmd
		}
		return p, nil

	default:
		if p.searching {
			var cmd tea.Cmd
			p.search, cmd = p.search.Update(msg)
			return p, cmd
		}
		return p, nil
	}
}

// handleKey processes keyboard input when focused.
func (p GraphPane) handleKey(msg tea.KeyMsg) (GraphPane, tea.Cmd) {
	if p.searching {
		return p.handleSearchKey(msg)
	}
	if p.machine.State() == editmode.TypePickerOpen {
		return p.handlePickerKey(msg)
	}

	key := msg.String()
	switch key {
	case "up", "k":
		p.moveCursor("up")
	case "down", "j":
		p.moveCursor("down")
	case "left", "h":
		p.moveCursor("left")
	case "right", "l":
		p.moveCursor("right")

	case "enter", " ":
		return p.click()

	case "e":
		p.machine.Toggle()
		p.edgeIdx = -1
		p.rebuild()

	case "[", "]":
		p.cycleEdge(key == "]")

	case "x":
		return p.deleteSelectedEdge()

	case "/":
		p.searching = true
		p.search.SetValue(p.filter.Query)
		p.search.CursorEnd()
		cmd := p.search.Focus()
		return p, cmd

	case "s":
		p.statusIdx = (p.statusIdx + 1) % len(statusCycle)
		p.filter.Statuses = nil
		if s := statusCycle[p.statusIdx]; s != "" {
			p.filter.ToggleStatus(s)
		}
		p.rebuild()

	case "c":
		p.filter = graph.Filter{}
		p.statusIdx = 0
		p.search.SetValue("")
		p.rebuild()

	case "L":
		cmd := p.requestLayout()
		return p, cmd

	case "a":
		next, err := p.layout.CycleAlgorithm()
		cmd := p.optionsToast(fmt.Sprintf("algorithm: %s (L to apply)", next), err)
		return p, cmd

	case "d":
		next, err := p.layout.CycleDirection()
		cmd := p.optionsToast(fmt.Sprintf("direction: %s (L to apply)", next), err)
		return p, cmd

	case "+", "=":
		err := p.layout.AdjustSpacing(spacingStep)
		cmd := p.optionsToast(p.spacingText(), err)
		return p, cmd

	case "-":
		err := p.layout.AdjustSpacing(1 / spacingStep)
		cmd := p.optionsToast(p.spacingText(), err)
		return p, cmd

	case "v":
		p.density = p.density.Next()
		p.ensureCursorVisible()

	case "r":
		if p.loading {
			return p, nil
		}
		cmd := p.Load(p.rootID)
		return p, cmd

	case "esc":
		if p.machine.Active() && p.machine.State() != editmode.NoSelection {
			p.machine.Cancel()
			p.rebuild()
			return p, nil
		}
		if p.errorMsg != "" {
			p.errorMsg = ""
			return p, nil
		}
		// Otherwise unfocus to signal the parent should move focus
		p.focused = false
	}
	return p, nil
}

// handleSearchKey feeds the search box and refilters as the query changes.
func (p GraphPane) handleSearchKey(msg tea.KeyMsg) (GraphPane, tea.Cmd) {
	switch msg.String() {
	case "enter":
		p.searching = false
		p.search.Blur()
		return p, nil
	case "esc":
		p.searching = false
		p.search.Blur()
		p.search.SetValue("")
		p.filter.Query = ""
		p.rebuild()
		return p, nil
	}

	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	if p.search.Value() != p.filter.Query {
		p.filter.Query = p.search.Value()
		p.rebuild()
	}
	return p, cmd
}

// handlePickerKey handles the type picker: 1-8 submit, esc cancels.
func (p GraphPane) handlePickerKey(msg tea.KeyMsg) (GraphPane, tea.Cmd) {
	key := msg.String()
	switch key {
	case "esc":
		p.machine.Cancel()
		p.rebuild()
		return p, nil
	case "e":
		p.machine.SetMode(false)
		p.edgeIdx = -1
		p.rebuild()
		return p, nil
	}

	types := model.DependencyTypes()
	if len(key) == 1 && key[0] >= '1' && key[0] <= byte('0'+len(types)) {
		if p.machine.Snapshot().Pending {
			return p, nil
		}
		return p, tea.Batch(p.spinner.Tick, p.createCmd(types[key[0]-'1']))
	}
	return p, nil
}

// click feeds the cursor node to the machine, or opens the detail modal
// when edit mode is off.
func (p GraphPane) click() (GraphPane, tea.Cmd) {
	node, ok := p.graph.Node(p.cursorID)
	if !ok {
		return p, nil
	}
	if !p.machine.Active() {
		task := node.Data.Task
		return p, func() tea.Msg { return GraphOpenModalMsg{Task: task} }
	}
	if p.machine.Click(node.Data.Task) {
		p.rebuild()
	}
	return p, nil
}

// createCmd submits the selected pair with depType.
func (p GraphPane) createCmd(depType model.DependencyType) tea.Cmd {
	machine, gw := p.machine, p.client
	snap := machine.Snapshot()
	var sourceID, targetID string
	if snap.Source != nil && snap.Target != nil {
		sourceID, targetID = snap.Source.ID, snap.Target.ID
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mutationTimeout)
		defer cancel()
		err := machine.SelectType(ctx, gw, depType)
		return mutationResultMsg{kind: mutationCreate, sourceID: sourceID, targetID: targetID, depType: depType, err: err}
	}
}

// deleteSelectedEdge submits a delete for the edge picked with [ and ].
// Only one delete is in flight at a time.
func (p GraphPane) deleteSelectedEdge() (GraphPane, tea.Cmd) {
	if !p.machine.Active() || p.deleting {
		return p, nil
	}
	edge, ok := p.selectedEdge()
	if !ok {
		return p, nil
	}
	p.deleting = true
	machine, gw := p.machine, p.client
	return p, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mutationTimeout)
		defer cancel()
		err := machine.DeleteEdge(ctx, gw, edge.Source, edge.Target, edge.Type)
		return mutationResultMsg{kind: mutationDelete, sourceID: edge.Source, targetID: edge.Target, depType: edge.Type, err: err}
	}
}

// handleMutationResult refetches after a successful mutation. Create
// failures are shown by the picker; delete failures become a toast.
func (p GraphPane) handleMutationResult(msg mutationResultMsg) (GraphPane, tea.Cmd) {
	if msg.kind == mutationDelete {
		p.deleting = false
	}
	p.rebuild()
	if errors.Is(msg.err, editmode.ErrMutationPending) {
		return p, nil
	}

	desc := fmt.Sprintf("%s -> %s (%s)", msg.sourceID, msg.targetID, msg.depType)
	switch msg.kind {
	case mutationCreate:
		if msg.err != nil {
			return p, nil
		}
		cmd := tea.Batch(p.showToast("created "+desc), p.Load(p.rootID))
		return p, cmd
	default:
		if msg.err != nil {
			cmd := p.showToast("delete failed: " + msg.err.Error())
			return p, cmd
		}
		p.edgeIdx = -1
		cmd := tea.Batch(p.showToast("deleted "+desc), p.Load(p.rootID))
		return p, cmd
	}
}

// requestLayout raises the controller's busy flag and schedules the
// computation for the next frame.
func (p *GraphPane) requestLayout() tea.Cmd {
	if len(p.graph.Nodes) == 0 || !p.layout.Request() {
		return nil
	}
	return tea.Batch(p.spinner.Tick, tea.Tick(p.cfg.FrameInterval, func(time.Time) tea.Msg {
		return layoutFrameMsg{}
	}))
}

// rebuild rederives the graph model from the fetched data and the current
// filter and edit state, keeping the last layout's positions.
func (p *GraphPane) rebuild() {
	if p.data == nil {
		p.graph = graph.Model{}
		return
	}
	snap := p.machine.Snapshot()
	selected := ""
	if snap.Source != nil {
		selected = snap.Source.ID
	}

	g := graph.Build(graph.BuildInput{
		Tree:           p.data.Tree,
		Types:          p.data.Types,
		SelectedID:     selected,
		EditMode:       snap.Mode,
		Highlight:      p.filter.Highlighter(),
		ShowEdgeLabels: p.cfg.ShowEdgeLabels,
	})
	g.Nodes = graph.ReusePositions(g.Nodes, p.positions)
	p.graph = g

	if _, ok := g.Node(p.cursorID); !ok {
		p.cursorID = ""
		if len(g.Nodes) > 0 {
			p.cursorID = g.Nodes[0].ID
		}
		p.edgeIdx = -1
	}
	if p.edgeIdx >= len(g.EdgesAt(p.cursorID)) {
		p.edgeIdx = -1
	}
}

// moveCursor jumps to the nearest node in the given direction.
func (p *GraphPane) moveCursor(dir string) {
	if next := nearestInDirection(p.canvas().Layout(), p.cursorID, dir); next != "" {
		p.cursorID = next
		p.edgeIdx = -1
		p.ensureCursorVisible()
	}
}

// cycleEdge steps through the edges touching the cursor node.
func (p *GraphPane) cycleEdge(forward bool) {
	if !p.machine.Active() {
		return
	}
	n := len(p.graph.EdgesAt(p.cursorID))
	if n == 0 {
		p.edgeIdx = -1
		return
	}
	if forward {
		p.edgeIdx = (p.edgeIdx + 1) % n
	} else {
		p.edgeIdx = (p.edgeIdx - 1 + n) % n
	}
}

// selectedEdge returns the edge picked for deletion.
func (p GraphPane) selectedEdge() (graph.Edge, bool) {
	edges := p.graph.EdgesAt(p.cursorID)
	if p.edgeIdx < 0 || p.edgeIdx >= len(edges) {
		return graph.Edge{}, false
	}
	return edges[p.edgeIdx], true
}

// ensureCursorVisible scrolls the viewport so the cursor node is on screen.
func (p *GraphPane) ensureCursorVisible() {
	r, ok := p.canvas().Layout()[p.cursorID]
	if !ok {
		return
	}
	w, h := p.canvasSize()
	if r.X < p.viewport.OffsetX {
		p.viewport.OffsetX = r.X
	} else if r.X+r.W > p.viewport.OffsetX+w {
		p.viewport.OffsetX = r.X + r.W - w
	}
	if r.Y < p.viewport.OffsetY {
		p.viewport.OffsetY = r.Y
	} else if r.Y >= p.viewport.OffsetY+h {
		p.viewport.OffsetY = r.Y - h + 1
	}
	p.viewport.OffsetX = max(0, p.viewport.OffsetX)
	p.viewport.OffsetY = max(0, p.viewport.OffsetY)
}

// showToast sets a transient message and schedules its removal.
func (p *GraphPane) showToast(text string) tea.Cmd {
	p.toastID++
	p.toast = text
	id := p.toastID
	return tea.Tick(p.cfg.ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// optionsToast reports a layout option change, or the failure to persist it.
func (p *GraphPane) optionsToast(text string, err error) tea.Cmd {
	if err != nil {
		return p.showToast("failed to save layout options: " + err.Error())
	}
	return p.showToast(text)
}

func (p GraphPane) spacingText() string {
	opts := p.layout.Options()
	return fmt.Sprintf("spacing: node %.0f rank %.0f (L to apply)", opts.NodeSpacing, opts.RankSpacing)
}

func (p GraphPane) canvas() Canvas {
	edgeID := ""
	if e, ok := p.selectedEdge(); ok {
		edgeID = e.ID
	}
	return Canvas{
		Model:    p.graph,
		Density:  p.density,
		CursorID: p.cursorID,
		EdgeID:   edgeID,
		Viewport: p.viewport,
	}
}

// View renders the graph pane.
func (p GraphPane) View() string {
	if p.width == 0 || p.height == 0 {
		return ""
	}

	sections := p.headerLines()
	width, height := p.canvasSize()

	switch {
	case p.rootID == "":
		sections = append(sections, renderEmpty("Select a task to view its dependencies", width, height))
	case p.errorMsg != "":
		sections = append(sections, renderEmpty("Press r to retry", width, height))
	case p.loading && p.data == nil:
		sections = append(sections, renderEmpty("Loading dependency tree...", width, height))
	default:
		sections = append(sections, p.canvas().Render(width, height))
	}

	if picker := p.renderPicker(width); picker != "" {
		sections = append(sections, picker)
	}
	return strings.Join(sections, "\n")
}

// headerLines renders the status bar and the optional edit, search and
// toast lines above the canvas.
func (p GraphPane) headerLines() []string {
	width := safeWidth(p.width)
	lines := []string{p.renderStatusBar(width), p.renderInfo(width)}

	if line := p.renderEditLine(); line != "" {
		lines = append(lines, styles.Mode.Render(truncateString(line, width)))
	}
	if p.searching {
		p.search.Width = safeWidth(width - 4)
		lines = append(lines, p.search.View())
	} else if p.filter.Query != "" {
		lines = append(lines, styles.Match.Render(truncateString("/ "+p.filter.Query, width)))
	}
	if p.toast != "" {
		lines = append(lines, styles.Toast.Render(truncateString(p.toast, width)))
	}
	return lines
}

// canvasSize returns the cells left for the graph after the header and the
// type picker.
func (p GraphPane) canvasSize() (int, int) {
	h := p.height - len(p.headerLines())
	if p.machine.State() == editmode.TypePickerOpen {
		h -= pickerHeight
	}
	return safeWidth(p.width), safeHeight(h)
}

// renderStatusBar renders the root, loading or error state.
func (p GraphPane) renderStatusBar(width int) string {
	if p.loading {
		elapsed := time.Since(p.startedAt).Round(100 * time.Millisecond)
		status := p.spinner.View() + " Loading " + p.rootID + "... (" + elapsed.String() + " elapsed)"
		return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Width(width).Render(status)
	}
	if p.errorMsg != "" {
		return styles.Error.Width(width).Render("Error: " + truncateString(p.errorMsg, width-7))
	}
	if p.layout.Computing() {
		return styles.Busy.Width(width).Render(p.spinner.View() + " Computing layout...")
	}
	if p.rootID == "" {
		return styles.Footer.Width(width).Render("No root selected")
	}
	root := styles.Root.Render(p.rootID)
	if n, ok := p.graph.Node(p.rootID); ok {
		root += " " + truncate(n.Data.Task.Title, max(0, width-len(p.rootID)-1))
	}
	return root
}

// renderInfo renders layout options, counts and the filter indicator.
func (p GraphPane) renderInfo(width int) string {
	opts := p.layout.Options()
	info := fmt.Sprintf("%s %s | %s | %s, %s",
		opts.Algorithm, opts.Direction, p.density,
		pluralize(len(p.graph.Nodes), "node", "nodes"),
		pluralize(len(p.graph.Edges), "edge", "edges"))
	if p.filter.Active() {
		mc := graph.CountMatches(p.graph.Nodes)
		info += fmt.Sprintf(" | %d of %d match", mc.Matched, mc.Total)
	}
	if s := statusCycle[p.statusIdx]; s != "" {
		info += " | status=" + string(s)
	}
	return styles.Footer.Render(truncateString(info, width))
}

// renderEditLine describes the edit-mode step, or "" outside edit mode.
func (p GraphPane) renderEditLine() string {
	snap := p.machine.Snapshot()
	if !snap.Mode {
		return ""
	}
	line := "EDIT "
	switch {
	case snap.TypePickerOpen:
		line += "choose a dependency type"
	case snap.Source != nil:
		line += "source " + snap.Source.ID + ", enter on another node for the target"
	default:
		line += "enter on a node to pick the source"
	}
	if p.deleting {
		line += " | deleting..."
	} else if e, ok := p.selectedEdge(); ok {
		line += fmt.Sprintf(" | edge %s -> %s (%s), x deletes", e.Source, e.Target, e.Type)
	}
	return line
}

// pickerHeight is the number of lines renderPicker produces.
const pickerHeight = 7

// renderPicker renders the numbered type list while the picker is open.
func (p GraphPane) renderPicker(width int) string {
	snap := p.machine.Snapshot()
	if !snap.TypePickerOpen || snap.Source == nil || snap.Target == nil {
		return ""
	}

	lines := []string{styles.Title.Render(truncateString(
		fmt.Sprintf("%s depends on %s as:", snap.Source.ID, snap.Target.ID), width))}

	types := model.DependencyTypes()
	half := (len(types) + 1) / 2
	colWidth := max(1, width/2)
	for row := 0; row < half; row++ {
		var cols []string
		for _, i := range []int{row, row + half} {
			if i >= len(types) {
				continue
			}
			text := truncateString(fmt.Sprintf("%d %s", i+1, types[i]), colWidth-1)
			cols = append(cols, edgeStyle(types[i]).Width(colWidth).Render(text))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	}

	switch {
	case snap.Pending:
		lines = append(lines, styles.Busy.Render(p.spinner.View()+" submitting..."))
	case snap.Error != "":
		lines = append(lines, styles.Error.Render(truncateString("Error: "+snap.Error, width)))
	default:
		lines = append(lines, "")
	}
	lines = append(lines, styles.Footer.Render("1-8 choose | esc cancel"))
	return strings.Join(lines, "\n")
}

// SetSize updates the pane dimensions.
func (p *GraphPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.viewport.Width, p.viewport.Height = p.canvasSize()
	p.ensureCursorVisible()
}

// SetFocused updates the focus state.
func (p *GraphPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns true if the pane is focused.
func (p GraphPane) IsFocused() bool {
	return p.focused
}

// IsLoading returns true if a fetch is in progress.
func (p GraphPane) IsLoading() bool {
	return p.loading
}

// CapturesInput reports whether plain keys belong to the pane (search box or
// type picker) rather than to global shortcuts.
func (p GraphPane) CapturesInput() bool {
	return p.focused && (p.searching || p.machine.State() == editmode.TypePickerOpen)
}

// RootID returns the task whose graph is shown.
func (p GraphPane) RootID() string {
	return p.rootID
}

// Graph returns the current render model.
func (p GraphPane) Graph() graph.Model {
	return p.graph
}

// Data returns the last fetched graph data, or nil.
func (p GraphPane) Data() *GraphData {
	return p.data
}

// safeHeight ensures height is at least 1.
func safeHeight(h int) int {
	if h < 1 {
		return 1
	}
	return h
}

// safeWidth returns a width that is at least 1 to prevent negative values.
func safeWidth(w int) int {
	if w < 1 {
		return 1
	}
	return w
}
