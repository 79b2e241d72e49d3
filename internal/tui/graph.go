package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/npratt/depviz/internal/graph"
	"github.com/npratt/depviz/internal/model"
)

// World units per terminal cell. Layouts place 200x100 cards, so a rank of
// the hierarchical layout ends up a handful of rows apart.
const (
	unitsPerCol = 10.0
	unitsPerRow = 50.0
)

// Canvas paints a positioned graph model into a fixed-size character grid.
type Canvas struct {
	Model    graph.Model
	Density  NodeDensity
	CursorID string // node under the keyboard cursor
	EdgeID   string // edge picked for deletion, "" when none
	Viewport Viewport
}

// Layout projects every node to its cell rectangle. Rectangles are in canvas
// coordinates before the viewport offset is applied.
func (c Canvas) Layout() map[string]Rect {
	rects := make(map[string]Rect, len(c.Model.Nodes))
	if len(c.Model.Nodes) == 0 {
		return rects
	}
	origin, _ := c.Model.Bounds()
	for _, n := range c.Model.Nodes {
		label := c.label(n)
		x, y := 0, 0
		if n.Position.IsFinite() {
			x = int(math.Round((n.Position.X - origin.X) / unitsPerCol))
			y = int(math.Round((n.Position.Y - origin.Y) / unitsPerRow))
		}
		rects[n.ID] = Rect{X: x, Y: y, W: lipgloss.Width(label), H: 1}
	}
	return rects
}

// Render draws edges first so node labels paint on top.
func (c Canvas) Render(width, height int) string {
	if len(c.Model.Nodes) == 0 {
		return renderEmpty("No dependencies to display", width, height)
	}

	grid := newGrid(width, height)
	rects := c.Layout()

	for _, e := range c.Model.Edges {
		from, okFrom := rects[e.Source]
		to, okTo := rects[e.Target]
		if !okFrom || !okTo {
			continue
		}
		c.renderEdge(grid, e, from, to)
	}

	for _, n := range c.Model.Nodes {
		r := rects[n.ID]
		grid.writeString(r.X-c.Viewport.OffsetX, r.Y-c.Viewport.OffsetY, c.label(n), c.nodeStyle(n))
	}

	return grid.String()
}

// label formats a node for the current density.
func (c Canvas) label(n graph.Node) string {
	t := n.Data.Task
	icon := statusIcon(t.Status)
	var text string
	switch c.Density {
	case DensityCompact:
		text = fmt.Sprintf("%s %s", t.ID, icon)
	case DensityDetailed:
		text = fmt.Sprintf("%s %s %s %s", t.ID, icon, priorityLabel(t.Priority), truncate(t.Title, 16))
	default:
		text = fmt.Sprintf("%s %s %s", t.ID, icon, truncate(t.Title, 12))
	}
	if n.Data.IsRoot {
		text = "[" + text + "]"
	}
	if n.Data.IsSelected {
		text = "*" + text
	}
	return text
}

// nodeStyle picks the style for a node from its filter and selection flags.
func (c Canvas) nodeStyle(n graph.Node) lipgloss.Style {
	style := graphStyles.Node
	switch {
	case !n.Data.IsHighlighted && !n.Data.IsSearchMatch:
		style = graphStyles.NodeDimmed
	case n.Data.IsSearchMatch:
		style = graphStyles.NodeMatch
	case n.Data.IsRoot:
		style = graphStyles.NodeRoot
	}
	if n.Data.IsSelected {
		style = graphStyles.NodeSource
	}
	if n.ID == c.CursorID {
		style = style.Reverse(true)
	}
	return style
}

// renderEdge draws a straight line between two node labels with an arrow
// head next to the target and, when enabled, the type name at the midpoint.
func (c Canvas) renderEdge(grid *charGrid, e graph.Edge, from, to Rect) {
	x0, y0 := from.Center()
	x1, y1 := to.Center()
	x0 -= c.Viewport.OffsetX
	x1 -= c.Viewport.OffsetX
	y0 -= c.Viewport.OffsetY
	y1 -= c.Viewport.OffsetY

	style := edgeStyle(e.Type)
	if e.ID == c.EdgeID {
		style = style.Bold(true).Reverse(true)
	}

	points := linePoints(x0, y0, x1, y1)
	// Drop the cells under either label.
	var path [][2]int
	for _, p := range points {
		if from.Contains(p[0]+c.Viewport.OffsetX, p[1]+c.Viewport.OffsetY) ||
			to.Contains(p[0]+c.Viewport.OffsetX, p[1]+c.Viewport.OffsetY) {
			continue
		}
		path = append(path, p)
	}
	if len(path) == 0 {
		return
	}

	ch := lineRune(x1-x0, y1-y0)
	for _, p := range path[:len(path)-1] {
		grid.writeRune(p[0], p[1], ch, style)
	}
	last := path[len(path)-1]
	grid.writeRune(last[0], last[1], arrowRune(x1-x0, y1-y0), style)

	if e.ShowLabel && len(path) > len(e.Type)+2 {
		mid := path[len(path)/2]
		grid.writeString(mid[0]-len(e.Type)/2, mid[1], string(e.Type), style)
	}
}

// linePoints returns the cells on the segment from (x0,y0) to (x1,y1)
// using Bresenham's algorithm.
func linePoints(x0, y0, x1, y1 int) [][2]int {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	var points [][2]int
	for {
		points = append(points, [2]int{x0, y0})
		if x0 == x1 && y0 == y1 {
			return points
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// lineRune picks a line character for the slope of the segment.
func lineRune(dx, dy int) rune {
	switch {
	case dy == 0:
		return '─'
	case dx == 0:
		return '│'
	case abs(dx) > 3*abs(dy):
		return '─'
	case abs(dy)*3 > abs(dx)*2:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// arrowRune points along the dominant axis of the segment.
func arrowRune(dx, dy int) rune {
	// Rows are roughly twice as tall as columns are wide.
	if abs(dx) >= 2*abs(dy) {
		if dx < 0 {
			return '◀'
		}
		return '▶'
	}
	if dy < 0 {
		return '▲'
	}
	return '▼'
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// nearestInDirection returns the node closest to from in the given
// direction ("up", "down", "left", "right"), or "" when there is none.
// Distance along the movement axis counts once and the cross axis twice.
func nearestInDirection(rects map[string]Rect, from, dir string) string {
	origin, ok := rects[from]
	if !ok {
		return ""
	}
	ox, oy := origin.Center()

	ids := make([]string, 0, len(rects))
	for id := range rects {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	best, bestScore := "", math.MaxInt
	for _, id := range ids {
		if id == from {
			continue
		}
		x, y := rects[id].Center()
		dx, dy := x-ox, y-oy
		var primary, cross int
		switch dir {
		case "up":
			primary, cross = -dy, dx
		case "down":
			primary, cross = dy, dx
		case "left":
			primary, cross = -dx, dy
		case "right":
			primary, cross = dx, dy
		default:
			return ""
		}
		if primary <= 0 {
			continue
		}
		score := primary + 2*abs(cross)
		if score < bestScore {
			best, bestScore = id, score
		}
	}
	return best
}

// renderEmpty renders a placeholder centered in the area.
func renderEmpty(msg string, width, height int) string {
	if width < len(msg) {
		msg = "Empty"
	}
	padLeft := max(0, (width-len(msg))/2)
	line := strings.Repeat(" ", padLeft) + msg
	if len(line) < width {
		line += strings.Repeat(" ", width-len(line))
	}
	lines := make([]string, height)
	for y := range lines {
		if y == height/2 {
			lines[y] = line
		} else {
			lines[y] = strings.Repeat(" ", width)
		}
	}
	return strings.Join(lines, "\n")
}

// statusIcon returns a one-character status marker.
func statusIcon(status model.Status) string {
	switch status {
	case model.StatusOpen:
		return "o"
	case model.StatusInProgress:
		return "*"
	case model.StatusBlocked:
		return "x"
	case model.StatusCompleted:
		return "."
	case model.StatusCancelled:
		return "-"
	default:
		return "?"
	}
}

// priorityLabel returns a short priority label (P1-P5).
func priorityLabel(priority int) string {
	if priority < 1 || priority > 5 {
		return "P?"
	}
	return fmt.Sprintf("P%d", priority)
}

// charGrid is a 2D character grid for rendering. Each cell carries an index
// into the grid's style palette; 0 means unstyled.
type charGrid struct {
	width   int
	height  int
	cells   [][]rune
	styles  [][]int
	palette []lipgloss.Style
}

// newGrid creates a new character grid filled with spaces.
func newGrid(width, height int) *charGrid {
	cells := make([][]rune, height)
	styles := make([][]int, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]rune, width)
		styles[y] = make([]int, width)
		for x := 0; x < width; x++ {
			cells[y][x] = ' '
		}
	}
	return &charGrid{
		width:   width,
		height:  height,
		cells:   cells,
		styles:  styles,
		palette: []lipgloss.Style{lipgloss.NewStyle()},
	}
}

// writeRune writes a single rune at the given position.
func (g *charGrid) writeRune(x, y int, r rune, style lipgloss.Style) {
	if x >= 0 && x < g.width && y >= 0 && y < g.height {
		g.cells[y][x] = r
		g.styles[y][x] = g.styleIndex(style)
	}
}

// writeString writes a string starting at the given position.
func (g *charGrid) writeString(x, y int, s string, style lipgloss.Style) {
	i := 0
	for _, r := range s {
		g.writeRune(x+i, y, r, style)
		i++
	}
}

// styleIndex adds style to the palette on first use. Styles are told apart
// by how they render a sample character.
func (g *charGrid) styleIndex(style lipgloss.Style) int {
	sample := style.Render("x")
	for i, s := range g.palette {
		if s.Render("x") == sample {
			return i
		}
	}
	g.palette = append(g.palette, style)
	return len(g.palette) - 1
}

// String converts the grid to a string, styling runs of equal cells at once.
func (g *charGrid) String() string {
	lines := make([]string, 0, g.height)
	for y, row := range g.cells {
		var sb strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && g.styles[y][x] == g.styles[y][start] {
				continue
			}
			run := string(row[start:x])
			if idx := g.styles[y][start]; idx != 0 {
				run = g.palette[idx].Render(run)
			}
			sb.WriteString(run)
			start = x
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

// Plain returns the grid characters without styling.
func (g *charGrid) Plain() string {
	lines := make([]string, 0, g.height)
	for _, row := range g.cells {
		lines = append(lines, string(row))
	}
	return strings.Join(lines, "\n")
}
