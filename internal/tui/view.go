package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const (
	minWidth  = 60
	minHeight = 15
)

// View implements tea.Model. This renders the full TUI display.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Handle too small terminal
	if m.width < minWidth || m.height < minHeight {
		return m.renderTooSmall()
	}

	if m.modal.IsOpen() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.modal.View(m.width, m.height))
	}

	bodyHeight := m.height - chromeRows
	sw := m.selectorWidth()

	selector := m.containerStyleForFocus(FocusSelector).
		Width(safeWidth(sw - 2)).
		Height(safeHeight(bodyHeight - 2)).
		Render(m.selector.View())
	pane := m.containerStyleForFocus(FocusCanvas).
		Width(safeWidth(m.width - sw - 2)).
		Height(safeHeight(bodyHeight - 2)).
		Render(m.pane.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, selector, pane)
	view := lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, view)
}

// containerStyleForFocus returns the border style for a column.
func (m model) containerStyleForFocus(area FocusArea) lipgloss.Style {
	if m.focus == area {
		return styles.FocusedBorder
	}
	return styles.UnfocusedBorder
}

// renderHeader renders the title line.
func (m model) renderHeader() string {
	header := styles.Title.Render("depviz")
	if root := m.pane.RootID(); root != "" {
		header += styles.Footer.Render(" | root ") + styles.Root.Render(root)
	}
	if m.pane.machine.Active() {
		header += " " + styles.Mode.Render("[EDIT]")
	}
	return header
}

// renderFooter renders keyboard shortcuts help text.
func (m model) renderFooter() string {
	var help string
	switch {
	case m.pane.CapturesInput() && m.pane.searching:
		help = "type to filter  enter: keep  esc: clear"
	case m.pane.CapturesInput():
		help = "1-8: dependency type  esc: cancel  e: leave edit mode"
	case m.focus == FocusSelector:
		help = "↑/↓: move  enter: show graph  r: reload  tab: graph  q: quit"
	case m.pane.machine.Active():
		help = "arrows: move  enter: select  [/]: edge  x: delete edge  esc: cancel  e: exit edit  q: quit"
	default:
		help = "arrows: move  enter: details  e: edit  /: search  s: status  L: layout  a/d: algo/dir  +/-: spacing  v: density  r: reload  tab  q"
	}
	return styles.Footer.Render(truncateString(help, m.width))
}

// renderTooSmall renders a message when the terminal is too small.
func (m model) renderTooSmall() string {
	msg := fmt.Sprintf("Terminal too small (%dx%d), need at least %dx%d", m.width, m.height, minWidth, minHeight)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}
