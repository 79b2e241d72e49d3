package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model. It handles all message types and updates the model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updatePaneSizes()
		return m, nil

	case RootSelectedMsg:
		m.logger.Info("root selected", "root", msg.ID)
		m.selector.SetCurrent(msg.ID)
		m.setFocus(FocusCanvas)
		cmd := m.pane.Load(msg.ID)
		return m, cmd

	case GraphOpenModalMsg:
		cmd := m.modal.Open(msg.Task)
		return m, cmd

	case modalFetchResultMsg:
		return m, m.modal.Update(msg)

	case selectorRefreshMsg:
		cmd := m.selector.Refresh()
		return m, cmd

	case selectorResultMsg:
		var cmd tea.Cmd
		m.selector, cmd = m.selector.Update(msg)
		return m, cmd

	default:
		// Fetch results, frames, toasts and spinner ticks belong to the pane
		var cmd tea.Cmd
		m.pane, cmd = m.pane.Update(msg)
		return m, cmd
	}
}

// handleKey processes keyboard input and returns the updated model and command.
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m.quit()
	}

	if m.modal.IsOpen() {
		return m, m.modal.Update(msg)
	}

	// Search box and type picker take every other key
	if m.pane.CapturesInput() {
		var cmd tea.Cmd
		m.pane, cmd = m.pane.Update(msg)
		return m, cmd
	}

	switch key {
	case "q":
		return m.quit()
	case "tab":
		m.toggleFocus()
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == FocusSelector {
		m.selector, cmd = m.selector.Update(msg)
		return m, cmd
	}

	m.pane, cmd = m.pane.Update(msg)
	// The pane drops focus on esc when it has nothing left to clear
	if !m.pane.IsFocused() {
		m.setFocus(FocusSelector)
	}
	return m, cmd
}

// quit runs the quit callback and stops the program.
func (m model) quit() (tea.Model, tea.Cmd) {
	if m.onQuit != nil {
		m.onQuit()
	}
	return m, tea.Quit
}
