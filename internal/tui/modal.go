package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/npratt/depviz/internal/model"
	"github.com/npratt/depviz/internal/taskapi"
)

// DetailModal displays a task and its typed dependencies in a modal overlay.
type DetailModal struct {
	task      *model.Task
	list      *model.DependencyList
	reader    taskapi.DependencyReader
	loading   bool
	errorMsg  string
	scrollPos int
	open      bool
	requestID int // For staleness detection
}

// modalFetchResultMsg carries the result of a dependency list fetch.
type modalFetchResultMsg struct {
	list      *model.DependencyList
	err       error
	requestID int
}

// NewDetailModal creates a new DetailModal.
func NewDetailModal(reader taskapi.DependencyReader) *DetailModal {
	return &DetailModal{
		reader: reader,
	}
}

// Open opens the modal for task and starts fetching its dependency list.
func (m *DetailModal) Open(task model.Task) tea.Cmd {
	m.open = true
	m.task = &task
	m.list = nil
	m.loading = true
	m.errorMsg = ""
	m.scrollPos = 0
	m.requestID++

	if m.reader == nil {
		m.loading = false
		return nil
	}

	reqID, reader, id := m.requestID, m.reader, task.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		list, err := reader.Dependencies(ctx, id)
		return modalFetchResultMsg{list: list, err: err, requestID: reqID}
	}
}

// Close closes the modal.
func (m *DetailModal) Close() {
	m.open = false
	m.task = nil
	m.list = nil
	m.loading = false
	m.errorMsg = ""
	m.scrollPos = 0
}

// IsOpen returns true if the modal is open.
func (m *DetailModal) IsOpen() bool {
	return m.open
}

// Update handles messages for the modal.
func (m *DetailModal) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case modalFetchResultMsg:
		// Drop stale results
		if msg.requestID != m.requestID {
			return nil
		}
		m.loading = false
		if msg.err != nil {
			m.errorMsg = msg.err.Error()
		} else {
			m.errorMsg = ""
			m.list = msg.list
		}
		return nil
	}

	return nil
}

// handleKey processes keyboard input for the modal.
func (m *DetailModal) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "enter", "q":
		m.Close()
	case "up", "k":
		if m.scrollPos > 0 {
			m.scrollPos--
		}
	case "down", "j":
		// Capped in View based on content height
		m.scrollPos++
	case "home", "g":
		m.scrollPos = 0
	case "end", "G":
		m.scrollPos = 9999
	}
	return nil
}

// View renders the modal.
func (m *DetailModal) View(parentWidth, parentHeight int) string {
	if !m.open || m.task == nil {
		return ""
	}

	// ~90% of parent
	modalWidth := max(40, parentWidth*90/100)
	modalHeight := max(10, parentHeight*90/100)
	innerWidth := modalWidth - 4

	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		Width(innerWidth)
	content.WriteString(titleStyle.Render(m.task.ID))
	content.WriteString("\n")

	metaStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	meta := fmt.Sprintf("Status: %s | Priority: %s | Complexity: %d",
		m.task.Status, priorityLabel(m.task.Priority), m.task.Complexity)
	if m.task.TaskType != "" {
		meta += " | Type: " + m.task.TaskType
	}
	content.WriteString(metaStyle.Render(meta))
	content.WriteString("\n\n")

	content.WriteString(m.renderTask(innerWidth))

	switch {
	case m.loading:
		loadingStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Italic(true)
		content.WriteString(loadingStyle.Render("Loading dependencies..."))
		content.WriteString("\n")
	case m.errorMsg != "":
		content.WriteString(styles.Error.Render("Error: " + m.errorMsg))
		content.WriteString("\n")
	case m.list != nil:
		content.WriteString(m.renderDependencies())
	}

	lines := strings.Split(content.String(), "\n")

	// Reserve lines for border/footer
	visibleHeight := max(3, modalHeight-4)
	maxScroll := max(0, len(lines)-visibleHeight)
	if m.scrollPos > maxScroll {
		m.scrollPos = maxScroll
	}
	end := min(len(lines), m.scrollPos+visibleHeight)
	visibleContent := strings.Join(lines[m.scrollPos:end], "\n")

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)
	scrollInfo := ""
	if maxScroll > 0 {
		scrollInfo = fmt.Sprintf(" | Line %d/%d", m.scrollPos+1, len(lines))
	}
	footer := footerStyle.Render("[Enter/Esc] close | [j/k] scroll" + scrollInfo)

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("205")).
		Padding(1, 2).
		Width(modalWidth).
		Height(modalHeight)

	return modalStyle.Render(visibleContent + "\n\n" + footer)
}

// renderTask renders the task fields.
func (m *DetailModal) renderTask(width int) string {
	var sb strings.Builder

	bold := lipgloss.NewStyle().Bold(true)
	sb.WriteString(bold.Render("Title:"))
	sb.WriteString("\n")
	sb.WriteString(wordWrap(safeString(m.task.Title), width))
	sb.WriteString("\n\n")

	if m.task.Assignee != "" {
		sb.WriteString(bold.Render("Assignee: "))
		sb.WriteString(safeString(m.task.Assignee))
		sb.WriteString("\n")
	}
	if len(m.task.Tags) > 0 {
		sb.WriteString(bold.Render("Tags: "))
		sb.WriteString(strings.Join(m.task.Tags, ", "))
		sb.WriteString("\n")
	}
	if m.task.Assignee != "" || len(m.task.Tags) > 0 {
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderDependencies lists both edge directions with their types.
func (m *DetailModal) renderDependencies() string {
	var sb strings.Builder
	bold := lipgloss.NewStyle().Bold(true)

	section := func(title string, deps []model.Dependency, other func(model.Dependency) string) {
		if len(deps) == 0 {
			return
		}
		sb.WriteString(bold.Render(title))
		sb.WriteString("\n")
		for _, d := range deps {
			sb.WriteString(fmt.Sprintf("  - %s ", other(d)))
			sb.WriteString(edgeStyle(d.Type).Render(string(d.Type)))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	section("Depends on:", m.list.Dependencies, func(d model.Dependency) string { return d.TargetID })
	section("Depended on by:", m.list.Dependents, func(d model.Dependency) string { return d.SourceID })

	if len(m.list.Dependencies) == 0 && len(m.list.Dependents) == 0 {
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("(No dependencies)"))
		sb.WriteString("\n")
	}
	return sb.String()
}
