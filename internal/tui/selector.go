package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/npratt/depviz/internal/model"
	"github.com/npratt/depviz/internal/taskapi"
)

// selectorFetchTimeout bounds one ready + blocked task fetch.
const selectorFetchTimeout = 15 * time.Second

// Selector lists ready and blocked tasks to pick a graph root from.
type Selector struct {
	reader    taskapi.TaskReader
	tasks     []model.Task
	cursor    int
	offset    int
	current   string // root currently shown in the graph pane
	loading   bool
	errorMsg  string
	requestID int
	width     int
	height    int
	focused   bool
}

// selectorResultMsg carries the result of a task list fetch.
type selectorResultMsg struct {
	tasks     []model.Task
	err       error
	requestID int
}

// selectorRefreshMsg asks the selector to reload its list.
type selectorRefreshMsg struct{}

// RootSelectedMsg asks the graph pane to show a task.
type RootSelectedMsg struct {
	ID string
}

// NewSelector creates a Selector reading from reader.
func NewSelector(reader taskapi.TaskReader) Selector {
	return Selector{reader: reader}
}

// Refresh starts reloading the task list.
func (s *Selector) Refresh() tea.Cmd {
	if s.reader == nil {
		return nil
	}
	s.requestID++
	s.loading = true
	reqID, reader := s.requestID, s.reader
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), selectorFetchTimeout)
		defer cancel()
		tasks, err := taskapi.Selectable(ctx, reader)
		return selectorResultMsg{tasks: tasks, err: err, requestID: reqID}
	}
}

// Update handles messages and returns the updated selector and any commands.
func (s Selector) Update(msg tea.Msg) (Selector, tea.Cmd) {
	switch msg := msg.(type) {
	case selectorResultMsg:
		if msg.requestID != s.requestID {
			return s, nil
		}
		s.loading = false
		if msg.err != nil {
			s.errorMsg = "failed to load tasks: " + msg.err.Error()
			return s, nil
		}
		s.errorMsg = ""
		s.tasks = msg.tasks
		s.cursor = min(s.cursor, max(0, len(s.tasks)-1))
		s.clampOffset()
		return s, nil

	case tea.KeyMsg:
		if !s.focused {
			return s, nil
		}
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.tasks)-1 {
				s.cursor++
			}
		case "home", "g":
			s.cursor = 0
		case "end", "G":
			s.cursor = max(0, len(s.tasks)-1)
		case "r":
			cmd := s.Refresh()
			return s, cmd
		case "enter":
			if len(s.tasks) == 0 {
				return s, nil
			}
			id := s.tasks[s.cursor].ID
			s.current = id
			return s, func() tea.Msg { return RootSelectedMsg{ID: id} }
		}
		s.clampOffset()
	}
	return s, nil
}

// clampOffset scrolls the list so the cursor stays visible.
func (s *Selector) clampOffset() {
	rows := s.listRows()
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+rows {
		s.offset = s.cursor - rows + 1
	}
	s.offset = max(0, s.offset)
}

// listRows is the number of task rows that fit under the heading.
func (s Selector) listRows() int {
	return safeHeight(s.height - 1)
}

// View renders the heading and the visible part of the list.
func (s Selector) View() string {
	if s.width == 0 || s.height == 0 {
		return ""
	}

	heading := fmt.Sprintf("Tasks (%d)", len(s.tasks))
	if s.loading {
		heading = "Tasks (loading...)"
	}
	lines := []string{styles.Title.Render(truncateString(heading, s.width))}

	switch {
	case s.errorMsg != "":
		lines = append(lines, styles.Error.Render(wordWrap(truncateString(s.errorMsg, s.width*3), s.width)))
	case len(s.tasks) == 0 && !s.loading:
		lines = append(lines, styles.Footer.Render("No ready or blocked tasks"))
	default:
		end := min(len(s.tasks), s.offset+s.listRows())
		for i := s.offset; i < end; i++ {
			t := s.tasks[i]
			marker := " "
			if t.ID == s.current {
				marker = ">"
			}
			text := truncateString(fmt.Sprintf("%s%s %s %s", marker, statusIcon(t.Status), t.ID, safeString(t.Title)), s.width)
			style := styles.Item
			if i == s.cursor && s.focused {
				style = styles.ItemSelected
			}
			lines = append(lines, style.Render(text))
		}
	}
	return strings.Join(lines, "\n")
}

// SetSize updates the selector dimensions.
func (s *Selector) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.clampOffset()
}

// SetFocused updates the focus state.
func (s *Selector) SetFocused(focused bool) {
	s.focused = focused
}

// SetCurrent marks the task shown in the graph pane.
func (s *Selector) SetCurrent(id string) {
	s.current = id
}

// Tasks returns the loaded tasks.
func (s Selector) Tasks() []model.Task {
	return s.tasks
}
