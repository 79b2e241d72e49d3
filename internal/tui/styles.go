package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/npratt/depviz/internal/model"
)

// styles contains all lipgloss styles used by the TUI.
var styles = struct {
	// Layout styles
	Container lipgloss.Style
	Divider   lipgloss.Style

	// Header styles
	Title lipgloss.Style
	Root  lipgloss.Style
	Mode  lipgloss.Style
	Match lipgloss.Style

	// Footer style
	Footer lipgloss.Style

	// Messages
	Error lipgloss.Style
	Toast lipgloss.Style
	Busy  lipgloss.Style

	// Selector list
	Item         lipgloss.Style
	ItemSelected lipgloss.Style

	// Focus indicators
	FocusedBorder   lipgloss.Style
	UnfocusedBorder lipgloss.Style
}{
	Container: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")),

	Divider: lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212")),

	Root: lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")),

	Mode: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("214")),

	Match: lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")),

	Footer: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")),

	Toast: lipgloss.NewStyle().
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("238")),

	Busy: lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")),

	Item: lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")),

	ItemSelected: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		Background(lipgloss.Color("236")),

	FocusedBorder: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")), // Bright blue for focused

	UnfocusedBorder: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")), // Dimmed gray for unfocused
}

// graphStyles contains styles specific to graph rendering.
var graphStyles = struct {
	Node       lipgloss.Style // Highlighted, no emphasis
	NodeDimmed lipgloss.Style // Filtered out
	NodeMatch  lipgloss.Style // Search match
	NodeRoot   lipgloss.Style // Tree root
	NodeSource lipgloss.Style // Edit-mode source
}{
	Node: lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")),

	NodeDimmed: lipgloss.NewStyle().
		Faint(true).
		Foreground(lipgloss.Color("240")),

	NodeMatch: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("220")),

	NodeRoot: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")),

	NodeSource: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("82")).
		Background(lipgloss.Color("22")),
}

// edgeStyle colours an edge by its dependency type.
func edgeStyle(t model.DependencyType) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info().Color))
}
