// Package tui provides the terminal UI for browsing and editing task
// dependency graphs using bubbletea.
package tui

import (
	"github.com/npratt/depviz/internal/model"
)

// Viewport represents the visible area of the graph.
type Viewport struct {
	OffsetX int // Horizontal scroll offset
	OffsetY int // Vertical scroll offset
	Width   int // Visible width in characters
	Height  int // Visible height in rows
}

// Rect is a node's cell position and size on the canvas.
type Rect struct {
	X int // Left position
	Y int // Top position
	W int // Width
	H int // Height
}

// Center returns the cell at the middle of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Contains reports whether the cell lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// FocusArea is the part of the screen receiving keys.
type FocusArea int

const (
	// FocusSelector is the root task list (default).
	FocusSelector FocusArea = iota
	// FocusCanvas is the graph.
	FocusCanvas
)

// String returns a string representation of the FocusArea.
func (f FocusArea) String() string {
	switch f {
	case FocusSelector:
		return "selector"
	case FocusCanvas:
		return "canvas"
	default:
		return "unknown"
	}
}

// NodeDensity represents the level of detail shown for nodes.
type NodeDensity int

const (
	// DensityCompact shows minimal info (ID only).
	DensityCompact NodeDensity = iota
	// DensityStandard shows ID and truncated title.
	DensityStandard
	// DensityDetailed shows ID, title, status, and priority.
	DensityDetailed
)

// String returns a string representation of the NodeDensity.
func (d NodeDensity) String() string {
	switch d {
	case DensityCompact:
		return "compact"
	case DensityStandard:
		return "standard"
	case DensityDetailed:
		return "detailed"
	default:
		return "unknown"
	}
}

// Next returns the following density level, wrapping around.
func (d NodeDensity) Next() NodeDensity {
	switch d {
	case DensityCompact:
		return DensityStandard
	case DensityStandard:
		return DensityDetailed
	default:
		return DensityCompact
	}
}

// ParseDensity converts a string to NodeDensity.
func ParseDensity(s string) NodeDensity {
	switch s {
	case "compact":
		return DensityCompact
	case "detailed":
		return DensityDetailed
	default:
		return DensityStandard
	}
}

// statusCycle is the order in which the "s" key steps through single-status
// filters. The empty status means no filter.
var statusCycle = append([]model.Status{""}, model.Statuses()...)
