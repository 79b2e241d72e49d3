// Package editmode implements the click-driven workflow for creating typed
// dependency edges: pick a source node, pick a target node, pick a type.
package editmode

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/npratt/depviz/internal/model"
)

// State is the position of the workflow.
type State int

const (
	Idle State = iota
	NoSelection
	SourceSelected
	TypePickerOpen
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case NoSelection:
		return "no-selection"
	case SourceSelected:
		return "source-selected"
	case TypePickerOpen:
		return "type-picker-open"
	default:
		return "unknown"
	}
}

var (
	ErrNotActive       = errors.New("edit mode is off")
	ErrMutationPending = errors.New("a dependency change is already in flight")
	ErrNoSelection     = errors.New("no source and target selected")
)

// Gateway performs dependency mutations against the task service.
type Gateway interface {
	CreateDependency(ctx context.Context, sourceID, targetID string, depType model.DependencyType) (*model.Dependency, error)
	DeleteDependency(ctx context.Context, sourceID, targetID string, depType model.DependencyType) error
}

// EditState is a copy of the machine's fields for rendering.
type EditState struct {
	Mode           bool
	Source         *model.Task
	Target         *model.Task
	TypePickerOpen bool
	Error          string
	Pending        bool
}

// Machine is safe for use from the UI loop and from the goroutine that
// awaits a mutation.
type Machine struct {
	logger *slog.Logger

	mu      sync.Mutex
	mode    bool
	source  *model.Task
	target  *model.Task
	picker  bool
	errMsg  string
	pending bool
}

// New returns a machine in the Idle state. A nil logger discards output.
func New(logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Machine{logger: logger}
}

// Toggle flips edit mode and returns the new mode.
func (m *Machine) Toggle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setModeLocked(!m.mode)
	return m.mode
}

// SetMode turns edit mode on or off. Turning it off clears every selection.
func (m *Machine) SetMode(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setModeLocked(on)
}

func (m *Machine) setModeLocked(on bool) {
	if m.mode == on {
		return
	}
	m.mode = on
	m.clearLocked()
	m.logger.Debug("edit mode changed", "on", on)
}

func (m *Machine) clearLocked() {
	m.source = nil
	m.target = nil
	m.picker = false
	m.errMsg = ""
}

// Click feeds a node click into the machine. It returns false when the click
// was ignored: edit mode is off, the picker is already open, or a mutation
// is pending.
func (m *Machine) Click(task model.Task) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.mode || m.pending {
		return false
	}

	switch m.stateLocked() {
	case NoSelection:
		t := task
		m.source = &t
		return true
	case SourceSelected:
		if m.source.ID == task.ID {
			m.source = nil
			return true
		}
		t := task
		m.target = &t
		m.picker = true
		m.errMsg = ""
		return true
	default:
		return false
	}
}

// Cancel closes the picker and drops both selections. Edit mode stays on.
func (m *Machine) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.mode || m.pending {
		return
	}
	m.clearLocked()
}

// SelectType submits the selected pair with depType. On success the machine
// returns to NoSelection; on failure it stays in TypePickerOpen with Error
// set so the user can retry or cancel.
func (m *Machine) SelectType(ctx context.Context, gw Gateway, depType model.DependencyType) error {
	m.mu.Lock()
	if !m.mode {
		m.mu.Unlock()
		return ErrNotActive
	}
	if m.pending {
		m.mu.Unlock()
		return ErrMutationPending
	}
	if m.stateLocked() != TypePickerOpen {
		m.mu.Unlock()
		return ErrNoSelection
	}
	sourceID, targetID := m.source.ID, m.target.ID
	if err := model.ValidateTriple(sourceID, targetID, depType); err != nil {
		m.errMsg = err.Error()
		m.mu.Unlock()
		return err
	}
	m.pending = true
	m.errMsg = ""
	m.mu.Unlock()

	_, err := gw.CreateDependency(ctx, sourceID, targetID, depType)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = false
	if err != nil {
		m.logger.Warn("create dependency failed",
			"source", sourceID, "target", targetID, "type", depType, "error", err)
		// Toggled off while in flight: nothing left to annotate.
		if m.mode && m.picker {
			m.errMsg = err.Error()
		}
		return err
	}
	m.logger.Info("dependency created", "source", sourceID, "target", targetID, "type", depType)
	m.clearLocked()
	return nil
}

// DeleteEdge submits a delete for the given triple. The workflow state is
// not changed; callers surface the returned error themselves.
func (m *Machine) DeleteEdge(ctx context.Context, gw Gateway, sourceID, targetID string, depType model.DependencyType) error {
	m.mu.Lock()
	mode := m.mode
	m.mu.Unlock()
	if !mode {
		return ErrNotActive
	}

	if err := gw.DeleteDependency(ctx, sourceID, targetID, depType); err != nil {
		m.logger.Warn("delete dependency failed",
			"source", sourceID, "target", targetID, "type", depType, "error", err)
		return err
	}
	m.logger.Info("dependency deleted", "source", sourceID, "target", targetID, "type", depType)
	return nil
}

// State returns the current workflow state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked()
}

func (m *Machine) stateLocked() State {
	switch {
	case !m.mode:
		return Idle
	case m.picker:
		return TypePickerOpen
	case m.source != nil:
		return SourceSelected
	default:
		return NoSelection
	}
}

// SourceID returns the selected source task id, or "".
func (m *Machine) SourceID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.source == nil {
		return ""
	}
	return m.source.ID
}

// Active reports whether edit mode is on.
func (m *Machine) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// Snapshot copies the current fields.
func (m *Machine) Snapshot() EditState {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := EditState{
		Mode:           m.mode,
		TypePickerOpen: m.picker,
		Error:          m.errMsg,
		Pending:        m.pending,
	}
	if m.source != nil {
		t := *m.source
		s.Source = &t
	}
	if m.target != nil {
		t := *m.target
		s.Target = &t
	}
	return s
}
