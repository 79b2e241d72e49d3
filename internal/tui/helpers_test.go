package tui

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/npratt/depviz/internal/config"
	"github.com/npratt/depviz/internal/editmode"
	"github.com/npratt/depviz/internal/layout"
	"github.com/npratt/depviz/internal/taskapi"
	"github.com/npratt/depviz/internal/testutil"
)

// seededClient returns a mock with a three-task graph:
// T1 depends on T2 (blocks) and T3 depends on T1 (relates-to).
func seededClient() *taskapi.MockClient {
	return testutil.SeededClient()
}

func testGraphConfig() config.GraphConfig {
	return config.GraphConfig{
		Density:        "standard",
		ShowEdgeLabels: true,
		ToastDuration:  10 * time.Millisecond,
		FrameInterval:  0,
	}
}

// newTestPane creates a focused, sized pane over client with in-memory
// layout options.
func newTestPane(client taskapi.Client) GraphPane {
	controller := layout.NewController(layout.NewMemoryStore())
	p := NewGraphPane(client, testGraphConfig(), controller, editmode.New(nil), nil)
	p.SetSize(100, 30)
	p.SetFocused(true)
	return p
}

// loadedPane returns a pane showing the graph of rootID with its first
// layout applied.
func loadedPane(t *testing.T, client taskapi.Client, rootID string) GraphPane {
	t.Helper()
	p := newTestPane(client)
	cmd := p.Load(rootID)
	p = settle(t, p, cmd)
	if p.Data() == nil {
		t.Fatalf("pane did not load %s: %q", rootID, p.errorMsg)
	}
	return p
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// settle feeds the messages produced by cmd back into the pane until no
// pane work is left. Spinner ticks and toast expiries are dropped so the
// loop ends and toasts stay visible.
func settle(t *testing.T, p GraphPane, cmd tea.Cmd) GraphPane {
	t.Helper()
	queue := collect(cmd)
	for i := 0; len(queue) > 0; i++ {
		if i > 50 {
			t.Fatal("pane did not settle")
		}
		msg := queue[0]
		queue = queue[1:]
		switch msg.(type) {
		case spinner.TickMsg, toastExpiredMsg, GraphOpenModalMsg:
			continue
		}
		var next tea.Cmd
		p, next = p.Update(msg)
		queue = append(queue, collect(next)...)
	}
	return p
}

// keyMsg builds a key press for the given key name.
func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

// press sends one key to the pane and returns its command unexecuted.
func press(p GraphPane, key string) (GraphPane, tea.Cmd) {
	return p.Update(keyMsg(key))
}
