package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRunSimple_ListsTasksWithoutRoot(t *testing.T) {
	var buf bytes.Buffer
	ui := New(seededClient(), WithOutput(&buf), WithGraphConfig(testGraphConfig()))

	if err := ui.runSimple(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "o T1 Root task\no T2 Upstream work\nx T3 Downstream fix\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunSimple_RendersRootGraph(t *testing.T) {
	var buf bytes.Buffer
	ui := New(seededClient(),
		WithOutput(&buf),
		WithGraphConfig(testGraphConfig()),
		WithInitialRoot("T1"),
	)

	if err := ui.runSimple(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := stripANSI(buf.String())
	for _, want := range []string{
		"[T1 o Root task]",
		"T2 o Upstream ...",
		"T3 x Downstrea...",
		"T1 -> T2 (blocks)\n",
		"T3 -> T1 (relates-to)\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunSimple_TreeError(t *testing.T) {
	client := seededClient()
	client.TreeErrors["T1"] = errors.New("connection refused")

	var buf bytes.Buffer
	ui := New(client, WithOutput(&buf), WithInitialRoot("T1"))

	err := ui.runSimple(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to load dependency tree") {
		t.Errorf("err = %v", err)
	}
}

func TestRunSimple_TaskListError(t *testing.T) {
	client := seededClient()
	client.BlockedError = errors.New("boom")

	var buf bytes.Buffer
	err := New(client, WithOutput(&buf)).runSimple(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to load tasks: boom") {
		t.Errorf("err = %v", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	ui := New(seededClient())
	if ui.controller == nil || ui.machine == nil || ui.logger == nil || ui.out == nil {
		t.Error("expected defaults for every collaborator")
	}
	if ui.cfg.Density != "standard" {
		t.Errorf("density = %q, want standard", ui.cfg.Density)
	}
}
