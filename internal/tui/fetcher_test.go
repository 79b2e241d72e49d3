package tui

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/npratt/depviz/internal/model"
)

func TestTreeFetcher_Fetch(t *testing.T) {
	client := seededClient()
	fetcher := NewTreeFetcher(client, nil)

	data, err := fetcher.Fetch(context.Background(), "T1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if data.Tree.Element.ID != "T1" {
		t.Errorf("expected root T1, got %s", data.Tree.Element.ID)
	}
	if data.List == nil {
		t.Fatal("expected dependency list")
	}
	if got := data.Types.Types("T1", "T2"); !slices.Equal(got, []model.DependencyType{model.DepBlocks}) {
		t.Errorf("T1->T2 types = %v, want [blocks]", got)
	}
	if got := data.Types.Types("T3", "T1"); !slices.Equal(got, []model.DependencyType{model.DepRelatesTo}) {
		t.Errorf("T3->T1 types = %v, want [relates-to]", got)
	}
	if calls := client.GetTreeCalls(); len(calls) != 1 || calls[0] != "T1" {
		t.Errorf("tree calls = %v, want [T1]", calls)
	}
}

func TestTreeFetcher_ListFailureIsNotFatal(t *testing.T) {
	client := seededClient()
	client.DependenciesError = errors.New("list endpoint down")

	data, err := NewTreeFetcher(client, nil).Fetch(context.Background(), "T1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.List != nil {
		t.Error("expected nil list after list failure")
	}
	if data.Types == nil {
		t.Error("expected an empty lookup, got nil")
	}
	if len(data.Types.Types("T1", "T2")) != 0 {
		t.Error("expected no types without a list")
	}
	if data.Tree == nil || len(data.Tree.Dependencies) != 1 {
		t.Error("expected the tree to load")
	}
}

func TestTreeFetcher_TreeFailureIsFatal(t *testing.T) {
	client := seededClient()
	client.TreeErrors["T1"] = errors.New("connection refused")

	data, err := NewTreeFetcher(client, nil).Fetch(context.Background(), "T1")
	if err == nil {
		t.Fatal("expected error")
	}
	if data != nil {
		t.Error("expected nil data on error")
	}
	if !strings.Contains(err.Error(), "failed to load dependency tree") {
		t.Errorf("unexpected error: %v", err)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}

func TestTreeFetcher_UnknownRoot(t *testing.T) {
	client := seededClient()

	_, err := NewTreeFetcher(client, nil).Fetch(context.Background(), "NOPE")
	if err == nil {
		t.Fatal("expected error for unknown root")
	}
}
