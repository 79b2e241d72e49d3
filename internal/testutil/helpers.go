package testutil

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/npratt/depviz/internal/model"
	"github.com/npratt/depviz/internal/taskapi"
)

// WriteFile writes content to a file in the given directory.
// It creates parent directories as needed and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ReadFile reads a file and returns its contents.
// It fails the test if the file cannot be read.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// FileExists checks if a file exists.
func FileExists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	return err == nil
}

// AssertCreateCalled verifies that a create request was sent for the triple.
func AssertCreateCalled(t *testing.T, mock *taskapi.MockClient, sourceID, targetID string, depType model.DependencyType) {
	t.Helper()
	want := taskapi.DependencyCall{SourceID: sourceID, TargetID: targetID, Type: depType}
	calls := mock.GetCreateCalls()
	if !slices.Contains(calls, want) {
		t.Errorf("expected create %v not found in %v", want, calls)
	}
}

// AssertDeleteCalled verifies that a delete request was sent for the triple.
func AssertDeleteCalled(t *testing.T, mock *taskapi.MockClient, sourceID, targetID string, depType model.DependencyType) {
	t.Helper()
	want := taskapi.DependencyCall{SourceID: sourceID, TargetID: targetID, Type: depType}
	calls := mock.GetDeleteCalls()
	if !slices.Contains(calls, want) {
		t.Errorf("expected delete %v not found in %v", want, calls)
	}
}

// AssertNoWrites verifies that no create or delete request was sent.
func AssertNoWrites(t *testing.T, mock *taskapi.MockClient) {
	t.Helper()
	if calls := mock.GetCreateCalls(); len(calls) != 0 {
		t.Errorf("unexpected create calls: %v", calls)
	}
	if calls := mock.GetDeleteCalls(); len(calls) != 0 {
		t.Errorf("unexpected delete calls: %v", calls)
	}
}

// HasDependency reports whether the mock currently stores the triple.
func HasDependency(mock *taskapi.MockClient, sourceID, targetID string, depType model.DependencyType) bool {
	for _, d := range mock.All() {
		if d.SourceID == sourceID && d.TargetID == targetID && d.Type == depType {
			return true
		}
	}
	return false
}
