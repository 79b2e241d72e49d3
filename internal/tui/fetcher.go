package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/npratt/depviz/internal/model"
	"github.com/npratt/depviz/internal/taskapi"
	"github.com/sourcegraph/conc/pool"
)

// GraphData is everything the graph pane needs for one root task.
type GraphData struct {
	Tree  *model.DependencyTree
	Types model.TypeLookup
	List  *model.DependencyList // nil when the dependency list could not be fetched
}

// TreeFetcher loads the tree and the typed dependency list for a root task.
type TreeFetcher struct {
	reader taskapi.DependencyReader
	logger *slog.Logger
}

// NewTreeFetcher creates a TreeFetcher. A nil logger discards output.
func NewTreeFetcher(reader taskapi.DependencyReader, logger *slog.Logger) *TreeFetcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TreeFetcher{reader: reader, logger: logger}
}

// Fetch requests the tree and the dependency list concurrently. Only a tree
// failure is fatal: without the list, edge types fall back to the tree's own
// hints.
func (f *TreeFetcher) Fetch(ctx context.Context, rootID string) (*GraphData, error) {
	var (
		tree *model.DependencyTree
		list *model.DependencyList
	)

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		t, err := f.reader.Tree(ctx, rootID)
		if err != nil {
			return fmt.Errorf("failed to load dependency tree: %w", err)
		}
		tree = t
		return nil
	})
	p.Go(func(ctx context.Context) error {
		l, err := f.reader.Dependencies(ctx, rootID)
		if err != nil {
			f.logger.Warn("dependency list unavailable, using tree hints", "root", rootID, "error", err)
			return nil
		}
		list = l
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, fmt.Errorf("failed to load dependency tree: empty response for %s", rootID)
	}

	data := &GraphData{Tree: tree, List: list, Types: model.TypeLookup{}}
	if list != nil {
		data.Types = model.NewTypeLookup(*list)
	}
	return data, nil
}
