package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/photosnap/pkg/types"
)

// MockCatalog is a mock implementation of the types.Catalog interface for testing.
// Unset functions fall back to serving Assets and Resources.
type MockCatalog struct {
	AuthorizeFunc       func(ctx context.Context) error
	ListByMediaTypeFunc func(ctx context.Context, q types.ListQuery) ([]types.Asset, error)
	ListByIDsFunc       func(ctx context.Context, ids []string) ([]types.Asset, error)

	Assets    []types.Asset
	Resources map[string][]types.RawResource

	mu      sync.Mutex
	Queries []types.ListQuery
}

// Authorize returns nil unless AuthorizeFunc says otherwise.
func (m *MockCatalog) Authorize(ctx context.Context) error {
	if m.AuthorizeFunc != nil {
		return m.AuthorizeFunc(ctx)
	}
	return nil
}

// ListByMediaType records the query and returns the assets of the requested kind.
func (m *MockCatalog) ListByMediaType(ctx context.Context, q types.ListQuery) ([]types.Asset, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, q)
	m.mu.Unlock()

	if m.ListByMediaTypeFunc != nil {
		return m.ListByMediaTypeFunc(ctx, q)
	}
	var out []types.Asset
	for _, a := range m.Assets {
		if a.Kind == q.Kind {
			out = append(out, a)
		}
	}
	return out, nil
}

// ListByIDs returns the assets whose local id is in ids.
func (m *MockCatalog) ListByIDs(ctx context.Context, ids []string) ([]types.Asset, error) {
	if m.ListByIDsFunc != nil {
		return m.ListByIDsFunc(ctx, ids)
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []types.Asset
	for _, a := range m.Assets {
		if want[a.LocalID] {
			out = append(out, a)
		}
	}
	return out, nil
}

// ResourcesOf returns the canned resources for the asset.
func (m *MockCatalog) ResourcesOf(asset types.Asset) []types.RawResource {
	return m.Resources[asset.LocalID]
}

// MockProvider is a types.ContentProvider that writes Content[source]
// to the destination. Sources listed in Fail return an error.
type MockProvider struct {
	FS      types.FS
	Content map[string]string
	Fail    map[string]bool

	mu      sync.Mutex
	Fetched []string
}

// Fetch writes the canned content for res.Source to dest.
func (m *MockProvider) Fetch(ctx context.Context, res types.RawResource, dest string, networkAllowed bool) error {
	m.mu.Lock()
	m.Fetched = append(m.Fetched, res.Source)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if m.Fail[res.Source] {
		return fmt.Errorf("mock fetch failure for %s", res.Source)
	}
	content, ok := m.Content[res.Source]
	if !ok {
		return fmt.Errorf("no content for %s", res.Source)
	}
	if err := m.FS.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	return m.FS.WriteFile(dest, []byte(content), 0644)
}

// FetchCount returns how many fetches were attempted.
func (m *MockProvider) FetchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Fetched)
}
