// Package stats aggregates per-resource and per-asset fetch outcomes.
//
// A FetchStats is shared by every fetch task of one asset set. Tasks call
// Record concurrently; readers call Summary only after the tasks joined.
package stats

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// FetchStats is a concurrency-safe set of fetch outcomes
type FetchStats struct {
	mu sync.Mutex

	resourceSuccess map[string]struct{}
	resourceError   map[string]struct{}
	assetSuccess    map[string]struct{}
	assetError      map[string]struct{}
}

// New returns empty statistics
func New() *FetchStats {
	return &FetchStats{
		resourceSuccess: make(map[string]struct{}),
		resourceError:   make(map[string]struct{}),
		assetSuccess:    make(map[string]struct{}),
		assetError:      make(map[string]struct{}),
	}
}

// Record stores the outcome of one resource. It is the only mutator.
func (s *FetchStats) Record(assetID, resourcePath string, success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if success {
		s.resourceSuccess[resourcePath] = struct{}{}
		s.assetSuccess[assetID] = struct{}{}
	} else {
		s.resourceError[resourcePath] = struct{}{}
		s.assetError[assetID] = struct{}{}
	}
}

// Summary is a point-in-time copy of the statistics with sorted members
type Summary struct {
	ResourcesSucceeded []string
	ResourcesFailed    []string
	// AssetsSucceeded holds assets with at least one successful resource
	// and no failed one
	AssetsSucceeded []string
	AssetsFailed    []string
}

// Summary returns a copy of the current statistics.
func (s *FetchStats) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	var succeeded []string
	for id := range s.assetSuccess {
		if _, failed := s.assetError[id]; !failed {
			succeeded = append(succeeded, id)
		}
	}
	sort.Strings(succeeded)

	return Summary{
		ResourcesSucceeded: sortedKeys(s.resourceSuccess),
		ResourcesFailed:    sortedKeys(s.resourceError),
		AssetsSucceeded:    succeeded,
		AssetsFailed:       sortedKeys(s.assetError),
	}
}

// Complete reports whether nothing failed
func (s Summary) Complete() bool {
	return len(s.ResourcesFailed) == 0 && len(s.AssetsFailed) == 0
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler
func (s Summary) MarshalZerologObject(e *zerolog.Event) {
	e.Int("resources_ok", len(s.ResourcesSucceeded)).
		Int("resources_failed", len(s.ResourcesFailed)).
		Int("assets_ok", len(s.AssetsSucceeded)).
		Int("assets_failed", len(s.AssetsFailed))
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
