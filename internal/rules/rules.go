// Package rules defines the seam between fetched external list data and
// the engine that evaluates smart list membership. The refresh pipeline
// populates a batch cache and hands evaluation a read-only view of it;
// implementations of Engine never trigger fetches themselves.
package rules

import (
	"context"
	"strings"

	"smartlists/internal/config"
	"smartlists/internal/lists"
)

// ListIndex is the read-only view of one fetched external list.
// Positions are zero-based ranks in source order.
type ListIndex interface {
	PositionByIMDb(id string) (int, bool)
	PositionByTMDb(id string) (int, bool)
	PositionByTVDb(id string) (int, bool)
	Empty() bool
}

// Source resolves external list URLs for one refresh batch. A false
// return means the URL was never requested in this batch.
type Source interface {
	ListIndex(listURL string) (ListIndex, bool)
	Warnings() []string
}

// Engine evaluates one smart list against fetched list data.
type Engine interface {
	Evaluate(ctx context.Context, list config.SmartList, source Source) error
}

// CollectURLs gathers every external list URL referenced by the given
// smart lists. Duplicates are dropped case-insensitively; the
// first-seen casing and order are kept so fetch logging matches what
// the user configured.
func CollectURLs(smartLists []config.SmartList) []string {
	var urls []string
	seen := make(map[string]struct{})
	for _, list := range smartLists {
		for _, listURL := range list.ListURLs {
			trimmed := strings.TrimSpace(listURL)
			if trimmed == "" {
				continue
			}
			key := strings.ToLower(trimmed)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			urls = append(urls, trimmed)
		}
	}
	return urls
}

// CacheSource adapts a populated fetch cache to the Source interface.
// The cache must not be written while evaluation reads it.
type CacheSource struct {
	cache *lists.FetchCache
}

var _ Source = (*CacheSource)(nil)

// NewCacheSource wraps cache for rule evaluation.
func NewCacheSource(cache *lists.FetchCache) *CacheSource {
	return &CacheSource{cache: cache}
}

// ListIndex implements Source.
func (s *CacheSource) ListIndex(listURL string) (ListIndex, bool) {
	result, ok := s.cache.Result(listURL)
	if !ok {
		return nil, false
	}
	return result, true
}

// Warnings implements Source.
func (s *CacheSource) Warnings() []string {
	return s.cache.Warnings()
}
