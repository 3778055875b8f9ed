package lists

import "strings"

// FetchCache holds the fetch results of one refresh batch, keyed by
// list URL (case-insensitive). It is created fresh per batch, written
// only by the single PreFetch invocation that owns it, and read-only
// afterwards, so rule evaluation may read it concurrently without
// locking. It is never persisted.
type FetchCache struct {
	results  map[string]*FetchResult
	warnings []string
}

// NewFetchCache returns an empty batch cache.
func NewFetchCache() *FetchCache {
	return &FetchCache{results: make(map[string]*FetchResult)}
}

func cacheKey(listURL string) string {
	return strings.ToLower(strings.TrimSpace(listURL))
}

// Contains reports whether listURL already has an entry.
func (c *FetchCache) Contains(listURL string) bool {
	_, ok := c.results[cacheKey(listURL)]
	return ok
}

// Result returns the entry stored for listURL. The second return is
// false when the URL was never requested in this batch; an entry with
// zero items is a fetched-but-empty (or failed and downgraded) source.
func (c *FetchCache) Result(listURL string) (*FetchResult, bool) {
	result, ok := c.results[cacheKey(listURL)]
	return result, ok
}

// Store records the result for listURL, replacing any prior entry.
func (c *FetchCache) Store(listURL string, result *FetchResult) {
	if result == nil {
		result = NewFetchResult()
	}
	c.results[cacheKey(listURL)] = result
}

// AddWarning appends a diagnostic for a URL that could not be resolved
// or fully fetched.
func (c *FetchCache) AddWarning(message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	c.warnings = append(c.warnings, message)
}

// Warnings returns the accumulated diagnostics in append order.
func (c *FetchCache) Warnings() []string {
	out := make([]string, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// Len reports how many URLs have entries.
func (c *FetchCache) Len() int {
	return len(c.results)
}
