package lists

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"smartlists/internal/logging"
)

// Aggregator resolves list URLs to providers and populates a batch
// cache. Providers are consulted in registration order; the first whose
// CanHandle accepts a URL owns it.
type Aggregator struct {
	providers []Provider
	logger    *slog.Logger
}

// NewAggregator builds an aggregator over the given providers. Order is
// significant and preserved.
func NewAggregator(logger *slog.Logger, providers ...Provider) *Aggregator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Aggregator{
		providers: providers,
		logger:    logging.NewComponentLogger(logger, "aggregator"),
	}
}

// Resolve returns the first registered provider claiming listURL, or
// nil when no source recognizes it.
func (a *Aggregator) Resolve(listURL string) Provider {
	for _, provider := range a.providers {
		if provider.CanHandle(listURL) {
			return provider
		}
	}
	return nil
}

// PreFetch fetches every URL not already present in cache, one at a
// time. Input URLs are deduplicated case-insensitively; repeated calls
// against the same cache issue no additional requests for URLs already
// fetched.
//
// Per-URL failures never escape: an unrecognized URL, a configuration
// error, or a fetch that produced nothing all store an empty entry plus
// a warning, and a partial result with at least one item is kept as-is
// with a warning. Cancellation is the sole exception: it is returned
// to the caller after the in-flight URL has been settled, and entries
// already stored remain valid.
func (a *Aggregator) PreFetch(ctx context.Context, urls []string, cache *FetchCache) error {
	if cache == nil {
		return errors.New("aggregator: cache is required")
	}
	for _, listURL := range dedupeURLs(urls) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if cache.Contains(listURL) {
			a.logger.Debug("list already cached this batch",
				logging.String(logging.FieldListURL, listURL))
			continue
		}

		provider := a.Resolve(listURL)
		if provider == nil {
			a.logger.Warn("no source recognizes list url",
				logging.String(logging.FieldListURL, listURL))
			cache.AddWarning(fmt.Sprintf("no source recognizes %s", listURL))
			cache.Store(listURL, NewFetchResult())
			continue
		}

		a.logger.Debug("fetching list",
			logging.String(logging.FieldSource, provider.Name()),
			logging.String(logging.FieldListURL, listURL))
		result, err := provider.Fetch(ctx, listURL)
		if err != nil {
			if result != nil && result.TotalItems > 0 {
				cache.Store(listURL, result)
				cache.AddWarning(fmt.Sprintf("%s: %s: kept %d items from partial fetch: %v",
					provider.Name(), listURL, result.TotalItems, err))
				a.logger.Warn("list fetch incomplete, keeping partial result",
					logging.String(logging.FieldSource, provider.Name()),
					logging.String(logging.FieldListURL, listURL),
					logging.Int("items", result.TotalItems),
					logging.Error(err))
			} else {
				cache.Store(listURL, NewFetchResult())
				cache.AddWarning(fmt.Sprintf("%s: %s: %v", provider.Name(), listURL, err))
				a.logger.Warn("list fetch failed",
					logging.String(logging.FieldSource, provider.Name()),
					logging.String(logging.FieldListURL, listURL),
					logging.Error(err))
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			continue
		}

		if result == nil {
			result = NewFetchResult()
		}
		cache.Store(listURL, result)
		a.logger.Info("list fetched",
			logging.String(logging.FieldSource, provider.Name()),
			logging.String(logging.FieldListURL, listURL),
			logging.Int("items", result.TotalItems))
	}
	return nil
}

func dedupeURLs(urls []string) []string {
	out := make([]string, 0, len(urls))
	seen := make(map[string]struct{}, len(urls))
	for _, raw := range urls {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
