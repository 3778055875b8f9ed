// Package lists defines the external list aggregation core: the source
// provider contract, the normalized fetch result, the per-batch cache,
// and the aggregator that populates it.
//
// A refresh batch collects every external list URL its smart lists
// reference, then calls Aggregator.PreFetch once. Each URL is resolved
// to the first registered provider whose CanHandle accepts it and
// fetched exactly once; rule evaluation afterwards reads the populated
// FetchCache synchronously without touching the network. Failures stay
// local to their URL: a source that is down or misconfigured produces a
// warning and an empty result, never a failed batch. Only cancellation
// stops the loop early.
//
// Providers live in the subpackages mdblist, imdb, tmdb, and trakt.
// Each normalizes its wire format into the same FetchResult shape, so
// consumers can ask "is this title on the list, and at what rank"
// without knowing which source backed it.
package lists
