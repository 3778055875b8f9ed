// Package refresh orchestrates one refresh batch end to end: acquire
// the single-instance lock, fetch every referenced external list into a
// batch cache, run rule evaluation against the cached indexes, then
// journal and announce the outcome.
//
// A batch is all-or-nothing only with respect to cancellation; a single
// unreachable source degrades to a warning and an empty cache entry so
// the rest of the batch completes.
package refresh
