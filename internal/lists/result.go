package lists

// FetchResult is the normalized output of one provider fetch.
//
// Each identifier family maps a canonical identifier to the zero-based
// position of its first occurrence in the source list. Within a family,
// positions are strictly increasing in scan order and later duplicates
// never overwrite the first occurrence. A family left empty means the
// source carries no identifiers of that kind, not that the fetch
// failed.
//
// TotalItems counts every item the provider scanned, including items
// that yielded no usable identifier, so rank arithmetic downstream
// stays aligned with the source list.
type FetchResult struct {
	IMDb       map[string]int
	TMDb       map[string]int
	TVDb       map[string]int
	TotalItems int
}

// NewFetchResult returns an empty result with initialized indexes.
func NewFetchResult() *FetchResult {
	return &FetchResult{
		IMDb: make(map[string]int),
		TMDb: make(map[string]int),
		TVDb: make(map[string]int),
	}
}

// AddItem records one scanned item at the next position. Identifier
// arguments may be empty or malformed; the position counter advances
// regardless so identifier-less items still occupy their rank.
func (r *FetchResult) AddItem(imdbID, tmdbID, tvdbID string) {
	position := r.TotalItems
	r.TotalItems++
	if id := NormalizeIMDbID(imdbID); id != "" {
		if _, exists := r.IMDb[id]; !exists {
			r.IMDb[id] = position
		}
	}
	if id := NormalizeNumericID(tmdbID); id != "" {
		if _, exists := r.TMDb[id]; !exists {
			r.TMDb[id] = position
		}
	}
	if id := NormalizeNumericID(tvdbID); id != "" {
		if _, exists := r.TVDb[id]; !exists {
			r.TVDb[id] = position
		}
	}
}

// AddIMDbID records an identifier scraped from a page. Unlike AddItem,
// duplicates and malformed values are dropped without consuming a
// position, so scraped pages that repeat an anchor per title still
// yield consecutive ranks.
func (r *FetchResult) AddIMDbID(raw string) {
	id := NormalizeIMDbID(raw)
	if id == "" {
		return
	}
	if _, exists := r.IMDb[id]; exists {
		return
	}
	r.IMDb[id] = r.TotalItems
	r.TotalItems++
}

// PositionByIMDb returns the zero-based rank recorded for an IMDb
// identifier, accepting any casing or padding of the id.
func (r *FetchResult) PositionByIMDb(raw string) (int, bool) {
	position, ok := r.IMDb[NormalizeIMDbID(raw)]
	return position, ok
}

// PositionByTMDb returns the zero-based rank recorded for a TMDb
// identifier.
func (r *FetchResult) PositionByTMDb(raw string) (int, bool) {
	position, ok := r.TMDb[NormalizeNumericID(raw)]
	return position, ok
}

// PositionByTVDb returns the zero-based rank recorded for a TVDb
// identifier.
func (r *FetchResult) PositionByTVDb(raw string) (int, bool) {
	position, ok := r.TVDb[NormalizeNumericID(raw)]
	return position, ok
}

// Empty reports whether the fetch observed nothing at all.
func (r *FetchResult) Empty() bool {
	return r.TotalItems == 0 && len(r.IMDb) == 0 && len(r.TMDb) == 0 && len(r.TVDb) == 0
}
