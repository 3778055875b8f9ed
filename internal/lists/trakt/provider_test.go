package trakt_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"smartlists/internal/lists"
	"smartlists/internal/lists/trakt"
)

func newProvider(t *testing.T, handler http.Handler) *trakt.Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return trakt.New(trakt.Config{
		ClientID:   "client-id",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})
}

// movieItems renders count list items with sequential tmdb ids
// starting at start.
func movieItems(start, count int) string {
	entries := make([]string, 0, count)
	for i := 0; i < count; i++ {
		entries = append(entries, fmt.Sprintf(`{"movie":{"ids":{"tmdb":%d}}}`, start+i))
	}
	return "[" + strings.Join(entries, ",") + "]"
}

func TestCanHandle(t *testing.T) {
	provider := trakt.New(trakt.Config{ClientID: "c"})

	cases := []struct {
		url  string
		want bool
	}{
		{"https://trakt.tv/users/alice/lists/best-of", true},
		{"https://www.trakt.tv/movies/trending", true},
		{"https://api.trakt.tv/shows/popular", true},
		{"https://www.themoviedb.org/movie", false},
		{"https://nottrakt.tv/movies/trending", false},
	}
	for _, tc := range cases {
		if got := provider.CanHandle(tc.url); got != tc.want {
			t.Errorf("CanHandle(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}

func TestFetchTrustsPageCountHeader(t *testing.T) {
	var pages []string
	provider := newProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages = append(pages, r.URL.Query().Get("page"))
		if got := r.URL.Query().Get("limit"); got != "100" {
			t.Errorf("limit = %q, want %q", got, "100")
		}
		if got := r.URL.Query().Get("extended"); got != "full" {
			t.Errorf("extended = %q, want %q", got, "full")
		}
		if got := r.Header.Get("trakt-api-version"); got != "2" {
			t.Errorf("trakt-api-version = %q, want %q", got, "2")
		}
		if got := r.Header.Get("trakt-api-key"); got != "client-id" {
			t.Errorf("trakt-api-key = %q, want %q", got, "client-id")
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected a descriptive User-Agent header")
		}
		w.Header().Set("X-Pagination-Page-Count", "3")
		page := r.URL.Query().Get("page")
		fmt.Fprintf(w, `[{"movie":{"ids":{"tmdb":%s01}}},{"movie":{"ids":{"tmdb":%s02}}}]`, page, page)
	}))

	result, err := provider.Fetch(context.Background(), "https://trakt.tv/users/alice/lists/best-of")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("request count = %d, want 3", len(pages))
	}
	for i, want := range []string{"1", "2", "3"} {
		if pages[i] != want {
			t.Errorf("page param %d = %q, want %q", i, pages[i], want)
		}
	}
	if result.TotalItems != 6 {
		t.Errorf("TotalItems = %d, want 6", result.TotalItems)
	}
	if pos, ok := result.PositionByTMDb("301"); !ok || pos != 4 {
		t.Errorf("PositionByTMDb(301) = %d, %v, want 4, true", pos, ok)
	}
}

func TestFetchFallsBackToShortPageWithoutHeader(t *testing.T) {
	hits := 0
	provider := newProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		switch hits {
		case 1:
			fmt.Fprint(w, movieItems(1, 100))
		default:
			fmt.Fprint(w, movieItems(101, 40))
		}
	}))

	result, err := provider.Fetch(context.Background(), "https://trakt.tv/movies/trending")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if hits != 2 {
		t.Errorf("request count = %d, want 2", hits)
	}
	if result.TotalItems != 140 {
		t.Errorf("TotalItems = %d, want 140", result.TotalItems)
	}
	if pos, ok := result.PositionByTMDb("140"); !ok || pos != 139 {
		t.Errorf("PositionByTMDb(140) = %d, %v, want 139, true", pos, ok)
	}
}

func TestFetchPrefersNestedIdentifierPlacement(t *testing.T) {
	provider := newProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"movie":{"ids":{"imdb":"tt0111161","tmdb":278}},"ids":{"imdb":"tt9999999"}},
			{"show":{"ids":{"imdb":"tt0903747","tvdb":81189}}},
			{"ids":{"imdb":"tt0068646"}},
			{"watchers":17}
		]`)
	}))

	result, err := provider.Fetch(context.Background(), "https://trakt.tv/users/alice/watchlist")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if result.TotalItems != 4 {
		t.Errorf("TotalItems = %d, want 4", result.TotalItems)
	}
	if pos, ok := result.PositionByIMDb("tt0111161"); !ok || pos != 0 {
		t.Errorf("PositionByIMDb(tt0111161) = %d, %v, want 0, true", pos, ok)
	}
	if _, ok := result.PositionByIMDb("tt9999999"); ok {
		t.Error("item-level ids should lose to the nested movie ids")
	}
	if pos, ok := result.PositionByTVDb("81189"); !ok || pos != 1 {
		t.Errorf("PositionByTVDb(81189) = %d, %v, want 1, true", pos, ok)
	}
	if pos, ok := result.PositionByIMDb("tt0068646"); !ok || pos != 2 {
		t.Errorf("PositionByIMDb(tt0068646) = %d, %v, want 2, true", pos, ok)
	}
}

func TestFetchRoutesSiteURLs(t *testing.T) {
	cases := []struct {
		url     string
		apiPath string
	}{
		{"https://trakt.tv/users/alice/lists/best-of", "/users/alice/lists/best-of/items"},
		{"https://trakt.tv/users/alice/watchlist", "/users/alice/watchlist"},
		{"https://trakt.tv/movies/trending", "/movies/trending"},
		{"https://trakt.tv/movies/popular", "/movies/popular"},
		{"https://trakt.tv/shows/anticipated", "/shows/anticipated"},
		{"https://trakt.tv/shows/watched", "/shows/watched/weekly"},
		{"https://trakt.tv/movies/collected/monthly", "/movies/collected/monthly"},
		{"https://trakt.tv/movies/boxoffice", "/movies/boxoffice"},
	}
	for _, tc := range cases {
		var gotPath string
		provider := newProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			fmt.Fprint(w, `[]`)
		}))

		if _, err := provider.Fetch(context.Background(), tc.url); err != nil {
			t.Fatalf("Fetch(%q) error = %v", tc.url, err)
		}
		if gotPath != tc.apiPath {
			t.Errorf("Fetch(%q) requested %q, want %q", tc.url, gotPath, tc.apiPath)
		}
	}
}

func TestFetchRequiresClientID(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	t.Cleanup(server.Close)
	provider := trakt.New(trakt.Config{BaseURL: server.URL, HTTPClient: server.Client()})

	result, err := provider.Fetch(context.Background(), "https://trakt.tv/movies/trending")
	if !errors.Is(err, lists.ErrNoCredential) {
		t.Fatalf("Fetch() error = %v, want ErrNoCredential", err)
	}
	if result != nil {
		t.Errorf("Fetch() result = %v, want nil", result)
	}
	if hits != 0 {
		t.Errorf("request count = %d, want 0", hits)
	}
}

func TestFetchRejectsUnsupportedPaths(t *testing.T) {
	provider := newProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request for unsupported url")
	}))

	for _, listURL := range []string{
		"https://trakt.tv/movies",
		"https://trakt.tv/shows/boxoffice",
		"https://trakt.tv/calendars/my/shows",
		"https://trakt.tv/users/alice",
		"https://trakt.tv/",
	} {
		if _, err := provider.Fetch(context.Background(), listURL); !errors.Is(err, lists.ErrUnsupportedURL) {
			t.Errorf("Fetch(%q) error = %v, want ErrUnsupportedURL", listURL, err)
		}
	}
}

func TestFetchKeepsPartialResultOnMidPaginationFailure(t *testing.T) {
	hits := 0
	provider := newProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			w.Header().Set("X-Pagination-Page-Count", "3")
			fmt.Fprint(w, movieItems(1, 100))
			return
		}
		http.Error(w, "upstream error", http.StatusBadGateway)
	}))

	result, err := provider.Fetch(context.Background(), "https://trakt.tv/shows/popular")
	if err == nil {
		t.Fatal("Fetch() expected error for failing second page")
	}
	if result == nil || result.TotalItems != 100 {
		t.Fatalf("Fetch() result = %+v, want 100 partial items", result)
	}
	if hits != 2 {
		t.Errorf("request count = %d, want 2", hits)
	}
}
