package imdb_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"smartlists/internal/lists/imdb"
)

func TestCanHandleRestrictsPathShapes(t *testing.T) {
	provider := imdb.New(imdb.Config{})
	cases := []struct {
		url  string
		want bool
	}{
		{"https://www.imdb.com/chart/top", true},
		{"https://www.imdb.com/chart/moviemeter/", true},
		{"https://imdb.com/list/ls055592025", true},
		{"https://www.imdb.com/title/tt0111161/", false},
		{"https://www.imdb.com/", false},
		{"https://www.imdb.com/search/title/?groups=top_250", false},
		{"https://example.com/chart/top", false},
	}
	for _, tc := range cases {
		if got := provider.CanHandle(tc.url); got != tc.want {
			t.Errorf("CanHandle(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}

func TestFetchExtractsAnchorsFirstSeenWins(t *testing.T) {
	page := `<html><body>
		<a href="/title/tt0111161/?ref_=chttp_t_1">The Shawshank Redemption</a>
		<a href="/name/nm0000209/">not a title</a>
		<a href="/title/tt0068646/?ref_=chttp_t_2">The Godfather</a>
		<a href="/title/tt0111161/?ref_=chttp_i_1"><img alt="poster"/></a>
		<a href="/title/tt0468569/?ref_=chttp_t_3">The Dark Knight</a>
	</body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	t.Cleanup(server.Close)

	provider := imdb.New(imdb.Config{HTTPClient: server.Client()})
	result, err := provider.Fetch(context.Background(), server.URL+"/chart/top")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if result.TotalItems != 3 {
		t.Fatalf("TotalItems = %d, want 3", result.TotalItems)
	}
	if len(result.IMDb) != 3 {
		t.Fatalf("index size = %d, want 3", len(result.IMDb))
	}
	if pos, _ := result.PositionByIMDb("tt0111161"); pos != 0 {
		t.Fatalf("duplicated anchor position = %d, want first occurrence 0", pos)
	}
	if pos, _ := result.PositionByIMDb("tt0468569"); pos != 2 {
		t.Fatalf("third title position = %d, want 2", pos)
	}
}

func TestFetchAppendsTrailingSlashAndSpoofsBrowserHeaders(t *testing.T) {
	var gotPath, gotUA, gotLang string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
	}))
	t.Cleanup(server.Close)

	provider := imdb.New(imdb.Config{
		UserAgent:      "Mozilla/5.0 (test)",
		AcceptLanguage: "en-GB,en;q=0.8",
		HTTPClient:     server.Client(),
	})
	if _, err := provider.Fetch(context.Background(), server.URL+"/chart/top"); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if gotPath != "/chart/top/" {
		t.Fatalf("expected trailing slash, got %q", gotPath)
	}
	if !strings.HasPrefix(gotUA, "Mozilla/5.0") {
		t.Fatalf("unexpected user agent %q", gotUA)
	}
	if gotLang != "en-GB,en;q=0.8" {
		t.Fatalf("unexpected accept language %q", gotLang)
	}
}

func TestFetchNonSuccessStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	provider := imdb.New(imdb.Config{HTTPClient: server.Client()})
	result, err := provider.Fetch(context.Background(), server.URL+"/chart/top")
	if err == nil {
		t.Fatal("expected error for non-success status")
	}
	if result != nil {
		t.Fatalf("expected nil result, got %+v", result)
	}
	if !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestFetchEmptyPageIsEmptyResultNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>no anchors here</body></html>")
	}))
	t.Cleanup(server.Close)

	provider := imdb.New(imdb.Config{HTTPClient: server.Client()})
	result, err := provider.Fetch(context.Background(), server.URL+"/list/ls000000001")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !result.Empty() {
		t.Fatalf("expected empty result, got %+v", result)
	}
}
