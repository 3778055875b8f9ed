package mdblist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"smartlists/internal/lists"
)

const (
	defaultBaseURL     = "https://api.mdblist.com"
	defaultHTTPTimeout = 45 * time.Second

	// pageSize is the documented maximum the items endpoint returns per
	// request; offsets advance by it until a short page arrives.
	pageSize = 1000
)

// Config describes the MDBList provider configuration.
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Provider fetches user lists from the MDBList aggregator API.
type Provider struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

var _ lists.Provider = (*Provider)(nil)

// New creates the provider. A missing API key surfaces from Fetch, not
// here, so an unconfigured source only fails the lists that need it.
func New(cfg Config) *Provider {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Provider{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: strings.TrimRight(base, "/"),
		http:    client,
	}
}

// Name implements lists.Provider.
func (p *Provider) Name() string { return "mdblist" }

// CanHandle accepts URLs on mdblist.com and its subdomains.
func (p *Provider) CanHandle(listURL string) bool {
	return lists.HostMatches(listURL, "mdblist.com")
}

// Fetch pages through the list with limit/offset requests until a page
// comes back short. The position counter advances for every item, even
// one without a usable identifier, so ranks keep matching the list.
func (p *Provider) Fetch(ctx context.Context, listURL string) (*lists.FetchResult, error) {
	user, list, err := splitListPath(listURL)
	if err != nil {
		return nil, err
	}
	if p.apiKey == "" {
		return nil, fmt.Errorf("mdblist: api key is required: %w", lists.ErrNoCredential)
	}

	result := lists.NewFetchResult()
	for offset := 0; ; offset += pageSize {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("mdblist: fetch %s/%s: %w", user, list, err)
		}
		items, err := p.fetchPage(ctx, user, list, offset)
		if err != nil {
			return result, err
		}
		for _, item := range items {
			imdbID := item.IMDBID
			var tmdbID, tvdbID string
			if item.IDs != nil {
				if imdbID == "" {
					imdbID = item.IDs.IMDB
				}
				tmdbID = lists.FormatNumericID(item.IDs.TMDB)
				tvdbID = lists.FormatNumericID(item.IDs.TVDB)
			}
			result.AddItem(imdbID, tmdbID, tvdbID)
		}
		if len(items) < pageSize {
			break
		}
	}
	return result, nil
}

func (p *Provider) fetchPage(ctx context.Context, user, list string, offset int) ([]listItem, error) {
	endpoint, err := url.Parse(fmt.Sprintf("%s/lists/%s/%s/items",
		p.baseURL, url.PathEscape(user), url.PathEscape(list)))
	if err != nil {
		return nil, fmt.Errorf("mdblist: parse url: %w", err)
	}
	params := url.Values{}
	params.Set("apikey", p.apiKey)
	params.Set("limit", strconv.Itoa(pageSize))
	params.Set("offset", strconv.Itoa(offset))
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("mdblist: build request: %w", err)
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mdblist: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mdblist: list items returned %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("mdblist: read response: %w", err)
	}
	return decodeItems(body)
}

type listItem struct {
	IMDBID string   `json:"imdb_id"`
	IDs    *itemIDs `json:"ids"`
}

type itemIDs struct {
	IMDB string `json:"imdb"`
	TMDB int64  `json:"tmdb"`
	TVDB int64  `json:"tvdb"`
}

type wrappedItems struct {
	Movies []listItem `json:"movies"`
	Shows  []listItem `json:"shows"`
}

// decodeItems accepts both documented response shapes: a wrapper object
// with movies/shows arrays, or a bare item array. Movies come before
// shows so their ranks sort first.
func decodeItems(body []byte) ([]listItem, error) {
	var wrapped wrappedItems
	if err := json.Unmarshal(body, &wrapped); err == nil {
		return append(wrapped.Movies, wrapped.Shows...), nil
	}
	var bare []listItem
	if err := json.Unmarshal(body, &bare); err != nil {
		return nil, fmt.Errorf("mdblist: decode items: %w", err)
	}
	return bare, nil
}

func splitListPath(listURL string) (user, list string, err error) {
	segments := lists.PathSegments(listURL)
	if len(segments) >= 3 && strings.EqualFold(segments[0], "lists") {
		return segments[1], segments[2], nil
	}
	return "", "", fmt.Errorf("mdblist: %w: %s", lists.ErrUnsupportedURL, listURL)
}
