package trakt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"smartlists/internal/lists"
)

const (
	defaultBaseURL     = "https://api.trakt.tv"
	defaultHTTPTimeout = 45 * time.Second
	pageSize           = 100

	apiVersion = "2"
	userAgent  = "smartlists/1.0 (list aggregation)"

	pageCountHeader = "X-Pagination-Page-Count"
)

// Chart categories per media type. Ranked charts accept an optional
// period segment appended to the API path.
var plainCharts = map[string]bool{
	"trending":    true,
	"popular":     true,
	"anticipated": true,
}

var rankedCharts = map[string]bool{
	"watched":   true,
	"played":    true,
	"collected": true,
}

var rankedPeriods = map[string]bool{
	"daily":   true,
	"weekly":  true,
	"monthly": true,
	"yearly":  true,
	"all":     true,
}

// Config describes the Trakt provider configuration.
type Config struct {
	ClientID   string
	BaseURL    string
	HTTPClient *http.Client
}

// Provider fetches Trakt user lists, watchlists, and charts.
type Provider struct {
	clientID string
	baseURL  string
	http     *http.Client
}

var _ lists.Provider = (*Provider)(nil)

// New creates the provider. A missing client id surfaces from Fetch.
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
		clientID: strings.TrimSpace(cfg.ClientID),
		baseURL:  strings.TrimRight(base, "/"),
		http:     client,
	}
}

// Name implements lists.Provider.
func (p *Provider) Name() string { return "trakt" }

// CanHandle accepts URLs on trakt.tv and its subdomains.
func (p *Provider) CanHandle(listURL string) bool {
	return lists.HostMatches(listURL, "trakt.tv")
}

// Fetch pages through the routed endpoint. The page count reported in
// the X-Pagination-Page-Count response header decides when to stop;
// when the header is missing, a page shorter than the page size does.
func (p *Provider) Fetch(ctx context.Context, listURL string) (*lists.FetchResult, error) {
	apiPath, err := resolveAPIPath(listURL)
	if err != nil {
		return nil, err
	}
	if p.clientID == "" {
		return nil, fmt.Errorf("trakt: client id is required: %w", lists.ErrNoCredential)
	}

	result := lists.NewFetchResult()
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("trakt: fetch %s: %w", apiPath, err)
		}
		items, pageCount, err := p.fetchPage(ctx, apiPath, page)
		if err != nil {
			return result, err
		}
		for _, item := range items {
			ids := item.identifiers()
			result.AddItem(ids.IMDB, lists.FormatNumericID(ids.TMDB), lists.FormatNumericID(ids.TVDB))
		}
		if pageCount > 0 {
			if page >= pageCount {
				break
			}
		} else if len(items) < pageSize {
			break
		}
	}
	return result, nil
}

type itemIDs struct {
	IMDB string `json:"imdb"`
	TMDB int64  `json:"tmdb"`
	TVDB int64  `json:"tvdb"`
}

type listItem struct {
	Movie *struct {
		IDs *itemIDs `json:"ids"`
	} `json:"movie"`
	Show *struct {
		IDs *itemIDs `json:"ids"`
	} `json:"show"`
	IDs *itemIDs `json:"ids"`
}

// identifiers resolves the item's identifier block, preferring the
// nested movie and show placements over ids carried on the item itself.
func (item listItem) identifiers() itemIDs {
	if item.Movie != nil && item.Movie.IDs != nil {
		return *item.Movie.IDs
	}
	if item.Show != nil && item.Show.IDs != nil {
		return *item.Show.IDs
	}
	if item.IDs != nil {
		return *item.IDs
	}
	return itemIDs{}
}

func (p *Provider) fetchPage(ctx context.Context, apiPath string, page int) ([]listItem, int, error) {
	endpoint, err := url.Parse(p.baseURL + "/" + apiPath)
	if err != nil {
		return nil, 0, fmt.Errorf("trakt: parse url: %w", err)
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(pageSize))
	params.Set("extended", "full")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("trakt: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("trakt-api-version", apiVersion)
	req.Header.Set("trakt-api-key", p.clientID)

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("trakt: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("trakt: %s returned %d", apiPath, resp.StatusCode)
	}
	var items []listItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, 0, fmt.Errorf("trakt: decode %s response: %w", apiPath, err)
	}
	pageCount, _ := strconv.Atoi(resp.Header.Get(pageCountHeader))
	return items, pageCount, nil
}

func resolveAPIPath(listURL string) (string, error) {
	segments := lists.PathSegments(listURL)
	for i, segment := range segments {
		segments[i] = strings.ToLower(segment)
	}
	if len(segments) >= 2 {
		switch segments[0] {
		case "users":
			user := url.PathEscape(segments[1])
			if len(segments) >= 4 && segments[2] == "lists" {
				return fmt.Sprintf("users/%s/lists/%s/items", user, url.PathEscape(segments[3])), nil
			}
			if len(segments) >= 3 && segments[2] == "watchlist" {
				return fmt.Sprintf("users/%s/watchlist", user), nil
			}
		case "movies", "shows":
			media, chart := segments[0], segments[1]
			switch {
			case plainCharts[chart]:
				return media + "/" + chart, nil
			case rankedCharts[chart]:
				period := "weekly"
				if len(segments) >= 3 && rankedPeriods[segments[2]] {
					period = segments[2]
				}
				return media + "/" + chart + "/" + period, nil
			case media == "movies" && chart == "boxoffice":
				return "movies/boxoffice", nil
			}
		}
	}
	return "", fmt.Errorf("trakt: %w: %s", lists.ErrUnsupportedURL, listURL)
}
