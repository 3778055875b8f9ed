package tmdb

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
	defaultBaseURL     = "https://api.themoviedb.org/3"
	defaultHTTPTimeout = 45 * time.Second

	// maxChartPages bounds chart and trending feeds, which may keep
	// reporting more pages indefinitely.
	maxChartPages = 500
)

// Site chart slugs use hyphens; the API paths use underscores.
var movieCharts = map[string]string{
	"popular":     "popular",
	"top-rated":   "top_rated",
	"now-playing": "now_playing",
	"upcoming":    "upcoming",
}

var tvCharts = map[string]string{
	"popular":      "popular",
	"top-rated":    "top_rated",
	"airing-today": "airing_today",
	"on-the-air":   "on_the_air",
}

// Config describes the TMDb provider configuration.
type Config struct {
	APIKey     string
	BaseURL    string
	Language   string
	HTTPClient *http.Client
}

// Provider fetches TMDb user lists, charts, and trending feeds. TMDb
// responses carry only TMDb ids, so the other identifier families stay
// empty by design.
type Provider struct {
	apiKey   string
	baseURL  string
	language string
	http     *http.Client
}

var _ lists.Provider = (*Provider)(nil)

// New creates the provider. A missing API key surfaces from Fetch.
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
		apiKey:   strings.TrimSpace(cfg.APIKey),
		baseURL:  strings.TrimRight(base, "/"),
		language: strings.TrimSpace(cfg.Language),
		http:     client,
	}
}

// Name implements lists.Provider.
func (p *Provider) Name() string { return "tmdb" }

// CanHandle accepts URLs on themoviedb.org and its subdomains.
func (p *Provider) CanHandle(listURL string) bool {
	return lists.HostMatches(listURL, "themoviedb.org")
}

// Fetch routes the URL to a user list or a chart feed and pages through
// it. User lists trust the reported total page count; charts trust it
// too but are additionally capped so a feed that always reports more
// pages cannot loop forever.
func (p *Provider) Fetch(ctx context.Context, listURL string) (*lists.FetchResult, error) {
	target, err := resolveRoute(listURL)
	if err != nil {
		return nil, err
	}
	if p.apiKey == "" {
		return nil, fmt.Errorf("tmdb: api key is required: %w", lists.ErrNoCredential)
	}
	if target.userList {
		return p.fetchUserList(ctx, target.apiPath)
	}
	return p.fetchChart(ctx, target.apiPath)
}

func (p *Provider) fetchUserList(ctx context.Context, apiPath string) (*lists.FetchResult, error) {
	result := lists.NewFetchResult()
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("tmdb: fetch %s: %w", apiPath, err)
		}
		payload, err := p.fetchPage(ctx, apiPath, page)
		if err != nil {
			return result, err
		}
		for _, item := range payload.Items {
			result.AddItem("", lists.FormatNumericID(item.ID), "")
		}
		if len(payload.Items) == 0 || page >= payload.TotalPages {
			break
		}
	}
	return result, nil
}

func (p *Provider) fetchChart(ctx context.Context, apiPath string) (*lists.FetchResult, error) {
	result := lists.NewFetchResult()
	for page := 1; page <= maxChartPages; page++ {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("tmdb: fetch %s: %w", apiPath, err)
		}
		payload, err := p.fetchPage(ctx, apiPath, page)
		if err != nil {
			return result, err
		}
		for _, item := range payload.Results {
			result.AddItem("", lists.FormatNumericID(item.ID), "")
		}
		if len(payload.Results) == 0 {
			break
		}
		if payload.TotalPages > 0 && page >= payload.TotalPages {
			break
		}
	}
	return result, nil
}

type pageItem struct {
	ID int64 `json:"id"`
}

type pageResponse struct {
	Items      []pageItem `json:"items"`
	Results    []pageItem `json:"results"`
	TotalPages int        `json:"total_pages"`
}

func (p *Provider) fetchPage(ctx context.Context, apiPath string, page int) (*pageResponse, error) {
	endpoint, err := url.Parse(p.baseURL + "/" + apiPath)
	if err != nil {
		return nil, fmt.Errorf("tmdb: parse url: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", p.apiKey)
	if p.language != "" {
		params.Set("language", p.language)
	}
	params.Set("page", strconv.Itoa(page))
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("tmdb: build request: %w", err)
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tmdb: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tmdb: %s returned %d", apiPath, resp.StatusCode)
	}
	var payload pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("tmdb: decode %s response: %w", apiPath, err)
	}
	return &payload, nil
}

type route struct {
	apiPath  string
	userList bool
}

func resolveRoute(listURL string) (route, error) {
	segments := lists.PathSegments(listURL)
	if len(segments) > 0 {
		switch strings.ToLower(segments[0]) {
		case "list":
			if len(segments) >= 2 {
				if id := lists.NormalizeNumericID(segments[1]); id != "" {
					return route{apiPath: "list/" + id, userList: true}, nil
				}
			}
		case "movie":
			if len(segments) == 1 {
				return route{apiPath: "movie/popular"}, nil
			}
			if chart, ok := movieCharts[strings.ToLower(segments[1])]; ok {
				return route{apiPath: "movie/" + chart}, nil
			}
		case "tv":
			if len(segments) == 1 {
				return route{apiPath: "tv/popular"}, nil
			}
			if chart, ok := tvCharts[strings.ToLower(segments[1])]; ok {
				return route{apiPath: "tv/" + chart}, nil
			}
		case "trending":
			if len(segments) >= 2 {
				mediaType := strings.ToLower(segments[1])
				window := "week"
				if len(segments) >= 3 {
					window = strings.ToLower(segments[2])
				}
				if (mediaType == "movie" || mediaType == "tv") && (window == "day" || window == "week") {
					return route{apiPath: "trending/" + mediaType + "/" + window}, nil
				}
			}
		}
	}
	return route{}, fmt.Errorf("tmdb: %w: %s", lists.ErrUnsupportedURL, listURL)
}
