package imdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"smartlists/internal/lists"
)

const (
	defaultHTTPTimeout = 45 * time.Second

	// IMDb renders a truncated page to clients it does not recognize as
	// desktop browsers, so the defaults imitate one.
	defaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
	defaultAcceptLanguage = "en-US,en;q=0.9"
	acceptHeader          = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"
)

// titleAnchorPattern matches the relative title links chart and list
// pages render once per entry (posters repeat them, which is why
// duplicates are expected).
var titleAnchorPattern = regexp.MustCompile(`href="/title/(tt\d+)`)

// Config describes the IMDb provider configuration.
type Config struct {
	UserAgent      string
	AcceptLanguage string
	HTTPClient     *http.Client
}

// Provider scrapes IMDb chart and list pages. No credential is needed;
// the whole list arrives in one response.
type Provider struct {
	userAgent      string
	acceptLanguage string
	http           *http.Client
}

var _ lists.Provider = (*Provider)(nil)

// New creates the provider.
func New(cfg Config) *Provider {
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	acceptLanguage := strings.TrimSpace(cfg.AcceptLanguage)
	if acceptLanguage == "" {
		acceptLanguage = defaultAcceptLanguage
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Provider{
		userAgent:      userAgent,
		acceptLanguage: acceptLanguage,
		http:           client,
	}
}

// Name implements lists.Provider.
func (p *Provider) Name() string { return "imdb" }

// CanHandle accepts imdb.com chart and list pages only; other paths on
// the site (title pages, people, search) are not ranked lists.
func (p *Provider) CanHandle(listURL string) bool {
	if !lists.HostMatches(listURL, "imdb.com") {
		return false
	}
	segments := lists.PathSegments(listURL)
	if len(segments) < 2 {
		return false
	}
	switch strings.ToLower(segments[0]) {
	case "chart", "list":
		return true
	default:
		return false
	}
}

// Fetch issues exactly one request for the page and scans the raw HTML
// for title anchors. A non-success status is an error rather than an
// empty result: a broken page load would otherwise be indistinguishable
// from a genuinely empty list.
func (p *Provider) Fetch(ctx context.Context, listURL string) (*lists.FetchResult, error) {
	target, err := withTrailingSlash(listURL)
	if err != nil {
		return nil, fmt.Errorf("imdb: %w: %s", lists.ErrUnsupportedURL, listURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("imdb: build request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept-Language", p.acceptLanguage)
	req.Header.Set("Accept", acceptHeader)

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imdb: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("imdb: list page returned %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("imdb: read page: %w", err)
	}

	result := lists.NewFetchResult()
	for _, match := range titleAnchorPattern.FindAllStringSubmatch(string(body), -1) {
		result.AddIMDbID(match[1])
	}
	return result, nil
}

func withTrailingSlash(listURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(listURL))
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}
	return parsed.String(), nil
}
