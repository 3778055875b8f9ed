package lists

import (
	"context"
	"net/url"
	"strings"
)

// Provider fetches ranked title lists from one external source.
//
// Implementations degrade gracefully: Fetch returns an error only for
// configuration failures (missing credential, a URL CanHandle claimed
// but cannot route) and for fetches that produced nothing. When items
// were already accumulated before a mid-pagination failure, Fetch
// returns the partial result alongside the error and the caller decides
// whether to keep it.
type Provider interface {
	// Name identifies the source in logs and warnings.
	Name() string

	// CanHandle reports whether listURL belongs to this source. It is a
	// pure predicate on the URL; credentials and reachability never
	// influence the answer.
	CanHandle(listURL string) bool

	// Fetch retrieves the list at listURL, honoring ctx between page
	// requests.
	Fetch(ctx context.Context, listURL string) (*FetchResult, error)
}

// HostMatches reports whether rawURL is an http(s) URL on domain or any
// of its subdomains. Matching is case-insensitive and ignores ports.
func HostMatches(rawURL, domain string) bool {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	domain = strings.ToLower(strings.TrimSpace(domain))
	if host == "" || domain == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// PathSegments splits rawURL's path into its non-empty segments.
// Providers route on these after CanHandle has matched the host.
func PathSegments(rawURL string) []string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil
	}
	trimmed := strings.Trim(parsed.Path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
