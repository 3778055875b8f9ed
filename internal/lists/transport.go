package lists

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitedTransport spaces outbound requests per host so the
// strictly sequential pagination loops stay polite to the upstream
// services. A zero or negative rate makes it a pass-through.
type RateLimitedTransport struct {
	base  http.RoundTripper
	rps   rate.Limit
	burst int

	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
}

// NewRateLimitedTransport wraps base with a per-host limiter. A nil
// base uses http.DefaultTransport.
func NewRateLimitedTransport(base http.RoundTripper, requestsPerSecond float64, burst int) *RateLimitedTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimitedTransport{
		base:     base,
		rps:      rate.Limit(requestsPerSecond),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// RoundTrip waits for the request's host limiter before delegating.
func (t *RateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.rps <= 0 {
		return t.base.RoundTrip(req)
	}
	if err := t.limiterFor(req.URL.Hostname()).Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

func (t *RateLimitedTransport) limiterFor(host string) *rate.Limiter {
	t.mu.RLock()
	limiter, exists := t.limiters[host]
	t.mu.RUnlock()
	if exists {
		return limiter
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if limiter, exists := t.limiters[host]; exists {
		return limiter
	}
	limiter = rate.NewLimiter(t.rps, t.burst)
	t.limiters[host] = limiter
	return limiter
}

// NewHTTPClient builds the HTTP client a refresh batch shares across
// every provider: one timeout, one per-host rate limit.
func NewHTTPClient(timeout time.Duration, requestsPerSecond float64, burst int) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: NewRateLimitedTransport(nil, requestsPerSecond, burst),
	}
}
