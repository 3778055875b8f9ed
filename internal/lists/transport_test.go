package lists_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"smartlists/internal/lists"
)

func TestRateLimitedTransportPassThroughWhenUnconfigured(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(server.Close)

	client := &http.Client{Transport: lists.NewRateLimitedTransport(nil, 0, 0)}
	for i := 0; i < 3; i++ {
		resp, err := client.Get(server.URL)
		if err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
		resp.Body.Close()
	}
	if hits.Load() != 3 {
		t.Fatalf("expected 3 requests, got %d", hits.Load())
	}
}

func TestRateLimitedTransportHonorsContextWhileWaiting(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(server.Close)

	// One request per 1000s with burst 1: the first request consumes the
	// burst token, the second has to wait and should fail on its deadline.
	client := &http.Client{Transport: lists.NewRateLimitedTransport(nil, 0.001, 1)}

	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if _, err := client.Do(req); err == nil {
		t.Fatal("expected second request to fail while rate limited")
	}
	if hits.Load() != 1 {
		t.Fatalf("expected rate-limited request to never reach the server, got %d hits", hits.Load())
	}
}
