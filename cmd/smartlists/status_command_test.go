package main

import (
	"fmt"
	"testing"
)

func TestStatusReportsChecks(t *testing.T) {
	server := newListServer(t, `{}`)
	env := setupCLITestEnv(t, fmt.Sprintf("[mdblist]\napi_key = \"k\"\nbase_url = %q", server.URL))

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "== Configuration ==")
	requireContains(t, out, env.configPath)
	requireContains(t, out, "== Source Checks ==")
	requireContains(t, out, "Data directory")
	requireContains(t, out, "[OK] Reachable")
	requireContains(t, out, "not configured")
}

func TestStatusFailsOnUnreachableSource(t *testing.T) {
	server := newListServer(t, `{}`)
	server.Close()
	env := setupCLITestEnv(t, fmt.Sprintf("[mdblist]\napi_key = \"k\"\nbase_url = %q", server.URL))

	_, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err == nil {
		t.Fatal("expected failing status")
	}
	requireContains(t, err.Error(), "status check(s) failed")
}
