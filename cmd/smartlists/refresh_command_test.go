package main

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestRefreshScopedRunEmitsJSONSummary(t *testing.T) {
	server := newListServer(t, `[{"imdb_id":"tt0111161"},{"imdb_id":"tt0068646"}]`)
	env := setupCLITestEnv(t, fmt.Sprintf("[mdblist]\napi_key = \"k\"\nbase_url = %q", server.URL))

	listURL := "https://mdblist.com/lists/tester/fresh-picks"
	out, _, err := runCLI(t, []string{"refresh", listURL, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	var summary refreshSummaryJSON
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode summary: %v\noutput: %s", err, out)
	}
	if summary.BatchID == "" {
		t.Fatal("expected a batch id")
	}
	if summary.ListCount != 0 {
		t.Fatalf("scoped run should report zero smart lists, got %d", summary.ListCount)
	}
	if len(summary.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(summary.Entries))
	}
	entry := summary.Entries[0]
	if entry.Source != "mdblist" {
		t.Fatalf("source = %q", entry.Source)
	}
	if entry.DisplayName != "Fresh Picks" {
		t.Fatalf("display name = %q", entry.DisplayName)
	}
	if entry.TotalItems != 2 || entry.IMDbIDs != 2 {
		t.Fatalf("unexpected counts: %+v", entry)
	}
	if len(summary.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", summary.Warnings)
	}

	// The scoped run must land in the journal.
	out, _, err = runCLI(t, []string{"history", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var batches []historyBatchJSON
	if err := json.Unmarshal([]byte(out), &batches); err != nil {
		t.Fatalf("decode history: %v\noutput: %s", err, out)
	}
	if len(batches) != 1 {
		t.Fatalf("expected 1 recorded batch, got %d", len(batches))
	}
	if batches[0].BatchID != summary.BatchID {
		t.Fatalf("journal batch %q does not match refresh batch %q", batches[0].BatchID, summary.BatchID)
	}
	if batches[0].URLCount != 1 {
		t.Fatalf("url count = %d", batches[0].URLCount)
	}
}

func TestRefreshRendersSummaryTable(t *testing.T) {
	server := newListServer(t, `[{"imdb_id":"tt0111161"}]`)
	env := setupCLITestEnv(t, fmt.Sprintf("[mdblist]\napi_key = \"k\"\nbase_url = %q", server.URL))

	out, _, err := runCLI(t, []string{"refresh", "https://mdblist.com/lists/tester/fresh-picks"}, env.configPath)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	requireContains(t, out, "mdblist")
	requireContains(t, out, "Fresh Picks")
	requireContains(t, out, "Batch ")
}

func TestRefreshConfiguredSmartLists(t *testing.T) {
	server := newListServer(t, `[{"imdb_id":"tt0111161"}]`)
	extra := fmt.Sprintf("[mdblist]\napi_key = \"k\"\nbase_url = %q\n\n[[smartlist]]\nname = \"Favorites\"\nlist_urls = [\"https://mdblist.com/lists/tester/favorites\"]", server.URL)
	env := setupCLITestEnv(t, extra)

	out, _, err := runCLI(t, []string{"refresh", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	var summary refreshSummaryJSON
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode summary: %v\noutput: %s", err, out)
	}
	if summary.ListCount != 1 {
		t.Fatalf("list count = %d", summary.ListCount)
	}
	if len(summary.Entries) != 1 || summary.Entries[0].TotalItems != 1 {
		t.Fatalf("unexpected entries: %+v", summary.Entries)
	}
}

func TestRefreshFailsWithoutURLs(t *testing.T) {
	env := setupCLITestEnv(t, "")

	_, _, err := runCLI(t, []string{"refresh"}, env.configPath)
	if err == nil {
		t.Fatal("expected error when nothing is configured")
	}
	requireContains(t, err.Error(), "no external list urls configured")
}
