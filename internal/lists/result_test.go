package lists_test

import (
	"testing"

	"smartlists/internal/lists"
)

func TestAddItemAdvancesPositionForIdentifierlessItems(t *testing.T) {
	result := lists.NewFetchResult()
	result.AddItem("tt0000001", "", "")
	result.AddItem("", "", "")
	result.AddItem("tt0000002", "", "")

	if result.TotalItems != 3 {
		t.Fatalf("TotalItems = %d, want 3", result.TotalItems)
	}
	if pos, ok := result.PositionByIMDb("tt0000001"); !ok || pos != 0 {
		t.Fatalf("first id position = %d (%v), want 0", pos, ok)
	}
	if pos, ok := result.PositionByIMDb("tt0000002"); !ok || pos != 2 {
		t.Fatalf("id after identifier-less item position = %d (%v), want 2", pos, ok)
	}
}

func TestAddItemFirstSeenWins(t *testing.T) {
	result := lists.NewFetchResult()
	result.AddItem("tt0000001", "603", "7")
	result.AddItem("tt0000001", "603", "7")

	if result.TotalItems != 2 {
		t.Fatalf("TotalItems = %d, want 2", result.TotalItems)
	}
	if pos, _ := result.PositionByIMDb("tt0000001"); pos != 0 {
		t.Fatalf("imdb position = %d, want 0", pos)
	}
	if pos, _ := result.PositionByTMDb("603"); pos != 0 {
		t.Fatalf("tmdb position = %d, want 0", pos)
	}
	if pos, _ := result.PositionByTVDb("7"); pos != 0 {
		t.Fatalf("tvdb position = %d, want 0", pos)
	}
}

func TestAddItemNormalizesAllFamilies(t *testing.T) {
	result := lists.NewFetchResult()
	result.AddItem(" TT0133093 ", "0042", "7")

	if pos, ok := result.PositionByIMDb("tt0133093"); !ok || pos != 0 {
		t.Fatalf("imdb lookup = %d (%v)", pos, ok)
	}
	if pos, ok := result.PositionByTMDb("42"); !ok || pos != 0 {
		t.Fatalf("tmdb lookup = %d (%v)", pos, ok)
	}
	if _, ok := result.PositionByTMDb("0042"); !ok {
		t.Fatal("expected padded tmdb query to normalize")
	}
	if pos, ok := result.PositionByTVDb("7"); !ok || pos != 0 {
		t.Fatalf("tvdb lookup = %d (%v)", pos, ok)
	}
}

func TestAddItemIgnoresMalformedIdentifiers(t *testing.T) {
	result := lists.NewFetchResult()
	result.AddItem("not-an-id", "abc", "-3")

	if result.TotalItems != 1 {
		t.Fatalf("TotalItems = %d, want 1", result.TotalItems)
	}
	if len(result.IMDb) != 0 || len(result.TMDb) != 0 || len(result.TVDb) != 0 {
		t.Fatalf("expected empty indexes, got %v %v %v", result.IMDb, result.TMDb, result.TVDb)
	}
}

func TestAddIMDbIDDropsDuplicatesWithoutConsumingPositions(t *testing.T) {
	result := lists.NewFetchResult()
	result.AddIMDbID("tt0000001")
	result.AddIMDbID("tt0000002")
	result.AddIMDbID("tt0000001")
	result.AddIMDbID("tt0000003")

	if result.TotalItems != 3 {
		t.Fatalf("TotalItems = %d, want 3", result.TotalItems)
	}
	if pos, _ := result.PositionByIMDb("tt0000001"); pos != 0 {
		t.Fatalf("duplicate kept position %d, want first occurrence 0", pos)
	}
	if pos, _ := result.PositionByIMDb("tt0000003"); pos != 2 {
		t.Fatalf("third distinct id position = %d, want 2", pos)
	}
}

func TestEmpty(t *testing.T) {
	result := lists.NewFetchResult()
	if !result.Empty() {
		t.Fatal("new result should be empty")
	}
	result.AddItem("", "", "")
	if result.Empty() {
		t.Fatal("result with observed items should not be empty")
	}
}
