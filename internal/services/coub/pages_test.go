package coub

import (
	"path/filepath"
	"testing"

	"github.com/amaumene/coubarr/internal/models"
)

func TestPagesDumpRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "likes.json")
	pages := []models.LikesPage{
		{Page: 1, TotalPages: 2, Coubs: []models.Coub{{Permalink: "first"}}},
		{Page: 2, TotalPages: 2, Coubs: []models.Coub{{Permalink: "second"}, {Permalink: "third"}}},
	}

	if err := SavePagesDump(path, pages); err != nil {
		t.Fatalf("SavePagesDump failed: %v", err)
	}

	loaded, err := LoadPagesDump(path)
	if err != nil {
		t.Fatalf("LoadPagesDump failed: %v", err)
	}

	coubs := CoubsFromPages(loaded)
	want := []string{"first", "second", "third"}
	if len(coubs) != len(want) {
		t.Fatalf("Expected %d coubs, got %d", len(want), len(coubs))
	}
	for i, permalink := range want {
		if coubs[i].Permalink != permalink {
			t.Errorf("Coub %d: expected %q, got %q", i, permalink, coubs[i].Permalink)
		}
	}
}

func TestLoadPagesDumpMissing(t *testing.T) {
	if _, err := LoadPagesDump(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("Expected an error for a missing pages dump")
	}
}
