package coub

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/amaumene/coubarr/internal/models"
)

// SavePagesDump persists all fetched likes pages as a single JSON dump so
// pagination is not repeated on subsequent runs
func SavePagesDump(path string, pages []models.LikesPage) error {
	data, err := json.Marshal(pages)
	if err != nil {
		return fmt.Errorf("failed to marshal pages dump: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write pages dump: %w", err)
	}

	return nil
}

// LoadPagesDump reads a previously persisted pages dump
func LoadPagesDump(path string) ([]models.LikesPage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pages dump: %w", err)
	}

	var pages []models.LikesPage
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("failed to parse pages dump: %w", err)
	}

	return pages, nil
}

// CoubsFromPages flattens the pages into one coub sequence, preserving page
// order and the platform's in-page order. A page with a null coubs body
// contributes zero items.
func CoubsFromPages(pages []models.LikesPage) []models.Coub {
	var coubs []models.Coub
	for _, page := range pages {
		coubs = append(coubs, page.Coubs...)
	}
	return coubs
}
