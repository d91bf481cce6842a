package catalog

import (
	"context"
	"strings"

	"github.com/gymstack/nutricore/internal/storage"
)

// Service handles food catalog lookups.
type Service struct {
	storage    storage.CatalogStorage
	maxResults int
}

// NewService creates a new catalog service.
func NewService(st storage.CatalogStorage, maxResults int) *Service {
	if maxResults <= 0 {
		maxResults = 50
	}
	return &Service{storage: st, maxResults: maxResults}
}

// Search filters the catalog by optional substring name and exact
// category. A category of "all" means no category filter.
func (s *Service) Search(ctx context.Context, name, category string) ([]storage.FoodItem, int, error) {
	if strings.EqualFold(category, "all") {
		category = ""
	}
	return s.storage.SearchFoods(ctx, name, category, s.maxResults)
}
