package catalog

import "github.com/gymstack/nutricore/internal/storage"

// SearchResponse is returned by GET /v1/catalog/foods.
type SearchResponse struct {
	Items []storage.FoodItem `json:"items"`
	Total int                `json:"total"`
}
