package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gymstack/nutricore/internal/storage"
)

type catalogStorage struct {
	mu    sync.RWMutex
	foods []storage.FoodItem
}

func newCatalogStorage() *catalogStorage {
	foods := make([]storage.FoodItem, 0, len(seedFoods))
	for _, f := range seedFoods {
		f.ID = uuid.New().String()
		foods = append(foods, f)
	}
	return &catalogStorage{foods: foods}
}

// SearchFoods filters the catalog by substring name match and exact
// category, both optional. It returns at most limit items plus the
// total number of matches before the cut.
func (s *catalogStorage) SearchFoods(ctx context.Context, name, category string, limit int) ([]storage.FoodItem, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.ToLower(strings.TrimSpace(name))
	category = strings.ToLower(strings.TrimSpace(category))

	matches := []storage.FoodItem{}
	for _, f := range s.foods {
		if name != "" && !strings.Contains(strings.ToLower(f.Name), name) {
			continue
		}
		if category != "" && strings.ToLower(f.Category) != category {
			continue
		}
		matches = append(matches, f)
	}

	total := len(matches)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	return matches, total, nil
}

// seedFoods mirrors the rows installed by the catalog seed migration so
// both backends answer searches out of the box.
var seedFoods = []storage.FoodItem{
	{Name: "Oatmeal", Category: "grains", CaloriesPer100g: 389, ProteinPer100g: 16.9, CarbsPer100g: 66.3, FatsPer100g: 6.9, FiberPer100g: 10.6, SugarPer100g: 0.99},
	{Name: "White Rice", Category: "grains", CaloriesPer100g: 130, ProteinPer100g: 2.7, CarbsPer100g: 28.2, FatsPer100g: 0.3, FiberPer100g: 0.4, SugarPer100g: 0.1},
	{Name: "Whole Wheat Bread", Category: "grains", CaloriesPer100g: 247, ProteinPer100g: 13, CarbsPer100g: 41, FatsPer100g: 3.4, FiberPer100g: 7, SugarPer100g: 5.7},
	{Name: "Chicken Breast", Category: "protein", CaloriesPer100g: 165, ProteinPer100g: 31, CarbsPer100g: 0, FatsPer100g: 3.6, FiberPer100g: 0, SugarPer100g: 0},
	{Name: "Salmon", Category: "protein", CaloriesPer100g: 208, ProteinPer100g: 20, CarbsPer100g: 0, FatsPer100g: 13, FiberPer100g: 0, SugarPer100g: 0},
	{Name: "Eggs", Category: "protein", CaloriesPer100g: 155, ProteinPer100g: 13, CarbsPer100g: 1.1, FatsPer100g: 11, FiberPer100g: 0, SugarPer100g: 1.1},
	{Name: "Tofu", Category: "protein", CaloriesPer100g: 76, ProteinPer100g: 8, CarbsPer100g: 1.9, FatsPer100g: 4.8, FiberPer100g: 0.3, SugarPer100g: 0.6},
	{Name: "Greek Yogurt", Category: "dairy", CaloriesPer100g: 59, ProteinPer100g: 10, CarbsPer100g: 3.6, FatsPer100g: 0.4, FiberPer100g: 0, SugarPer100g: 3.2},
	{Name: "Cheddar Cheese", Category: "dairy", CaloriesPer100g: 403, ProteinPer100g: 25, CarbsPer100g: 1.3, FatsPer100g: 33, FiberPer100g: 0, SugarPer100g: 0.5},
	{Name: "Whole Milk", Category: "dairy", CaloriesPer100g: 61, ProteinPer100g: 3.2, CarbsPer100g: 4.8, FatsPer100g: 3.3, FiberPer100g: 0, SugarPer100g: 5.1},
	{Name: "Apple", Category: "fruit", CaloriesPer100g: 52, ProteinPer100g: 0.3, CarbsPer100g: 13.8, FatsPer100g: 0.2, FiberPer100g: 2.4, SugarPer100g: 10.4},
	{Name: "Banana", Category: "fruit", CaloriesPer100g: 89, ProteinPer100g: 1.1, CarbsPer100g: 22.8, FatsPer100g: 0.3, FiberPer100g: 2.6, SugarPer100g: 12.2},
	{Name: "Blueberries", Category: "fruit", CaloriesPer100g: 57, ProteinPer100g: 0.7, CarbsPer100g: 14.5, FatsPer100g: 0.3, FiberPer100g: 2.4, SugarPer100g: 10},
	{Name: "Broccoli", Category: "vegetable", CaloriesPer100g: 34, ProteinPer100g: 2.8, CarbsPer100g: 6.6, FatsPer100g: 0.4, FiberPer100g: 2.6, SugarPer100g: 1.7},
	{Name: "Spinach", Category: "vegetable", CaloriesPer100g: 23, ProteinPer100g: 2.9, CarbsPer100g: 3.6, FatsPer100g: 0.4, FiberPer100g: 2.2, SugarPer100g: 0.4},
	{Name: "Sweet Potato", Category: "vegetable", CaloriesPer100g: 86, ProteinPer100g: 1.6, CarbsPer100g: 20.1, FatsPer100g: 0.1, FiberPer100g: 3, SugarPer100g: 4.2},
	{Name: "Almonds", Category: "nuts", CaloriesPer100g: 579, ProteinPer100g: 21.2, CarbsPer100g: 21.6, FatsPer100g: 49.9, FiberPer100g: 12.5, SugarPer100g: 4.4},
	{Name: "Peanut Butter", Category: "nuts", CaloriesPer100g: 588, ProteinPer100g: 25, CarbsPer100g: 20, FatsPer100g: 50, FiberPer100g: 6, SugarPer100g: 9},
	{Name: "Olive Oil", Category: "fats", CaloriesPer100g: 884, ProteinPer100g: 0, CarbsPer100g: 0, FatsPer100g: 100, FiberPer100g: 0, SugarPer100g: 0},
	{Name: "Avocado", Category: "fats", CaloriesPer100g: 160, ProteinPer100g: 2, CarbsPer100g: 8.5, FatsPer100g: 14.7, FiberPer100g: 6.7, SugarPer100g: 0.7},
}
