package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gymstack/nutricore/internal/storage"
)

type catalogStorage struct {
	pool *pgxpool.Pool
}

func newCatalogStorage(pool *pgxpool.Pool) *catalogStorage {
	return &catalogStorage{pool: pool}
}

// SearchFoods filters by case-insensitive substring name match and exact
// category, both optional. Returns at most limit rows plus the total
// match count.
func (s *catalogStorage) SearchFoods(ctx context.Context, name, category string, limit int) ([]storage.FoodItem, int, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)

	query := `
		SELECT id, name, category,
		       calories_per_100g, protein_per_100g, carbs_per_100g,
		       fats_per_100g, fiber_per_100g, sugar_per_100g,
		       count(*) OVER () AS total
		FROM food_catalog
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR lower(category) = lower($2))
		ORDER BY name ASC
		LIMIT $3
	`

	if limit <= 0 {
		limit = 100
	}

	rows, err := s.pool.Query(ctx, query, name, category, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search foods: %w", err)
	}
	defer rows.Close()

	foods := []storage.FoodItem{}
	total := 0
	for rows.Next() {
		var f storage.FoodItem
		err := rows.Scan(
			&f.ID,
			&f.Name,
			&f.Category,
			&f.CaloriesPer100g,
			&f.ProteinPer100g,
			&f.CarbsPer100g,
			&f.FatsPer100g,
			&f.FiberPer100g,
			&f.SugarPer100g,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan food: %w", err)
		}
		foods = append(foods, f)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating foods: %w", rows.Err())
	}

	return foods, total, nil
}
