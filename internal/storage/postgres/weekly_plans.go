package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gymstack/nutricore/internal/storage"
)

type weeklyPlansStorage struct {
	pool *pgxpool.Pool
}

func newWeeklyPlansStorage(pool *pgxpool.Pool) *weeklyPlansStorage {
	return &weeklyPlansStorage{pool: pool}
}

// AppendPlanItems inserts the seven-day skeleton if the week has no row
// yet, then appends the items onto the day's slots in one UPDATE. Under
// read committed the UPDATE re-reads the row after any lock wait, so
// concurrent appends both land.
func (s *weeklyPlansStorage) AppendPlanItems(ctx context.Context, userID, weekStart string, day storage.Weekday, items storage.DayPlan) (storage.WeeklyPlan, error) {
	skeleton, err := json.Marshal(storage.NewWeekGrid())
	if err != nil {
		return storage.WeeklyPlan{}, fmt.Errorf("failed to marshal skeleton: %w", err)
	}

	insertQuery := `
		INSERT INTO weekly_plans (user_id, week_start, plan)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, week_start) DO NOTHING
	`
	if _, err := s.pool.Exec(ctx, insertQuery, userID, weekStart, skeleton); err != nil {
		return storage.WeeklyPlan{}, fmt.Errorf("failed to ensure plan row: %w", err)
	}

	breakfastJSON, err := json.Marshal(items.Breakfast)
	if err != nil {
		return storage.WeeklyPlan{}, fmt.Errorf("failed to marshal items: %w", err)
	}
	lunchJSON, err := json.Marshal(items.Lunch)
	if err != nil {
		return storage.WeeklyPlan{}, fmt.Errorf("failed to marshal items: %w", err)
	}
	dinnerJSON, err := json.Marshal(items.Dinner)
	if err != nil {
		return storage.WeeklyPlan{}, fmt.Errorf("failed to marshal items: %w", err)
	}

	updateQuery := `
		UPDATE weekly_plans
		SET plan = jsonb_set(jsonb_set(jsonb_set(plan,
			ARRAY[$3, 'Breakfast'], (plan #> ARRAY[$3, 'Breakfast']) || $4::jsonb),
			ARRAY[$3, 'Lunch'],     (plan #> ARRAY[$3, 'Lunch']) || $5::jsonb),
			ARRAY[$3, 'Dinner'],    (plan #> ARRAY[$3, 'Dinner']) || $6::jsonb),
		    updated_at = now()
		WHERE user_id = $1 AND week_start = $2
		RETURNING user_id, week_start, plan, created_at, updated_at
	`

	var plan storage.WeeklyPlan
	err = s.pool.QueryRow(ctx, updateQuery, userID, weekStart,
		string(day), breakfastJSON, lunchJSON, dinnerJSON,
	).Scan(
		&plan.UserID,
		&plan.WeekStartDate,
		&plan.Plan,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return storage.WeeklyPlan{}, fmt.Errorf("failed to append plan items: %w", err)
	}

	return plan, nil
}

// RemovePlanItem filters the item out of one slot server-side. A missing
// id rewrites the slot unchanged.
func (s *weeklyPlansStorage) RemovePlanItem(ctx context.Context, userID, weekStart string, day storage.Weekday, slot storage.PlanSlot, foodID string) (storage.WeeklyPlan, error) {
	query := `
		UPDATE weekly_plans
		SET plan = jsonb_set(plan, ARRAY[$3, $4], COALESCE(
			(SELECT jsonb_agg(item)
			 FROM jsonb_array_elements(plan #> ARRAY[$3, $4]) AS item
			 WHERE item ->> 'id' <> $5),
			'[]'::jsonb)),
		    updated_at = now()
		WHERE user_id = $1 AND week_start = $2
		RETURNING user_id, week_start, plan, created_at, updated_at
	`

	var plan storage.WeeklyPlan
	err := s.pool.QueryRow(ctx, query, userID, weekStart,
		string(day), string(slot), foodID,
	).Scan(
		&plan.UserID,
		&plan.WeekStartDate,
		&plan.Plan,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.WeeklyPlan{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.WeeklyPlan{}, fmt.Errorf("failed to remove plan item: %w", err)
	}

	return plan, nil
}

func (s *weeklyPlansStorage) GetPlan(ctx context.Context, userID, weekStart string) (storage.WeeklyPlan, bool, error) {
	query := `
		SELECT user_id, week_start, plan, created_at, updated_at
		FROM weekly_plans
		WHERE user_id = $1 AND week_start = $2
	`

	var plan storage.WeeklyPlan
	err := s.pool.QueryRow(ctx, query, userID, weekStart).Scan(
		&plan.UserID,
		&plan.WeekStartDate,
		&plan.Plan,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.WeeklyPlan{}, false, nil
	}
	if err != nil {
		return storage.WeeklyPlan{}, false, fmt.Errorf("failed to get plan: %w", err)
	}

	return plan, true, nil
}
