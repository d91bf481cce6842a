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

type dailyLogsStorage struct {
	pool *pgxpool.Pool
}

func newDailyLogsStorage(pool *pgxpool.Pool) *dailyLogsStorage {
	return &dailyLogsStorage{pool: pool}
}

const emptyBuckets = `{"breakfast":[],"lunch":[],"dinner":[],"snacks":[]}`

// AppendEntry upserts the day's row in a single statement. The insert
// branch seeds an empty-bucket skeleton with the snapshot appended; the
// conflict branch appends to the existing bucket and increments the
// totals server-side, so concurrent appends for the same day serialize
// on the row without losing updates.
func (s *dailyLogsStorage) AppendEntry(ctx context.Context, userID, date string, meal storage.MealType, snap storage.FoodSnapshot, goalCalories, bmi *float64) (storage.DailyFoodLog, error) {
	snapJSON, err := json.Marshal(snap)
	if err != nil {
		return storage.DailyFoodLog{}, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	query := `
		INSERT INTO daily_food_logs (
			user_id, log_date, meals,
			total_calories, total_protein, total_carbs, total_fats,
			total_goal_calories, bmi
		)
		VALUES (
			$1, $2,
			jsonb_set($3::jsonb, ARRAY[$4], jsonb_build_array($5::jsonb)),
			$6, $7, $8, $9,
			COALESCE($10::double precision, 0), COALESCE($11::double precision, 0)
		)
		ON CONFLICT (user_id, log_date) DO UPDATE SET
			meals = jsonb_set(
				daily_food_logs.meals,
				ARRAY[$4],
				daily_food_logs.meals -> $4 || jsonb_build_array($5::jsonb)
			),
			total_calories = daily_food_logs.total_calories + $6,
			total_protein  = daily_food_logs.total_protein + $7,
			total_carbs    = daily_food_logs.total_carbs + $8,
			total_fats     = daily_food_logs.total_fats + $9,
			total_goal_calories = COALESCE($10::double precision, daily_food_logs.total_goal_calories),
			bmi = COALESCE($11::double precision, daily_food_logs.bmi),
			updated_at = now()
		RETURNING user_id, log_date, meals,
		          total_calories, total_protein, total_carbs, total_fats,
		          total_goal_calories, bmi, created_at, updated_at
	`

	var log storage.DailyFoodLog
	err = s.pool.QueryRow(ctx, query,
		userID,
		date,
		emptyBuckets,
		string(meal),
		snapJSON,
		snap.Calculated.Calories,
		snap.Calculated.Protein,
		snap.Calculated.Carbs,
		snap.Calculated.Fats,
		goalCalories,
		bmi,
	).Scan(
		&log.UserID,
		&log.Date,
		&log.Meals,
		&log.TotalCalories,
		&log.TotalProtein,
		&log.TotalCarbs,
		&log.TotalFats,
		&log.TotalGoalCalories,
		&log.BMI,
		&log.CreatedAt,
		&log.UpdatedAt,
	)
	if err != nil {
		return storage.DailyFoodLog{}, fmt.Errorf("failed to append log entry: %w", err)
	}

	return log, nil
}

// RemoveEntry loads the row under a row lock, applies the splice and
// totals subtraction, and writes the result back in one transaction.
func (s *dailyLogsStorage) RemoveEntry(ctx context.Context, userID, date string, meal storage.MealType, index int) (storage.DailyFoodLog, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return storage.DailyFoodLog{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	selectQuery := `
		SELECT user_id, log_date, meals,
		       total_calories, total_protein, total_carbs, total_fats,
		       total_goal_calories, bmi, created_at, updated_at
		FROM daily_food_logs
		WHERE user_id = $1 AND log_date = $2
		FOR UPDATE
	`

	var log storage.DailyFoodLog
	err = tx.QueryRow(ctx, selectQuery, userID, date).Scan(
		&log.UserID,
		&log.Date,
		&log.Meals,
		&log.TotalCalories,
		&log.TotalProtein,
		&log.TotalCarbs,
		&log.TotalFats,
		&log.TotalGoalCalories,
		&log.BMI,
		&log.CreatedAt,
		&log.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.DailyFoodLog{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.DailyFoodLog{}, fmt.Errorf("failed to load log: %w", err)
	}

	if err := log.ApplyRemove(meal, index); err != nil {
		return storage.DailyFoodLog{}, err
	}

	mealsJSON, err := json.Marshal(log.Meals)
	if err != nil {
		return storage.DailyFoodLog{}, fmt.Errorf("failed to marshal meals: %w", err)
	}

	updateQuery := `
		UPDATE daily_food_logs
		SET meals = $3,
		    total_calories = $4, total_protein = $5, total_carbs = $6, total_fats = $7,
		    updated_at = now()
		WHERE user_id = $1 AND log_date = $2
		RETURNING updated_at
	`
	err = tx.QueryRow(ctx, updateQuery, userID, date,
		mealsJSON,
		log.TotalCalories,
		log.TotalProtein,
		log.TotalCarbs,
		log.TotalFats,
	).Scan(&log.UpdatedAt)
	if err != nil {
		return storage.DailyFoodLog{}, fmt.Errorf("failed to update log: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return storage.DailyFoodLog{}, fmt.Errorf("failed to commit: %w", err)
	}

	return log, nil
}

func (s *dailyLogsStorage) GetLog(ctx context.Context, userID, date string) (storage.DailyFoodLog, bool, error) {
	query := `
		SELECT user_id, log_date, meals,
		       total_calories, total_protein, total_carbs, total_fats,
		       total_goal_calories, bmi, created_at, updated_at
		FROM daily_food_logs
		WHERE user_id = $1 AND log_date = $2
	`

	var log storage.DailyFoodLog
	err := s.pool.QueryRow(ctx, query, userID, date).Scan(
		&log.UserID,
		&log.Date,
		&log.Meals,
		&log.TotalCalories,
		&log.TotalProtein,
		&log.TotalCarbs,
		&log.TotalFats,
		&log.TotalGoalCalories,
		&log.BMI,
		&log.CreatedAt,
		&log.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.DailyFoodLog{}, false, nil
	}
	if err != nil {
		return storage.DailyFoodLog{}, false, fmt.Errorf("failed to get log: %w", err)
	}

	return log, true, nil
}
