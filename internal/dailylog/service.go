package dailylog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gymstack/nutricore/internal/storage"
)

// Service contains business logic for daily food logs.
type Service struct {
	storage           storage.DailyLogStorage
	maxEntriesPerMeal int
}

// NewService creates a new daily log service.
func NewService(st storage.DailyLogStorage, maxEntriesPerMeal int) *Service {
	if maxEntriesPerMeal <= 0 {
		maxEntriesPerMeal = 100
	}
	return &Service{storage: st, maxEntriesPerMeal: maxEntriesPerMeal}
}

// AddEntry appends a food snapshot to one meal of the user's daily log,
// creating the log on first write. The returned log carries the updated
// running totals.
func (s *Service) AddEntry(ctx context.Context, req AddEntryRequest) (storage.DailyFoodLog, error) {
	if err := req.Validate(); err != nil {
		return storage.DailyFoodLog{}, fmt.Errorf("validation failed: %w", err)
	}

	meal, _ := storage.ParseMealType(req.MealType)

	// The per-meal cap is best effort: it reads the current count before
	// the atomic append, so concurrent adds racing past the check can
	// briefly exceed it. The cap is a payload-size guard, not an
	// invariant.
	existing, found, err := s.storage.GetLog(ctx, req.User, req.Date)
	if err != nil {
		return storage.DailyFoodLog{}, fmt.Errorf("failed to load daily log: %w", err)
	}
	if found {
		bucket := existing.Meals.Bucket(meal)
		if bucket != nil && len(*bucket) >= s.maxEntriesPerMeal {
			return storage.DailyFoodLog{}, fmt.Errorf("validation failed: meal %s already has the maximum of %d entries", meal, s.maxEntriesPerMeal)
		}
	}

	snap := storage.NewFoodSnapshot(req.Food, req.Servings)
	log, err := s.storage.AppendEntry(ctx, req.User, req.Date, meal, snap, req.TotalGoalCalories, req.BMI)
	if err != nil {
		return storage.DailyFoodLog{}, fmt.Errorf("failed to append entry: %w", err)
	}
	return log, nil
}

// RemoveEntry removes the entry at the given position of one meal and
// returns the updated log.
func (s *Service) RemoveEntry(ctx context.Context, req RemoveEntryRequest) (storage.DailyFoodLog, error) {
	if err := req.Validate(); err != nil {
		return storage.DailyFoodLog{}, fmt.Errorf("validation failed: %w", err)
	}

	meal, _ := storage.ParseMealType(req.MealType)

	log, err := s.storage.RemoveEntry(ctx, req.User, req.Date, meal, req.Index)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrOutOfRange) {
			return storage.DailyFoodLog{}, err
		}
		return storage.DailyFoodLog{}, fmt.Errorf("failed to remove entry: %w", err)
	}
	return log, nil
}

// GetMeal returns one meal of the user's log for the given date along
// with day-level totals. A missing log yields a zero view, not an
// error. An empty date defaults to today in UTC.
func (s *Service) GetMeal(ctx context.Context, userID, date, mealType string) (MealView, error) {
	if userID == "" {
		return MealView{}, fmt.Errorf("validation failed: user is required")
	}
	meal, err := storage.ParseMealType(mealType)
	if err != nil {
		return MealView{}, fmt.Errorf("validation failed: %w", err)
	}
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	} else if err := validateDate(date); err != nil {
		return MealView{}, fmt.Errorf("validation failed: %w", err)
	}

	log, found, err := s.storage.GetLog(ctx, userID, date)
	if err != nil {
		return MealView{}, fmt.Errorf("failed to load daily log: %w", err)
	}
	if !found {
		return emptyMealView(), nil
	}
	return buildMealView(log, meal), nil
}

func emptyMealView() MealView {
	return MealView{
		Meal:     []storage.FoodSnapshot{},
		AllMeals: storage.NewMealBuckets(),
	}
}

func buildMealView(log storage.DailyFoodLog, meal storage.MealType) MealView {
	view := MealView{
		AllMeals:          log.Meals,
		TotalCalories:     log.TotalCalories,
		TotalProtein:      log.TotalProtein,
		TotalCarbs:        log.TotalCarbs,
		TotalFats:         log.TotalFats,
		TotalGoalCalories: log.TotalGoalCalories,
		BMI:               log.BMI,
	}

	bucket := log.Meals.Bucket(meal)
	if bucket != nil {
		view.Meal = *bucket
	}
	if view.Meal == nil {
		view.Meal = []storage.FoodSnapshot{}
	}

	// Fiber and sugar are not tracked incrementally, so both are
	// recomputed from the snapshots on every read.
	sum := log.Meals.SumCalculated()
	view.TotalFiber = sum.Fiber
	view.TotalSugar = sum.Sugar

	view.BreakfastCalories = storage.SumCalories(log.Meals.Breakfast)
	view.LunchCalories = storage.SumCalories(log.Meals.Lunch)
	view.DinnerCalories = storage.SumCalories(log.Meals.Dinner)
	view.SnacksCalories = storage.SumCalories(log.Meals.Snacks)

	return view
}
