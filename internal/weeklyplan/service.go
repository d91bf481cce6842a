package weeklyplan

import (
	"context"
	"errors"
	"fmt"

	"github.com/gymstack/nutricore/internal/storage"
)

// Service contains business logic for weekly meal plans.
type Service struct {
	storage storage.WeeklyPlanStorage
}

// NewService creates a new weekly plan service.
func NewService(st storage.WeeklyPlanStorage) *Service {
	return &Service{storage: st}
}

// AddPlanDay appends the requested items to one weekday of the user's
// plan, creating the full week skeleton on first write. Planned items
// are snapshotted at a single serving.
func (s *Service) AddPlanDay(ctx context.Context, req AddPlanDayRequest) (storage.WeeklyPlan, error) {
	if err := req.Validate(); err != nil {
		return storage.WeeklyPlan{}, fmt.Errorf("validation failed: %w", err)
	}

	day, _ := storage.ParseWeekday(req.Day)
	items := storage.DayPlan{
		Breakfast: snapshotItems(req.Meals.Breakfast),
		Lunch:     snapshotItems(req.Meals.Lunch),
		Dinner:    snapshotItems(req.Meals.Dinner),
	}

	plan, err := s.storage.AppendPlanItems(ctx, req.User, req.WeekStartDate, day, items)
	if err != nil {
		return storage.WeeklyPlan{}, fmt.Errorf("failed to append plan items: %w", err)
	}
	return plan, nil
}

// RemovePlanItem drops every item with the given food id from one slot
// of one weekday. Removing an id that is not present leaves the plan
// unchanged.
func (s *Service) RemovePlanItem(ctx context.Context, req RemovePlanItemRequest) (storage.WeeklyPlan, error) {
	if err := req.Validate(); err != nil {
		return storage.WeeklyPlan{}, fmt.Errorf("validation failed: %w", err)
	}

	day, _ := storage.ParseWeekday(req.Day)
	slot, _ := storage.ParsePlanSlot(req.MealType)

	plan, err := s.storage.RemovePlanItem(ctx, req.User, req.WeekStartDate, day, slot, req.FoodID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.WeeklyPlan{}, err
		}
		return storage.WeeklyPlan{}, fmt.Errorf("failed to remove plan item: %w", err)
	}
	return plan, nil
}

// GetPlan returns the user's plan for the given week start date. Unlike
// daily logs, a missing plan is reported as storage.ErrNotFound.
func (s *Service) GetPlan(ctx context.Context, userID, weekStart string) (storage.WeeklyPlan, error) {
	if userID == "" {
		return storage.WeeklyPlan{}, fmt.Errorf("validation failed: user is required")
	}
	if err := validateWeekStart(weekStart); err != nil {
		return storage.WeeklyPlan{}, fmt.Errorf("validation failed: %w", err)
	}

	plan, found, err := s.storage.GetPlan(ctx, userID, weekStart)
	if err != nil {
		return storage.WeeklyPlan{}, fmt.Errorf("failed to load weekly plan: %w", err)
	}
	if !found {
		return storage.WeeklyPlan{}, storage.ErrNotFound
	}
	return plan, nil
}

func snapshotItems(items []storage.FoodItem) []storage.FoodSnapshot {
	snaps := make([]storage.FoodSnapshot, len(items))
	for i, item := range items {
		snaps[i] = storage.NewFoodSnapshot(item, 1)
	}
	return snaps
}
