package memory

import (
	"context"
	"sync"
	"time"

	"github.com/gymstack/nutricore/internal/storage"
)

type weeklyPlansStorage struct {
	mu    sync.RWMutex
	plans map[string]*storage.WeeklyPlan // key: "userID:weekStart"
}

func newWeeklyPlansStorage() *weeklyPlansStorage {
	return &weeklyPlansStorage{
		plans: make(map[string]*storage.WeeklyPlan),
	}
}

// AppendPlanItems adds items to one day's slots, materializing the full
// seven-day skeleton on the first write for that week.
func (s *weeklyPlansStorage) AppendPlanItems(ctx context.Context, userID, weekStart string, day storage.Weekday, items storage.DayPlan) (storage.WeeklyPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	key := logKey(userID, weekStart)

	plan, ok := s.plans[key]
	if !ok {
		plan = &storage.WeeklyPlan{
			UserID:        userID,
			WeekStartDate: weekStart,
			Plan:          storage.NewWeekGrid(),
			CreatedAt:     now,
		}
		s.plans[key] = plan
	}

	plan.Plan.Day(day).AppendItems(items)
	plan.UpdatedAt = now

	return clonePlan(plan), nil
}

// RemovePlanItem filters the item with the given id out of one slot.
// A missing id leaves the plan unchanged.
func (s *weeklyPlansStorage) RemovePlanItem(ctx context.Context, userID, weekStart string, day storage.Weekday, slot storage.PlanSlot, foodID string) (storage.WeeklyPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan, ok := s.plans[logKey(userID, weekStart)]
	if !ok {
		return storage.WeeklyPlan{}, storage.ErrNotFound
	}

	plan.Plan.Day(day).RemoveByID(slot, foodID)
	plan.UpdatedAt = time.Now().UTC()

	return clonePlan(plan), nil
}

func (s *weeklyPlansStorage) GetPlan(ctx context.Context, userID, weekStart string) (storage.WeeklyPlan, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plans[logKey(userID, weekStart)]
	if !ok {
		return storage.WeeklyPlan{}, false, nil
	}

	return clonePlan(plan), true, nil
}

func clonePlan(plan *storage.WeeklyPlan) storage.WeeklyPlan {
	out := *plan
	grid := storage.NewWeekGrid()
	for _, day := range storage.Weekdays {
		src := plan.Plan.Day(day)
		dst := grid.Day(day)
		dst.Breakfast = cloneBucket(src.Breakfast)
		dst.Lunch = cloneBucket(src.Lunch)
		dst.Dinner = cloneBucket(src.Dinner)
	}
	out.Plan = grid
	return out
}
