package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gymstack/nutricore/internal/storage"
)

type dailyLogsStorage struct {
	mu   sync.RWMutex
	logs map[string]*storage.DailyFoodLog // key: "userID:date"
}

func newDailyLogsStorage() *dailyLogsStorage {
	return &dailyLogsStorage{
		logs: make(map[string]*storage.DailyFoodLog),
	}
}

func logKey(userID, date string) string {
	return fmt.Sprintf("%s:%s", userID, date)
}

// AppendEntry adds a snapshot to the given bucket and bumps the stored
// totals in one locked section, creating the day's log on first write.
func (s *dailyLogsStorage) AppendEntry(ctx context.Context, userID, date string, meal storage.MealType, snap storage.FoodSnapshot, goalCalories, bmi *float64) (storage.DailyFoodLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	key := logKey(userID, date)

	log, ok := s.logs[key]
	if !ok {
		log = &storage.DailyFoodLog{
			UserID:    userID,
			Date:      date,
			Meals:     storage.NewMealBuckets(),
			CreatedAt: now,
		}
		s.logs[key] = log
	}

	log.ApplyAdd(meal, snap)
	if goalCalories != nil {
		log.TotalGoalCalories = *goalCalories
	}
	if bmi != nil {
		log.BMI = *bmi
	}
	log.UpdatedAt = now

	return cloneLog(log), nil
}

// RemoveEntry splices the snapshot at index out of the bucket and
// subtracts its calculated values from the totals.
func (s *dailyLogsStorage) RemoveEntry(ctx context.Context, userID, date string, meal storage.MealType, index int) (storage.DailyFoodLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, ok := s.logs[logKey(userID, date)]
	if !ok {
		return storage.DailyFoodLog{}, storage.ErrNotFound
	}

	if err := log.ApplyRemove(meal, index); err != nil {
		return storage.DailyFoodLog{}, err
	}
	log.UpdatedAt = time.Now().UTC()

	return cloneLog(log), nil
}

func (s *dailyLogsStorage) GetLog(ctx context.Context, userID, date string) (storage.DailyFoodLog, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log, ok := s.logs[logKey(userID, date)]
	if !ok {
		return storage.DailyFoodLog{}, false, nil
	}

	return cloneLog(log), true, nil
}

// cloneLog copies the log with fresh bucket slices so callers can never
// mutate stored state through a returned value.
func cloneLog(log *storage.DailyFoodLog) storage.DailyFoodLog {
	out := *log
	out.Meals = storage.MealBuckets{
		Breakfast: cloneBucket(log.Meals.Breakfast),
		Lunch:     cloneBucket(log.Meals.Lunch),
		Dinner:    cloneBucket(log.Meals.Dinner),
		Snacks:    cloneBucket(log.Meals.Snacks),
	}
	return out
}

// cloneBucket always returns a non-nil slice so empty buckets serialize
// as [] rather than null.
func cloneBucket(in []storage.FoodSnapshot) []storage.FoodSnapshot {
	out := make([]storage.FoodSnapshot, len(in))
	copy(out, in)
	return out
}
