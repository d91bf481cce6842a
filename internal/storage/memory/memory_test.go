package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/gymstack/nutricore/internal/storage"
)

func TestDailyLogs_AppendCreatesLog(t *testing.T) {
	s := New().GetDailyLogsStorage()
	ctx := context.Background()

	snap := storage.NewFoodSnapshot(storage.FoodItem{Name: "Oatmeal", CaloriesPer100g: 150, ProteinPer100g: 5}, 1)
	goal := 2000.0
	bmi := 22.5

	log, err := s.AppendEntry(ctx, "u1", "2024-01-21", storage.MealBreakfast, snap, &goal, &bmi)
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if log.UserID != "u1" || log.Date != "2024-01-21" {
		t.Errorf("unexpected log identity: %s %s", log.UserID, log.Date)
	}
	if log.TotalCalories != 150 {
		t.Errorf("expected totalCalories 150, got %v", log.TotalCalories)
	}
	if log.TotalGoalCalories != 2000 || log.BMI != 22.5 {
		t.Errorf("goal/bmi not applied: %v %v", log.TotalGoalCalories, log.BMI)
	}
	if len(log.Meals.Breakfast) != 1 {
		t.Fatalf("expected 1 breakfast entry, got %d", len(log.Meals.Breakfast))
	}
	if log.CreatedAt.IsZero() || log.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}
}

func TestDailyLogs_AppendDoesNotOverwriteGoalWhenNil(t *testing.T) {
	s := New().GetDailyLogsStorage()
	ctx := context.Background()

	goal := 1800.0
	snap := storage.NewFoodSnapshot(storage.FoodItem{Name: "Egg", CaloriesPer100g: 155}, 1)
	if _, err := s.AppendEntry(ctx, "u1", "2024-01-21", storage.MealBreakfast, snap, &goal, nil); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	log, err := s.AppendEntry(ctx, "u1", "2024-01-21", storage.MealLunch, snap, nil, nil)
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if log.TotalGoalCalories != 1800 {
		t.Errorf("nil goal must keep the stored value, got %v", log.TotalGoalCalories)
	}
}

func TestDailyLogs_RemoveEntry(t *testing.T) {
	s := New().GetDailyLogsStorage()
	ctx := context.Background()

	oatmeal := storage.NewFoodSnapshot(storage.FoodItem{Name: "Oatmeal", CaloriesPer100g: 150}, 1)
	sandwich := storage.NewFoodSnapshot(storage.FoodItem{Name: "Sandwich", CaloriesPer100g: 400}, 1)
	if _, err := s.AppendEntry(ctx, "u1", "2024-01-21", storage.MealBreakfast, oatmeal, nil, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AppendEntry(ctx, "u1", "2024-01-21", storage.MealLunch, sandwich, nil, nil); err != nil {
		t.Fatal(err)
	}

	log, err := s.RemoveEntry(ctx, "u1", "2024-01-21", storage.MealBreakfast, 0)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if log.TotalCalories != 400 {
		t.Errorf("expected totalCalories 400, got %v", log.TotalCalories)
	}
	if len(log.Meals.Breakfast) != 0 {
		t.Errorf("breakfast should be empty, got %d", len(log.Meals.Breakfast))
	}

	if _, err := s.RemoveEntry(ctx, "u1", "2024-01-21", storage.MealLunch, 5); !errors.Is(err, storage.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := s.RemoveEntry(ctx, "nobody", "2024-01-21", storage.MealLunch, 0); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDailyLogs_GetLogMissing(t *testing.T) {
	s := New().GetDailyLogsStorage()

	_, found, err := s.GetLog(context.Background(), "u1", "2024-01-21")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if found {
		t.Error("expected found=false for missing log")
	}
}

func TestDailyLogs_ReturnedLogIsDetached(t *testing.T) {
	s := New().GetDailyLogsStorage()
	ctx := context.Background()

	snap := storage.NewFoodSnapshot(storage.FoodItem{Name: "Apple", CaloriesPer100g: 52}, 1)
	log, err := s.AppendEntry(ctx, "u1", "2024-01-21", storage.MealSnacks, snap, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	// Mutating the returned copy must not touch stored state.
	log.Meals.Snacks[0].Name = "Tampered"
	log.TotalCalories = -1

	stored, found, err := s.GetLog(ctx, "u1", "2024-01-21")
	if err != nil || !found {
		t.Fatalf("get failed: %v found=%v", err, found)
	}
	if stored.Meals.Snacks[0].Name != "Apple" || stored.TotalCalories != 52 {
		t.Error("stored log was mutated through a returned copy")
	}
}

func TestDailyLogs_ConcurrentAppendsConverge(t *testing.T) {
	s := New().GetDailyLogsStorage()
	ctx := context.Background()

	const n = 64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			snap := storage.NewFoodSnapshot(storage.FoodItem{Name: "Bar", CaloriesPer100g: 100, ProteinPer100g: 10}, 1)
			if _, err := s.AppendEntry(ctx, "u1", "2024-01-21", storage.MealSnacks, snap, nil, nil); err != nil {
				t.Errorf("append failed: %v", err)
			}
		}()
	}
	wg.Wait()

	log, found, err := s.GetLog(ctx, "u1", "2024-01-21")
	if err != nil || !found {
		t.Fatalf("get failed: %v found=%v", err, found)
	}
	if len(log.Meals.Snacks) != n {
		t.Errorf("expected %d snacks entries, got %d", n, len(log.Meals.Snacks))
	}
	if log.TotalCalories != float64(n*100) {
		t.Errorf("expected totalCalories %d, got %v", n*100, log.TotalCalories)
	}
	sum := log.Meals.SumCalculated()
	if log.TotalCalories != sum.Calories || log.TotalProtein != sum.Protein {
		t.Errorf("totals diverged from bucket sums: %v vs %v", log.TotalCalories, sum.Calories)
	}
}

func TestWeeklyPlans_AppendMaterializesSkeleton(t *testing.T) {
	s := New().GetWeeklyPlansStorage()
	ctx := context.Background()

	item := storage.NewFoodSnapshot(storage.FoodItem{Name: "Salmon", CaloriesPer100g: 208}, 1)
	plan, err := s.AppendPlanItems(ctx, "u1", "2024-01-15", storage.Wednesday, storage.DayPlan{Lunch: []storage.FoodSnapshot{item}})
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}

	if len(plan.Plan.Wednesday.Lunch) != 1 {
		t.Fatalf("expected 1 lunch item on Wednesday, got %d", len(plan.Plan.Wednesday.Lunch))
	}
	// Every other day and slot exists, empty.
	for _, day := range storage.Weekdays {
		dp := plan.Plan.Day(day)
		for _, slot := range storage.PlanSlots {
			if *dp.Slot(slot) == nil {
				t.Errorf("%s/%s missing from skeleton", day, slot)
			}
		}
	}
	if len(plan.Plan.Monday.Breakfast) != 0 {
		t.Error("untouched slots should be empty")
	}
}

func TestWeeklyPlans_AppendAccumulates(t *testing.T) {
	s := New().GetWeeklyPlansStorage()
	ctx := context.Background()

	a := storage.NewFoodSnapshot(storage.FoodItem{Name: "Eggs"}, 1)
	b := storage.NewFoodSnapshot(storage.FoodItem{Name: "Toast"}, 1)

	if _, err := s.AppendPlanItems(ctx, "u1", "2024-01-15", storage.Monday, storage.DayPlan{Breakfast: []storage.FoodSnapshot{a}}); err != nil {
		t.Fatal(err)
	}
	plan, err := s.AppendPlanItems(ctx, "u1", "2024-01-15", storage.Monday, storage.DayPlan{Breakfast: []storage.FoodSnapshot{b}})
	if err != nil {
		t.Fatal(err)
	}

	if len(plan.Plan.Monday.Breakfast) != 2 {
		t.Fatalf("expected append, not replace: got %d items", len(plan.Plan.Monday.Breakfast))
	}
}

func TestWeeklyPlans_RemovePlanItem(t *testing.T) {
	s := New().GetWeeklyPlansStorage()
	ctx := context.Background()

	a := storage.NewFoodSnapshot(storage.FoodItem{Name: "Eggs"}, 1)
	b := storage.NewFoodSnapshot(storage.FoodItem{Name: "Toast"}, 1)
	if _, err := s.AppendPlanItems(ctx, "u1", "2024-01-15", storage.Friday, storage.DayPlan{Dinner: []storage.FoodSnapshot{a, b}}); err != nil {
		t.Fatal(err)
	}

	plan, err := s.RemovePlanItem(ctx, "u1", "2024-01-15", storage.Friday, storage.SlotDinner, a.ID)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(plan.Plan.Friday.Dinner) != 1 || plan.Plan.Friday.Dinner[0].ID != b.ID {
		t.Errorf("expected only second item to remain: %+v", plan.Plan.Friday.Dinner)
	}

	// Missing id is a no-op, not an error.
	plan, err = s.RemovePlanItem(ctx, "u1", "2024-01-15", storage.Friday, storage.SlotDinner, "missing")
	if err != nil {
		t.Fatalf("idempotent remove failed: %v", err)
	}
	if len(plan.Plan.Friday.Dinner) != 1 {
		t.Error("no-op removal changed the slot")
	}

	// Missing plan is an error.
	if _, err := s.RemovePlanItem(ctx, "nobody", "2024-01-15", storage.Friday, storage.SlotDinner, a.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestWeeklyPlans_GetPlanMissing(t *testing.T) {
	s := New().GetWeeklyPlansStorage()

	_, found, err := s.GetPlan(context.Background(), "u1", "2024-01-15")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if found {
		t.Error("expected found=false for missing plan")
	}
}

func TestCatalog_SearchFoods(t *testing.T) {
	s := New().GetCatalogStorage()
	ctx := context.Background()

	foods, total, err := s.SearchFoods(ctx, "oat", "", 0)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 || len(foods) != 1 || foods[0].Name != "Oatmeal" {
		t.Errorf("expected Oatmeal, got %+v (total %d)", foods, total)
	}

	foods, total, err = s.SearchFoods(ctx, "", "fruit", 2)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 3 {
		t.Errorf("expected 3 fruit matches, got %d", total)
	}
	if len(foods) != 2 {
		t.Errorf("limit 2 should cap results, got %d", len(foods))
	}

	foods, total, err = s.SearchFoods(ctx, "zzz", "", 0)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 0 || len(foods) != 0 {
		t.Errorf("expected no matches, got %d", total)
	}
	if foods == nil {
		t.Error("empty result should be [] not nil")
	}
}
