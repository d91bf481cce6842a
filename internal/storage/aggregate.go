package storage

import "github.com/google/uuid"

// Scale returns the values multiplied by servings.
func (v NutrientValues) Scale(servings float64) NutrientValues {
	return NutrientValues{
		Calories: v.Calories * servings,
		Protein:  v.Protein * servings,
		Carbs:    v.Carbs * servings,
		Fats:     v.Fats * servings,
		Fiber:    v.Fiber * servings,
		Sugar:    v.Sugar * servings,
	}
}

// Add returns the element-wise sum.
func (v NutrientValues) Add(o NutrientValues) NutrientValues {
	return NutrientValues{
		Calories: v.Calories + o.Calories,
		Protein:  v.Protein + o.Protein,
		Carbs:    v.Carbs + o.Carbs,
		Fats:     v.Fats + o.Fats,
		Fiber:    v.Fiber + o.Fiber,
		Sugar:    v.Sugar + o.Sugar,
	}
}

// NewFoodSnapshot captures a serving-scaled copy of item. The snapshot keeps
// its own per-100g values so later catalog edits cannot rewrite history.
func NewFoodSnapshot(item FoodItem, servings float64) FoodSnapshot {
	if servings <= 0 {
		servings = 1
	}
	per100g := NutrientValues{
		Calories: item.CaloriesPer100g,
		Protein:  item.ProteinPer100g,
		Carbs:    item.CarbsPer100g,
		Fats:     item.FatsPer100g,
		Fiber:    item.FiberPer100g,
		Sugar:    item.SugarPer100g,
	}
	return FoodSnapshot{
		ID:         uuid.New().String(),
		Name:       item.Name,
		Category:   item.Category,
		Per100g:    per100g,
		Servings:   servings,
		Calculated: per100g.Scale(servings),
	}
}

// NewMealBuckets returns four empty (non-nil) bucket slices so a fresh log
// serializes with explicit empty arrays.
func NewMealBuckets() MealBuckets {
	return MealBuckets{
		Breakfast: []FoodSnapshot{},
		Lunch:     []FoodSnapshot{},
		Dinner:    []FoodSnapshot{},
		Snacks:    []FoodSnapshot{},
	}
}

// Bucket returns the list behind a meal type for in-place mutation.
func (m *MealBuckets) Bucket(meal MealType) *[]FoodSnapshot {
	switch meal {
	case MealBreakfast:
		return &m.Breakfast
	case MealLunch:
		return &m.Lunch
	case MealDinner:
		return &m.Dinner
	default:
		return &m.Snacks
	}
}

// SumCalculated folds the calculated values of every snapshot in every bucket.
func (m MealBuckets) SumCalculated() NutrientValues {
	var sum NutrientValues
	for _, bucket := range [][]FoodSnapshot{m.Breakfast, m.Lunch, m.Dinner, m.Snacks} {
		for _, snap := range bucket {
			sum = sum.Add(snap.Calculated)
		}
	}
	return sum
}

// SumCalories folds one bucket's calculated calories. Used for the
// recomputed-on-read per-meal sums.
func SumCalories(bucket []FoodSnapshot) float64 {
	var sum float64
	for _, snap := range bucket {
		sum += snap.Calculated.Calories
	}
	return sum
}

// ApplyAdd appends snap to the named bucket and adds its calculated values
// onto the running totals. Callers must hold whatever lock guards the log.
func (l *DailyFoodLog) ApplyAdd(meal MealType, snap FoodSnapshot) {
	bucket := l.Meals.Bucket(meal)
	*bucket = append(*bucket, snap)
	l.TotalCalories += snap.Calculated.Calories
	l.TotalProtein += snap.Calculated.Protein
	l.TotalCarbs += snap.Calculated.Carbs
	l.TotalFats += snap.Calculated.Fats
}

// ApplyRemove splices out the snapshot at index and subtracts its calculated
// values. A zero-valued Calculated (malformed legacy entry) subtracts nothing.
func (l *DailyFoodLog) ApplyRemove(meal MealType, index int) error {
	bucket := l.Meals.Bucket(meal)
	if index < 0 || index >= len(*bucket) {
		return ErrOutOfRange
	}
	snap := (*bucket)[index]
	*bucket = append((*bucket)[:index], (*bucket)[index+1:]...)
	l.TotalCalories -= snap.Calculated.Calories
	l.TotalProtein -= snap.Calculated.Protein
	l.TotalCarbs -= snap.Calculated.Carbs
	l.TotalFats -= snap.Calculated.Fats
	return nil
}

// NewWeekGrid returns a full 7-day, 3-slot skeleton of empty (non-nil)
// arrays. Plans are always materialized whole, never sparse.
func NewWeekGrid() WeekGrid {
	return WeekGrid{
		Monday:    newDayPlan(),
		Tuesday:   newDayPlan(),
		Wednesday: newDayPlan(),
		Thursday:  newDayPlan(),
		Friday:    newDayPlan(),
		Saturday:  newDayPlan(),
		Sunday:    newDayPlan(),
	}
}

func newDayPlan() DayPlan {
	return DayPlan{
		Breakfast: []FoodSnapshot{},
		Lunch:     []FoodSnapshot{},
		Dinner:    []FoodSnapshot{},
	}
}

// Day returns the day plan behind a weekday for in-place mutation.
func (g *WeekGrid) Day(day Weekday) *DayPlan {
	switch day {
	case Monday:
		return &g.Monday
	case Tuesday:
		return &g.Tuesday
	case Wednesday:
		return &g.Wednesday
	case Thursday:
		return &g.Thursday
	case Friday:
		return &g.Friday
	case Saturday:
		return &g.Saturday
	default:
		return &g.Sunday
	}
}

// Slot returns the list behind a plan slot for in-place mutation.
func (d *DayPlan) Slot(slot PlanSlot) *[]FoodSnapshot {
	switch slot {
	case SlotBreakfast:
		return &d.Breakfast
	case SlotLunch:
		return &d.Lunch
	default:
		return &d.Dinner
	}
}

// AppendItems appends the given snapshots onto the matching slots.
func (d *DayPlan) AppendItems(items DayPlan) {
	d.Breakfast = append(d.Breakfast, items.Breakfast...)
	d.Lunch = append(d.Lunch, items.Lunch...)
	d.Dinner = append(d.Dinner, items.Dinner...)
}

// RemoveByID filters out any snapshot whose id matches. Removing an absent id
// leaves the slot unchanged.
func (d *DayPlan) RemoveByID(slot PlanSlot, foodID string) {
	list := d.Slot(slot)
	filtered := (*list)[:0]
	for _, snap := range *list {
		if snap.ID != foodID {
			filtered = append(filtered, snap)
		}
	}
	*list = filtered
}
