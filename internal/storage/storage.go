package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound means the requested log or plan document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrOutOfRange means a positional index does not address an entry.
	ErrOutOfRange = errors.New("index out of range")
)

// MealType is a bucket key of the daily food log.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnacks    MealType = "snacks"
)

// MealTypes lists the four daily buckets in display order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnacks}

// ParseMealType validates a caller-supplied meal type.
func ParseMealType(s string) (MealType, error) {
	switch m := MealType(strings.ToLower(strings.TrimSpace(s))); m {
	case MealBreakfast, MealLunch, MealDinner, MealSnacks:
		return m, nil
	default:
		return "", fmt.Errorf("invalid meal type %q", s)
	}
}

// Weekday is a day key of the weekly plan, always title case.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays lists the plan days Monday first.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday normalizes a caller-supplied day ("monday" → Monday).
func ParseWeekday(s string) (Weekday, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	if t == "" {
		return "", fmt.Errorf("day is required")
	}
	norm := Weekday(strings.ToUpper(t[:1]) + t[1:])
	for _, d := range Weekdays {
		if d == norm {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid day %q", s)
}

// PlanSlot is a meal slot key of the weekly plan, always title case.
type PlanSlot string

const (
	SlotBreakfast PlanSlot = "Breakfast"
	SlotLunch     PlanSlot = "Lunch"
	SlotDinner    PlanSlot = "Dinner"
)

// PlanSlots lists the plan slots in display order.
var PlanSlots = []PlanSlot{SlotBreakfast, SlotLunch, SlotDinner}

// ParsePlanSlot normalizes a caller-supplied plan slot ("breakfast" → Breakfast).
func ParsePlanSlot(s string) (PlanSlot, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	if t == "" {
		return "", fmt.Errorf("meal slot is required")
	}
	norm := PlanSlot(strings.ToUpper(t[:1]) + t[1:])
	for _, p := range PlanSlots {
		if p == norm {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid meal slot %q", s)
}

// NutrientValues holds one macro profile, either per 100g or serving-scaled.
type NutrientValues struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
}

// FoodItem is a catalog reference record of per-100g macros. Owned by the
// catalog; the engine only reads it.
type FoodItem struct {
	ID              string  `json:"id,omitempty"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	CaloriesPer100g float64 `json:"caloriesPer100g"`
	ProteinPer100g  float64 `json:"proteinPer100g"`
	CarbsPer100g    float64 `json:"carbsPer100g"`
	FatsPer100g     float64 `json:"fatsPer100g"`
	FiberPer100g    float64 `json:"fiberPer100g"`
	SugarPer100g    float64 `json:"sugarPer100g"`
}

// FoodSnapshot is an immutable serving-scaled copy of a FoodItem, captured at the
// moment it is logged or planned. Catalog edits after that moment never change
// a stored snapshot. ID is the opaque identity used for plan removals.
type FoodSnapshot struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Category   string         `json:"category"`
	Per100g    NutrientValues `json:"per100g"`
	Servings   float64        `json:"servings"`
	Calculated NutrientValues `json:"calculated"`
}

// MealBuckets holds the four meal lists of one daily log document.
type MealBuckets struct {
	Breakfast []FoodSnapshot `json:"breakfast"`
	Lunch     []FoodSnapshot `json:"lunch"`
	Dinner    []FoodSnapshot `json:"dinner"`
	Snacks    []FoodSnapshot `json:"snacks"`
}

// DailyFoodLog is the per (user, date) aggregate of logged meals with incrementally
// maintained running totals. The stored totals always equal the sum of the
// matching calculated field over every bucket.
type DailyFoodLog struct {
	UserID            string      `json:"user"`
	Date              string      `json:"date"` // YYYY-MM-DD
	Meals             MealBuckets `json:"meals"`
	TotalCalories     float64     `json:"totalCalories"`
	TotalProtein      float64     `json:"totalProtein"`
	TotalCarbs        float64     `json:"totalCarbs"`
	TotalFats         float64     `json:"totalFats"`
	TotalGoalCalories float64     `json:"totalGoalCalories"`
	BMI               float64     `json:"bmi"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// DayPlan holds the three planned meal slots of one weekday.
type DayPlan struct {
	Breakfast []FoodSnapshot `json:"Breakfast"`
	Lunch     []FoodSnapshot `json:"Lunch"`
	Dinner    []FoodSnapshot `json:"Dinner"`
}

// WeekGrid holds all seven day plans. A persisted grid always carries every day
// and slot key, possibly as empty arrays.
type WeekGrid struct {
	Monday    DayPlan `json:"Monday"`
	Tuesday   DayPlan `json:"Tuesday"`
	Wednesday DayPlan `json:"Wednesday"`
	Thursday  DayPlan `json:"Thursday"`
	Friday    DayPlan `json:"Friday"`
	Saturday  DayPlan `json:"Saturday"`
	Sunday    DayPlan `json:"Sunday"`
}

// WeeklyPlan is the per (user, weekStartDate) aggregate of planned meals by day and slot.
// Unlike the daily log it stores no totals; sums are derivable on read.
type WeeklyPlan struct {
	UserID        string    `json:"user"`
	WeekStartDate string    `json:"weekStartDate"` // YYYY-MM-DD
	Plan          WeekGrid  `json:"plan"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Storage is the common surface of a storage backend. The typed
// sub-stores are reached through the backend's accessor methods.
type Storage interface {
	Close() error
}

// CatalogStorage is a read-only lookup into the nutrient catalog.
type CatalogStorage interface {
	// SearchFoods matches case-insensitive name substrings and an exact
	// category ("" or "all" matches every category). Returns up to limit
	// items plus the total match count.
	SearchFoods(ctx context.Context, name, category string, limit int) ([]FoodItem, int, error)
}

// DailyLogStorage owns the daily food log documents. Implementations must
// apply the snapshot append and the totals delta atomically per (user, date):
// concurrent AppendEntry calls against one key compose, never clobber.
type DailyLogStorage interface {
	// AppendEntry appends snap to the named bucket, adds its calculated
	// values onto the running totals and overwrites goal/bmi when non-nil.
	// The log is created lazily with empty buckets and zero totals.
	AppendEntry(ctx context.Context, userID, date string, meal MealType, snap FoodSnapshot, goal, bmi *float64) (DailyFoodLog, error)

	// RemoveEntry splices out the snapshot at index and subtracts its
	// calculated values. ErrNotFound when no log exists, ErrOutOfRange for a
	// bad index.
	RemoveEntry(ctx context.Context, userID, date string, meal MealType, index int) (DailyFoodLog, error)

	// GetLog returns the log for (user, date). found=false is not an error.
	GetLog(ctx context.Context, userID, date string) (DailyFoodLog, bool, error)
}

// WeeklyPlanStorage owns the weekly plan documents. Same atomicity
// requirement per (user, weekStartDate) as the daily log store.
type WeeklyPlanStorage interface {
	// AppendPlanItems materializes the full 7-day skeleton when the plan is
	// absent, then appends the given snapshots onto the day's slots.
	AppendPlanItems(ctx context.Context, userID, weekStart string, day Weekday, items DayPlan) (WeeklyPlan, error)

	// RemovePlanItem drops any snapshot with the given id from the slot.
	// A missing id is a no-op, an absent plan is ErrNotFound.
	RemovePlanItem(ctx context.Context, userID, weekStart string, day Weekday, slot PlanSlot, foodID string) (WeeklyPlan, error)

	// GetPlan returns the plan for (user, weekStart). found=false is not an
	// error.
	GetPlan(ctx context.Context, userID, weekStart string) (WeeklyPlan, bool, error)
}
