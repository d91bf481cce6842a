package dailylog

import (
	"fmt"
	"strings"
	"time"

	"github.com/gymstack/nutricore/internal/storage"
)

// AddEntryRequest is the request body for logging a food entry.
type AddEntryRequest struct {
	User              string           `json:"user"`
	Date              string           `json:"date"`
	MealType          string           `json:"mealType"`
	Food              storage.FoodItem `json:"food"`
	Servings          float64          `json:"servings,omitempty"`
	TotalGoalCalories *float64         `json:"totalGoalCalories,omitempty"`
	BMI               *float64         `json:"bmi,omitempty"`
}

// Validate checks the add entry request fields.
func (r *AddEntryRequest) Validate() error {
	if strings.TrimSpace(r.User) == "" {
		return fmt.Errorf("user is required")
	}
	if err := validateDate(r.Date); err != nil {
		return err
	}
	if _, err := storage.ParseMealType(r.MealType); err != nil {
		return err
	}
	if strings.TrimSpace(r.Food.Name) == "" {
		return fmt.Errorf("food.name is required")
	}
	if r.Servings < 0 {
		return fmt.Errorf("servings must be greater than 0")
	}
	return nil
}

// RemoveEntryRequest is the request body for removing a logged entry.
type RemoveEntryRequest struct {
	User     string `json:"user"`
	Date     string `json:"date"`
	MealType string `json:"mealType"`
	Index    int    `json:"index"`
}

// Validate checks the remove entry request fields.
func (r *RemoveEntryRequest) Validate() error {
	if strings.TrimSpace(r.User) == "" {
		return fmt.Errorf("user is required")
	}
	if err := validateDate(r.Date); err != nil {
		return err
	}
	if _, err := storage.ParseMealType(r.MealType); err != nil {
		return err
	}
	if r.Index < 0 {
		return fmt.Errorf("index must not be negative")
	}
	return nil
}

// MealView is the read model for a single meal of a day, with the
// day-level totals recomputed from the stored snapshots.
type MealView struct {
	Meal              []storage.FoodSnapshot `json:"meal"`
	AllMeals          storage.MealBuckets    `json:"allmeals"`
	TotalCalories     float64                `json:"totalCalories"`
	TotalProtein      float64                `json:"totalProtein"`
	TotalCarbs        float64                `json:"totalCarbs"`
	TotalFats         float64                `json:"totalFats"`
	TotalFiber        float64                `json:"totalFiber"`
	TotalSugar        float64                `json:"totalSugar"`
	TotalGoalCalories float64                `json:"totalGoalCalories"`
	BMI               float64                `json:"bmi"`
	BreakfastCalories float64                `json:"breakfastCalories"`
	LunchCalories     float64                `json:"lunchCalories"`
	DinnerCalories    float64                `json:"dinnerCalories"`
	SnacksCalories    float64                `json:"snacksCalories"`
}

func validateDate(date string) error {
	if strings.TrimSpace(date) == "" {
		return fmt.Errorf("date is required")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("date must be in YYYY-MM-DD format")
	}
	return nil
}
