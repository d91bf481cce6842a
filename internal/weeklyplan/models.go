package weeklyplan

import (
	"fmt"
	"strings"
	"time"

	"github.com/gymstack/nutricore/internal/storage"
)

// PlanDayMeals carries the food items for the three planned meals of a
// weekday.
type PlanDayMeals struct {
	Breakfast []storage.FoodItem `json:"Breakfast"`
	Lunch     []storage.FoodItem `json:"Lunch"`
	Dinner    []storage.FoodItem `json:"Dinner"`
}

func (m PlanDayMeals) empty() bool {
	return len(m.Breakfast) == 0 && len(m.Lunch) == 0 && len(m.Dinner) == 0
}

// AddPlanDayRequest is the request body for adding items to one weekday
// of a weekly plan.
type AddPlanDayRequest struct {
	User          string       `json:"user"`
	WeekStartDate string       `json:"weekStartDate"`
	Day           string       `json:"day"`
	Meals         PlanDayMeals `json:"meals"`
}

// Validate checks the add plan day request fields.
func (r *AddPlanDayRequest) Validate() error {
	if strings.TrimSpace(r.User) == "" {
		return fmt.Errorf("user is required")
	}
	if err := validateWeekStart(r.WeekStartDate); err != nil {
		return err
	}
	if _, err := storage.ParseWeekday(r.Day); err != nil {
		return err
	}
	if r.Meals.empty() {
		return fmt.Errorf("meals must contain at least one item")
	}
	for _, items := range [][]storage.FoodItem{r.Meals.Breakfast, r.Meals.Lunch, r.Meals.Dinner} {
		for _, item := range items {
			if strings.TrimSpace(item.Name) == "" {
				return fmt.Errorf("every planned item needs a name")
			}
		}
	}
	return nil
}

// RemovePlanItemRequest is the request body for removing one item from
// a plan slot.
type RemovePlanItemRequest struct {
	User          string `json:"user"`
	WeekStartDate string `json:"weekStartDate"`
	Day           string `json:"day"`
	MealType      string `json:"mealType"`
	FoodID        string `json:"foodId"`
}

// Validate checks the remove plan item request fields.
func (r *RemovePlanItemRequest) Validate() error {
	if strings.TrimSpace(r.User) == "" {
		return fmt.Errorf("user is required")
	}
	if err := validateWeekStart(r.WeekStartDate); err != nil {
		return err
	}
	if _, err := storage.ParseWeekday(r.Day); err != nil {
		return err
	}
	if _, err := storage.ParsePlanSlot(r.MealType); err != nil {
		return err
	}
	if strings.TrimSpace(r.FoodID) == "" {
		return fmt.Errorf("foodId is required")
	}
	return nil
}

func validateWeekStart(date string) error {
	if strings.TrimSpace(date) == "" {
		return fmt.Errorf("weekStartDate is required")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("weekStartDate must be in YYYY-MM-DD format")
	}
	return nil
}
