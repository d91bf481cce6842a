package weeklyplan

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gymstack/nutricore/internal/storage"
	"github.com/gymstack/nutricore/internal/storage/memory"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	st := memory.New()
	t.Cleanup(func() { st.Close() })

	h := NewHandler(NewService(st.GetWeeklyPlansStorage()))
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/mealplan/day", h.HandleAddPlanDay)
	mux.HandleFunc("POST /v1/mealplan/item/remove", h.HandleRemovePlanItem)
	mux.HandleFunc("GET /v1/mealplan/{userId}", h.HandleGetPlan)
	return mux
}

const addDayBody = `{
	"user": "u",
	"weekStartDate": "2026-03-02",
	"day": "Tuesday",
	"meals": {
		"Lunch": [{"name": "Chicken Breast", "caloriesPer100g": 165, "proteinPer100g": 31}]
	}
}`

func TestHandleAddPlanDay(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/mealplan/day", strings.NewReader(addDayBody))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var plan storage.WeeklyPlan
	if err := json.Unmarshal(rec.Body.Bytes(), &plan); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(plan.Plan.Tuesday.Lunch) != 1 {
		t.Fatalf("expected 1 Tuesday lunch item, got %d", len(plan.Plan.Tuesday.Lunch))
	}
	body := rec.Body.String()
	for _, key := range []string{`"Monday"`, `"Sunday"`, `"Breakfast"`, `"weekStartDate"`} {
		if !strings.Contains(body, key) {
			t.Errorf("expected %s in response body", key)
		}
	}
}

func TestHandleAddPlanDayBadDay(t *testing.T) {
	mux := newTestMux(t)

	body := `{"user":"u","weekStartDate":"2026-03-02","day":"Someday","meals":{"Lunch":[{"name":"x"}]}}`
	req := httptest.NewRequest(http.MethodPost, "/v1/mealplan/day", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleRemovePlanItem(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/mealplan/day", strings.NewReader(addDayBody))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("setup add failed: %d", rec.Code)
	}
	var plan storage.WeeklyPlan
	if err := json.Unmarshal(rec.Body.Bytes(), &plan); err != nil {
		t.Fatalf("failed to decode setup response: %v", err)
	}
	foodID := plan.Plan.Tuesday.Lunch[0].ID

	remove := `{"user":"u","weekStartDate":"2026-03-02","day":"Tuesday","mealType":"Lunch","foodId":"` + foodID + `"}`
	req = httptest.NewRequest(http.MethodPost, "/v1/mealplan/item/remove", strings.NewReader(remove))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &plan); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(plan.Plan.Tuesday.Lunch) != 0 {
		t.Errorf("expected empty Tuesday lunch, got %d items", len(plan.Plan.Tuesday.Lunch))
	}
	if !strings.Contains(rec.Body.String(), `"Lunch":[]`) {
		t.Errorf("expected emptied slot to stay an array, got %s", rec.Body.String())
	}
}

func TestHandleRemovePlanItemMissingPlan(t *testing.T) {
	mux := newTestMux(t)

	remove := `{"user":"ghost","weekStartDate":"2026-03-02","day":"Tuesday","mealType":"Lunch","foodId":"x"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/mealplan/item/remove", strings.NewReader(remove))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandleGetPlan(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/mealplan/day", strings.NewReader(addDayBody))
	mux.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/v1/mealplan/u?weekStartDate=2026-03-02", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var plan storage.WeeklyPlan
	if err := json.Unmarshal(rec.Body.Bytes(), &plan); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if plan.UserID != "u" {
		t.Errorf("expected user u, got %s", plan.UserID)
	}
}

func TestHandleGetPlanMissing(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/mealplan/ghost?weekStartDate=2026-03-02", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not_found") {
		t.Errorf("expected not_found code, got %s", rec.Body.String())
	}
}

func TestHandleGetPlanMissingWeekStart(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/mealplan/u", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
