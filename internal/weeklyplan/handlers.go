package weeklyplan

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gymstack/nutricore/internal/storage"
)

// Handler handles HTTP requests for weekly meal plans.
type Handler struct {
	service *Service
}

// NewHandler creates a new weekly plan handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleAddPlanDay handles POST /v1/mealplan/day
func (h *Handler) HandleAddPlanDay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AddPlanDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}
	r.Body.Close()

	plan, err := h.service.AddPlanDay(ctx, req)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			writeError(w, http.StatusBadRequest, "invalid_request", msg)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to update meal plan")
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

// HandleRemovePlanItem handles POST /v1/mealplan/item/remove
func (h *Handler) HandleRemovePlanItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RemovePlanItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}
	r.Body.Close()

	plan, err := h.service.RemovePlanItem(ctx, req)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			writeError(w, http.StatusBadRequest, "invalid_request", msg)
			return
		}
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Weekly plan not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to update meal plan")
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

// HandleGetPlan handles GET /v1/mealplan/{userId}?weekStartDate=
func (h *Handler) HandleGetPlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := r.PathValue("userId")
	weekStart := r.URL.Query().Get("weekStartDate")

	plan, err := h.service.GetPlan(ctx, userID, weekStart)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			writeError(w, http.StatusBadRequest, "invalid_request", msg)
			return
		}
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Weekly plan not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to load meal plan")
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

func validationMessage(err error) (string, bool) {
	const prefix = "validation failed: "
	msg := err.Error()
	if strings.HasPrefix(msg, prefix) {
		return msg[len(prefix):], true
	}
	return "", false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
