package dailylog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gymstack/nutricore/internal/storage"
)

// Handler handles HTTP requests for daily food logs.
type Handler struct {
	service *Service
}

// NewHandler creates a new daily log handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleAddEntry handles POST /v1/nutrition/log
func (h *Handler) HandleAddEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AddEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}
	r.Body.Close()

	log, err := h.service.AddEntry(ctx, req)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			writeError(w, http.StatusBadRequest, "invalid_request", msg)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to add log entry")
		return
	}

	writeJSON(w, http.StatusOK, log)
}

// HandleRemoveEntry handles POST /v1/nutrition/log/remove
func (h *Handler) HandleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RemoveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}
	r.Body.Close()

	log, err := h.service.RemoveEntry(ctx, req)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			writeError(w, http.StatusBadRequest, "invalid_request", msg)
			return
		}
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Daily log not found")
			return
		}
		if errors.Is(err, storage.ErrOutOfRange) {
			writeError(w, http.StatusBadRequest, "invalid_request", "Entry index is out of range")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to remove log entry")
		return
	}

	writeJSON(w, http.StatusOK, log)
}

// HandleGetMeal handles GET /v1/nutrition/log/{userId}/meal?date=&mealType=
func (h *Handler) HandleGetMeal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := r.PathValue("userId")
	date := r.URL.Query().Get("date")
	mealType := r.URL.Query().Get("mealType")

	view, err := h.service.GetMeal(ctx, userID, date, mealType)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			writeError(w, http.StatusBadRequest, "invalid_request", msg)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to load meal")
		return
	}

	writeJSON(w, http.StatusOK, view)
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
