package catalog

import (
	"encoding/json"
	"net/http"
)

// Handler handles HTTP requests for the food catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new catalog handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleSearch handles GET /v1/catalog/foods?name=&category=
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	category := r.URL.Query().Get("category")

	items, total, err := h.service.Search(r.Context(), name, category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to search catalog")
		return
	}

	response := SearchResponse{
		Items: items,
		Total: total,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
