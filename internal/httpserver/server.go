package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gymstack/nutricore/internal/auth"
	"github.com/gymstack/nutricore/internal/catalog"
	"github.com/gymstack/nutricore/internal/config"
	"github.com/gymstack/nutricore/internal/dailylog"
	"github.com/gymstack/nutricore/internal/storage"
	"github.com/gymstack/nutricore/internal/storage/memory"
	"github.com/gymstack/nutricore/internal/storage/postgres"
	"github.com/gymstack/nutricore/internal/weeklyplan"
)

// Server wires config, storage and the HTTP routes together.
type Server struct {
	config         *config.Config
	mux            *http.ServeMux
	storage        storage.Storage
	authMiddleware *auth.Middleware
}

// New creates a new HTTP server.
func New(cfg *config.Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}

	s.initStorage()
	s.routes()
	return s
}

// initStorage picks the storage backend. An empty DATABASE_URL or a
// failed connection both land on the in-memory backend so local
// development never needs a database.
func (s *Server) initStorage() {
	if s.config.DatabaseURL == "" {
		log.Println("Using in-memory storage")
		s.storage = memory.New()
		return
	}

	log.Println("Connecting to PostgreSQL...")
	ctx := context.Background()
	pgStorage, err := postgres.New(ctx, s.config.DatabaseURL)
	if err != nil {
		log.Printf("PostgreSQL connection failed: %v", err)
		log.Println("Falling back to in-memory storage")
		s.storage = memory.New()
		return
	}
	log.Println("PostgreSQL connected")
	s.storage = pgStorage
}

// routes registers all HTTP routes.
func (s *Server) routes() {
	// Health check (no auth required)
	s.mux.HandleFunc("/healthz", s.handleHealthz)

	// Auth API (no auth required)
	authService := auth.NewService(s.config)
	authHandler := auth.NewHandlers(authService)
	s.authMiddleware = auth.NewMiddleware(s.config, authService)

	// POST /v1/auth/dev - local dev token
	s.mux.HandleFunc("POST /v1/auth/dev", authHandler.HandleDevAuth)

	// Food catalog API
	catalogService := catalog.NewService(s.getCatalogStorage(), s.config.CatalogMaxResults)
	catalogHandler := catalog.NewHandler(catalogService)

	// GET /v1/catalog/foods - search the nutrient catalog
	s.mux.HandleFunc("GET /v1/catalog/foods", catalogHandler.HandleSearch)

	// Daily food log API
	dailyLogService := dailylog.NewService(s.getDailyLogsStorage(), s.config.LogMaxEntriesPerMeal)
	dailyLogHandler := dailylog.NewHandler(dailyLogService)

	// POST /v1/nutrition/log - add a food entry to a meal
	s.mux.HandleFunc("POST /v1/nutrition/log", dailyLogHandler.HandleAddEntry)

	// POST /v1/nutrition/log/remove - remove a food entry by position
	s.mux.HandleFunc("POST /v1/nutrition/log/remove", dailyLogHandler.HandleRemoveEntry)

	// GET /v1/nutrition/log/{userId}/meal - read one meal with day totals
	s.mux.HandleFunc("GET /v1/nutrition/log/{userId}/meal", dailyLogHandler.HandleGetMeal)

	// Weekly meal plan API
	weeklyPlanService := weeklyplan.NewService(s.getWeeklyPlansStorage())
	weeklyPlanHandler := weeklyplan.NewHandler(weeklyPlanService)

	// POST /v1/mealplan/day - append items to one weekday
	s.mux.HandleFunc("POST /v1/mealplan/day", weeklyPlanHandler.HandleAddPlanDay)

	// POST /v1/mealplan/item/remove - remove one planned item by food id
	s.mux.HandleFunc("POST /v1/mealplan/item/remove", weeklyPlanHandler.HandleRemovePlanItem)

	// GET /v1/mealplan/{userId} - read the plan for a week
	s.mux.HandleFunc("GET /v1/mealplan/{userId}", weeklyPlanHandler.HandleGetPlan)
}

// getCatalogStorage returns the catalog storage based on storage type
func (s *Server) getCatalogStorage() storage.CatalogStorage {
	switch st := s.storage.(type) {
	case *memory.MemoryStorage:
		return st.GetCatalogStorage()
	case *postgres.PostgresStorage:
		return st.GetCatalogStorage()
	default:
		log.Fatal("unknown storage type")
		return nil
	}
}

// getDailyLogsStorage returns the daily log storage based on storage type
func (s *Server) getDailyLogsStorage() storage.DailyLogStorage {
	switch st := s.storage.(type) {
	case *memory.MemoryStorage:
		return st.GetDailyLogsStorage()
	case *postgres.PostgresStorage:
		return st.GetDailyLogsStorage()
	default:
		log.Fatal("unknown storage type")
		return nil
	}
}

// getWeeklyPlansStorage returns the weekly plan storage based on storage type
func (s *Server) getWeeklyPlansStorage() storage.WeeklyPlanStorage {
	switch st := s.storage.(type) {
	case *memory.MemoryStorage:
		return st.GetWeeklyPlansStorage()
	case *postgres.PostgresStorage:
		return st.GetWeeklyPlansStorage()
	default:
		log.Fatal("unknown storage type")
		return nil
	}
}

// handleHealthz reports server status.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// Handler returns the fully assembled middleware chain
// (outermost first): CORS, rate limit, auth, router.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.mux
	if s.authMiddleware != nil && s.config.AuthMode != "none" {
		if s.config.AuthRequired {
			handler = s.authMiddleware.RequireAuth(handler)
		} else {
			handler = s.authMiddleware.OptionalAuth(handler)
		}
	}
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)
	return handler
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	log.Printf("Server listening on http://localhost%s\n", addr)
	log.Printf("Health check: http://localhost%s/healthz\n", addr)
	log.Printf("Catalog API: http://localhost%s/v1/catalog/foods\n", addr)

	return http.ListenAndServe(addr, s.Handler())
}

// Close shuts down the storage backend.
func (s *Server) Close() error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}
