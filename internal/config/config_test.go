package config

import "testing"

func TestParseCORSOrigins_LocalDefault(t *testing.T) {
	origins := parseCORSOrigins("", "local")
	if len(origins) == 0 {
		t.Fatal("expected localhost defaults in local env")
	}
}

func TestParseCORSOrigins_ProdDenyByDefault(t *testing.T) {
	origins := parseCORSOrigins("", "prod")
	if origins != nil {
		t.Fatalf("expected nil origins in prod, got %v", origins)
	}
}

func TestParseCORSOrigins_SplitsAndTrims(t *testing.T) {
	origins := parseCORSOrigins(" https://a.example , https://b.example ,, ", "prod")
	if len(origins) != 2 {
		t.Fatalf("expected 2 origins, got %v", origins)
	}
	if origins[0] != "https://a.example" || origins[1] != "https://b.example" {
		t.Errorf("origins not trimmed: %v", origins)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("AUTH_MODE", "")
	t.Setenv("DATABASE_URL", "")

	cfg := Load()
	if cfg.Env != "local" {
		t.Errorf("expected local env, got %q", cfg.Env)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.AuthMode != "none" || cfg.AuthEnabled {
		t.Errorf("expected auth disabled by default, got mode=%q", cfg.AuthMode)
	}
	if cfg.CatalogMaxResults != 50 {
		t.Errorf("expected catalog max results 50, got %d", cfg.CatalogMaxResults)
	}
	if cfg.LogMaxEntriesPerMeal != 100 {
		t.Errorf("expected log max entries 100, got %d", cfg.LogMaxEntriesPerMeal)
	}
}

func TestLoad_DatabaseURLPriority(t *testing.T) {
	t.Setenv("DATABASE_URL_POOLED", "postgres://pooled")
	t.Setenv("DATABASE_URL", "postgres://url")
	t.Setenv("DATABASE_URL_DIRECT", "postgres://direct")

	cfg := Load()
	if cfg.DatabaseURL != "postgres://pooled" {
		t.Errorf("expected pooled URL to win, got %q", cfg.DatabaseURL)
	}
	if cfg.DatabaseURLDirect != "postgres://direct" {
		t.Errorf("direct URL not preserved: %q", cfg.DatabaseURLDirect)
	}
}
