package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "s3cret",
		"DATABASE_URL": "postgres://localhost/focusboard",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Fatalf("expected 7 day token ttl, got %s", cfg.TokenTTL)
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("expected bcrypt cost 10, got %d", cfg.BcryptCost)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.Postgres.MaxConns != 10 || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected store defaults: %+v %+v", cfg.Postgres, cfg.Redis)
	}
	if cfg.Login.MaxAttempts != 5 || cfg.Login.Window != 15*time.Minute {
		t.Fatalf("unexpected login defaults: %+v", cfg.Login)
	}
	if cfg.Realtime.Workers != 4 || cfg.Realtime.QueueSize != 256 || cfg.Realtime.SendBuffer != 64 {
		t.Fatalf("unexpected realtime defaults: %+v", cfg.Realtime)
	}
	if cfg.IsProduction() {
		t.Fatalf("development should not be production")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":           "s3cret",
		"DATABASE_URL":         "postgres://db/focusboard",
		"ENV":                  "Production",
		"TOKEN_TTL":            "1h",
		"CORS_ALLOWED_ORIGINS": "https://a.example.com,https://b.example.com",
		"REALTIME_WORKERS":     "8",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.IsProduction() {
		t.Fatalf("expected production")
	}
	if cfg.TokenTTL != time.Hour || cfg.Realtime.Workers != 8 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected two origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadWith_RequiredVariables(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret":   {"DATABASE_URL": "postgres://db/x"},
		"blank secret":     {"JWT_SECRET": "   ", "DATABASE_URL": "postgres://db/x"},
		"missing database": {"JWT_SECRET": "s3cret"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadWith(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoad_PanicsWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "")

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Load()
}
