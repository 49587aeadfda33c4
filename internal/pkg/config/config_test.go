package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "0123456789abcdef",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" || !cfg.IsDevelopment() {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Fatalf("expected 24h ttl, got %s", cfg.JWTTTL)
	}
	if cfg.Mongo.Database != "shop" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected store defaults: %+v %+v", cfg.Mongo, cfg.Redis)
	}
	if cfg.Login.MaxAttempts != 5 || cfg.Login.Lockout != 15*time.Minute {
		t.Fatalf("unexpected login defaults: %+v", cfg.Login)
	}
	if cfg.Audit.Workers != 8 {
		t.Fatalf("expected 8 audit workers, got %d", cfg.Audit.Workers)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":         "0123456789abcdef",
		"ENV":                "production",
		"JWT_TTL":            "1h",
		"LOGIN_MAX_ATTEMPTS": "3",
		"LOGIN_LOCKOUT":      "30s",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.IsDevelopment() || cfg.JWTTTL != time.Hour {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Login.MaxAttempts != 3 || cfg.Login.Lockout != 30*time.Second {
		t.Fatalf("login overrides not applied: %+v", cfg.Login)
	}
}

func TestLoadWithRequiresSecret(t *testing.T) {
	if _, err := LoadWith(context.Background(), envconfig.MapLookuper(nil)); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}
	if _, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{"JWT_SECRET": "short"})); err == nil {
		t.Fatal("expected error for a short JWT_SECRET")
	}
}
