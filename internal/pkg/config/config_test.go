package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.Mongo.Database != "account_api" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Auth.TokenTTL != 0 {
		t.Fatalf("tokens must not expire by default, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.Usage.Workers != 4 || cfg.Usage.Throttle != time.Minute || cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected usage defaults: %+v", cfg.Usage)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development by default")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":            "production",
		"TOKEN_TTL":      "24h",
		"USAGE_WORKERS":  "8",
		"USAGE_THROTTLE": "30s",
		"REDIS_DB":       "2",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.IsDevelopment() {
		t.Fatalf("production must not be development")
	}
	if cfg.Auth.TokenTTL != 24*time.Hour || cfg.Usage.Workers != 8 || cfg.Usage.Throttle != 30*time.Second || cfg.Redis.DB != 2 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadFrom_RejectsNegativeTTL(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{"TOKEN_TTL": "-1h"}))
	if err == nil {
		t.Fatalf("expected error for negative TOKEN_TTL")
	}
}
