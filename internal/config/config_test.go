package config

import (
	"testing"
	"time"
)

func TestLoadCacheConfig_Defaults(t *testing.T) {
	cfg := LoadCacheConfig()
	if !cfg.Enabled {
		t.Error("cache should default to enabled")
	}
	if !cfg.Methods["GET"] {
		t.Error("GET should be cacheable by default")
	}
	if cfg.Methods["POST"] {
		t.Error("POST must never default to cacheable")
	}
	if cfg.TTL != 30*time.Second {
		t.Errorf("TTL = %v, want 30s", cfg.TTL)
	}
	if cfg.KeyStrategy != "route_query" {
		t.Errorf("KeyStrategy = %q, want route_query", cfg.KeyStrategy)
	}
}

func TestLoadCacheConfig_Env(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_TTL", "2m")
	cfg := LoadCacheConfig()
	if cfg.Enabled {
		t.Error("CACHE_ENABLED=false ignored")
	}
	if !cfg.Methods["GET"] || !cfg.Methods["HEAD"] {
		t.Errorf("methods = %v, want upper-cased GET and HEAD", cfg.Methods)
	}
	if cfg.TTL != 2*time.Minute {
		t.Errorf("TTL = %v, want 2m", cfg.TTL)
	}
}

func TestLoadRateLimitConfig_Defaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Error("rate limiting should default to enabled")
	}
	if cfg.Capacity != 60 {
		t.Errorf("Capacity = %d, want 60", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 || cfg.RefillInterval != time.Second {
		t.Errorf("refill = %d/%v, want 1 per second", cfg.RefillTokens, cfg.RefillInterval)
	}
}

func TestLoadRateLimitConfig_Clamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "100ms")
	t.Setenv("RATE_LIMIT_TTL", "50ms")
	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Errorf("Capacity = %d, want clamped to 1", cfg.Capacity)
	}
	// TTL is raised to cover at least five refill intervals so bucket
	// state survives between requests.
	if cfg.TTL < 5*cfg.RefillInterval {
		t.Errorf("TTL = %v, want at least %v", cfg.TTL, 5*cfg.RefillInterval)
	}
}

func TestLoadRateLimitConfig_BurstOverride(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "10")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "500ms")
	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 10 {
		t.Errorf("Capacity = %d, want burst override 10", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 || cfg.RefillInterval != 500*time.Millisecond {
		t.Errorf("refill = %d/%v, want 1 per 500ms", cfg.RefillTokens, cfg.RefillInterval)
	}
}
