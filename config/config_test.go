package config_test

import (
	"strings"
	"testing"
	"time"

	"konvyshop/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("KONVY_SESSION_SECRET", strings.Repeat("k", config.MinSecretLength))

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Address != ":8000" || cfg.Server.RequestsPerMinute != 600 {
		t.Errorf("unexpected server defaults %+v", cfg.Server)
	}
	if cfg.Session.Store != "memory" || cfg.Session.TTL != 168*time.Hour || cfg.Session.IdleTTL != 30*time.Minute {
		t.Errorf("unexpected session defaults %+v", cfg.Session)
	}
	if cfg.Shop.Timeout != 60*time.Second {
		t.Errorf("unexpected shop timeout %v", cfg.Shop.Timeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("KONVY_SESSION_SECRET", strings.Repeat("k", config.MinSecretLength))
	t.Setenv("KONVY_SHOP_BASE_URL", "https://shop.example")
	t.Setenv("KONVY_SESSION_STORE", "redis")
	t.Setenv("KONVY_SESSION_REDIS_DB", "3")
	t.Setenv("KONVY_ACTIVITY_DB_PATH", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Shop.BaseURL != "https://shop.example" || cfg.Session.Store != "redis" || cfg.Session.RedisDB != 3 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	valid := func() config.Config {
		var c config.Config
		c.Shop.BaseURL = "http://localhost:5000"
		c.Shop.RequestsPerSec = 10
		c.Session.Secret = strings.Repeat("s", config.MinSecretLength)
		c.Session.Store = "memory"
		return c
	}

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{"valid", func(c *config.Config) {}, ""},
		{"bad scheme", func(c *config.Config) { c.Shop.BaseURL = "ftp://shop" }, "must start with"},
		{"short secret", func(c *config.Config) { c.Session.Secret = "short" }, "at least 32"},
		{"unknown store", func(c *config.Config) { c.Session.Store = "disk" }, "memory or redis"},
		{"negative idle ttl", func(c *config.Config) { c.Session.IdleTTL = -time.Second }, "IDLE_TTL"},
		{"redis without addr", func(c *config.Config) { c.Session.Store = "redis" }, "REDIS_ADDR"},
		{"zero shop rate", func(c *config.Config) { c.Shop.RequestsPerSec = 0 }, "must be positive"},
		{"negative server rate", func(c *config.Config) { c.Server.RequestsPerMinute = -1 }, "cannot be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
