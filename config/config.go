package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rohanthewiz/serr"
)

// ============================================================================
// Storefront Configuration
//
// Everything is read from KONVY_* environment variables. A .env file in the
// working directory is loaded first when present, so local development does
// not need exported variables.
// ============================================================================

// Config holds all settings for the web and terminal storefronts.
type Config struct {
	Server   ServerConfig
	Shop     ShopConfig
	Session  SessionConfig
	Activity ActivityConfig
	TUI      TUIConfig

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// ServerConfig holds the storefront web server settings.
type ServerConfig struct {
	Address string `envconfig:"ADDRESS" default:":8000"`
	Verbose bool   `envconfig:"VERBOSE" default:"true"`
	// Per client IP; 0 disables the limiter
	RequestsPerMinute int `envconfig:"REQUESTS_PER_MINUTE" default:"600"`
}

// ShopConfig points at the marketplace back-end and the cosmetics catalog.
type ShopConfig struct {
	BaseURL        string        `envconfig:"BASE_URL" default:"http://localhost:5000"`
	CatalogURL     string        `envconfig:"CATALOG_URL" default:"https://fortnite-api.com/v2/cosmetics/br"`
	Timeout        time.Duration `envconfig:"TIMEOUT" default:"60s"`
	RequestsPerSec float64       `envconfig:"REQUESTS_PER_SEC" default:"10"`
	Burst          int           `envconfig:"BURST" default:"20"`
}

// SessionConfig controls how storefront sessions are signed and stored.
type SessionConfig struct {
	Secret        string        `envconfig:"SECRET" default:"development-only-secret-do-not-use-in-production"`
	Store         string        `envconfig:"STORE" default:"memory"` // memory or redis
	TTL           time.Duration `envconfig:"TTL" default:"168h"`
	IdleTTL       time.Duration `envconfig:"IDLE_TTL" default:"30m"` // in-memory only; the store keeps TTL
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
}

// ActivityConfig locates the DuckDB activity log. An empty path keeps the log in memory.
type ActivityConfig struct {
	DBPath string `envconfig:"DB_PATH" default:"./data/activity.ddb"`
}

// TUIConfig carries optional credentials for the terminal storefront.
type TUIConfig struct {
	Username string `envconfig:"USERNAME" default:""`
	Password string `envconfig:"PASSWORD" default:""`
}

// MinSecretLength matches the HMAC key length required for session tokens.
const MinSecretLength = 32

// Load reads .env (if any) and the KONVY_* environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("KONVY", cfg); err != nil {
		return nil, serr.Wrap(err, "failed to process KONVY_* environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on settings that would otherwise break mid-request.
func (c *Config) Validate() error {
	if c.Shop.BaseURL == "" {
		return serr.New("KONVY_SHOP_BASE_URL is required")
	}
	if !strings.HasPrefix(c.Shop.BaseURL, "http://") && !strings.HasPrefix(c.Shop.BaseURL, "https://") {
		return serr.New("KONVY_SHOP_BASE_URL must start with http:// or https://")
	}
	if c.Server.RequestsPerMinute < 0 {
		return serr.New("KONVY_SERVER_REQUESTS_PER_MINUTE cannot be negative")
	}
	if c.Shop.RequestsPerSec <= 0 {
		return serr.New("KONVY_SHOP_REQUESTS_PER_SEC must be positive")
	}
	if c.Session.IdleTTL < 0 {
		return serr.New("KONVY_SESSION_IDLE_TTL cannot be negative")
	}
	if len(c.Session.Secret) < MinSecretLength {
		return serr.New("KONVY_SESSION_SECRET must be at least 32 characters")
	}

	switch c.Session.Store {
	case "memory":
	case "redis":
		if c.Session.RedisAddr == "" {
			return serr.New("KONVY_SESSION_REDIS_ADDR is required when the session store is redis")
		}
	default:
		return serr.New("KONVY_SESSION_STORE must be memory or redis")
	}

	return nil
}
