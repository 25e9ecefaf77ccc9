package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Authentication mode constants
const (
	AuthModeSession = "session"
	AuthModeHeader  = "header"
)

// State store constants
const (
	StateStoreMemory   = "memory"
	StateStoreRedis    = "redis"
	StateStoreDatabase = "database"
)

// Access token cache type constants
const (
	AccessTokenCacheMemory     = "memory"
	AccessTokenCacheRedis      = "redis"
	AccessTokenCacheRedisAside = "redis-aside"
)

// Metrics cache type constants
const (
	MetricsCacheTypeMemory     = "memory"
	MetricsCacheTypeRedis      = "redis"
	MetricsCacheTypeRedisAside = "redis-aside"
)

// MinTokenEncryptionKeyLen is the shortest accepted TOKEN_ENCRYPTION_KEY.
const MinTokenEncryptionKeyLen = 32

type Config struct {
	// Server settings
	ServerAddr  string `env:"SERVER_ADDR"  envDefault:":8080"`
	BaseURL     string `env:"BASE_URL"     envDefault:"http://localhost:8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL"`

	// Database
	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"sqlite"`
	DatabaseDSN    string `env:"DATABASE_DSN"    envDefault:"linker.db"`

	// Link state store
	StateStore           string        `env:"STATE_STORE"            envDefault:"memory"`
	StateTTL             time.Duration `env:"STATE_TTL"              envDefault:"10m"`
	StateCleanupInterval time.Duration `env:"STATE_CLEANUP_INTERVAL" envDefault:"5m"`

	// Redis, shared by the redis state store and the redis caches
	RedisAddr      string `env:"REDIS_ADDR"       envDefault:"localhost:6379"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB"         envDefault:"0"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"linker:"`

	// Access token cache
	AccessTokenCache            string        `env:"ACCESS_TOKEN_CACHE"               envDefault:"memory"`
	AccessTokenCacheClientTTL   time.Duration `env:"ACCESS_TOKEN_CACHE_CLIENT_TTL"    envDefault:"30s"`
	AccessTokenCacheSizePerConn int           `env:"ACCESS_TOKEN_CACHE_SIZE_PER_CONN" envDefault:"32"` // MB

	// Refresh token encryption. Previous keys are only used to decrypt.
	TokenEncryptionKey          string   `env:"TOKEN_ENCRYPTION_KEY"`
	TokenEncryptionPreviousKeys []string `env:"TOKEN_ENCRYPTION_PREVIOUS_KEYS" envSeparator:","`

	// Google
	GoogleClientID     string   `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string   `env:"GOOGLE_CLIENT_SECRET"`
	GoogleScopes       []string `env:"GOOGLE_SCOPES" envSeparator:"," envDefault:"openid,email,https://www.googleapis.com/auth/drive.readonly"`

	// Microsoft
	MicrosoftClientID     string   `env:"MICROSOFT_CLIENT_ID"`
	MicrosoftClientSecret string   `env:"MICROSOFT_CLIENT_SECRET"`
	MicrosoftTenant       string   `env:"MICROSOFT_TENANT" envDefault:"common"`
	MicrosoftScopes       []string `env:"MICROSOFT_SCOPES" envSeparator:"," envDefault:"openid,email,offline_access,Files.Read"`

	// Outbound provider calls
	ProviderTimeout       time.Duration `env:"PROVIDER_TIMEOUT"         envDefault:"30s"` // per provider during aggregation
	ProviderHTTPTimeout   time.Duration `env:"PROVIDER_HTTP_TIMEOUT"    envDefault:"20s"` // single HTTP request
	ProviderMaxRetries    int           `env:"PROVIDER_MAX_RETRIES"     envDefault:"2"`
	ProviderRetryDelay    time.Duration `env:"PROVIDER_RETRY_DELAY"     envDefault:"200ms"`
	ProviderMaxRetryDelay time.Duration `env:"PROVIDER_MAX_RETRY_DELAY" envDefault:"2s"`
	GoogleDriveURL        string        `env:"GOOGLE_DRIVE_URL"`
	MicrosoftGraphURL     string        `env:"MICROSOFT_GRAPH_URL"`

	// Landing pages after a callback. Empty means respond with JSON.
	LinkSuccessURL string `env:"LINK_SUCCESS_URL"`
	LinkErrorURL   string `env:"LINK_ERROR_URL"`

	// Principal resolution
	AuthMode      string `env:"AUTH_MODE"       envDefault:"session"`
	AuthHeader    string `env:"AUTH_HEADER"     envDefault:"X-User-ID"`
	SessionSecret string `env:"SESSION_SECRET"`
	SessionMaxAge int    `env:"SESSION_MAX_AGE" envDefault:"86400"` // seconds
	SessionSecure bool   `env:"SESSION_SECURE"  envDefault:"false"`

	// Prometheus
	MetricsEnabled             bool          `env:"METRICS_ENABLED"               envDefault:"false"`
	MetricsToken               string        `env:"METRICS_TOKEN"`
	MetricsGaugeUpdateEnabled  bool          `env:"METRICS_GAUGE_UPDATE_ENABLED"  envDefault:"true"`
	MetricsGaugeUpdateInterval time.Duration `env:"METRICS_GAUGE_UPDATE_INTERVAL" envDefault:"5m"`
	MetricsCacheType           string        `env:"METRICS_CACHE_TYPE"            envDefault:"memory"`
	MetricsCacheClientTTL      time.Duration `env:"METRICS_CACHE_CLIENT_TTL"      envDefault:"10s"`
	MetricsCacheSizePerConn    int           `env:"METRICS_CACHE_SIZE_PER_CONN"   envDefault:"32"` // MB

	// Startup and shutdown
	DBInitTimeout         time.Duration `env:"DB_INIT_TIMEOUT"         envDefault:"30s"`
	RedisConnTimeout      time.Duration `env:"REDIS_CONN_TIMEOUT"      envDefault:"5s"`
	CacheInitTimeout      time.Duration `env:"CACHE_INIT_TIMEOUT"      envDefault:"5s"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	CacheCloseTimeout     time.Duration `env:"CACHE_CLOSE_TIMEOUT"     envDefault:"5s"`
	RedisCloseTimeout     time.Duration `env:"REDIS_CLOSE_TIMEOUT"     envDefault:"5s"`
}

// Load reads .env when present and parses the environment.
// Validation is left to the caller.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg, nil
}

// IsProduction reports whether ENVIRONMENT is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// GoogleEnabled reports whether Google credentials are configured.
func (c *Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// MicrosoftEnabled reports whether Microsoft credentials are configured.
func (c *Config) MicrosoftEnabled() bool {
	return c.MicrosoftClientID != "" && c.MicrosoftClientSecret != ""
}

// NeedsRedis reports whether any configured component talks to Redis.
func (c *Config) NeedsRedis() bool {
	return c.StateStore == StateStoreRedis ||
		c.AccessTokenCache != AccessTokenCacheMemory ||
		(c.MetricsEnabled && c.MetricsGaugeUpdateEnabled && c.MetricsCacheType != MetricsCacheTypeMemory)
}

// Validate checks that the configuration combination is usable.
func (c *Config) Validate() error {
	switch c.AuthMode {
	case AuthModeSession:
		if c.SessionSecret == "" {
			return errors.New("SESSION_SECRET is required when AUTH_MODE=session")
		}
	case AuthModeHeader:
		if c.AuthHeader == "" {
			return errors.New("AUTH_HEADER is required when AUTH_MODE=header")
		}
	default:
		return fmt.Errorf("invalid AUTH_MODE value: %q (must be %q or %q)",
			c.AuthMode, AuthModeSession, AuthModeHeader)
	}

	switch c.StateStore {
	case StateStoreMemory, StateStoreRedis, StateStoreDatabase:
	default:
		return fmt.Errorf("invalid STATE_STORE value: %q (must be %q, %q or %q)",
			c.StateStore, StateStoreMemory, StateStoreRedis, StateStoreDatabase)
	}
	if c.StateTTL <= 0 {
		return fmt.Errorf("STATE_TTL must be positive, got %s", c.StateTTL)
	}

	switch c.AccessTokenCache {
	case AccessTokenCacheMemory, AccessTokenCacheRedis, AccessTokenCacheRedisAside:
	default:
		return fmt.Errorf("invalid ACCESS_TOKEN_CACHE value: %q (must be %q, %q or %q)",
			c.AccessTokenCache, AccessTokenCacheMemory, AccessTokenCacheRedis, AccessTokenCacheRedisAside)
	}

	if c.MetricsEnabled && c.MetricsGaugeUpdateEnabled {
		switch c.MetricsCacheType {
		case MetricsCacheTypeMemory, MetricsCacheTypeRedis, MetricsCacheTypeRedisAside:
		default:
			return fmt.Errorf("invalid METRICS_CACHE_TYPE value: %q (must be %q, %q or %q)",
				c.MetricsCacheType, MetricsCacheTypeMemory, MetricsCacheTypeRedis, MetricsCacheTypeRedisAside)
		}
		if c.MetricsGaugeUpdateInterval <= 0 {
			return fmt.Errorf("METRICS_GAUGE_UPDATE_INTERVAL must be positive, got %s",
				c.MetricsGaugeUpdateInterval)
		}
	}

	if c.NeedsRedis() && c.RedisAddr == "" {
		return errors.New("REDIS_ADDR is required when a redis store or cache is configured")
	}

	if len(c.TokenEncryptionKey) < MinTokenEncryptionKeyLen {
		return fmt.Errorf("TOKEN_ENCRYPTION_KEY must be at least %d characters",
			MinTokenEncryptionKeyLen)
	}

	if !c.GoogleEnabled() && !c.MicrosoftEnabled() {
		return errors.New("at least one provider must be configured " +
			"(GOOGLE_CLIENT_ID/SECRET or MICROSOFT_CLIENT_ID/SECRET)")
	}

	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("PROVIDER_TIMEOUT must be positive, got %s", c.ProviderTimeout)
	}
	if c.ProviderMaxRetries < 0 {
		return fmt.Errorf("PROVIDER_MAX_RETRIES must not be negative, got %d", c.ProviderMaxRetries)
	}

	return nil
}
