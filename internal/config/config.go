package config

import (
	"net"
	"strconv"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Wiktionary WiktionaryConfig `yaml:"wiktionary"`
	Cache      CacheConfig      `yaml:"cache"`
	Lookup     LookupConfig     `yaml:"lookup"`
	Auth       AuthConfig       `yaml:"auth"`
	CORS       CORSConfig       `yaml:"cors"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Log        LogConfig        `yaml:"log"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"SERVER_MAX_BODY_BYTES"   env-default:"4194304"`
}

// DatabaseConfig holds PostgreSQL connection settings. DSN may be empty for
// commands that never touch the page cache.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
}

// WiktionaryConfig holds the page provider settings.
type WiktionaryConfig struct {
	Wiki          string        `yaml:"wiki"           env:"WIKTIONARY_WIKI"           env-default:"en"`
	BaseURL       string        `yaml:"base_url"       env:"WIKTIONARY_BASE_URL"`
	UserAgent     string        `yaml:"user_agent"     env:"WIKTIONARY_USER_AGENT"     env-default:"open-dictionary/1.0 (https://github.com/jqhoogland/open-dictionary)"`
	Timeout       time.Duration `yaml:"timeout"        env:"WIKTIONARY_TIMEOUT"        env-default:"10s"`
	RetryAttempts uint          `yaml:"retry_attempts" env:"WIKTIONARY_RETRY_ATTEMPTS" env-default:"3"`
	RetryDelay    time.Duration `yaml:"retry_delay"    env:"WIKTIONARY_RETRY_DELAY"    env-default:"500ms"`
}

// CacheConfig holds page cache settings. A zero PageTTL keeps pages forever.
type CacheConfig struct {
	PageTTL time.Duration `yaml:"page_ttl" env:"CACHE_PAGE_TTL" env-default:"168h"`
}

// LookupConfig holds batch lookup settings.
type LookupConfig struct {
	BatchConcurrency int           `yaml:"batch_concurrency" env:"LOOKUP_BATCH_CONCURRENCY" env-default:"4"`
	BatchWait        time.Duration `yaml:"batch_wait"        env:"LOOKUP_BATCH_WAIT"        env-default:"2ms"`
	BatchCapacity    int           `yaml:"batch_capacity"    env:"LOOKUP_BATCH_CAPACITY"    env-default:"50"`
}

// AuthConfig holds admin token settings.
type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"      env:"AUTH_JWT_SECRET"`
	JWTIssuer     string        `yaml:"jwt_issuer"      env:"AUTH_JWT_ISSUER"      env-default:"opendict"`
	AdminTokenTTL time.Duration `yaml:"admin_token_ttl" env:"AUTH_ADMIN_TOKEN_TTL" env-default:"24h"`
}

// RateLimitConfig holds per-IP rate limiting settings. Zero disables limiting.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_LIMIT_RPM"     env-default:"120"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP" env-default:"5m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// AdminEnabled reports whether admin tokens can be issued and verified.
func (c AuthConfig) AdminEnabled() bool {
	return strings.TrimSpace(c.JWTSecret) != ""
}
