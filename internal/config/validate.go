package config

import (
	"fmt"
	"strings"
)

const minSecretLen = 32

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns must be <= max_conns (got %d > %d)", c.Database.MinConns, c.Database.MaxConns)
	}
	if err := c.Wiktionary.validate(); err != nil {
		return fmt.Errorf("wiktionary: %w", err)
	}
	if c.Cache.PageTTL < 0 {
		return fmt.Errorf("cache.page_ttl must be >= 0 (got %s)", c.Cache.PageTTL)
	}
	if err := c.Lookup.validate(); err != nil {
		return fmt.Errorf("lookup: %w", err)
	}
	if c.Auth.AdminEnabled() && len(c.Auth.JWTSecret) < minSecretLen {
		return fmt.Errorf("auth.jwt_secret must be at least %d characters (got %d)", minSecretLen, len(c.Auth.JWTSecret))
	}
	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be >= 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}
	return nil
}

// RequireDatabase reports an error when no DSN is configured.
func (c *Config) RequireDatabase() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	return nil
}

func (w *WiktionaryConfig) validate() error {
	if strings.TrimSpace(w.Wiki) == "" && strings.TrimSpace(w.BaseURL) == "" {
		return fmt.Errorf("wiki or base_url must be set")
	}
	if w.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", w.Timeout)
	}
	if w.RetryAttempts == 0 {
		return fmt.Errorf("retry_attempts must be >= 1")
	}
	return nil
}

func (l *LookupConfig) validate() error {
	if l.BatchConcurrency <= 0 {
		return fmt.Errorf("batch_concurrency must be > 0 (got %d)", l.BatchConcurrency)
	}
	if l.BatchCapacity <= 0 {
		return fmt.Errorf("batch_capacity must be > 0 (got %d)", l.BatchCapacity)
	}
	return nil
}
