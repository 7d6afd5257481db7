package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.ERP.validate(); err != nil {
		return fmt.Errorf("erp: %w", err)
	}

	if c.Cache.Size <= 0 {
		return fmt.Errorf("cache.size must be > 0 (got %d)", c.Cache.Size)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0 (got %s)", c.Cache.TTL)
	}

	if err := c.Sync.validate(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	if c.RateLimit.LoginPerMinute <= 0 {
		return fmt.Errorf("rate_limit.login_per_minute must be > 0 (got %d)", c.RateLimit.LoginPerMinute)
	}

	if strings.TrimSpace(c.Workflow.DefaultSeries) == "" {
		return fmt.Errorf("workflow.default_series must not be empty")
	}
	if _, err := c.Workflow.Location(); err != nil {
		return fmt.Errorf("workflow.timezone: %w", err)
	}

	return nil
}

func (e *ERPConfig) validate() error {
	if strings.TrimSpace(e.Server) == "" {
		return fmt.Errorf("server is required")
	}
	if strings.TrimSpace(e.Database) == "" {
		return fmt.Errorf("database is required")
	}
	if e.Port <= 0 || e.Port > 65535 {
		return fmt.Errorf("port must be in 1..65535 (got %d)", e.Port)
	}
	if e.MaxOpenConns <= 0 {
		return fmt.Errorf("max_open_conns must be > 0 (got %d)", e.MaxOpenConns)
	}
	return nil
}

func (s *SyncConfig) validate() error {
	if s.Interval <= 0 {
		return fmt.Errorf("interval must be > 0 (got %s)", s.Interval)
	}
	if s.LockTTL <= 0 {
		return fmt.Errorf("lock_ttl must be > 0 (got %s)", s.LockTTL)
	}
	if s.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", s.BatchSize)
	}
	return nil
}
