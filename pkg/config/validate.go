package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	if !c.API.Disabled {
		if err := validateService(c.API.BaseURL, c.API.Timeout); err != nil {
			return fmt.Errorf("api: %w", err)
		}
	}
	if !c.Dictionary.Disabled {
		if err := validateService(c.Dictionary.BaseURL, c.Dictionary.Timeout); err != nil {
			return fmt.Errorf("dictionary: %w", err)
		}
	}
	if strings.TrimSpace(c.Static.Base) == "" {
		return fmt.Errorf("static.base must not be empty")
	}
	if c.Quiz.DefaultLimit <= 0 {
		return fmt.Errorf("quiz.default_limit must be > 0 (got %d)", c.Quiz.DefaultLimit)
	}
	if c.Status.WatchInterval < time.Second {
		return fmt.Errorf("status.watch_interval must be at least 1s (got %s)", c.Status.WatchInterval)
	}
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

func validateService(base string, timeout time.Duration) error {
	u, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must be an http(s) URL (got %q)", base)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url has no host (got %q)", base)
	}
	if timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", timeout)
	}
	return nil
}

func (l LogConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be one of debug, info, warn, error (got %q)", l.Level)
	}
	switch strings.ToLower(strings.TrimSpace(l.Format)) {
	case "text", "json":
	default:
		return fmt.Errorf("format must be text or json (got %q)", l.Format)
	}
	return nil
}
