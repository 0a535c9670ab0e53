package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDiscogs(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDiscogs() error {
	u, err := url.Parse(c.Discogs.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("discogs.base_url must be an absolute url, got %q", c.Discogs.BaseURL)
	}
	if c.Discogs.TimeoutSeconds < 0 {
		return errors.New("discogs.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.Concurrency < 1 || c.Catalog.Concurrency > maxConcurrency {
		return fmt.Errorf("catalog.concurrency must be between 1 and %d", maxConcurrency)
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.MaxAgeHours < 0 {
		return errors.New("cache.max_age_hours must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "text", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
