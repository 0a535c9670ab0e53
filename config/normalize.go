package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeDiscogs()
	if err := c.normalizeCache(); err != nil {
		return err
	}
	if err := c.normalizeFonts(); err != nil {
		return err
	}
	c.normalizeOutput()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeDiscogs() {
	c.Discogs.Token = strings.TrimSpace(c.Discogs.Token)
	if c.Discogs.Token == "" {
		if value, ok := os.LookupEnv(discogsTokenEnv); ok {
			c.Discogs.Token = strings.TrimSpace(value)
		}
	}
	c.Discogs.BaseURL = strings.TrimRight(strings.TrimSpace(c.Discogs.BaseURL), "/")
	if c.Discogs.BaseURL == "" {
		c.Discogs.BaseURL = defaultDiscogsBaseURL
	}
	c.Discogs.UserAgent = strings.TrimSpace(c.Discogs.UserAgent)
	if c.Discogs.UserAgent == "" {
		c.Discogs.UserAgent = defaultDiscogsUserAgent
	}
	if c.Discogs.TimeoutSeconds == 0 {
		c.Discogs.TimeoutSeconds = defaultDiscogsTimeout
	}
	if c.Catalog.Concurrency == 0 {
		c.Catalog.Concurrency = defaultConcurrency
	}
}

func (c *Config) normalizeCache() error {
	if strings.TrimSpace(c.Cache.Path) == "" {
		c.Cache.Path = defaultCachePath
	}
	var err error
	if c.Cache.Path, err = expandPath(c.Cache.Path); err != nil {
		return fmt.Errorf("cache.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeFonts() error {
	var err error
	if c.Fonts.Regular, err = expandPath(strings.TrimSpace(c.Fonts.Regular)); err != nil {
		return fmt.Errorf("fonts.regular: %w", err)
	}
	if c.Fonts.Bold, err = expandPath(strings.TrimSpace(c.Fonts.Bold)); err != nil {
		return fmt.Errorf("fonts.bold: %w", err)
	}
	return nil
}

func (c *Config) normalizeOutput() {
	c.Output.Path = strings.TrimSpace(c.Output.Path)
	if c.Output.Path == "" {
		c.Output.Path = defaultOutputPath
	}
	c.Output.DebugJSON = strings.TrimSpace(c.Output.DebugJSON)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
