package config

import (
	"errors"
	"fmt"
	"net/url"
)

var knownTemplateTokens = map[string]struct{}{
	"producer":    {},
	"releaseDate": {},
	"length":      {},
	"title":       {},
	"flags":       {},
	"tags":        {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateVNDB(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	if err := c.validateNaming(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateVNDB() error {
	parsed, err := url.Parse(c.VNDB.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("vndb.base_url must be an absolute URL, got %q", c.VNDB.BaseURL)
	}
	if c.VNDB.TimeoutSeconds < 0 {
		return errors.New("vndb.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateSearch() error {
	if c.Search.CandidateLimit < minCandidateLimit || c.Search.CandidateLimit > maxCandidateLimit {
		return fmt.Errorf("search.candidate_limit must be between %d and %d", minCandidateLimit, maxCandidateLimit)
	}
	return nil
}

func (c *Config) validateNaming() error {
	for i, entry := range c.Naming.Template {
		if _, ok := knownTemplateTokens[entry.Token]; !ok {
			return fmt.Errorf("naming.template[%d]: unknown token %q", i, entry.Token)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
