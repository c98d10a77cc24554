package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeVNDB()
	c.normalizeNaming()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeVNDB() {
	c.VNDB.Token = strings.TrimSpace(c.VNDB.Token)
	if c.VNDB.Token == "" {
		if value, ok := os.LookupEnv("VNDB_TOKEN"); ok {
			c.VNDB.Token = strings.TrimSpace(value)
		}
	}
	c.VNDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.VNDB.BaseURL), "/")
	if c.VNDB.BaseURL == "" {
		c.VNDB.BaseURL = defaultVNDBBaseURL
	}
	c.VNDB.UserAgent = strings.TrimSpace(c.VNDB.UserAgent)
	if c.VNDB.UserAgent == "" {
		c.VNDB.UserAgent = defaultVNDBUserAgent
	}
	if c.VNDB.TimeoutSeconds == 0 {
		c.VNDB.TimeoutSeconds = defaultVNDBTimeout
	}
}

func (c *Config) normalizeNaming() {
	for i := range c.Naming.Template {
		c.Naming.Template[i].Token = strings.TrimSpace(c.Naming.Template[i].Token)
	}
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format == "" {
		format = defaultLogFormat
	}
	c.Logging.Format = format

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level
}
