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
	c.normalizeGraph()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	var err error
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeGraph() {
	c.Graph.Token = strings.TrimSpace(c.Graph.Token)
	if c.Graph.Token == "" {
		if value, ok := os.LookupEnv(TokenEnv); ok {
			c.Graph.Token = strings.TrimSpace(value)
		}
	}
	c.Graph.BaseURL = strings.TrimRight(strings.TrimSpace(c.Graph.BaseURL), "/")
	if c.Graph.BaseURL == "" {
		c.Graph.BaseURL = defaultGraphBaseURL
	}
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
