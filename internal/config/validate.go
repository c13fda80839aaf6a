package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
)

// Validate ensures the configuration is usable. The Graph token is not
// checked here: a missing token is reported by the CLI after help handling.
func (c *Config) Validate() error {
	if err := c.validateGraph(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateGraph() error {
	parsed, err := url.Parse(c.Graph.BaseURL)
	if err != nil {
		return fmt.Errorf("graph.base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("graph.base_url must be an http(s) URL, got %q", c.Graph.BaseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("graph.base_url must include a host, got %q", c.Graph.BaseURL)
	}
	if c.Graph.TimeoutSeconds < 0 {
		return errors.New("graph.timeout_seconds must be zero or positive")
	}
	return nil
}

func (c *Config) validateExport() error {
	if c.Export.Size <= 0 {
		return errors.New("export.size must be positive")
	}
	if c.Export.Concurrency < 0 {
		return errors.New("export.concurrency must be zero (unbounded) or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !slices.Contains([]string{"console", "json"}, c.Logging.Format) {
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

// IsSupportedPhotoSize reports whether size is one of the dimensions the
// Graph photo API serves. Other values are passed through unchanged.
func IsSupportedPhotoSize(size int) bool {
	return slices.Contains(SupportedPhotoSizes, size)
}
