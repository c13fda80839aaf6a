package cliargs

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

const (
	// KeySize selects the square photo dimension requested from the API.
	KeySize = "size"
	// KeyConcurrency caps how many people are processed at once; 0 is unbounded.
	KeyConcurrency = "concurrency"

	// DefaultSize is the photo dimension used when nothing overrides it.
	DefaultSize = "96"
)

// ExportConfig is the read-only key/value configuration shared by every
// export in a run. The zero value behaves like a config holding only the
// built-in defaults.
type ExportConfig struct {
	values map[string]string
}

// NewExportConfig seeds a config with the built-in size default and then
// applies defaults on top of it.
func NewExportConfig(defaults map[string]string) ExportConfig {
	values := map[string]string{KeySize: DefaultSize}
	maps.Copy(values, defaults)
	return ExportConfig{values: values}
}

// With returns a copy of c with overrides applied.
func (c ExportConfig) With(overrides map[string]string) ExportConfig {
	values := make(map[string]string, len(c.values)+len(overrides))
	maps.Copy(values, c.values)
	maps.Copy(values, overrides)
	return ExportConfig{values: values}
}

// Value returns the raw value stored for key.
func (c ExportConfig) Value(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Size returns the photo dimension verbatim; it is not validated.
func (c ExportConfig) Size() string {
	if v := strings.TrimSpace(c.values[KeySize]); v != "" {
		return v
	}
	return DefaultSize
}

// Concurrency returns the configured cap, or 0 for unbounded.
func (c ExportConfig) Concurrency() int {
	n, err := strconv.Atoi(strings.TrimSpace(c.values[KeyConcurrency]))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Keys lists the configured keys in sorted order.
func (c ExportConfig) Keys() []string {
	return slices.Sorted(maps.Keys(c.values))
}

func (c ExportConfig) validate() error {
	raw, ok := c.values[KeyConcurrency]
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return fmt.Errorf("%w --%s=%s: must be a non-negative integer", ErrUsage, KeyConcurrency, raw)
	}
	return nil
}
