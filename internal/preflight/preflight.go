package preflight

import (
	"context"

	"imagepuller/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the filesystem checks for an export into targetDir.
// The state directory is only checked once it exists; EnsureDirectories
// creates it on the first run.
func RunAll(ctx context.Context, cfg *config.Config, targetDir string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Target directory (always checked)
	results = append(results, CheckDirectoryAccess("Target directory", targetDir))

	if cfg.Paths.StateDir != "" {
		results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	}

	return results
}

// FirstFailure returns the first failed result, if any.
func FirstFailure(results []Result) (Result, bool) {
	for _, r := range results {
		if !r.Passed {
			return r, true
		}
	}
	return Result{}, false
}
