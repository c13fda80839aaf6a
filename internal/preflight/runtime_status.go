package preflight

import (
	"context"
	"strings"

	"imagepuller/internal/config"
	"imagepuller/internal/graph"
)

// CheckGraphFromConfig evaluates the Graph credential from config and connectivity.
func CheckGraphFromConfig(ctx context.Context, cfg *config.Config) Result {
	const name = "Microsoft Graph"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if strings.TrimSpace(cfg.Graph.Token) == "" {
		return Result{Name: name, Detail: "Missing token (set " + config.TokenEnv + ")"}
	}
	client, err := graph.New(cfg.Graph.Token, cfg.Graph.BaseURL, graph.WithTimeout(cfg.GraphTimeout()))
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return CheckGraph(ctx, client)
}
