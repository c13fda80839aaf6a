package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"imagepuller/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand(ctx))

	return configCmd
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sample configuration file",
		Long: "Write a sample imagepuller configuration. The destination is --path, then\n" +
			"--config, then $" + config.ConfigPathEnv + ", then the default location.",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initConfigPath(targetPath, ctx.configFlag)
			if err != nil {
				return err
			}
			if err := writeSampleConfig(target, overwrite); err != nil {
				return err
			}

			// Read the sample back so the report shows what an export would use.
			if err := loadDotEnv(); err != nil {
				return err
			}
			cfg, _, _, err := config.Load(target)
			if err != nil {
				return fmt.Errorf("load written config: %w", err)
			}
			reportInitializedConfig(cmd.OutOrStdout(), target, cfg)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func initConfigPath(pathFlag string, configFlag *string) (string, error) {
	candidates := []string{pathFlag}
	if configFlag != nil {
		candidates = append(candidates, *configFlag)
	}
	candidates = append(candidates, os.Getenv(config.ConfigPathEnv))

	for _, candidate := range candidates {
		if candidate = strings.TrimSpace(candidate); candidate == "" {
			continue
		}
		expanded, err := config.ExpandPath(candidate)
		if err != nil {
			return "", fmt.Errorf("resolve config path: %w", err)
		}
		return expanded, nil
	}

	defaultPath, err := config.DefaultConfigPath()
	if err != nil {
		return "", fmt.Errorf("determine default config path: %w", err)
	}
	return defaultPath, nil
}

func writeSampleConfig(target string, overwrite bool) error {
	info, err := os.Stat(target)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("config path %s is a directory", target)
	case err == nil && !overwrite:
		return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("check config path: %w", err)
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory %q: %w", dir, err)
	}
	if err := config.CreateSample(target); err != nil {
		return fmt.Errorf("create sample config: %w", err)
	}
	return nil
}

func reportInitializedConfig(out io.Writer, target string, cfg *config.Config) {
	colorize := shouldColorize(out)
	fmt.Fprintln(out, renderStatusLine("Config", statusOK, "written to "+target, colorize))
	fmt.Fprintln(out, renderStatusLine("State directory", statusInfo, cfg.Paths.StateDir, colorize))
	fmt.Fprintln(out, renderStatusLine("Log file", statusInfo, cfg.LogPath(), colorize))
	if strings.TrimSpace(cfg.Graph.Token) != "" {
		fmt.Fprintln(out, renderStatusLine("Graph token", statusOK, "found in "+config.TokenEnv, colorize))
	} else {
		fmt.Fprintln(out, renderStatusLine("Graph token", statusWarn,
			fmt.Sprintf("missing; export %s or set graph.token (%s)", config.TokenEnv, tokenHelpURL), colorize))
	}
	fmt.Fprintf(out, "\nNext: imagepuller --config %s \"Alice Smith, Bob Jones\" ./photos\n", target)
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if !ctx.configSeen {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			if strings.TrimSpace(cfg.Graph.Token) == "" {
				fmt.Fprintf(out, "Warning: no Graph token configured; set %s before exporting\n", config.TokenEnv)
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
