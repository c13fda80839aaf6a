package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"imagepuller/internal/config"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		if err := loadDotEnv(); err != nil {
			c.configErr = err
			return
		}
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

// takeConfigFlag strips leading --config/-c tokens from an export argument
// list and records the path for ensureConfig. The root command does not parse
// flags, so the export grammar has to pick this one out itself.
func (c *commandContext) takeConfigFlag(args []string) ([]string, error) {
	for len(args) > 0 {
		token := args[0]
		var value string
		switch {
		case token == "--config" || token == "-c":
			if len(args) < 2 || strings.TrimSpace(args[1]) == "" {
				return nil, fmt.Errorf("%s requires a configuration file path", token)
			}
			value, args = args[1], args[2:]
		case strings.HasPrefix(token, "--config="):
			value, args = strings.TrimPrefix(token, "--config="), args[1:]
		case strings.HasPrefix(token, "-c="):
			value, args = strings.TrimPrefix(token, "-c="), args[1:]
		default:
			return args, nil
		}
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%s requires a configuration file path", token)
		}
		if c.configFlag != nil {
			*c.configFlag = value
		}
	}
	return args, nil
}

// loadDotEnv reads .env from the working directory. Variables already set in
// the environment win.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	return cmd.Annotations != nil && cmd.Annotations["skipConfigLoad"] == "true"
}
