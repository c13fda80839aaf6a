package config

const (
	defaultStateDir           = "~/.local/share/imagepuller"
	defaultGraphBaseURL       = "https://graph.microsoft.com/v1.0"
	defaultGraphTimeoutSecond = 60
	defaultPhotoSize          = 96
	defaultConcurrency        = 0
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultConfigPath         = "~/.config/imagepuller/config.toml"
	projectConfigName         = "imagepuller.toml"

	// TokenEnv names the environment variable carrying the Graph bearer token.
	TokenEnv = "MS_AUTH_TOKEN"
	// ConfigPathEnv names the environment variable that points at a config file.
	ConfigPathEnv = "IMAGEPULLER_CONFIG"
)

// SupportedPhotoSizes lists the square dimensions the Graph photo API serves.
var SupportedPhotoSizes = []int{48, 64, 96, 120, 240, 360, 432, 504, 648}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Graph: Graph{
			BaseURL:        defaultGraphBaseURL,
			TimeoutSeconds: defaultGraphTimeoutSecond,
		},
		Export: Export{
			Size:        defaultPhotoSize,
			Concurrency: defaultConcurrency,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
