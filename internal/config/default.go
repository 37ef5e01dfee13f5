package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/openclaw/clawctl/pkg/types"
)

// Settings keys as persisted in the launcher settings file.
const (
	KeyProjectPath = "project.path"
	KeyGatewayPort = "gateway.port"
	KeyLogFile     = "log.file"
	KeyLogLevel    = "log.level"
	KeyTheme       = "theme"
	KeyAutoStart   = "autostart"
)

// DefaultGatewayPort is the port the gateway listens on out of the box.
const DefaultGatewayPort = 18789

// DefaultProjectPath returns the conventional OpenClaw project location
// under the user's documents folder.
func DefaultProjectPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, "Documents", "OpenClaw")
}

// DefaultLogFilePath returns the gateway log location in the temp dir.
func DefaultLogFilePath() string {
	return filepath.Join(os.TempDir(), "openclaw-gateway.log")
}

// DefaultSettingsPath returns the settings file location under the user
// config dir.
func DefaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "openclaw", "launcher.json")
}

// DefaultConfig returns the tool configuration defaults.
func DefaultConfig() *types.AppConfig {
	return &types.AppConfig{
		Gateway: types.GatewayConfig{
			Runner:          "npx",
			Args:            []string{"openclaw", "gateway", "run"},
			MaxPortAttempts: 10,
			SettleDelay:     1500 * time.Millisecond,
		},
		Watcher: types.WatcherConfig{
			Interval:      5 * time.Second,
			MaxRetries:    3,
			RetryInterval: 150 * time.Millisecond,
		},
		Log: types.LogConfig{
			Level:  "info",
			Format: "text",
			File:   "",
		},
	}
}

// TestConfig returns tightened timings for tests.
func TestConfig() *types.AppConfig {
	config := DefaultConfig()
	config.Log.Level = "debug"
	config.Gateway.SettleDelay = 10 * time.Millisecond
	config.Watcher.Interval = 50 * time.Millisecond
	config.Watcher.RetryInterval = time.Millisecond
	return config
}
