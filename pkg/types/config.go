package types

import "time"

// Config is the aggregate tool configuration.
type Config interface {
	GetGateway() GatewayConfig
	GetWatcher() WatcherConfig
	GetLog() LogConfig
	Validate() error
}

// GatewayConfig holds the launch contract for the external gateway tool.
type GatewayConfig struct {
	// Runner is the package-runner executable that fronts the gateway
	// command, e.g. "npx".
	Runner string `yaml:"runner" json:"runner"`
	// Args is the gateway subcommand passed to the runner.
	Args []string `yaml:"args" json:"args"`
	// MaxPortAttempts bounds the allocator's offset-probing loop.
	MaxPortAttempts int `yaml:"max_port_attempts" json:"max_port_attempts"`
	// SettleDelay is the pause between reaping listeners and re-probing.
	// Empirically chosen, not an OS guarantee.
	SettleDelay time.Duration `yaml:"settle_delay" json:"settle_delay"`
}

// WatcherConfig holds the metrics sampler settings.
type WatcherConfig struct {
	Interval      time.Duration `yaml:"interval" json:"interval"`
	MaxRetries    int           `yaml:"max_retries" json:"max_retries"`
	RetryInterval time.Duration `yaml:"retry_interval" json:"retry_interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	File   string `yaml:"file" json:"file"`
}

// AppConfig is the concrete Config implementation populated from defaults,
// the config file and flags.
type AppConfig struct {
	Gateway GatewayConfig `yaml:"gateway" json:"gateway"`
	Watcher WatcherConfig `yaml:"watcher" json:"watcher"`
	Log     LogConfig     `yaml:"log" json:"log"`
}

// GetGateway returns the gateway launch settings.
func (c *AppConfig) GetGateway() GatewayConfig {
	return c.Gateway
}

// GetWatcher returns the sampler settings.
func (c *AppConfig) GetWatcher() WatcherConfig {
	return c.Watcher
}

// GetLog returns the logging settings.
func (c *AppConfig) GetLog() LogConfig {
	return c.Log
}

// Validate checks the configuration for obviously unusable values.
func (c *AppConfig) Validate() error {
	if c.Gateway.Runner == "" {
		return &ValidationError{Field: "gateway.runner", Reason: "must not be empty"}
	}
	if c.Gateway.MaxPortAttempts <= 0 {
		return &ValidationError{Field: "gateway.max_port_attempts", Reason: "must be positive"}
	}
	if c.Watcher.Interval <= 0 {
		return &ValidationError{Field: "watcher.interval", Reason: "must be positive"}
	}
	return nil
}

// ValidationError reports a single invalid configuration field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid config: " + e.Field + " " + e.Reason
}
