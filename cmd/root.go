// Package cmd provides the clawctl command-line surface.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openclaw/clawctl/internal/config"
	"github.com/openclaw/clawctl/internal/logger"
	"github.com/openclaw/clawctl/pkg/types"
)

var (
	cfgFile      string
	settingsFile string
	verbose      bool
)

// rootCmd is the root command.
var rootCmd = &cobra.Command{
	Use:   "clawctl",
	Short: "Launcher for the OpenClaw gateway",
	Long: `clawctl starts, stops and monitors the external OpenClaw gateway
command-line service.

Before every launch it clears stale listeners from the gateway ports and
resolves TCP port conflicts automatically, persisting a substituted port
back to the launcher settings.`,
	Example: `  # launch the gateway in a visible console
  clawctl start

  # launch hidden, output appended to the gateway log file
  clawctl start --background

  # stop the gateway (clears the primary and secondary ports)
  clawctl stop

  # show port and process state, refresh continuously
  clawctl status --watch`,
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "tool config file (default: $HOME/.clawctl.yaml)")
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "launcher settings file (default: user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(cleanCmd)
}

// initConfig wires the viper tool configuration.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".clawctl")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "using config file:", viper.ConfigFileUsed())
	}
}

// getConfig returns the tool configuration, defaults merged with the
// config file and flags.
func getConfig() *types.AppConfig {
	cfg := config.DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		return cfg
	}

	if verbose {
		cfg.Log.Level = "debug"
	}

	return cfg
}

// getLogger builds the structured logger.
func getLogger(cfg *types.AppConfig) (logger.Logger, error) {
	factory := logger.NewStructuredLoggerFactory()
	return factory.Create(cfg.GetLog())
}

// getStore opens the launcher settings store.
func getStore() (*config.ViperStore, error) {
	path := settingsFile
	if path == "" {
		path = config.DefaultSettingsPath()
	}
	return config.NewViperStore(afero.NewOsFs(), path)
}
