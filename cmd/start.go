package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/openclaw/clawctl/internal/cleanup"
	"github.com/openclaw/clawctl/internal/errors"
	"github.com/openclaw/clawctl/internal/gateway"
	"github.com/openclaw/clawctl/internal/resolver"
	"github.com/openclaw/clawctl/internal/scanner"
	"github.com/openclaw/clawctl/pkg/types"
)

var (
	background  bool
	startPort   int
	projectPath string
	logFilePath string
)

// startCmd launches the gateway.
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the OpenClaw gateway",
	Long: `Starts the gateway after clearing stale listeners from the gateway
ports and resolving any TCP port conflict.

When the configured port is occupied, a nearby free port is substituted,
persisted to the launcher settings and reported. Foreground mode attaches
the gateway to a visible console; background mode hides it and appends
stdout and stderr to the gateway log file.`,
	Example: `  # foreground, visible console
  clawctl start

  # hidden, output to the gateway log file
  clawctl start --background

  # override the configured port for this launch
  clawctl start --port 19000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := getConfig()

		log, err := getLogger(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		store, err := getStore()
		if err != nil {
			return fmt.Errorf("failed to open launcher settings: %w", err)
		}

		sink := newTerminalSink(os.Stdout)

		table := scanner.NewNetstatListenerTable(log)
		probe := scanner.NewPortProbeImpl(table, errors.PortCheckRetry(), log)
		allocator := resolver.NewOffsetPortAllocator(probe, sink, log)
		reaper := cleanup.NewListenerReaper(table, log)
		launcher := gateway.NewExecLauncher(log)

		controller := gateway.NewGatewayController(
			allocator, reaper, store, launcher, sink,
			afero.NewOsFs(), cfg.GetGateway(), log)
		controller.AddStatusSink(sink)

		req := types.GatewayLaunchRequest{
			Method:      types.LaunchForeground,
			DesiredPort: store.GatewayPort(),
			ProjectPath: store.ProjectPath(),
			LogFilePath: store.LogFilePath(),
		}
		if background {
			req.Method = types.LaunchBackground
		}
		if startPort != 0 {
			req.DesiredPort = startPort
		}
		if projectPath != "" {
			req.ProjectPath = projectPath
		}
		if logFilePath != "" {
			req.LogFilePath = logFilePath
		}

		log.Info(ctx, "starting gateway",
			types.Field{Key: "method", Value: string(req.Method)},
			types.Field{Key: "desired_port", Value: req.DesiredPort},
			types.Field{Key: "project_path", Value: req.ProjectPath})

		if err := controller.Start(ctx, req); err != nil {
			// Already logged and surfaced through the notification sink;
			// return it so the exit code reflects the failure.
			return err
		}

		if background {
			fmt.Fprintf(os.Stdout, "gateway log: %s\n", req.LogFilePath)
		}
		return nil
	},
}

func init() {
	startCmd.Flags().BoolVarP(&background, "background", "b", false, "run hidden, output redirected to the gateway log file")
	startCmd.Flags().IntVar(&startPort, "port", 0, "desired gateway port (default: configured port)")
	startCmd.Flags().StringVar(&projectPath, "project", "", "OpenClaw project directory (default: configured path)")
	startCmd.Flags().StringVar(&logFilePath, "log-file", "", "gateway log file for background mode (default: configured path)")
}
