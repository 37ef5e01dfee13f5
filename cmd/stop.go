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

// stopCmd stops the gateway.
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the OpenClaw gateway",
	Long: `Forcibly terminates every process listening on the configured gateway
port and its secondary port (primary+1).

Safe to run when nothing is listening; the command reports zero
terminations and leaves the state at Stopped.`,
	Example: `  clawctl stop`,
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

		count, err := controller.Stop(ctx)
		if err != nil {
			// Partial reap failures are non-fatal; they were already
			// surfaced through the sink.
			log.Warn(ctx, "stop completed with failures",
				types.Field{Key: "terminated", Value: count},
				types.Field{Key: "error", Value: err.Error()})
			return nil
		}

		fmt.Fprintf(os.Stdout, "terminated %d process(es)\n", count)
		return nil
	},
}
