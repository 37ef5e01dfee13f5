package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/openclaw/clawctl/internal/config"
	"github.com/openclaw/clawctl/internal/errors"
	"github.com/openclaw/clawctl/internal/scanner"
	"github.com/openclaw/clawctl/internal/watcher"
	"github.com/openclaw/clawctl/pkg/types"
)

var watchStatus bool

// probeStateSource adapts a one-shot probe result to the sampler's state
// source so `status --watch` can run without a controller in-process. The
// port is re-read from the store on every sample so an external settings
// edit redirects the watch mid-run.
type probeStateSource struct {
	ctx   context.Context
	probe scanner.PortProbe
	store *config.ViperStore
}

func (p *probeStateSource) StateSnapshot() types.RuntimeSnapshot {
	port := p.store.GatewayPort()
	result, err := p.probe.Probe(p.ctx, port)
	if err == nil && result.InUse {
		return types.RuntimeSnapshot{Status: types.StatusRunning, ActivePort: port, PID: result.OwnerProcessID}
	}
	return types.RuntimeSnapshot{Status: types.StatusStopped, ActivePort: port}
}

// statusCmd reports the gateway port and process state.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show gateway port and process state",
	Long: `Probes the configured gateway port and reports whether a listener
occupies it, including the owning process when obtainable.

With --watch the report refreshes at the dashboard interval until
interrupted, including the established connection count.`,
	Example: `  # one-shot report
  clawctl status

  # continuous dashboard
  clawctl status --watch`,
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

		table := scanner.NewNetstatListenerTable(log)
		probe := scanner.NewPortProbeImpl(table, errors.PortCheckRetry(), log)
		port := store.GatewayPort()

		if !watchStatus {
			result, err := probe.Probe(ctx, port)
			if err != nil {
				return err
			}
			if !result.InUse {
				fmt.Fprintf(os.Stdout, "port %d: free (gateway stopped)\n", port)
				return nil
			}
			if result.OwnerProcessID > 0 {
				fmt.Fprintf(os.Stdout, "port %d: in use by pid %d (%s)\n",
					port, result.OwnerProcessID, result.OwnerProcessName)
			} else {
				fmt.Fprintf(os.Stdout, "port %d: in use\n", port)
			}
			return nil
		}

		watchCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()

		// Follow external settings edits while watching, so a port change
		// made in another session redirects the probe.
		settingsWatch := config.NewFileWatcher(store, log)
		if err := settingsWatch.Watch(watchCtx, nil); err != nil {
			log.Warn(watchCtx, "settings watch unavailable",
				types.Field{Key: "path", Value: store.Path()},
				types.Field{Key: "error", Value: err.Error()})
		} else {
			defer settingsWatch.Stop()
		}

		sink := newTerminalSink(os.Stdout)
		source := &probeStateSource{ctx: watchCtx, probe: probe, store: store}
		sampler := watcher.NewMetricsSampler(source, table, sink, cfg.GetWatcher().Interval, log)
		defer sampler.Stop()

		sampler.Run(watchCtx)
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&watchStatus, "watch", false, "refresh continuously until interrupted")
}
