package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openclaw/clawctl/internal/cleanup"
	"github.com/openclaw/clawctl/internal/scanner"
	"github.com/openclaw/clawctl/pkg/types"
)

var cleanPort int

// cleanCmd reaps listeners without driving the full stop sequence.
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Forcibly clear processes from the gateway ports",
	Long: `Enumerates the processes listening on the gateway ports (primary and
primary+1) and forcibly terminates them, skipping this process itself.

Intended for clearing stale orphans left behind by a crashed session.`,
	Example: `  # clear the configured gateway ports
  clawctl clean

  # clear a specific port
  clawctl clean --port 19000`,
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
		reaper := cleanup.NewListenerReaper(table, log)

		ports := []int{store.GatewayPort(), store.GatewayPort() + 1}
		if cleanPort != 0 {
			ports = []int{cleanPort}
		}

		self := os.Getpid()
		total := 0
		for _, port := range ports {
			count, err := reaper.ReapListeners(ctx, port, self)
			total += count
			if err != nil {
				log.Warn(ctx, "reap incomplete",
					types.Field{Key: "port", Value: port},
					types.Field{Key: "error", Value: err.Error()})
			}
		}

		fmt.Fprintf(os.Stdout, "terminated %d process(es)\n", total)
		return nil
	},
}

func init() {
	cleanCmd.Flags().IntVar(&cleanPort, "port", 0, "clear a specific port instead of the gateway ports")
}
