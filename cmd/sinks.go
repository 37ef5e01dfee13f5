package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/openclaw/clawctl/pkg/types"
)

// terminalSink renders notifications, status transitions and metrics
// samples as plain terminal output. It stands in for the log pane, tray
// balloon and dashboard of the desktop launcher.
type terminalSink struct {
	out io.Writer
}

func newTerminalSink(out io.Writer) *terminalSink {
	return &terminalSink{out: out}
}

// Notify renders a notification with its remediation suggestions.
func (s *terminalSink) Notify(ctx context.Context, n types.Notification) {
	fmt.Fprintf(s.out, "%s: %s\n", n.Title, n.Message)
	for _, suggestion := range n.Suggestions {
		fmt.Fprintf(s.out, "  - %s\n", suggestion)
	}
}

// UpdateStatus renders a lifecycle transition.
func (s *terminalSink) UpdateStatus(ctx context.Context, snapshot types.RuntimeSnapshot) {
	if snapshot.Status == types.StatusRunning {
		fmt.Fprintf(s.out, "status: %s (port %d, pid %d)\n",
			snapshot.Status, snapshot.ActivePort, snapshot.PID)
		return
	}
	fmt.Fprintf(s.out, "status: %s\n", snapshot.Status)
}

// Publish renders one dashboard sample.
func (s *terminalSink) Publish(ctx context.Context, sample types.MetricsSample) {
	uptime := sample.Uptime.Round(time.Second)
	fmt.Fprintf(s.out, "[%s] %s  port=%d  connections=%d  uptime=%s\n",
		sample.SampledAt.Format("15:04:05"), sample.Status,
		sample.ActivePort, sample.Connections, uptime)
}
