package cleanup

import (
	"context"

	"github.com/openclaw/clawctl/internal/errors"
	"github.com/openclaw/clawctl/internal/logger"
	"github.com/openclaw/clawctl/internal/scanner"
	"github.com/openclaw/clawctl/pkg/types"
)

// ListenerReaper is the ProcessReaper implementation. Termination is
// deliberately forceful with no graceful signal: the target is always a
// gateway process this launcher started, or a stale orphan left behind by
// a crashed session.
type ListenerReaper struct {
	table  scanner.ListenerTable
	logger logger.Logger
	kill   ProcessKiller
}

// NewListenerReaper creates a reaper using the platform force-kill.
func NewListenerReaper(table scanner.ListenerTable, logger logger.Logger) *ListenerReaper {
	return &ListenerReaper{table: table, logger: logger, kill: forceKill}
}

// NewListenerReaperWithKiller creates a reaper with an injected killer,
// used by tests.
func NewListenerReaperWithKiller(table scanner.ListenerTable, logger logger.Logger, kill ProcessKiller) *ListenerReaper {
	return &ListenerReaper{table: table, logger: logger, kill: kill}
}

// ReapListeners terminates every listener on port except excludePid.
func (r *ListenerReaper) ReapListeners(ctx context.Context, port, excludePid int) (int, error) {
	listeners, err := r.table.ListenersOn(ctx, port)
	if err != nil {
		// Nothing enumerable means nothing reapable. The caller proceeds;
		// a still-occupied port is caught by the allocate-and-probe step.
		r.logger.Warn(ctx, "listener enumeration failed, skipping reap",
			types.Field{Key: "port", Value: port},
			types.Field{Key: "error", Value: err.Error()})
		return 0, err
	}

	terminated := 0
	failed := 0
	for _, l := range listeners {
		if l.PID <= 0 {
			continue
		}
		if l.PID == excludePid {
			r.logger.Debug(ctx, "skipping own process",
				types.Field{Key: "pid", Value: l.PID})
			continue
		}

		if err := r.kill(l.PID); err != nil {
			failed++
			r.logger.Warn(ctx, "failed to terminate listener",
				types.Field{Key: "port", Value: port},
				types.Field{Key: "pid", Value: l.PID},
				types.Field{Key: "process", Value: l.ProcessName},
				types.Field{Key: "error", Value: err.Error()})
			continue
		}

		terminated++
		r.logger.Info(ctx, "terminated listener",
			types.Field{Key: "port", Value: port},
			types.Field{Key: "pid", Value: l.PID},
			types.Field{Key: "process", Value: l.ProcessName})
	}

	if failed > 0 {
		return terminated, errors.NewReapPartialError(port, failed)
	}
	return terminated, nil
}
