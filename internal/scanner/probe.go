package scanner

import (
	"context"
	"time"

	"github.com/openclaw/clawctl/internal/errors"
	"github.com/openclaw/clawctl/internal/logger"
	"github.com/openclaw/clawctl/pkg/types"
)

// PortProbeImpl answers port-occupancy questions over a ListenerTable.
// Table query failures are retried a bounded number of times; when the
// query keeps failing the probe fails closed and reports the port in use,
// so callers never collide with a listener the probe could not see.
type PortProbeImpl struct {
	table         ListenerTable
	logger        logger.Logger
	maxRetries    int
	retryInterval time.Duration
	sleep         func(time.Duration)
}

// NewPortProbeImpl creates a probe with the given retry bounds.
func NewPortProbeImpl(table ListenerTable, retry errors.RetryConfig, logger logger.Logger) *PortProbeImpl {
	return &PortProbeImpl{
		table:         table,
		logger:        logger,
		maxRetries:    retry.MaxRetries,
		retryInterval: retry.BaseDelay,
		sleep:         time.Sleep,
	}
}

// Probe reports whether port is occupied and, when it is, the owning
// process when obtainable.
func (p *PortProbeImpl) Probe(ctx context.Context, port int) (types.PortProbeResult, error) {
	if !types.ValidPorts.Contains(port) {
		return types.PortProbeResult{Port: port, InUse: true},
			(&errors.AppError{
				Code:    errors.ErrPortRangeInvalid,
				Message: "port out of range 1-65535",
			}).WithField("port", port)
	}

	var lastErr error
	for attempt := 0; attempt < p.maxRetries; attempt++ {
		if attempt > 0 {
			p.sleep(p.retryInterval)
		}

		listeners, err := p.table.ListenersOn(ctx, port)
		if err != nil {
			lastErr = err
			p.logger.Warn(ctx, "listener table query failed",
				types.Field{Key: "port", Value: port},
				types.Field{Key: "attempt", Value: attempt + 1},
				types.Field{Key: "error", Value: err.Error()})
			continue
		}

		result := types.PortProbeResult{Port: port, InUse: len(listeners) > 0}
		if len(listeners) > 0 {
			result.OwnerProcessID = listeners[0].PID
			result.OwnerProcessName = listeners[0].ProcessName
		}
		return result, nil
	}

	// Fail closed: an unanswerable probe must read as occupied.
	p.logger.Error(ctx, "listener table query failed repeatedly, treating port as in use", lastErr,
		types.Field{Key: "port", Value: port})
	return types.PortProbeResult{Port: port, InUse: true},
		errors.NewPortCheckFailedError(port, lastErr)
}
