package watcher

import (
	"context"
	"sync"
	"time"

	"github.com/openclaw/clawctl/internal/logger"
	"github.com/openclaw/clawctl/internal/scanner"
	"github.com/openclaw/clawctl/pkg/types"
)

// StateSource exposes the runtime state the sampler reads. Satisfied by
// the gateway controller.
type StateSource interface {
	StateSnapshot() types.RuntimeSnapshot
}

// MetricsSampler re-samples the gateway state and the established
// connection count on the active port at a fixed interval, publishing one
// MetricsSample per tick to the sink. It only ever reads shared state
// through snapshots, so it cannot race a Stop mid-update.
type MetricsSampler struct {
	source   StateSource
	table    scanner.ListenerTable
	sink     types.MetricsSink
	logger   logger.Logger
	interval time.Duration

	stopOnce sync.Once
	done     chan struct{}
}

// NewMetricsSampler creates a sampler.
func NewMetricsSampler(source StateSource, table scanner.ListenerTable, sink types.MetricsSink, interval time.Duration, logger logger.Logger) *MetricsSampler {
	return &MetricsSampler{
		source:   source,
		table:    table,
		sink:     sink,
		logger:   logger,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Run samples until the context is cancelled or Stop is called. The first
// sample is taken immediately.
func (s *MetricsSampler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sampleOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.C:
			s.sampleOnce(ctx)
		}
	}
}

// Stop ends sampling.
func (s *MetricsSampler) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *MetricsSampler) sampleOnce(ctx context.Context) {
	snapshot := s.source.StateSnapshot()

	sample := types.MetricsSample{
		Status:     snapshot.Status,
		ActivePort: snapshot.ActivePort,
		SampledAt:  time.Now(),
	}
	if snapshot.Status == types.StatusRunning {
		// A source observing an externally started gateway cannot know the
		// start time; leave the uptime unset rather than measuring since the
		// zero time.
		if !snapshot.StartedAt.IsZero() {
			sample.Uptime = time.Since(snapshot.StartedAt)
		}

		count, err := s.table.EstablishedCount(ctx, snapshot.ActivePort)
		if err != nil {
			s.logger.Debug(ctx, "connection count sample failed",
				types.Field{Key: "port", Value: snapshot.ActivePort},
				types.Field{Key: "error", Value: err.Error()})
		} else {
			sample.Connections = count
		}
	}

	s.sink.Publish(ctx, sample)
}
