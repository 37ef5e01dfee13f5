// Package watcher periodically re-samples gateway metrics for dashboards.
package watcher

import "context"

// Sampler drives the fixed-interval dashboard refresh.
type Sampler interface {
	// Run samples until the context is cancelled or Stop is called.
	Run(ctx context.Context)
	// Stop ends sampling and releases the timer.
	Stop()
}
