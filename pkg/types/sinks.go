package types

import "context"

// Sinks are consumers of core output (terminal, log pane, tray balloon in
// the original UI). They have no behavioral feedback into the core.

// NotificationSink receives user-facing notifications.
type NotificationSink interface {
	Notify(ctx context.Context, n Notification)
}

// StatusSink receives gateway lifecycle transitions.
type StatusSink interface {
	UpdateStatus(ctx context.Context, snapshot RuntimeSnapshot)
}

// MetricsSink receives dashboard samples from the metrics sampler.
type MetricsSink interface {
	Publish(ctx context.Context, sample MetricsSample)
}
