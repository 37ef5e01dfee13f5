package types

import (
	"sync"
	"time"
)

// LaunchMethod selects how the gateway child process is spawned.
type LaunchMethod string

const (
	// LaunchForeground spawns a visible console the user watches live.
	LaunchForeground LaunchMethod = "foreground"
	// LaunchBackground spawns a hidden process with output redirected to
	// the gateway log file.
	LaunchBackground LaunchMethod = "background"
)

// GatewayStatus is the observable lifecycle state surfaced to sinks.
type GatewayStatus string

const (
	StatusReady    GatewayStatus = "Ready"
	StatusStarting GatewayStatus = "Starting"
	StatusRunning  GatewayStatus = "Running"
	StatusStopping GatewayStatus = "Stopping"
	StatusStopped  GatewayStatus = "Stopped"
)

// GatewayLaunchRequest carries the parameters of a single launch attempt.
// Constructed per invocation and never persisted.
type GatewayLaunchRequest struct {
	Method      LaunchMethod `json:"method"`
	DesiredPort int          `json:"desired_port"`
	ProjectPath string       `json:"project_path"`
	LogFilePath string       `json:"log_file_path"`
}

// RuntimeSnapshot is a point-in-time copy of the runtime state, safe to
// hand to sinks without further locking.
type RuntimeSnapshot struct {
	Status     GatewayStatus `json:"status"`
	ActivePort int           `json:"active_port"`
	PID        int           `json:"pid"`
	StartedAt  time.Time     `json:"started_at"`
}

// GatewayRuntimeState is the single process-wide record of the gateway
// lifecycle. It is mutated only by the process controller; sinks and the
// metrics sampler read it through Snapshot.
type GatewayRuntimeState struct {
	mu         sync.RWMutex
	status     GatewayStatus
	activePort int
	pid        int
	startedAt  time.Time
}

// NewGatewayRuntimeState returns a state record in the Ready rest state.
func NewGatewayRuntimeState() *GatewayRuntimeState {
	return &GatewayRuntimeState{status: StatusReady}
}

// SetStatus records a lifecycle transition.
func (s *GatewayRuntimeState) SetStatus(status GatewayStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// SetRunning records a successful spawn.
func (s *GatewayRuntimeState) SetRunning(port, pid int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusRunning
	s.activePort = port
	s.pid = pid
	s.startedAt = time.Now()
}

// SetStopped clears the child process association.
func (s *GatewayRuntimeState) SetStopped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusStopped
	s.pid = 0
	s.startedAt = time.Time{}
}

// Snapshot returns a consistent copy of the current state.
func (s *GatewayRuntimeState) Snapshot() RuntimeSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return RuntimeSnapshot{
		Status:     s.status,
		ActivePort: s.activePort,
		PID:        s.pid,
		StartedAt:  s.startedAt,
	}
}

// MetricsSample is one dashboard refresh produced by the metrics sampler.
type MetricsSample struct {
	Status      GatewayStatus `json:"status"`
	ActivePort  int           `json:"active_port"`
	Connections int           `json:"connections"`
	Uptime      time.Duration `json:"uptime"`
	SampledAt   time.Time     `json:"sampled_at"`
}
