// Package gateway owns the lifecycle of the external gateway child process.
package gateway

import (
	"context"

	"github.com/openclaw/clawctl/pkg/types"
)

// Controller drives the gateway process state machine.
type Controller interface {
	// Start launches the gateway after clearing the target ports and
	// resolving any port conflict. Always stops first; the UI's belief
	// about a previous run may be stale relative to the OS.
	Start(ctx context.Context, req types.GatewayLaunchRequest) error
	// Stop reaps listeners on the configured primary and secondary ports
	// and returns the number of processes terminated. Idempotent.
	Stop(ctx context.Context) (int, error)
	// StateSnapshot returns the current runtime state for sinks.
	StateSnapshot() types.RuntimeSnapshot
}

// CommandSpec carries everything the launcher needs to spawn the gateway.
type CommandSpec struct {
	Runner      string
	Args        []string
	Port        int
	ProjectPath string
	LogFilePath string
}

// ProcessHandle identifies a spawned child. The child is unsupervised;
// the handle is informational only.
type ProcessHandle struct {
	PID int
}

// ProcessLauncher spawns the gateway process, fire-and-forget.
type ProcessLauncher interface {
	Launch(ctx context.Context, method types.LaunchMethod, spec CommandSpec) (ProcessHandle, error)
}
