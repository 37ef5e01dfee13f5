// Package scanner provides TCP listener-table inspection.
package scanner

import (
	"context"

	"github.com/openclaw/clawctl/pkg/types"
)

// ListenerTable queries the OS for sockets in LISTENING state. It never
// binds or connects to any port; implementations read the listener table
// only.
type ListenerTable interface {
	// Listeners returns every TCP listener on the local machine.
	Listeners(ctx context.Context) ([]types.ListenerInfo, error)
	// ListenersOn returns the listeners occupying the given port, with a
	// best-effort owner pid/name lookup.
	ListenersOn(ctx context.Context, port int) ([]types.ListenerInfo, error)
	// EstablishedCount returns the number of established TCP connections
	// whose local port matches the given port.
	EstablishedCount(ctx context.Context, port int) (int, error)
}

// PortProbe answers whether a single port is occupied.
type PortProbe interface {
	// Probe reports whether port is in use. When the underlying listener
	// table cannot be queried the result fails closed: InUse is true and a
	// PORT_CHECK_FAILED error is returned alongside it.
	Probe(ctx context.Context, port int) (types.PortProbeResult, error)
}

// CommandRunner executes an external command and returns its stdout.
// Injectable so tests can feed canned netstat/lsof output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)
