// Package cleanup forcibly removes stale listeners from gateway ports.
package cleanup

import "context"

// ProcessReaper terminates processes found listening on a port.
type ProcessReaper interface {
	// ReapListeners force-kills every process listening on port except
	// excludePid and returns the number of confirmed terminations. Kill
	// failures are independent per pid; when some survive the count is
	// returned together with a non-fatal PROCESS_REAP_PARTIAL error.
	ReapListeners(ctx context.Context, port, excludePid int) (int, error)
}

// ProcessKiller performs the forced termination of one process.
// Injectable so tests never kill anything real.
type ProcessKiller func(pid int) error
