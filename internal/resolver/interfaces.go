// Package resolver allocates a conflict-free TCP port for the gateway.
package resolver

import (
	"context"

	"github.com/openclaw/clawctl/pkg/types"
)

// PortAllocator finds a free port at or near a desired base port.
type PortAllocator interface {
	// FindAvailable probes basePort and, when occupied, walks a fixed
	// offset sequence before falling back to the ephemeral range. The
	// returned outcome never touches configuration; persistence is the
	// caller's decision.
	FindAvailable(ctx context.Context, basePort, maxAttempts int) (types.PortAllocationOutcome, error)
}
