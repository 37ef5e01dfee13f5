package resolver

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/openclaw/clawctl/internal/logger"
	"github.com/openclaw/clawctl/internal/scanner"
	"github.com/openclaw/clawctl/pkg/types"
)

// DefaultMaxAttempts bounds the offset-probing loop when the caller passes
// no explicit limit.
const DefaultMaxAttempts = 10

// portOffsets is the probing order applied to the base port. Closest
// neighbors come first so whatever expects the original port range is
// disrupted as little as possible.
var portOffsets = []int{1, -1, 10, -10, 2, -2, 5, -5, 100, -100}

// OffsetPortAllocator is the PortAllocator implementation. When a
// substitution happens it emits a notification describing the new port.
type OffsetPortAllocator struct {
	probe    scanner.PortProbe
	notifier types.NotificationSink
	logger   logger.Logger
	randPort func() int
}

// NewOffsetPortAllocator creates an allocator. notifier may be nil when no
// user-facing surface exists.
func NewOffsetPortAllocator(probe scanner.PortProbe, notifier types.NotificationSink, logger logger.Logger) *OffsetPortAllocator {
	return &OffsetPortAllocator{
		probe:    probe,
		notifier: notifier,
		logger:   logger,
		randPort: func() int {
			span := types.EphemeralPorts.End - types.EphemeralPorts.Start + 1
			return types.EphemeralPorts.Start + rand.Intn(span)
		},
	}
}

// NewOffsetPortAllocatorWithRand creates an allocator with an injected
// random-port source, used by tests.
func NewOffsetPortAllocatorWithRand(probe scanner.PortProbe, notifier types.NotificationSink, logger logger.Logger, randPort func() int) *OffsetPortAllocator {
	a := NewOffsetPortAllocator(probe, notifier, logger)
	a.randPort = randPort
	return a
}

// FindAvailable implements the allocation algorithm:
//
//  1. If basePort itself is free, use it unchanged.
//  2. Walk the offset sequence; candidates outside 1024-65535 are replaced
//     by a random draw from the ephemeral range. The first probed-free
//     candidate wins.
//  3. After maxAttempts tries, fall back to an unprobed random ephemeral
//     port. A collision there is tolerated downstream: the eventual spawn
//     fails and surfaces an error.
func (a *OffsetPortAllocator) FindAvailable(ctx context.Context, basePort, maxAttempts int) (types.PortAllocationOutcome, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	// A probe error is fatal for the whole attempt: the probe has already
	// retried the listener-table query and failed closed, and allocating
	// blind against an unreadable table would only defer the failure.
	result, err := a.probe.Probe(ctx, basePort)
	if err != nil {
		return failure(basePort, err), err
	}
	if !result.InUse {
		a.logger.Debug(ctx, "base port is free",
			types.Field{Key: "port", Value: basePort})
		return types.PortAllocationOutcome{
			Success:      true,
			ResolvedPort: basePort,
			OriginalPort: basePort,
			WasChanged:   false,
		}, nil
	}

	a.logger.Info(ctx, "base port occupied, searching for an alternative",
		types.Field{Key: "base_port", Value: basePort},
		types.Field{Key: "owner_pid", Value: result.OwnerProcessID},
		types.Field{Key: "owner_name", Value: result.OwnerProcessName})

	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := 0
		if attempt < len(portOffsets) {
			candidate = basePort + portOffsets[attempt]
		}
		if !types.UnprivilegedPorts.Contains(candidate) {
			candidate = a.randPort()
		}

		probed, err := a.probe.Probe(ctx, candidate)
		if err != nil {
			return failure(basePort, err), err
		}
		if probed.InUse {
			continue
		}

		outcome := types.PortAllocationOutcome{
			Success:      true,
			ResolvedPort: candidate,
			OriginalPort: basePort,
			WasChanged:   true,
		}
		a.notifySubstitution(ctx, outcome)
		return outcome, nil
	}

	// Last resort: unprobed draw from the ephemeral range.
	fallback := a.randPort()
	a.logger.Warn(ctx, "offset probing exhausted, falling back to a random ephemeral port",
		types.Field{Key: "base_port", Value: basePort},
		types.Field{Key: "fallback_port", Value: fallback})

	outcome := types.PortAllocationOutcome{
		Success:      true,
		ResolvedPort: fallback,
		OriginalPort: basePort,
		WasChanged:   true,
	}
	a.notifySubstitution(ctx, outcome)
	return outcome, nil
}

func (a *OffsetPortAllocator) notifySubstitution(ctx context.Context, outcome types.PortAllocationOutcome) {
	a.logger.Info(ctx, "gateway port substituted",
		types.Field{Key: "from", Value: outcome.OriginalPort},
		types.Field{Key: "to", Value: outcome.ResolvedPort})

	if a.notifier == nil {
		return
	}
	a.notifier.Notify(ctx, types.Notification{
		Title: "Gateway port changed",
		Message: fmt.Sprintf("Port %d was in use; the gateway will listen on %d instead.",
			outcome.OriginalPort, outcome.ResolvedPort),
		Suggestions: []string{
			fmt.Sprintf("reach the gateway at http://localhost:%d", outcome.ResolvedPort),
			fmt.Sprintf("free port %d and restart to return to the configured port", outcome.OriginalPort),
		},
	})
}

func failure(basePort int, err error) types.PortAllocationOutcome {
	return types.PortAllocationOutcome{
		Success:      false,
		OriginalPort: basePort,
		ErrorMessage: err.Error(),
	}
}
