package gateway

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/openclaw/clawctl/internal/cleanup"
	"github.com/openclaw/clawctl/internal/config"
	"github.com/openclaw/clawctl/internal/errors"
	"github.com/openclaw/clawctl/internal/logger"
	"github.com/openclaw/clawctl/internal/resolver"
	"github.com/openclaw/clawctl/pkg/types"
)

// secondaryPortOffset is the fixed convention of the gateway tool: it also
// binds primary+1.
const secondaryPortOffset = 1

// GatewayController is the Controller implementation. A single mutex
// serializes Start/Stop so a rapid double-click cannot interleave two
// lifecycle transitions.
type GatewayController struct {
	mu sync.Mutex

	allocator resolver.PortAllocator
	reaper    cleanup.ProcessReaper
	store     config.Store
	launcher  ProcessLauncher
	notifier  types.NotificationSink
	sinks     []types.StatusSink
	state     *types.GatewayRuntimeState
	fs        afero.Fs
	logger    logger.Logger
	cfg       types.GatewayConfig

	sleep   func(time.Duration)
	selfPid int
}

// NewGatewayController wires the controller. notifier may be nil.
func NewGatewayController(
	allocator resolver.PortAllocator,
	reaper cleanup.ProcessReaper,
	store config.Store,
	launcher ProcessLauncher,
	notifier types.NotificationSink,
	fs afero.Fs,
	cfg types.GatewayConfig,
	logger logger.Logger,
) *GatewayController {
	return &GatewayController{
		allocator: allocator,
		reaper:    reaper,
		store:     store,
		launcher:  launcher,
		notifier:  notifier,
		state:     types.NewGatewayRuntimeState(),
		fs:        fs,
		logger:    logger,
		cfg:       cfg,
		sleep:     time.Sleep,
		selfPid:   os.Getpid(),
	}
}

// AddStatusSink registers a lifecycle sink.
func (c *GatewayController) AddStatusSink(sink types.StatusSink) {
	c.sinks = append(c.sinks, sink)
}

// SetSleep replaces the settle-delay sleep, used by tests.
func (c *GatewayController) SetSleep(sleep func(time.Duration)) {
	c.sleep = sleep
}

// StateSnapshot returns the current runtime state.
func (c *GatewayController) StateSnapshot() types.RuntimeSnapshot {
	return c.state.Snapshot()
}

// Stop reaps listeners on the configured primary and secondary ports.
func (c *GatewayController) Stop(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopLocked(ctx)
}

func (c *GatewayController) stopLocked(ctx context.Context) (int, error) {
	c.transition(ctx, types.StatusStopping)

	primary := c.store.GatewayPort()
	total := 0
	var reapErr error

	for _, port := range []int{primary, primary + secondaryPortOffset} {
		count, err := c.reaper.ReapListeners(ctx, port, c.selfPid)
		total += count
		if err != nil && errors.CodeOf(err) == errors.ErrProcessReapPartial {
			// Non-fatal: the follow-up allocate-and-probe catches a port
			// that stayed occupied.
			reapErr = err
			c.notify(ctx, err)
		}
	}

	c.state.SetStopped()
	c.publish(ctx)

	c.logger.Info(ctx, "gateway stopped",
		types.Field{Key: "port", Value: primary},
		types.Field{Key: "terminated", Value: total})

	return total, reapErr
}

// Start runs the full launch sequence: clear the ports, settle, validate
// the project path, allocate a port, persist on change, spawn.
func (c *GatewayController) Start(ctx context.Context, req types.GatewayLaunchRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.transition(ctx, types.StatusStarting)

	// Starting always supersedes any previous run, even one the UI thinks
	// is already stopped; that belief can be stale relative to the OS.
	if _, err := c.stopLocked(ctx); err != nil {
		c.logger.Warn(ctx, "reap before start was incomplete, continuing",
			types.Field{Key: "error", Value: err.Error()})
	}
	c.transition(ctx, types.StatusStarting)

	// Give the OS time to fully release the port after the forced
	// termination; re-probing too early can read the port as still bound.
	c.sleep(c.cfg.SettleDelay)

	ok, err := afero.DirExists(c.fs, req.ProjectPath)
	if err != nil || !ok {
		pathErr := apperr(errors.NewPathNotFoundError(req.ProjectPath), err)
		return c.fail(ctx, pathErr)
	}

	outcome, err := c.allocator.FindAvailable(ctx, req.DesiredPort, c.cfg.MaxPortAttempts)
	if err != nil {
		if errors.CodeOf(err) == errors.ErrPortCheckFailed {
			return c.fail(ctx, err)
		}
		return c.fail(ctx, errors.NewPortAllocationFailedError(req.DesiredPort, err))
	}
	if !outcome.Success {
		return c.fail(ctx, errors.NewPortAllocationFailedError(req.DesiredPort, nil).
			WithField("detail", outcome.ErrorMessage))
	}

	if outcome.WasChanged {
		// Persist immediately so a subsequent Stop or status check reaps
		// and reports the right port.
		c.store.SetGatewayPort(outcome.ResolvedPort)
		if err := c.store.Save(); err != nil {
			c.logger.Warn(ctx, "failed to persist substituted port",
				types.Field{Key: "port", Value: outcome.ResolvedPort},
				types.Field{Key: "error", Value: err.Error()})
		}
	}

	spec := CommandSpec{
		Runner:      c.cfg.Runner,
		Args:        c.cfg.Args,
		Port:        outcome.ResolvedPort,
		ProjectPath: req.ProjectPath,
		LogFilePath: req.LogFilePath,
	}

	handle, err := c.launcher.Launch(ctx, req.Method, spec)
	if err != nil {
		return c.fail(ctx, errors.NewSpawnFailedError(c.cfg.Runner, err))
	}

	c.state.SetRunning(outcome.ResolvedPort, handle.PID)
	c.publish(ctx)

	c.logger.Info(ctx, "gateway running",
		types.Field{Key: "port", Value: outcome.ResolvedPort},
		types.Field{Key: "pid", Value: handle.PID},
		types.Field{Key: "method", Value: string(req.Method)})

	return nil
}

// fail recovers a start error at the controller boundary: log it, surface
// it to the notification sink, leave the state machine at Stopped.
func (c *GatewayController) fail(ctx context.Context, err error) error {
	c.logger.Error(ctx, "gateway start failed", err)
	c.notify(ctx, err)
	c.state.SetStopped()
	c.publish(ctx)
	return err
}

func (c *GatewayController) notify(ctx context.Context, err error) {
	if c.notifier == nil {
		return
	}
	n := types.Notification{Title: "Gateway", Message: err.Error()}
	if appErr, ok := errors.AsAppError(err); ok {
		n.Title = fmt.Sprintf("Gateway: %s", appErr.Code)
		n.Message = appErr.Message
		n.Suggestions = appErr.Suggestions
	}
	c.notifier.Notify(ctx, n)
}

func (c *GatewayController) transition(ctx context.Context, status types.GatewayStatus) {
	c.state.SetStatus(status)
	c.publish(ctx)
}

func (c *GatewayController) publish(ctx context.Context) {
	snapshot := c.state.Snapshot()
	for _, sink := range c.sinks {
		sink.UpdateStatus(ctx, snapshot)
	}
}

func apperr(appErr *errors.AppError, cause error) *errors.AppError {
	if cause != nil {
		return appErr.WithCause(cause)
	}
	return appErr
}
