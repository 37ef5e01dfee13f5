package gateway

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/openclaw/clawctl/internal/logger"
	"github.com/openclaw/clawctl/pkg/types"
)

// ExecLauncher spawns the gateway through the configured package runner.
// Both methods are fire-and-forget: the launcher never waits for the
// child, collects no exit code and restarts nothing. A detached goroutine
// reaps the child to avoid zombies and logs the exit at debug level only.
type ExecLauncher struct {
	logger logger.Logger
}

// NewExecLauncher creates a launcher.
func NewExecLauncher(logger logger.Logger) *ExecLauncher {
	return &ExecLauncher{logger: logger}
}

// Launch spawns the gateway with the requested method.
func (l *ExecLauncher) Launch(ctx context.Context, method types.LaunchMethod, spec CommandSpec) (ProcessHandle, error) {
	switch method {
	case types.LaunchForeground:
		return l.launchForeground(ctx, spec)
	case types.LaunchBackground:
		return l.launchBackground(ctx, spec)
	default:
		return ProcessHandle{}, fmt.Errorf("unknown launch method %q", method)
	}
}

// gatewayArgs builds the gateway invocation: the runner's subcommand plus
// the resolved port, always verbose.
func gatewayArgs(spec CommandSpec) []string {
	args := make([]string, 0, len(spec.Args)+3)
	args = append(args, spec.Args...)
	args = append(args, "--port", strconv.Itoa(spec.Port), "--verbose")
	return args
}

func (l *ExecLauncher) launchBackground(ctx context.Context, spec CommandSpec) (ProcessHandle, error) {
	logFile, err := os.OpenFile(spec.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return ProcessHandle{}, fmt.Errorf("failed to open gateway log file: %w", err)
	}

	cmd := exec.Command(spec.Runner, gatewayArgs(spec)...)
	cmd.Dir = spec.ProjectPath
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.SysProcAttr = backgroundSysProcAttr()

	if err := cmd.Start(); err != nil {
		logFile.Close()
		return ProcessHandle{}, err
	}
	// The child holds its own copy of the descriptor.
	logFile.Close()

	l.logger.Info(ctx, "gateway launched in background",
		types.Field{Key: "pid", Value: cmd.Process.Pid},
		types.Field{Key: "port", Value: spec.Port},
		types.Field{Key: "log_file", Value: spec.LogFilePath})

	l.reap(cmd, spec)
	return ProcessHandle{PID: cmd.Process.Pid}, nil
}

// reap waits on the child only to release its process table entry. The
// exit drives no state change and nothing restarts the gateway.
func (l *ExecLauncher) reap(cmd *exec.Cmd, spec CommandSpec) {
	go func() {
		err := cmd.Wait()
		l.logger.Debug(context.Background(), "gateway process exited",
			types.Field{Key: "pid", Value: cmd.Process.Pid},
			types.Field{Key: "port", Value: spec.Port},
			types.Field{Key: "error", Value: fmt.Sprintf("%v", err)})
	}()
}
