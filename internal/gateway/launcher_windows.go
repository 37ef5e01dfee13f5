//go:build windows

package gateway

import (
	"context"
	"os/exec"
	"strings"
	"syscall"

	"github.com/openclaw/clawctl/pkg/types"
)

// launchForeground on Windows opens a new visible console window running
// the gateway, via cmd's start builtin. The window title is the first
// quoted argument to start.
func (l *ExecLauncher) launchForeground(ctx context.Context, spec CommandSpec) (ProcessHandle, error) {
	inner := spec.Runner + " " + strings.Join(gatewayArgs(spec), " ")
	cmd := exec.Command("cmd", "/c", "start", "OpenClaw Gateway", "cmd", "/k", inner)
	cmd.Dir = spec.ProjectPath

	if err := cmd.Start(); err != nil {
		return ProcessHandle{}, err
	}

	l.logger.Info(ctx, "gateway launched in foreground console",
		types.Field{Key: "pid", Value: cmd.Process.Pid},
		types.Field{Key: "port", Value: spec.Port})

	// The pid belongs to the cmd wrapper, not the gateway itself; the
	// reaper works by port, so that is acceptable.
	l.reap(cmd, spec)
	return ProcessHandle{PID: cmd.Process.Pid}, nil
}

// backgroundSysProcAttr suppresses the console window of the hidden child.
func backgroundSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP,
	}
}
