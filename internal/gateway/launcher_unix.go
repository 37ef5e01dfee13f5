//go:build !windows

package gateway

import (
	"context"
	"os"
	"os/exec"
	"syscall"

	"github.com/openclaw/clawctl/pkg/types"
)

// launchForeground on Unix attaches the gateway to the launcher's own
// terminal; the user watches its output live. No redirection, no wait.
func (l *ExecLauncher) launchForeground(ctx context.Context, spec CommandSpec) (ProcessHandle, error) {
	cmd := exec.Command(spec.Runner, gatewayArgs(spec)...)
	cmd.Dir = spec.ProjectPath
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return ProcessHandle{}, err
	}

	l.logger.Info(ctx, "gateway launched in foreground",
		types.Field{Key: "pid", Value: cmd.Process.Pid},
		types.Field{Key: "port", Value: spec.Port})

	l.reap(cmd, spec)
	return ProcessHandle{PID: cmd.Process.Pid}, nil
}

// backgroundSysProcAttr detaches the child into its own session so it
// survives the launcher exiting and receives no terminal signals.
func backgroundSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
