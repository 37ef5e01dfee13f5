//go:build !windows

package cleanup

import "syscall"

// forceKill sends SIGKILL directly. ESRCH means the process is already
// gone, which counts as success for a reap.
func forceKill(pid int) error {
	err := syscall.Kill(pid, syscall.SIGKILL)
	if err == syscall.ESRCH {
		return nil
	}
	return err
}
