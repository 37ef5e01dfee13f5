//go:build windows

package cleanup

import "os"

// forceKill terminates the process via the Windows TerminateProcess path.
func forceKill(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return proc.Kill()
}
