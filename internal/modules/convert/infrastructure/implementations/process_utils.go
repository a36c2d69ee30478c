package implementations

import (
	"fmt"
	"os"
	"syscall"
)

// killProcessTree sends SIGKILL to the process with the given PID. Only
// that one process is signalled: its children are not looked up or
// killed, and no process group is involved. A process that has already
// exited is not reported as an error.
func killProcessTree(pid int) error {
	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find process %d: %w", pid, err)
	}

	if err := process.Signal(syscall.SIGKILL); err != nil && err != os.ErrProcessDone {
		return fmt.Errorf("kill process %d: %w", pid, err)
	}
	return nil
}
