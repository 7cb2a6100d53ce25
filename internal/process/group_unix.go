//go:build !windows

package process

import "syscall"

// KillGroup sends SIGKILL to the process group led by pid.
// Chrome forks helpers into its own group, so killing only the leader leaks them.
func KillGroup(pid int) error {
	if pid <= 0 {
		return ErrInvalidPID
	}
	return syscall.Kill(-pid, syscall.SIGKILL)
}
