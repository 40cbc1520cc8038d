//go:build !windows

package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, which
// takes Chrome's renderer and GPU helpers down with the browser.
func KillProcessGroup(pid int) {
	// Errors are ignored: the group may already be gone
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
