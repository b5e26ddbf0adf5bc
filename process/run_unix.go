//go:build !windows

package process

import (
	"os/exec"
	"sync/atomic"
	"syscall"
	"time"
)

// prepare puts the child in its own process group so cancellation reaches
// the whole tree. Cancellation sends SIGTERM to the group and SIGKILL after
// grace. The returned func stops the pending SIGKILL once Wait returns.
func prepare(c *exec.Cmd, grace time.Duration) func() {
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	var killTimer atomic.Pointer[time.Timer]
	c.Cancel = func() error {
		if c.Process == nil {
			return nil
		}
		pgid := -c.Process.Pid
		killTimer.Store(time.AfterFunc(grace, func() {
			_ = syscall.Kill(pgid, syscall.SIGKILL)
		}))
		return syscall.Kill(pgid, syscall.SIGTERM)
	}
	c.WaitDelay = 2 * grace

	return func() {
		if t := killTimer.Load(); t != nil {
			t.Stop()
		}
	}
}
