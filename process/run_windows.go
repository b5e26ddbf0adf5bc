//go:build windows

package process

import (
	"os/exec"
	"time"
)

// prepare relies on the default Cancel, which terminates the process.
// Windows has no SIGTERM, so grace only bounds how long Wait lingers on
// inherited output handles.
func prepare(c *exec.Cmd, grace time.Duration) func() {
	c.WaitDelay = grace
	return func() {}
}
