//go:build darwin

package sched

import (
	"os/exec"
	"strconv"
	"strings"
)

// frontmostScript asks System Events for the unix id of the frontmost
// application process.
const frontmostScript = `tell application "System Events" to get unix id of first application process whose frontmost is true`

// SystemForeground resolves the frontmost process through System Events.
type SystemForeground struct{}

// NewSystemForeground returns the platform foreground resolver.
func NewSystemForeground() SystemForeground {
	return SystemForeground{}
}

// ForegroundPID implements ForegroundResolver. It returns ok false when
// there is no GUI session or the lookup is denied.
func (SystemForeground) ForegroundPID() (int32, bool) {
	out, err := exec.Command("osascript", "-e", frontmostScript).Output()
	if err != nil {
		return 0, false
	}
	pid, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 32)
	if err != nil || pid <= 0 {
		return 0, false
	}
	return int32(pid), true
}
