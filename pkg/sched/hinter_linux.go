//go:build linux

package sched

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Nice values used as scheduling hints. Linux has no direct equivalent of
// the darwin background task policy, so the hint degrades to priority:
// demoted processes drift to efficiency cores under EAS-aware kernels.
const (
	niceEfficiency  = 10
	nicePerformance = 0
)

// NiceHinter applies affinity hints by adjusting process nice values.
type NiceHinter struct{}

// NewSystemHinter returns the platform hinter.
func NewSystemHinter() NiceHinter {
	return NiceHinter{}
}

// ApplyHint implements Hinter.
func (NiceHinter) ApplyHint(pid int32, class CoreClass) error {
	nice := niceEfficiency
	if class == Performance {
		nice = nicePerformance
	}
	if err := unix.Setpriority(unix.PRIO_PROCESS, int(pid), nice); err != nil {
		return fmt.Errorf("setpriority pid %d nice %d: %w", pid, nice, err)
	}
	return nil
}
