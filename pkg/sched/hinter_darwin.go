//go:build darwin

package sched

import (
	"fmt"
	"os/exec"
)

// TaskPolicyHinter applies affinity hints through the taskpolicy utility:
// -b tags a process background (efficiency cores), -B removes the tag so
// the scheduler may place it on performance cores under load.
type TaskPolicyHinter struct{}

// NewSystemHinter returns the platform hinter.
func NewSystemHinter() TaskPolicyHinter {
	return TaskPolicyHinter{}
}

// ApplyHint implements Hinter.
func (TaskPolicyHinter) ApplyHint(pid int32, class CoreClass) error {
	flag := "-b"
	if class == Performance {
		flag = "-B"
	}
	if err := exec.Command("taskpolicy", flag, "-p", fmt.Sprint(pid)).Run(); err != nil {
		return fmt.Errorf("taskpolicy %s pid %d: %w", flag, pid, err)
	}
	return nil
}
