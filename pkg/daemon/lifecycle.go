// Package daemon manages the yawningd worker lifecycle: the PID file that
// records the running instance, the status file describing it, and
// starting/stopping the detached worker process.
package daemon

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// ErrAlreadyRunning is returned when starting while an instance is live.
var ErrAlreadyRunning = errors.New("yawningd already running")

// ErrNotRunning is returned when stopping without a live instance.
var ErrNotRunning = errors.New("yawningd is not running")

// WritePIDFile writes the current process ID to a file.
func WritePIDFile(path string) error {
	pid := os.Getpid()
	return os.WriteFile(path, []byte(strconv.Itoa(pid)), 0o644)
}

// ReadPIDFile reads a PID from a file.
func ReadPIDFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, err
	}

	return pid, nil
}

// RemovePIDFile removes the PID file.
func RemovePIDFile(path string) error {
	return os.Remove(path)
}

// processAlive reports whether a process with the given PID exists, using
// signal 0.
func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}

// IsRunning checks whether a live yawningd instance is recorded in the
// PID file. A PID file naming a dead process is stale: it is cleared and
// treated as not running.
func IsRunning(pidPath string) bool {
	pid, err := ReadPIDFile(pidPath)
	if err != nil {
		return false
	}

	if !processAlive(pid) {
		_ = os.Remove(pidPath) // stale record
		return false
	}
	return true
}

// RunningPID returns the PID of the live instance, or 0 when not running.
func RunningPID(pidPath string) int {
	pid, err := ReadPIDFile(pidPath)
	if err != nil || !processAlive(pid) {
		return 0
	}
	return pid
}
