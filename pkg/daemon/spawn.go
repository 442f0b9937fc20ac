package daemon

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/studentiz/Yawning/pkg/yawning/config"
)

// Paths locates the files shared between the CLI and the worker.
type Paths struct {
	// PID is the PID file path.
	PID string

	// Status is the status file path.
	Status string

	// Binary is the yawningd binary path; auto-discovered when empty.
	Binary string
}

// WithDefaults fills empty paths with the XDG defaults.
func (p Paths) WithDefaults() Paths {
	if p.PID == "" {
		p.PID = config.DefaultPIDPath()
	}
	if p.Status == "" {
		p.Status = config.DefaultStatusPath()
	}
	return p
}

// Start launches yawningd detached with the given arguments and waits for
// it to report ready. Idempotent: returns ErrAlreadyRunning (with the
// live PID intact) when an instance already exists, which callers report
// informationally rather than as a failure.
func Start(paths Paths, args []string) error {
	paths = paths.WithDefaults()

	if IsRunning(paths.PID) {
		return ErrAlreadyRunning
	}

	binary, err := resolveBinary(paths.Binary)
	if err != nil {
		return fmt.Errorf("find yawningd: %w", err)
	}

	if err := config.EnsureDataDir(); err != nil {
		return err
	}

	// Clean up a stale status file before starting.
	_ = os.Remove(paths.Status)

	// exec.Command (not CommandContext) intentionally: the worker must
	// outlive the caller.
	cmd := exec.Command(binary, args...) //nolint:gosec // binary path is validated
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start yawningd: %w", err)
	}

	// Detach so the worker outlives the caller.
	if cmd.Process != nil {
		_ = cmd.Process.Release()
	}

	// Poll the status file for explicit ready or error.
	for range 50 {
		time.Sleep(100 * time.Millisecond)

		if status, err := ReadStatus(paths.Status); err == nil {
			switch status.State {
			case "ready":
				return nil
			case "error":
				return fmt.Errorf("yawningd failed to start: %s", status.Error)
			}
		}
	}

	return errors.New("yawningd did not become ready within timeout")
}

// Stop signals SIGTERM to the recorded instance and waits for it to exit.
// The worker removes its own PID and status files on the way out; any
// leftovers are cleared here.
func Stop(paths Paths) error {
	paths = paths.WithDefaults()

	pid := RunningPID(paths.PID)
	if pid == 0 {
		return ErrNotRunning
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find process %d: %w", pid, err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal pid %d: %w", pid, err)
	}

	for range 40 {
		time.Sleep(250 * time.Millisecond)
		if !processAlive(pid) {
			_ = os.Remove(paths.PID)
			_ = os.Remove(paths.Status)
			return nil
		}
	}

	return fmt.Errorf("yawningd (pid %d) did not stop in time", pid)
}

// resolveBinary finds the yawningd binary path.
// Priority: configured path > same directory as executable > GOBIN/GOPATH > PATH.
func resolveBinary(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err != nil {
			return "", fmt.Errorf("configured binary not found: %s", configured)
		}
		return configured, nil
	}

	// Try same directory as the current executable.
	if execPath, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(execPath), "yawningd")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	// Try GOBIN, then GOPATH/bin.
	if gobin := os.Getenv("GOBIN"); gobin != "" {
		candidate := filepath.Join(gobin, "yawningd")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	if gopath := os.Getenv("GOPATH"); gopath != "" {
		candidate := filepath.Join(gopath, "bin", "yawningd")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	// Fall back to PATH.
	if path, err := exec.LookPath("yawningd"); err == nil {
		return path, nil
	}

	return "", errors.New("yawningd binary not found (build it next to yawning or put it on PATH)")
}
