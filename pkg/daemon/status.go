package daemon

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
)

// StatusFile describes a yawningd instance. It is written on startup and
// removed on clean shutdown; the status command and start readiness
// polling both read it.
type StatusFile struct {
	State     string    `json:"state"`                // "ready" or "error"
	PID       int       `json:"pid,omitempty"`        // only for ready state
	RunID     string    `json:"run_id,omitempty"`     // correlates status with log lines
	StartedAt time.Time `json:"started_at,omitempty"` // only for ready state
	Config    string    `json:"config,omitempty"`     // resolved scheduler settings summary
	Error     string    `json:"error,omitempty"`      // only for error state
}

// NewRunID returns a fresh run identifier for a daemon instance.
func NewRunID() string {
	return uuid.NewString()
}

// WriteStatusReady writes a ready status file for the current process.
func WriteStatusReady(path, runID, configSummary string) error {
	return writeStatus(path, &StatusFile{
		State:     "ready",
		PID:       os.Getpid(),
		RunID:     runID,
		StartedAt: time.Now(),
		Config:    configSummary,
	})
}

// WriteStatusError writes an error status file.
func WriteStatusError(path string, err error) error {
	return writeStatus(path, &StatusFile{
		State: "error",
		Error: err.Error(),
	})
}

func writeStatus(path string, status *StatusFile) error {
	data, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadStatus reads a status file.
func ReadStatus(path string) (*StatusFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var status StatusFile
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// RemoveStatus removes the status file.
func RemoveStatus(path string) error {
	return os.Remove(path)
}
