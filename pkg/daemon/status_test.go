package daemon

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWriteAndReadStatusReady(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.status")
	runID := NewRunID()

	if err := WriteStatusReady(path, runID, "global (balance=true)"); err != nil {
		t.Fatalf("WriteStatusReady() error: %v", err)
	}

	status, err := ReadStatus(path)
	if err != nil {
		t.Fatalf("ReadStatus() error: %v", err)
	}

	if status.State != "ready" {
		t.Errorf("State = %q, want ready", status.State)
	}
	if status.PID != os.Getpid() {
		t.Errorf("PID = %d, want %d", status.PID, os.Getpid())
	}
	if status.RunID != runID {
		t.Errorf("RunID = %q, want %q", status.RunID, runID)
	}
	if status.Config != "global (balance=true)" {
		t.Errorf("Config = %q", status.Config)
	}
	if time.Since(status.StartedAt) > time.Minute {
		t.Errorf("StartedAt = %v, not recent", status.StartedAt)
	}
	if status.Error != "" {
		t.Errorf("Error = %q, want empty", status.Error)
	}
}

func TestWriteAndReadStatusError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.status")

	if err := WriteStatusError(path, os.ErrPermission); err != nil {
		t.Fatalf("WriteStatusError() error: %v", err)
	}

	status, err := ReadStatus(path)
	if err != nil {
		t.Fatalf("ReadStatus() error: %v", err)
	}
	if status.State != "error" {
		t.Errorf("State = %q, want error", status.State)
	}
	if status.Error == "" {
		t.Error("Error field is empty")
	}
	if status.PID != 0 {
		t.Errorf("PID = %d, want 0 for error state", status.PID)
	}
}

func TestReadStatusMissing(t *testing.T) {
	if _, err := ReadStatus(filepath.Join(t.TempDir(), "missing.status")); err == nil {
		t.Error("expected error for missing status file")
	}
}

func TestReadStatusCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.status")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadStatus(path); err == nil {
		t.Error("expected error for corrupt status file")
	}
}

func TestRemoveStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.status")
	if err := WriteStatusReady(path, NewRunID(), ""); err != nil {
		t.Fatal(err)
	}
	if err := RemoveStatus(path); err != nil {
		t.Fatalf("RemoveStatus() error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("status file still exists after removal")
	}
}

func TestNewRunIDUnique(t *testing.T) {
	if NewRunID() == NewRunID() {
		t.Error("consecutive run IDs collided")
	}
}
