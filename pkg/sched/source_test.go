package sched

import (
	"os"
	"testing"
)

func TestExcludedUser(t *testing.T) {
	tests := []struct {
		user string
		want bool
	}{
		{"root", true},
		{"_windowserver", true},
		{"_mdnsresponder", true},
		{"alice", false},
		{"root2", false},
		{"admin", false},
	}

	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			if got := excludedUser(tt.user); got != tt.want {
				t.Errorf("excludedUser(%q) = %v, want %v", tt.user, got, tt.want)
			}
		})
	}
}

func TestNewGopsutilSource(t *testing.T) {
	cfg := Config{Patterns: []string{"node", "chrome"}}.Normalize()
	src := NewGopsutilSource(cfg)

	if src.mode != SelectByName {
		t.Errorf("mode = %v, want by-name", src.mode)
	}
	if len(src.matchers) != 2 {
		t.Errorf("compiled %d matchers, want 2", len(src.matchers))
	}
	if src.selfPID != int32(os.Getpid()) {
		t.Errorf("selfPID = %d, want %d", src.selfPID, os.Getpid())
	}
}

func TestGlobalCandidatesExcludeSystemProcesses(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root: every process is a system process")
	}

	src := NewGopsutilSource(Config{Mode: SelectGlobal})
	pids := src.Candidates()

	// Our own process is a user process and must be in a global scan.
	self := int32(os.Getpid())
	found := false
	for _, pid := range pids {
		if pid == self {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("global scan of %d candidates did not include the test process", len(pids))
	}

	// PID 1 is always root-owned.
	for _, pid := range pids {
		if pid == 1 {
			t.Error("global scan included PID 1")
		}
	}
}
