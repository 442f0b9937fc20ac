package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/studentiz/Yawning/pkg/daemon"
	"github.com/studentiz/Yawning/pkg/sched"
	"github.com/studentiz/Yawning/pkg/yawning/config"
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "yawningd"}
	schedulerFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parsing flags %v: %v", args, err)
	}
	return cmd
}

func defaultFileConfig() *config.Config {
	return &config.Config{
		Scheduler: config.SchedulerConfig{
			Global:          true,
			TrackForeground: true,
			Balance:         true,
		},
	}
}

func TestResolveConfigPatternFlagsWin(t *testing.T) {
	cfg := defaultFileConfig()
	cfg.Scheduler.Patterns = []string{"from-file"}

	cmd := newTestCommand(t, "-p", "chrome", "-p", "node")
	sc := resolveConfig(cmd, cfg)

	if sc.Mode != sched.SelectByName {
		t.Errorf("Mode = %v, want by-name", sc.Mode)
	}
	if len(sc.Patterns) != 2 || sc.Patterns[0] != "chrome" {
		t.Errorf("Patterns = %v, want command-line patterns", sc.Patterns)
	}
}

func TestResolveConfigExplicitGlobalClearsFilePatterns(t *testing.T) {
	cfg := defaultFileConfig()
	cfg.Scheduler.Patterns = []string{"from-file"}

	cmd := newTestCommand(t, "-g")
	sc := resolveConfig(cmd, cfg)

	if sc.Mode != sched.SelectGlobal {
		t.Errorf("Mode = %v, want global after explicit -g", sc.Mode)
	}
	if len(sc.Patterns) != 0 {
		t.Errorf("Patterns = %v, want none after explicit -g", sc.Patterns)
	}
}

func TestResolveConfigFilePatternsApplyWithoutFlags(t *testing.T) {
	cfg := defaultFileConfig()
	cfg.Scheduler.Patterns = []string{"from-file"}

	cmd := newTestCommand(t)
	sc := resolveConfig(cmd, cfg)

	if sc.Mode != sched.SelectByName {
		t.Errorf("Mode = %v, want by-name from config file patterns", sc.Mode)
	}
	if len(sc.Patterns) != 1 || sc.Patterns[0] != "from-file" {
		t.Errorf("Patterns = %v, want config file patterns", sc.Patterns)
	}
}

func TestResolveConfigPatternsBeatExplicitGlobal(t *testing.T) {
	cmd := newTestCommand(t, "-g", "-p", "chrome")
	sc := resolveConfig(cmd, defaultFileConfig())

	if sc.Mode != sched.SelectByName {
		t.Errorf("Mode = %v, want by-name: patterns win over -g", sc.Mode)
	}
}

func TestResolveConfigThresholdFlags(t *testing.T) {
	cmd := newTestCommand(t, "-b", "90", "-c", "200")
	sc := resolveConfig(cmd, defaultFileConfig())

	if sc.PerProcessThreshold != 90 {
		t.Errorf("PerProcessThreshold = %v, want 90", sc.PerProcessThreshold)
	}
	if sc.TotalLoadThreshold != 200 {
		t.Errorf("TotalLoadThreshold = %v, want 200", sc.TotalLoadThreshold)
	}

	// Unset flags fall back to the defaults via Normalize.
	sc = resolveConfig(newTestCommand(t), defaultFileConfig())
	if sc.PerProcessThreshold != sched.DefaultPerProcessThreshold {
		t.Errorf("PerProcessThreshold = %v, want default", sc.PerProcessThreshold)
	}
}

func TestGuardSingleInstanceWritesErrorStatus(t *testing.T) {
	dir := t.TempDir()
	paths := daemon.Paths{
		PID:    filepath.Join(dir, "yawning.pid"),
		Status: filepath.Join(dir, "yawning.status"),
	}

	// The test process itself stands in for the live instance.
	if err := daemon.WritePIDFile(paths.PID); err != nil {
		t.Fatal(err)
	}

	err := guardSingleInstance(paths)
	if err == nil {
		t.Fatal("expected error with a live instance recorded")
	}
	if !strings.Contains(err.Error(), "already running") {
		t.Errorf("error = %v", err)
	}

	status, readErr := daemon.ReadStatus(paths.Status)
	if readErr != nil {
		t.Fatalf("status file not written: %v", readErr)
	}
	if status.State != "error" {
		t.Errorf("status state = %q, want error", status.State)
	}
	if !strings.Contains(status.Error, "already running") {
		t.Errorf("status error = %q", status.Error)
	}
}

func TestGuardSingleInstanceNoInstance(t *testing.T) {
	dir := t.TempDir()
	paths := daemon.Paths{
		PID:    filepath.Join(dir, "yawning.pid"),
		Status: filepath.Join(dir, "yawning.status"),
	}

	if err := guardSingleInstance(paths); err != nil {
		t.Fatalf("guardSingleInstance() error: %v", err)
	}
	if _, err := os.Stat(paths.Status); !os.IsNotExist(err) {
		t.Error("status file written with no live instance")
	}
}
