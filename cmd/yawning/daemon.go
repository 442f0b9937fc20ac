package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/studentiz/Yawning/pkg/daemon"
	"github.com/studentiz/Yawning/pkg/yawning/output"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the background scheduler",
	Long: `Start yawningd, the background worker that scans and classifies
processes. Starting while an instance is already running reports the
existing instance and changes nothing.`,
	RunE: runStart,
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the background scheduler",
	Long:  `Signal the running yawningd instance to stop and clear its record.`,
	RunE:  runStop,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show scheduler status",
	Long:  `Show whether yawningd is running and with which settings.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)

	startCmd.Flags().StringSliceP("pattern", "p", nil, "watch processes matching PATTERN (repeatable, implies by-name mode)")
	startCmd.Flags().BoolP("global", "g", true, "watch every non-system process")
	startCmd.Flags().BoolP("foreground", "f", true, "pin the frontmost process to efficiency cores")
	startCmd.Flags().BoolP("balance", "B", true, "promote heavy processes to performance cores under load")
	startCmd.Flags().Float64P("cpu-threshold", "b", 0, "per-process CPU percent above which a process is heavy (default 80)")
	startCmd.Flags().Float64P("load-threshold", "c", 0, "total CPU percent above which balancing kicks in (default 150)")
}

// workerArgs forwards the flags the user set on start to the yawningd
// command line, so the worker resolves the same configuration.
func workerArgs(cmd *cobra.Command) []string {
	var args []string

	if patterns, _ := cmd.Flags().GetStringSlice("pattern"); len(patterns) > 0 {
		for _, p := range patterns {
			args = append(args, "-p", p)
		}
	}
	for _, name := range []string{"global", "foreground", "balance"} {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetBool(name)
			args = append(args, fmt.Sprintf("--%s=%t", name, v))
		}
	}
	for _, name := range []string{"cpu-threshold", "load-threshold"} {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetFloat64(name)
			args = append(args, fmt.Sprintf("--%s=%g", name, v))
		}
	}
	if cfgFile != "" {
		args = append(args, "--config", cfgFile)
	}

	return args
}

func daemonPaths() daemon.Paths {
	return daemon.Paths{
		PID:    viper.GetString("daemon.pid_path"),
		Status: viper.GetString("daemon.status_path"),
		Binary: viper.GetString("daemon.binary_path"),
	}.WithDefaults()
}

func runStart(cmd *cobra.Command, _ []string) error {
	paths := daemonPaths()
	printVerbose("starting yawningd (pid file: %s)", paths.PID)

	err := daemon.Start(paths, workerArgs(cmd))
	if errors.Is(err, daemon.ErrAlreadyRunning) {
		// Not an error: report the existing instance.
		printInfo("Already running (pid %d)", daemon.RunningPID(paths.PID))
		return nil
	}
	if err != nil {
		return err
	}

	printInfo("Scheduler started")
	return nil
}

func runStop(_ *cobra.Command, _ []string) error {
	paths := daemonPaths()
	printVerbose("stopping yawningd (pid file: %s)", paths.PID)

	err := daemon.Stop(paths)
	if errors.Is(err, daemon.ErrNotRunning) {
		return errors.New("scheduler is not running")
	}
	if err != nil {
		return err
	}

	printInfo("Scheduler stopped")
	return nil
}

func runStatus(_ *cobra.Command, _ []string) error {
	paths := daemonPaths()

	running := daemon.IsRunning(paths.PID)
	var status *daemon.StatusFile
	if running {
		// Missing or corrupt status file still renders as running.
		status, _ = daemon.ReadStatus(paths.Status)
	}

	fmt.Println(output.RenderStatus(running, status))
	return nil
}
