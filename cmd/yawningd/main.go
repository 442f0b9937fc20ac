// Package main provides the yawningd worker: the detached process that
// runs the scan loop. It is normally launched by "yawning start" rather
// than invoked directly.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/studentiz/Yawning/pkg/daemon"
	"github.com/studentiz/Yawning/pkg/sched"
	"github.com/studentiz/Yawning/pkg/yawning/config"
	"github.com/studentiz/Yawning/pkg/yawning/logging"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "yawningd",
		Short: "Background worker for the yawning scheduler",
		Long: `yawningd runs the scan loop directly in the foreground of this
process. It is normally started detached via "yawning start".`,
		RunE:         run,
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/yawning/config.yaml)")
	schedulerFlags(rootCmd)
}

// schedulerFlags registers the scheduler flags, matching the set the
// yawning CLI forwards on start.
func schedulerFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("pattern", "p", nil, "watch processes matching PATTERN (repeatable, implies by-name mode)")
	cmd.Flags().BoolP("global", "g", true, "watch every non-system process")
	cmd.Flags().BoolP("foreground", "f", true, "pin the frontmost process to efficiency cores")
	cmd.Flags().BoolP("balance", "B", true, "promote heavy processes to performance cores under load")
	cmd.Flags().Float64P("cpu-threshold", "b", 0, "per-process CPU percent above which a process is heavy (default 80)")
	cmd.Flags().Float64P("load-threshold", "c", 0, "total CPU percent above which balancing kicks in (default 150)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig merges the config file, environment, and command-line
// flags into the immutable scheduler configuration.
func resolveConfig(cmd *cobra.Command, cfg *config.Config) sched.Config {
	sc := sched.Config{
		Mode:                sched.SelectGlobal,
		Patterns:            cfg.Scheduler.Patterns,
		TrackForeground:     cfg.Scheduler.TrackForeground,
		Balance:             cfg.Scheduler.Balance,
		PerProcessThreshold: cfg.Scheduler.PerProcessThreshold,
		TotalLoadThreshold:  cfg.Scheduler.TotalLoadThreshold,
	}

	if patterns, _ := cmd.Flags().GetStringSlice("pattern"); len(patterns) > 0 {
		sc.Patterns = patterns
	} else if cmd.Flags().Changed("global") {
		if global, _ := cmd.Flags().GetBool("global"); global {
			// An explicit -g overrides a pattern list from the config
			// file. Command-line patterns still win over -g.
			sc.Patterns = nil
		}
	}
	if cmd.Flags().Changed("foreground") {
		sc.TrackForeground, _ = cmd.Flags().GetBool("foreground")
	}
	if cmd.Flags().Changed("balance") {
		sc.Balance, _ = cmd.Flags().GetBool("balance")
	}
	if cmd.Flags().Changed("cpu-threshold") {
		sc.PerProcessThreshold, _ = cmd.Flags().GetFloat64("cpu-threshold")
	}
	if cmd.Flags().Changed("load-threshold") {
		sc.TotalLoadThreshold, _ = cmd.Flags().GetFloat64("load-threshold")
	}

	// Patterns force by-name mode no matter what -g said.
	return sc.Normalize()
}

// guardSingleInstance refuses to start when a live instance is already
// recorded in the PID file. The cause is written to the status file so a
// concurrently polling "yawning start" reports it immediately instead of
// waiting out the readiness timeout.
func guardSingleInstance(paths daemon.Paths) error {
	pid := daemon.RunningPID(paths.PID)
	if pid == 0 {
		return nil
	}
	err := fmt.Errorf("yawningd already running (pid %d)", pid)
	_ = daemon.WriteStatusError(paths.Status, err)
	return err
}

// loggingConfig converts the file configuration into the logging setup.
func loggingConfig(cfg *config.Config) logging.Config {
	lc := logging.Config{
		Level:      cfg.Logging.Level,
		Path:       cfg.Logging.Path,
		Components: cfg.Logging.Components,
		Rotation:   logging.DefaultRotationConfig(),
	}
	if size, err := config.ParseSize(cfg.Logging.Rotation.MaxSize); err == nil {
		lc.Rotation.MaxSize = size
	}
	lc.Rotation.MaxAge = cfg.Logging.Rotation.MaxAge
	lc.Rotation.MaxBackups = cfg.Logging.Rotation.MaxBackups
	lc.Rotation.Daily = cfg.Logging.Rotation.Daily
	return lc
}

func run(cmd *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	paths := daemon.Paths{
		PID:    cfg.Daemon.PIDPath,
		Status: cfg.Daemon.StatusPath,
	}.WithDefaults()

	if err := guardSingleInstance(paths); err != nil {
		return err
	}

	schedCfg := resolveConfig(cmd, cfg)
	if err := schedCfg.Validate(); err != nil {
		_ = daemon.WriteStatusError(paths.Status, err)
		return err
	}

	if err := config.EnsureDataDir(); err != nil {
		return err
	}
	if err := logging.Init(loggingConfig(cfg)); err != nil {
		_ = daemon.WriteStatusError(paths.Status, err)
		return err
	}
	defer func() { _ = logging.Close() }()

	log := logging.Get("daemon")
	runID := daemon.NewRunID()
	log = log.With("run_id", runID)

	topo := sched.DetectTopology()
	if topo.Heterogeneous() {
		log.Info("core topology detected",
			"performance", topo.PerformanceCores,
			"efficiency", topo.EfficiencyCores)
	} else {
		log.Info("homogeneous or unknown core topology", "logical", topo.LogicalCores)
	}

	if err := daemon.WritePIDFile(paths.PID); err != nil {
		_ = daemon.WriteStatusError(paths.Status, err)
		return fmt.Errorf("write PID file: %w", err)
	}
	defer func() {
		if err := daemon.RemovePIDFile(paths.PID); err != nil {
			log.Warn("failed to remove PID file", "error", err)
		}
		_ = daemon.RemoveStatus(paths.Status)
	}()

	if err := daemon.WriteStatusReady(paths.Status, runID, schedCfg.Describe()); err != nil {
		log.Warn("failed to write status file", "error", err)
	}

	// Live log-level reload on config file edits. Scheduler settings
	// stay fixed for the life of the instance.
	viper.OnConfigChange(func(e fsnotify.Event) {
		if reloaded, err := config.Load(); err == nil {
			if err := logging.SetLevel(reloaded.Logging.Level); err == nil {
				log.Info("log level reloaded", "file", e.Name, "level", reloaded.Logging.Level)
			}
		}
	})
	viper.WatchConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sampler := sched.NewProcSampler()
	loop := sched.NewLoop(
		schedCfg,
		sched.NewGopsutilSource(schedCfg),
		sched.NewSystemForeground(),
		sampler,
		sched.NewSystemHinter(),
	)

	log.Info("yawningd started", "pid", os.Getpid(), "config", schedCfg.Describe())

	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	log.Info("yawningd stopped")
	return nil
}
