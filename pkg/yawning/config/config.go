package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// SchedulerConfig configures the scan loop.
type SchedulerConfig struct {
	Global              bool     `mapstructure:"global"`
	Patterns            []string `mapstructure:"patterns"`
	TrackForeground     bool     `mapstructure:"track_foreground"`
	Balance             bool     `mapstructure:"balance"`
	PerProcessThreshold float64  `mapstructure:"per_process_threshold"`
	TotalLoadThreshold  float64  `mapstructure:"total_load_threshold"`
}

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSize    string `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
	Daily      bool   `mapstructure:"daily"`
}

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level      string            `mapstructure:"level"`
	Path       string            `mapstructure:"path"`
	Rotation   RotationConfig    `mapstructure:"rotation"`
	Components map[string]string `mapstructure:"components"`
}

// DaemonConfig configures the yawningd worker.
type DaemonConfig struct {
	BinaryPath string `mapstructure:"binary_path"` // Path to yawningd (auto-discovered if empty)
	PIDPath    string `mapstructure:"pid_path"`
	StatusPath string `mapstructure:"status_path"`
}

// Config represents the application configuration.
type Config struct {
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Daemon    DaemonConfig    `mapstructure:"daemon"`
}

// SetDefaults registers all configuration defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("scheduler.global", true)
	v.SetDefault("scheduler.patterns", []string{})
	v.SetDefault("scheduler.track_foreground", DefaultTrackForeground)
	v.SetDefault("scheduler.balance", DefaultBalance)
	v.SetDefault("scheduler.per_process_threshold", DefaultPerProcessThreshold)
	v.SetDefault("scheduler.total_load_threshold", DefaultTotalLoadThreshold)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.path", "") // empty means DefaultLogPath
	v.SetDefault("logging.rotation.max_size", "10MB")
	v.SetDefault("logging.rotation.max_age", 30)
	v.SetDefault("logging.rotation.max_backups", 5)
	v.SetDefault("logging.rotation.daily", true)
	// No per-component overrides by default: an override pins a
	// component's level and exempts it from runtime level changes.
	v.SetDefault("logging.components", map[string]string{})

	v.SetDefault("daemon.pid_path", "")    // empty means default XDG path
	v.SetDefault("daemon.status_path", "") // empty means default XDG path
}

// Load loads configuration from file and environment variables.
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/yawning/config.yaml
//   - $HOME/.config/yawning/config.yaml
//
// Environment variables are prefixed with YAWNING_
// (e.g., YAWNING_SCHEDULER_BALANCE).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		v.AddConfigPath(filepath.Join(xdgConfigHome, "yawning"))
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	v.AddConfigPath(filepath.Join(homeDir, ".config", "yawning"))

	v.SetEnvPrefix("YAWNING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "yawning"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "yawning"), nil
}

// DataDir returns $XDG_DATA_HOME/yawning/ for the PID and status files.
func DataDir() string {
	return filepath.Join(xdg.DataHome, "yawning")
}

// StateDir returns $XDG_STATE_HOME/yawning/ for log files.
func StateDir() string {
	return filepath.Join(xdg.StateHome, "yawning")
}

// DefaultPIDPath returns the default PID file path.
func DefaultPIDPath() string {
	return filepath.Join(DataDir(), "yawning.pid")
}

// DefaultStatusPath returns the default status file path.
func DefaultStatusPath() string {
	return filepath.Join(DataDir(), "yawning.status")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(StateDir(), "yawning.log")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	if err := os.MkdirAll(DataDir(), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	return nil
}

// EnsureStateDir creates the state directory if it doesn't exist.
func EnsureStateDir() error {
	if err := os.MkdirAll(StateDir(), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	return nil
}
