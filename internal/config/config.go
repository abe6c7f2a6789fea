// Package config loads and validates progress-demo configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/JakeFAU/progress-monitor/pkg/progress"
)

// Config captures every configuration knob loaded via Viper.
type Config struct {
	Progress ProgressConfig            `mapstructure:"progress"`
	Monitors map[string]map[string]any `mapstructure:"monitors"`
	Logging  LoggingConfig             `mapstructure:"logging"`
	Events   EventsConfig              `mapstructure:"events"`
}

// ProgressConfig selects the default backend and where terminal backends draw.
type ProgressConfig struct {
	// Default is the registry key Default resolves to; empty picks one from
	// the terminal type.
	Default string `mapstructure:"default"`
	// Output is "stderr" or "stdout".
	Output string `mapstructure:"output"`
}

// LoggingConfig toggles zap development features and the level.
type LoggingConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

// EventsConfig controls the event hub behind the events backend.
type EventsConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	BufferSize     int           `mapstructure:"buffer_size"`
	MaxBatchEvents int           `mapstructure:"max_batch_events"`
	MaxBatchWait   time.Duration `mapstructure:"max_batch_wait"`
	Metrics        bool          `mapstructure:"metrics"`
	Log            bool          `mapstructure:"log"`
}

// Output destinations.
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
)

// Load builds a Config from defaults, an optional file, and PROGRESS_*
// environment variables.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PROGRESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("progress.default", "")
	v.SetDefault("progress.output", OutputStderr)
	v.SetDefault("logging.development", true)
	v.SetDefault("logging.level", "info")
	v.SetDefault("events.enabled", false)
	v.SetDefault("events.buffer_size", 1024)
	v.SetDefault("events.max_batch_events", 256)
	v.SetDefault("events.max_batch_wait", "250ms")
	v.SetDefault("events.metrics", true)
	v.SetDefault("events.log", false)
}

// Validate enforces known values and sane limits.
func (c Config) Validate() error {
	switch c.Progress.Output {
	case OutputStderr, OutputStdout:
	default:
		return fmt.Errorf("progress.output must be %q or %q, got %q", OutputStderr, OutputStdout, c.Progress.Output)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.Events.BufferSize < 0 {
		return fmt.Errorf("events.buffer_size must be >= 0")
	}
	if c.Events.MaxBatchEvents < 0 {
		return fmt.Errorf("events.max_batch_events must be >= 0")
	}
	if c.Events.MaxBatchWait < 0 {
		return fmt.Errorf("events.max_batch_wait must be >= 0")
	}
	return nil
}

// MonitorOverrides returns the per-key option overrides from the monitors
// section, ready to layer onto registered configurations.
func (c Config) MonitorOverrides() map[string]progress.Options {
	out := make(map[string]progress.Options, len(c.Monitors))
	for key, opts := range c.Monitors {
		out[key] = progress.Options(opts).Merge()
	}
	return out
}
