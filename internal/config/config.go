// Package config handles configuration loading from YAML files and
// environment variables. Configuration precedence: environment variables >
// config file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a wrapper around time.Duration that supports YAML unmarshaling
// from human-readable strings like "15s", "30s", "1m".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := time.ParseDuration(value.Value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value.Value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("unsupported duration format: %v", value.Kind)
	}
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Config holds all settings of the task-registration layer.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Autostart AutostartConfig `yaml:"autostart"`
	Tasks     TasksConfig     `yaml:"tasks"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// AppConfig identifies the application whose OS entries this layer owns.
type AppConfig struct {
	// Name keys every persisted entry: the registry value, the desktop
	// entry file, the LaunchAgent label and the crontab sentinel.
	Name string `yaml:"name"`
	// Command is the default login launch command line.
	Command string `yaml:"command"`
}

// AutostartConfig holds settings for the login entry backends.
type AutostartConfig struct {
	// IconCandidates are probed in order for the Linux desktop entry.
	IconCandidates []string `yaml:"icon_candidates"`
	// LaunchArgs is the fixed program-argument vector for the macOS
	// LaunchAgent.
	LaunchArgs []string `yaml:"launch_args"`
}

// TasksConfig holds settings for the scheduler backends.
type TasksConfig struct {
	// ExecTimeout bounds every external tool invocation.
	ExecTimeout Duration `yaml:"exec_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	File      string `yaml:"file"`
	MaxSizeMB int    `yaml:"max_size_mb"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "Scrat",
			Command: "/usr/local/bin/scrat --tray",
		},
		Autostart: AutostartConfig{
			IconCandidates: []string{
				"/usr/share/icons/hicolor/256x256/apps/scrat.png",
				"/usr/share/pixmaps/scrat.png",
			},
			LaunchArgs: []string{"/usr/local/bin/scrat", "--tray"},
		},
		Tasks: TasksConfig{
			ExecTimeout: Duration{30 * time.Second},
		},
		Logging: LoggingConfig{
			Level:     "info",
			File:      "",
			MaxSizeMB: 10,
		},
	}
}

// LoadFromBytes parses YAML configuration from a byte slice and merges with
// defaults. Environment variables take highest precedence.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config data: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// Load reads configuration from a YAML file and merges with defaults. If
// path is empty or the file does not exist, only defaults and environment
// variables are used.
func Load(path string) (*Config, error) {
	if path == "" {
		return LoadFromBytes(nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		return LoadFromBytes(nil)
	}

	return LoadFromBytes(data)
}

// Locate searches standard config file paths and returns the first one
// found. Returns empty string if no config file exists.
func Locate() string {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// WriteConfig serializes the config to a YAML file at the given path.
// Creates parent directories if needed.
func WriteConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0640)
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables have the highest precedence.
func applyEnvOverrides(cfg *Config) {
	if name := os.Getenv("SCRAT_APP_NAME"); name != "" {
		cfg.App.Name = name
	}
	if command := os.Getenv("SCRAT_APP_COMMAND"); command != "" {
		cfg.App.Command = command
	}
	if level := os.Getenv("SCRAT_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}

// Validate checks that the configuration can key OS entries safely.
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if strings.ContainsAny(c.App.Name, "\n\r") {
		return fmt.Errorf("app name must be a single line (got %q)", c.App.Name)
	}
	if c.Tasks.ExecTimeout.Duration <= 0 {
		return fmt.Errorf("exec timeout must be positive (got %v)", c.Tasks.ExecTimeout.Duration)
	}
	return nil
}
