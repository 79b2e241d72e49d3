// Package config provides configuration types and defaults for depviz.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds all configuration for depviz.
type Config struct {
	API         APIConfig         `yaml:"api" mapstructure:"api"`
	Paths       PathsConfig       `yaml:"paths" mapstructure:"paths"`
	LogRotation LogRotationConfig `yaml:"log_rotation" mapstructure:"log_rotation"`
	Graph       GraphConfig       `yaml:"graph" mapstructure:"graph"`
}

// APIConfig holds task service connection settings.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Token   string        `yaml:"token" mapstructure:"token"`     // Bearer token, empty = no auth header
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"` // Per-request timeout (0 = none)
}

// PathsConfig holds file paths for persisted UI state and logs.
type PathsConfig struct {
	State string `yaml:"state" mapstructure:"state"` // JSON file holding layout options
	Log   string `yaml:"log" mapstructure:"log"`     // TUI debug log
}

// LogRotationConfig holds settings for log file rotation.
// Used for the TUI debug log (lumberjack-based automatic rotation).
type LogRotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool `yaml:"compress" mapstructure:"compress"`
}

// GraphConfig holds settings for the graph view.
type GraphConfig struct {
	Density        string        `yaml:"density" mapstructure:"density"`                   // Node density: "compact", "standard", or "detailed"
	ShowEdgeLabels bool          `yaml:"show_edge_labels" mapstructure:"show_edge_labels"` // Print dependency types on edges
	ToastDuration  time.Duration `yaml:"toast_duration" mapstructure:"toast_duration"`     // How long transient notices stay visible
	FrameInterval  time.Duration `yaml:"frame_interval" mapstructure:"frame_interval"`     // Delay between a layout request and its computation
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080/api",
			Timeout: 30 * time.Second,
		},
		Paths: PathsConfig{
			State: "~/.config/depviz/state.json",
			Log:   "~/.config/depviz/depviz-debug.log",
		},
		LogRotation: LogRotationConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
		Graph: GraphConfig{
			Density:        "standard",
			ShowEdgeLabels: true,
			ToastDuration:  4 * time.Second,
			FrameInterval:  16 * time.Millisecond,
		},
	}
}

// ExpandHome replaces a leading "~" with the user's home directory. Paths
// without it, or when the home directory is unknown, are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
