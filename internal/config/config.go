// Package config provides configuration types and defaults for waypoint.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/waypoint/internal/log"
	"github.com/zjrosen/waypoint/internal/tracing"
)

// DefaultConfigPath is where `waypoint config init` writes when no path is given.
const DefaultConfigPath = ".waypoint/config.yaml"

// Config holds all configuration options for waypoint.
type Config struct {
	// Manifest is the YAML file listing the destinations to register.
	Manifest string         `mapstructure:"manifest"`
	Debug    bool           `mapstructure:"debug"`
	LogPath  string         `mapstructure:"log_path"`
	Journal  JournalConfig  `mapstructure:"journal"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Tracing  tracing.Config `mapstructure:"tracing"`
}

// JournalConfig bounds the navigation journal and its pending queue.
type JournalConfig struct {
	Capacity  int `mapstructure:"capacity"`   // 0 = unbounded
	QueueSize int `mapstructure:"queue_size"` // pending navigations per journal
}

// CacheConfig controls the resolved-route cache used for URI navigation.
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	tr := tracing.DefaultConfig()
	tr.FilePath = DefaultTracesFilePath()
	return Config{
		Manifest: "waypoint.yaml",
		LogPath:  "debug.log",
		Journal: JournalConfig{
			Capacity:  0,
			QueueSize: 100,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             10 * time.Minute,
			CleanupInterval: 30 * time.Minute,
		},
		Tracing: tr,
	}
}

// DefaultTracesFilePath returns ~/.config/waypoint/traces/traces.jsonl, or "" when
// the home directory is unknown.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "waypoint", "traces", "traces.jsonl")
}

// Validate checks every section of c.
func (c Config) Validate() error {
	if err := ValidateJournal(c.Journal); err != nil {
		return err
	}
	if err := ValidateCache(c.Cache); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidateJournal rejects negative bounds.
func ValidateJournal(j JournalConfig) error {
	if j.Capacity < 0 {
		return fmt.Errorf("journal.capacity must not be negative, got %d", j.Capacity)
	}
	if j.QueueSize < 0 {
		return fmt.Errorf("journal.queue_size must not be negative, got %d", j.QueueSize)
	}
	return nil
}

// ValidateCache requires positive durations when the cache is enabled.
func ValidateCache(c CacheConfig) error {
	if !c.Enabled {
		return nil
	}
	if c.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive when the cache is enabled, got %s", c.TTL)
	}
	if c.CleanupInterval <= 0 {
		return fmt.Errorf("cache.cleanup_interval must be positive when the cache is enabled, got %s", c.CleanupInterval)
	}
	return nil
}

// ValidateTracing checks the exporter choice and its required settings.
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}

	switch t.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
	}

	if t.Enabled {
		if t.Exporter == "file" && t.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if t.Exporter == "otlp" && t.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// DefaultConfigTemplate returns the commented YAML written by `waypoint config init`.
func DefaultConfigTemplate() string {
	return `# Waypoint Configuration

# Destination manifest registered at startup
manifest: waypoint.yaml

# Debug logging (also enabled by --debug or WAYPOINT_DEBUG=1)
debug: false
log_path: debug.log

# Navigation journal
journal:
  capacity: 0       # Maximum retained entries, 0 = unbounded
  queue_size: 100   # Pending navigations before new ones are rejected

# Cache of resolved URIs
cache:
  enabled: true
  ttl: 10m
  cleanup_interval: 30m

# OpenTelemetry tracing of navigations
tracing:
  enabled: false
  exporter: file            # none, file, stdout or otlp
  # file_path: ~/.config/waypoint/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0
  service_name: waypoint
`
}

// WriteDefaultConfig writes DefaultConfigTemplate to configPath, creating parent directories.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
