// Package config loads the docxposts configuration from YAML, the
// environment and defaults.
package config

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docxposts/internal/errors"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "docxposts.yaml"

// CurrentVersion is the configuration schema version written by Init.
const CurrentVersion = "1"

// Config is the complete runtime configuration.
type Config struct {
	Version   string          `yaml:"version,omitempty"`
	Paths     PathsConfig     `yaml:"paths"`
	Converter ConverterConfig `yaml:"converter"`
	History   HistoryConfig   `yaml:"history,omitempty"`
	Watch     WatchConfig     `yaml:"watch,omitempty"`
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
}

// PathsConfig names the input and output locations.
type PathsConfig struct {
	PostsInput   string `yaml:"posts_input"`
	DraftsInput  string `yaml:"drafts_input"`
	PostsOutput  string `yaml:"posts_output"`
	DraftsOutput string `yaml:"drafts_output"`
	MediaOutput  string `yaml:"media_output"`
}

// ConverterConfig configures the external document converter.
type ConverterConfig struct {
	Binary  string `yaml:"binary"`
	Timeout string `yaml:"timeout"` // Go duration, e.g. "2m"
}

// TimeoutDuration returns the parsed timeout, or the default when unset or invalid.
func (c ConverterConfig) TimeoutDuration() time.Duration {
	return parseDurationOr(c.Timeout, DefaultConverterTimeout)
}

// HistoryConfig enables the conversion ledger when DB is set.
type HistoryConfig struct {
	DB string `yaml:"db,omitempty"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	Debounce     string `yaml:"debounce,omitempty"`
	PollInterval string `yaml:"poll_interval,omitempty"` // empty disables periodic rescans
	MetricsAddr  string `yaml:"metrics_addr,omitempty"`
}

// DebounceDuration returns the parsed debounce window.
func (w WatchConfig) DebounceDuration() time.Duration {
	return parseDurationOr(w.Debounce, DefaultWatchDebounce)
}

// PollIntervalDuration returns the rescan interval; zero means disabled.
func (w WatchConfig) PollIntervalDuration() time.Duration {
	return parseDurationOr(w.PollInterval, 0)
}

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level  string    `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// Load reads configPath, expands ${VAR} references and applies defaults.
// .env files in the working directory are loaded first without overriding
// the process environment. A missing configuration file is not an error.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	var cfg Config
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := decode(os.ExpandEnv(string(data)), &cfg); err != nil {
			return nil, errors.ConfigLoadFailed(configPath, err)
		}
	case stderrors.Is(err, os.ErrNotExist):
		slog.Debug("No configuration file, using defaults", slog.String("path", configPath))
	default:
		return nil, errors.ConfigLoadFailed(configPath, err)
	}

	if cfg.Version != "" && cfg.Version != CurrentVersion {
		return nil, errors.ConfigInvalid("version", fmt.Sprintf("unsupported %q (expected %s)", cfg.Version, CurrentVersion))
	}

	if err := ApplyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decode(content string, cfg *Config) error {
	dec := yaml.NewDecoder(strings.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

// Default returns a configuration populated with defaults only.
func Default() *Config {
	cfg := &Config{Version: CurrentVersion}
	_ = ApplyDefaults(cfg)
	return cfg
}

// Init writes a default configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.New(errors.CategoryValidation, errors.SeverityError,
			fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath))
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return errors.InternalError("marshal default configuration", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.FileSystemError("write configuration", err)
	}
	return nil
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
