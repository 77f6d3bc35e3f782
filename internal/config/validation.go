package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/docxposts/internal/errors"
)

// Validate checks a defaulted configuration.
func Validate(cfg *Config) error {
	if err := validatePaths(cfg.Paths); err != nil {
		return err
	}
	if err := validateDuration("converter.timeout", cfg.Converter.Timeout); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Converter.Binary) == "" {
		return errors.ConfigInvalid("converter.binary", "must not be empty")
	}
	if err := validateDuration("watch.debounce", cfg.Watch.Debounce); err != nil {
		return err
	}
	if cfg.Watch.PollInterval != "" {
		if err := validateDuration("watch.poll_interval", cfg.Watch.PollInterval); err != nil {
			return err
		}
	}
	switch cfg.Logging.Format {
	case LogFormatText, LogFormatJSON:
	default:
		return errors.ConfigInvalid("logging.format", fmt.Sprintf("must be text or json, got %q", cfg.Logging.Format))
	}
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.ConfigInvalid("logging.level", fmt.Sprintf("unknown level %q", cfg.Logging.Level))
	}
	return nil
}

func validatePaths(p PathsConfig) error {
	fields := []struct {
		name  string
		value string
	}{
		{"paths.posts_input", p.PostsInput},
		{"paths.drafts_input", p.DraftsInput},
		{"paths.posts_output", p.PostsOutput},
		{"paths.drafts_output", p.DraftsOutput},
		{"paths.media_output", p.MediaOutput},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return errors.ConfigInvalid(f.name, "must not be empty")
		}
	}

	outputs := map[string]string{}
	for _, f := range fields[2:] {
		clean := filepath.Clean(f.value)
		if other, ok := outputs[clean]; ok {
			return errors.ConfigInvalid(f.name, "must differ from "+other)
		}
		outputs[clean] = f.name
	}

	if filepath.IsAbs(p.MediaOutput) {
		return errors.ConfigInvalid("paths.media_output", "must be relative to the site root")
	}
	// Links are rewritten against the first segment, which must be a real
	// directory below the site root.
	media := filepath.ToSlash(filepath.Clean(p.MediaOutput))
	if media == "." || media == ".." || strings.HasPrefix(media, "../") {
		return errors.ConfigInvalid("paths.media_output", "must be a directory inside the site root")
	}
	return nil
}

func validateDuration(field, value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return errors.ConfigInvalid(field, fmt.Sprintf("invalid duration %q", value))
	}
	if d <= 0 {
		return errors.ConfigInvalid(field, "must be positive")
	}
	return nil
}
