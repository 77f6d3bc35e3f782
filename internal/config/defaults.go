package config

import "time"

// Defaults for the directory convention and converter.
const (
	DefaultPostsInput       = "_word"
	DefaultDraftsInput      = "_word/drafts"
	DefaultPostsOutput      = "_posts"
	DefaultDraftsOutput     = "_drafts"
	DefaultMediaOutput      = "assets/images"
	DefaultConverterBinary  = "pandoc"
	DefaultConverterTimeout = 2 * time.Minute
	DefaultWatchDebounce    = 500 * time.Millisecond
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// PathsDefaultApplier fills the directory convention.
type PathsDefaultApplier struct{}

func (PathsDefaultApplier) Domain() string { return "paths" }

func (PathsDefaultApplier) ApplyDefaults(cfg *Config) error {
	setDefault(&cfg.Paths.PostsInput, DefaultPostsInput)
	setDefault(&cfg.Paths.DraftsInput, DefaultDraftsInput)
	setDefault(&cfg.Paths.PostsOutput, DefaultPostsOutput)
	setDefault(&cfg.Paths.DraftsOutput, DefaultDraftsOutput)
	setDefault(&cfg.Paths.MediaOutput, DefaultMediaOutput)
	return nil
}

// ConverterDefaultApplier handles converter defaults.
type ConverterDefaultApplier struct{}

func (ConverterDefaultApplier) Domain() string { return "converter" }

func (ConverterDefaultApplier) ApplyDefaults(cfg *Config) error {
	setDefault(&cfg.Converter.Binary, DefaultConverterBinary)
	setDefault(&cfg.Converter.Timeout, DefaultConverterTimeout.String())
	return nil
}

// WatchDefaultApplier handles watch mode defaults. Polling stays disabled
// unless configured.
type WatchDefaultApplier struct{}

func (WatchDefaultApplier) Domain() string { return "watch" }

func (WatchDefaultApplier) ApplyDefaults(cfg *Config) error {
	setDefault(&cfg.Watch.Debounce, DefaultWatchDebounce.String())
	return nil
}

// LoggingDefaultApplier handles logging defaults.
type LoggingDefaultApplier struct{}

func (LoggingDefaultApplier) Domain() string { return "logging" }

func (LoggingDefaultApplier) ApplyDefaults(cfg *Config) error {
	setDefault(&cfg.Logging.Level, "info")
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
	return nil
}

// ApplyDefaults runs every domain applier over cfg.
func ApplyDefaults(cfg *Config) error {
	appliers := []DefaultApplier{
		PathsDefaultApplier{},
		ConverterDefaultApplier{},
		WatchDefaultApplier{},
		LoggingDefaultApplier{},
	}
	for _, a := range appliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
