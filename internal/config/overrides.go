package config

import (
	"path/filepath"
	"strings"
)

// Overrides carries command line values; empty fields leave the loaded
// configuration untouched.
type Overrides struct {
	PostsInput   string
	DraftsInput  string
	PostsOutput  string
	DraftsOutput string
	MediaOutput  string
	Converter    string
	Timeout      string
	HistoryDB    string
	PollInterval string
	MetricsAddr  string
	LogFormat    string
}

// Apply merges o into cfg and re-validates.
func (o Overrides) Apply(cfg *Config) error {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Paths.PostsInput, o.PostsInput)
	set(&cfg.Paths.DraftsInput, o.DraftsInput)
	set(&cfg.Paths.PostsOutput, o.PostsOutput)
	set(&cfg.Paths.DraftsOutput, o.DraftsOutput)
	set(&cfg.Paths.MediaOutput, o.MediaOutput)
	set(&cfg.Converter.Binary, o.Converter)
	set(&cfg.Converter.Timeout, o.Timeout)
	set(&cfg.History.DB, o.HistoryDB)
	set(&cfg.Watch.PollInterval, o.PollInterval)
	set(&cfg.Watch.MetricsAddr, o.MetricsAddr)
	if o.LogFormat != "" {
		cfg.Logging.Format = LogFormat(o.LogFormat)
	}
	return Validate(cfg)
}

// MediaLinkPrefix is the relative link prefix the converter emits for
// extracted media: the first segment of MediaOutput ("assets/images" -> "assets/").
func (p PathsConfig) MediaLinkPrefix() string {
	media := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(p.MediaOutput)), "./")
	first, _, _ := strings.Cut(media, "/")
	return first + "/"
}
