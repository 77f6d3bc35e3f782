package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docxposts/internal/config"
	"git.home.luguber.info/inful/docxposts/internal/convert"
	"git.home.luguber.info/inful/docxposts/internal/converter"
	"git.home.luguber.info/inful/docxposts/internal/errors"
	"git.home.luguber.info/inful/docxposts/internal/history"
)

// Global carries state shared by all commands.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer // console status lines
}

// NewGlobal returns a Global writing console output to stdout.
func NewGlobal(stdout io.Writer) *Global {
	return &Global{Logger: slog.Default(), Stdout: stdout}
}

func (g *Global) out() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path" default:"docxposts.yaml"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log format (text or json); overrides logging.format"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Convert ConvertCmd `cmd:"" default:"withargs" help:"Convert new documents into posts and drafts (default)"`
	Watch   WatchCmd   `cmd:"" help:"Convert continuously as documents change"`
	Init    InitCmd    `cmd:"" help:"Write a default configuration file"`
	History HistoryCmd `cmd:"" help:"Show recorded conversion outcomes"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	setupLogging(c.Verbose, "info", c.LogFormat)
	return nil
}

// setupLogging installs the default slog logger on stderr.
func setupLogging(verbose bool, level, format string) {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	if verbose {
		lvl = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if format == string(config.LogFormatJSON) {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// PathFlags are the configuration overrides shared by convert and watch.
type PathFlags struct {
	PostsInput   string `name:"posts-input" placeholder:"DIR" help:"Directory of dated post documents"`
	DraftsInput  string `name:"drafts-input" placeholder:"DIR" help:"Directory of draft documents"`
	PostsOutput  string `name:"posts-output" placeholder:"DIR" help:"Directory receiving post markdown"`
	DraftsOutput string `name:"drafts-output" placeholder:"DIR" help:"Directory receiving draft markdown"`
	MediaOutput  string `name:"media-output" placeholder:"DIR" help:"Directory receiving extracted media (relative to the site root)"`
	Pandoc       string `name:"pandoc" placeholder:"PATH" help:"Pandoc binary"`
	Timeout      string `name:"timeout" placeholder:"DURATION" help:"Per-document converter timeout, e.g. 2m"`
	HistoryDB    string `name:"history-db" placeholder:"PATH" help:"SQLite ledger recording every outcome"`
}

func (f PathFlags) overrides() config.Overrides {
	return config.Overrides{
		PostsInput:   f.PostsInput,
		DraftsInput:  f.DraftsInput,
		PostsOutput:  f.PostsOutput,
		DraftsOutput: f.DraftsOutput,
		MediaOutput:  f.MediaOutput,
		Converter:    f.Pandoc,
		Timeout:      f.Timeout,
		HistoryDB:    f.HistoryDB,
	}
}

// loadConfig loads root.Config, applies flag overrides and reconfigures
// logging from the result.
func loadConfig(root *CLI, o config.Overrides) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	o.LogFormat = root.LogFormat
	if err := o.Apply(cfg); err != nil {
		return nil, err
	}
	setupLogging(root.Verbose, cfg.Logging.Level, string(cfg.Logging.Format))
	return cfg, nil
}

// openHistory opens the configured ledger; nil when disabled.
func openHistory(cfg *config.Config) (*history.SQLiteStore, error) {
	if cfg.History.DB == "" {
		return nil, nil
	}
	store, err := history.NewSQLiteStore(cfg.History.DB)
	if err != nil {
		return nil, errors.FileSystemError("open history database", err)
	}
	return store, nil
}

// newService wires the orchestrator for cfg. The returned cleanup closes
// the history ledger.
func newService(g *Global, cfg *config.Config, opts ...convert.Option) (*convert.Service, func(), error) {
	store, err := openHistory(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {}
	base := []convert.Option{convert.WithOutput(g.out())}
	if store != nil {
		base = append(base, convert.WithHistory(store))
		cleanup = func() {
			if err := store.Close(); err != nil {
				slog.Warn("Failed to close history database", "error", err)
			}
		}
	}
	svc := convert.New(cfg, converter.NewPandoc(cfg.Converter.Binary), append(base, opts...)...)
	return svc, cleanup, nil
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
