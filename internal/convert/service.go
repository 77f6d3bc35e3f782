// Package convert drives a conversion pass: scan the input locations, convert
// each new document and write its post without ever overwriting one.
package convert

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"git.home.luguber.info/inful/docxposts/internal/config"
	"git.home.luguber.info/inful/docxposts/internal/converter"
	"git.home.luguber.info/inful/docxposts/internal/errors"
	"git.home.luguber.info/inful/docxposts/internal/history"
	"git.home.luguber.info/inful/docxposts/internal/logfields"
	"git.home.luguber.info/inful/docxposts/internal/metrics"
	"git.home.luguber.info/inful/docxposts/internal/post"
)

// Clock returns the current time.
type Clock func() time.Time

// Service converts the documents of both input locations.
// A Service runs one pass at a time; it is not safe for concurrent use.
type Service struct {
	cfg      *config.Config
	conv     converter.Converter
	out      io.Writer
	recorder metrics.Recorder
	history  history.Store
	runID    string
	now      Clock

	activeRun string
}

// Option configures a Service.
type Option func(*Service)

// WithOutput sets the writer receiving console status lines (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(s *Service) {
		if w != nil {
			s.out = w
		}
	}
}

// WithRecorder injects a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithHistory records every outcome in store.
func WithHistory(store history.Store) Option {
	return func(s *Service) { s.history = store }
}

// WithRunID pins the run identifier; by default every Run gets a fresh one.
func WithRunID(id string) Option {
	return func(s *Service) { s.runID = id }
}

// WithClock overrides time.Now.
func WithClock(c Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.now = c
		}
	}
}

// New returns a Service for cfg using conv as the document converter.
func New(cfg *config.Config, conv converter.Converter, opts ...Option) *Service {
	s := &Service{
		cfg:      cfg,
		conv:     conv,
		out:      os.Stdout,
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run converts posts then drafts and prints the summary line. It fails with
// errors.ErrNoInputLocations when neither input directory exists; per-file
// problems never fail the run.
func (s *Service) Run(ctx context.Context) (post.Result, error) {
	start := s.now()
	s.activeRun = s.runID
	if s.activeRun == "" {
		s.activeRun = history.NewRunID()
	}
	defer func() { s.activeRun = "" }()

	paths := s.cfg.Paths
	postsOK, draftsOK := isDir(paths.PostsInput), isDir(paths.DraftsInput)
	if !postsOK && !draftsOK {
		return post.Result{}, errors.NoInputLocations(paths.PostsInput, paths.DraftsInput)
	}

	if err := os.MkdirAll(paths.MediaOutput, 0o755); err != nil {
		return post.Result{}, errors.FileSystemError("create media directory", err)
	}

	var total post.Result
	if postsOK {
		r, err := s.ConvertPosts(ctx)
		total.Add(r)
		if err != nil {
			return total, err
		}
	} else {
		slog.Info("Posts input missing, skipping", logfields.Path(paths.PostsInput))
	}
	if draftsOK {
		r, err := s.ConvertDrafts(ctx)
		total.Add(r)
		if err != nil {
			return total, err
		}
	} else {
		slog.Info("Drafts input missing, skipping", logfields.Path(paths.DraftsInput))
	}

	s.printf("\nDone. Converted: %d, Skipped: %d\n", total.Converted, total.Skipped)

	elapsed := s.now().Sub(start)
	s.recorder.ObserveRunDuration(elapsed)
	slog.Info("Conversion run complete",
		logfields.RunID(s.activeRun),
		logfields.Converted(total.Converted),
		logfields.Skipped(total.Skipped),
		slog.Int("failed", len(total.Failed())),
		logfields.Duration(elapsed))
	return total, nil
}

// ConvertPosts converts the dated documents of the posts input location.
func (s *Service) ConvertPosts(ctx context.Context) (post.Result, error) {
	return s.convertDir(ctx, s.postsSource())
}

// ConvertDrafts converts the documents of the drafts input location.
func (s *Service) ConvertDrafts(ctx context.Context) (post.Result, error) {
	return s.convertDir(ctx, s.draftsSource())
}

func (s *Service) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
