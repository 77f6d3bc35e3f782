// Package watch reruns conversion passes when documents change.
package watch

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/docxposts/internal/errors"
	"git.home.luguber.info/inful/docxposts/internal/filename"
	"git.home.luguber.info/inful/docxposts/internal/logfields"
	"git.home.luguber.info/inful/docxposts/internal/metrics"
	"git.home.luguber.info/inful/docxposts/internal/post"
)

// DefaultDebounce is used when Options.Debounce is zero.
const DefaultDebounce = 500 * time.Millisecond

// Runner performs one conversion pass.
type Runner interface {
	Run(ctx context.Context) (post.Result, error)
}

// Options configures watch mode.
type Options struct {
	Dirs         []string      // input directories; missing ones are picked up when created inside a watched one
	Debounce     time.Duration // quiet period after the last event before a pass starts
	PollInterval time.Duration // periodic rescan; zero disables
	Recorder     metrics.Recorder
}

// Run performs an initial pass, then one pass per burst of document changes
// (and per poll tick) until ctx is canceled. Passes never overlap: a change
// during a pass schedules exactly one follow-up pass.
func Run(ctx context.Context, runner Runner, opts Options) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}

	opts.Recorder.IncWatchTrigger(metrics.TriggerInitial)
	if _, err := runner.Run(ctx); err != nil {
		if stderrors.Is(err, errors.ErrNoInputLocations) {
			return err
		}
		slog.Warn("Initial conversion pass failed", logfields.Error(err))
	}

	watcher, err := newWatcher(opts.Dirs)
	if err != nil {
		return errors.FileSystemError("watch input directories", err)
	}
	defer func() { _ = watcher.Close() }()

	w := newWorker(func() {
		if _, err := runner.Run(ctx); err != nil && ctx.Err() == nil {
			slog.Warn("Conversion pass failed", logfields.Error(err))
		}
	})
	defer w.wait()

	deb := newDebouncer(opts.Debounce, func() {
		opts.Recorder.IncWatchTrigger(metrics.TriggerFSEvent)
		w.request()
	})
	defer deb.stop()

	if opts.PollInterval > 0 {
		sched, err := startPolling(opts.PollInterval, func() {
			if ctx.Err() != nil {
				return
			}
			opts.Recorder.IncWatchTrigger(metrics.TriggerPoll)
			w.request()
		})
		if err != nil {
			return err
		}
		defer func() { _ = sched.Shutdown() }()
	}

	slog.Info("Watching for document changes",
		slog.Any("dirs", opts.Dirs),
		slog.Duration("debounce", opts.Debounce),
		slog.Duration("poll_interval", opts.PollInterval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("Watch stopped")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if handleEvent(watcher, opts.Dirs, ev) {
				deb.trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func newWatcher(dirs []string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	added := 0
	for _, dir := range dirs {
		if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
			slog.Debug("Input directory missing, not watched", logfields.Path(dir))
			continue
		}
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		added++
	}
	if added == 0 {
		_ = watcher.Close()
		return nil, fmt.Errorf("none of %v exists", dirs)
	}
	return watcher, nil
}

// handleEvent reports whether ev should trigger a pass. A configured input
// directory created inside a watched one is added to the watcher.
func handleEvent(watcher *fsnotify.Watcher, dirs []string, ev fsnotify.Event) bool {
	if shouldIgnoreEvent(ev.Name) {
		return false
	}
	if ev.Op&fsnotify.Create == fsnotify.Create && isConfiguredDir(dirs, ev.Name) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			if err := watcher.Add(ev.Name); err != nil {
				slog.Warn("Watch add failed", logfields.Path(ev.Name), logfields.Error(err))
			}
			return true
		}
	}
	if !filename.IsCandidate(filepath.Base(ev.Name)) {
		return false
	}
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	slog.Debug("Document change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	return true
}

func isConfiguredDir(dirs []string, path string) bool {
	clean := filepath.Clean(path)
	return slices.ContainsFunc(dirs, func(d string) bool { return filepath.Clean(d) == clean })
}

func startPolling(interval time.Duration, fn func()) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(fn),
		gocron.WithName("docxposts-rescan"),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create rescan job: %w", err)
	}
	s.Start()
	return s, nil
}
