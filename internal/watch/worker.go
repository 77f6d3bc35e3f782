package watch

import (
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// worker serializes passes. A request while a pass runs sets pending, which
// yields exactly one follow-up pass however many requests arrived.
type worker struct {
	run func()

	mu      sync.Mutex
	running bool
	pending bool
	wg      sync.WaitGroup
}

func newWorker(run func()) *worker {
	return &worker{run: run}
}

func (w *worker) request() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		w.pending = true
		return
	}
	w.running = true
	w.wg.Add(1)
	go w.loop()
}

func (w *worker) loop() {
	defer w.wg.Done()
	for {
		w.run()

		w.mu.Lock()
		if !w.pending {
			w.running = false
			w.mu.Unlock()
			return
		}
		w.pending = false
		w.mu.Unlock()
	}
}

// wait blocks until the current pass (and its follow-up) finished.
func (w *worker) wait() {
	w.wg.Wait()
}

// debouncer calls fire once events stop arriving for delay.
type debouncer struct {
	delay time.Duration
	fire  func()

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

func newDebouncer(delay time.Duration, fire func()) *debouncer {
	return &debouncer{delay: delay, fire: fire}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			d.fire()
		}
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}

// shouldIgnoreEvent returns true for filesystem events that should not trigger passes.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	// Hidden files, Word lock files
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "~$") {
		return true
	}

	// Editor temp/swap files
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasSuffix(base, ".tmp") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	return base == "Thumbs.db"
}
