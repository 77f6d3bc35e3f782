package metrics

import "time"

// Trigger sources reported by watch mode.
const (
	TriggerInitial = "initial"
	TriggerFSEvent = "fsnotify"
	TriggerPoll    = "poll"
)

// Recorder defines observability hooks for conversion runs.
type Recorder interface {
	// IncFile counts one processed source file by kind (post|draft) and
	// status (converted|skipped|failed).
	IncFile(kind, status string)
	ObserveConvertDuration(kind string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncWatchTrigger(source string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncFile(string, string)                        {}
func (NoopRecorder) ObserveConvertDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)              {}
func (NoopRecorder) IncWatchTrigger(string)                        {}
