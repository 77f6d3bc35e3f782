package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyKind       = "kind"
	KeyFile       = "file"
	KeyPath       = "path"
	KeyOutput     = "output"
	KeyReason     = "reason"
	KeyStatus     = "status"
	KeyDurationMS = "duration_ms"
	KeyConverted  = "converted"
	KeySkipped    = "skipped"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Kind(k string) slog.Attr         { return slog.String(KeyKind, k) }
func File(name string) slog.Attr      { return slog.String(KeyFile, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Output(p string) slog.Attr       { return slog.String(KeyOutput, p) }
func Reason(r string) slog.Attr       { return slog.String(KeyReason, r) }
func Status(s string) slog.Attr       { return slog.String(KeyStatus, s) }
func Converted(n int) slog.Attr       { return slog.Int(KeyConverted, n) }
func Skipped(n int) slog.Attr         { return slog.Int(KeySkipped, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

// Duration reports d in milliseconds under KeyDurationMS.
func Duration(d time.Duration) slog.Attr {
	return DurationMS(float64(d) / float64(time.Millisecond))
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
