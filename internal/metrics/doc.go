// Package metrics exposes conversion counters and timings.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	svc := convert.New(cfg, conv, convert.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// The watch command serves the registry with HTTPHandler when --metrics-addr is set.
package metrics
