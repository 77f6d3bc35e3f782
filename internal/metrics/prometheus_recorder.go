package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docxposts"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	files           *prom.CounterVec
	convertDuration *prom.HistogramVec
	runDuration     prom.Histogram
	watchTriggers   *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		files: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Processed source documents by kind and status",
		}, []string{"kind", "status"}),
		convertDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "convert_duration_seconds",
			Help:      "Duration of individual document conversions",
			Buckets:   prom.DefBuckets,
		}, []string{"kind"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a full conversion pass",
			Buckets:   prom.DefBuckets,
		}),
		watchTriggers: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "watch_triggers_total",
			Help:      "Conversion passes started by watch mode, by trigger source",
		}, []string{"source"}),
	}
	reg.MustRegister(pr.files, pr.convertDuration, pr.runDuration, pr.watchTriggers)
	return pr
}

func (p *PrometheusRecorder) IncFile(kind, status string) {
	if p == nil || p.files == nil {
		return
	}
	p.files.WithLabelValues(kind, status).Inc()
}

func (p *PrometheusRecorder) ObserveConvertDuration(kind string, d time.Duration) {
	if p == nil || p.convertDuration == nil {
		return
	}
	p.convertDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncWatchTrigger(source string) {
	if p == nil || p.watchTriggers == nil {
		return
	}
	p.watchTriggers.WithLabelValues(source).Inc()
}
