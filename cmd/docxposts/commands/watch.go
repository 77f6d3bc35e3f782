package commands

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docxposts/internal/convert"
	"git.home.luguber.info/inful/docxposts/internal/logfields"
	"git.home.luguber.info/inful/docxposts/internal/metrics"
	"git.home.luguber.info/inful/docxposts/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	PathFlags `embed:""`

	PollInterval string `name:"poll-interval" placeholder:"DURATION" help:"Also rescan periodically, e.g. 5m (disabled by default)"`
	MetricsAddr  string `name:"metrics-addr" placeholder:"ADDR" help:"Serve Prometheus metrics on this address, e.g. :9090"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	o := w.overrides()
	o.PollInterval = w.PollInterval
	o.MetricsAddr = w.MetricsAddr
	cfg, err := loadConfig(root, o)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if cfg.Watch.MetricsAddr != "" {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		srv := startMetricsServer(cfg.Watch.MetricsAddr, reg)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	svc, cleanup, err := newService(g, cfg, convert.WithRecorder(recorder))
	if err != nil {
		return err
	}
	defer cleanup()

	return watch.Run(ctx, svc, watch.Options{
		Dirs:         []string{cfg.Paths.PostsInput, cfg.Paths.DraftsInput},
		Debounce:     cfg.Watch.DebounceDuration(),
		PollInterval: cfg.Watch.PollIntervalDuration(),
		Recorder:     recorder,
	})
}

func startMetricsServer(addr string, reg *prom.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", logfields.Error(err))
		}
	}()
	slog.Info("Serving metrics", slog.String("addr", addr))
	return srv
}
