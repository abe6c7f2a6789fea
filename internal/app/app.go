// Package app wires the long-lived services of the demo binary: the logger,
// the progress registry with every bundled backend, and the optional event hub.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"

	"github.com/JakeFAU/progress-monitor/internal/config"
	"github.com/JakeFAU/progress-monitor/internal/logging"
	"github.com/JakeFAU/progress-monitor/pkg/monitors"
	"github.com/JakeFAU/progress-monitor/pkg/monitors/events"
	"github.com/JakeFAU/progress-monitor/pkg/monitors/events/sinks"
	"github.com/JakeFAU/progress-monitor/pkg/progress"
)

// App holds the shared services. Build it with New and release it with Close.
type App struct {
	logger     *zap.Logger
	registry   *progress.Registry
	hub        *events.Hub
	metrics    *prometheus.Registry
	defaultKey string
}

// New builds an App from cfg. Terminal backends draw to out. A nil logger is
// built from the logging section of cfg.
func New(cfg config.Config, out io.Writer, logger *zap.Logger) (*App, error) {
	if logger == nil {
		l, err := logging.New(cfg.Logging.Development, cfg.Logging.Level)
		if err != nil {
			return nil, err
		}
		logger = l
	}
	if out == nil {
		out = os.Stderr
	}

	a := &App{
		logger:   logger,
		registry: progress.NewRegistry(logger.Named("progress")),
	}

	var emitter events.Emitter
	if cfg.Events.Enabled {
		var hubSinks []events.Sink
		if cfg.Events.Metrics {
			a.metrics = prometheus.NewRegistry()
			promSink, err := sinks.NewPrometheusSink(a.metrics)
			if err != nil {
				return nil, err
			}
			hubSinks = append(hubSinks, promSink)
		}
		if cfg.Events.Log {
			hubSinks = append(hubSinks, sinks.NewLogSink(logger.Named("events")))
		}
		a.hub = events.NewHub(events.HubConfig{
			BufferSize:     cfg.Events.BufferSize,
			MaxBatchEvents: cfg.Events.MaxBatchEvents,
			MaxBatchWait:   cfg.Events.MaxBatchWait,
			Logger:         logger.Named("hub"),
		}, hubSinks...)
		emitter = a.hub
	}

	key, err := monitors.Register(a.registry, monitors.Setup{
		Logger:    logger.Named("monitor"),
		Output:    out,
		Emitter:   emitter,
		Overrides: cfg.MonitorOverrides(),
		Default:   cfg.Progress.Default,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("register progress monitors: %w", err), a.Close(context.Background()))
	}
	a.defaultKey = key
	logger.Debug("progress monitors registered",
		zap.Strings("keys", a.registry.Keys()),
		zap.String("default", key),
		zap.Bool("events", a.hub != nil))
	return a, nil
}

// Logger returns the shared logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Registry returns the populated progress registry.
func (a *App) Registry() *progress.Registry {
	return a.registry
}

// DefaultKey returns the key Default resolves to.
func (a *App) DefaultKey() string {
	return a.defaultKey
}

// WriteMetrics writes the collected event metrics in the Prometheus text
// format. It writes nothing when metrics are disabled.
func (a *App) WriteMetrics(w io.Writer) error {
	if a.metrics == nil {
		return nil
	}
	families, err := a.metrics.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

// Close drains the event hub. It is safe to call more than once.
func (a *App) Close(ctx context.Context) error {
	if a.hub == nil {
		return nil
	}
	if err := a.hub.Close(ctx); err != nil {
		return fmt.Errorf("close event hub: %w", err)
	}
	return nil
}
