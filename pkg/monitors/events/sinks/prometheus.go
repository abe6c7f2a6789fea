package sinks

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/JakeFAU/progress-monitor/pkg/monitors/events"
)

// PrometheusSink exports monitor activity as Prometheus metrics.
type PrometheusSink struct {
	opened    prometheus.Counter
	closed    *prometheus.CounterVec
	running   prometheus.Gauge
	units     prometheus.Counter
	completed prometheus.Histogram
	runtime   *prometheus.HistogramVec

	mu   sync.Mutex
	seen map[uuid.UUID]events.Event
}

var _ events.Sink = (*PrometheusSink)(nil)

// NewPrometheusSink registers the collectors against reg, or the default
// registerer when reg is nil.
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PrometheusSink{
		opened: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "progress_monitors_opened_total",
			Help: "Monitors opened.",
		}),
		closed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "progress_monitors_closed_total",
			Help: "Monitors closed, partitioned by whether they reached their total.",
		}, []string{"result"}),
		running: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "progress_monitors_running",
			Help: "Monitors currently open.",
		}),
		units: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "progress_units_completed_total",
			Help: "Forward progress across all monitors.",
		}),
		completed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "progress_completion_ratio",
			Help:    "Share of the total reached when a monitor closes.",
			Buckets: []float64{0.1, 0.25, 0.5, 0.75, 0.9, 1},
		}),
		runtime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "progress_monitor_runtime_seconds",
			Help:    "Time between open and close per monitor.",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300, 1800},
		}, []string{"result"}),
		seen: make(map[uuid.UUID]events.Event),
	}
	for _, collector := range []prometheus.Collector{
		s.opened,
		s.closed,
		s.running,
		s.units,
		s.completed,
		s.runtime,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register progress collector: %w", err)
		}
	}
	return s, nil
}

// Consume updates the collectors from batch.
func (s *PrometheusSink) Consume(_ context.Context, batch []events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, evt := range batch {
		s.consumeEvent(evt)
	}
	return nil
}

func (s *PrometheusSink) consumeEvent(evt events.Event) {
	prev, known := s.seen[evt.MonitorID]
	switch evt.Stage {
	case events.StageOpen:
		s.opened.Inc()
		if !known {
			s.running.Inc()
		}
		s.seen[evt.MonitorID] = evt
	case events.StageMove:
		if known && evt.Position > prev.Position {
			s.units.Add(float64(evt.Position - prev.Position))
		}
		if known {
			opened := prev.TS
			prev = evt
			prev.TS = opened
			s.seen[evt.MonitorID] = prev
		}
	case events.StageClose:
		result := "incomplete"
		if evt.Completed() {
			result = "complete"
		}
		s.closed.WithLabelValues(result).Inc()
		if evt.Total > 0 {
			s.completed.Observe(min(float64(evt.Position)/float64(evt.Total), 1))
		}
		if known {
			s.running.Dec()
			if d := evt.TS.Sub(prev.TS); d >= 0 {
				s.runtime.WithLabelValues(result).Observe(d.Seconds())
			}
			delete(s.seen, evt.MonitorID)
		}
	}
}

// Close implements events.Sink; it performs no action.
func (s *PrometheusSink) Close(context.Context) error {
	return nil
}
