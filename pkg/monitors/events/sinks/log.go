package sinks

import (
	"context"

	"go.uber.org/zap"

	"github.com/JakeFAU/progress-monitor/pkg/monitors/events"
)

// LogSink writes every event as a structured log entry at debug level, and
// OPEN and CLOSE at info.
type LogSink struct {
	logger *zap.Logger
}

var _ events.Sink = (*LogSink)(nil)

// NewLogSink wires a zap logger to the sink interface.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// Consume logs each event in the batch.
func (s *LogSink) Consume(_ context.Context, batch []events.Event) error {
	for _, evt := range batch {
		fields := []zap.Field{
			zap.Stringer("monitor_id", evt.MonitorID),
			zap.Time("ts", evt.TS),
			zap.String("stage", string(evt.Stage)),
			zap.Int("position", evt.Position),
			zap.Int("total", evt.Total),
		}
		if evt.Description != "" {
			fields = append(fields, zap.String("description", evt.Description))
		}
		if evt.Stage == events.StageMove {
			s.logger.Debug("progress event", fields...)
			continue
		}
		s.logger.Info("progress event", fields...)
	}
	return nil
}

// Close syncs the logger.
func (s *LogSink) Close(context.Context) error {
	// Sync fails on unsyncable outputs such as a terminal; nothing is lost.
	_ = s.logger.Sync()
	return nil
}
