// Package logmon reports progress as structured log entries, for
// non-interactive runs where redrawing a terminal line makes no sense.
package logmon

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/JakeFAU/progress-monitor/internal/tracker"
	"github.com/JakeFAU/progress-monitor/pkg/progress"
)

// Key is the registry key.
const Key = "log"

// Backend options.
const (
	// OptStepPercent is the completion step, in percent, between milestone
	// entries.
	OptStepPercent = "step_percent"
	// OptLogger overrides the logger with a *zap.Logger.
	OptLogger = "logger"
)

const defaultStepPercent = 10

// Monitor logs a start entry, one entry each time completion crosses a step
// boundary, and a finish entry on Close.
type Monitor struct {
	tracker.Tracker
	logger   *zap.Logger
	step     int
	lastStep int
}

var _ progress.Monitor = (*Monitor)(nil)

// Config returns a configuration logging through logger. A nil logger discards
// everything unless the logger option supplies one.
func Config(logger *zap.Logger, defaults progress.Options) progress.Config {
	if logger == nil {
		logger = zap.NewNop()
	}
	return progress.NewConfig("logmon", Factory(logger), defaults)
}

// Factory returns a progress.Factory logging through logger.
func Factory(logger *zap.Logger) progress.Factory {
	return func(p progress.Params) (progress.Monitor, error) {
		tr, err := tracker.New(p.Total, p.Initial)
		if err != nil {
			return nil, err
		}
		step, err := p.Extra.Int(OptStepPercent, defaultStepPercent)
		if err != nil {
			return nil, err
		}
		if step <= 0 || step > 100 {
			return nil, fmt.Errorf("%w: %s must be in (0, 100], got %d", progress.ErrInvalidOption, OptStepPercent, step)
		}
		l := logger
		if raw, ok := p.Extra[OptLogger]; ok && raw != nil {
			override, ok := raw.(*zap.Logger)
			if !ok {
				return nil, fmt.Errorf("%w: %s must be a *zap.Logger, got %T", progress.ErrInvalidOption, OptLogger, raw)
			}
			l = override
		}
		if p.Description != "" {
			l = l.With(zap.String("description", p.Description))
		}

		m := &Monitor{Tracker: tr, logger: l, step: step}
		m.lastStep = m.currentStep()
		m.logger.Info("progress started", m.fields()...)
		return m, nil
	}
}

// Increment moves the monitor by delta.
func (m *Monitor) Increment(delta int) error {
	return progress.MoveBy(m, delta)
}

// MoveTo sets the position and logs when a new step boundary is reached.
func (m *Monitor) MoveTo(n int) error {
	if err := m.Move(n); err != nil {
		return err
	}
	if s := m.currentStep(); s != m.lastStep {
		m.lastStep = s
		m.logger.Info("progress", m.fields()...)
	}
	return nil
}

// Close logs the final position. Later calls do nothing.
func (m *Monitor) Close() error {
	if !m.Tracker.Close() {
		return nil
	}
	if m.Position() < m.Total() {
		m.logger.Info("progress stopped early", m.fields()...)
		return nil
	}
	m.logger.Info("progress finished", m.fields()...)
	return nil
}

func (m *Monitor) currentStep() int {
	return int(m.Fraction()*100) / m.step
}

func (m *Monitor) fields() []zap.Field {
	return []zap.Field{
		zap.Int("position", m.Position()),
		zap.Int("total", m.Total()),
		zap.Float64("percent", m.Fraction()*100),
	}
}
