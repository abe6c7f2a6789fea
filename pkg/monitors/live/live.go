// Package live prints a status line that is rewritten in place through
// github.com/gosuri/uilive.
package live

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gosuri/uilive"

	"github.com/JakeFAU/progress-monitor/internal/clock"
	"github.com/JakeFAU/progress-monitor/internal/clock/system"
	"github.com/JakeFAU/progress-monitor/internal/ratelimit"
	"github.com/JakeFAU/progress-monitor/internal/tracker"
	"github.com/JakeFAU/progress-monitor/pkg/progress"
)

// Key is the registry key.
const Key = "live"

const (
	// OptShowRate appends the average units per second to the line.
	OptShowRate = "show_rate"
	// OptRefreshRate caps redraws per second. Zero redraws on every update;
	// the opening and closing lines are always written.
	OptRefreshRate = "refresh_rate"
)

// Monitor rewrites one status line per update. uilive's background refresh is
// never started; updates flush synchronously when the redraw limiter allows.
type Monitor struct {
	tracker.Tracker
	w       *uilive.Writer
	redraw  *ratelimit.Redraw
	clock   clock.Clock
	started time.Time
	initial int
	desc    string
	rate    bool
}

var _ progress.Monitor = (*Monitor)(nil)

// Config returns a configuration for Monitor. A nil clk uses the wall clock.
func Config(clk clock.Clock, defaults progress.Options) progress.Config {
	if clk == nil {
		clk = system.New()
	}
	return progress.NewConfig("live", Factory(clk), defaults)
}

// Factory returns a progress.Factory timing rates with clk.
func Factory(clk clock.Clock) progress.Factory {
	return func(p progress.Params) (progress.Monitor, error) {
		tr, err := tracker.New(p.Total, p.Initial)
		if err != nil {
			return nil, err
		}
		rate, err := p.Extra.Bool(OptShowRate, true)
		if err != nil {
			return nil, err
		}
		refresh, err := p.Extra.Float(OptRefreshRate, 0)
		if err != nil {
			return nil, err
		}
		if refresh < 0 {
			return nil, fmt.Errorf("%w: %s must not be negative", progress.ErrInvalidOption, OptRefreshRate)
		}
		w := uilive.New()
		w.Out = p.Output
		if w.Out == nil {
			w.Out = os.Stderr
		}
		m := &Monitor{
			Tracker: tr,
			w:       w,
			redraw:  ratelimit.NewRedraw(refresh, clk),
			clock:   clk,
			started: clk.Now(),
			initial: p.Initial,
			desc:    p.Description,
			rate:    rate,
		}
		m.redraw.Allow()
		if err := m.flush(); err != nil {
			return nil, err
		}
		return m, nil
	}
}

// Increment moves the line by delta.
func (m *Monitor) Increment(delta int) error {
	return progress.MoveBy(m, delta)
}

// MoveTo sets the position and rewrites the line.
func (m *Monitor) MoveTo(n int) error {
	if err := m.Move(n); err != nil {
		return err
	}
	if !m.redraw.Allow() {
		return nil
	}
	return m.flush()
}

// Close writes the final line. Later calls do nothing.
func (m *Monitor) Close() error {
	if !m.Tracker.Close() {
		return nil
	}
	return m.flush()
}

// Line formats the current status.
func (m *Monitor) Line() string {
	var b strings.Builder
	if m.desc != "" {
		b.WriteString(m.desc)
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, "%d/%d (%3.0f%%)", m.Position(), m.Total(), m.Fraction()*100)
	if m.rate {
		if elapsed := m.clock.Now().Sub(m.started); elapsed > 0 {
			perSec := float64(m.Position()-m.initial) / elapsed.Seconds()
			fmt.Fprintf(&b, " %.1f/s", perSec)
		}
	}
	if m.Closed() {
		b.WriteString(" done")
	}
	return b.String()
}

func (m *Monitor) flush() error {
	if _, err := fmt.Fprintln(m.w, m.Line()); err != nil {
		return fmt.Errorf("write status line: %w", err)
	}
	if err := m.w.Flush(); err != nil {
		return fmt.Errorf("flush status line: %w", err)
	}
	return nil
}
