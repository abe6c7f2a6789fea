// Package termbar draws progress with github.com/schollz/progressbar/v3.
package termbar

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/JakeFAU/progress-monitor/internal/tracker"
	"github.com/JakeFAU/progress-monitor/pkg/progress"
)

// Registry keys.
const (
	Key      = "progressbar"
	KeyBytes = "progressbar-bytes"
)

// Backend options.
const (
	OptWidth         = "width"
	OptShowBytes     = "show_bytes"
	OptThrottle      = "throttle"
	OptClearOnFinish = "clear_on_finish"
)

const (
	defaultWidth    = 40
	defaultThrottle = 65 * time.Millisecond
)

// Monitor renders a single progress bar. Positions beyond the total are kept
// but drawn as a full bar.
type Monitor struct {
	tracker.Tracker
	bar *progressbar.ProgressBar
	out io.Writer
}

var _ progress.Monitor = (*Monitor)(nil)

// Config returns a configuration for Monitor with the given defaults.
func Config(defaults progress.Options) progress.Config {
	return progress.NewConfig("termbar", New, defaults)
}

// BytesConfig is Config with byte formatting enabled.
func BytesConfig(defaults progress.Options) progress.Config {
	return Config(progress.Options{OptShowBytes: true}.Merge(defaults))
}

// New builds a Monitor from p. Output defaults to stderr.
func New(p progress.Params) (progress.Monitor, error) {
	tr, err := tracker.New(p.Total, p.Initial)
	if err != nil {
		return nil, err
	}
	width, err := p.Extra.Int(OptWidth, defaultWidth)
	if err != nil {
		return nil, err
	}
	showBytes, err := p.Extra.Bool(OptShowBytes, false)
	if err != nil {
		return nil, err
	}
	throttle, err := p.Extra.Duration(OptThrottle, defaultThrottle)
	if err != nil {
		return nil, err
	}
	clearOnFinish, err := p.Extra.Bool(OptClearOnFinish, false)
	if err != nil {
		return nil, err
	}

	out := p.Output
	if out == nil {
		out = os.Stderr
	}
	opts := []progressbar.Option{
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetWidth(width),
		progressbar.OptionShowBytes(showBytes),
		progressbar.OptionThrottle(throttle),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
	}
	if p.Description != "" {
		opts = append(opts, progressbar.OptionSetDescription(p.Description))
	}
	if clearOnFinish {
		opts = append(opts, progressbar.OptionClearOnFinish())
	}

	// progressbar rejects a zero max; an empty task is drawn as one unit.
	m := &Monitor{
		Tracker: tr,
		bar:     progressbar.NewOptions(max(p.Total, 1), opts...),
		out:     out,
	}
	if err := m.draw(); err != nil {
		return nil, err
	}
	return m, nil
}

// Increment moves the bar by delta.
func (m *Monitor) Increment(delta int) error {
	return progress.MoveBy(m, delta)
}

// MoveTo sets the position and redraws.
func (m *Monitor) MoveTo(n int) error {
	if err := m.Move(n); err != nil {
		return err
	}
	return m.draw()
}

// Close finishes the bar when the task completed and otherwise leaves the
// partial bar on its own line. Later calls do nothing.
func (m *Monitor) Close() error {
	if !m.Tracker.Close() {
		return nil
	}
	if m.Total() == 0 || m.Position() >= m.Total() {
		if err := m.bar.Finish(); err != nil {
			return fmt.Errorf("finish progress bar: %w", err)
		}
		return nil
	}
	if _, err := fmt.Fprintln(m.out); err != nil {
		return fmt.Errorf("end progress bar line: %w", err)
	}
	return nil
}

func (m *Monitor) draw() error {
	if m.Total() == 0 {
		return nil
	}
	if err := m.bar.Set(m.Shown()); err != nil {
		return fmt.Errorf("draw progress bar: %w", err)
	}
	return nil
}
