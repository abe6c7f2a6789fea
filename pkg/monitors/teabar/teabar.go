// Package teabar renders progress with the bubbles progress model outside of a
// bubbletea program: each update redraws the bar in place on one line.
package teabar

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/JakeFAU/progress-monitor/internal/tracker"
	pm "github.com/JakeFAU/progress-monitor/pkg/progress"
)

// Registry keys.
const (
	Key      = "bar"
	KeyPlain = "bar-plain"
)

// Backend options.
const (
	OptWidth      = "width"
	OptGradient   = "gradient"
	OptColor      = "color"
	OptPercentage = "percentage"
	OptFillColor  = "fill_color"
)

// Values accepted by OptColor.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const (
	defaultWidth     = 40
	defaultFillColor = "#7571F9"
)

// Monitor draws a bubbles progress bar to a writer.
type Monitor struct {
	tracker.Tracker
	out   io.Writer
	bar   progress.Model
	label string
}

var _ pm.Monitor = (*Monitor)(nil)

// Config returns a configuration for Monitor with the given defaults.
func Config(defaults pm.Options) pm.Config {
	return pm.NewConfig("teabar", New, defaults)
}

// PlainConfig is Config without colors.
func PlainConfig(defaults pm.Options) pm.Config {
	return Config(pm.Options{OptColor: ColorNever, OptGradient: false}.Merge(defaults))
}

// New builds a Monitor from p. Output defaults to stderr.
func New(p pm.Params) (pm.Monitor, error) {
	tr, err := tracker.New(p.Total, p.Initial)
	if err != nil {
		return nil, err
	}
	width, err := p.Extra.Int(OptWidth, defaultWidth)
	if err != nil {
		return nil, err
	}
	gradient, err := p.Extra.Bool(OptGradient, true)
	if err != nil {
		return nil, err
	}
	color, err := p.Extra.String(OptColor, ColorAuto)
	if err != nil {
		return nil, err
	}
	percentage, err := p.Extra.Bool(OptPercentage, true)
	if err != nil {
		return nil, err
	}
	fill, err := p.Extra.String(OptFillColor, defaultFillColor)
	if err != nil {
		return nil, err
	}

	out := p.Output
	if out == nil {
		out = os.Stderr
	}
	profile, err := colorProfile(out, color)
	if err != nil {
		return nil, err
	}

	opts := []progress.Option{
		progress.WithWidth(width),
		progress.WithColorProfile(profile),
	}
	if gradient {
		opts = append(opts, progress.WithDefaultGradient())
	} else {
		opts = append(opts, progress.WithSolidFill(fill))
	}
	if !percentage {
		opts = append(opts, progress.WithoutPercentage())
	}

	var label string
	if p.Description != "" {
		renderer := lipgloss.NewRenderer(out)
		renderer.SetColorProfile(profile)
		label = renderer.NewStyle().Bold(true).PaddingRight(1).Render(p.Description)
	}

	m := &Monitor{
		Tracker: tr,
		out:     out,
		bar:     progress.New(opts...),
		label:   label,
	}
	if err := m.draw(); err != nil {
		return nil, err
	}
	return m, nil
}

// Increment moves the bar by delta.
func (m *Monitor) Increment(delta int) error {
	return pm.MoveBy(m, delta)
}

// MoveTo sets the position and redraws.
func (m *Monitor) MoveTo(n int) error {
	if err := m.Move(n); err != nil {
		return err
	}
	return m.draw()
}

// Close ends the bar's line. Later calls do nothing.
func (m *Monitor) Close() error {
	if !m.Tracker.Close() {
		return nil
	}
	if _, err := fmt.Fprintln(m.out); err != nil {
		return fmt.Errorf("end progress bar line: %w", err)
	}
	return nil
}

// View returns the current bar without drawing it.
func (m *Monitor) View() string {
	return m.label + m.bar.ViewAs(m.Fraction())
}

func (m *Monitor) draw() error {
	if _, err := fmt.Fprint(m.out, "\r"+m.View()); err != nil {
		return fmt.Errorf("draw progress bar: %w", err)
	}
	return nil
}

func colorProfile(out io.Writer, mode string) (termenv.Profile, error) {
	switch mode {
	case ColorNever:
		return termenv.Ascii, nil
	case ColorAlways:
		return termenv.TrueColor, nil
	case ColorAuto:
		if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			return termenv.NewOutput(out).EnvColorProfile(), nil
		}
		return termenv.Ascii, nil
	default:
		return termenv.Ascii, fmt.Errorf("%w: %s must be one of %s, %s, %s, got %q",
			pm.ErrInvalidOption, OptColor, ColorAuto, ColorAlways, ColorNever, mode)
	}
}
