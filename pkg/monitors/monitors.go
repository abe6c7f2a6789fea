// Package monitors registers the bundled progress backends on a Registry and
// picks the default one.
package monitors

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/JakeFAU/progress-monitor/internal/clock"
	"github.com/JakeFAU/progress-monitor/pkg/monitors/events"
	"github.com/JakeFAU/progress-monitor/pkg/monitors/live"
	"github.com/JakeFAU/progress-monitor/pkg/monitors/logmon"
	"github.com/JakeFAU/progress-monitor/pkg/monitors/teabar"
	"github.com/JakeFAU/progress-monitor/pkg/monitors/termbar"
	"github.com/JakeFAU/progress-monitor/pkg/progress"
)

// KeyNone registers the Null monitor.
const KeyNone = "none"

// Setup carries the collaborators shared by the backends.
type Setup struct {
	// Logger backs the log backend. Nil discards.
	Logger *zap.Logger
	// Output is where terminal backends draw; nil means stderr.
	Output io.Writer
	// Emitter enables the events backend when set.
	Emitter events.Emitter
	// Clock times rates; nil uses the wall clock.
	Clock clock.Clock
	// Overrides are layered onto the registered defaults per key.
	Overrides map[string]progress.Options
	// Default is the key Default resolves to. Empty picks progressbar on a
	// terminal and log otherwise.
	Default string
}

type entry struct {
	key    string
	target progress.Arg
}

// Register adds every bundled backend to reg, applies overrides, and sets the
// default key, which it returns.
func Register(reg *progress.Registry, s Setup) (string, error) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	out := s.Output
	if out == nil {
		out = os.Stderr
	}
	drawTo := progress.Options{progress.KeyOutput: out}

	entries := []entry{
		{KeyNone, nil},
		{termbar.Key, termbar.Config(drawTo)},
		{termbar.KeyBytes, termbar.BytesConfig(drawTo)},
		{teabar.Key, teabar.Config(drawTo)},
		{teabar.KeyPlain, teabar.PlainConfig(drawTo)},
		{live.Key, live.Config(s.Clock, drawTo)},
		{logmon.Key, logmon.Config(logger, nil)},
	}
	if s.Emitter != nil {
		entries = append(entries, entry{events.Key, events.Config(events.Deps{Emitter: s.Emitter, Clock: s.Clock}, nil)})
	}
	for _, e := range entries {
		if _, err := reg.Register(e.key, e.target, false); err != nil {
			return "", err
		}
	}

	for key, opts := range s.Overrides {
		cfg, err := reg.Lookup(key)
		if err != nil {
			logger.Warn("ignoring options for unknown progress monitor", zap.String("key", key))
			continue
		}
		if _, err := reg.Register(key, cfg.Update(opts), true); err != nil {
			return "", fmt.Errorf("apply %s options: %w", key, err)
		}
	}

	key := s.Default
	if key == "" {
		key = logmon.Key
		if IsTerminal(out) {
			key = termbar.Key
		}
	}
	reg.SetDefault(key)
	return key, nil
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
