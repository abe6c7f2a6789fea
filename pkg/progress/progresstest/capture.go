package progresstest

import (
	"sync"

	"github.com/JakeFAU/progress-monitor/pkg/progress"
)

// Captured collects the monitors created through a capturing configuration.
type Captured struct {
	mu       sync.Mutex
	monitors []progress.Monitor
}

// Monitors returns the monitors created so far, oldest first.
func (c *Captured) Monitors() []progress.Monitor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]progress.Monitor(nil), c.monitors...)
}

// Last returns the most recently created monitor, or nil if none were created.
func (c *Captured) Last() progress.Monitor {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.monitors) == 0 {
		return nil
	}
	return c.monitors[len(c.monitors)-1]
}

// Capture wraps cfg so every monitor it creates is recorded. Pass the returned
// configuration to code that builds monitors internally, then inspect them
// through Captured. The returned configuration carries cfg's defaults, so its
// Params already hold the fully merged options and are forwarded as is.
func Capture(cfg progress.Config) (progress.Config, *Captured) {
	captured := &Captured{}
	factory := func(p progress.Params) (progress.Monitor, error) {
		opts := p.Extra.Merge(progress.Options{
			progress.KeyInitial:     p.Initial,
			progress.KeyDescription: p.Description,
		})
		if p.Output != nil {
			opts[progress.KeyOutput] = p.Output
		}
		m, err := cfg.Create(p.Total, opts)
		if err != nil {
			return nil, err
		}
		captured.mu.Lock()
		captured.monitors = append(captured.monitors, m)
		captured.mu.Unlock()
		return m, nil
	}
	return progress.NewConfig("capture("+cfg.Name()+")", factory, cfg.Options()), captured
}
