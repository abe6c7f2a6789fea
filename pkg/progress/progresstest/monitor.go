package progresstest

import (
	"fmt"

	"github.com/JakeFAU/progress-monitor/pkg/progress"
)

// KeyAllowDecrement controls whether a Monitor accepts backwards moves.
const KeyAllowDecrement = "allow_decrement"

// Monitor displays nothing but tracks its state and validates every move. It is
// the reference for strict validation: positions must stay within [0, total],
// backwards moves are rejected when AllowDecrement is false, and any move after
// Close fails with progress.ErrClosed.
type Monitor struct {
	position int
	total    int
	closed   bool

	// AllowDecrement permits moves to a lower position.
	AllowDecrement bool
	// Description records the description the monitor was created with.
	Description string
	// Options records the backend options the monitor was created with.
	Options progress.Options
}

var (
	_ progress.Monitor = (*Monitor)(nil)
	_ progress.Creator = Monitor{}
)

// New returns an open Monitor at initial out of total.
func New(total, initial int) (*Monitor, error) {
	if total < 0 {
		return nil, fmt.Errorf("%w: negative total %d", progress.ErrOutOfRange, total)
	}
	if initial < 0 || initial > total {
		return nil, fmt.Errorf("%w: initial %d, total %d", progress.ErrOutOfRange, initial, total)
	}
	return &Monitor{
		position:       initial,
		total:          total,
		AllowDecrement: true,
		Options:        progress.Options{},
	}, nil
}

// Create implements progress.Creator, so Monitor{} can be passed as a
// progress.Type. The allow_decrement option is consumed; every other extra
// option is recorded in Options.
func (Monitor) Create(p progress.Params) (progress.Monitor, error) {
	m, err := New(p.Total, p.Initial)
	if err != nil {
		return nil, err
	}
	allow, err := p.Extra.Bool(KeyAllowDecrement, true)
	if err != nil {
		return nil, err
	}
	m.AllowDecrement = allow
	m.Description = p.Description
	for k, v := range p.Extra {
		if k != KeyAllowDecrement {
			m.Options[k] = v
		}
	}
	return m, nil
}

// Config returns a configuration for Monitor with the given defaults.
func Config(defaults progress.Options) progress.Config {
	return progress.NewConfig("progresstest.Monitor", Monitor{}.Create, defaults)
}

// Position returns the current position.
func (m *Monitor) Position() int { return m.position }

// Total returns the expected final position.
func (m *Monitor) Total() int { return m.total }

// Closed reports whether Close was called.
func (m *Monitor) Closed() bool { return m.closed }

// Increment moves the monitor by delta.
func (m *Monitor) Increment(delta int) error {
	return progress.MoveBy(m, delta)
}

// MoveTo validates n and sets the position. On failure the position is unchanged.
func (m *Monitor) MoveTo(n int) error {
	if m.closed {
		return fmt.Errorf("%w: move to %d", progress.ErrClosed, n)
	}
	if n < 0 {
		return fmt.Errorf("%w: negative position %d", progress.ErrOutOfRange, n)
	}
	if n > m.total {
		return fmt.Errorf("%w: position %d exceeds total %d", progress.ErrOutOfRange, n, m.total)
	}
	if !m.AllowDecrement && n < m.position {
		return fmt.Errorf("%w: from %d to %d", progress.ErrDecrement, m.position, n)
	}
	m.position = n
	return nil
}

// Close marks the monitor closed. Calling it again has no effect.
func (m *Monitor) Close() error {
	m.closed = true
	return nil
}
